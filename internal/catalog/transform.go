package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

var namedTransforms = map[string]Transform{
	"lowercase": strings.ToLower,
	"uppercase": strings.ToUpper,
	"trim":      strings.TrimSpace,
}

// NamedTransform returns one of the predefined transforms
// (lowercase, uppercase, trim).
func NamedTransform(name string) (Transform, error) {
	fn, ok := namedTransforms[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown transform %q", name)
	}
	return fn, nil
}

// Rewrite returns a transform replacing every match of expr with repl.
// repl may reference captures as $1 or ${name}.
func Rewrite(expr, repl string) (Transform, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile rewrite %q: %w", expr, err)
	}
	return func(key string) string {
		return re.ReplaceAllString(key, repl)
	}, nil
}
