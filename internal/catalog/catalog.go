// Package catalog holds the named extraction patterns and the user
// extensions layered on top of them.
package catalog

import (
	"fmt"
	"regexp"
	"slices"

	"i18nextract/internal/interpolation"
)

// Extension customizes a catalog. It is either an Override or an Additional.
type Extension interface {
	isExtension()
}

// Override attaches a key transform to an existing pattern. It never adds a
// pattern; an override for a name that no pattern carries is never invoked.
type Override struct {
	Pattern   string
	Transform Transform
}

// Additional registers a new pattern run in global mode whose first capture
// is the key.
type Additional struct {
	Expr string
}

func (Override) isExtension()   {}
func (Additional) isExtension() {}

// Catalog is an ordered pattern set plus per-pattern key hooks.
type Catalog struct {
	patterns []Pattern
	hooks    map[string]Transform
}

// Compiled is a pattern ready to run.
type Compiled struct {
	Pattern
	Regexp *regexp.Regexp
}

// New returns the built-in catalog extended with exts, applied in order.
func New(exts ...Extension) *Catalog {
	c := &Catalog{
		patterns: Builtins(),
		hooks:    make(map[string]Transform),
	}
	additional := 0
	for _, ext := range exts {
		switch e := ext.(type) {
		case Override:
			c.addHook(e.Pattern, e.Transform)
		case Additional:
			c.patterns = append(c.patterns, Pattern{
				Name: fmt.Sprintf("others_%d", additional),
				Role: Custom,
				Mode: Global,
				Expr: e.Expr,
			})
			additional++
		}
	}
	return c
}

// addHook chains transforms registered for the same pattern.
func (c *Catalog) addHook(name string, fn Transform) {
	if fn == nil {
		return
	}
	prev, ok := c.hooks[name]
	if !ok {
		c.hooks[name] = fn
		return
	}
	c.hooks[name] = func(key string) string {
		if k := prev(key); k != "" {
			key = k
		}
		if k := fn(key); k != "" {
			return k
		}
		return key
	}
}

// Patterns returns the catalog in run order.
func (c *Catalog) Patterns() []Pattern {
	out := make([]Pattern, len(c.patterns))
	copy(out, c.patterns)
	return out
}

// Hooks returns the key transforms keyed by pattern name.
func (c *Catalog) Hooks() map[string]Transform {
	out := make(map[string]Transform, len(c.hooks))
	for k, v := range c.hooks {
		out[k] = v
	}
	return out
}

// UnknownOverrides lists hook names that match no pattern.
func (c *Catalog) UnknownOverrides() []string {
	var unknown []string
	for name := range c.hooks {
		if _, ok := c.Lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}
	slices.Sort(unknown)
	return unknown
}

// Compile expands delimiters into every built-in template and compiles the
// whole catalog case-insensitively. User patterns are compiled as written.
func (c *Catalog) Compile(d interpolation.Delimiters) ([]*Compiled, error) {
	out := make([]*Compiled, 0, len(c.patterns))
	for _, p := range c.patterns {
		expr := p.Expr
		if p.Role != Custom {
			expr = d.Expand(expr)
		}
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %s: %w", p.Name, err)
		}
		out = append(out, &Compiled{Pattern: p, Regexp: re})
	}
	return out, nil
}

// Lookup returns the pattern with the given name.
func (c *Catalog) Lookup(name string) (Pattern, bool) {
	for _, p := range c.patterns {
		if p.Name == name {
			return p, true
		}
	}
	return Pattern{}, false
}
