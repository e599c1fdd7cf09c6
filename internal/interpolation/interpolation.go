package interpolation

import (
	"errors"
	"regexp"
	"strings"
)

// Template placeholders substituted with the quoted delimiters.
const (
	StartPlaceholder = "${start}"
	EndPlaceholder   = "${end}"
)

// ErrEmptyDelimiter is returned by Validate when a delimiter is blank.
var ErrEmptyDelimiter = errors.New("interpolation delimiter must not be empty")

// Delimiters are the markers surrounding inline expressions in templates,
// e.g. {{ 'KEY' | translate }}.
type Delimiters struct {
	Start string `koanf:"startDelimiter"`
	End   string `koanf:"endDelimiter"`
}

// Default returns the {{ }} delimiters.
func Default() Delimiters {
	return Delimiters{Start: "{{", End: "}}"}
}

// Validate reports whether both delimiters are usable.
func (d Delimiters) Validate() error {
	if d.Start == "" || d.End == "" {
		return ErrEmptyDelimiter
	}
	return nil
}

// Expand replaces ${start} and ${end} in a regex template with the
// regex-quoted delimiters.
func (d Delimiters) Expand(template string) string {
	r := strings.NewReplacer(
		StartPlaceholder, regexp.QuoteMeta(d.Start),
		EndPlaceholder, regexp.QuoteMeta(d.End),
	)
	return r.Replace(template)
}

// Strip removes every occurrence of either delimiter from text. At a given
// position the start delimiter is tried before the end delimiter.
func (d Delimiters) Strip(text string) string {
	var pairs []string
	if d.Start != "" {
		pairs = append(pairs, d.Start, "")
	}
	if d.End != "" {
		pairs = append(pairs, d.End, "")
	}
	if len(pairs) == 0 {
		return text
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
