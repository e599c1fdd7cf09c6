// Package extract runs the pattern catalog against file content and turns
// matches into translation entries.
package extract

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"i18nextract/internal/catalog"
	"i18nextract/internal/interpolation"
	"i18nextract/internal/keystore"
)

// Extractor turns the raw text of one source file into entries, in
// document order.
type Extractor interface {
	Extract(content string) []keystore.Entry
}

// Context is the immutable configuration of an extraction run.
type Context struct {
	Delimiters interpolation.Delimiters
	// KeyAsText stores a key as its own default when it has none.
	KeyAsText bool
	// Hooks rewrite resolved keys, keyed by pattern name.
	Hooks map[string]catalog.Transform
}

// Engine is the regex based Extractor.
type Engine struct {
	ctx      Context
	patterns []*catalog.Compiled
}

var _ Extractor = (*Engine)(nil)

// NewEngine compiles cat with the delimiters of ctx. When ctx carries no
// hooks, the catalog's hooks are used.
func NewEngine(cat *catalog.Catalog, ctx Context) (*Engine, error) {
	if err := ctx.Delimiters.Validate(); err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	patterns, err := cat.Compile(ctx.Delimiters)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	if ctx.Hooks == nil {
		ctx.Hooks = cat.Hooks()
	}
	return &Engine{ctx: ctx, patterns: patterns}, nil
}

// Extract runs every pattern, in catalog order, over content.
func (e *Engine) Extract(content string) []keystore.Entry {
	var out []keystore.Entry
	for _, p := range e.patterns {
		entries := e.run(p, content)
		if len(entries) > 0 {
			log.Debug().Str("pattern", p.Name).Int("entries", len(entries)).Msg("Pattern matched")
		}
		out = append(out, entries...)
	}
	return out
}

// ExtractInto merges the entries of content into s and returns how many
// entries were produced.
func (e *Engine) ExtractInto(content string, s *keystore.Store) int {
	entries := e.Extract(content)
	s.Add(entries...)
	return len(entries)
}

func (e *Engine) run(p *catalog.Compiled, content string) []keystore.Entry {
	var out []keystore.Entry
	if p.Mode == catalog.Scoped {
		for _, unit := range p.Regexp.FindAllString(content, -1) {
			if unit == "" {
				continue
			}
			for _, m := range p.Regexp.FindAllStringSubmatch(unit, -1) {
				out = append(out, e.resolve(p, m)...)
			}
		}
		return out
	}
	for _, m := range p.Regexp.FindAllStringSubmatch(content, -1) {
		out = append(out, e.resolve(p, m)...)
	}
	return out
}
