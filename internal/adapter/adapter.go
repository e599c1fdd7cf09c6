// Package adapter persists translation sets to their destination format.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"i18nextract/internal/translations"
)

// ErrUnknownAdapter is returned by New for unregistered names.
var ErrUnknownAdapter = errors.New("unknown adapter")

// StringifyOptions controls JSON rendering.
type StringifyOptions struct {
	Space int `koanf:"space"`
}

// Params configures an adapter for one run.
type Params struct {
	Lang        []string
	Dest        string
	Prefix      string
	Suffix      string
	Source      string
	DefaultLang string
	Stringify   StringifyOptions
	DatabaseURL string
}

// Adapter writes a translation set somewhere.
type Adapter interface {
	Init(p Params) error
	Persist(ctx context.Context, set *translations.Set) error
}

// Names lists the registered adapters.
func Names() []string {
	return []string{"json", "pot", "postgres"}
}

// New returns the adapter registered under name. An empty name selects json.
func New(name string) (Adapter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return &JSONAdapter{}, nil
	case "pot":
		return &POTAdapter{}, nil
	case "postgres":
		return &PostgresAdapter{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAdapter, name)
	}
}

// checkTag warns about language names that are not BCP 47 tags. They are
// still written, since file names like "en_US" are common.
func checkTag(lang string) {
	if _, err := language.Parse(lang); err != nil {
		log.Warn().Str("lang", lang).Err(err).Msg("Language is not a valid BCP 47 tag")
	}
}

func logStats(lang string, s translations.Stats) {
	log.Info().
		Str("lang", lang).
		Int("total", s.Total).
		Int("added", s.Added).
		Int("kept", s.Kept).
		Int("deleted", s.Deleted).
		Int("empty", s.Empty).
		Msg("Merged translations")
}
