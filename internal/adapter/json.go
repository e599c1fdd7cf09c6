package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/pretty"

	"i18nextract/internal/translations"
)

const (
	defaultJSONSuffix = ".json"
	defaultSpace      = 4
)

// JSONAdapter writes one JSON document per language, merging the document
// already on disk.
type JSONAdapter struct {
	params Params
	source map[string]string
}

// Init validates p and loads the reference source document, if any.
func (a *JSONAdapter) Init(p Params) error {
	if p.Suffix == "" {
		p.Suffix = defaultJSONSuffix
	}
	if p.Dest == "" {
		p.Dest = "."
	}
	if p.Stringify.Space < 0 {
		p.Stringify.Space = defaultSpace
	}
	a.params = p

	if p.Source == "" {
		return nil
	}
	data, err := os.ReadFile(p.Source)
	if err != nil {
		return fmt.Errorf("read source document: %w", err)
	}
	a.source, err = translations.FlattenJSON(data)
	if err != nil {
		return fmt.Errorf("parse source document %s: %w", p.Source, err)
	}
	return nil
}

// Path returns the document path for lang.
func (a *JSONAdapter) Path(lang string) string {
	return filepath.Join(a.params.Dest, a.params.Prefix+lang+a.params.Suffix)
}

// Persist writes every language document.
func (a *JSONAdapter) Persist(ctx context.Context, set *translations.Set) error {
	if err := os.MkdirAll(a.params.Dest, 0755); err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	for _, lang := range a.params.Lang {
		if err := ctx.Err(); err != nil {
			return err
		}
		checkTag(lang)

		path := a.Path(lang)
		existing, err := readExisting(path)
		if err != nil {
			return err
		}

		isDefault := lang == a.params.DefaultLang
		if isDefault {
			existing = a.fillFromSource(set, existing)
		}

		res, stats := set.ForLanguage(existing, isDefault)
		logStats(lang, stats)

		data, err := encodeDocument(res.Document, a.params.Stringify.Space)
		if err != nil {
			return fmt.Errorf("encode %s: %w", lang, err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Info().Str("path", path).Int("keys", stats.Total).Msg("Wrote translation document")
	}
	return nil
}

// fillFromSource supplies reference values for extracted keys that have
// neither a default nor an existing value.
func (a *JSONAdapter) fillFromSource(set *translations.Set, existing map[string]string) map[string]string {
	if len(a.source) == 0 {
		return existing
	}
	out := make(map[string]string, len(existing))
	for k, v := range existing {
		out[k] = v
	}
	for k, def := range set.Flat() {
		ref := a.source[k]
		if def == "" && out[k] == "" && ref != "" {
			out[k] = ref
		}
	}
	return out
}

func readExisting(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read existing document: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	existing, err := translations.FlattenJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse existing document %s: %w", path, err)
	}
	return existing, nil
}

func encodeDocument(doc map[string]any, space int) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if space == 0 {
		return append(pretty.Ugly(buf.Bytes()), '\n'), nil
	}
	return pretty.PrettyOptions(buf.Bytes(), &pretty.Options{
		Width:    80,
		Indent:   strings.Repeat(" ", space),
		SortKeys: true,
	}), nil
}
