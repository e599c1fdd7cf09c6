// Package translations turns the extracted key store into per-language
// documents, merging previously persisted values.
package translations

import (
	"errors"
	"maps"
	"slices"

	"github.com/tidwall/gjson"

	"i18nextract/internal/keystore"
)

// ErrInvalidDocument is returned when an existing translation document is
// not valid JSON.
var ErrInvalidDocument = errors.New("invalid translation document")

// Params controls how documents are merged and rendered.
type Params struct {
	// SafeMode keeps obsolete keys and never overwrites a value with an empty one.
	SafeMode bool
	// Tree renders dotted keys as nested objects.
	Tree bool
	// NullEmpty renders empty values as null.
	NullEmpty bool
}

// Stats summarizes one merge.
type Stats struct {
	Total   int
	Added   int
	Kept    int
	Deleted int
	Empty   int
}

// Result is a merged document ready to be encoded.
type Result struct {
	// Values holds every merged key with its flat value.
	Values *keystore.Store
	// Document is the rendered form, flat or nested per Params.
	Document map[string]any
}

// Set wraps the extracted keys of a run.
type Set struct {
	params Params
	store  *keystore.Store
}

// New creates a set over s.
func New(s *keystore.Store, p Params) *Set {
	return &Set{params: p, store: s}
}

// Params returns the set's parameters.
func (t *Set) Params() Params {
	return t.params
}

// Len returns the number of extracted keys.
func (t *Set) Len() int {
	return t.store.Len()
}

// Keys returns the extracted keys sorted.
func (t *Set) Keys() []string {
	return t.store.Keys()
}

// Flat returns the extracted keys with their default values.
func (t *Set) Flat() map[string]string {
	return t.store.Map()
}

// ForLanguage merges the extracted keys with the flattened values of an
// existing document. Defaults are used only when useDefault is set.
func (t *Set) ForLanguage(existing map[string]string, useDefault bool) (Result, Stats) {
	var stats Stats
	merged := keystore.New()

	for _, e := range t.store.Entries() {
		value := ""
		if useDefault {
			value = e.Value
		}
		merged.Set(e.Key, value)
		if _, ok := existing[e.Key]; !ok {
			stats.Added++
		}
	}

	for _, k := range slices.Sorted(maps.Keys(existing)) {
		v := existing[k]
		cur, extracted := merged.Get(k)
		switch {
		case extracted:
			stats.Kept++
			if !t.params.SafeMode || v != "" || cur == "" {
				merged.Set(k, v)
			}
		case t.params.SafeMode:
			stats.Kept++
			merged.Set(k, v)
		default:
			stats.Deleted++
		}
	}

	stats.Total = merged.Len()
	for _, e := range merged.Entries() {
		if e.Value == "" {
			stats.Empty++
		}
	}
	return Result{Values: merged, Document: t.render(merged)}, stats
}

func (t *Set) render(s *keystore.Store) map[string]any {
	if t.params.Tree {
		return keystore.BuildTree(s, t.params.SafeMode, t.params.NullEmpty)
	}
	out := make(map[string]any, s.Len())
	for _, e := range s.Entries() {
		if e.Value == "" && t.params.NullEmpty {
			out[e.Key] = nil
			continue
		}
		out[e.Key] = e.Value
	}
	return out
}

// FlattenJSON reads a flat or nested JSON document into dotted keys.
// Null leaves become empty values; other scalars keep their text.
func FlattenJSON(data []byte) (map[string]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidDocument
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrInvalidDocument
	}
	out := make(map[string]string)
	flatten(root, "", out)
	return out, nil
}

func flatten(v gjson.Result, prefix string, out map[string]string) {
	v.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if prefix != "" {
			k = prefix + keystore.Separator + k
		}
		switch {
		case value.IsObject():
			flatten(value, k, out)
		case value.Type == gjson.Null:
			out[k] = ""
		default:
			out[k] = value.String()
		}
		return true
	})
}
