// Package importer harvests translation keys from structured documents,
// such as previously authored JSON, by collecting the string values of
// label fields.
package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"i18nextract/internal/keystore"
)

// DefaultLabelField is always recognized, whatever the configuration says.
const DefaultLabelField = "label"

// ErrInvalidJSON is returned for documents gjson cannot parse.
var ErrInvalidJSON = errors.New("invalid JSON document")

// Importer walks documents for label fields.
type Importer struct {
	fields map[string]bool
}

// New creates an importer recognizing fields plus DefaultLabelField.
func New(fields ...string) *Importer {
	im := &Importer{fields: map[string]bool{DefaultLabelField: true}}
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			im.fields[f] = true
		}
	}
	return im
}

// Fields returns the recognized label fields, sorted.
func (im *Importer) Fields() []string {
	out := make([]string, 0, len(im.fields))
	for f := range im.fields {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// ImportFiles merges the labels of every file into s, in order, and returns
// the number of keys that were not present before.
func (im *Importer) ImportFiles(paths []string, s *keystore.Store) (int, error) {
	total := 0
	for _, p := range paths {
		n, err := im.ImportFile(p, s)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// ImportFile reads one JSON or YAML document and merges its labels into s
// with an empty default. Keys already in s are left untouched.
func (im *Importer) ImportFile(path string, s *keystore.Store) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read document: %w", err)
	}

	var labels []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		labels, err = im.LabelsYAML(data)
	default:
		labels, err = im.LabelsJSON(data)
	}
	if err != nil {
		return 0, fmt.Errorf("parse document %s: %w", path, err)
	}

	added := 0
	for _, l := range labels {
		key := strings.TrimSpace(l)
		if key == "" {
			continue
		}
		if s.SetIfAbsent(key, "") {
			added++
		}
	}
	log.Debug().Str("file", path).Int("labels", len(labels)).Int("added", added).Msg("Imported document")
	return added, nil
}

// LabelsJSON returns the label values of a JSON document in document order.
func (im *Importer) LabelsJSON(data []byte) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	var out []string
	im.walkJSON(gjson.ParseBytes(data), &out)
	return out, nil
}

func (im *Importer) walkJSON(v gjson.Result, out *[]string) {
	if !v.IsObject() && !v.IsArray() {
		return
	}
	isObject := v.IsObject()
	v.ForEach(func(key, value gjson.Result) bool {
		if isObject && value.Type == gjson.String && im.fields[key.String()] {
			*out = append(*out, value.String())
			return true
		}
		im.walkJSON(value, out)
		return true
	})
}

// LabelsYAML returns the label values of a YAML document in document order.
func (im *Importer) LabelsYAML(data []byte) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	var out []string
	im.walkYAML(&doc, &out)
	return out, nil
}

func (im *Importer) walkYAML(n *yaml.Node, out *[]string) {
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range n.Content {
			im.walkYAML(c, out)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if v.Kind == yaml.ScalarNode && v.ShortTag() == "!!str" && im.fields[k.Value] {
				*out = append(*out, v.Value)
				continue
			}
			im.walkYAML(v, out)
		}
	case yaml.AliasNode:
		if n.Alias != nil {
			im.walkYAML(n.Alias, out)
		}
	}
}
