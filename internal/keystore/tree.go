package keystore

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Separator splits keys into namespace segments.
const Separator = "."

// TreeBuilder expands dotted keys into nested maps.
//
// Leaves without a value are rendered as their own dotted path, or as nil
// when NullEmpty is set. With SafeMode an insertion never replaces a
// non-empty leaf with an empty value.
type TreeBuilder struct {
	SafeMode  bool
	NullEmpty bool

	root      map[string]any
	conflicts int
}

// NewTreeBuilder creates an empty builder.
func NewTreeBuilder(safeMode, nullEmpty bool) *TreeBuilder {
	return &TreeBuilder{
		SafeMode:  safeMode,
		NullEmpty: nullEmpty,
		root:      make(map[string]any),
	}
}

// BuildTree expands every key of s.
func BuildTree(s *Store, safeMode, nullEmpty bool) map[string]any {
	b := NewTreeBuilder(safeMode, nullEmpty)
	for _, e := range s.Entries() {
		b.Insert(e.Key, e.Value)
	}
	return b.Tree()
}

// Insert places value at the path formed by key's segments. A key that
// collides with an existing branch or leaf replaces it.
func (b *TreeBuilder) Insert(key, value string) {
	segs := strings.Split(key, Separator)
	node := b.root
	for _, seg := range segs[:len(segs)-1] {
		next, ok := node[seg].(map[string]any)
		if !ok {
			if _, exists := node[seg]; exists {
				b.conflict(key)
			}
			next = make(map[string]any)
			node[seg] = next
		}
		node = next
	}

	leaf := segs[len(segs)-1]
	switch cur := node[leaf].(type) {
	case map[string]any:
		b.conflict(key)
	case string:
		if b.SafeMode && cur != "" && value == "" {
			return
		}
	}
	node[leaf] = value
}

func (b *TreeBuilder) conflict(key string) {
	b.conflicts++
	log.Warn().Str("key", key).Msg("Namespace collision, later key replaces earlier entry")
}

// Conflicts returns how many insertions replaced a branch or a leaf of a
// different shape.
func (b *TreeBuilder) Conflicts() int {
	return b.conflicts
}

// Tree returns a copy of the built tree with empty leaves filled.
func (b *TreeBuilder) Tree() map[string]any {
	return b.fill(b.root, "")
}

func (b *TreeBuilder) fill(node map[string]any, path string) map[string]any {
	out := make(map[string]any, len(node))
	for k, v := range node {
		p := k
		if path != "" {
			p = path + Separator + k
		}
		switch val := v.(type) {
		case map[string]any:
			out[k] = b.fill(val, p)
		case string:
			switch {
			case val != "":
				out[k] = val
			case b.NullEmpty:
				out[k] = nil
			default:
				out[k] = p
			}
		}
	}
	return out
}
