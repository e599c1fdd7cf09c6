package keystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTree_NestsSegments(t *testing.T) {
	s := New()
	s.Set("a.b.c", "")
	s.Set("a.b.d", "Dee")
	s.Set("top", "")

	tree := BuildTree(s, false, false)

	assert.Equal(t, map[string]any{
		"a": map[string]any{
			"b": map[string]any{
				"c": "a.b.c",
				"d": "Dee",
			},
		},
		"top": "top",
	}, tree)
}

func TestBuildTree_NullEmpty(t *testing.T) {
	s := New()
	s.Set("a.b.c", "")
	s.Set("a.x", "X")

	tree := BuildTree(s, false, true)

	assert.Equal(t, map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": nil},
			"x": "X",
		},
	}, tree)
}

func TestTreeBuilder_SafeMode(t *testing.T) {
	tests := []struct {
		name     string
		safeMode bool
		values   []string
		want     any
	}{
		{"unsafe overwrites with empty", false, []string{"Hello", ""}, "greeting.hi"},
		{"safe keeps non-empty", true, []string{"Hello", ""}, "Hello"},
		{"safe accepts non-empty over non-empty", true, []string{"Hello", "Hi"}, "Hi"},
		{"safe fills empty", true, []string{"", "Hi"}, "Hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewTreeBuilder(tt.safeMode, false)
			for _, v := range tt.values {
				b.Insert("greeting.hi", v)
			}
			tree := b.Tree()
			assert.Equal(t, tt.want, tree["greeting"].(map[string]any)["hi"])
		})
	}
}

func TestTreeBuilder_Collision(t *testing.T) {
	b := NewTreeBuilder(false, false)
	b.Insert("a.b", "leaf")
	b.Insert("a.b.c", "deeper")

	assert.Equal(t, 1, b.Conflicts())
	assert.Equal(t, map[string]any{
		"a": map[string]any{"b": map[string]any{"c": "deeper"}},
	}, b.Tree())

	b.Insert("a.b", "leaf again")
	assert.Equal(t, 2, b.Conflicts())
	assert.Equal(t, map[string]any{
		"a": map[string]any{"b": "leaf again"},
	}, b.Tree())
}

func TestTreeBuilder_EveryKeyIsALeaf(t *testing.T) {
	s := New()
	keys := []string{"x.one", "x.two", "y.z.w", "plain"}
	for _, k := range keys {
		s.Set(k, "")
	}
	tree := BuildTree(s, false, false)

	var leaves []string
	var walk func(node map[string]any)
	walk = func(node map[string]any) {
		for _, v := range node {
			switch val := v.(type) {
			case map[string]any:
				walk(val)
			case string:
				leaves = append(leaves, val)
			}
		}
	}
	walk(tree)
	assert.ElementsMatch(t, keys, leaves)
}
