package keystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LastWriteWins(t *testing.T) {
	s := New()
	s.Set("TITLE", "First")
	s.Set("TITLE", "")
	s.Set("OTHER", "x")

	v, ok := s.Get("TITLE")
	require.True(t, ok)
	assert.Equal(t, "", v)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"OTHER", "TITLE"}, s.Keys())
}

func TestStore_SetIfAbsent(t *testing.T) {
	s := New()
	s.Set("A", "kept")
	assert.False(t, s.SetIfAbsent("A", ""))
	assert.True(t, s.SetIfAbsent("B", ""))

	v, _ := s.Get("A")
	assert.Equal(t, "kept", v)
	assert.Equal(t, 2, s.Len())
}

func TestStore_MergeMatchesSequentialInsertion(t *testing.T) {
	first := New()
	first.Add(Entry{"A", "1"}, Entry{"B", "2"})
	second := New()
	second.Add(Entry{"B", "3"}, Entry{"C", ""}, Entry{"B", ""})

	merged := New()
	merged.Merge(first)
	merged.Merge(second)

	sequential := New()
	sequential.Add(Entry{"A", "1"}, Entry{"B", "2"}, Entry{"B", "3"}, Entry{"C", ""}, Entry{"B", ""})

	assert.Equal(t, sequential.Map(), merged.Map())
	assert.Equal(t, []Entry{{"A", "1"}, {"B", ""}, {"C", ""}}, merged.Entries())
}

func TestFromMap(t *testing.T) {
	s := FromMap(map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, []Entry{{"a", "1"}, {"b", "2"}}, s.Entries())
}

func TestStore_MapIsCopy(t *testing.T) {
	s := New()
	s.Set("A", "1")
	m := s.Map()
	m["A"] = "changed"
	v, _ := s.Get("A")
	assert.Equal(t, "1", v)
}
