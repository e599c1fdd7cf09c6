// Package keystore accumulates extracted translation keys and expands them
// into namespace trees.
package keystore

import "sort"

// Entry is one extracted key with its default value ("" for none).
type Entry struct {
	Key   string
	Value string
}

// Store maps translation keys to default values. A later Set for an
// existing key overwrites the previous value.
type Store struct {
	values map[string]string
	order  []string
}

// New creates an empty store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// FromMap creates a store holding m, inserted in sorted key order.
func FromMap(m map[string]string) *Store {
	s := New()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s.Set(k, m[k])
	}
	return s
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.order = append(s.order, key)
	}
	s.values[key] = value
}

// SetIfAbsent stores value only when key is not present yet.
func (s *Store) SetIfAbsent(key, value string) bool {
	if _, ok := s.values[key]; ok {
		return false
	}
	s.Set(key, value)
	return true
}

// Add stores every entry in order.
func (s *Store) Add(entries ...Entry) {
	for _, e := range entries {
		s.Set(e.Key, e.Value)
	}
}

// Merge applies other's entries on top of s.
func (s *Store) Merge(other *Store) {
	for _, k := range other.order {
		s.Set(k, other.values[k])
	}
}

// Get returns the default value stored for key.
func (s *Store) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Len returns the number of keys.
func (s *Store) Len() int {
	return len(s.values)
}

// Keys returns every key sorted.
func (s *Store) Keys() []string {
	keys := make([]string, len(s.order))
	copy(keys, s.order)
	sort.Strings(keys)
	return keys
}

// Entries returns every entry sorted by key.
func (s *Store) Entries() []Entry {
	keys := s.Keys()
	out := make([]Entry, len(keys))
	for i, k := range keys {
		out[i] = Entry{Key: k, Value: s.values[k]}
	}
	return out
}

// Map returns a copy of the key/value mapping.
func (s *Store) Map() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
