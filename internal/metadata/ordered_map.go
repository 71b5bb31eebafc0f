package metadata

import "slices"

// OrderedMap is a string map that remembers insertion order.
// The validator inserts keys in sorted order, so rendering is deterministic.
type OrderedMap struct {
	keys   []string
	values map[string]string
}

// NewOrderedMap returns an empty map.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]string)}
}

// Set stores value under key. Re-setting a key keeps its original position.
func (m *OrderedMap) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *OrderedMap) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Len returns the number of entries. A nil map is empty.
func (m *OrderedMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns an independent copy; cloning nil yields nil.
func (m *OrderedMap) Clone() *OrderedMap {
	if m == nil {
		return nil
	}
	out := &OrderedMap{
		keys:   slices.Clone(m.keys),
		values: make(map[string]string, len(m.values)),
	}
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}

// Map returns the entries as a plain Go map.
func (m *OrderedMap) Map() map[string]string {
	out := make(map[string]string, m.Len())
	if m == nil {
		return out
	}
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
