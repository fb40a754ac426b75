package unreal

import "fmt"

// Pair is one entry of an OrderedMap.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// OrderedMap is an insertion-ordered map. Entries are kept in file order so
// that encoding reproduces the input. Duplicate keys from a file are kept
// as separate entries; lookups see the first one.
type OrderedMap[K comparable, V any] struct {
	pairs []Pair[K, V]
	index map[K]int
}

// NewOrderedMap returns an empty map.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{index: make(map[K]int)}
}

// MapFromPairs builds a map holding pairs in order, duplicates included.
func MapFromPairs[K comparable, V any](pairs []Pair[K, V]) *OrderedMap[K, V] {
	m := &OrderedMap[K, V]{pairs: append([]Pair[K, V](nil), pairs...)}
	m.reindex()
	return m
}

// Len counts entries, duplicates included. A nil map is empty.
func (m *OrderedMap[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Get returns the value of the first entry with key k.
func (m *OrderedMap[K, V]) Get(k K) (V, bool) {
	if m != nil {
		if i, ok := m.index[k]; ok {
			return m.pairs[i].Value, true
		}
	}
	var zero V
	return zero, false
}

// Set updates the value of an existing key in place or appends a new entry.
func (m *OrderedMap[K, V]) Set(k K, v V) {
	if m.index == nil {
		m.index = make(map[K]int)
	}
	if i, ok := m.index[k]; ok {
		m.pairs[i].Value = v
		return
	}
	m.index[k] = len(m.pairs)
	m.pairs = append(m.pairs, Pair[K, V]{Key: k, Value: v})
}

// Delete removes every entry with key k.
func (m *OrderedMap[K, V]) Delete(k K) {
	if _, ok := m.index[k]; !ok {
		return
	}
	kept := m.pairs[:0]
	for _, p := range m.pairs {
		if p.Key != k {
			kept = append(kept, p)
		}
	}
	m.pairs = kept
	m.reindex()
}

func (m *OrderedMap[K, V]) reindex() {
	m.index = make(map[K]int, len(m.pairs))
	for i := len(m.pairs) - 1; i >= 0; i-- {
		m.index[m.pairs[i].Key] = i
	}
}

// Pairs returns the entries in order. The slice must not be modified.
func (m *OrderedMap[K, V]) Pairs() []Pair[K, V] {
	if m == nil {
		return nil
	}
	return m.pairs
}

func (m *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	for _, p := range m.Pairs() {
		keys = append(keys, p.Key)
	}
	return keys
}

// DecodeMap decodes a u32 count followed by that many key/value pairs.
func DecodeMap[K comparable, V any](d *Decoder, key func(*Decoder) (K, error), val func(*Decoder) (V, error)) (*OrderedMap[K, V], error) {
	n, err := d.Len(2)
	if err != nil {
		return nil, err
	}
	m := &OrderedMap[K, V]{
		pairs: make([]Pair[K, V], 0, min(n, d.cur.Remaining())),
	}
	for i := 0; i < n; i++ {
		k, err := key(d)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		v, err := val(d)
		if err != nil {
			return nil, fmt.Errorf("value %d (%v): %w", i, k, err)
		}
		m.pairs = append(m.pairs, Pair[K, V]{Key: k, Value: v})
	}
	m.reindex()
	return m, nil
}

// EncodeMap writes the count and the pairs in order. A nil map encodes as
// empty.
func EncodeMap[K comparable, V any](e *Encoder, m *OrderedMap[K, V], key func(*Encoder, K) error, val func(*Encoder, V) error) error {
	e.PutLen(m.Len())
	for i, p := range m.Pairs() {
		if err := key(e, p.Key); err != nil {
			return fmt.Errorf("key %d: %w", i, err)
		}
		if err := val(e, p.Value); err != nil {
			return fmt.Errorf("value %d (%v): %w", i, p.Key, err)
		}
	}
	return nil
}
