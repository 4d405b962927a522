package stats

import "lonnstall/internal/core"

// OrderedMap is a map that iterates in first-insertion order.
type OrderedMap[K comparable, V any] struct {
	index map[K]int
	keys  []K
	vals  []V
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{index: make(map[K]int)}
}

// Set stores v under k. Overwriting an existing key keeps its position.
func (m *OrderedMap[K, V]) Set(k K, v V) {
	if i, ok := m.index[k]; ok {
		m.vals[i] = v
		return
	}
	m.index[k] = len(m.keys)
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
}

// Get returns the value stored under k.
func (m *OrderedMap[K, V]) Get(k K) (V, bool) {
	i, ok := m.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	return m.vals[i], true
}

// Update applies fn to the current value of k (the zero value if absent) and
// stores the result.
func (m *OrderedMap[K, V]) Update(k K, fn func(V) V) {
	cur, _ := m.Get(k)
	m.Set(k, fn(cur))
}

func (m *OrderedMap[K, V]) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Each calls fn for every entry in insertion order.
func (m *OrderedMap[K, V]) Each(fn func(K, V)) {
	for i, k := range m.keys {
		fn(k, m.vals[i])
	}
}

// GroupBy partitions records by keyFn. Groups appear in the order their key
// was first seen and records keep their input order within a group.
func GroupBy[K comparable](records []core.SalaryRecord, keyFn func(core.SalaryRecord) K) *OrderedMap[K, []core.SalaryRecord] {
	groups := NewOrderedMap[K, []core.SalaryRecord]()
	for _, r := range records {
		groups.Update(keyFn(r), func(rs []core.SalaryRecord) []core.SalaryRecord {
			return append(rs, r)
		})
	}
	return groups
}

// CountBy counts records per key in first-seen order.
func CountBy[K comparable](records []core.SalaryRecord, keyFn func(core.SalaryRecord) K) *OrderedMap[K, int] {
	counts := NewOrderedMap[K, int]()
	for _, r := range records {
		counts.Update(keyFn(r), func(n int) int { return n + 1 })
	}
	return counts
}
