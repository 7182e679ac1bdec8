// Package linhash implements an in-memory hash map that grows with the
// Linear Hashing algorithm: instead of doubling and rehashing the whole
// table when the load factor is exceeded, it splits one bucket chain at
// a time, so growth cost is spread evenly across inserts.
package linhash

// loadThreshold is the upper bound on keyCount / capacity before the
// next chain is split.
const loadThreshold = 1.2

// initialChains is the number of home bucket chains a fresh map starts
// with (the initial low-resolution modulus).
const initialChains = 4

// Map is a Linear Hashing table from Key to V. It is not safe for
// concurrent mutation; see the relation package for the serialization
// contract.
type Map[V any] struct {
	table    []*bucket[V]
	mod1     int // low-resolution modulus: home chains before this split round
	mod2     int // high-resolution modulus, always 2*mod1
	isplit   int // next home chain due to split, 0 <= isplit < mod1
	keyCount int
}

func New[V any]() *Map[V] {
	m := &Map[V]{mod1: initialChains, mod2: 2 * initialChains}
	m.table = make([]*bucket[V], initialChains)
	for i := range m.table {
		m.table[i] = &bucket[V]{}
	}
	return m
}

// Len returns the number of stored entries.
func (m *Map[V]) Len() int { return m.keyCount }

// Size returns the current home capacity: slots per bucket times the
// number of home chains.
func (m *Map[V]) Size() int { return slotsPerBucket * (m.mod1 + m.isplit) }

// LoadFactor is keyCount over home capacity.
func (m *Map[V]) LoadFactor() float64 { return float64(m.keyCount) / float64(m.Size()) }

func (m *Map[V]) hashLow(k Key) int  { return int(k.Hash() % uint32(m.mod1)) }
func (m *Map[V]) hashHigh(k Key) int { return int(k.Hash() % uint32(m.mod2)) }

// address resolves the authoritative chain for a key. A chain below
// isplit has already been split this round, so the high-resolution hash
// decides between it and its split image at a+mod1. Get, Put and Delete
// all use this same rule.
func (m *Map[V]) address(k Key) int {
	a := m.hashLow(k)
	if a < m.isplit {
		return m.hashHigh(k)
	}
	return a
}

// Get scans the addressed chain front to back and returns the first
// matching entry. It has no side effects.
func (m *Map[V]) Get(k Key) (V, bool) {
	for b := m.table[m.address(k)]; b != nil; b = b.next {
		if j := b.find(k); j >= 0 {
			return b.vals[j], true
		}
	}
	var zero V
	return zero, false
}

// Put inserts or overwrites. When the key already exists its value is
// replaced in place and the previous value returned (last-write-wins).
// A genuine insert may trigger a chain split once the load factor
// passes the threshold; the split completes before Put returns.
func (m *Map[V]) Put(k Key, v V) (prev V, existed bool) {
	i := m.address(k)
	for b := m.table[i]; b != nil; b = b.next {
		if j := b.find(k); j >= 0 {
			prev = b.vals[j]
			b.vals[j] = v
			return prev, true
		}
	}

	m.appendTo(i, k, v)
	m.keyCount++
	if m.LoadFactor() > loadThreshold {
		m.split()
	}
	return prev, false
}

// appendTo places the entry in the first bucket of chain i with a free
// slot, allocating an overflow bucket at the chain tail if needed.
func (m *Map[V]) appendTo(i int, k Key, v V) {
	b := m.table[i]
	for {
		if !b.full() {
			b.add(k, v)
			return
		}
		if b.next == nil {
			break
		}
		b = b.next
	}
	ovfl := &bucket[V]{}
	ovfl.add(k, v)
	b.next = ovfl
}

// split redistributes chain isplit between itself and a new home chain
// appended at position mod1+isplit, using the high-resolution hash.
// Both chains are rebuilt compactly so no empty overflow buckets are
// retained. Completing a round doubles the moduli and resets isplit.
func (m *Map[V]) split() {
	i := m.isplit

	var keys []Key
	var vals []V
	for b := m.table[i]; b != nil; b = b.next {
		for j := 0; j < b.used; j++ {
			keys = append(keys, b.keys[j])
			vals = append(vals, b.vals[j])
		}
	}

	stay := &bucket[V]{}
	moved := &bucket[V]{}
	m.table[i] = stay
	m.table = append(m.table, moved)

	for n, k := range keys {
		dest := i
		if m.hashHigh(k) != i {
			dest = i + m.mod1
		}
		m.appendTo(dest, k, vals[n])
	}

	m.isplit++
	if m.isplit == m.mod1 {
		m.mod1 = m.mod2
		m.mod2 = 2 * m.mod1
		m.isplit = 0
	}
}

// Delete removes the entry for k, compacting the slots of the bucket it
// occupied. Chains are never merged; the table only grows.
func (m *Map[V]) Delete(k Key) bool {
	for b := m.table[m.address(k)]; b != nil; b = b.next {
		if j := b.find(k); j >= 0 {
			b.removeAt(j)
			m.keyCount--
			return true
		}
	}
	return false
}

// Range walks every chain in table order, every bucket in chain order
// and every occupied slot in bucket order, calling f until it returns
// false. Each call starts a fresh traversal.
func (m *Map[V]) Range(f func(k Key, v V) bool) {
	for _, home := range m.table {
		for b := home; b != nil; b = b.next {
			for j := 0; j < b.used; j++ {
				if !f(b.keys[j], b.vals[j]) {
					return
				}
			}
		}
	}
}

// Keys returns a snapshot of all stored keys in traversal order.
func (m *Map[V]) Keys() []Key {
	keys := make([]Key, 0, m.keyCount)
	m.Range(func(k Key, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}
