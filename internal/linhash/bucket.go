package linhash

// slotsPerBucket is the number of key-value slots each bucket holds.
const slotsPerBucket = 4

// bucket is one link in a chain: a home bucket plus zero or more
// overflow buckets hanging off next.
type bucket[V any] struct {
	used int
	keys [slotsPerBucket]Key
	vals [slotsPerBucket]V
	next *bucket[V]
}

// find returns the slot holding key, or -1.
func (b *bucket[V]) find(key Key) int {
	for j := 0; j < b.used; j++ {
		if b.keys[j].Equal(key) {
			return j
		}
	}
	return -1
}

func (b *bucket[V]) full() bool { return b.used == slotsPerBucket }

func (b *bucket[V]) add(key Key, val V) {
	b.keys[b.used] = key
	b.vals[b.used] = val
	b.used++
}

// removeAt drops slot j and compacts the remaining slots of this bucket.
// Entries in overflow buckets further down the chain stay where they are.
func (b *bucket[V]) removeAt(j int) {
	var zero V
	copy(b.keys[j:], b.keys[j+1:b.used])
	copy(b.vals[j:], b.vals[j+1:b.used])
	b.used--
	b.keys[b.used] = Key{}
	b.vals[b.used] = zero
}
