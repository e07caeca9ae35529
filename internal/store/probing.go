package store

import (
	"fmt"
	"io"

	"github.com/valyala/bytebufferpool"
)

type slotStatus byte

const (
	slotEmpty slotStatus = iota
	slotFilled
	slotTombstoned
)

type slot[V any] struct {
	key    string
	value  V
	status slotStatus
}

// ProbingTable resolves collisions by quadratic probing over a prime-sized
// slot array. It rehashes into NextPrime(2*capacity) slots as soon as the
// occupied count exceeds half the capacity. Tombstones stay in the occupied
// count until the next rehash drops them.
type ProbingTable[V any] struct {
	slots      []slot[V]
	occupied   uint64
	live       int
	collisions uint64
	observer   Observer
}

func NewProbingTable[V any](capacity uint64, opts ...Option) (*ProbingTable[V], error) {
	size, err := initialCapacity(capacity)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &ProbingTable[V]{
		slots:    make([]slot[V], size),
		observer: o.observer,
	}, nil
}

// Insert adds key with value and returns true. A key that is already present
// is rejected with false, matching ChainedTable.
func (t *ProbingTable[V]) Insert(key string, value V) bool {
	if _, ok := t.lookup(key); ok {
		return false
	}

	t.place(key, value)

	if t.occupied > uint64(len(t.slots))/2 {
		t.rehash()
	}
	return true
}

func (t *ProbingTable[V]) Find(key string) (V, bool) {
	if index, ok := t.lookup(key); ok {
		return t.slots[index].value, true
	}
	var zero V
	return zero, false
}

func (t *ProbingTable[V]) Remove(key string) bool {
	index, ok := t.lookup(key)
	if !ok {
		return false
	}
	t.slots[index] = slot[V]{status: slotTombstoned}
	t.live--
	return true
}

func (t *ProbingTable[V]) Collisions() uint64 {
	return t.collisions
}

func (t *ProbingTable[V]) Len() int {
	return t.live
}

func (t *ProbingTable[V]) Occupied() uint64 {
	return t.occupied
}

func (t *ProbingTable[V]) Capacity() uint64 {
	return uint64(len(t.slots))
}

func (t *ProbingTable[V]) Dump(w io.Writer) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString("Hash Table (Quadratic Probing):\n")
	for i, s := range t.slots {
		fmt.Fprintf(buf, "%d: ", i)
		switch s.status {
		case slotFilled:
			fmt.Fprintf(buf, "%v", s.value)
		case slotTombstoned:
			buf.WriteByte('X')
		}
		buf.WriteByte('\n')
	}
	fmt.Fprintf(buf, "Total Collisions: %d\n", t.collisions)

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write probing table dump: %w", err)
	}
	return nil
}

// probe walks start, start+1, start+4, ... (mod capacity) until visit
// returns true or capacity steps have been taken. Successive squares differ by
// 2i+1, so the index is advanced incrementally and never overflows.
func (t *ProbingTable[V]) probe(key string, visit func(index uint64) bool) bool {
	capacity := uint64(len(t.slots))
	index := Hash(key, capacity)
	for i := uint64(0); i < capacity; i++ {
		if visit(index) {
			return true
		}
		index = (index + 2*i + 1) % capacity
	}
	return false
}

func (t *ProbingTable[V]) lookup(key string) (uint64, bool) {
	var found uint64
	var ok bool
	t.probe(key, func(index uint64) bool {
		s := &t.slots[index]
		switch s.status {
		case slotEmpty:
			return true
		case slotFilled:
			if s.key == key {
				found, ok = index, true
				return true
			}
		}
		return false
	})
	return found, ok
}

func (t *ProbingTable[V]) place(key string, value V) {
	placed := t.probe(key, func(index uint64) bool {
		s := &t.slots[index]
		if s.status == slotFilled {
			t.collisions++
			t.observer.Collision(index, key)
			return false
		}
		*s = slot[V]{key: key, value: value, status: slotFilled}
		return true
	})
	if !placed {
		panic(fmt.Sprintf("store: no free slot for %q in %d slots", key, len(t.slots)))
	}
	t.occupied++
	t.live++
}

func (t *ProbingTable[V]) rehash() {
	old := t.slots
	capacity := NextPrime(2 * uint64(len(old)))

	t.observer.Rehash(uint64(len(old)), capacity)

	t.slots = make([]slot[V], capacity)
	t.occupied = 0
	t.live = 0
	for _, s := range old {
		if s.status == slotFilled {
			t.place(s.key, s.value)
		}
	}
}
