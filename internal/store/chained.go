package store

import (
	"fmt"
	"io"

	"github.com/valyala/bytebufferpool"
)

type entry[V any] struct {
	key   string
	value V
}

// ChainedTable resolves collisions by separate chaining. Its capacity is
// fixed at construction.
type ChainedTable[V any] struct {
	buckets    [][]entry[V]
	collisions uint64
	count      int
	observer   Observer
}

func NewChainedTable[V any](capacity uint64, opts ...Option) (*ChainedTable[V], error) {
	size, err := initialCapacity(capacity)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &ChainedTable[V]{
		buckets:  make([][]entry[V], size),
		observer: o.observer,
	}, nil
}

// Insert adds key with value. It returns false, leaving the stored value
// untouched, when key is already present.
func (t *ChainedTable[V]) Insert(key string, value V) bool {
	index := Hash(key, uint64(len(t.buckets)))
	bucket := t.buckets[index]

	if len(bucket) > 0 {
		t.collisions++
		t.observer.Collision(index, key)
	}

	for _, e := range bucket {
		if e.key == key {
			return false
		}
	}

	t.buckets[index] = append(bucket, entry[V]{key: key, value: value})
	t.count++
	return true
}

func (t *ChainedTable[V]) Find(key string) (V, bool) {
	for _, e := range t.buckets[Hash(key, uint64(len(t.buckets)))] {
		if e.key == key {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

func (t *ChainedTable[V]) Remove(key string) bool {
	index := Hash(key, uint64(len(t.buckets)))
	bucket := t.buckets[index]
	for i, e := range bucket {
		if e.key == key {
			copy(bucket[i:], bucket[i+1:])
			var zero entry[V]
			bucket[len(bucket)-1] = zero
			t.buckets[index] = bucket[:len(bucket)-1]
			t.count--
			return true
		}
	}
	return false
}

func (t *ChainedTable[V]) Collisions() uint64 {
	return t.collisions
}

func (t *ChainedTable[V]) Len() int {
	return t.count
}

func (t *ChainedTable[V]) Capacity() uint64 {
	return uint64(len(t.buckets))
}

func (t *ChainedTable[V]) Dump(w io.Writer) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString("Hash Table (Separate Chaining):\n")
	for i, bucket := range t.buckets {
		fmt.Fprintf(buf, "%d: ", i)
		for _, e := range bucket {
			fmt.Fprintf(buf, "(%s, %v) ", e.key, e.value)
		}
		buf.WriteByte('\n')
	}
	fmt.Fprintf(buf, "Total Collisions: %d\n", t.collisions)

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write chained table dump: %w", err)
	}
	return nil
}
