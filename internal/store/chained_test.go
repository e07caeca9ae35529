package store

import (
	"bytes"
	"fmt"
	"testing"
)

func TestChainedTableDuplicateRejected(t *testing.T) {
	table, err := NewChainedTable[string](7)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !table.Insert("x", "first") {
		t.Error("Expected first insert to succeed")
	}
	if table.Insert("x", "second") {
		t.Error("Expected duplicate insert to be rejected")
	}

	value, ok := table.Find("x")
	if !ok {
		t.Fatal("Expected x to exist")
	}
	if value != "first" {
		t.Errorf("Expected first, got %s", value)
	}
	if table.Len() != 1 {
		t.Errorf("Expected length 1, got %d", table.Len())
	}
}

func TestChainedTableCollisions(t *testing.T) {
	obs := &recordingObserver{}
	table, err := NewChainedTable[int](11, WithObserver(obs))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	table.Insert("A", 1)
	if table.Collisions() != 0 {
		t.Errorf("Expected 0 collisions, got %d", table.Collisions())
	}

	table.Insert("L", 2)
	if table.Collisions() != 1 {
		t.Errorf("Expected 1 collision, got %d", table.Collisions())
	}

	table.Insert("K", 3)
	if table.Collisions() != 1 {
		t.Errorf("Expected K to land in an empty bucket, got %d collisions", table.Collisions())
	}

	// Rejected duplicates still count: the bucket was non-empty.
	table.Insert("A", 4)
	if table.Collisions() != 2 {
		t.Errorf("Expected 2 collisions, got %d", table.Collisions())
	}

	if len(obs.collisions) != 2 || obs.collisions[0] != 10 || obs.keys[0] != "L" {
		t.Errorf("Unexpected observed collisions: %v %v", obs.collisions, obs.keys)
	}

	for key, want := range map[string]int{"A": 1, "L": 2, "K": 3} {
		if got, ok := table.Find(key); !ok || got != want {
			t.Errorf("Expected %s=%d, got %d (found=%v)", key, want, got, ok)
		}
	}
}

func TestChainedTableRemove(t *testing.T) {
	table, _ := NewChainedTable[int](11)

	table.Insert("A", 1)
	table.Insert("L", 2)
	table.Insert("W", 3)

	if !table.Remove("L") {
		t.Error("Expected L to be removed")
	}
	if _, ok := table.Find("L"); ok {
		t.Error("Expected L to not exist after removal")
	}
	if table.Remove("L") {
		t.Error("Expected second remove of L to return false")
	}
	if table.Remove("missing") {
		t.Error("Expected remove of missing key to return false")
	}

	if v, ok := table.Find("A"); !ok || v != 1 {
		t.Errorf("Expected A=1, got %d (found=%v)", v, ok)
	}
	if v, ok := table.Find("W"); !ok || v != 3 {
		t.Errorf("Expected W=3, got %d (found=%v)", v, ok)
	}
	if table.Len() != 2 {
		t.Errorf("Expected length 2, got %d", table.Len())
	}

	if !table.Insert("L", 5) {
		t.Error("Expected L to be insertable again after removal")
	}
	if v, _ := table.Find("L"); v != 5 {
		t.Errorf("Expected L=5, got %d", v)
	}
}

func TestChainedTableNoDataLoss(t *testing.T) {
	table, _ := NewChainedTable[int](13)

	for i := 0; i < 500; i++ {
		if !table.Insert(fmt.Sprintf("key-%d", i), i) {
			t.Fatalf("Expected insert of key-%d to succeed", i)
		}
	}

	if table.Capacity() != 13 {
		t.Errorf("Expected chained capacity to stay 13, got %d", table.Capacity())
	}
	if table.Len() != 500 {
		t.Errorf("Expected length 500, got %d", table.Len())
	}
	for i := 0; i < 500; i++ {
		v, ok := table.Find(fmt.Sprintf("key-%d", i))
		if !ok || v != i {
			t.Errorf("Expected key-%d=%d, got %d (found=%v)", i, i, v, ok)
		}
	}
	if table.Collisions() < 500-13 {
		t.Errorf("Expected at least %d collisions, got %d", 500-13, table.Collisions())
	}
}

func TestChainedTableCollisionsMonotonic(t *testing.T) {
	table, _ := NewChainedTable[int](5)

	var last uint64
	for i := 0; i < 200; i++ {
		key := fmt.Sprintf("k%d", i%40)
		if i%3 == 0 {
			table.Remove(key)
		} else {
			table.Insert(key, i)
		}
		if table.Collisions() < last {
			t.Fatalf("Collision count decreased from %d to %d", last, table.Collisions())
		}
		last = table.Collisions()
	}
}

func TestChainedTableDump(t *testing.T) {
	table, _ := NewChainedTable[int](3)

	table.Insert("a", 1)
	table.Insert("d", 2)
	table.Insert("b", 3)

	var buf bytes.Buffer
	if err := table.Dump(&buf); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := "Hash Table (Separate Chaining):\n" +
		"0: \n" +
		"1: (a, 1) (d, 2) \n" +
		"2: (b, 3) \n" +
		"Total Collisions: 1\n"
	if buf.String() != expected {
		t.Errorf("Expected dump:\n%s\ngot:\n%s", expected, buf.String())
	}
}
