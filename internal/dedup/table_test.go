package dedup

import (
	"fmt"
	"testing"

	"github.com/cespare/xxhash/v2"
)

func TestLookupMissOnEmpty(t *testing.T) {
	var tbl Table

	if _, ok := tbl.Lookup(xxhash.Sum64String("anything"), "anything"); ok {
		t.Error("empty table reported a hit")
	}
	if tbl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tbl.Len())
	}
}

func TestInsertThenLookup(t *testing.T) {
	var tbl Table

	h := xxhash.Sum64String("hello")
	tbl.Insert(h, "hello", 0)

	ref, ok := tbl.Lookup(h, "hello")
	if !ok || ref != 0 {
		t.Errorf("Lookup = %d, %v; want 0, true", ref, ok)
	}
	// Reference 0 must round-trip despite the internal empty-bucket
	// encoding.
	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}
	if _, ok := tbl.Lookup(xxhash.Sum64String("world"), "world"); ok {
		t.Error("missing content reported a hit")
	}
}

func TestGrowthPreservesEntries(t *testing.T) {
	var tbl Table

	const n = 5000
	for i := uint64(0); i < uint64(n); i++ {
		s := fmt.Sprintf("key_%d", i)
		tbl.Insert(xxhash.Sum64String(s), s, i)
	}
	if tbl.Len() != n {
		t.Fatalf("Len() = %d, want %d", tbl.Len(), n)
	}
	for i := uint64(0); i < uint64(n); i++ {
		s := fmt.Sprintf("key_%d", i)
		ref, ok := tbl.Lookup(xxhash.Sum64String(s), s)
		if !ok || ref != i {
			t.Fatalf("Lookup(%q) = %d, %v; want %d, true", s, ref, ok, i)
		}
	}
}

func TestHashCollisionsResolveByContent(t *testing.T) {
	var tbl Table

	// The caller supplies hashes, so forcing a collision is legal: the
	// probe must fall back to byte comparison.
	const hash = uint64(0xdeadbeef)
	tbl.Insert(hash, "first", 1)
	tbl.Insert(hash, "second", 2)

	if ref, ok := tbl.Lookup(hash, "first"); !ok || ref != 1 {
		t.Errorf("Lookup(first) = %d, %v; want 1, true", ref, ok)
	}
	if ref, ok := tbl.Lookup(hash, "second"); !ok || ref != 2 {
		t.Errorf("Lookup(second) = %d, %v; want 2, true", ref, ok)
	}
	if _, ok := tbl.Lookup(hash, "third"); ok {
		t.Error("colliding hash with unknown content reported a hit")
	}
}

func TestPreSizedTableDoesNotGrowEarly(t *testing.T) {
	tbl := New(1000)
	buckets := len(tbl.buckets)

	for i := uint64(0); i < uint64(1000); i++ {
		s := fmt.Sprintf("key_%d", i)
		tbl.Insert(xxhash.Sum64String(s), s, i)
	}
	if len(tbl.buckets) != buckets {
		t.Errorf("pre-sized table grew from %d to %d buckets", buckets, len(tbl.buckets))
	}
}

func TestEmptyStringContent(t *testing.T) {
	var tbl Table

	h := xxhash.Sum64String("")
	if _, ok := tbl.Lookup(h, ""); ok {
		t.Error("empty content reported a hit before insert")
	}
	tbl.Insert(h, "", 7)
	if ref, ok := tbl.Lookup(h, ""); !ok || ref != 7 {
		t.Errorf("Lookup(\"\") = %d, %v; want 7, true", ref, ok)
	}
}
