// Package dedup provides the insert-only content index an interner consults
// before allocating: a linear-probing hash table mapping exact byte content
// to a caller-supplied dense reference. Each entry caches its content hash,
// so growth moves entries without re-reading string bytes.
package dedup

const (
	minBuckets = 16
	// maxLoadNum/maxLoadDen is the occupancy ceiling before growth.
	maxLoadNum = 7
	maxLoadDen = 8
)

type entry struct {
	hash uint64
	str  string // view into arena-owned bytes
	ref  uint64 // caller reference + 1; 0 marks an empty bucket
}

// Table is an insert-only hash table keyed by string content. Entries are
// never updated or removed. The zero value is empty and ready to use.
// References must be below the maximum uint64 value.
//
// The caller supplies content hashes, so one hash computation per intern
// call serves both the lookup and the insert.
type Table struct {
	buckets []entry // length is always a power of two
	mask    uint64
	count   int
}

// New returns a table pre-sized to hold about n entries without growing.
func New(n int) Table {
	var t Table
	if n > 0 {
		t.rehash(bucketsFor(n))
	}
	return t
}

func bucketsFor(n int) int {
	b := minBuckets
	for b/maxLoadDen*maxLoadNum < n {
		b *= 2
	}
	return b
}

// Lookup reports the reference recorded for content byte-equal to s.
func (t *Table) Lookup(hash uint64, s string) (uint64, bool) {
	if t.count == 0 {
		return 0, false
	}
	for i := hash & t.mask; ; i = (i + 1) & t.mask {
		e := &t.buckets[i]
		if e.ref == 0 {
			return 0, false
		}
		if e.hash == hash && e.str == s {
			return e.ref - 1, true
		}
	}
}

// Insert records that content s maps to ref. The content must not already
// have an entry; the interner holds its lookup and insert under one write
// lock, so the precondition is structural rather than checked here.
func (t *Table) Insert(hash uint64, s string, ref uint64) {
	if t.buckets == nil {
		t.rehash(minBuckets)
	} else if (t.count+1)*maxLoadDen > len(t.buckets)*maxLoadNum {
		t.rehash(len(t.buckets) * 2)
	}
	t.place(entry{hash: hash, str: s, ref: ref + 1})
	t.count++
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return t.count
}

func (t *Table) place(e entry) {
	for i := e.hash & t.mask; ; i = (i + 1) & t.mask {
		if t.buckets[i].ref == 0 {
			t.buckets[i] = e
			return
		}
	}
}

func (t *Table) rehash(n int) {
	old := t.buckets
	t.buckets = make([]entry, n)
	t.mask = uint64(n - 1)
	for i := range old {
		if old[i].ref != 0 {
			t.place(old[i])
		}
	}
}
