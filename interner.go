package intern

import (
	"fmt"
	"slices"
	"sync"
	"unsafe"

	"github.com/cespare/xxhash/v2"

	"github.com/SamuelMcGowan/unpaid-intern/internal/bytearena"
	"github.com/SamuelMcGowan/unpaid-intern/internal/dedup"
)

// ErrArenaLimit is reported when interning a string would push the backing
// arena past the byte ceiling configured with WithMaxBytes.
var ErrArenaLimit = bytearena.ErrLimit

// Interner is storage for interned strings. Each distinct string is copied
// into an append-only arena exactly once, recorded in a dense slot sequence
// ordered by handle, and indexed by content for deduplication.
//
// An Interner is safe for concurrent use: reads share a lock, and only an
// intern miss takes the exclusive lock, mutating the arena, the index, and
// the slot sequence as one unit.
type Interner[R Repr[R]] struct {
	mu    sync.RWMutex
	arena *bytearena.Arena
	index dedup.Table
	slots []string // handle index -> arena view, in interning order
}

// New returns an empty interner with the default NonZeroUintptr backing.
func New(opts ...Option) *Interner[NonZeroUintptr] {
	return NewWithRepr[NonZeroUintptr](opts...)
}

// NewWithRepr returns an empty interner whose handles use the backing R.
func NewWithRepr[R Repr[R]](opts ...Option) *Interner[R] {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}
	in := &Interner[R]{arena: bytearena.New(cfg.maxBytes)}
	if cfg.capacity > 0 {
		in.index = dedup.New(cfg.capacity)
		in.slots = make([]string, 0, cfg.capacity)
	}
	return in
}

// Intern deduplicates and registers s, returning its handle. Repeated calls
// with byte-equal content return the same handle; interning a duplicate does
// not advance the handle counter. Panics if the handle range or the
// configured arena ceiling is exhausted; use TryIntern to observe those as
// errors.
func (in *Interner[R]) Intern(s string) Istr[R] {
	h, err := in.TryIntern(s)
	if err != nil {
		panic(fmt.Errorf("intern: %w", err))
	}
	return h
}

// TryIntern is Intern with resource exhaustion reported as an error:
// ErrRange when the backing has no handle values left, ErrArenaLimit when
// the arena ceiling would be exceeded. On error the interner is unchanged.
func (in *Interner[R]) TryIntern(s string) (Istr[R], error) {
	hash := xxhash.Sum64String(s)

	in.mu.RLock()
	ref, ok := in.index.Lookup(hash, s)
	in.mu.RUnlock()
	if ok {
		return istrAt[R](ref), nil
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	return in.internLocked(hash, s)
}

// InternBytes interns the content of b. The index is probed through a
// zero-copy view of b, so the hit path allocates nothing; b is copied into
// the arena only on a miss. b must not be mutated during the call.
func (in *Interner[R]) InternBytes(b []byte) Istr[R] {
	h, err := in.TryInternBytes(b)
	if err != nil {
		panic(fmt.Errorf("intern: %w", err))
	}
	return h
}

// TryInternBytes is InternBytes with resource exhaustion reported as an
// error, as for TryIntern.
func (in *Interner[R]) TryInternBytes(b []byte) (Istr[R], error) {
	return in.TryIntern(bytesView(b))
}

// internLocked re-checks the index under the write lock and completes a
// miss. The range check runs before the arena copy, and the copy before the
// index and slot appends, so a failure leaves all state untouched.
func (in *Interner[R]) internLocked(hash uint64, s string) (Istr[R], error) {
	if ref, ok := in.index.Lookup(hash, s); ok {
		return istrAt[R](ref), nil
	}

	var zero R
	repr, err := zero.fromIndex(uint64(len(in.slots)))
	if err != nil {
		return Istr[R]{}, err
	}
	view, err := in.arena.AppendString(s)
	if err != nil {
		return Istr[R]{}, err
	}
	in.index.Insert(hash, view, uint64(len(in.slots)))
	in.slots = append(in.slots, view)
	return Istr[R]{repr: repr}, nil
}

// GetInterned returns the handle already assigned to s, without interning s
// when it has no entry.
func (in *Interner[R]) GetInterned(s string) (Istr[R], bool) {
	hash := xxhash.Sum64String(s)
	in.mu.RLock()
	ref, ok := in.index.Lookup(hash, s)
	in.mu.RUnlock()
	if !ok {
		return Istr[R]{}, false
	}
	return istrAt[R](ref), true
}

// Lookup returns the string for a handle produced by this interner. It is a
// positional read of the slot sequence: no allocation, no hashing. A handle
// produced by a different interner resolves to an arbitrary string or to
// ok == false — provenance cannot be verified cheaply.
func (in *Interner[R]) Lookup(h Istr[R]) (string, bool) {
	idx := h.repr.toIndex()
	in.mu.RLock()
	defer in.mu.RUnlock()
	if idx >= uint64(len(in.slots)) {
		return "", false
	}
	return in.slots[idx], true
}

// MustLookup is Lookup for handles known to come from this interner; it
// panics instead of reporting absence.
func (in *Interner[R]) MustLookup(h Istr[R]) string {
	s, ok := in.Lookup(h)
	if !ok {
		panic("intern: string not in interner")
	}
	return s
}

// Has reports whether h resolves in this interner.
func (in *Interner[R]) Has(h Istr[R]) bool {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return h.repr.toIndex() < uint64(len(in.slots))
}

// Len returns the number of distinct strings interned so far.
func (in *Interner[R]) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.slots)
}

// Bytes returns the total content bytes held by the arena.
func (in *Interner[R]) Bytes() uint64 {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.arena.Bytes()
}

// Snapshot returns a copy of the slot sequence in handle order: element i is
// the string whose handle has dense index i. The string views are shared
// with the interner; the slice belongs to the caller.
func (in *Interner[R]) Snapshot() []string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return slices.Clone(in.slots)
}

// istrAt rebuilds the handle for a dense index the interner has already
// assigned. fromIndex vetted the index at insertion, so a failure here is a
// corrupted-index logic error, not a caller mistake.
func istrAt[R Repr[R]](idx uint64) Istr[R] {
	var zero R
	repr, err := zero.fromIndex(idx)
	if err != nil {
		panic(fmt.Errorf("interner index outside backing range: %w", err))
	}
	return Istr[R]{repr: repr}
}

// bytesView reinterprets b as a string without copying. The view must not
// outlive the call it is passed to; the intern path copies content into the
// arena before retaining anything.
func bytesView(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
