// Package bytearena provides the append-only byte store backing an interner.
// Allocations are bump-pointer sub-slices of large chunks; a chunk is never
// resized or rewritten once a view points into it, so every returned view
// stays valid and immutable for the arena's lifetime.
package bytearena

import (
	"errors"
	"fmt"
	"unsafe"
)

const (
	firstChunkSize = 4 << 10
	maxChunkSize   = 1 << 20
)

// ErrLimit is reported when an append would push the arena past its
// configured byte ceiling.
var ErrLimit = errors.New("arena byte limit exceeded")

// Arena is a chunk-based bump allocator for string bytes. It performs no
// deduplication: two appends of identical content produce two independent,
// non-aliased regions. There is no way to free an individual region; the
// whole arena is released at once when it becomes garbage.
//
// Not safe for concurrent use; the interner serializes access.
type Arena struct {
	buf   []byte // current chunk; earlier chunks stay alive via views
	off   int
	next  int    // size of the next chunk to allocate
	used  uint64 // content bytes handed out
	limit uint64 // 0 means unlimited
}

// New returns an empty arena. A non-zero maxBytes caps the total content
// bytes the arena will store; appends past the cap fail with ErrLimit and
// leave the arena unchanged.
func New(maxBytes uint64) *Arena {
	return &Arena{next: firstChunkSize, limit: maxBytes}
}

// AppendString copies s into arena memory and returns a view over the copy.
// The view never aliases s.
func (a *Arena) AppendString(s string) (string, error) {
	if a.limit != 0 && a.used+uint64(len(s)) > a.limit {
		return "", fmt.Errorf("%w: %d bytes stored, %d requested, limit %d",
			ErrLimit, a.used, len(s), a.limit)
	}
	if len(s) == 0 {
		return "", nil
	}
	dst := a.alloc(len(s))
	copy(dst, s)
	a.used += uint64(len(s))
	// The region is never written again, so a string view over it is sound.
	return unsafe.String(unsafe.SliceData(dst), len(dst)), nil
}

// Bytes returns the total content bytes stored so far. Chunk slack is not
// counted.
func (a *Arena) Bytes() uint64 {
	return a.used
}

// alloc hands out a full-capacity sub-slice of the current chunk, starting
// a new chunk when the current one lacks room. Growth never touches earlier
// chunks; they remain reachable through the views handed out.
func (a *Arena) alloc(size int) []byte {
	if a.off+size > len(a.buf) {
		a.grow(size)
	}
	dst := a.buf[a.off : a.off+size : a.off+size]
	a.off += size
	return dst
}

// grow allocates the next chunk. Chunk sizes double from 4 KiB up to 1 MiB;
// a request larger than the scheduled chunk gets a dedicated chunk of its
// exact size so the growth curve stays bounded.
func (a *Arena) grow(size int) {
	n := a.next
	if size > n {
		a.buf = make([]byte, size)
		a.off = 0
		return
	}
	a.buf = make([]byte, n)
	a.off = 0
	if a.next < maxChunkSize {
		a.next *= 2
		if a.next > maxChunkSize {
			a.next = maxChunkSize
		}
	}
}
