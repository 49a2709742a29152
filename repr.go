package intern

import (
	"errors"
	"fmt"
	"math"

	"fortio.org/safecast"
)

// ErrRange is reported when the number of distinct interned strings would
// exceed the representable range of the chosen handle backing. Retrying the
// same call cannot succeed; construct an interner with a wider backing and
// re-run instead.
var ErrRange = errors.New("interned handle range exhausted")

// Repr is the closed set of integer backings for an Istr. The backings trade
// address space for memory density: plain widths number handles 0, 1, 2, …;
// NonZero widths number 1, 2, 3, … and never produce the all-zero bit
// pattern, leaving it free as a "no handle" niche (see Istr.IsZero).
//
// The constraint methods are unexported, so no type outside this package can
// satisfy Repr.
type Repr[R any] interface {
	comparable
	// fromIndex converts a dense slot index into a backing value. It
	// reports ErrRange when the index does not fit. Called on the zero
	// value of R.
	fromIndex(idx uint64) (R, error)
	// toIndex inverts fromIndex. On a value fromIndex never produced
	// (such as the zero value of a NonZero backing) it yields an
	// out-of-range index, never a colliding valid one.
	toIndex() uint64
	// raw exposes the backing bits for serialization and debug output.
	raw() uint64
	// fromRaw validates and adopts serialized backing bits. Called on
	// the zero value of R.
	fromRaw(v uint64) (R, error)
}

type (
	// Uint32 backs handles with 32 bits, numbered from 0.
	Uint32 uint32
	// Uint64 backs handles with 64 bits, numbered from 0.
	Uint64 uint64
	// Uintptr backs handles with pointer-sized words, numbered from 0.
	Uintptr uintptr
	// NonZeroUint32 backs handles with 32 bits, numbered from 1. The
	// zero bit pattern is the "no handle" niche.
	NonZeroUint32 uint32
	// NonZeroUint64 backs handles with 64 bits, numbered from 1. The
	// zero bit pattern is the "no handle" niche.
	NonZeroUint64 uint64
	// NonZeroUintptr backs handles with pointer-sized words, numbered
	// from 1. The zero bit pattern is the "no handle" niche. This is the
	// default backing used by New.
	NonZeroUintptr uintptr
)

func (Uint32) fromIndex(idx uint64) (Uint32, error) {
	v, err := safecast.Conv[uint32](idx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRange, err)
	}
	return Uint32(v), nil
}

func (r Uint32) toIndex() uint64 { return uint64(r) }
func (r Uint32) raw() uint64     { return uint64(r) }

func (Uint32) fromRaw(v uint64) (Uint32, error) {
	n, err := safecast.Conv[uint32](v)
	if err != nil {
		return 0, fmt.Errorf("uint32 backing: %w", err)
	}
	return Uint32(n), nil
}

func (Uint64) fromIndex(idx uint64) (Uint64, error) { return Uint64(idx), nil }

func (r Uint64) toIndex() uint64 { return uint64(r) }
func (r Uint64) raw() uint64     { return uint64(r) }

func (Uint64) fromRaw(v uint64) (Uint64, error) { return Uint64(v), nil }

func (Uintptr) fromIndex(idx uint64) (Uintptr, error) {
	v, err := safecast.Conv[uintptr](idx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRange, err)
	}
	return Uintptr(v), nil
}

func (r Uintptr) toIndex() uint64 { return uint64(r) }
func (r Uintptr) raw() uint64     { return uint64(r) }

func (Uintptr) fromRaw(v uint64) (Uintptr, error) {
	n, err := safecast.Conv[uintptr](v)
	if err != nil {
		return 0, fmt.Errorf("uintptr backing: %w", err)
	}
	return Uintptr(n), nil
}

func (NonZeroUint32) fromIndex(idx uint64) (NonZeroUint32, error) {
	if idx >= math.MaxUint32 {
		return 0, fmt.Errorf("%w: index %d does not fit a non-zero uint32", ErrRange, idx)
	}
	return NonZeroUint32(idx + 1), nil
}

func (r NonZeroUint32) toIndex() uint64 { return uint64(r) - 1 }
func (r NonZeroUint32) raw() uint64     { return uint64(r) }

func (NonZeroUint32) fromRaw(v uint64) (NonZeroUint32, error) {
	if v == 0 {
		return 0, errors.New("zero value for non-zero uint32 backing")
	}
	n, err := safecast.Conv[uint32](v)
	if err != nil {
		return 0, fmt.Errorf("non-zero uint32 backing: %w", err)
	}
	return NonZeroUint32(n), nil
}

func (NonZeroUint64) fromIndex(idx uint64) (NonZeroUint64, error) {
	if idx == math.MaxUint64 {
		return 0, fmt.Errorf("%w: index %d does not fit a non-zero uint64", ErrRange, idx)
	}
	return NonZeroUint64(idx + 1), nil
}

func (r NonZeroUint64) toIndex() uint64 { return uint64(r) - 1 }
func (r NonZeroUint64) raw() uint64     { return uint64(r) }

func (NonZeroUint64) fromRaw(v uint64) (NonZeroUint64, error) {
	if v == 0 {
		return 0, errors.New("zero value for non-zero uint64 backing")
	}
	return NonZeroUint64(v), nil
}

func (NonZeroUintptr) fromIndex(idx uint64) (NonZeroUintptr, error) {
	if idx == math.MaxUint64 {
		return 0, fmt.Errorf("%w: index %d does not fit a non-zero uintptr", ErrRange, idx)
	}
	v, err := safecast.Conv[uintptr](idx + 1)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRange, err)
	}
	return NonZeroUintptr(v), nil
}

func (r NonZeroUintptr) toIndex() uint64 { return uint64(r) - 1 }
func (r NonZeroUintptr) raw() uint64     { return uint64(r) }

func (NonZeroUintptr) fromRaw(v uint64) (NonZeroUintptr, error) {
	if v == 0 {
		return 0, errors.New("zero value for non-zero uintptr backing")
	}
	n, err := safecast.Conv[uintptr](v)
	if err != nil {
		return 0, fmt.Errorf("non-zero uintptr backing: %w", err)
	}
	return NonZeroUintptr(n), nil
}
