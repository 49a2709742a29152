package intern

import "fmt"

// Istr is the handle for one interned string: cheap to copy and to compare,
// internally just an integer. Istr values are comparable and usable as map
// keys in consumer-side structures. To get the string back, look the handle
// up in the interner that produced it; comparing or resolving handles across
// interners gives a nonsensical result.
//
// The type parameter selects the backing width (see Repr). For the NonZero
// backings the zero Istr value is the "no handle" sentinel, so an optional
// handle occupies exactly as much storage as a present one.
type Istr[R Repr[R]] struct {
	repr R
}

// IsZero reports whether h is the zero value. For the NonZero backings this
// means "no handle"; for the plain backings the zero value is the first
// handle an interner hands out, so IsZero is not an absence probe there.
func (h Istr[R]) IsZero() bool {
	var zero R
	return h.repr == zero
}

// String renders the raw backing value for debugging. It does not resolve
// the interned string; use Interner.Lookup for that.
func (h Istr[R]) String() string {
	return fmt.Sprintf("Istr(%d)", h.repr.raw())
}
