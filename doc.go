// Package intern deduplicates strings and hands out small integer handles
// for them.
//
// Consumers such as compilers, parsers, and symbol tables store and compare
// the same strings millions of times. An Interner copies each distinct
// string into an append-only arena exactly once; every later Intern of equal
// content returns the same Istr handle, and comparing handles is a single
// integer comparison. A handle resolves back to its string only through the
// interner that produced it.
//
//	interner := intern.New()
//
//	hello := interner.Intern("hello")
//	hello2 := interner.Intern("hello")
//	world := interner.Intern("world")
//
//	// hello == hello2, hello != world
//	s, ok := interner.Lookup(hello) // "hello", true
//
// The handle backing is a compile-time choice: NewWithRepr selects one of
// the integer widths listed under Repr. The default, NonZeroUintptr, numbers
// handles from 1 and reserves the all-zero bit pattern, so the zero Istr
// value means "no handle" and an optional handle costs no more storage than
// a present one.
//
// Interned strings are never removed; the arena, the dedup index, and every
// handle live until the interner itself becomes garbage. Equality is byte
// equality only — no case folding or Unicode normalization is applied.
package intern
