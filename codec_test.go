package intern

import (
	"math"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestIstrMsgpackRoundTrip(t *testing.T) {
	interner := NewWithRepr[NonZeroUint32]()
	h := interner.Intern("serialized")

	data, err := msgpack.Marshal(h)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Istr[NonZeroUint32]
	if err := msgpack.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != h {
		t.Errorf("round trip changed the handle: %v != %v", got, h)
	}
	if s, ok := interner.Lookup(got); !ok || s != "serialized" {
		t.Errorf("decoded handle resolves to %q, %v", s, ok)
	}
}

func TestIstrMsgpackAllBackings(t *testing.T) {
	check := func(t *testing.T, raw uint64, data []byte, decode func([]byte) (uint64, error)) {
		t.Helper()
		got, err := decode(data)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != raw {
			t.Errorf("raw value %d survived as %d", raw, got)
		}
	}

	h32 := NewWithRepr[Uint32]().Intern("a")
	data, err := msgpack.Marshal(h32)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	check(t, h32.repr.raw(), data, func(b []byte) (uint64, error) {
		var h Istr[Uint32]
		err := msgpack.Unmarshal(b, &h)
		return h.repr.raw(), err
	})

	h64 := NewWithRepr[NonZeroUint64]().Intern("a")
	data, err = msgpack.Marshal(h64)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	check(t, h64.repr.raw(), data, func(b []byte) (uint64, error) {
		var h Istr[NonZeroUint64]
		err := msgpack.Unmarshal(b, &h)
		return h.repr.raw(), err
	})
}

func TestIstrMsgpackRejectsZeroForNonZero(t *testing.T) {
	data, err := msgpack.Marshal(uint64(0))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var h Istr[NonZeroUint32]
	if err := msgpack.Unmarshal(data, &h); err == nil {
		t.Error("decoding raw 0 into a non-zero backing must fail")
	}
}

func TestIstrMsgpackRejectsOversizedRaw(t *testing.T) {
	data, err := msgpack.Marshal(uint64(math.MaxUint32) + 1)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var h Istr[Uint32]
	if err := msgpack.Unmarshal(data, &h); err == nil {
		t.Error("decoding an oversized raw value into a 32-bit backing must fail")
	}
	var nz Istr[NonZeroUint32]
	if err := msgpack.Unmarshal(data, &nz); err == nil {
		t.Error("decoding an oversized raw value into a non-zero 32-bit backing must fail")
	}
}

// Handles embed cleanly in larger serialized structures, the way a consumer
// would persist a symbol table next to its strings.
func TestIstrMsgpackInStruct(t *testing.T) {
	type symbol struct {
		Name  Istr[NonZeroUint64]
		Arity int
	}

	interner := NewWithRepr[NonZeroUint64]()
	in := symbol{Name: interner.Intern("main"), Arity: 2}

	data, err := msgpack.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out symbol
	if err := msgpack.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("round trip changed the struct: %+v != %+v", out, in)
	}
	if interner.MustLookup(out.Name) != "main" {
		t.Errorf("decoded name resolves to %q", interner.MustLookup(out.Name))
	}
}
