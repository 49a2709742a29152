package intern

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ msgpack.CustomEncoder = Istr[NonZeroUintptr]{}
	_ msgpack.CustomDecoder = (*Istr[NonZeroUintptr])(nil)
)

// EncodeMsgpack writes the raw backing value. Handle values are meaningful
// only to the interner that produced them, so serialized handles are for
// consumers persisting a whole table alongside its strings, not for
// cross-process identity.
func (h Istr[R]) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeUint64(h.repr.raw())
}

// DecodeMsgpack reads a raw backing value, rejecting values that do not fit
// the backing width or that violate the non-zero invariant.
func (h *Istr[R]) DecodeMsgpack(dec *msgpack.Decoder) error {
	v, err := dec.DecodeUint64()
	if err != nil {
		return err
	}
	repr, err := h.repr.fromRaw(v)
	if err != nil {
		return fmt.Errorf("decode Istr: %w", err)
	}
	h.repr = repr
	return nil
}
