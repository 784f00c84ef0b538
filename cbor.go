package digitring

import (
	"bytes"
	"io"

	"github.com/dimoria/digitring/internal"
)

func (r *Ring) toInternal() *internal.Ring {
	return &internal.Ring{
		Base:   uint64(r.Base()),
		Digits: r.Digits(),
	}
}

// fromInternal rebuilds r from its serialized form. The input is untrusted:
// the base and every digit are checked before r is touched.
func (r *Ring) fromInternal(nd *internal.Ring) error {
	if nd.Base > MaxBase {
		return invalidArgumentError("serialized base %d out of range", nd.Base)
	}
	base := int(nd.Base)
	if err := checkBase(base); err != nil {
		return err
	}
	for i, d := range nd.Digits {
		if int(d) >= base {
			return invalidArgumentError("serialized digit at %d out of range: got %d, expected 0..%d", i, d, base-1)
		}
	}
	r.base = base
	r.replaceAll(nd.Digits)
	return nil
}

// MarshalCBOR encodes the ring as the tuple [base, digits].
func (r *Ring) MarshalCBOR(w io.Writer) error {
	return r.toInternal().MarshalCBOR(w)
}

// UnmarshalCBOR replaces the contents and base of r with the decoded ring.
func (r *Ring) UnmarshalCBOR(rd io.Reader) error {
	var nd internal.Ring
	if err := nd.UnmarshalCBOR(rd); err != nil {
		return err
	}
	return r.fromInternal(&nd)
}

// MarshalBinary implements encoding.BinaryMarshaler using the CBOR encoding.
func (r *Ring) MarshalBinary() ([]byte, error) {
	return cborToBytes(r)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *Ring) UnmarshalBinary(data []byte) error {
	return r.UnmarshalCBOR(bytes.NewReader(data))
}
