package digitring

import (
	"fmt"
	"math/big"
	"strings"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// FromBigInt returns a ring holding the digits of v. Zero yields the empty
// ring, not a single zero digit.
func FromBigInt(v *big.Int, opts ...Option) (*Ring, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, invalidArgumentError("nil value")
	}
	if v.Sign() < 0 {
		return nil, invalidArgumentError("negative value %s", v)
	}
	r := newRing(cfg.base)
	r.setValue(v)
	return r, nil
}

// setValue replaces the contents of r with the digits of v, which must be
// non-negative. Digits are produced least significant first by repeated
// division, then reversed into place as one modification.
func (r *Ring) setValue(v *big.Int) {
	var x, bigBase, mod big.Int
	x.Set(v)
	bigBase.SetInt64(int64(r.base))

	// log_base(v) is at most bitlen since base >= 2
	ds := make([]uint8, 0, x.BitLen())
	for x.Sign() > 0 {
		x.DivMod(&x, &bigBase, &mod)
		ds = append(ds, uint8(mod.Uint64()))
	}
	for i, j := 0, len(ds)-1; i < j; i, j = i+1, j-1 {
		ds[i], ds[j] = ds[j], ds[i]
	}
	r.replaceAll(ds)
}

// ParseDecimal parses a base-10 numeral into a ring. Surrounding whitespace is
// ignored and blank input yields zero. Malformed input fails with ErrFormat
// and a negative value with ErrInvalidArgument.
func ParseDecimal(s string, opts ...Option) (*Ring, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	v, err := parseDecimal(s)
	if err != nil {
		return nil, err
	}
	r := newRing(cfg.base)
	r.setValue(v)
	return r, nil
}

func parseDecimal(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, formatError(s)
	}
	if v.Sign() < 0 {
		return nil, invalidArgumentError("negative value %s", s)
	}
	return v, nil
}

// FromDecimal is the lenient counterpart of ParseDecimal: malformed or
// negative input yields the zero ring instead of an error. The ring uses
// DefaultBase.
func FromDecimal(s string) *Ring {
	r := newRing(DefaultBase)
	if v, err := parseDecimal(s); err == nil {
		r.setValue(v)
	}
	return r
}

// MustParseDecimal is like ParseDecimal but panics on error.
func MustParseDecimal(s string, opts ...Option) *Ring {
	r, err := ParseDecimal(s, opts...)
	if err != nil {
		panic(fmt.Sprintf("MustParseDecimal(%q) failed: %v", s, err))
	}
	return r
}

// BigInt returns the value held by the ring.
func (r *Ring) BigInt() *big.Int {
	var x, bigBase, bv big.Int
	bigBase.SetInt64(int64(r.Base()))
	n := r.head
	for i := 0; i < r.size; i++ {
		bv.SetUint64(uint64(n.value))
		x.Mul(&x, &bigBase)
		x.Add(&x, &bv)
		n = n.next
	}
	return &x
}

// DecimalString renders the value in base 10. The empty ring renders as "0".
func (r *Ring) DecimalString() string {
	return r.BigInt().Text(10)
}

// String renders the digits in the ring's own base, head first, using 0-9
// then A-Z. The empty ring renders as "0".
func (r *Ring) String() string {
	if r.size == 0 {
		return "0"
	}
	var sb strings.Builder
	sb.Grow(r.size)
	n := r.head
	for i := 0; i < r.size; i++ {
		sb.WriteByte(alphabet[n.value])
		n = n.next
	}
	return sb.String()
}

// ChangeBase returns a new ring holding the same value in another base. The
// receiver is not modified.
func (r *Ring) ChangeBase(base int) (*Ring, error) {
	if err := checkBase(base); err != nil {
		return nil, err
	}
	out := newRing(base)
	out.setValue(r.BigInt())
	return out, nil
}

// Binary returns the value as a base-2 ring.
func (r *Ring) Binary() *Ring {
	out := newRing(2)
	out.setValue(r.BigInt())
	return out
}

// Mod returns r mod divisor as a new ring in r's base. The divisor's base is
// taken from its Base method when it has one, as a *Ring does; otherwise its
// digits are read in DefaultBase. Neither operand is modified.
func (r *Ring) Mod(divisor Sequence) (*Ring, error) {
	if isNilSequence(divisor) {
		return nil, invalidArgumentError("nil divisor")
	}
	b, err := sequenceValue(divisor.Digits(), sequenceBase(divisor))
	if err != nil {
		return nil, err
	}
	if b.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	a := r.BigInt()
	out := newRing(r.Base())
	out.setValue(a.Mod(a, b))
	return out, nil
}

// sequenceValue folds digits of an arbitrary sequence, checking each against
// base since a foreign sequence is not bound by the ring invariants.
func sequenceValue(ds []uint8, base int) (*big.Int, error) {
	if err := checkBase(base); err != nil {
		return nil, err
	}
	var x, bigBase, bv big.Int
	bigBase.SetInt64(int64(base))
	for i, d := range ds {
		if int(d) >= base {
			return nil, invalidArgumentError("digit at %d out of range: got %d, expected 0..%d", i, d, base-1)
		}
		bv.SetUint64(uint64(d))
		x.Mul(&x, &bigBase)
		x.Add(&x, &bv)
	}
	return &x, nil
}
