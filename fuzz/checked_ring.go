package fuzzer

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"

	cbor "github.com/ipfs/go-ipld-cbor"

	"github.com/dimoria/digitring"
)

const base = digitring.DefaultBase

// checkedRing mirrors every operation on a plain slice and panics as soon as
// the ring and the slice disagree.
type checkedRing struct {
	ring *digitring.Ring
	step uint64
	bs   cbor.IpldStore

	model []uint8
	mods  int
}

func newCheckedRing() (*checkedRing, error) {
	ring, err := digitring.New(digitring.UseBase(base))
	if err != nil {
		return nil, err
	}
	return &checkedRing{
		ring: ring,
		bs:   cbor.NewCborStore(newMockBlocks()),
	}, nil
}

func validDigit(d uint8) bool { return int(d) < base }

func (c *checkedRing) mutated() { c.mods++ }

func (c *checkedRing) append(d uint8) {
	c.trace("append %d", d)
	err := c.ring.Append(d)
	if !validDigit(d) {
		c.expectErr(err, digitring.ErrInvalidArgument)
		return
	}
	c.checkErr(err)
	c.model = append(c.model, d)
	c.mutated()
}

func (c *checkedRing) prepend(d uint8) {
	c.trace("prepend %d", d)
	err := c.ring.Prepend(d)
	if !validDigit(d) {
		c.expectErr(err, digitring.ErrInvalidArgument)
		return
	}
	c.checkErr(err)
	c.model = append([]uint8{d}, c.model...)
	c.mutated()
}

func (c *checkedRing) insert(i int, d uint8) {
	c.trace("insert %d at %d", d, i)
	err := c.ring.Insert(i, d)
	switch {
	case !validDigit(d):
		c.expectErr(err, digitring.ErrInvalidArgument)
	case i > len(c.model):
		c.expectErr(err, digitring.ErrIndexOutOfBounds)
	default:
		c.checkErr(err)
		c.model = append(c.model[:i], append([]uint8{d}, c.model[i:]...)...)
		c.mutated()
	}
}

func (c *checkedRing) set(i int, d uint8) {
	c.trace("set %d to %d", i, d)
	old, err := c.ring.Set(i, d)
	switch {
	case !validDigit(d):
		c.expectErr(err, digitring.ErrInvalidArgument)
	case i >= len(c.model):
		c.expectErr(err, digitring.ErrIndexOutOfBounds)
	default:
		c.checkErr(err)
		c.checkEq(c.model[i], old)
		c.model[i] = d
		c.mutated()
	}
}

func (c *checkedRing) get(i int) {
	c.trace("get %d", i)
	d, err := c.ring.Get(i)
	if i >= len(c.model) {
		c.expectErr(err, digitring.ErrIndexOutOfBounds)
		return
	}
	c.checkErr(err)
	c.checkEq(c.model[i], d)
}

func (c *checkedRing) removeAt(i int) {
	c.trace("remove at %d", i)
	d, err := c.ring.RemoveAt(i)
	if i >= len(c.model) {
		c.expectErr(err, digitring.ErrIndexOutOfBounds)
		return
	}
	c.checkErr(err)
	c.checkEq(c.model[i], d)
	c.model = append(c.model[:i], c.model[i+1:]...)
	c.mutated()
}

func (c *checkedRing) remove(d uint8) {
	c.trace("remove %d", d)
	found := c.ring.Remove(d)
	at := -1
	for i, v := range c.model {
		if v == d {
			at = i
			break
		}
	}
	if found != (at >= 0) {
		c.fail("remove %d: ring found=%t, model index=%d", d, found, at)
	}
	if found {
		c.model = append(c.model[:at], c.model[at+1:]...)
		c.mutated()
	}
}

func (c *checkedRing) swap(i, j int) {
	c.trace("swap %d and %d", i, j)
	ok := c.ring.Swap(i, j)
	switch {
	case i == j:
		if !ok {
			c.fail("swap of an index with itself must succeed")
		}
	case i >= len(c.model) || j >= len(c.model):
		if ok {
			c.fail("swap out of range must report false")
		}
	default:
		if !ok {
			c.fail("swap in range must succeed")
		}
		c.model[i], c.model[j] = c.model[j], c.model[i]
		c.mutated()
	}
}

func (c *checkedRing) rotateLeft() {
	c.trace("rotate left")
	c.ring.RotateLeft()
	if len(c.model) > 1 {
		c.model = append(c.model[1:], c.model[0])
		c.mutated()
	}
}

func (c *checkedRing) rotateRight() {
	c.trace("rotate right")
	c.ring.RotateRight()
	if n := len(c.model); n > 1 {
		c.model = append([]uint8{c.model[n-1]}, c.model[:n-1]...)
		c.mutated()
	}
}

func (c *checkedRing) sort(asc bool) {
	c.trace("sort asc=%t", asc)
	if asc {
		c.ring.SortAscending()
		sort.Slice(c.model, func(i, j int) bool { return c.model[i] < c.model[j] })
	} else {
		c.ring.SortDescending()
		sort.Slice(c.model, func(i, j int) bool { return c.model[i] > c.model[j] })
	}
	if len(c.model) > 1 {
		c.mutated()
	}
}

func (c *checkedRing) clear() {
	c.trace("clear")
	c.ring.Clear()
	c.model = c.model[:0]
	c.mutated()
}

func (c *checkedRing) flush() {
	c.trace("flush")
	c1, err := c.ring.Flush(context.Background(), c.bs)
	c.checkErr(err)
	c2, err := c.ring.Flush(context.Background(), c.bs)
	c.checkErr(err)
	if c1 != c2 {
		c.fail("cids don't match %s != %s", c1, c2)
	}
}

func (c *checkedRing) reload() {
	c.trace("reload")
	root, err := c.ring.Flush(context.Background(), c.bs)
	c.checkErr(err)
	c.ring, err = digitring.LoadRing(context.Background(), c.bs, root)
	c.checkErr(err)
	c.mods = c.ring.ModCount()
}

func (c *checkedRing) trace(msg string, args ...interface{}) {
	c.step++
	if Debug {
		fmt.Printf("step %d: "+msg+"\n", append([]interface{}{c.step}, args...)...)
	}
}

// checkShape runs after every step: length, contents and modification count.
func (c *checkedRing) checkShape() {
	if c.ring.Len() != len(c.model) {
		c.fail("expected %d digits, ring has %d", len(c.model), c.ring.Len())
	}
	if !c.ring.Equal(digits(c.model)) {
		c.fail("expected digits %v, ring has %v", c.model, c.ring.Digits())
	}
	if c.ring.ModCount() != c.mods {
		c.fail("expected mod count %d, ring has %d", c.mods, c.ring.ModCount())
	}
}

func (c *checkedRing) check() {
	c.checkByIter(c.ring)
	c.checkByGet(c.ring)
	c.checkByValue(c.ring)

	root, err := c.ring.Flush(context.Background(), c.bs)
	c.checkErr(err)

	{
		// Check by reloading.
		ring, err := digitring.LoadRing(context.Background(), c.bs, root)
		c.checkErr(err)
		c.checkByIter(ring)
	}

	{
		// Check by reproducing.
		ring, err := digitring.New(digitring.UseBase(base))
		c.checkErr(err)
		c.checkErr(ring.AppendAll(c.model...))
		newCid, err := ring.Flush(context.Background(), c.bs)
		c.checkErr(err)
		if newCid != root {
			c.fail("expected to reconstruct identical ring")
		}
	}
}

func (c *checkedRing) checkErr(e error) {
	if e != nil {
		c.fail("%v", e)
	}
}

func (c *checkedRing) expectErr(e, target error) {
	if !errors.Is(e, target) {
		c.fail("expected error %v, got %v", target, e)
	}
}

func (c *checkedRing) checkEq(a, b uint8) {
	if a != b {
		c.fail("expected %d == %d", a, b)
	}
}

func (c *checkedRing) checkByGet(ring *digitring.Ring) {
	for i, expected := range c.model {
		actual, err := ring.Get(i)
		c.checkErr(err)
		c.checkEq(expected, actual)
	}
}

func (c *checkedRing) checkByIter(ring *digitring.Ring) {
	seen := 0
	c.checkErr(ring.ForEach(func(i int, d uint8) error {
		if i >= len(c.model) {
			c.fail("unexpected index %d", i)
		}
		c.checkEq(c.model[i], d)
		seen++
		return nil
	}))
	if seen != len(c.model) {
		c.fail("iterated %d digits, expected %d", seen, len(c.model))
	}
}

func (c *checkedRing) checkByValue(ring *digitring.Ring) {
	var expected, bigBase, bv big.Int
	bigBase.SetInt64(base)
	for _, d := range c.model {
		bv.SetUint64(uint64(d))
		expected.Mul(&expected, &bigBase)
		expected.Add(&expected, &bv)
	}
	if ring.BigInt().Cmp(&expected) != 0 {
		c.fail("expected value %s, ring holds %s", &expected, ring.BigInt())
	}
	back, err := digitring.ParseDecimal(ring.DecimalString(), digitring.UseBase(base))
	c.checkErr(err)
	if back.BigInt().Cmp(&expected) != 0 {
		c.fail("decimal round trip of %s gave %s", &expected, back.BigInt())
	}
}

func (c *checkedRing) fail(msg string, args ...interface{}) {
	panic(fmt.Sprintf("step %d: "+msg, append([]interface{}{c.step}, args...)...))
}

// digits adapts a slice to digitring.Sequence.
type digits []uint8

func (d digits) Len() int        { return len(d) }
func (d digits) Digits() []uint8 { return d }
