package digitring

// Ring is a non-negative integer stored as base-B digits in a circular singly
// linked list. The head holds the most significant digit and is index 0; an
// empty ring denotes zero. The zero value is an empty ring in DefaultBase.
//
// A Ring is not safe for concurrent use. Traversals started with Cursor or
// ForEach detect mutations made behind their back and fail rather than read
// stale nodes.
type Ring struct {
	head *node
	tail *node
	size int
	base int

	// bumped by every mutation, observed by cursors
	modCount int
}

// Sequence is a read-only view of digits, most significant first.
type Sequence interface {
	Len() int
	Digits() []uint8
}

var _ Sequence = (*Ring)(nil)

// isNilSequence also catches a nil *Ring stored in the interface.
func isNilSequence(s Sequence) bool {
	if s == nil {
		return true
	}
	r, ok := s.(*Ring)
	return ok && r == nil
}

// New returns an empty ring, which represents zero.
func New(opts ...Option) (*Ring, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return newRing(cfg.base), nil
}

func newRing(base int) *Ring {
	return &Ring{base: base}
}

func (r *Ring) Len() int { return r.size }

func (r *Ring) IsEmpty() bool { return r.size == 0 }

func (r *Ring) Base() int {
	if r.base == 0 {
		return DefaultBase
	}
	return r.base
}

// lazyInit gives a zero Ring its default base before the first digit lands.
func (r *Ring) lazyInit() {
	if r.base == 0 {
		r.base = DefaultBase
	}
}

// ModCount returns the number of mutations applied to the ring so far.
func (r *Ring) ModCount() int { return r.modCount }

func (r *Ring) checkDigit(d uint8) error {
	r.lazyInit()
	if int(d) >= r.base {
		return invalidArgumentError("digit %d out of range for base %d", d, r.base)
	}
	return nil
}

func (r *Ring) checkIndex(i int) error {
	if i < 0 || i >= r.size {
		return indexOutOfBoundsError(i, r.size)
	}
	return nil
}

func (r *Ring) checkInsertIndex(i int) error {
	if i < 0 || i > r.size {
		return indexOutOfBoundsError(i, r.size)
	}
	return nil
}

func (r *Ring) Get(i int) (uint8, error) {
	if err := r.checkIndex(i); err != nil {
		return 0, err
	}
	return r.nodeAt(i).value, nil
}

// Set replaces the digit at i and returns the previous one.
func (r *Ring) Set(i int, d uint8) (uint8, error) {
	if err := r.checkDigit(d); err != nil {
		return 0, err
	}
	if err := r.checkIndex(i); err != nil {
		return 0, err
	}
	n := r.nodeAt(i)
	old := n.value
	n.value = d
	r.modCount++
	return old, nil
}

// Append adds d as the new least significant digit.
func (r *Ring) Append(d uint8) error {
	if err := r.checkDigit(d); err != nil {
		return err
	}
	r.linkLast(d)
	return nil
}

// Prepend adds d as the new most significant digit.
func (r *Ring) Prepend(d uint8) error {
	if err := r.checkDigit(d); err != nil {
		return err
	}
	r.linkFirst(d)
	return nil
}

// Insert places d at index i, shifting the digits from i onwards.
func (r *Ring) Insert(i int, d uint8) error {
	if err := r.checkDigit(d); err != nil {
		return err
	}
	if err := r.checkInsertIndex(i); err != nil {
		return err
	}
	switch i {
	case r.size:
		r.linkLast(d)
	case 0:
		r.linkFirst(d)
	default:
		r.linkAfter(r.nodeAt(i-1), d)
	}
	return nil
}

// RemoveAt removes and returns the digit at index i.
func (r *Ring) RemoveAt(i int) (uint8, error) {
	if err := r.checkIndex(i); err != nil {
		return 0, err
	}
	prev := r.tail
	if i > 0 {
		prev = r.nodeAt(i - 1)
	}
	cur := prev.next
	r.unlink(prev, cur)
	return cur.value, nil
}

// Remove removes the first occurrence of d and reports whether there was one.
func (r *Ring) Remove(d uint8) bool {
	if r.size == 0 {
		return false
	}
	prev, cur := r.tail, r.head
	for i := 0; i < r.size; i++ {
		if cur.value == d {
			r.unlink(prev, cur)
			return true
		}
		prev, cur = cur, cur.next
	}
	return false
}

// IndexOf returns the first index holding d, or -1.
func (r *Ring) IndexOf(d uint8) int {
	n := r.head
	for i := 0; i < r.size; i++ {
		if n.value == d {
			return i
		}
		n = n.next
	}
	return -1
}

// LastIndexOf returns the last index holding d, or -1.
func (r *Ring) LastIndexOf(d uint8) int {
	last := -1
	n := r.head
	for i := 0; i < r.size; i++ {
		if n.value == d {
			last = i
		}
		n = n.next
	}
	return last
}

func (r *Ring) Contains(d uint8) bool {
	return r.IndexOf(d) >= 0
}

// Swap exchanges the digits at i and j. Unlike the other positional
// operations it does not fail on a bad index; it reports false and leaves the
// ring untouched. Swapping an index with itself is a successful no-op.
func (r *Ring) Swap(i, j int) bool {
	if i == j {
		return true
	}
	if i < 0 || j < 0 || i >= r.size || j >= r.size {
		return false
	}
	a, b := r.nodeAt(i), r.nodeAt(j)
	a.value, b.value = b.value, a.value
	r.modCount++
	return true
}

// Slice returns a new ring, in the same base, holding a copy of the digits in
// [from, to).
func (r *Ring) Slice(from, to int) (*Ring, error) {
	if from < 0 || to > r.size || from > to {
		return nil, sliceBoundsError(from, to, r.size)
	}
	out := newRing(r.Base())
	if from == to {
		return out, nil
	}
	n := r.nodeAt(from)
	for i := from; i < to; i++ {
		out.linkLast(n.value)
		n = n.next
	}
	return out, nil
}

// Clear drops every digit. The ring then represents zero.
func (r *Ring) Clear() {
	r.head = nil
	r.tail = nil
	r.size = 0
	r.modCount++
}

// RotateLeft moves the most significant digit to the least significant
// position by moving head and tail one step along the cycle.
func (r *Ring) RotateLeft() {
	if r.size <= 1 {
		return
	}
	r.head = r.head.next
	r.tail = r.tail.next
	r.modCount++
}

// RotateRight moves the least significant digit to the most significant
// position. The list is singly linked, so finding the new tail is O(n).
func (r *Ring) RotateRight() {
	if r.size <= 1 {
		return
	}
	r.tail = r.nodeAt(r.size - 2)
	r.head = r.tail.next
	r.modCount++
}

// Digits returns a copy of the digits, most significant first.
func (r *Ring) Digits() []uint8 {
	out := make([]uint8, r.size)
	n := r.head
	for i := range out {
		out[i] = n.value
		n = n.next
	}
	return out
}

// Clone returns an independent copy of the ring.
func (r *Ring) Clone() *Ring {
	out := newRing(r.Base())
	n := r.head
	for i := 0; i < r.size; i++ {
		out.linkLast(n.value)
		n = n.next
	}
	return out
}

// Equal reports whether s holds the same digit sequence. The base is not
// compared.
func (r *Ring) Equal(s Sequence) bool {
	if isNilSequence(s) || r.size != s.Len() {
		return false
	}
	other := s.Digits()
	n := r.head
	for _, d := range other {
		if n.value != d {
			return false
		}
		n = n.next
	}
	return true
}

// ForEach calls cb for every digit, head to tail. It stops at the first error
// returned by cb. Mutating the ring from cb makes the traversal fail with
// ErrConcurrentModification.
func (r *Ring) ForEach(cb func(i int, d uint8) error) error {
	c := r.Cursor()
	for i := 0; c.HasNext(); i++ {
		d, err := c.Next()
		if err != nil {
			return err
		}
		if err := cb(i, d); err != nil {
			return err
		}
	}
	// catches a mutation made by the last callback
	return c.checkMod()
}
