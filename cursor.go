package digitring

import "fmt"

// CursorState describes where a Cursor is in its traversal.
type CursorState int

const (
	// Ready: created, nothing produced yet. A cursor over an empty ring
	// starts Exhausted.
	Ready CursorState = iota
	// Advancing: at least one digit produced, more remain.
	Advancing
	// Exhausted: every digit of the snapshot has been produced.
	Exhausted
	// Invalidated: the ring was modified after the cursor was created. The
	// cursor stays in this state.
	Invalidated
)

func (s CursorState) String() string {
	switch s {
	case Ready:
		return "ready"
	case Advancing:
		return "advancing"
	case Exhausted:
		return "exhausted"
	case Invalidated:
		return "invalidated"
	default:
		return "unknown"
	}
}

// Cursor reads a ring forward from its head. It remembers the ring's
// modification count at creation and refuses to advance once the ring has
// changed. It does not own the nodes it visits.
type Cursor struct {
	ring        *Ring
	size        int
	expectedMod int

	current *node
	seen    int
	state   CursorState
}

// Cursor returns a fail-fast cursor positioned before the first digit.
func (r *Ring) Cursor() *Cursor {
	c := &Cursor{
		ring:        r,
		size:        r.size,
		expectedMod: r.modCount,
		current:     r.head,
		state:       Ready,
	}
	if c.size == 0 {
		c.state = Exhausted
	}
	return c
}

// HasNext reports whether digits remain in the snapshot. It does not look at
// the ring's modification count; Next does.
func (c *Cursor) HasNext() bool {
	return c.seen < c.size
}

// Next returns the next digit.
func (c *Cursor) Next() (uint8, error) {
	if err := c.checkMod(); err != nil {
		return 0, err
	}
	if !c.HasNext() {
		return 0, fmt.Errorf("%w: cursor produced all %d digits", ErrNoSuchElement, c.size)
	}
	v := c.current.value
	c.current = c.current.next
	c.seen++
	if c.seen == c.size {
		c.state = Exhausted
	} else {
		c.state = Advancing
	}
	return v, nil
}

// Remove is not supported. It still checks for concurrent modification
// first, so a stale cursor reports ErrConcurrentModification, and otherwise
// always fails with ErrUnsupportedOperation. The ring is never changed.
func (c *Cursor) Remove() error {
	if err := c.checkMod(); err != nil {
		return err
	}
	return fmt.Errorf("%w: removal through a cursor", ErrUnsupportedOperation)
}

func (c *Cursor) State() CursorState {
	return c.state
}

func (c *Cursor) checkMod() error {
	if c.state == Invalidated || c.ring.modCount != c.expectedMod {
		c.state = Invalidated
		return fmt.Errorf("%w: ring modified during traversal (expected mod %d, found %d)",
			ErrConcurrentModification, c.expectedMod, c.ring.modCount)
	}
	return nil
}
