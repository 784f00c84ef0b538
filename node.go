package digitring

// node holds one digit. While attached to a non-empty ring, next is never nil:
// the chain is closed, the tail links back to the head.
type node struct {
	value uint8
	next  *node
}

// nodeAt walks from the head. The caller has range-checked i.
func (r *Ring) nodeAt(i int) *node {
	n := r.head
	for ; i > 0; i-- {
		n = n.next
	}
	return n
}

// closeLoop restores the shape invariants after a structural change and
// records the modification. Every insert and remove path ends here.
func (r *Ring) closeLoop() {
	if r.size == 0 {
		r.head = nil
		r.tail = nil
	} else {
		r.tail.next = r.head
	}
	r.modCount++
}

// replaceAll swaps in a new chain holding ds. The old nodes are dropped
// whole, so the rebuild counts as a single modification.
func (r *Ring) replaceAll(ds []uint8) {
	var head, tail *node
	for _, d := range ds {
		n := &node{value: d}
		if head == nil {
			head = n
		} else {
			tail.next = n
		}
		tail = n
	}
	r.head, r.tail, r.size = head, tail, len(ds)
	r.closeLoop()
}

func (r *Ring) linkLast(d uint8) {
	n := &node{value: d}
	if r.size == 0 {
		r.head = n
	} else {
		r.tail.next = n
	}
	r.tail = n
	r.size++
	r.closeLoop()
}

func (r *Ring) linkFirst(d uint8) {
	n := &node{value: d, next: r.head}
	if r.size == 0 {
		r.tail = n
	}
	r.head = n
	r.size++
	r.closeLoop()
}

// linkAfter splices a new node after prev, which must not be the tail.
func (r *Ring) linkAfter(prev *node, d uint8) {
	prev.next = &node{value: d, next: prev.next}
	r.size++
	r.closeLoop()
}

// unlink detaches cur, whose predecessor in the cycle is prev.
func (r *Ring) unlink(prev, cur *node) {
	r.size--
	if r.size > 0 {
		if cur == r.head {
			r.head = cur.next
		}
		if cur == r.tail {
			r.tail = prev
		}
		prev.next = cur.next
	}
	r.closeLoop()
}
