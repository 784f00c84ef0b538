package digitring

// AppendAll appends ds in order. Every digit is checked before the first one
// is added, so a bad digit leaves the ring untouched.
func (r *Ring) AppendAll(ds ...uint8) error {
	for _, d := range ds {
		if err := r.checkDigit(d); err != nil {
			return err
		}
	}
	for _, d := range ds {
		r.linkLast(d)
	}
	return nil
}

// InsertAll inserts ds in order starting at index i.
func (r *Ring) InsertAll(i int, ds ...uint8) error {
	for _, d := range ds {
		if err := r.checkDigit(d); err != nil {
			return err
		}
	}
	if err := r.checkInsertIndex(i); err != nil {
		return err
	}
	for k, d := range ds {
		if err := r.Insert(i+k, d); err != nil {
			return err
		}
	}
	return nil
}

// ContainsAll reports whether every digit in ds occurs in the ring.
func (r *Ring) ContainsAll(ds ...uint8) bool {
	var present [256]bool
	n := r.head
	for i := 0; i < r.size; i++ {
		present[n.value] = true
		n = n.next
	}
	for _, d := range ds {
		if !present[d] {
			return false
		}
	}
	return true
}

// RemoveAll removes every occurrence of each digit in ds and reports whether
// anything was removed.
func (r *Ring) RemoveAll(ds ...uint8) bool {
	var drop [256]bool
	for _, d := range ds {
		drop[d] = true
	}
	return r.filter(func(d uint8) bool { return !drop[d] })
}

// RetainAll removes every digit not present in ds and reports whether
// anything was removed.
func (r *Ring) RetainAll(ds ...uint8) bool {
	var keep [256]bool
	for _, d := range ds {
		keep[d] = true
	}
	return r.filter(func(d uint8) bool { return keep[d] })
}

// filter unlinks the nodes for which keep is false in a single pass.
func (r *Ring) filter(keep func(uint8) bool) bool {
	changed := false
	prev, cur := r.tail, r.head
	for n := r.size; n > 0 && r.size > 0; n-- {
		next := cur.next
		if keep(cur.value) {
			prev = cur
		} else {
			r.unlink(prev, cur)
			changed = true
		}
		cur = next
	}
	return changed
}
