package digitring

// SortAscending orders the digits from smallest to largest.
func (r *Ring) SortAscending() {
	r.countingSort(true)
}

// SortDescending orders the digits from largest to smallest.
func (r *Ring) SortDescending() {
	r.countingSort(false)
}

// countingSort tallies the digits in one pass and rewrites node values in a
// second. Nodes stay where they are; only their values change. It counts as a
// single modification.
func (r *Ring) countingSort(asc bool) {
	if r.size <= 1 {
		return
	}
	counts := make([]int, r.base)
	n := r.head
	for i := 0; i < r.size; i++ {
		counts[n.value]++
		n = n.next
	}

	n = r.head
	fill := func(d int) {
		for k := counts[d]; k > 0; k-- {
			n.value = uint8(d)
			n = n.next
		}
	}
	if asc {
		for d := 0; d < r.base; d++ {
			fill(d)
		}
	} else {
		for d := r.base - 1; d >= 0; d-- {
			fill(d)
		}
	}
	r.modCount++
}
