package digitring

import (
	"context"
	"fmt"
	"testing"

	block "github.com/ipfs/go-block-format"
	cid "github.com/ipfs/go-cid"
	"github.com/stretchr/testify/require"
)

var (
	basesAll  = []int{2, 3, 7, 8, 10, 16, 31, 36}
	basesTiny = []int{2, 3}
)

func runTestWithBases(t *testing.T, bases []int, fn func(*testing.T, ...Option)) {
	t.Helper()
	if testing.Short() {
		t.Run(fmt.Sprintf("base=%d", DefaultBase), func(t *testing.T) { fn(t, UseBase(DefaultBase)) })
		return
	}
	for _, b := range bases {
		t.Run(fmt.Sprintf("base=%d", b), func(t *testing.T) { fn(t, UseBase(b)) })
	}
}

type mockBlocks struct {
	data               map[cid.Cid]block.Block
	getCount, putCount int
}

func newMockBlocks() *mockBlocks {
	return &mockBlocks{make(map[cid.Cid]block.Block), 0, 0}
}

func (mb *mockBlocks) Get(_ context.Context, c cid.Cid) (block.Block, error) {
	d, ok := mb.data[c]
	mb.getCount++
	if ok {
		return d, nil
	}
	return nil, fmt.Errorf("Not Found")
}

func (mb *mockBlocks) Put(_ context.Context, b block.Block) error {
	mb.putCount++
	mb.data[b.Cid()] = b
	return nil
}

func ringOf(t testing.TB, base int, ds ...uint8) *Ring {
	t.Helper()
	r, err := New(UseBase(base))
	require.NoError(t, err)
	require.NoError(t, r.AppendAll(ds...))
	return r
}

// assertShape checks the structural invariants of r directly on its nodes.
func assertShape(t testing.TB, r *Ring) {
	t.Helper()
	if r.size == 0 {
		require.Nil(t, r.head)
		require.Nil(t, r.tail)
		return
	}
	require.NotNil(t, r.head)
	require.NotNil(t, r.tail)
	require.Same(t, r.head, r.tail.next, "tail must link back to head")

	n := r.head
	for i := 0; i < r.size; i++ {
		require.Less(t, int(n.value), r.base, "digit at %d out of range", i)
		if i == r.size-1 {
			require.Same(t, r.tail, n, "tail must be the last node")
		}
		n = n.next
	}
	require.Same(t, r.head, n, "walking size steps must return to head")
}

func assertDigits(t testing.TB, r *Ring, ds ...uint8) {
	t.Helper()
	assertShape(t, r)
	if len(ds) == 0 {
		require.Empty(t, r.Digits())
		return
	}
	require.Equal(t, ds, r.Digits())
}

// assertMutation checks that fn changes the modification count by exactly one.
func assertMutation(t testing.TB, r *Ring, fn func()) {
	t.Helper()
	before := r.ModCount()
	fn()
	require.Equal(t, before+1, r.ModCount())
	assertShape(t, r)
}

func assertNoMutation(t testing.TB, r *Ring, fn func()) {
	t.Helper()
	before := r.ModCount()
	digits := r.Digits()
	fn()
	require.Equal(t, before, r.ModCount())
	require.Equal(t, digits, r.Digits())
	assertShape(t, r)
}
