package digitring

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	cbor "github.com/ipfs/go-ipld-cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expectedChange struct {
	Type   ChangeType
	Index  uint64
	Before uint8
	After  uint8
}

func (ec expectedChange) assertExpectation(t *testing.T, change *Change) {
	assert.Equal(t, ec.Type, change.Type)
	assert.Equal(t, ec.Index, change.Index)

	switch ec.Type {
	case Add:
		assert.Equal(t, ec.After, change.After)
	case Remove:
		assert.Equal(t, ec.Before, change.Before)
	case Modify:
		assert.Equal(t, ec.Before, change.Before)
		assert.Equal(t, ec.After, change.After)
	}
}

func TestSimpleEquals(t *testing.T) {
	prevBs := cbor.NewCborStore(newMockBlocks())
	curBs := cbor.NewCborStore(newMockBlocks())
	ctx := context.Background()

	a := ringOf(t, 10)
	b := ringOf(t, 10)
	diffAndAssertLength(ctx, t, prevBs, curBs, a, b, 0)

	require.NoError(t, a.AppendAll(4, 2))
	require.NoError(t, b.AppendAll(4, 2))
	diffAndAssertLength(ctx, t, prevBs, curBs, a, b, 0)
}

func TestSimpleAdd(t *testing.T) {
	prevBs := cbor.NewCborStore(newMockBlocks())
	curBs := cbor.NewCborStore(newMockBlocks())
	ctx := context.Background()

	a := ringOf(t, 10, 4, 2)
	b := ringOf(t, 10, 4, 2, 7)

	ec := expectedChange{
		Type:  Add,
		Index: 2,
		After: 7,
	}
	diffAndAssertLength(ctx, t, prevBs, curBs, a, b, 1, ec)
}

func TestDiffEmptyStateWithNonEmptyState(t *testing.T) {
	t.Run("Removed digits", func(t *testing.T) {
		prevBs := cbor.NewCborStore(newMockBlocks())
		curBs := cbor.NewCborStore(newMockBlocks())
		ctx := context.Background()

		prev := ringOf(t, 16, 15)
		cur := ringOf(t, 16)

		ec := expectedChange{
			Type:   Remove,
			Index:  0,
			Before: 15,
		}
		diffAndAssertLength(ctx, t, prevBs, curBs, prev, cur, 1, ec)
	})

	t.Run("Added digits", func(t *testing.T) {
		prevBs := cbor.NewCborStore(newMockBlocks())
		curBs := cbor.NewCborStore(newMockBlocks())
		ctx := context.Background()

		prev := ringOf(t, 16)
		cur := ringOf(t, 16, 15)

		ec := expectedChange{
			Type:  Add,
			Index: 0,
			After: 15,
		}
		diffAndAssertLength(ctx, t, prevBs, curBs, prev, cur, 1, ec)
	})
}

func TestSimpleRemove(t *testing.T) {
	prevBs := cbor.NewCborStore(newMockBlocks())
	curBs := cbor.NewCborStore(newMockBlocks())
	ctx := context.Background()

	a := ringOf(t, 8, 1, 2, 3)
	b := ringOf(t, 8, 1)

	diffAndAssertLength(ctx, t, prevBs, curBs, a, b, 2,
		expectedChange{Type: Remove, Index: 1, Before: 2},
		expectedChange{Type: Remove, Index: 2, Before: 3},
	)
}

func TestSimpleModify(t *testing.T) {
	prevBs := cbor.NewCborStore(newMockBlocks())
	curBs := cbor.NewCborStore(newMockBlocks())
	ctx := context.Background()

	a := ringOf(t, 10, 1, 0, 2)
	b := a.Clone()
	b.SortAscending()

	diffAndAssertLength(ctx, t, prevBs, curBs, a, b, 2,
		expectedChange{Type: Modify, Index: 0, Before: 1, After: 0},
		expectedChange{Type: Modify, Index: 1, Before: 0, After: 1},
	)
}

func TestDiffRotation(t *testing.T) {
	a := ringOf(t, 10, 1, 2, 3)
	b := a.Clone()
	b.RotateLeft()

	cs, err := DiffRings(a, b)
	require.NoError(t, err)
	require.Len(t, cs, 3)
	expectedChange{Type: Modify, Index: 0, Before: 1, After: 2}.assertExpectation(t, cs[0])
	expectedChange{Type: Modify, Index: 1, Before: 2, After: 3}.assertExpectation(t, cs[1])
	expectedChange{Type: Modify, Index: 2, Before: 3, After: 1}.assertExpectation(t, cs[2])
}

func TestDiffDifferingBases(t *testing.T) {
	ctx := context.Background()
	bs := cbor.NewCborStore(newMockBlocks())

	a := ringOf(t, 10, 1)
	b := ringOf(t, 16, 1)

	_, err := DiffRings(a, b)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = DiffRings(a, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = DiffRings((*Ring)(nil), a)
	require.ErrorIs(t, err, ErrInvalidArgument)

	ac, err := a.Flush(ctx, bs)
	require.NoError(t, err)
	bc, err := b.Flush(ctx, bs)
	require.NoError(t, err)

	_, err = Diff(ctx, bs, bs, ac, bc)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ParallelDiff(ctx, bs, bs, ac, bc, 4)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestChangeString(t *testing.T) {
	assert.Equal(t, "add", Add.String())
	assert.Equal(t, "remove", Remove.String())
	assert.Equal(t, "modify", Modify.String())
	assert.Equal(t, "unknown", ChangeType(9).String())

	ch := Change{Type: Modify, Index: 3, Before: 1, After: 2}
	assert.JSONEq(t, `{"Type":2,"Index":3,"Before":1,"After":2}`, ch.String())
}

func TestBigDiff(t *testing.T) {
	for multiplier := 1; multiplier < 5; multiplier++ {
		t.Run(fmt.Sprintf("Multiplier %d", multiplier), func(t *testing.T) {
			prevBs := cbor.NewCborStore(newMockBlocks())
			curBs := cbor.NewCborStore(newMockBlocks())
			ctx := context.Background()
			rnd := rand.New(rand.NewSource(int64(multiplier)))

			a := ringOf(t, 36)
			b := ringOf(t, 36)
			ecs := make([]expectedChange, 0)

			// every third digit differs
			for i := 0; i < 1000*multiplier; i++ {
				d := uint8(rnd.Intn(36))
				require.NoError(t, a.Append(d))
				if i%3 != 0 {
					require.NoError(t, b.Append(d))
					continue
				}
				e := (d + 1) % 36
				require.NoError(t, b.Append(e))
				ecs = append(ecs, expectedChange{
					Type:   Modify,
					Index:  uint64(i),
					Before: d,
					After:  e,
				})
			}

			// cur grows past prev
			for i := 1000 * multiplier; i < 1500*multiplier; i++ {
				d := uint8(rnd.Intn(36))
				require.NoError(t, b.Append(d))
				ecs = append(ecs, expectedChange{
					Type:  Add,
					Index: uint64(i),
					After: d,
				})
			}

			diffAndAssertLength(ctx, t, prevBs, curBs, a, b, len(ecs), ecs...)
			// and the reverse direction yields removals
			cs, err := DiffRings(b, a)
			require.NoError(t, err)
			require.Len(t, cs, len(ecs))
			assert.Equal(t, Remove, cs[len(cs)-1].Type)
		})
	}
}

func diffAndAssertLength(ctx context.Context, t *testing.T, prevBs, curBs cbor.IpldStore, a *Ring, b *Ring, expectedLength int, ecs ...expectedChange) {
	aCid, err := a.Flush(ctx, prevBs)
	if err != nil {
		t.Fatal(err)
	}

	bCid, err := b.Flush(ctx, curBs)
	if err != nil {
		t.Fatal(err)
	}

	var serial time.Duration
	var parallel time.Duration
	t.Run("assert serial diff", func(t *testing.T) {
		start := time.Now()
		cs, err := Diff(ctx, prevBs, curBs, aCid, bCid)
		if err != nil {
			t.Fatalf("unexpected error from diff: %v", err)
		}
		serial = time.Since(start)

		if len(cs) != expectedLength {
			t.Fatalf("got %d changes, wanted %d", len(cs), expectedLength)
		}

		for i := range cs {
			ecs[i].assertExpectation(t, cs[i])
		}
	})

	t.Run("assert parallel diff", func(t *testing.T) {
		for _, workers := range []int64{0, 1, 3, 8} {
			start := time.Now()
			cs, err := ParallelDiff(ctx, prevBs, curBs, aCid, bCid, workers)
			if err != nil {
				t.Fatalf("unexpected error from diff: %v", err)
			}
			parallel = time.Since(start)

			if len(cs) != expectedLength {
				t.Fatalf("got %d changes, wanted %d", len(cs), expectedLength)
			}

			for i := range cs {
				ecs[i].assertExpectation(t, cs[i])
			}
		}
	})

	t.Logf("serial diff: %s parallel diff: %s", serial, parallel)
}

func TestParallelDiffSpans(t *testing.T) {
	ctx := context.Background()
	bs := cbor.NewCborStore(newMockBlocks())

	// long enough to be split across several spans
	a := ringOf(t, 2)
	b := ringOf(t, 2)
	for i := 0; i < 5*minSpan+17; i++ {
		require.NoError(t, a.Append(uint8(i%2)))
		require.NoError(t, b.Append(uint8((i/7)%2)))
	}
	ac, err := a.Flush(ctx, bs)
	require.NoError(t, err)
	bc, err := b.Flush(ctx, bs)
	require.NoError(t, err)

	serial, err := Diff(ctx, bs, bs, ac, bc)
	require.NoError(t, err)
	parallel, err := ParallelDiff(ctx, bs, bs, ac, bc, 4)
	require.NoError(t, err)
	require.Equal(t, serial, parallel)
}

func TestParallelDiffCanceled(t *testing.T) {
	bs := cbor.NewCborStore(newMockBlocks())
	c, err := ringOf(t, 10, 1).Flush(context.Background(), bs)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// The mock store ignores the context, so only the worker stage can
	// observe the cancellation.
	cs, err := ParallelDiff(ctx, bs, bs, c, c, 2)
	if err == nil {
		require.Empty(t, cs)
	}
}
