package digitring

import (
	"context"
	"encoding/json"

	cid "github.com/ipfs/go-cid"
	cbor "github.com/ipfs/go-ipld-cbor"
	"golang.org/x/xerrors"
)

// ChangeType denotes type of change in Change
type ChangeType int

// These constants define the changes that turn one digit sequence into
// another, position by position.
const (
	Add ChangeType = iota
	Remove
	Modify
)

func (t ChangeType) String() string {
	switch t {
	case Add:
		return "add"
	case Remove:
		return "remove"
	case Modify:
		return "modify"
	default:
		return "unknown"
	}
}

// Change describes one position that differs between two rings. Index counts
// from the most significant digit. Before is meaningless for Add and After
// for Remove.
type Change struct {
	Type   ChangeType
	Index  uint64
	Before uint8
	After  uint8
}

func (ch Change) String() string {
	b, _ := json.Marshal(ch)
	return string(b)
}

// Diff loads two flushed rings and returns the changes that transform prev
// into cur.
func Diff(ctx context.Context, prevBs, curBs cbor.IpldStore, prev, cur cid.Cid) ([]*Change, error) {
	prevRing, err := LoadRing(ctx, prevBs, prev)
	if err != nil {
		return nil, xerrors.Errorf("loading previous ring: %w", err)
	}

	curRing, err := LoadRing(ctx, curBs, cur)
	if err != nil {
		return nil, xerrors.Errorf("loading current ring: %w", err)
	}

	return DiffRings(prevRing, curRing)
}

// DiffRings compares two digit sequences position by position. Positions
// present in only one of them are reported as Add or Remove. Both sequences
// must be in the same base.
func DiffRings(prev, cur Sequence) ([]*Change, error) {
	if isNilSequence(prev) || isNilSequence(cur) {
		return nil, invalidArgumentError("nil sequence")
	}
	if pb, cb := sequenceBase(prev), sequenceBase(cur); pb != cb {
		return nil, invalidArgumentError("diffing rings with differing bases not supported (prev=%d, cur=%d)", pb, cb)
	}
	pd, cd := prev.Digits(), cur.Digits()
	return diffRange(pd, cd, 0, max(len(pd), len(cd))), nil
}

// sequenceBase returns the base a sequence declares, or DefaultBase.
func sequenceBase(s Sequence) int {
	if b, ok := s.(interface{ Base() int }); ok {
		return b.Base()
	}
	return DefaultBase
}

// diffRange compares positions [from, to) of prev and cur.
func diffRange(prev, cur []uint8, from, to int) []*Change {
	changes := make([]*Change, 0)
	for i := from; i < to; i++ {
		index := uint64(i)

		switch {
		case i >= len(prev):
			changes = append(changes, &Change{
				Type:  Add,
				Index: index,
				After: cur[i],
			})
		case i >= len(cur):
			changes = append(changes, &Change{
				Type:   Remove,
				Index:  index,
				Before: prev[i],
			})
		case prev[i] != cur[i]:
			changes = append(changes, &Change{
				Type:   Modify,
				Index:  index,
				Before: prev[i],
				After:  cur[i],
			})
		}
	}
	return changes
}
