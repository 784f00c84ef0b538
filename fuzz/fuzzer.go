package fuzzer

import (
	"fmt"
)

var Debug = false

type opCode byte

const (
	opAppend opCode = iota
	opPrepend
	opInsert
	opSet
	opGet
	opRemoveAt
	opRemove
	opSwap
	opRotateLeft
	opRotateRight
	opSortAsc
	opSortDesc
	opClear
	opFlush
	opReload
	opMax
)

type op struct {
	code  opCode
	index int
	other int
	digit uint8
}

// Parse turns fuzzer input into operations, four bytes each: code, index,
// second index, digit.
func Parse(data []byte) (ops []op) {
	scratch := make([]byte, 4)

	for len(data) > 0 {
		n := copy(scratch, data)
		data = data[n:]

		ops = append(ops, op{
			code:  opCode(scratch[0] % byte(opMax)),
			index: int(scratch[1]),
			other: int(scratch[2]),
			digit: scratch[3],
		})
	}
	return ops
}

func Fuzz(data []byte) int {
	if len(data) < 1 {
		return -1
	}

	ring, err := newCheckedRing()
	if err != nil {
		panic("failed to construct ring")
	}
	for _, op := range Parse(data) {
		switch op.code {
		case opAppend:
			ring.append(op.digit)
		case opPrepend:
			ring.prepend(op.digit)
		case opInsert:
			ring.insert(op.index, op.digit)
		case opSet:
			ring.set(op.index, op.digit)
		case opGet:
			ring.get(op.index)
		case opRemoveAt:
			ring.removeAt(op.index)
		case opRemove:
			ring.remove(op.digit)
		case opSwap:
			ring.swap(op.index, op.other)
		case opRotateLeft:
			ring.rotateLeft()
		case opRotateRight:
			ring.rotateRight()
		case opSortAsc:
			ring.sort(true)
		case opSortDesc:
			ring.sort(false)
		case opClear:
			ring.clear()
		case opFlush:
			ring.flush()
		case opReload:
			ring.reload()
		default:
			panic("impossible")
		}
		ring.checkShape()
	}
	if Debug {
		fmt.Printf("checking\n")
	}
	ring.check()
	return 0
}
