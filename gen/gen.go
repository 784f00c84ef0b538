package main

import (
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/dimoria/digitring/internal"
)

func main() {
	if err := cbg.WriteTupleEncodersToFile("internal/cbor_gen.go", "internal", internal.Ring{}); err != nil {
		panic(err)
	}
}
