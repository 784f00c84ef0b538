package internal

// Ring is the serialized form of a digit ring: its base and its digits, most
// significant first, one byte each.
type Ring struct {
	Base   uint64
	Digits []byte
}
