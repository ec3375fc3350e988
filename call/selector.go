package call

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
)

// Selector is the 4-byte prefix of a call input that names the target
// function.
type Selector [4]byte

// SelectorFromUint32 writes v the way SCALE encodes a u32, least
// significant byte first, so 0xDEADBEEF becomes EF BE AD DE.
func SelectorFromUint32(v uint32) Selector {
	var s Selector
	binary.LittleEndian.PutUint32(s[:], v)
	return s
}

// SelectorFromLabel derives a selector as the first four bytes of the
// BLAKE2b-256 hash of label.
func SelectorFromLabel(label string) Selector {
	h := blake2b.Sum256([]byte(label))
	var s Selector
	copy(s[:], h[:4])
	return s
}

// SelectorFromSignature derives a selector as the first four bytes of the
// Keccak-256 hash of a function signature such as "transfer(address,uint256)".
func SelectorFromSignature(sig string) Selector {
	var s Selector
	copy(s[:], crypto.Keccak256([]byte(sig))[:4])
	return s
}

// ParseSelector reads a 0x-prefixed 4-byte hex string.
func ParseSelector(s string) (Selector, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Selector{}, fmt.Errorf("invalid selector %q: %w", s, err)
	}
	if len(b) != len(Selector{}) {
		return Selector{}, fmt.Errorf("invalid selector %q: want 4 bytes, got %d", s, len(b))
	}
	var sel Selector
	copy(sel[:], b)
	return sel, nil
}

// SelectorOf splits input into its selector and argument bytes.
func SelectorOf(input []byte) (Selector, []byte, bool) {
	var s Selector
	if len(input) < len(s) {
		return s, nil, false
	}
	copy(s[:], input)
	return s, input[len(s):], true
}

// Uint32 is the inverse of SelectorFromUint32.
func (s Selector) Uint32() uint32 {
	return binary.LittleEndian.Uint32(s[:])
}

// String is the selector bytes in 0x-prefixed hex, in wire order.
func (s Selector) String() string {
	return hexutil.Encode(s[:])
}
