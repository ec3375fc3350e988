// Package scale implements the SCALE binary layout shared with the contract
// execution runtime: fixed-width little-endian integers, compact length
// prefixes, and no self-description.
//
// Decoding can be bounded by a nesting budget. Every compound value (Result,
// Option, sequences of non-byte elements and structs with fields) consumes one
// level of the budget before any of its contents are materialized. The bounded
// and unbounded paths share a single decode routine.
package scale

// Encodable is implemented by types with a hand-written layout.
type Encodable interface {
	EncodeScale(e *Encoder) error
}

// Decodable is implemented by types with a hand-written layout. Compound
// implementations must bracket their contents with Decoder.Descend and
// Decoder.Ascend so that the nesting budget applies to them.
type Decodable interface {
	DecodeScale(d *Decoder) error
}

// Marshal encodes v.
func Marshal(v any) ([]byte, error) {
	e := NewEncoder()
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// Unmarshal decodes data into v without a nesting ceiling and returns the
// number of bytes consumed. Trailing bytes are left unread.
func Unmarshal(data []byte, v any) (int, error) {
	d := NewDecoder(data)
	if err := d.Decode(v); err != nil {
		return d.Offset(), err
	}
	return d.Offset(), nil
}

// UnmarshalWithDepthLimit decodes data into v, failing with
// ErrDepthLimitExceeded once more than limit compound values are nested.
// Trailing bytes are left unread.
func UnmarshalWithDepthLimit(data []byte, limit uint32, v any) (int, error) {
	d := NewBoundedDecoder(data, limit)
	if err := d.Decode(v); err != nil {
		return d.Offset(), err
	}
	return d.Offset(), nil
}
