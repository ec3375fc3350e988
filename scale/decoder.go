package scale

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"unicode/utf8"
)

// maxZeroSizedElements caps sequences whose elements occupy no input, since
// their declared length cannot be checked against the remaining bytes.
const maxZeroSizedElements = 1 << 16

// Decoder reads SCALE-encoded values from a byte slice. A bounded decoder
// tracks how many compound values are currently open and refuses to enter one
// more once the limit is reached.
type Decoder struct {
	data    []byte
	off     int
	depth   uint32
	limit   uint32
	bounded bool
}

// NewDecoder returns a decoder without a nesting ceiling.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// NewBoundedDecoder returns a decoder that allows at most limit nested
// compound values.
func NewBoundedDecoder(data []byte, limit uint32) *Decoder {
	return &Decoder{data: data, limit: limit, bounded: true}
}

func (d *Decoder) Offset() int    { return d.off }
func (d *Decoder) Remaining() int { return len(d.data) - d.off }
func (d *Decoder) Depth() uint32  { return d.depth }

// Descend enters a compound value.
func (d *Decoder) Descend() error {
	if d.bounded && d.depth >= d.limit {
		return fmt.Errorf("%w: limit %d at offset %d", ErrDepthLimitExceeded, d.limit, d.off)
	}
	d.depth++
	return nil
}

// Ascend leaves the compound value entered by the matching Descend.
func (d *Decoder) Ascend() {
	if d.depth > 0 {
		d.depth--
	}
}

func (d *Decoder) next(n int) ([]byte, error) {
	if n < 0 || d.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnexpectedEOF, n, d.off, d.Remaining())
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b, nil
}

// ReadFixed reads exactly n bytes with no length prefix. The result is a copy.
func (d *Decoder) ReadFixed(n int) ([]byte, error) {
	b, err := d.next(n)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.next(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: 0x%02x at offset %d", ErrInvalidBool, b[0], d.off-1)
	}
}

func (d *Decoder) ReadUint8() (uint8, error) {
	b, err := d.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) ReadUint16() (uint16, error) {
	b, err := d.next(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (d *Decoder) ReadUint32() (uint32, error) {
	b, err := d.next(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *Decoder) ReadUint64() (uint64, error) {
	b, err := d.next(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadCompact reads a SCALE compact integer. Encodings that do not use the
// shortest form are rejected.
func (d *Decoder) ReadCompact() (uint64, error) {
	start := d.off
	b0, err := d.ReadUint8()
	if err != nil {
		return 0, err
	}
	switch b0 & 0b11 {
	case 0b00:
		return uint64(b0 >> 2), nil
	case 0b01:
		b1, err := d.ReadUint8()
		if err != nil {
			return 0, err
		}
		v := uint64(binary.LittleEndian.Uint16([]byte{b0, b1}) >> 2)
		if v < 1<<6 {
			return 0, fmt.Errorf("%w: at offset %d", ErrNonCanonicalCompact, start)
		}
		return v, nil
	case 0b10:
		rest, err := d.next(3)
		if err != nil {
			return 0, err
		}
		v := uint64(binary.LittleEndian.Uint32([]byte{b0, rest[0], rest[1], rest[2]}) >> 2)
		if v < 1<<14 {
			return 0, fmt.Errorf("%w: at offset %d", ErrNonCanonicalCompact, start)
		}
		return v, nil
	default:
		n := int(b0>>2) + 4
		if n > 8 {
			return 0, fmt.Errorf("%w: %d-byte integer at offset %d", ErrCompactOverflow, n, start)
		}
		raw, err := d.next(n)
		if err != nil {
			return 0, err
		}
		var v uint64
		for i := n - 1; i >= 0; i-- {
			v = v<<8 | uint64(raw[i])
		}
		if v < 1<<30 || (n > 4 && raw[n-1] == 0) {
			return 0, fmt.Errorf("%w: at offset %d", ErrNonCanonicalCompact, start)
		}
		return v, nil
	}
}

// readLength reads a compact length prefix and checks that count elements of
// at least minSize bytes each can still be present in the input.
func (d *Decoder) readLength(minSize int) (int, error) {
	n, err := d.ReadCompact()
	if err != nil {
		return 0, err
	}
	if minSize == 0 {
		if n > maxZeroSizedElements {
			return 0, fmt.Errorf("%w: %d zero-sized elements", ErrSequenceTooLong, n)
		}
		return int(n), nil
	}
	if n > uint64(d.Remaining()/minSize) {
		return 0, fmt.Errorf("%w: %w: length %d with %d bytes left", ErrUnexpectedEOF, ErrSequenceTooLong, n, d.Remaining())
	}
	return int(n), nil
}

// ReadByteSlice reads a compact length prefix followed by that many bytes.
func (d *Decoder) ReadByteSlice() ([]byte, error) {
	n, err := d.readLength(1)
	if err != nil {
		return nil, err
	}
	return d.ReadFixed(n)
}

// ReadString reads a length-prefixed utf-8 string.
func (d *Decoder) ReadString() (string, error) {
	n, err := d.readLength(1)
	if err != nil {
		return "", err
	}
	b, err := d.next(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: at offset %d", ErrInvalidUTF8, d.off-n)
	}
	return string(b), nil
}

// Decode reads into the value pointed to by v. See Encoder.Encode for the
// supported kinds. Pointers are only accepted as the outermost target; use
// Option for optional fields.
func (d *Decoder) Decode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: decode target must be a non-nil pointer, got %T", ErrUnsupportedType, v)
	}
	return d.decodeValue(rv.Elem())
}

func (d *Decoder) decodeValue(v reflect.Value) error {
	if v.CanAddr() && v.Addr().CanInterface() {
		if dec, ok := v.Addr().Interface().(Decodable); ok {
			return dec.DecodeScale(d)
		}
	}

	switch v.Kind() {
	case reflect.Bool:
		b, err := d.ReadBool()
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Uint8:
		x, err := d.ReadUint8()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
	case reflect.Uint16:
		x, err := d.ReadUint16()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
	case reflect.Uint32:
		x, err := d.ReadUint32()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
	case reflect.Uint64:
		x, err := d.ReadUint64()
		if err != nil {
			return err
		}
		v.SetUint(x)
	case reflect.Int8:
		x, err := d.ReadUint8()
		if err != nil {
			return err
		}
		v.SetInt(int64(int8(x)))
	case reflect.Int16:
		x, err := d.ReadUint16()
		if err != nil {
			return err
		}
		v.SetInt(int64(int16(x)))
	case reflect.Int32:
		x, err := d.ReadUint32()
		if err != nil {
			return err
		}
		v.SetInt(int64(int32(x)))
	case reflect.Int64:
		x, err := d.ReadUint64()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
	case reflect.String:
		s, err := d.ReadString()
		if err != nil {
			return err
		}
		v.SetString(s)
	case reflect.Slice:
		return d.decodeSlice(v)
	case reflect.Array:
		return d.decodeArray(v)
	case reflect.Struct:
		return d.decodeStruct(v)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type())
	}
	return nil
}

func (d *Decoder) decodeSlice(v reflect.Value) error {
	elem := v.Type().Elem()
	if elem.Kind() == reflect.Uint8 {
		b, err := d.ReadByteSlice()
		if err != nil {
			return err
		}
		s := reflect.MakeSlice(v.Type(), len(b), len(b))
		for i, x := range b {
			s.Index(i).SetUint(uint64(x))
		}
		v.Set(s)
		return nil
	}

	if err := d.Descend(); err != nil {
		return err
	}
	defer d.Ascend()

	minSize := 1
	if elem.Size() == 0 {
		minSize = 0
	}
	n, err := d.readLength(minSize)
	if err != nil {
		return err
	}
	s := reflect.MakeSlice(v.Type(), n, n)
	for i := 0; i < n; i++ {
		if err := d.decodeValue(s.Index(i)); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	v.Set(s)
	return nil
}

func (d *Decoder) decodeArray(v reflect.Value) error {
	if v.Type().Elem().Kind() == reflect.Uint8 {
		b, err := d.next(v.Len())
		if err != nil {
			return err
		}
		for i, x := range b {
			v.Index(i).SetUint(uint64(x))
		}
		return nil
	}

	if err := d.Descend(); err != nil {
		return err
	}
	defer d.Ascend()
	for i := 0; i < v.Len(); i++ {
		if err := d.decodeValue(v.Index(i)); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func (d *Decoder) decodeStruct(v reflect.Value) error {
	t := v.Type()
	var fields []int
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !encodedField(f) {
			continue
		}
		if f.Type.Kind() == reflect.Pointer {
			return fmt.Errorf("%w: pointer field %s.%s", ErrUnsupportedType, t.Name(), f.Name)
		}
		fields = append(fields, i)
	}
	if len(fields) == 0 {
		return nil
	}

	if err := d.Descend(); err != nil {
		return err
	}
	defer d.Ascend()
	for _, i := range fields {
		if err := d.decodeValue(v.Field(i)); err != nil {
			return fmt.Errorf("field %s.%s: %w", t.Name(), t.Field(i).Name, err)
		}
	}
	return nil
}
