package scale

import (
	"encoding/binary"
	"fmt"
	"reflect"
)

// Encoder appends SCALE-encoded values to an internal buffer. The typed Put
// methods cannot fail; only the reflective Encode reports errors, for types
// outside the supported set.
type Encoder struct {
	buf []byte
}

func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 64)}
}

// Bytes returns the encoded buffer. The encoder must not be used afterwards.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

func (e *Encoder) Len() int {
	return len(e.buf)
}

// PutRaw appends b without a length prefix, the layout of fixed-size arrays.
func (e *Encoder) PutRaw(b []byte) *Encoder {
	e.buf = append(e.buf, b...)
	return e
}

func (e *Encoder) PutBool(v bool) *Encoder {
	if v {
		e.buf = append(e.buf, 1)
	} else {
		e.buf = append(e.buf, 0)
	}
	return e
}

func (e *Encoder) PutUint8(v uint8) *Encoder {
	e.buf = append(e.buf, v)
	return e
}

func (e *Encoder) PutUint16(v uint16) *Encoder {
	e.buf = binary.LittleEndian.AppendUint16(e.buf, v)
	return e
}

func (e *Encoder) PutUint32(v uint32) *Encoder {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
	return e
}

func (e *Encoder) PutUint64(v uint64) *Encoder {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
	return e
}

func (e *Encoder) PutInt8(v int8) *Encoder { return e.PutUint8(uint8(v)) }

func (e *Encoder) PutInt16(v int16) *Encoder { return e.PutUint16(uint16(v)) }

func (e *Encoder) PutInt32(v int32) *Encoder { return e.PutUint32(uint32(v)) }

func (e *Encoder) PutInt64(v int64) *Encoder { return e.PutUint64(uint64(v)) }

// PutCompact appends v in the SCALE compact integer form.
func (e *Encoder) PutCompact(v uint64) *Encoder {
	switch {
	case v < 1<<6:
		e.buf = append(e.buf, byte(v<<2))
	case v < 1<<14:
		e.buf = binary.LittleEndian.AppendUint16(e.buf, uint16(v<<2)|0b01)
	case v < 1<<30:
		e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(v<<2)|0b10)
	default:
		n := 4
		for n < 8 && v>>(8*n) != 0 {
			n++
		}
		e.buf = append(e.buf, byte(n-4)<<2|0b11)
		for i := 0; i < n; i++ {
			e.buf = append(e.buf, byte(v>>(8*i)))
		}
	}
	return e
}

// PutByteSlice appends a compact length prefix followed by b.
func (e *Encoder) PutByteSlice(b []byte) *Encoder {
	e.PutCompact(uint64(len(b)))
	e.buf = append(e.buf, b...)
	return e
}

// PutString appends a compact length prefix followed by the utf-8 bytes of s.
func (e *Encoder) PutString(s string) *Encoder {
	e.PutCompact(uint64(len(s)))
	e.buf = append(e.buf, s...)
	return e
}

// Encode appends v using reflection. Supported kinds are bool, fixed-width
// integers, strings, slices, arrays and structs (exported fields in order,
// `scale:"-"` skips a field). Types implementing Encodable control their own
// layout.
func (e *Encoder) Encode(v any) error {
	return e.encodeValue(reflect.ValueOf(v))
}

func (e *Encoder) encodeValue(v reflect.Value) error {
	if !v.IsValid() {
		return fmt.Errorf("%w: nil value", ErrUnsupportedType)
	}
	if v.CanInterface() {
		if enc, ok := v.Interface().(Encodable); ok {
			return enc.EncodeScale(e)
		}
	}
	if v.CanAddr() && v.Addr().CanInterface() {
		if enc, ok := v.Addr().Interface().(Encodable); ok {
			return enc.EncodeScale(e)
		}
	}

	switch v.Kind() {
	case reflect.Bool:
		e.PutBool(v.Bool())
	case reflect.Uint8:
		e.PutUint8(uint8(v.Uint()))
	case reflect.Uint16:
		e.PutUint16(uint16(v.Uint()))
	case reflect.Uint32:
		e.PutUint32(uint32(v.Uint()))
	case reflect.Uint64:
		e.PutUint64(v.Uint())
	case reflect.Int8:
		e.PutInt8(int8(v.Int()))
	case reflect.Int16:
		e.PutInt16(int16(v.Int()))
	case reflect.Int32:
		e.PutInt32(int32(v.Int()))
	case reflect.Int64:
		e.PutInt64(v.Int())
	case reflect.String:
		e.PutString(v.String())
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			e.PutCompact(uint64(v.Len()))
			for i := 0; i < v.Len(); i++ {
				e.buf = append(e.buf, byte(v.Index(i).Uint()))
			}
			return nil
		}
		e.PutCompact(uint64(v.Len()))
		for i := 0; i < v.Len(); i++ {
			if err := e.encodeValue(v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			for i := 0; i < v.Len(); i++ {
				e.buf = append(e.buf, byte(v.Index(i).Uint()))
			}
			return nil
		}
		for i := 0; i < v.Len(); i++ {
			if err := e.encodeValue(v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if !encodedField(t.Field(i)) {
				continue
			}
			if err := e.encodeValue(v.Field(i)); err != nil {
				return fmt.Errorf("field %s.%s: %w", t.Name(), t.Field(i).Name, err)
			}
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type())
	}
	return nil
}

func encodedField(f reflect.StructField) bool {
	return f.IsExported() && f.Tag.Get("scale") != "-"
}
