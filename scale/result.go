package scale

import "fmt"

// Unit is the empty value. It encodes to zero bytes.
type Unit struct{}

func (Unit) String() string { return "()" }

// Result is a two-variant value: Ok (tag 0x00) followed by a T, or Err
// (tag 0x01) followed by an E.
type Result[T, E any] struct {
	ok    T
	err   E
	isErr bool
}

func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{ok: v}
}

func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{err: e, isErr: true}
}

func (r Result[T, E]) IsOk() bool  { return !r.isErr }
func (r Result[T, E]) IsErr() bool { return r.isErr }

// Ok returns the success value and whether r holds one.
func (r Result[T, E]) Ok() (T, bool) {
	return r.ok, !r.isErr
}

// Err returns the error value and whether r holds one.
func (r Result[T, E]) Err() (E, bool) {
	return r.err, r.isErr
}

func (r Result[T, E]) String() string {
	if r.isErr {
		return fmt.Sprintf("Err(%v)", r.err)
	}
	return fmt.Sprintf("Ok(%v)", r.ok)
}

func (r Result[T, E]) EncodeScale(e *Encoder) error {
	if r.isErr {
		e.PutUint8(1)
		return e.Encode(r.err)
	}
	e.PutUint8(0)
	return e.Encode(r.ok)
}

func (r *Result[T, E]) DecodeScale(d *Decoder) error {
	if err := d.Descend(); err != nil {
		return err
	}
	defer d.Ascend()

	tag, err := d.ReadUint8()
	if err != nil {
		return err
	}
	switch tag {
	case 0:
		var v T
		if err := d.Decode(&v); err != nil {
			return fmt.Errorf("result ok: %w", err)
		}
		*r = Ok[T, E](v)
	case 1:
		var e E
		if err := d.Decode(&e); err != nil {
			return fmt.Errorf("result err: %w", err)
		}
		*r = Err[T](e)
	default:
		return fmt.Errorf("%w: result tag 0x%02x at offset %d", ErrInvalidVariant, tag, d.Offset()-1)
	}
	return nil
}

// Option is a value that may be absent: None (tag 0x00) or Some (tag 0x01)
// followed by a T.
type Option[T any] struct {
	value T
	some  bool
}

func Some[T any](v T) Option[T] {
	return Option[T]{value: v, some: true}
}

func None[T any]() Option[T] {
	return Option[T]{}
}

func (o Option[T]) IsSome() bool { return o.some }

// Get returns the contained value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.some
}

func (o Option[T]) String() string {
	if !o.some {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

func (o Option[T]) EncodeScale(e *Encoder) error {
	if !o.some {
		e.PutUint8(0)
		return nil
	}
	e.PutUint8(1)
	return e.Encode(o.value)
}

func (o *Option[T]) DecodeScale(d *Decoder) error {
	if err := d.Descend(); err != nil {
		return err
	}
	defer d.Ascend()

	tag, err := d.ReadUint8()
	if err != nil {
		return err
	}
	switch tag {
	case 0:
		*o = None[T]()
	case 1:
		var v T
		if err := d.Decode(&v); err != nil {
			return fmt.Errorf("option some: %w", err)
		}
		*o = Some(v)
	default:
		return fmt.Errorf("%w: option tag 0x%02x at offset %d", ErrInvalidVariant, tag, d.Offset()-1)
	}
	return nil
}
