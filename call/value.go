package call

import (
	"sync/atomic"

	"github.com/vitwit/inkcall/scale"
	"github.com/vitwit/inkcall/types"
)

// NewInput starts an input buffer with the given selector. Arguments are
// appended with the encoder's Put methods, which cannot fail.
func NewInput(sel Selector) *scale.Encoder {
	return scale.NewEncoder().PutRaw(sel[:])
}

// input is the single-use input buffer shared by both call shapes.
type input struct {
	data []byte
	used atomic.Bool
}

func (in *input) take() ([]byte, error) {
	if in.used.Swap(true) {
		return nil, ErrConsumed
	}
	data := in.data
	in.data = nil
	return data, nil
}

// PayableCall transfers a native value along with its input.
type PayableCall[T any] struct {
	value types.Balance
	in    input
}

// NewPayable wraps an encoded input that transfers value when dispatched.
// data is owned by the call from here on.
func NewPayable[T any](value types.Balance, data []byte) *PayableCall[T] {
	return &PayableCall[T]{value: value, in: input{data: data}}
}

func (c *PayableCall[T]) NativeValue() types.Balance     { return c.value }
func (c *PayableCall[T]) IntoInputData() ([]byte, error) { return c.in.take() }
func (c *PayableCall[T]) Decoder() OutputDecoder[T]      { return GenericDecoder[T]{} }

// UnpayableCall never transfers value.
type UnpayableCall[T any] struct {
	in input
}

// NewUnpayable wraps an encoded input that transfers nothing.
func NewUnpayable[T any](data []byte) *UnpayableCall[T] {
	return &UnpayableCall[T]{in: input{data: data}}
}

func (c *UnpayableCall[T]) NativeValue() types.Balance     { return 0 }
func (c *UnpayableCall[T]) IntoInputData() ([]byte, error) { return c.in.take() }
func (c *UnpayableCall[T]) Decoder() OutputDecoder[T]      { return GenericDecoder[T]{} }
