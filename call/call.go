// Package call defines typed contract call values and the capability tags
// that decide, at compile time, whether a call may invoke an existing
// instance, create a new one, or both.
//
// A leaf builder encodes a selector and arguments into a PayableCall or
// UnpayableCall and wraps it with AsMessage, AsConstructor or AsDual. The
// dispatchers in the root package only accept values carrying the tag they
// need, so passing a constructor where a message is required does not type
// check.
package call

import (
	"errors"

	"github.com/vitwit/inkcall/types"
)

// ErrConsumed is returned when the input of a call value is taken twice.
var ErrConsumed = errors.New("call: input data already consumed")

// Call is a constructed call whose output decodes to T.
type Call[T any] interface {
	// NativeValue is the amount transferred with the call. It is always zero
	// for unpayable calls.
	NativeValue() types.Balance

	// IntoInputData hands over the encoded input, selector first. It
	// succeeds once; later calls return ErrConsumed.
	IntoInputData() ([]byte, error)

	Decoder() OutputDecoder[T]
}

// IsMessage marks a call that may invoke an existing contract instance.
type IsMessage interface {
	isMessage()
}

// IsConstructor marks a call that may create a new contract instance.
type IsConstructor interface {
	isConstructor()
}

// MessageCall is what Invoke accepts.
type MessageCall[T any] interface {
	Call[T]
	IsMessage
}

// ConstructorCall is what Create accepts.
type ConstructorCall[T any] interface {
	Call[T]
	IsConstructor
}

// DualCall is accepted by both dispatchers.
type DualCall[T any] interface {
	Call[T]
	IsMessage
	IsConstructor
}

// The wrappers embed the Call interface rather than the concrete value, so a
// wrapped value exposes exactly the tag it was given even under type
// assertion.
type message[T any] struct{ Call[T] }

func (message[T]) isMessage() {}

type constructor[T any] struct{ Call[T] }

func (constructor[T]) isConstructor() {}

type dual[T any] struct{ Call[T] }

func (dual[T]) isMessage()     {}
func (dual[T]) isConstructor() {}

// AsMessage tags c as a message. Tagging belongs in leaf builders, next to
// the selector it vouches for: AsMessage accepts any Call, including an
// already tagged constructor, and the result drops the previous tag.
func AsMessage[T any](c Call[T]) MessageCall[T] {
	return message[T]{c}
}

// AsConstructor tags c as a constructor. Like AsMessage it replaces any
// previous tag and is meant for leaf builders only.
func AsConstructor[T any](c Call[T]) ConstructorCall[T] {
	return constructor[T]{c}
}

// AsDual tags c as both a message and a constructor.
func AsDual[T any](c Call[T]) DualCall[T] {
	return dual[T]{c}
}
