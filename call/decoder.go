package call

import (
	"fmt"

	"github.com/vitwit/inkcall/scale"
	"github.com/vitwit/inkcall/types"
)

// Output is the decoded response of a call: the function's own result in the
// Ok arm, or a language-level failure in the Err arm. Failing to decode the
// framing itself is reported as an error next to it, never inside it.
type Output[T any] = scale.Result[T, types.LangError]

// OutputDecoder turns raw runtime output into an Output.
type OutputDecoder[T any] interface {
	// DecodeOutput decodes output with at most limit nested compound values,
	// the outer Result included.
	DecodeOutput(output []byte, limit uint32) (Output[T], error)

	// DecodeOutputUnsafeUnbounded decodes without a nesting ceiling. Only use
	// it on output from a trusted runtime.
	DecodeOutputUnsafeUnbounded(output []byte) (Output[T], error)
}

// GenericDecoder decodes any T the scale package supports. Trailing bytes
// after the Output are ignored on both paths.
type GenericDecoder[T any] struct{}

func (GenericDecoder[T]) DecodeOutput(output []byte, limit uint32) (Output[T], error) {
	var out Output[T]
	if _, err := scale.UnmarshalWithDepthLimit(output, limit, &out); err != nil {
		return Output[T]{}, fmt.Errorf("decode output: %w", err)
	}
	return out, nil
}

func (GenericDecoder[T]) DecodeOutputUnsafeUnbounded(output []byte) (Output[T], error) {
	var out Output[T]
	if _, err := scale.Unmarshal(output, &out); err != nil {
		return Output[T]{}, fmt.Errorf("decode output: %w", err)
	}
	return out, nil
}

// DecodeOutput decodes output as an Output[T] with at most limit nested
// compound values.
func DecodeOutput[T any](output []byte, limit uint32) (Output[T], error) {
	return GenericDecoder[T]{}.DecodeOutput(output, limit)
}

// DecodeOutputUnsafeUnbounded decodes output as an Output[T] without a
// nesting ceiling.
func DecodeOutputUnsafeUnbounded[T any](output []byte) (Output[T], error) {
	return GenericDecoder[T]{}.DecodeOutputUnsafeUnbounded(output)
}
