// Package trigger holds the call builders for the trigger contract: one
// payable message, one unpayable message returning a nested Result, and one
// constructor.
package trigger

import (
	"github.com/vitwit/inkcall/call"
	"github.com/vitwit/inkcall/metadata"
	"github.com/vitwit/inkcall/scale"
	"github.com/vitwit/inkcall/types"
)

var (
	SelectorTrigger          = call.SelectorFromUint32(0xDEADBEEF)
	SelectorTransfer         = call.SelectorFromUint32(0x1BADB002)
	SelectorWithTriggerValue = call.SelectorFromUint32(0xBAADF00D)
)

type (
	TriggerOutput          = scale.Unit
	TransferOutput         = scale.Result[scale.Unit, scale.Unit]
	WithTriggerValueOutput = scale.Unit
)

// Trigger builds the payable trigger message. nativeValue is transferred with
// the call and also passed to the contract as the first argument.
func Trigger(nativeValue types.Balance, triggerValue bool, msg string) call.MessageCall[TriggerOutput] {
	input := call.NewInput(SelectorTrigger).
		PutUint32(uint32(nativeValue)).
		PutBool(triggerValue).
		PutString(msg).
		Bytes()
	return call.AsMessage[TriggerOutput](call.NewPayable[TriggerOutput](nativeValue, input))
}

func TriggerOutputDecoder() call.OutputDecoder[TriggerOutput] {
	return call.GenericDecoder[TriggerOutput]{}
}

func DecodeTriggerOutput(output []byte, limit uint32) (call.Output[TriggerOutput], error) {
	return call.DecodeOutput[TriggerOutput](output, limit)
}

func DecodeTriggerOutputUnsafeUnbounded(output []byte) (call.Output[TriggerOutput], error) {
	return call.DecodeOutputUnsafeUnbounded[TriggerOutput](output)
}

// Transfer moves amount from one account to another inside the contract.
// amount is an argument, not a native value transfer.
func Transfer(from, to types.AccountID, amount types.Balance) call.MessageCall[TransferOutput] {
	input := call.NewInput(SelectorTransfer).
		PutRaw(from[:]).
		PutRaw(to[:]).
		PutUint32(uint32(amount)).
		Bytes()
	return call.AsMessage[TransferOutput](call.NewUnpayable[TransferOutput](input))
}

func TransferOutputDecoder() call.OutputDecoder[TransferOutput] {
	return call.GenericDecoder[TransferOutput]{}
}

func DecodeTransferOutput(output []byte, limit uint32) (call.Output[TransferOutput], error) {
	return call.DecodeOutput[TransferOutput](output, limit)
}

func DecodeTransferOutputUnsafeUnbounded(output []byte) (call.Output[TransferOutput], error) {
	return call.DecodeOutputUnsafeUnbounded[TransferOutput](output)
}

// WithTriggerValue builds the constructor.
func WithTriggerValue(triggerValue bool) call.ConstructorCall[WithTriggerValueOutput] {
	input := call.NewInput(SelectorWithTriggerValue).PutBool(triggerValue).Bytes()
	return call.AsConstructor[WithTriggerValueOutput](call.NewUnpayable[WithTriggerValueOutput](input))
}

func WithTriggerValueOutputDecoder() call.OutputDecoder[WithTriggerValueOutput] {
	return call.GenericDecoder[WithTriggerValueOutput]{}
}

func DecodeWithTriggerValueOutput(output []byte, limit uint32) (call.Output[WithTriggerValueOutput], error) {
	return call.DecodeOutput[WithTriggerValueOutput](output, limit)
}

func DecodeWithTriggerValueOutputUnsafeUnbounded(output []byte) (call.Output[WithTriggerValueOutput], error) {
	return call.DecodeOutputUnsafeUnbounded[WithTriggerValueOutput](output)
}

// Metadata describes the contract's entry points.
func Metadata() *metadata.Contract {
	return &metadata.Contract{
		Name: "trigger",
		Constructors: []metadata.Entry{
			{Label: "with_trigger_value", Selector: SelectorWithTriggerValue.String(), Returns: "()"},
		},
		Messages: []metadata.Entry{
			{Label: "trigger", Selector: SelectorTrigger.String(), Payable: true, Returns: "()"},
			{Label: "transfer", Selector: SelectorTransfer.String(), Returns: "Result<(), ()>"},
		},
	}
}
