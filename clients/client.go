package clients

import (
	"context"

	"github.com/vitwit/inkcall/types"
)

// CallRequest invokes an existing contract instance.
type CallRequest struct {
	Target   types.AccountID
	GasLimit uint64
	Value    types.Balance
	Input    []byte
}

// InstantiateRequest creates a new contract instance.
type InstantiateRequest struct {
	GasLimit uint64
	Value    types.Balance
	Input    []byte
}

// Runtime executes contract calls and returns their raw SCALE output. A
// runtime error says nothing about the output: the returned bytes, possibly
// none, are still handed to the decoder.
type Runtime interface {
	Call(ctx context.Context, req CallRequest) ([]byte, error)
	Instantiate(ctx context.Context, req InstantiateRequest) (types.AccountID, []byte, error)
	Name() string
}
