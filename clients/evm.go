package clients

import (
	"context"
	"fmt"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/vitwit/inkcall/types"
)

var _ Runtime = (*EVMRuntime)(nil)

// Backend is the subset of an Ethereum JSON-RPC client used by EVMRuntime.
// *ethclient.Client satisfies it.
type Backend interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
}

// EVMRuntime runs calls as eth_call simulations against an Ethereum-compatible
// endpoint whose contracts return SCALE-framed output, such as an ink! node
// exposing the Ethereum RPC.
type EVMRuntime struct {
	backend Backend
	from    common.Address
	closer  func()
}

// NewEVMRuntime dials rpcURL and issues calls from the given account.
func NewEVMRuntime(rpcURL string, from common.Address) (*EVMRuntime, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum RPC: %w", err)
	}

	return &EVMRuntime{
		backend: client,
		from:    from,
		closer:  client.Close,
	}, nil
}

func NewEVMRuntimeWithBackend(backend Backend, from common.Address) *EVMRuntime {
	return &EVMRuntime{backend: backend, from: from}
}

func (e *EVMRuntime) Name() string { return "evm" }

// Call implements Runtime.
func (e *EVMRuntime) Call(ctx context.Context, req CallRequest) ([]byte, error) {
	target := req.Target
	msg := ethereum.CallMsg{
		From:  e.from,
		To:    &target,
		Gas:   req.GasLimit,
		Value: new(big.Int).SetUint64(uint64(req.Value)),
		Data:  req.Input,
	}

	out, err := e.backend.CallContract(ctx, msg, nil)
	if err != nil {
		return out, fmt.Errorf("eth_call %s: %w", target.Hex(), err)
	}
	return out, nil
}

// Instantiate implements Runtime. The creation is simulated; the returned
// address is where a transaction from the same account with its next nonce
// would deploy.
func (e *EVMRuntime) Instantiate(ctx context.Context, req InstantiateRequest) (types.AccountID, []byte, error) {
	nonce, err := e.backend.PendingNonceAt(ctx, e.from)
	if err != nil {
		return types.AccountID{}, nil, fmt.Errorf("pending nonce for %s: %w", e.from.Hex(), err)
	}
	addr := crypto.CreateAddress(e.from, nonce)

	msg := ethereum.CallMsg{
		From:  e.from,
		Gas:   req.GasLimit,
		Value: new(big.Int).SetUint64(uint64(req.Value)),
		Data:  req.Input,
	}

	out, err := e.backend.CallContract(ctx, msg, nil)
	if err != nil {
		return addr, out, fmt.Errorf("eth_call create: %w", err)
	}
	return addr, out, nil
}

func (e *EVMRuntime) Close() {
	if e.closer != nil {
		e.closer()
	}
}
