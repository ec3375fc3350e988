package clients

import (
	"context"
	"errors"
	"math/big"
	"testing"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitwit/inkcall/types"
)

var (
	testAddress     = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	contractAddress = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

type fakeBackend struct {
	calls []ethereum.CallMsg
	nonce uint64
	out   []byte
	err   error
}

func (f *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.calls = append(f.calls, msg)
	return f.out, f.err
}

func (f *fakeBackend) PendingNonceAt(_ context.Context, account common.Address) (uint64, error) {
	if account != testAddress {
		return 0, errors.New("unexpected account")
	}
	return f.nonce, nil
}

func TestEVMRuntime_Call(t *testing.T) {
	backend := &fakeBackend{out: []byte{0x00}}
	rt := NewEVMRuntimeWithBackend(backend, testAddress)
	assert.Equal(t, "evm", rt.Name())

	out, err := rt.Call(context.Background(), CallRequest{
		Target:   contractAddress,
		GasLimit: 50_000,
		Value:    7,
		Input:    []byte{0xde, 0xad, 0xbe, 0xef},
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, out)

	require.Len(t, backend.calls, 1)
	msg := backend.calls[0]
	assert.Equal(t, testAddress, msg.From)
	require.NotNil(t, msg.To)
	assert.Equal(t, contractAddress, *msg.To)
	assert.Equal(t, uint64(50_000), msg.Gas)
	assert.Equal(t, int64(7), msg.Value.Int64())
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, msg.Data)
}

func TestEVMRuntime_CallErrorKeepsOutput(t *testing.T) {
	backend := &fakeBackend{out: []byte{0x01}, err: errors.New("execution reverted")}
	rt := NewEVMRuntimeWithBackend(backend, testAddress)

	out, err := rt.Call(context.Background(), CallRequest{Target: contractAddress})
	require.ErrorContains(t, err, "execution reverted")
	assert.Equal(t, []byte{0x01}, out)
}

func TestEVMRuntime_Instantiate(t *testing.T) {
	backend := &fakeBackend{nonce: 3, out: []byte{0x00}}
	rt := NewEVMRuntimeWithBackend(backend, testAddress)

	addr, out, err := rt.Instantiate(context.Background(), InstantiateRequest{
		GasLimit: 100_000,
		Input:    []byte{0xba, 0xad, 0xf0, 0x0d, 0x00},
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, out)
	assert.Equal(t, crypto.CreateAddress(testAddress, 3), addr)

	require.Len(t, backend.calls, 1)
	assert.Nil(t, backend.calls[0].To)
	assert.Equal(t, types.Balance(0), types.Balance(backend.calls[0].Value.Uint64()))
}
