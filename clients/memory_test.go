package clients

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitwit/inkcall/call"
	"github.com/vitwit/inkcall/scale"
	"github.com/vitwit/inkcall/types"
)

var (
	selNew   = call.SelectorFromLabel("new")
	selGet   = call.SelectorFromLabel("get")
	selFlip  = call.SelectorFromLabel("flip")
	selPanic = call.SelectorFromLabel("panic")
	selDeny  = call.SelectorFromLabel("deny")
	selCrash = call.SelectorFromLabel("crash")
)

// flipper stores a single bool.
func flipper() *ContractDef {
	return &ContractDef{
		Name: "flipper",
		Constructors: map[call.Selector]Handler{
			selNew: func(env *Env, args *scale.Decoder) ([]byte, error) {
				v, err := args.ReadBool()
				if err != nil {
					return nil, types.LangErrorCouldNotReadInput
				}
				env.Storage["value"] = scale.NewEncoder().PutBool(v).Bytes()
				return nil, nil
			},
		},
		Messages: map[call.Selector]Handler{
			selGet: func(env *Env, _ *scale.Decoder) ([]byte, error) {
				return env.Storage["value"], nil
			},
			selFlip: func(env *Env, _ *scale.Decoder) ([]byte, error) {
				v := env.Storage["value"][0] == 1
				env.Storage["value"] = scale.NewEncoder().PutBool(!v).Bytes()
				return nil, nil
			},
			selPanic: func(env *Env, _ *scale.Decoder) ([]byte, error) {
				env.Storage["value"] = []byte{0x07}
				return nil, errors.New("boom")
			},
			selDeny: func(*Env, *scale.Decoder) ([]byte, error) {
				return nil, types.LangError(42)
			},
			selCrash: func(env *Env, _ *scale.Decoder) ([]byte, error) {
				env.Storage["value"] = []byte{0x09}
				var m map[string]int
				m["x"]++
				return nil, nil
			},
		},
	}
}

func newFlipper(t *testing.T) (*MemoryRuntime, types.AccountID) {
	t.Helper()

	rt := NewMemoryRuntime(testAddress)
	require.NoError(t, rt.Register(flipper()))

	addr, out, err := rt.Instantiate(context.Background(), InstantiateRequest{
		Input: call.NewInput(selNew).PutBool(false).Bytes(),
	})
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, out)
	return rt, addr
}

func TestMemoryRuntime_InstantiateAndCall(t *testing.T) {
	rt, addr := newFlipper(t)
	assert.Equal(t, crypto.CreateAddress(testAddress, 0), addr)
	assert.Equal(t, "memory", rt.Name())

	ctx := context.Background()
	out, err := rt.Call(ctx, CallRequest{Target: addr, Input: call.NewInput(selFlip).Bytes()})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, out)

	out, err = rt.Call(ctx, CallRequest{Target: addr, Input: call.NewInput(selGet).Bytes()})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01}, out)
}

func TestMemoryRuntime_AddressesAdvance(t *testing.T) {
	rt, first := newFlipper(t)

	second, _, err := rt.Instantiate(context.Background(), InstantiateRequest{
		Input: call.NewInput(selNew).PutBool(true).Bytes(),
	})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, crypto.CreateAddress(testAddress, 1), second)
}

func TestMemoryRuntime_LangErrors(t *testing.T) {
	rt, addr := newFlipper(t)
	ctx := context.Background()

	couldNotRead := []byte{0x01, 0, 0, 0, 0, 0, 0, 0, 0}
	trapped := []byte{0x01, 1, 0, 0, 0, 0, 0, 0, 0}

	tests := []struct {
		name  string
		input []byte
		want  []byte
	}{
		{"short input", []byte{0x01, 0x02}, couldNotRead},
		{"unknown selector", []byte{0xff, 0xff, 0xff, 0xff}, couldNotRead},
		{"handler trap", call.NewInput(selPanic).Bytes(), trapped},
		{"handler panic", call.NewInput(selCrash).Bytes(), trapped},
		{"handler lang error", call.NewInput(selDeny).Bytes(), []byte{0x01, 42, 0, 0, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := rt.Call(ctx, CallRequest{Target: addr, Input: tt.input})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	// the trapped calls must not have touched storage
	v, ok := rt.Storage(addr, "value")
	require.True(t, ok)
	assert.Equal(t, []byte{0x00}, v)

	out, err := rt.Call(ctx, CallRequest{Target: addr, Input: call.NewInput(selFlip).Bytes()})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, out)
}

func TestMemoryRuntime_FailedConstructorDeploysNothing(t *testing.T) {
	rt := NewMemoryRuntime(testAddress)
	require.NoError(t, rt.Register(flipper()))

	addr, out, err := rt.Instantiate(context.Background(), InstantiateRequest{
		Input: call.NewInput(selNew).Bytes(),
	})
	require.NoError(t, err)
	assert.Equal(t, types.AccountID{}, addr)
	assert.Equal(t, []byte{0x01, 0, 0, 0, 0, 0, 0, 0, 0}, out)

	_, ok := rt.Balance(crypto.CreateAddress(testAddress, 0))
	assert.False(t, ok)
}

func TestMemoryRuntime_ValueAccumulates(t *testing.T) {
	rt, addr := newFlipper(t)

	_, err := rt.Call(context.Background(), CallRequest{Target: addr, Value: 10, Input: call.NewInput(selFlip).Bytes()})
	require.NoError(t, err)
	_, err = rt.Call(context.Background(), CallRequest{Target: addr, Value: 5, Input: call.NewInput(selDeny).Bytes()})
	require.NoError(t, err)

	bal, ok := rt.Balance(addr)
	require.True(t, ok)
	assert.Equal(t, uint64(10), bal)
}

func TestMemoryRuntime_UnknownTarget(t *testing.T) {
	rt, _ := newFlipper(t)

	out, err := rt.Call(context.Background(), CallRequest{Target: contractAddress, Input: call.NewInput(selGet).Bytes()})
	require.ErrorIs(t, err, ErrUnknownContract)
	assert.Nil(t, out)
}

func TestMemoryRuntime_SelectorConflict(t *testing.T) {
	rt := NewMemoryRuntime(testAddress)
	require.NoError(t, rt.Register(flipper()))

	err := rt.Register(flipper())
	require.ErrorIs(t, err, ErrSelectorConflict)
}

func TestMemoryRuntime_ClosedAndCancelled(t *testing.T) {
	rt, addr := newFlipper(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := rt.Call(ctx, CallRequest{Target: addr})
	require.ErrorIs(t, err, context.Canceled)

	rt.Close()
	_, err = rt.Call(context.Background(), CallRequest{Target: addr})
	require.ErrorIs(t, err, ErrRuntimeClosed)
}
