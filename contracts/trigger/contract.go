package trigger

import (
	"fmt"

	"github.com/vitwit/inkcall/call"
	"github.com/vitwit/inkcall/clients"
	"github.com/vitwit/inkcall/scale"
	"github.com/vitwit/inkcall/types"
)

// InitialSupply is credited to the deployer by the constructor.
const InitialSupply types.Balance = 1_000_000

// Storage keys used by the contract logic.
const (
	KeyTriggerValue = "trigger_value"
	KeyMessage      = "message"
	KeyReceived     = "received"
)

func balanceKey(id types.AccountID) string {
	return "balance:" + id.Hex()
}

type triggerArgs struct {
	NativeValue  types.Balance
	TriggerValue bool
	Msg          string
}

type transferArgs struct {
	From   types.AccountID
	To     types.AccountID
	Amount types.Balance
}

// Contract returns the trigger contract's logic for the in-memory runtime.
func Contract() *clients.ContractDef {
	return &clients.ContractDef{
		Name: "trigger",
		Constructors: map[call.Selector]clients.Handler{
			SelectorWithTriggerValue: withTriggerValue,
		},
		Messages: map[call.Selector]clients.Handler{
			SelectorTrigger:  trigger,
			SelectorTransfer: transfer,
		},
	}
}

// Register makes the trigger contract instantiable on rt.
func Register(rt *clients.MemoryRuntime) error {
	return rt.Register(Contract())
}

func withTriggerValue(env *clients.Env, args *scale.Decoder) ([]byte, error) {
	v, err := args.ReadBool()
	if err != nil {
		return nil, types.LangErrorCouldNotReadInput
	}

	env.Storage[KeyTriggerValue] = scale.NewEncoder().PutBool(v).Bytes()
	env.Storage[balanceKey(env.Caller)] = scale.NewEncoder().PutUint32(uint32(InitialSupply)).Bytes()
	return nil, nil
}

func trigger(env *clients.Env, args *scale.Decoder) ([]byte, error) {
	var a triggerArgs
	if err := args.Decode(&a); err != nil {
		return nil, types.LangErrorCouldNotReadInput
	}

	received, err := readUint64(env.Storage, KeyReceived)
	if err != nil {
		return nil, err
	}

	env.Storage[KeyTriggerValue] = scale.NewEncoder().PutBool(a.TriggerValue).Bytes()
	env.Storage[KeyMessage] = scale.NewEncoder().PutString(a.Msg).Bytes()
	env.Storage[KeyReceived] = scale.NewEncoder().PutUint64(received + uint64(env.Value)).Bytes()
	return nil, nil
}

func transfer(env *clients.Env, args *scale.Decoder) ([]byte, error) {
	var a transferArgs
	if err := args.Decode(&a); err != nil {
		return nil, types.LangErrorCouldNotReadInput
	}

	from, err := decodeBalance(env.Storage[balanceKey(a.From)])
	if err != nil {
		return nil, err
	}
	if from < a.Amount {
		return scale.Marshal(scale.Err[scale.Unit](scale.Unit{}))
	}
	if a.From == a.To {
		return scale.Marshal(scale.Ok[scale.Unit, scale.Unit](scale.Unit{}))
	}
	to, err := decodeBalance(env.Storage[balanceKey(a.To)])
	if err != nil {
		return nil, err
	}

	env.Storage[balanceKey(a.From)] = scale.NewEncoder().PutUint32(uint32(from - a.Amount)).Bytes()
	env.Storage[balanceKey(a.To)] = scale.NewEncoder().PutUint32(uint32(to + a.Amount)).Bytes()
	return scale.Marshal(scale.Ok[scale.Unit, scale.Unit](scale.Unit{}))
}

// BalanceOf reads the balance of id held by the trigger instance at contract.
func BalanceOf(rt *clients.MemoryRuntime, contract, id types.AccountID) (types.Balance, error) {
	raw, _ := rt.Storage(contract, balanceKey(id))
	return decodeBalance(raw)
}

// decodeBalance treats missing storage as a zero balance.
func decodeBalance(raw []byte) (types.Balance, error) {
	if raw == nil {
		return 0, nil
	}
	var b types.Balance
	if _, err := scale.Unmarshal(raw, &b); err != nil {
		return 0, fmt.Errorf("stored balance: %w", err)
	}
	return b, nil
}

func readUint64(storage map[string][]byte, key string) (uint64, error) {
	raw, ok := storage[key]
	if !ok {
		return 0, nil
	}
	return scale.NewDecoder(raw).ReadUint64()
}
