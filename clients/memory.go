package clients

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vitwit/inkcall/call"
	"github.com/vitwit/inkcall/scale"
	"github.com/vitwit/inkcall/types"
)

var _ Runtime = (*MemoryRuntime)(nil)

// Handler executes one message or constructor. args is positioned after the
// selector. The returned bytes are the SCALE encoding of the function's
// return value. Returning a types.LangError reports that code; any other
// error traps the call.
type Handler func(env *Env, args *scale.Decoder) ([]byte, error)

// Env is the execution environment seen by a handler.
type Env struct {
	Caller   types.AccountID
	Address  types.AccountID
	Value    types.Balance
	GasLimit uint64

	// Storage is the instance's key/value state. Changes made by a failing
	// handler are discarded.
	Storage map[string][]byte
}

// ContractDef is the code of a contract as seen by MemoryRuntime.
type ContractDef struct {
	Name         string
	Constructors map[call.Selector]Handler
	Messages     map[call.Selector]Handler
}

type instance struct {
	def     *ContractDef
	storage map[string][]byte
	balance uint64
}

// MemoryRuntime executes registered contracts in process. Calls are
// serialized; state lives only as long as the runtime.
type MemoryRuntime struct {
	mu        sync.Mutex
	caller    types.AccountID
	nonce     uint64
	defs      map[call.Selector]*ContractDef
	instances map[types.AccountID]*instance
	closed    bool
}

// NewMemoryRuntime returns an empty runtime that executes every call as
// caller.
func NewMemoryRuntime(caller types.AccountID) *MemoryRuntime {
	return &MemoryRuntime{
		caller:    caller,
		defs:      make(map[call.Selector]*ContractDef),
		instances: make(map[types.AccountID]*instance),
	}
}

// Register makes def instantiable through its constructor selectors.
func (m *MemoryRuntime) Register(def *ContractDef) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for sel := range def.Constructors {
		if other, ok := m.defs[sel]; ok && other != def {
			return fmt.Errorf("%w: %s used by %s and %s", ErrSelectorConflict, sel, other.Name, def.Name)
		}
	}
	for sel := range def.Constructors {
		m.defs[sel] = def
	}
	return nil
}

func (m *MemoryRuntime) Name() string { return "memory" }

func (m *MemoryRuntime) Caller() types.AccountID { return m.caller }

func (m *MemoryRuntime) Instantiate(ctx context.Context, req InstantiateRequest) (types.AccountID, []byte, error) {
	if err := ctx.Err(); err != nil {
		return types.AccountID{}, nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return types.AccountID{}, nil, ErrRuntimeClosed
	}

	sel, args, ok := call.SelectorOf(req.Input)
	if !ok {
		return types.AccountID{}, langErrOutput(types.LangErrorCouldNotReadInput), nil
	}
	def, ok := m.defs[sel]
	if !ok {
		return types.AccountID{}, langErrOutput(types.LangErrorCouldNotReadInput), nil
	}

	addr := crypto.CreateAddress(m.caller, m.nonce)
	m.nonce++

	inst := &instance{def: def, storage: make(map[string][]byte)}
	out, committed := m.execute(inst, def.Constructors[sel], addr, req.Value, req.GasLimit, args)
	if !committed {
		return types.AccountID{}, out, nil
	}
	m.instances[addr] = inst
	return addr, out, nil
}

func (m *MemoryRuntime) Call(ctx context.Context, req CallRequest) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrRuntimeClosed
	}

	inst, ok := m.instances[req.Target]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownContract, req.Target.Hex())
	}

	sel, args, ok := call.SelectorOf(req.Input)
	if !ok {
		return langErrOutput(types.LangErrorCouldNotReadInput), nil
	}
	h, ok := inst.def.Messages[sel]
	if !ok {
		return langErrOutput(types.LangErrorCouldNotReadInput), nil
	}

	out, _ := m.execute(inst, h, req.Target, req.Value, req.GasLimit, args)
	return out, nil
}

// execute runs h against a copy of the instance storage and commits the copy
// and the transferred value only if h succeeds.
func (m *MemoryRuntime) execute(inst *instance, h Handler, addr types.AccountID, value types.Balance, gas uint64, args []byte) ([]byte, bool) {
	env := &Env{
		Caller:   m.caller,
		Address:  addr,
		Value:    value,
		GasLimit: gas,
		Storage:  make(map[string][]byte, len(inst.storage)),
	}
	for k, v := range inst.storage {
		env.Storage[k] = v
	}

	payload, err := runHandler(h, env, args)
	if err != nil {
		var langErr types.LangError
		if errors.As(err, &langErr) {
			return langErrOutput(langErr), false
		}
		return langErrOutput(types.LangErrorTrapped), false
	}

	inst.storage = env.Storage
	inst.balance += uint64(value)
	return append([]byte{0x00}, payload...), true
}

// errHandlerPanicked reports a panicking handler, which is framed like any
// other trap.
var errHandlerPanicked = errors.New("handler panicked")

func runHandler(h Handler, env *Env, args []byte) (payload []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			payload, err = nil, fmt.Errorf("%w: %v", errHandlerPanicked, r)
		}
	}()
	return h(env, scale.NewDecoder(args))
}

// Balance returns the native value accumulated by the instance at addr.
func (m *MemoryRuntime) Balance(addr types.AccountID) (uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.instances[addr]
	if !ok {
		return 0, false
	}
	return inst.balance, true
}

// Storage returns a copy of the value stored under key by the instance at
// addr.
func (m *MemoryRuntime) Storage(addr types.AccountID, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.instances[addr]
	if !ok {
		return nil, false
	}
	v, ok := inst.storage[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

func (m *MemoryRuntime) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

func langErrOutput(code types.LangError) []byte {
	return scale.NewEncoder().PutUint8(0x01).PutUint64(uint64(code)).Bytes()
}
