package types

// RuntimeKind selects the execution runtime behind the dispatcher.
type RuntimeKind string

const (
	// RuntimeMemory executes registered contracts in process.
	RuntimeMemory RuntimeKind = "memory"

	// RuntimeEVM simulates calls with eth_call against an RPC endpoint.
	RuntimeEVM RuntimeKind = "evm"
)

func (k RuntimeKind) IsSupported() bool {
	return k == RuntimeMemory || k == RuntimeEVM
}

func (k RuntimeKind) String() string {
	return string(k)
}
