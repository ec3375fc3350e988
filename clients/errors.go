package clients

import "errors"

var (
	// ErrUnknownContract is returned for calls to an address that holds no
	// instance.
	ErrUnknownContract = errors.New("unknown contract")

	// ErrSelectorConflict is returned when registering a contract whose
	// constructor selector is already taken by another registered contract.
	ErrSelectorConflict = errors.New("constructor selector already registered")

	ErrRuntimeClosed = errors.New("runtime closed")
)
