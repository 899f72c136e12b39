package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// PullGAS transfers amount of GAS from the given account to the executing
// contract. The account must witness the transaction.
func PullGAS(from interop.Hash160, amount int) {
	if amount == 0 {
		return
	}

	if !gas.Transfer(from, runtime.GetExecutingScriptHash(), amount, nil) {
		panic(ErrTransferFailed)
	}
}

// SendGAS transfers amount of GAS from the executing contract to the given
// account. Zero amounts are skipped.
func SendGAS(to interop.Hash160, amount int) {
	if amount == 0 {
		return
	}

	if !gas.Transfer(runtime.GetExecutingScriptHash(), to, amount, nil) {
		panic(ErrTransferFailed)
	}
}

// IsGASCaller reports whether the calling script is the native GAS contract.
func IsGASCaller() bool {
	caller := runtime.GetCallingScriptHash()
	return caller.Equals(gas.Hash)
}
