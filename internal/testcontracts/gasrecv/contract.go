// Package gasrecv is a GAS receiver used in parking tests. When a target is
// set, every incoming payment calls back into the target's
// withdrawPlatformEarnings.
package gasrecv

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	targetKey   = "target"
	receivedKey = "received"
)

func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	if !runtime.GetCallingScriptHash().Equals(gas.Hash) {
		panic("only GAS")
	}

	ctx := storage.GetContext()

	received := storage.Get(ctx, receivedKey)
	if received == nil {
		received = 0
	}
	storage.Put(ctx, receivedKey, received.(int)+amount)

	target := storage.Get(ctx, targetKey)
	if target == nil {
		return
	}

	contract.Call(target.(interop.Hash160), "withdrawPlatformEarnings", contract.All,
		runtime.GetExecutingScriptHash())
}

// SetTarget makes the next payments reenter the given contract.
func SetTarget(target interop.Hash160) {
	storage.Put(storage.GetContext(), targetKey, target)
}

// Received returns the total amount of GAS received.
func Received() int {
	val := storage.Get(storage.GetReadOnlyContext(), receivedKey)
	if val == nil {
		return 0
	}
	return val.(int)
}

func Verify() bool {
	return true
}
