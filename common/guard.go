package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// guardKey marks an operation which is moving GAS. No contract of this
// repository uses 0xff as a key prefix.
const guardKey = "\xffguard"

// EnterGuard marks the beginning of an operation that sends value. It panics
// with ErrReentrantCall if another such operation is still in progress within
// the same invocation, e.g. when a refund recipient calls back into the
// contract from its onNEP17Payment.
func EnterGuard(ctx storage.Context) {
	if storage.Get(ctx, guardKey) != nil {
		panic(ErrReentrantCall)
	}

	storage.Put(ctx, guardKey, 1)
}

// ExitGuard releases the guard taken by EnterGuard.
func ExitGuard(ctx storage.Context) {
	storage.Delete(ctx, guardKey)
}

// GuardHeld reports whether a value-moving operation is in progress.
func GuardHeld(ctx storage.Context) bool {
	return storage.Get(ctx, guardKey) != nil
}

// Now returns the persisting block time in seconds.
func Now() int {
	return runtime.GetTime() / 1000
}
