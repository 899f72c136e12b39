// Package chaintest provides helpers for contract tests running on a
// single-node in-memory chain.
package chaintest

import (
	"bytes"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

// SysFee is the system fee of transactions sent by InvokeAt. The fee can't be
// estimated in advance since the result depends on the block time.
const SysFee = 3_0000_0000

// ContractDir returns the source directory of the named contract.
func ContractDir(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "contracts", name)
}

// TestContractDir returns the source directory of the named test contract.
func TestContractDir(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "testcontracts", name)
}

// NewExecutor creates an executor over a fresh single-node chain where the
// validator is the committee.
func NewExecutor(t testing.TB) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// CompileContract compiles the named contract from its source directory.
func CompileContract(t testing.TB, sender util.Uint160, name string) *neotest.Contract {
	dir := ContractDir(name)
	return neotest.CompileFile(t, sender, dir, filepath.Join(dir, "config.yml"))
}

// DeployParking deploys Parking contract owned by the committee.
func DeployParking(t testing.TB, e *neotest.Executor, reporter util.Uint160, feePercent int64) util.Uint160 {
	c := CompileContract(t, e.CommitteeHash, "parking")
	e.DeployContract(t, c, []any{e.CommitteeHash, reporter, feePercent})
	return c.Hash
}

// DeployOracle deploys Oracle contract owned by the committee.
func DeployOracle(t testing.TB, e *neotest.Executor) util.Uint160 {
	c := CompileContract(t, e.CommitteeHash, "oracle")
	e.DeployContract(t, c, []any{e.CommitteeHash})
	return c.Hash
}

// DeployGASReceiver deploys the GAS receiving test contract.
func DeployGASReceiver(t testing.TB, e *neotest.Executor) util.Uint160 {
	dir := TestContractDir("gasrecv")
	c := neotest.CompileFile(t, e.CommitteeHash, dir, filepath.Join(dir, "config.yml"))
	e.DeployContract(t, c, nil)
	return c.Hash
}

// Now returns the time of the last block in seconds.
func Now(t testing.TB, e *neotest.Executor) int64 {
	return int64(e.TopBlock(t).Timestamp / 1000)
}

// InvokeAt sends the invocation in a new block with the given timestamp in
// seconds and returns the transaction hash. The result is not checked, use
// CheckHalt or CheckFault.
func InvokeAt(t testing.TB, c *neotest.ContractInvoker, at int64, method string, args ...any) util.Uint256 {
	ts := uint64(at) * 1000
	require.Greater(t, ts, c.TopBlock(t).Timestamp, "block time must grow")

	tx := c.PrepareInvokeNoSign(t, method, args...)
	c.SignTx(t, tx, SysFee, c.Signers...)

	b := c.NewUnsignedBlock(t, tx)
	b.Timestamp = ts
	require.NoError(t, c.Chain.AddBlock(c.SignBlock(b)))

	return tx.Hash()
}

// AdvanceTo adds an empty block with the given timestamp in seconds.
func AdvanceTo(t testing.TB, e *neotest.Executor, at int64) {
	ts := uint64(at) * 1000
	require.Greater(t, ts, e.TopBlock(t).Timestamp, "block time must grow")

	b := e.NewUnsignedBlock(t)
	b.Timestamp = ts
	require.NoError(t, e.Chain.AddBlock(e.SignBlock(b)))
}

// Call runs the method in test mode and returns its result.
func Call(t testing.TB, c *neotest.ContractInvoker, method string, args ...any) stackitem.Item {
	s, err := c.TestInvoke(t, method, args...)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	return s.Pop().Item()
}

// IteratorItems pops the iterator from the stack and returns all its values.
func IteratorItems(t testing.TB, s *vm.Stack) []stackitem.Item {
	iter, ok := s.Pop().Value().(*storage.Iterator)
	require.True(t, ok)

	items := make([]stackitem.Item, 0)
	for iter.Next() {
		items = append(items, iter.Value())
	}

	return items
}

// GASBalance returns GAS balance of the account.
func GASBalance(e *neotest.Executor, h util.Uint160) int64 {
	return e.Chain.GetUtilityTokenBalance(h).Int64()
}

// GASTransfers sums GAS transferred from the given account within the
// execution, per recipient. Mints and burns are skipped.
func GASTransfers(t testing.TB, e *neotest.Executor, aer *state.AppExecResult, from util.Uint160) map[util.Uint160]int64 {
	gasHash := e.NativeHash(t, nativenames.Gas)
	res := make(map[util.Uint160]int64)

	for _, ev := range aer.Events {
		if !ev.ScriptHash.Equals(gasHash) || ev.Name != "Transfer" {
			continue
		}

		arr := ev.Item.Value().([]stackitem.Item)
		if arr[0].Type() == stackitem.AnyT || arr[1].Type() == stackitem.AnyT {
			continue
		}

		src, err := arr[0].TryBytes()
		require.NoError(t, err)
		if !bytes.Equal(src, from.BytesBE()) {
			continue
		}

		dst, err := arr[1].TryBytes()
		require.NoError(t, err)
		to, err := util.Uint160DecodeBytesBE(dst)
		require.NoError(t, err)

		amount, err := arr[2].TryInteger()
		require.NoError(t, err)

		res[to] += amount.Int64()
	}

	return res
}

// Notifications returns notifications with the given name.
func Notifications(aer *state.AppExecResult, name string) []state.NotificationEvent {
	var res []state.NotificationEvent
	for _, ev := range aer.Events {
		if ev.Name == name {
			res = append(res, ev)
		}
	}

	return res
}

// ApplicationLog wraps the transaction execution result in the form returned
// by RPC servers.
func ApplicationLog(aer *state.AppExecResult) *result.ApplicationLog {
	return &result.ApplicationLog{
		Container:     aer.Container,
		IsTransaction: true,
		Executions:    []state.Execution{aer.Execution},
	}
}
