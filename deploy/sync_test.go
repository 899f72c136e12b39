package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testParking struct {
	reporter util.Uint160
	fee      int64
	err      error

	calls []string
}

func (x *testParking) Reporter() (util.Uint160, error) { return x.reporter, x.err }
func (x *testParking) FeePercent() (int64, error)      { return x.fee, x.err }

func (x *testParking) SetReporter(reporter util.Uint160) (util.Uint256, uint32, error) {
	x.calls = append(x.calls, "setReporter")
	x.reporter = reporter
	return util.Uint256{}, 0, nil
}

func (x *testParking) SetFeePercent(percent int64) (util.Uint256, uint32, error) {
	x.calls = append(x.calls, "setFeePercent")
	x.fee = percent
	return util.Uint256{}, 0, nil
}

func passWait(_ util.Uint256, _ uint32, err error) error { return err }

func TestSyncParkingSettings(t *testing.T) {
	reporter := util.Uint160{9}

	newPrm := func(p *testParking) syncParkingSettingsPrm {
		return syncParkingSettingsPrm{
			logger:     zaptest.NewLogger(t),
			reader:     p,
			writer:     p,
			wait:       passWait,
			reporter:   reporter,
			feePercent: 5,
		}
	}

	t.Run("in sync", func(t *testing.T) {
		p := &testParking{reporter: reporter, fee: 5}

		require.NoError(t, syncParkingSettings(context.Background(), newPrm(p)))
		require.Empty(t, p.calls)
	})

	t.Run("both differ", func(t *testing.T) {
		p := &testParking{reporter: util.Uint160{1}, fee: 0}

		require.NoError(t, syncParkingSettings(context.Background(), newPrm(p)))
		require.Equal(t, []string{"setReporter", "setFeePercent"}, p.calls)
		require.Equal(t, reporter, p.reporter)
		require.EqualValues(t, 5, p.fee)

		p.calls = nil
		require.NoError(t, syncParkingSettings(context.Background(), newPrm(p)))
		require.Empty(t, p.calls)
	})

	t.Run("fee only", func(t *testing.T) {
		p := &testParking{reporter: reporter, fee: 20}

		require.NoError(t, syncParkingSettings(context.Background(), newPrm(p)))
		require.Equal(t, []string{"setFeePercent"}, p.calls)
	})

	t.Run("read failure", func(t *testing.T) {
		p := &testParking{err: errors.New("any error")}

		err := syncParkingSettings(context.Background(), newPrm(p))
		require.ErrorIs(t, err, p.err)
		require.Empty(t, p.calls)
	})

	t.Run("transaction fault", func(t *testing.T) {
		p := &testParking{}

		prm := newPrm(p)
		prm.wait = func(util.Uint256, uint32, error) error { return ErrTxFault }

		err := syncParkingSettings(context.Background(), prm)
		require.ErrorIs(t, err, ErrTxFault)
		require.Equal(t, []string{"setReporter"}, p.calls)
	})
}

type testOracle struct {
	active []util.Uint160
	err    error

	added   []OracleNode
	removed []util.Uint160
}

func (x *testOracle) IsActiveNode(address util.Uint160) (bool, error) {
	if x.err != nil {
		return false, x.err
	}

	for i := range x.active {
		if x.active[i].Equals(address) {
			return true, nil
		}
	}

	return false, nil
}

func (x *testOracle) ActiveNodes() ([]util.Uint160, error) {
	return append([]util.Uint160(nil), x.active...), x.err
}

func (x *testOracle) AddNode(address util.Uint160, label string) (util.Uint256, uint32, error) {
	x.added = append(x.added, OracleNode{Address: address, Label: label})
	x.active = append(x.active, address)
	return util.Uint256{}, 0, nil
}

func (x *testOracle) RemoveNode(address util.Uint160) (util.Uint256, uint32, error) {
	x.removed = append(x.removed, address)

	for i := range x.active {
		if x.active[i].Equals(address) {
			x.active = append(x.active[:i], x.active[i+1:]...)
			break
		}
	}

	return util.Uint256{}, 0, nil
}

func TestSyncOracleNodes(t *testing.T) {
	var (
		n1 = OracleNode{Address: util.Uint160{1}, Label: "gate-1"}
		n2 = OracleNode{Address: util.Uint160{2}, Label: "gate-2"}
		n3 = util.Uint160{3}
	)

	newPrm := func(o *testOracle, nodes ...OracleNode) syncOracleNodesPrm {
		return syncOracleNodesPrm{
			logger: zaptest.NewLogger(t),
			reader: o,
			writer: o,
			wait:   passWait,
			nodes:  nodes,
		}
	}

	t.Run("fresh", func(t *testing.T) {
		o := &testOracle{}

		require.NoError(t, syncOracleNodes(context.Background(), newPrm(o, n1, n2)))
		require.Equal(t, []OracleNode{n1, n2}, o.added)
		require.Empty(t, o.removed)

		o.added = nil
		require.NoError(t, syncOracleNodes(context.Background(), newPrm(o, n1, n2)))
		require.Empty(t, o.added)
	})

	t.Run("partially active", func(t *testing.T) {
		o := &testOracle{active: []util.Uint160{n2.Address}}

		require.NoError(t, syncOracleNodes(context.Background(), newPrm(o, n1, n2)))
		require.Equal(t, []OracleNode{n1}, o.added)
	})

	t.Run("unlisted kept", func(t *testing.T) {
		o := &testOracle{active: []util.Uint160{n3}}

		require.NoError(t, syncOracleNodes(context.Background(), newPrm(o, n1)))
		require.Equal(t, []OracleNode{n1}, o.added)
		require.Empty(t, o.removed)
		require.ElementsMatch(t, []util.Uint160{n1.Address, n3}, o.active)
	})

	t.Run("unlisted removed", func(t *testing.T) {
		o := &testOracle{active: []util.Uint160{n3, n1.Address}}

		prm := newPrm(o, n1)
		prm.removeUnlisted = true

		require.NoError(t, syncOracleNodes(context.Background(), prm))
		require.Empty(t, o.added)
		require.Equal(t, []util.Uint160{n3}, o.removed)
		require.Equal(t, []util.Uint160{n1.Address}, o.active)
	})

	t.Run("read failure", func(t *testing.T) {
		o := &testOracle{err: errors.New("any error")}

		err := syncOracleNodes(context.Background(), newPrm(o, n1))
		require.ErrorIs(t, err, o.err)
		require.Empty(t, o.added)
	})

	t.Run("cancelled", func(t *testing.T) {
		o := &testOracle{}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := syncOracleNodes(ctx, newPrm(o, n1))
		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, o.added)
	})
}
