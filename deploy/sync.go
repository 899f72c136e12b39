package deploy

import (
	"context"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"go.uber.org/zap"
)

type parkingSettingsReader interface {
	Reporter() (util.Uint160, error)
	FeePercent() (int64, error)
}

type parkingSettingsWriter interface {
	SetReporter(reporter util.Uint160) (util.Uint256, uint32, error)
	SetFeePercent(percent int64) (util.Uint256, uint32, error)
}

type syncParkingSettingsPrm struct {
	logger *zap.Logger
	reader parkingSettingsReader
	writer parkingSettingsWriter
	wait   waitFunc

	reporter   util.Uint160
	feePercent int64
}

func syncParkingSettings(ctx context.Context, prm syncParkingSettingsPrm) error {
	reporter, err := prm.reader.Reporter()
	if err != nil {
		return fmt.Errorf("get reporter: %w", err)
	}

	if !reporter.Equals(prm.reporter) {
		if err = ctx.Err(); err != nil {
			return err
		}

		prm.logger.Info("changing reporter...",
			zap.Stringer("current", reporter), zap.Stringer("new", prm.reporter))

		err = prm.wait(prm.writer.SetReporter(prm.reporter))
		if err != nil {
			return fmt.Errorf("set reporter: %w", err)
		}
	}

	fee, err := prm.reader.FeePercent()
	if err != nil {
		return fmt.Errorf("get fee percent: %w", err)
	}

	if fee != prm.feePercent {
		if err = ctx.Err(); err != nil {
			return err
		}

		prm.logger.Info("changing fee percent...",
			zap.Int64("current", fee), zap.Int64("new", prm.feePercent))

		err = prm.wait(prm.writer.SetFeePercent(prm.feePercent))
		if err != nil {
			return fmt.Errorf("set fee percent: %w", err)
		}
	}

	return nil
}

type oracleNodesReader interface {
	IsActiveNode(address util.Uint160) (bool, error)
	ActiveNodes() ([]util.Uint160, error)
}

type oracleNodesWriter interface {
	AddNode(address util.Uint160, label string) (util.Uint256, uint32, error)
	RemoveNode(address util.Uint160) (util.Uint256, uint32, error)
}

type syncOracleNodesPrm struct {
	logger *zap.Logger
	reader oracleNodesReader
	writer oracleNodesWriter
	wait   waitFunc

	nodes          []OracleNode
	removeUnlisted bool
}

// syncOracleNodes activates every listed node which is not active yet.
// Inactive registered nodes are re-added, so they start over with the
// initial reputation.
func syncOracleNodes(ctx context.Context, prm syncOracleNodesPrm) error {
	listed := make(map[util.Uint160]struct{}, len(prm.nodes))

	for i := range prm.nodes {
		n := prm.nodes[i]
		listed[n.Address] = struct{}{}

		active, err := prm.reader.IsActiveNode(n.Address)
		if err != nil {
			return fmt.Errorf("check node %s: %w", n.Address.StringLE(), err)
		}

		if active {
			prm.logger.Debug("oracle node is already active", zap.Stringer("node", n.Address))
			continue
		}

		if err = ctx.Err(); err != nil {
			return err
		}

		prm.logger.Info("adding oracle node...", zap.Stringer("node", n.Address), zap.String("label", n.Label))

		err = prm.wait(prm.writer.AddNode(n.Address, n.Label))
		if err != nil {
			return fmt.Errorf("add node %s: %w", n.Address.StringLE(), err)
		}
	}

	active, err := prm.reader.ActiveNodes()
	if err != nil {
		return fmt.Errorf("get active nodes: %w", err)
	}

	for _, a := range active {
		if _, ok := listed[a]; ok {
			continue
		}

		if !prm.removeUnlisted {
			prm.logger.Info("active oracle node is not listed in the configuration", zap.Stringer("node", a))
			continue
		}

		if err = ctx.Err(); err != nil {
			return err
		}

		prm.logger.Info("removing unlisted oracle node...", zap.Stringer("node", a))

		err = prm.wait(prm.writer.RemoveNode(a))
		if err != nil {
			return fmt.Errorf("remove node %s: %w", a.StringLE(), err)
		}
	}

	return nil
}
