package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/rpc/oracle"
	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/rpc/parking"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// ErrTxFault is returned when a deployment transaction is accepted by the
// chain but its execution ends with FAULT.
var ErrTxFault = errors.New("transaction faulted")

// ErrNotCommittee is returned when the contract must be updated but the
// deployer account is not the committee multi-signature account. Contract
// updates are accepted from the committee only.
var ErrNotCommittee = errors.New("deployer is not the committee account")

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)

	// GetApplicationLog returns execution results of the transaction. It is used
	// to wait for sent transactions.
	GetApplicationLog(util.Uint256, *trigger.Type) (*result.ApplicationLog, error)

	// GetCommittee returns list of public keys owned by Neo blockchain committee
	// members. It is used to check update access.
	GetCommittee() (keys.PublicKeys, error)
}

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// ParkingContractPrm groups deployment parameters of the Parking contract.
type ParkingContractPrm struct {
	Common     CommonDeployPrm
	Owner      util.Uint160
	Reporter   util.Uint160
	FeePercent int64
}

// OracleNode is an oracle node to be registered in the Oracle contract.
type OracleNode struct {
	Address util.Uint160
	Label   string
}

// OracleContractPrm groups deployment parameters of the Oracle contract.
type OracleContractPrm struct {
	Common CommonDeployPrm
	Owner  util.Uint160
	Nodes  []OracleNode

	// Deactivate on-chain nodes missing in Nodes.
	RemoveUnlisted bool
}

// Prm groups all parameters of the deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy contracts to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	LocalAccount *wallet.Account

	// Update on-chain contracts which differ from the local ones. Updates
	// are allowed to the committee only, so LocalAccount must be the
	// committee multi-signature account then.
	AllowUpdate bool

	ParkingContract ParkingContractPrm
	OracleContract  OracleContractPrm
}

// Result contains addresses of the deployed contracts.
type Result struct {
	Parking util.Uint160
	Oracle  util.Uint160
}

// Deploy makes the chain state match the given Prm: it deploys missing
// contracts, updates outdated ones (if allowed), applies Parking settings and
// registers oracle nodes. Deploy is idempotent: steps already reflected on
// the chain are skipped, so it is safe to run it again after a failure.
//
// Summary of stages:
//  1. deployment/update of the Oracle contract
//  2. deployment/update of the Parking contract
//  3. synchronization of the Parking reporter and fee
//  4. synchronization of the oracle node set
//
// Settings and nodes are synchronized only if the local account owns the
// corresponding contract.
func Deploy(ctx context.Context, prm Prm) (Result, error) {
	var res Result

	act, err := newActor(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return res, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	w := txWaiter{actor: act}
	deployer := prm.LocalAccount.ScriptHash()
	mgmt := management.New(act)

	syncPrm := syncContractPrm{
		logger:      prm.Logger,
		deployer:    deployer,
		allowUpdate: prm.AllowUpdate,
		getState:    prm.Blockchain.GetContractStateByHash,
		committee: func() (util.Uint160, error) {
			return committeeAddress(prm.Blockchain.GetCommittee)
		},
		deploy:      mgmt.Deploy,
		wait:        w.wait,
	}

	// 1. Oracle
	syncPrm.name = "Oracle"
	syncPrm.common = prm.OracleContract.Common
	syncPrm.deployArgs = []any{prm.OracleContract.Owner}
	syncPrm.update = func(h util.Uint160, script, manifest []byte) (util.Uint256, uint32, error) {
		return oracle.New(act, h).Update(script, manifest, nil)
	}

	prm.Logger.Info("synchronizing Oracle contract with the chain...")

	res.Oracle, err = syncContract(ctx, syncPrm)
	if err != nil {
		return res, fmt.Errorf("sync Oracle contract with the chain: %w", err)
	}

	prm.Logger.Info("Oracle contract successfully synchronized", zap.Stringer("address", res.Oracle))

	// 2. Parking
	syncPrm.name = "Parking"
	syncPrm.common = prm.ParkingContract.Common
	syncPrm.deployArgs = []any{
		prm.ParkingContract.Owner,
		prm.ParkingContract.Reporter,
		prm.ParkingContract.FeePercent,
	}
	syncPrm.update = func(h util.Uint160, script, manifest []byte) (util.Uint256, uint32, error) {
		return parking.New(act, h).Update(script, manifest, nil)
	}

	prm.Logger.Info("synchronizing Parking contract with the chain...")

	res.Parking, err = syncContract(ctx, syncPrm)
	if err != nil {
		return res, fmt.Errorf("sync Parking contract with the chain: %w", err)
	}

	prm.Logger.Info("Parking contract successfully synchronized", zap.Stringer("address", res.Parking))

	// 3. Parking settings
	parkingContract := parking.New(act, res.Parking)

	owner, err := parkingContract.Owner()
	if err != nil {
		return res, fmt.Errorf("get Parking contract owner: %w", err)
	}

	if owner.Equals(deployer) {
		prm.Logger.Info("synchronizing Parking settings...")

		err = syncParkingSettings(ctx, syncParkingSettingsPrm{
			logger:     prm.Logger,
			reader:     &parkingContract.ContractReader,
			writer:     parkingContract,
			wait:       w.wait,
			reporter:   prm.ParkingContract.Reporter,
			feePercent: prm.ParkingContract.FeePercent,
		})
		if err != nil {
			return res, fmt.Errorf("sync Parking settings: %w", err)
		}

		prm.Logger.Info("Parking settings successfully synchronized")
	} else {
		prm.Logger.Warn("local account does not own Parking contract, settings are left intact",
			zap.Stringer("owner", owner))
	}

	// 4. Oracle nodes
	oracleContract := oracle.New(act, res.Oracle)

	owner, err = oracleContract.Owner()
	if err != nil {
		return res, fmt.Errorf("get Oracle contract owner: %w", err)
	}

	if !owner.Equals(deployer) {
		prm.Logger.Warn("local account does not own Oracle contract, nodes are left intact",
			zap.Stringer("owner", owner))
		return res, nil
	}

	prm.Logger.Info("synchronizing oracle nodes...", zap.Int("count", len(prm.OracleContract.Nodes)))

	err = syncOracleNodes(ctx, syncOracleNodesPrm{
		logger:         prm.Logger,
		reader:         &oracleContract.ContractReader,
		writer:         oracleContract,
		wait:           w.wait,
		nodes:          prm.OracleContract.Nodes,
		removeUnlisted: prm.OracleContract.RemoveUnlisted,
	})
	if err != nil {
		return res, fmt.Errorf("sync oracle nodes: %w", err)
	}

	prm.Logger.Info("oracle nodes successfully synchronized")

	return res, nil
}

// ContractAddress returns the address the contract gets when deployed by the
// given sender.
func ContractAddress(sender util.Uint160, c CommonDeployPrm) util.Uint160 {
	return state.CreateContractHash(sender, c.NEF.Checksum, c.Manifest.Name)
}

func newActor(b Blockchain, acc *wallet.Account) (*actor.Actor, error) {
	return actor.NewTuned(b, []actor.SignerAccount{{
		Signer: transaction.Signer{
			Account: acc.ScriptHash(),
			Scopes:  transaction.CalledByEntry,
		},
		Account: acc,
	}}, actor.Options{
		CheckerModifier: bucketedTransactionModifier(b.GetBlockCount),
	})
}

// returns actor.TransactionCheckerModifier which checks that invocation
// finished with 'HALT' state and, if so, sets transaction's nonce and
// ValidUntilBlock to 100*N and 100*(N+1) correspondingly, where
// 100*N <= current height < 100*(N+1). Repeated runs of the same deployment
// step produce the same transaction within the span.
func bucketedTransactionModifier(getBlockchainHeight func() (uint32, error)) actor.TransactionCheckerModifier {
	return func(r *result.Invoke, tx *transaction.Transaction) error {
		err := actor.DefaultCheckerModifier(r, tx)
		if err != nil {
			return err
		}

		curHeight, err := getBlockchainHeight()
		if err != nil {
			return fmt.Errorf("get blockchain height: %w", err)
		}

		const span = 100
		n := curHeight / span

		tx.Nonce = n * span

		if math.MaxUint32-span > tx.Nonce {
			tx.ValidUntilBlock = tx.Nonce + span
		} else {
			tx.ValidUntilBlock = math.MaxUint32
		}

		return nil
	}
}

// waitFunc accepts results of the transaction sending method and waits for
// the transaction to be successfully executed.
type waitFunc func(h util.Uint256, vub uint32, err error) error

type txWaiter struct {
	actor *actor.Actor
}

func (x txWaiter) wait(h util.Uint256, vub uint32, err error) error {
	if err != nil {
		return fmt.Errorf("send transaction: %w", err)
	}

	aer, err := x.actor.Wait(h, vub, nil)
	if err != nil {
		return fmt.Errorf("wait for transaction %s: %w", h.StringLE(), err)
	}

	if aer.VMState != vmstate.Halt {
		return fmt.Errorf("%w: transaction %s: %s", ErrTxFault, h.StringLE(), aer.FaultException)
	}

	return nil
}

type syncContractPrm struct {
	logger *zap.Logger

	name        string
	deployer    util.Uint160
	common      CommonDeployPrm
	deployArgs  []any
	allowUpdate bool

	getState  func(util.Uint160) (*state.Contract, error)
	committee func() (util.Uint160, error)
	deploy    func(*nef.File, *manifest.Manifest, any) (util.Uint256, uint32, error)
	update    func(h util.Uint160, script, manifest []byte) (util.Uint256, uint32, error)
	wait      waitFunc
}

// syncContract deploys the contract if it is missing on the chain and updates
// it if on-chain executable or manifest differ from the local ones. Returns
// the contract address.
func syncContract(ctx context.Context, prm syncContractPrm) (util.Uint160, error) {
	addr := ContractAddress(prm.deployer, prm.common)
	l := prm.logger.With(zap.String("contract", prm.name), zap.Stringer("address", addr))

	if err := ctx.Err(); err != nil {
		return addr, err
	}

	st, err := prm.getState(addr)
	if err != nil {
		if !isErrContractNotFound(err) {
			return addr, fmt.Errorf("get contract state: %w", err)
		}

		l.Info("contract is missing on the chain, deploying...")

		err = prm.wait(prm.deploy(&prm.common.NEF, &prm.common.Manifest, prm.deployArgs))
		if err != nil {
			return addr, fmt.Errorf("deploy contract: %w", err)
		}

		l.Info("contract successfully deployed")

		return addr, nil
	}

	upToDate, err := isUpToDate(st, prm.common)
	if err != nil {
		return addr, err
	}

	if upToDate {
		l.Debug("on-chain contract matches the local one")
		return addr, nil
	}

	if !prm.allowUpdate {
		l.Warn("on-chain contract differs from the local one, updates are disabled")
		return addr, nil
	}

	committee, err := prm.committee()
	if err != nil {
		return addr, fmt.Errorf("get committee address: %w", err)
	}

	if !prm.deployer.Equals(committee) {
		return addr, fmt.Errorf("update contract: %w: deployer %s, committee %s", ErrNotCommittee,
			address.Uint160ToString(prm.deployer), address.Uint160ToString(committee))
	}

	script, err := prm.common.NEF.Bytes()
	if err != nil {
		return addr, fmt.Errorf("encode NEF: %w", err)
	}

	jManifest, err := json.Marshal(prm.common.Manifest)
	if err != nil {
		return addr, fmt.Errorf("encode manifest: %w", err)
	}

	l.Info("on-chain contract differs from the local one, updating...")

	err = prm.wait(prm.update(addr, script, jManifest))
	if err != nil {
		return addr, fmt.Errorf("update contract: %w", err)
	}

	l.Info("contract successfully updated")

	return addr, nil
}

// committeeAddress returns the majority multi-signature address of the Neo
// committee, the same one the contracts check in update.
func committeeAddress(getCommittee func() (keys.PublicKeys, error)) (util.Uint160, error) {
	committee, err := getCommittee()
	if err != nil {
		return util.Uint160{}, err
	}

	script, err := smartcontract.CreateMajorityMultiSigRedeemScript(committee)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("compose committee verification script: %w", err)
	}

	return hash.Hash160(script), nil
}

func isUpToDate(st *state.Contract, local CommonDeployPrm) (bool, error) {
	if st.NEF.Checksum != local.NEF.Checksum {
		return false, nil
	}

	jOnChain, err := json.Marshal(st.Manifest)
	if err != nil {
		return false, fmt.Errorf("encode on-chain manifest: %w", err)
	}

	jLocal, err := json.Marshal(local.Manifest)
	if err != nil {
		return false, fmt.Errorf("encode local manifest: %w", err)
	}

	return bytes.Equal(jOnChain, jLocal), nil
}

func isErrContractNotFound(err error) bool {
	return strings.Contains(err.Error(), "Unknown contract")
}
