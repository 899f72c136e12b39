// Package oracle contains RPC wrappers for Oracle contract.
package oracle

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/rpc/internal/itemconv"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// DefaultBatch is the number of iterator items fetched at once by ListNodes.
const DefaultBatch = 100

// Node is an oracle node record as stored by the contract.
type Node struct {
	Address      util.Uint160
	Active       bool
	Reputation   int64
	TotalUpdates int64
	LastUpdate   int64
	Label        string
	Index        int64
	ActivePos    int64
}

// Reading is an accepted sensor reading as stored by the contract.
type Reading struct {
	SpotID     int64
	Occupied   bool
	Confidence int64
	Timestamp  int64
	SensorType string
	Hash       []byte
	Reporter   util.Uint160
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Owner invokes `owner` method of contract.
func (c *ContractReader) Owner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "owner"))
}

// Paused invokes `paused` method of contract.
func (c *ContractReader) Paused() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "paused"))
}

// GetNode invokes `getNode` method of contract.
func (c *ContractReader) GetNode(address util.Uint160) (*Node, error) {
	return itemToNode(unwrap.Item(c.invoker.Call(c.hash, "getNode", address)))
}

// IsActiveNode invokes `isActiveNode` method of contract.
func (c *ContractReader) IsActiveNode(address util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isActiveNode", address))
}

// GetReputation invokes `getReputation` method of contract.
func (c *ContractReader) GetReputation(address util.Uint160) (int64, error) {
	return unwrap.Int64(c.invoker.Call(c.hash, "getReputation", address))
}

// ActiveNodes invokes `activeNodes` method of contract.
func (c *ContractReader) ActiveNodes() ([]util.Uint160, error) {
	item, err := unwrap.Item(c.invoker.Call(c.hash, "activeNodes"))
	if err != nil {
		return nil, err
	}
	return itemconv.Uint160Slice(item)
}

// ActiveNodeCount invokes `activeNodeCount` method of contract.
func (c *ContractReader) ActiveNodeCount() (int64, error) {
	return unwrap.Int64(c.invoker.Call(c.hash, "activeNodeCount"))
}

// NodeCount invokes `nodeCount` method of contract.
func (c *ContractReader) NodeCount() (int64, error) {
	return unwrap.Int64(c.invoker.Call(c.hash, "nodeCount"))
}

// IterateNodes invokes `iterateNodes` method of contract.
func (c *ContractReader) IterateNodes() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "iterateNodes"))
}

// IterateNodesExpanded is similar to IterateNodes (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) IterateNodesExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "iterateNodes", _numOfIteratorItems))
}

// ListNodes returns all node records. It uses a session iterator when the
// server supports sessions and falls back to in-VM expansion of at most
// maxItems records otherwise. Non-positive maxItems means DefaultBatch.
func (c *ContractReader) ListNodes(maxItems int) ([]*Node, error) {
	if maxItems <= 0 {
		maxItems = DefaultBatch
	}

	var items []stackitem.Item

	sess, iter, err := c.IterateNodes()
	switch {
	case err == nil && iter.ID == nil:
		items = iter.Values
	case err == nil:
		defer func() { _ = c.invoker.TerminateSession(sess) }()

		for {
			batch, err := c.invoker.TraverseIterator(sess, &iter, maxItems)
			if err != nil {
				return nil, fmt.Errorf("traverse iterator: %w", err)
			}
			items = append(items, batch...)
			if len(batch) < maxItems {
				break
			}
		}
	default:
		items, err = c.IterateNodesExpanded(maxItems)
		if err != nil {
			return nil, err
		}
	}

	res := make([]*Node, len(items))
	for i := range items {
		res[i], err = itemToNode(items[i], nil)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}

	return res, nil
}

// GetLatestReading invokes `getLatestReading` method of contract.
func (c *ContractReader) GetLatestReading(spotID int64) (*Reading, error) {
	return itemToReading(unwrap.Item(c.invoker.Call(c.hash, "getLatestReading", spotID)))
}

// GetReadingHistory invokes `getReadingHistory` method of contract.
func (c *ContractReader) GetReadingHistory(spotID int64) ([]*Reading, error) {
	arr, err := unwrap.Array(c.invoker.Call(c.hash, "getReadingHistory", spotID))
	if err != nil {
		return nil, err
	}

	res := make([]*Reading, len(arr))
	for i := range arr {
		res[i], err = itemToReading(arr[i], nil)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}

	return res, nil
}

// HistorySize invokes `historySize` method of contract.
func (c *ContractReader) HistorySize(spotID int64) (int64, error) {
	return unwrap.Int64(c.invoker.Call(c.hash, "historySize", spotID))
}

// IsHashProcessed invokes `isHashProcessed` method of contract.
func (c *ContractReader) IsHashProcessed(hash []byte) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isHashProcessed", hash))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (int64, error) {
	return unwrap.Int64(c.invoker.Call(c.hash, "version"))
}

// AddNode creates a transaction invoking `addNode` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddNode(address util.Uint160, label string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addNode", address, label)
}

// AddNodeTransaction creates a transaction invoking `addNode` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddNodeTransaction(address util.Uint160, label string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addNode", address, label)
}

// AddNodeUnsigned creates a transaction invoking `addNode` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddNodeUnsigned(address util.Uint160, label string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addNode", nil, address, label)
}

// RemoveNode creates a transaction invoking `removeNode` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RemoveNode(address util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "removeNode", address)
}

// RemoveNodeTransaction creates a transaction invoking `removeNode` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RemoveNodeTransaction(address util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "removeNode", address)
}

// RemoveNodeUnsigned creates a transaction invoking `removeNode` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) RemoveNodeUnsigned(address util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "removeNode", nil, address)
}

// SetReputation creates a transaction invoking `setReputation` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetReputation(address util.Uint160, value int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setReputation", address, value)
}

// SetReputationTransaction creates a transaction invoking `setReputation` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetReputationTransaction(address util.Uint160, value int64) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setReputation", address, value)
}

// SetReputationUnsigned creates a transaction invoking `setReputation` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) SetReputationUnsigned(address util.Uint160, value int64) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setReputation", nil, address, value)
}

// SubmitReading creates a transaction invoking `submitReading` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SubmitReading(reporter util.Uint160, spotID int64, occupied bool, confidence int64, sensorType string, hash []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "submitReading", reporter, spotID, occupied, confidence, sensorType, hash)
}

// SubmitReadingTransaction creates a transaction invoking `submitReading` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SubmitReadingTransaction(reporter util.Uint160, spotID int64, occupied bool, confidence int64, sensorType string, hash []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "submitReading", reporter, spotID, occupied, confidence, sensorType, hash)
}

// SubmitReadingUnsigned creates a transaction invoking `submitReading` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SubmitReadingUnsigned(reporter util.Uint160, spotID int64, occupied bool, confidence int64, sensorType string, hash []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "submitReading", nil, reporter, spotID, occupied, confidence, sensorType, hash)
}

// Pause creates a transaction invoking `pause` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Pause() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "pause")
}

// PauseTransaction creates a transaction invoking `pause` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) PauseTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "pause")
}

// PauseUnsigned creates a transaction invoking `pause` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) PauseUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "pause", nil)
}

// Unpause creates a transaction invoking `unpause` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Unpause() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "unpause")
}

// UnpauseTransaction creates a transaction invoking `unpause` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UnpauseTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "unpause")
}

// UnpauseUnsigned creates a transaction invoking `unpause` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) UnpauseUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "unpause", nil)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// itemToNode converts stack item into *Node.
func itemToNode(item stackitem.Item, err error) (*Node, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Node)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Node from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Node) FromStackItem(item stackitem.Item) error {
	arr, err := itemconv.Fields(item, 8)
	if err != nil {
		return err
	}

	if res.Address, err = itemconv.Uint160(arr[0]); err != nil {
		return fmt.Errorf("field Address: %w", err)
	}
	if res.Active, err = itemconv.Bool(arr[1]); err != nil {
		return fmt.Errorf("field Active: %w", err)
	}
	if res.Reputation, err = itemconv.Int64(arr[2]); err != nil {
		return fmt.Errorf("field Reputation: %w", err)
	}
	if res.TotalUpdates, err = itemconv.Int64(arr[3]); err != nil {
		return fmt.Errorf("field TotalUpdates: %w", err)
	}
	if res.LastUpdate, err = itemconv.Int64(arr[4]); err != nil {
		return fmt.Errorf("field LastUpdate: %w", err)
	}
	if res.Label, err = itemconv.String(arr[5]); err != nil {
		return fmt.Errorf("field Label: %w", err)
	}
	if res.Index, err = itemconv.Int64(arr[6]); err != nil {
		return fmt.Errorf("field Index: %w", err)
	}
	if res.ActivePos, err = itemconv.Int64(arr[7]); err != nil {
		return fmt.Errorf("field ActivePos: %w", err)
	}

	return nil
}

// itemToReading converts stack item into *Reading.
func itemToReading(item stackitem.Item, err error) (*Reading, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Reading)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Reading from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Reading) FromStackItem(item stackitem.Item) error {
	arr, err := itemconv.Fields(item, 7)
	if err != nil {
		return err
	}

	if res.SpotID, err = itemconv.Int64(arr[0]); err != nil {
		return fmt.Errorf("field SpotID: %w", err)
	}
	if res.Occupied, err = itemconv.Bool(arr[1]); err != nil {
		return fmt.Errorf("field Occupied: %w", err)
	}
	if res.Confidence, err = itemconv.Int64(arr[2]); err != nil {
		return fmt.Errorf("field Confidence: %w", err)
	}
	if res.Timestamp, err = itemconv.Int64(arr[3]); err != nil {
		return fmt.Errorf("field Timestamp: %w", err)
	}
	if res.SensorType, err = itemconv.String(arr[4]); err != nil {
		return fmt.Errorf("field SensorType: %w", err)
	}
	if res.Hash, err = itemconv.Bytes(arr[5]); err != nil {
		return fmt.Errorf("field Hash: %w", err)
	}
	if res.Reporter, err = itemconv.Uint160(arr[6]); err != nil {
		return fmt.Errorf("field Reporter: %w", err)
	}

	return nil
}
