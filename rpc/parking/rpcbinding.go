// Package parking contains RPC wrappers for Parking contract.
package parking

import (
	"fmt"

	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/contracts/parking/parkingconst"
	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/rpc/internal/itemconv"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Spot is a parking spot as stored by the contract.
type Spot struct {
	ID              int64
	Location        string
	HourlyRate      int64
	Active          bool
	Occupied        bool
	Occupant        util.Uint160
	ReservedUntil   int64
	TotalEarnings   int64
	OccupationCount int64
}

// Reservation is a reservation as stored by the contract.
type Reservation struct {
	ID          int64
	Requester   util.Uint160
	SpotID      int64
	Start       int64
	End         int64
	HourlyRate  int64
	TotalCost   int64
	PaidAmount  int64
	Status      parkingconst.Status
	ActualStart int64
	ActualEnd   int64
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
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

// Reporter invokes `reporter` method of contract.
func (c *ContractReader) Reporter() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "reporter"))
}

// FeePercent invokes `feePercent` method of contract.
func (c *ContractReader) FeePercent() (int64, error) {
	return unwrap.Int64(c.invoker.Call(c.hash, "feePercent"))
}

// Paused invokes `paused` method of contract.
func (c *ContractReader) Paused() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "paused"))
}

// PlatformEarnings invokes `platformEarnings` method of contract.
func (c *ContractReader) PlatformEarnings() (int64, error) {
	return unwrap.Int64(c.invoker.Call(c.hash, "platformEarnings"))
}

// SettlementFees invokes `settlementFees` method of contract.
func (c *ContractReader) SettlementFees() (int64, error) {
	return unwrap.Int64(c.invoker.Call(c.hash, "settlementFees"))
}

// Penalties invokes `penalties` method of contract.
func (c *ContractReader) Penalties() (int64, error) {
	return unwrap.Int64(c.invoker.Call(c.hash, "penalties"))
}

// GetSpot invokes `getSpot` method of contract.
func (c *ContractReader) GetSpot(spotID int64) (*Spot, error) {
	return itemToSpot(unwrap.Item(c.invoker.Call(c.hash, "getSpot", spotID)))
}

// SpotCount invokes `spotCount` method of contract.
func (c *ContractReader) SpotCount() (int64, error) {
	return unwrap.Int64(c.invoker.Call(c.hash, "spotCount"))
}

// ListActiveSpots invokes `listActiveSpots` method of contract.
func (c *ContractReader) ListActiveSpots() ([]*Spot, error) {
	arr, err := unwrap.Array(c.invoker.Call(c.hash, "listActiveSpots"))
	if err != nil {
		return nil, err
	}

	res := make([]*Spot, len(arr))
	for i := range arr {
		res[i], err = itemToSpot(arr[i], nil)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}

	return res, nil
}

// IsSpotAvailable invokes `isSpotAvailable` method of contract.
func (c *ContractReader) IsSpotAvailable(spotID, start, end int64) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isSpotAvailable", spotID, start, end))
}

// CalculateCost invokes `calculateCost` method of contract.
func (c *ContractReader) CalculateCost(spotID, start, end int64) (int64, error) {
	return unwrap.Int64(c.invoker.Call(c.hash, "calculateCost", spotID, start, end))
}

// GetReservation invokes `getReservation` method of contract.
func (c *ContractReader) GetReservation(id int64) (*Reservation, error) {
	return itemToReservation(unwrap.Item(c.invoker.Call(c.hash, "getReservation", id)))
}

// ReservationCount invokes `reservationCount` method of contract.
func (c *ContractReader) ReservationCount() (int64, error) {
	return unwrap.Int64(c.invoker.Call(c.hash, "reservationCount"))
}

// GetUserReservations invokes `getUserReservations` method of contract.
func (c *ContractReader) GetUserReservations(user util.Uint160) ([]int64, error) {
	return itemToInt64Slice(unwrap.Item(c.invoker.Call(c.hash, "getUserReservations", user)))
}

// GetSpotReservations invokes `getSpotReservations` method of contract.
func (c *ContractReader) GetSpotReservations(spotID int64) ([]int64, error) {
	return itemToInt64Slice(unwrap.Item(c.invoker.Call(c.hash, "getSpotReservations", spotID)))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (int64, error) {
	return unwrap.Int64(c.invoker.Call(c.hash, "version"))
}

// CreateSpot creates a transaction invoking `createSpot` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateSpot(location string, hourlyRate int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createSpot", location, hourlyRate)
}

// CreateSpotTransaction creates a transaction invoking `createSpot` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateSpotTransaction(location string, hourlyRate int64) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createSpot", location, hourlyRate)
}

// CreateSpotUnsigned creates a transaction invoking `createSpot` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateSpotUnsigned(location string, hourlyRate int64) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createSpot", nil, location, hourlyRate)
}

// SetSpotActive creates a transaction invoking `setSpotActive` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetSpotActive(spotID int64, active bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setSpotActive", spotID, active)
}

// SetSpotActiveTransaction creates a transaction invoking `setSpotActive` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetSpotActiveTransaction(spotID int64, active bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setSpotActive", spotID, active)
}

// SetSpotActiveUnsigned creates a transaction invoking `setSpotActive` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) SetSpotActiveUnsigned(spotID int64, active bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setSpotActive", nil, spotID, active)
}

// SetHourlyRate creates a transaction invoking `setHourlyRate` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetHourlyRate(spotID, hourlyRate int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setHourlyRate", spotID, hourlyRate)
}

// SetHourlyRateTransaction creates a transaction invoking `setHourlyRate` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetHourlyRateTransaction(spotID, hourlyRate int64) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setHourlyRate", spotID, hourlyRate)
}

// SetHourlyRateUnsigned creates a transaction invoking `setHourlyRate` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) SetHourlyRateUnsigned(spotID, hourlyRate int64) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setHourlyRate", nil, spotID, hourlyRate)
}

// Reserve creates a transaction invoking `reserve` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Reserve(requester util.Uint160, spotID, start, end, payment int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "reserve", requester, spotID, start, end, payment)
}

// ReserveTransaction creates a transaction invoking `reserve` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ReserveTransaction(requester util.Uint160, spotID, start, end, payment int64) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "reserve", requester, spotID, start, end, payment)
}

// ReserveUnsigned creates a transaction invoking `reserve` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ReserveUnsigned(requester util.Uint160, spotID, start, end, payment int64) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "reserve", nil, requester, spotID, start, end, payment)
}

// StartReservation creates a transaction invoking `startReservation` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) StartReservation(id int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "startReservation", id)
}

// StartReservationTransaction creates a transaction invoking `startReservation` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) StartReservationTransaction(id int64) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "startReservation", id)
}

// StartReservationUnsigned creates a transaction invoking `startReservation` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) StartReservationUnsigned(id int64) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "startReservation", nil, id)
}

// CompleteReservation creates a transaction invoking `completeReservation` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CompleteReservation(id int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "completeReservation", id)
}

// CompleteReservationTransaction creates a transaction invoking `completeReservation` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CompleteReservationTransaction(id int64) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "completeReservation", id)
}

// CompleteReservationUnsigned creates a transaction invoking `completeReservation` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) CompleteReservationUnsigned(id int64) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "completeReservation", nil, id)
}

// ExpireReservation creates a transaction invoking `expireReservation` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ExpireReservation(id int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "expireReservation", id)
}

// ExpireReservationTransaction creates a transaction invoking `expireReservation` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ExpireReservationTransaction(id int64) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "expireReservation", id)
}

// ExpireReservationUnsigned creates a transaction invoking `expireReservation` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) ExpireReservationUnsigned(id int64) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "expireReservation", nil, id)
}

// CancelReservation creates a transaction invoking `cancelReservation` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CancelReservation(id int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "cancelReservation", id)
}

// CancelReservationTransaction creates a transaction invoking `cancelReservation` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CancelReservationTransaction(id int64) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "cancelReservation", id)
}

// CancelReservationUnsigned creates a transaction invoking `cancelReservation` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) CancelReservationUnsigned(id int64) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "cancelReservation", nil, id)
}

// SetFeePercent creates a transaction invoking `setFeePercent` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetFeePercent(percent int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setFeePercent", percent)
}

// SetFeePercentTransaction creates a transaction invoking `setFeePercent` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetFeePercentTransaction(percent int64) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setFeePercent", percent)
}

// SetFeePercentUnsigned creates a transaction invoking `setFeePercent` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) SetFeePercentUnsigned(percent int64) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setFeePercent", nil, percent)
}

// SetReporter creates a transaction invoking `setReporter` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetReporter(reporter util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setReporter", reporter)
}

// SetReporterTransaction creates a transaction invoking `setReporter` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetReporterTransaction(reporter util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setReporter", reporter)
}

// SetReporterUnsigned creates a transaction invoking `setReporter` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) SetReporterUnsigned(reporter util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setReporter", nil, reporter)
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

// WithdrawPlatformEarnings creates a transaction invoking `withdrawPlatformEarnings` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) WithdrawPlatformEarnings(to util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdrawPlatformEarnings", to)
}

// WithdrawPlatformEarningsTransaction creates a transaction invoking `withdrawPlatformEarnings` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawPlatformEarningsTransaction(to util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdrawPlatformEarnings", to)
}

// WithdrawPlatformEarningsUnsigned creates a transaction invoking `withdrawPlatformEarnings` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
func (c *Contract) WithdrawPlatformEarningsUnsigned(to util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdrawPlatformEarnings", nil, to)
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

// itemToSpot converts stack item into *Spot.
func itemToSpot(item stackitem.Item, err error) (*Spot, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Spot)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Spot from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Spot) FromStackItem(item stackitem.Item) error {
	arr, err := itemconv.Fields(item, 9)
	if err != nil {
		return err
	}

	if res.ID, err = itemconv.Int64(arr[0]); err != nil {
		return fmt.Errorf("field ID: %w", err)
	}
	if res.Location, err = itemconv.String(arr[1]); err != nil {
		return fmt.Errorf("field Location: %w", err)
	}
	if res.HourlyRate, err = itemconv.Int64(arr[2]); err != nil {
		return fmt.Errorf("field HourlyRate: %w", err)
	}
	if res.Active, err = itemconv.Bool(arr[3]); err != nil {
		return fmt.Errorf("field Active: %w", err)
	}
	if res.Occupied, err = itemconv.Bool(arr[4]); err != nil {
		return fmt.Errorf("field Occupied: %w", err)
	}
	if res.Occupant, err = itemconv.Uint160(arr[5]); err != nil {
		return fmt.Errorf("field Occupant: %w", err)
	}
	if res.ReservedUntil, err = itemconv.Int64(arr[6]); err != nil {
		return fmt.Errorf("field ReservedUntil: %w", err)
	}
	if res.TotalEarnings, err = itemconv.Int64(arr[7]); err != nil {
		return fmt.Errorf("field TotalEarnings: %w", err)
	}
	if res.OccupationCount, err = itemconv.Int64(arr[8]); err != nil {
		return fmt.Errorf("field OccupationCount: %w", err)
	}

	return nil
}

// itemToReservation converts stack item into *Reservation.
func itemToReservation(item stackitem.Item, err error) (*Reservation, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Reservation)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Reservation from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Reservation) FromStackItem(item stackitem.Item) error {
	arr, err := itemconv.Fields(item, 11)
	if err != nil {
		return err
	}

	if res.ID, err = itemconv.Int64(arr[0]); err != nil {
		return fmt.Errorf("field ID: %w", err)
	}
	if res.Requester, err = itemconv.Uint160(arr[1]); err != nil {
		return fmt.Errorf("field Requester: %w", err)
	}
	if res.SpotID, err = itemconv.Int64(arr[2]); err != nil {
		return fmt.Errorf("field SpotID: %w", err)
	}
	if res.Start, err = itemconv.Int64(arr[3]); err != nil {
		return fmt.Errorf("field Start: %w", err)
	}
	if res.End, err = itemconv.Int64(arr[4]); err != nil {
		return fmt.Errorf("field End: %w", err)
	}
	if res.HourlyRate, err = itemconv.Int64(arr[5]); err != nil {
		return fmt.Errorf("field HourlyRate: %w", err)
	}
	if res.TotalCost, err = itemconv.Int64(arr[6]); err != nil {
		return fmt.Errorf("field TotalCost: %w", err)
	}
	if res.PaidAmount, err = itemconv.Int64(arr[7]); err != nil {
		return fmt.Errorf("field PaidAmount: %w", err)
	}

	status, err := itemconv.Int64(arr[8])
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}
	res.Status = parkingconst.Status(status)

	if res.ActualStart, err = itemconv.Int64(arr[9]); err != nil {
		return fmt.Errorf("field ActualStart: %w", err)
	}
	if res.ActualEnd, err = itemconv.Int64(arr[10]); err != nil {
		return fmt.Errorf("field ActualEnd: %w", err)
	}

	return nil
}

func itemToInt64Slice(item stackitem.Item, err error) ([]int64, error) {
	if err != nil {
		return nil, err
	}
	return itemconv.Int64Slice(item)
}
