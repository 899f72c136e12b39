package parking

import (
	"fmt"

	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/rpc/internal/itemconv"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// SpotCreatedEvent represents "SpotCreated" event emitted by the contract.
type SpotCreatedEvent struct {
	SpotID     int64
	Location   string
	HourlyRate int64
}

// SpotStatusChangedEvent represents "SpotStatusChanged" event emitted by the contract.
type SpotStatusChangedEvent struct {
	SpotID int64
	Active bool
}

// ReservationCreatedEvent represents "ReservationCreated" event emitted by the contract.
type ReservationCreatedEvent struct {
	ReservationID int64
	Requester     util.Uint160
	SpotID        int64
	Start         int64
	End           int64
	Cost          int64
}

// ReservationStartedEvent represents "ReservationStarted" event emitted by the contract.
type ReservationStartedEvent struct {
	ReservationID int64
	ActualStart   int64
}

// ReservationCompletedEvent represents "ReservationCompleted" event emitted by the contract.
type ReservationCompletedEvent struct {
	ReservationID int64
	ActualEnd     int64
	ActualCost    int64
	Refund        int64
}

// ReservationRefundEvent represents "ReservationCancelled" and
// "ReservationExpired" events emitted by the contract.
type ReservationRefundEvent struct {
	ReservationID int64
	Refund        int64
}

// SpotOccupancyChangedEvent represents "SpotOccupancyChanged" event emitted by the contract.
type SpotOccupancyChangedEvent struct {
	SpotID   int64
	Occupied bool
	Occupant util.Uint160
}

// FeePercentChangedEvent represents "FeePercentChanged" event emitted by the contract.
type FeePercentChangedEvent struct {
	OldPercent int64
	NewPercent int64
}

// ReporterChangedEvent represents "ReporterChanged" event emitted by the contract.
type ReporterChangedEvent struct {
	Reporter util.Uint160
}

// PlatformWithdrawalEvent represents "PlatformWithdrawal" event emitted by the contract.
type PlatformWithdrawalEvent struct {
	To     util.Uint160
	Amount int64
}

// SpotCreatedEventsFromApplicationLog retrieves a set of all emitted events
// with "SpotCreated" name from the provided [result.ApplicationLog].
func SpotCreatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*SpotCreatedEvent, error) {
	return itemconv.EventsFromApplicationLog[SpotCreatedEvent](log, "SpotCreated")
}

// SpotStatusChangedEventsFromApplicationLog retrieves a set of all emitted events
// with "SpotStatusChanged" name from the provided [result.ApplicationLog].
func SpotStatusChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*SpotStatusChangedEvent, error) {
	return itemconv.EventsFromApplicationLog[SpotStatusChangedEvent](log, "SpotStatusChanged")
}

// ReservationCreatedEventsFromApplicationLog retrieves a set of all emitted events
// with "ReservationCreated" name from the provided [result.ApplicationLog].
func ReservationCreatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ReservationCreatedEvent, error) {
	return itemconv.EventsFromApplicationLog[ReservationCreatedEvent](log, "ReservationCreated")
}

// ReservationStartedEventsFromApplicationLog retrieves a set of all emitted events
// with "ReservationStarted" name from the provided [result.ApplicationLog].
func ReservationStartedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ReservationStartedEvent, error) {
	return itemconv.EventsFromApplicationLog[ReservationStartedEvent](log, "ReservationStarted")
}

// ReservationCompletedEventsFromApplicationLog retrieves a set of all emitted events
// with "ReservationCompleted" name from the provided [result.ApplicationLog].
func ReservationCompletedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ReservationCompletedEvent, error) {
	return itemconv.EventsFromApplicationLog[ReservationCompletedEvent](log, "ReservationCompleted")
}

// ReservationCancelledEventsFromApplicationLog retrieves a set of all emitted events
// with "ReservationCancelled" name from the provided [result.ApplicationLog].
func ReservationCancelledEventsFromApplicationLog(log *result.ApplicationLog) ([]*ReservationRefundEvent, error) {
	return itemconv.EventsFromApplicationLog[ReservationRefundEvent](log, "ReservationCancelled")
}

// ReservationExpiredEventsFromApplicationLog retrieves a set of all emitted events
// with "ReservationExpired" name from the provided [result.ApplicationLog].
func ReservationExpiredEventsFromApplicationLog(log *result.ApplicationLog) ([]*ReservationRefundEvent, error) {
	return itemconv.EventsFromApplicationLog[ReservationRefundEvent](log, "ReservationExpired")
}

// SpotOccupancyChangedEventsFromApplicationLog retrieves a set of all emitted events
// with "SpotOccupancyChanged" name from the provided [result.ApplicationLog].
func SpotOccupancyChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*SpotOccupancyChangedEvent, error) {
	return itemconv.EventsFromApplicationLog[SpotOccupancyChangedEvent](log, "SpotOccupancyChanged")
}

// FeePercentChangedEventsFromApplicationLog retrieves a set of all emitted events
// with "FeePercentChanged" name from the provided [result.ApplicationLog].
func FeePercentChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*FeePercentChangedEvent, error) {
	return itemconv.EventsFromApplicationLog[FeePercentChangedEvent](log, "FeePercentChanged")
}

// ReporterChangedEventsFromApplicationLog retrieves a set of all emitted events
// with "ReporterChanged" name from the provided [result.ApplicationLog].
func ReporterChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ReporterChangedEvent, error) {
	return itemconv.EventsFromApplicationLog[ReporterChangedEvent](log, "ReporterChanged")
}

// PlatformWithdrawalEventsFromApplicationLog retrieves a set of all emitted events
// with "PlatformWithdrawal" name from the provided [result.ApplicationLog].
func PlatformWithdrawalEventsFromApplicationLog(log *result.ApplicationLog) ([]*PlatformWithdrawalEvent, error) {
	return itemconv.EventsFromApplicationLog[PlatformWithdrawalEvent](log, "PlatformWithdrawal")
}

// FromStackItem converts provided [stackitem.Array] to SpotCreatedEvent or
// returns an error if it's not possible to do to so.
func (e *SpotCreatedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := itemconv.EventFields(item, 3)
	if err != nil {
		return err
	}

	if e.SpotID, err = itemconv.Int64(arr[0]); err != nil {
		return fmt.Errorf("field SpotID: %w", err)
	}
	if e.Location, err = itemconv.String(arr[1]); err != nil {
		return fmt.Errorf("field Location: %w", err)
	}
	if e.HourlyRate, err = itemconv.Int64(arr[2]); err != nil {
		return fmt.Errorf("field HourlyRate: %w", err)
	}

	return nil
}

// FromStackItem converts provided [stackitem.Array] to SpotStatusChangedEvent or
// returns an error if it's not possible to do to so.
func (e *SpotStatusChangedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := itemconv.EventFields(item, 2)
	if err != nil {
		return err
	}

	if e.SpotID, err = itemconv.Int64(arr[0]); err != nil {
		return fmt.Errorf("field SpotID: %w", err)
	}
	if e.Active, err = itemconv.Bool(arr[1]); err != nil {
		return fmt.Errorf("field Active: %w", err)
	}

	return nil
}

// FromStackItem converts provided [stackitem.Array] to ReservationCreatedEvent or
// returns an error if it's not possible to do to so.
func (e *ReservationCreatedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := itemconv.EventFields(item, 6)
	if err != nil {
		return err
	}

	if e.ReservationID, err = itemconv.Int64(arr[0]); err != nil {
		return fmt.Errorf("field ReservationID: %w", err)
	}
	if e.Requester, err = itemconv.Uint160(arr[1]); err != nil {
		return fmt.Errorf("field Requester: %w", err)
	}
	if e.SpotID, err = itemconv.Int64(arr[2]); err != nil {
		return fmt.Errorf("field SpotID: %w", err)
	}
	if e.Start, err = itemconv.Int64(arr[3]); err != nil {
		return fmt.Errorf("field Start: %w", err)
	}
	if e.End, err = itemconv.Int64(arr[4]); err != nil {
		return fmt.Errorf("field End: %w", err)
	}
	if e.Cost, err = itemconv.Int64(arr[5]); err != nil {
		return fmt.Errorf("field Cost: %w", err)
	}

	return nil
}

// FromStackItem converts provided [stackitem.Array] to ReservationStartedEvent or
// returns an error if it's not possible to do to so.
func (e *ReservationStartedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := itemconv.EventFields(item, 2)
	if err != nil {
		return err
	}

	if e.ReservationID, err = itemconv.Int64(arr[0]); err != nil {
		return fmt.Errorf("field ReservationID: %w", err)
	}
	if e.ActualStart, err = itemconv.Int64(arr[1]); err != nil {
		return fmt.Errorf("field ActualStart: %w", err)
	}

	return nil
}

// FromStackItem converts provided [stackitem.Array] to ReservationCompletedEvent or
// returns an error if it's not possible to do to so.
func (e *ReservationCompletedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := itemconv.EventFields(item, 4)
	if err != nil {
		return err
	}

	if e.ReservationID, err = itemconv.Int64(arr[0]); err != nil {
		return fmt.Errorf("field ReservationID: %w", err)
	}
	if e.ActualEnd, err = itemconv.Int64(arr[1]); err != nil {
		return fmt.Errorf("field ActualEnd: %w", err)
	}
	if e.ActualCost, err = itemconv.Int64(arr[2]); err != nil {
		return fmt.Errorf("field ActualCost: %w", err)
	}
	if e.Refund, err = itemconv.Int64(arr[3]); err != nil {
		return fmt.Errorf("field Refund: %w", err)
	}

	return nil
}

// FromStackItem converts provided [stackitem.Array] to ReservationRefundEvent or
// returns an error if it's not possible to do to so.
func (e *ReservationRefundEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := itemconv.EventFields(item, 2)
	if err != nil {
		return err
	}

	if e.ReservationID, err = itemconv.Int64(arr[0]); err != nil {
		return fmt.Errorf("field ReservationID: %w", err)
	}
	if e.Refund, err = itemconv.Int64(arr[1]); err != nil {
		return fmt.Errorf("field Refund: %w", err)
	}

	return nil
}

// FromStackItem converts provided [stackitem.Array] to SpotOccupancyChangedEvent or
// returns an error if it's not possible to do to so.
func (e *SpotOccupancyChangedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := itemconv.EventFields(item, 3)
	if err != nil {
		return err
	}

	if e.SpotID, err = itemconv.Int64(arr[0]); err != nil {
		return fmt.Errorf("field SpotID: %w", err)
	}
	if e.Occupied, err = itemconv.Bool(arr[1]); err != nil {
		return fmt.Errorf("field Occupied: %w", err)
	}
	if e.Occupant, err = itemconv.Uint160(arr[2]); err != nil {
		return fmt.Errorf("field Occupant: %w", err)
	}

	return nil
}

// FromStackItem converts provided [stackitem.Array] to FeePercentChangedEvent or
// returns an error if it's not possible to do to so.
func (e *FeePercentChangedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := itemconv.EventFields(item, 2)
	if err != nil {
		return err
	}

	if e.OldPercent, err = itemconv.Int64(arr[0]); err != nil {
		return fmt.Errorf("field OldPercent: %w", err)
	}
	if e.NewPercent, err = itemconv.Int64(arr[1]); err != nil {
		return fmt.Errorf("field NewPercent: %w", err)
	}

	return nil
}

// FromStackItem converts provided [stackitem.Array] to ReporterChangedEvent or
// returns an error if it's not possible to do to so.
func (e *ReporterChangedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := itemconv.EventFields(item, 1)
	if err != nil {
		return err
	}

	if e.Reporter, err = itemconv.Uint160(arr[0]); err != nil {
		return fmt.Errorf("field Reporter: %w", err)
	}

	return nil
}

// FromStackItem converts provided [stackitem.Array] to PlatformWithdrawalEvent or
// returns an error if it's not possible to do to so.
func (e *PlatformWithdrawalEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := itemconv.EventFields(item, 2)
	if err != nil {
		return err
	}

	if e.To, err = itemconv.Uint160(arr[0]); err != nil {
		return fmt.Errorf("field To: %w", err)
	}
	if e.Amount, err = itemconv.Int64(arr[1]); err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}
