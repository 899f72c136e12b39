package oracle

import (
	"fmt"

	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/rpc/internal/itemconv"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// SensorDataUpdatedEvent represents "SensorDataUpdated" event emitted by the contract.
type SensorDataUpdatedEvent struct {
	SpotID     int64
	Occupied   bool
	Confidence int64
	Reporter   util.Uint160
	SensorType string
}

// SpotOccupancyDetectedEvent represents "SpotOccupancyDetected" event emitted by the contract.
type SpotOccupancyDetectedEvent struct {
	SpotID   int64
	Occupied bool
	Reporter util.Uint160
}

// DataValidationFailedEvent represents "DataValidationFailed" event emitted by the contract.
type DataValidationFailedEvent struct {
	Reporter util.Uint160
	SpotID   int64
	Reason   string
}

// OracleNodeAddedEvent represents "OracleNodeAdded" event emitted by the contract.
type OracleNodeAddedEvent struct {
	Node  util.Uint160
	Label string
}

// OracleNodeRemovedEvent represents "OracleNodeRemoved" event emitted by the contract.
type OracleNodeRemovedEvent struct {
	Node util.Uint160
}

// OracleNodeUpdatedEvent represents "OracleNodeUpdated" event emitted by the contract.
type OracleNodeUpdatedEvent struct {
	Node       util.Uint160
	Reputation int64
}

// SensorDataUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "SensorDataUpdated" name from the provided [result.ApplicationLog].
func SensorDataUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*SensorDataUpdatedEvent, error) {
	return itemconv.EventsFromApplicationLog[SensorDataUpdatedEvent](log, "SensorDataUpdated")
}

// SpotOccupancyDetectedEventsFromApplicationLog retrieves a set of all emitted events
// with "SpotOccupancyDetected" name from the provided [result.ApplicationLog].
func SpotOccupancyDetectedEventsFromApplicationLog(log *result.ApplicationLog) ([]*SpotOccupancyDetectedEvent, error) {
	return itemconv.EventsFromApplicationLog[SpotOccupancyDetectedEvent](log, "SpotOccupancyDetected")
}

// DataValidationFailedEventsFromApplicationLog retrieves a set of all emitted events
// with "DataValidationFailed" name from the provided [result.ApplicationLog].
func DataValidationFailedEventsFromApplicationLog(log *result.ApplicationLog) ([]*DataValidationFailedEvent, error) {
	return itemconv.EventsFromApplicationLog[DataValidationFailedEvent](log, "DataValidationFailed")
}

// OracleNodeAddedEventsFromApplicationLog retrieves a set of all emitted events
// with "OracleNodeAdded" name from the provided [result.ApplicationLog].
func OracleNodeAddedEventsFromApplicationLog(log *result.ApplicationLog) ([]*OracleNodeAddedEvent, error) {
	return itemconv.EventsFromApplicationLog[OracleNodeAddedEvent](log, "OracleNodeAdded")
}

// OracleNodeRemovedEventsFromApplicationLog retrieves a set of all emitted events
// with "OracleNodeRemoved" name from the provided [result.ApplicationLog].
func OracleNodeRemovedEventsFromApplicationLog(log *result.ApplicationLog) ([]*OracleNodeRemovedEvent, error) {
	return itemconv.EventsFromApplicationLog[OracleNodeRemovedEvent](log, "OracleNodeRemoved")
}

// OracleNodeUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "OracleNodeUpdated" name from the provided [result.ApplicationLog].
func OracleNodeUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*OracleNodeUpdatedEvent, error) {
	return itemconv.EventsFromApplicationLog[OracleNodeUpdatedEvent](log, "OracleNodeUpdated")
}

// FromStackItem converts provided [stackitem.Array] to SensorDataUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *SensorDataUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := itemconv.EventFields(item, 5)
	if err != nil {
		return err
	}

	if e.SpotID, err = itemconv.Int64(arr[0]); err != nil {
		return fmt.Errorf("field SpotID: %w", err)
	}
	if e.Occupied, err = itemconv.Bool(arr[1]); err != nil {
		return fmt.Errorf("field Occupied: %w", err)
	}
	if e.Confidence, err = itemconv.Int64(arr[2]); err != nil {
		return fmt.Errorf("field Confidence: %w", err)
	}
	if e.Reporter, err = itemconv.Uint160(arr[3]); err != nil {
		return fmt.Errorf("field Reporter: %w", err)
	}
	if e.SensorType, err = itemconv.String(arr[4]); err != nil {
		return fmt.Errorf("field SensorType: %w", err)
	}

	return nil
}

// FromStackItem converts provided [stackitem.Array] to SpotOccupancyDetectedEvent or
// returns an error if it's not possible to do to so.
func (e *SpotOccupancyDetectedEvent) FromStackItem(item *stackitem.Array) error {
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
	if e.Reporter, err = itemconv.Uint160(arr[2]); err != nil {
		return fmt.Errorf("field Reporter: %w", err)
	}

	return nil
}

// FromStackItem converts provided [stackitem.Array] to DataValidationFailedEvent or
// returns an error if it's not possible to do to so.
func (e *DataValidationFailedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := itemconv.EventFields(item, 3)
	if err != nil {
		return err
	}

	if e.Reporter, err = itemconv.Uint160(arr[0]); err != nil {
		return fmt.Errorf("field Reporter: %w", err)
	}
	if e.SpotID, err = itemconv.Int64(arr[1]); err != nil {
		return fmt.Errorf("field SpotID: %w", err)
	}
	if e.Reason, err = itemconv.String(arr[2]); err != nil {
		return fmt.Errorf("field Reason: %w", err)
	}

	return nil
}

// FromStackItem converts provided [stackitem.Array] to OracleNodeAddedEvent or
// returns an error if it's not possible to do to so.
func (e *OracleNodeAddedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := itemconv.EventFields(item, 2)
	if err != nil {
		return err
	}

	if e.Node, err = itemconv.Uint160(arr[0]); err != nil {
		return fmt.Errorf("field Node: %w", err)
	}
	if e.Label, err = itemconv.String(arr[1]); err != nil {
		return fmt.Errorf("field Label: %w", err)
	}

	return nil
}

// FromStackItem converts provided [stackitem.Array] to OracleNodeRemovedEvent or
// returns an error if it's not possible to do to so.
func (e *OracleNodeRemovedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := itemconv.EventFields(item, 1)
	if err != nil {
		return err
	}

	if e.Node, err = itemconv.Uint160(arr[0]); err != nil {
		return fmt.Errorf("field Node: %w", err)
	}

	return nil
}

// FromStackItem converts provided [stackitem.Array] to OracleNodeUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *OracleNodeUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := itemconv.EventFields(item, 2)
	if err != nil {
		return err
	}

	if e.Node, err = itemconv.Uint160(arr[0]); err != nil {
		return fmt.Errorf("field Node: %w", err)
	}
	if e.Reputation, err = itemconv.Int64(arr[1]); err != nil {
		return fmt.Errorf("field Reputation: %w", err)
	}

	return nil
}
