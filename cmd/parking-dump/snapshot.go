package main

import (
	"encoding/hex"
	"fmt"

	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/rpc/oracle"
	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/rpc/parking"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

type snapshot struct {
	Block   uint32           `yaml:"block"`
	Parking *parkingSnapshot `yaml:"parking,omitempty"`
	Oracle  *oracleSnapshot  `yaml:"oracle,omitempty"`
}

type parkingSnapshot struct {
	Address          string             `yaml:"address"`
	Owner            string             `yaml:"owner"`
	Reporter         string             `yaml:"reporter"`
	FeePercent       int64              `yaml:"fee_percent"`
	Paused           bool               `yaml:"paused"`
	PlatformEarnings int64              `yaml:"platform_earnings"`
	SettlementFees   int64              `yaml:"settlement_fees"`
	Penalties        int64              `yaml:"penalties"`
	Spots            []spotEntry        `yaml:"spots"`
	Reservations     []reservationEntry `yaml:"reservations"`
	Storage          []storageEntry     `yaml:"storage,omitempty"`
}

type spotEntry struct {
	ID              int64  `yaml:"id"`
	Location        string `yaml:"location"`
	HourlyRate      int64  `yaml:"hourly_rate"`
	Active          bool   `yaml:"active"`
	Occupied        bool   `yaml:"occupied"`
	Occupant        string `yaml:"occupant,omitempty"`
	ReservedUntil   int64  `yaml:"reserved_until"`
	TotalEarnings   int64  `yaml:"total_earnings"`
	OccupationCount int64  `yaml:"occupation_count"`
}

type reservationEntry struct {
	ID          int64  `yaml:"id"`
	Requester   string `yaml:"requester"`
	SpotID      int64  `yaml:"spot_id"`
	Start       int64  `yaml:"start"`
	End         int64  `yaml:"end"`
	HourlyRate  int64  `yaml:"hourly_rate"`
	TotalCost   int64  `yaml:"total_cost"`
	PaidAmount  int64  `yaml:"paid_amount"`
	Status      string `yaml:"status"`
	ActualStart int64  `yaml:"actual_start,omitempty"`
	ActualEnd   int64  `yaml:"actual_end,omitempty"`
}

type oracleSnapshot struct {
	Address  string         `yaml:"address"`
	Owner    string         `yaml:"owner"`
	Paused   bool           `yaml:"paused"`
	Nodes    []nodeEntry    `yaml:"nodes"`
	Readings []readingEntry `yaml:"latest_readings"`
	Storage  []storageEntry `yaml:"storage,omitempty"`
}

type nodeEntry struct {
	Address      string `yaml:"address"`
	Label        string `yaml:"label"`
	Active       bool   `yaml:"active"`
	Reputation   int64  `yaml:"reputation"`
	TotalUpdates int64  `yaml:"total_updates"`
	LastUpdate   int64  `yaml:"last_update"`
}

type readingEntry struct {
	SpotID     int64  `yaml:"spot_id"`
	Occupied   bool   `yaml:"occupied"`
	Confidence int64  `yaml:"confidence"`
	Timestamp  int64  `yaml:"timestamp"`
	SensorType string `yaml:"sensor_type"`
	Hash       string `yaml:"hash"`
	Reporter   string `yaml:"reporter"`
	History    int64  `yaml:"history_size"`
}

type storageEntry struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

type parkingReader interface {
	Owner() (util.Uint160, error)
	Reporter() (util.Uint160, error)
	FeePercent() (int64, error)
	Paused() (bool, error)
	PlatformEarnings() (int64, error)
	SettlementFees() (int64, error)
	Penalties() (int64, error)
	SpotCount() (int64, error)
	GetSpot(spotID int64) (*parking.Spot, error)
	ReservationCount() (int64, error)
	GetReservation(id int64) (*parking.Reservation, error)
}

type oracleReader interface {
	Owner() (util.Uint160, error)
	Paused() (bool, error)
	ListNodes(maxItems int) ([]*oracle.Node, error)
	HistorySize(spotID int64) (int64, error)
	GetLatestReading(spotID int64) (*oracle.Reading, error)
}

func collectParking(addr util.Uint160, r parkingReader) (*parkingSnapshot, error) {
	var (
		res = &parkingSnapshot{Address: address.Uint160ToString(addr)}
		err error
	)

	owner, err := r.Owner()
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}
	res.Owner = address.Uint160ToString(owner)

	reporter, err := r.Reporter()
	if err != nil {
		return nil, fmt.Errorf("get reporter: %w", err)
	}
	res.Reporter = address.Uint160ToString(reporter)

	for _, v := range []struct {
		name string
		dst  *int64
		get  func() (int64, error)
	}{
		{"fee percent", &res.FeePercent, r.FeePercent},
		{"platform earnings", &res.PlatformEarnings, r.PlatformEarnings},
		{"settlement fees", &res.SettlementFees, r.SettlementFees},
		{"penalties", &res.Penalties, r.Penalties},
	} {
		*v.dst, err = v.get()
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", v.name, err)
		}
	}

	res.Paused, err = r.Paused()
	if err != nil {
		return nil, fmt.Errorf("get pause flag: %w", err)
	}

	nSpots, err := r.SpotCount()
	if err != nil {
		return nil, fmt.Errorf("get spot count: %w", err)
	}

	res.Spots = make([]spotEntry, 0, nSpots)

	for id := int64(1); id <= nSpots; id++ {
		s, err := r.GetSpot(id)
		if err != nil {
			return nil, fmt.Errorf("get spot #%d: %w", id, err)
		}

		e := spotEntry{
			ID:              s.ID,
			Location:        s.Location,
			HourlyRate:      s.HourlyRate,
			Active:          s.Active,
			Occupied:        s.Occupied,
			ReservedUntil:   s.ReservedUntil,
			TotalEarnings:   s.TotalEarnings,
			OccupationCount: s.OccupationCount,
		}
		if s.Occupied {
			e.Occupant = address.Uint160ToString(s.Occupant)
		}

		res.Spots = append(res.Spots, e)
	}

	nReservations, err := r.ReservationCount()
	if err != nil {
		return nil, fmt.Errorf("get reservation count: %w", err)
	}

	res.Reservations = make([]reservationEntry, 0, nReservations)

	for id := int64(1); id <= nReservations; id++ {
		v, err := r.GetReservation(id)
		if err != nil {
			return nil, fmt.Errorf("get reservation #%d: %w", id, err)
		}

		res.Reservations = append(res.Reservations, reservationEntry{
			ID:          v.ID,
			Requester:   address.Uint160ToString(v.Requester),
			SpotID:      v.SpotID,
			Start:       v.Start,
			End:         v.End,
			HourlyRate:  v.HourlyRate,
			TotalCost:   v.TotalCost,
			PaidAmount:  v.PaidAmount,
			Status:      v.Status.String(),
			ActualStart: v.ActualStart,
			ActualEnd:   v.ActualEnd,
		})
	}

	return res, nil
}

// collectOracle dumps the oracle state. Latest readings are collected for the
// given spots only since the contract does not keep a spot registry.
func collectOracle(addr util.Uint160, r oracleReader, spots []int64) (*oracleSnapshot, error) {
	var (
		res = &oracleSnapshot{Address: address.Uint160ToString(addr)}
		err error
	)

	owner, err := r.Owner()
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}
	res.Owner = address.Uint160ToString(owner)

	res.Paused, err = r.Paused()
	if err != nil {
		return nil, fmt.Errorf("get pause flag: %w", err)
	}

	nodes, err := r.ListNodes(oracle.DefaultBatch)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}

	res.Nodes = make([]nodeEntry, 0, len(nodes))

	for _, n := range nodes {
		res.Nodes = append(res.Nodes, nodeEntry{
			Address:      address.Uint160ToString(n.Address),
			Label:        n.Label,
			Active:       n.Active,
			Reputation:   n.Reputation,
			TotalUpdates: n.TotalUpdates,
			LastUpdate:   n.LastUpdate,
		})
	}

	res.Readings = make([]readingEntry, 0, len(spots))

	for _, id := range spots {
		size, err := r.HistorySize(id)
		if err != nil {
			return nil, fmt.Errorf("get history size of spot #%d: %w", id, err)
		}

		if size == 0 {
			continue
		}

		v, err := r.GetLatestReading(id)
		if err != nil {
			return nil, fmt.Errorf("get latest reading of spot #%d: %w", id, err)
		}

		res.Readings = append(res.Readings, readingEntry{
			SpotID:     v.SpotID,
			Occupied:   v.Occupied,
			Confidence: v.Confidence,
			Timestamp:  v.Timestamp,
			SensorType: v.SensorType,
			Hash:       hex.EncodeToString(v.Hash),
			Reporter:   address.Uint160ToString(v.Reporter),
			History:    size,
		})
	}

	return res, nil
}

func storageCollector(dst *[]storageEntry) func(key, value []byte) error {
	return func(key, value []byte) error {
		*dst = append(*dst, storageEntry{
			Key:   hex.EncodeToString(key),
			Value: hex.EncodeToString(value),
		})
		return nil
	}
}
