// Package oracleconst contains trust and validation parameters of the Oracle
// contract.
package oracleconst

// Reputation bounds and steps.
const (
	InitialReputation = 500
	MaxReputation     = 1000
	// MinActiveReputation is the lowest reputation an active node may have.
	// A node dropping below it is deactivated.
	MinActiveReputation = 100

	RewardStep  = 1
	PenaltyStep = 10
)

// Reading validation parameters.
const (
	// Cooldown is the minimal number of seconds between two accepted
	// readings for the same spot.
	Cooldown = 30

	MinConfidence = 70
	MaxConfidence = 100
	// FlipConfidence is the minimal confidence of a reading which changes
	// the occupancy state of a spot.
	FlipConfidence = 80

	// HistoryCap is the number of readings kept per spot.
	HistoryCap = 100

	// MaxHashLength is the maximal content hash length in bytes. Processed
	// hashes are stored under a one-byte prefix and storage keys are limited
	// to 64 bytes.
	MaxHashLength = 63
)

// FlipRejectReason is the reason of DataValidationFailed notification
// thrown for a state change reported with insufficient confidence.
const FlipRejectReason = "insufficient confidence for state change"
