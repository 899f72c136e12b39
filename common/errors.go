package common

// Failure classes. Every panic message thrown by the parking and oracle
// contracts starts with one of these, so callers can classify a FAULT by
// its exception prefix.
const (
	// ErrAuthorization is the class of failures where the caller is not the
	// contract owner, not an authorized reporter or not the reservation's
	// requester.
	ErrAuthorization = "authorization error"
	// ErrValidation is the class of malformed or out-of-range input.
	ErrValidation = "validation error"
	// ErrState is the class of operations invalid for the current state of
	// the entity they address.
	ErrState = "state error"
	// ErrPolicy is the class of domain policy breaches which are not pure
	// input errors.
	ErrPolicy = "policy violation"
)

// Authorization failures.
const (
	ErrNotOwner      = ErrAuthorization + ": caller is not the owner"
	ErrNotReporter   = ErrAuthorization + ": caller is not the trusted reporter"
	ErrNotRequester  = ErrAuthorization + ": caller is not the requester"
	ErrNotActiveNode = ErrAuthorization + ": caller is not an active oracle node"
	ErrWitnessFailed = ErrAuthorization + ": witness check failed"
	ErrCommitteeOnly = ErrAuthorization + ": only committee can update contract"
)

// Validation failures.
const (
	ErrZeroRate            = ErrValidation + ": hourly rate must be positive"
	ErrEmptyLocation       = ErrValidation + ": empty location"
	ErrPastStart           = ErrValidation + ": start is in the past"
	ErrEndBeforeStart      = ErrValidation + ": end must be after start"
	ErrDurationOutOfRange  = ErrValidation + ": duration out of range"
	ErrInsufficientPayment = ErrValidation + ": insufficient payment"
	ErrInvalidSpotID       = ErrValidation + ": invalid spot id"
	ErrEmptySensorType     = ErrValidation + ": empty sensor type"
	ErrEmptyHash           = ErrValidation + ": empty content hash"
	ErrHashTooLong         = ErrValidation + ": content hash is too long"
	ErrReputationRange     = ErrValidation + ": reputation out of range"
	ErrEmptyLabel          = ErrValidation + ": empty label"
	ErrInvalidAddress      = ErrValidation + ": invalid address"
)

// State failures.
const (
	ErrSpotNotFound        = ErrState + ": spot not found"
	ErrSpotInactive        = ErrState + ": spot is not active"
	ErrSpotOccupied        = ErrState + ": spot is occupied"
	ErrOverlap             = ErrState + ": reservation overlaps"
	ErrReservationNotFound = ErrState + ": reservation not found"
	ErrNotActive           = ErrState + ": reservation is not active"
	ErrAlreadyStarted      = ErrState + ": reservation already started"
	ErrNotStarted          = ErrState + ": reservation not started"
	ErrNotEnded            = ErrState + ": reservation window has not ended"
	ErrPaused              = ErrState + ": contract is paused"
	ErrNotPaused           = ErrState + ": contract is not paused"
	ErrNothingToWithdraw   = ErrState + ": nothing to withdraw"
	ErrNodeAlreadyActive   = ErrState + ": node is already active"
	ErrNodeNotFound        = ErrState + ": node not found"
	ErrNodeNotActive       = ErrState + ": node is not active"
	ErrReadingNotFound     = ErrState + ": no reading for spot"
)

// Policy failures.
const (
	ErrFeeOutOfRange  = ErrPolicy + ": fee percent out of range"
	ErrCooldown       = ErrPolicy + ": cooldown not elapsed"
	ErrLowConfidence  = ErrPolicy + ": low confidence"
	ErrReplay         = ErrPolicy + ": content hash already processed"
	ErrReentrantCall  = ErrPolicy + ": reentrant call"
	ErrUnexpectedGAS  = ErrPolicy + ": unsolicited payment"
	ErrGASOnly        = ErrPolicy + ": only GAS is accepted"
	ErrTransferFailed = ErrPolicy + ": GAS transfer failed"
)
