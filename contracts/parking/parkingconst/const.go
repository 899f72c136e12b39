// Package parkingconst contains constants shared by the Parking contract and
// its off-chain clients.
package parkingconst

// Status is an enumeration for reservation states.
type Status int

// Reservation states. Completed, Cancelled and Expired are terminal.
const (
	// Active stands for a paid reservation which is not settled yet. It
	// may or may not be started.
	Active Status = iota

	// Completed stands for a reservation settled after the vehicle left.
	Completed

	// Cancelled stands for a reservation cancelled by its requester before
	// the start.
	Cancelled

	// Expired stands for a reservation which was never started and whose
	// window has passed.
	Expired
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

const (
	// MinDuration is the shortest reservation in seconds.
	MinDuration = 3600
	// MaxDuration is the longest reservation in seconds.
	MaxDuration = 24 * 3600

	// SecondsPerHour converts hourly rates into per-second prices.
	SecondsPerHour = 3600

	// MaxFeePercent bounds the platform fee.
	MaxFeePercent = 20

	// CancellationPenaltyPercent is the part of the escrow kept by the
	// platform on cancellation and expiration.
	CancellationPenaltyPercent = 5
)
