package parking

import (
	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/common"
	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/contracts/parking/parkingconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Spot is a parking space registered by the owner.
	Spot struct {
		ID         int
		Location   string
		HourlyRate int
		Active     bool
		Occupied   bool
		// Occupant is the requester of the started reservation, empty
		// when the spot is free.
		Occupant interop.Hash160
		// ReservedUntil is the latest committed end of a reservation.
		// New reservations can't start before it.
		ReservedUntil   int
		TotalEarnings   int
		OccupationCount int
	}

	// Reservation is a paid claim of a spot for a time window.
	Reservation struct {
		ID        int
		Requester interop.Hash160
		SpotID    int
		Start     int
		End       int
		// HourlyRate is the spot rate at the moment of reservation.
		HourlyRate int
		TotalCost  int
		// PaidAmount is the GAS amount held in escrow.
		PaidAmount  int
		Status      parkingconst.Status
		ActualStart int
		ActualEnd   int
	}
)

const (
	ownerKey          = "owner"
	reporterKey       = "reporter"
	feePercentKey     = "feePercent"
	pausedKey         = "paused"
	platformKey       = "platformEarnings"
	settlementFeesKey = "settlementFees"
	penaltiesKey      = "penalties"
	spotCounterKey    = "spotCounter"
	resCounterKey     = "reservationCounter"

	spotPrefix            = 'S'
	reservationPrefix     = 'R'
	userReservationPrefix = 'u'
	spotReservationPrefix = 'x'
	// spot ID | reservation ID -> end of the active reservation.
	activeReservationPrefix = 'a'
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner      interop.Hash160
		reporter   interop.Hash160
		feePercent int
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}

	if len(args.reporter) != interop.Hash160Len {
		panic("incorrect length of reporter script hash")
	}

	if args.feePercent < 0 || args.feePercent > parkingconst.MaxFeePercent {
		panic(common.ErrFeeOutOfRange)
	}

	storage.Put(ctx, ownerKey, args.owner)
	storage.Put(ctx, reporterKey, args.reporter)
	storage.Put(ctx, feePercentKey, args.feePercent)

	runtime.Log("parking contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic(common.ErrCommitteeOnly)
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("parking contract updated")
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// The contract accepts GAS only as the escrow of Reserve, any other payment
// fails.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	if !common.IsGASCaller() {
		panic(common.ErrGASOnly)
	}

	ctx := storage.GetReadOnlyContext()
	if !common.GuardHeld(ctx) {
		panic(common.ErrUnexpectedGAS)
	}
}

// Owner returns the account allowed to manage spots and platform settings.
func Owner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}

// Reporter returns the account allowed to start, complete and expire
// reservations.
func Reporter() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, reporterKey).(interop.Hash160)
}

// FeePercent returns the platform share of the settled cost in percents.
func FeePercent() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, feePercentKey)
}

// Paused returns true if reservation operations are suspended.
func Paused() bool {
	ctx := storage.GetReadOnlyContext()
	return common.GetBool(ctx, pausedKey)
}

// PlatformEarnings returns the GAS amount the owner can withdraw.
func PlatformEarnings() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, platformKey)
}

// SettlementFees returns the total of fees taken on completed reservations.
func SettlementFees() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, settlementFeesKey)
}

// Penalties returns the total of penalties taken on cancelled and expired
// reservations.
func Penalties() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, penaltiesKey)
}

// SetFeePercent changes the platform fee. Fee must be within [0, 20].
func SetFeePercent(percent int) {
	ctx := storage.GetContext()
	checkOwner(ctx)

	if percent < 0 || percent > parkingconst.MaxFeePercent {
		panic(common.ErrFeeOutOfRange)
	}

	old := common.GetInt(ctx, feePercentKey)
	storage.Put(ctx, feePercentKey, percent)

	runtime.Notify("FeePercentChanged", old, percent)
}

// SetReporter replaces the trusted reporting account.
func SetReporter(reporter interop.Hash160) {
	ctx := storage.GetContext()
	checkOwner(ctx)
	common.CheckAddress(reporter)

	storage.Put(ctx, reporterKey, reporter)

	runtime.Notify("ReporterChanged", reporter)
}

// Pause suspends all reservation operations.
func Pause() {
	ctx := storage.GetContext()
	checkOwner(ctx)

	if common.GetBool(ctx, pausedKey) {
		panic(common.ErrPaused)
	}

	storage.Put(ctx, pausedKey, true)
	runtime.Notify("Paused")
}

// Unpause resumes reservation operations.
func Unpause() {
	ctx := storage.GetContext()
	checkOwner(ctx)

	if !common.GetBool(ctx, pausedKey) {
		panic(common.ErrNotPaused)
	}

	storage.Delete(ctx, pausedKey)
	runtime.Notify("Unpaused")
}

// WithdrawPlatformEarnings transfers all accrued platform GAS to the given
// account. The balance is zeroed before the transfer.
func WithdrawPlatformEarnings(to interop.Hash160) {
	ctx := storage.GetContext()
	common.EnterGuard(ctx)
	checkOwner(ctx)
	common.CheckAddress(to)

	amount := common.GetInt(ctx, platformKey)
	if amount == 0 {
		panic(common.ErrNothingToWithdraw)
	}

	storage.Put(ctx, platformKey, 0)
	runtime.Notify("PlatformWithdrawal", to, amount)

	common.SendGAS(to, amount)
	common.ExitGuard(ctx)
}

// CreateSpot registers a new active spot and returns its ID. IDs are
// assigned sequentially starting from 1.
func CreateSpot(location string, hourlyRate int) int {
	ctx := storage.GetContext()
	checkOwner(ctx)

	if hourlyRate <= 0 {
		panic(common.ErrZeroRate)
	}

	if len(location) == 0 {
		panic(common.ErrEmptyLocation)
	}

	id := common.NextID(ctx, spotCounterKey)
	putSpot(ctx, Spot{
		ID:         id,
		Location:   location,
		HourlyRate: hourlyRate,
		Active:     true,
	})

	runtime.Notify("SpotCreated", id, location, hourlyRate)

	return id
}

// SetSpotActive activates or deactivates the spot. Inactive spots can't be
// reserved, existing reservations are not affected.
func SetSpotActive(spotID int, active bool) {
	ctx := storage.GetContext()
	checkOwner(ctx)

	spot := mustGetSpot(ctx, spotID)
	if spot.Active == active {
		return
	}

	spot.Active = active
	putSpot(ctx, spot)

	runtime.Notify("SpotStatusChanged", spotID, active)
}

// SetHourlyRate changes the price of the spot for new reservations.
func SetHourlyRate(spotID int, hourlyRate int) {
	ctx := storage.GetContext()
	checkOwner(ctx)

	if hourlyRate <= 0 {
		panic(common.ErrZeroRate)
	}

	spot := mustGetSpot(ctx, spotID)
	spot.HourlyRate = hourlyRate
	putSpot(ctx, spot)
}

// GetSpot returns the spot with the given ID.
func GetSpot(spotID int) Spot {
	ctx := storage.GetReadOnlyContext()
	return mustGetSpot(ctx, spotID)
}

// SpotCount returns the number of registered spots.
func SpotCount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, spotCounterKey)
}

// ListActiveSpots returns all active spots.
func ListActiveSpots() []Spot {
	ctx := storage.GetReadOnlyContext()

	result := []Spot{}

	it := storage.Find(ctx, []byte{spotPrefix}, storage.ValuesOnly|storage.DeserializeValues)
	for iterator.Next(it) {
		spot := iterator.Value(it).(Spot)
		if spot.Active {
			result = append(result, spot)
		}
	}

	return result
}

// IsSpotAvailable returns true if Reserve with the same window would pass all
// spot and time checks at the current block.
func IsSpotAvailable(spotID int, start int, end int) bool {
	ctx := storage.GetReadOnlyContext()

	spot, ok := getSpot(ctx, spotID)
	if !ok || !spot.Active || spot.Occupied {
		return false
	}

	duration := end - start
	return start >= common.Now() &&
		duration >= parkingconst.MinDuration &&
		duration <= parkingconst.MaxDuration &&
		start >= spot.ReservedUntil
}

// CalculateCost returns the price of the spot for the given window.
func CalculateCost(spotID int, start int, end int) int {
	ctx := storage.GetReadOnlyContext()

	spot := mustGetSpot(ctx, spotID)
	if end <= start {
		panic(common.ErrEndBeforeStart)
	}

	return cost(end-start, spot.HourlyRate)
}

// Reserve books the spot for [start, end) and returns the reservation ID.
//
// The requester must witness the transaction. Payment GAS is transferred
// from the requester to the contract, the part exceeding the reservation cost
// is returned back in the same transaction.
func Reserve(requester interop.Hash160, spotID int, start int, end int, payment int) int {
	ctx := storage.GetContext()
	common.EnterGuard(ctx)
	checkNotPaused(ctx)
	common.CheckWitness(requester)

	spot := mustGetSpot(ctx, spotID)
	if !spot.Active {
		panic(common.ErrSpotInactive)
	}

	if spot.Occupied {
		panic(common.ErrSpotOccupied)
	}

	if start < common.Now() {
		panic(common.ErrPastStart)
	}

	if end <= start {
		panic(common.ErrEndBeforeStart)
	}

	duration := end - start
	if duration < parkingconst.MinDuration || duration > parkingconst.MaxDuration {
		panic(common.ErrDurationOutOfRange)
	}

	if start < spot.ReservedUntil {
		panic(common.ErrOverlap)
	}

	totalCost := cost(duration, spot.HourlyRate)
	if payment < totalCost {
		panic(common.ErrInsufficientPayment)
	}

	common.PullGAS(requester, payment)

	id := common.NextID(ctx, resCounterKey)
	putReservation(ctx, Reservation{
		ID:         id,
		Requester:  requester,
		SpotID:     spotID,
		Start:      start,
		End:        end,
		HourlyRate: spot.HourlyRate,
		TotalCost:  totalCost,
		PaidAmount: totalCost,
		Status:     parkingconst.Active,
	})

	userKey := append([]byte{userReservationPrefix}, requester...)
	storage.Put(ctx, append(userKey, common.FixedID(id)...), id)
	storage.Put(ctx, spotReservationKey(spotID, id), id)
	storage.Put(ctx, activeReservationKey(spotID, id), end)

	spot.ReservedUntil = end
	putSpot(ctx, spot)

	runtime.Notify("ReservationCreated", id, requester, spotID, start, end, totalCost)

	common.SendGAS(requester, payment-totalCost)
	common.ExitGuard(ctx)

	return id
}

// GetReservation returns the reservation with the given ID.
func GetReservation(id int) Reservation {
	ctx := storage.GetReadOnlyContext()
	return mustGetReservation(ctx, id)
}

// ReservationCount returns the number of reservations ever made.
func ReservationCount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, resCounterKey)
}

// GetUserReservations returns IDs of all reservations made by the account.
func GetUserReservations(user interop.Hash160) []int {
	ctx := storage.GetReadOnlyContext()
	return collectIDs(ctx, append([]byte{userReservationPrefix}, user...))
}

// GetSpotReservations returns IDs of all reservations of the spot.
func GetSpotReservations(spotID int) []int {
	ctx := storage.GetReadOnlyContext()
	return collectIDs(ctx, common.IDKey(spotReservationPrefix, spotID))
}

// StartReservation marks the vehicle arrival. It can be invoked only by the
// reporter.
func StartReservation(id int) {
	ctx := storage.GetContext()
	checkNotPaused(ctx)
	checkReporter(ctx)

	res := mustGetReservation(ctx, id)
	if res.Status != parkingconst.Active {
		panic(common.ErrNotActive)
	}

	if res.ActualStart != 0 {
		panic(common.ErrAlreadyStarted)
	}

	spot := mustGetSpot(ctx, res.SpotID)
	if spot.Occupied {
		panic(common.ErrSpotOccupied)
	}

	res.ActualStart = common.Now()
	putReservation(ctx, res)

	spot.Occupied = true
	spot.Occupant = res.Requester
	spot.OccupationCount += 1
	putSpot(ctx, spot)

	runtime.Notify("ReservationStarted", id, res.ActualStart)
	runtime.Notify("SpotOccupancyChanged", res.SpotID, true, res.Requester)
}

// CompleteReservation settles the started reservation. It can be invoked
// only by the reporter.
//
// The actual cost is charged for the real stay and can't exceed the escrowed
// amount. The fee goes to the platform, the rest of the actual cost goes to
// the spot, the rest of the escrow is returned to the requester.
func CompleteReservation(id int) {
	ctx := storage.GetContext()
	common.EnterGuard(ctx)
	checkNotPaused(ctx)
	checkReporter(ctx)

	res := mustGetReservation(ctx, id)
	if res.Status != parkingconst.Active {
		panic(common.ErrNotActive)
	}

	if res.ActualStart == 0 {
		panic(common.ErrNotStarted)
	}

	res.ActualEnd = common.Now()

	actualCost := cost(res.ActualEnd-res.ActualStart, res.HourlyRate)
	if actualCost > res.TotalCost {
		actualCost = res.TotalCost
	}

	fee := actualCost * common.GetInt(ctx, feePercentKey) / 100
	refund := res.TotalCost - actualCost

	spot := mustGetSpot(ctx, res.SpotID)
	spot.TotalEarnings += actualCost - fee
	spot.Occupied = false
	spot.Occupant = nil
	putSpot(ctx, spot)

	accrue(ctx, platformKey, fee)
	accrue(ctx, settlementFeesKey, fee)

	closeReservation(ctx, res, parkingconst.Completed)

	runtime.Notify("ReservationCompleted", id, res.ActualEnd, actualCost, refund)
	runtime.Notify("SpotOccupancyChanged", res.SpotID, false, res.Requester)

	common.SendGAS(res.Requester, refund)
	common.ExitGuard(ctx)
}

// ExpireReservation closes the reservation which was never started and
// whose window has passed. The cancellation penalty is kept, the rest is
// returned to the requester. It can be invoked only by the reporter.
func ExpireReservation(id int) {
	ctx := storage.GetContext()
	common.EnterGuard(ctx)
	checkNotPaused(ctx)
	checkReporter(ctx)

	res := mustGetReservation(ctx, id)
	if res.Status != parkingconst.Active {
		panic(common.ErrNotActive)
	}

	if res.ActualStart != 0 {
		panic(common.ErrAlreadyStarted)
	}

	if common.Now() < res.End {
		panic(common.ErrNotEnded)
	}

	refund := chargePenalty(ctx, res)

	closeReservation(ctx, res, parkingconst.Expired)

	runtime.Notify("ReservationExpired", id, refund)

	common.SendGAS(res.Requester, refund)
	common.ExitGuard(ctx)
}

// CancelReservation cancels the reservation which is not started yet. It
// can be invoked only by the requester. The cancellation penalty is kept, the
// rest is returned to the requester.
func CancelReservation(id int) {
	ctx := storage.GetContext()
	common.EnterGuard(ctx)
	checkNotPaused(ctx)

	res := mustGetReservation(ctx, id)
	common.CheckRequesterWitness(res.Requester)

	if res.Status != parkingconst.Active {
		panic(common.ErrNotActive)
	}

	if res.ActualStart != 0 {
		panic(common.ErrAlreadyStarted)
	}

	refund := chargePenalty(ctx, res)

	closeReservation(ctx, res, parkingconst.Cancelled)

	spot := mustGetSpot(ctx, res.SpotID)
	spot.ReservedUntil = activeHorizon(ctx, res.SpotID)
	putSpot(ctx, spot)

	runtime.Notify("ReservationCancelled", id, refund)

	common.SendGAS(res.Requester, refund)
	common.ExitGuard(ctx)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkOwner(ctx storage.Context) {
	common.CheckOwnerWitness(storage.Get(ctx, ownerKey).(interop.Hash160))
}

func checkReporter(ctx storage.Context) {
	common.CheckReporterWitness(storage.Get(ctx, reporterKey).(interop.Hash160))
}

func checkNotPaused(ctx storage.Context) {
	if common.GetBool(ctx, pausedKey) {
		panic(common.ErrPaused)
	}
}

// cost returns the price of duration seconds, truncated.
func cost(duration, hourlyRate int) int {
	return duration * hourlyRate / parkingconst.SecondsPerHour
}

// chargePenalty accrues the cancellation penalty to the platform and returns
// the refundable rest of the escrow.
func chargePenalty(ctx storage.Context, res Reservation) int {
	penalty := res.TotalCost * parkingconst.CancellationPenaltyPercent / 100

	accrue(ctx, platformKey, penalty)
	accrue(ctx, penaltiesKey, penalty)

	return res.TotalCost - penalty
}

func accrue(ctx storage.Context, key string, amount int) {
	storage.Put(ctx, key, common.GetInt(ctx, key)+amount)
}

func closeReservation(ctx storage.Context, res Reservation, status parkingconst.Status) {
	res.Status = status
	putReservation(ctx, res)
	storage.Delete(ctx, activeReservationKey(res.SpotID, res.ID))
}

// activeHorizon returns the latest end among active reservations of the spot,
// 0 if there are none.
func activeHorizon(ctx storage.Context, spotID int) int {
	horizon := 0

	it := storage.Find(ctx, common.IDKey(activeReservationPrefix, spotID), storage.ValuesOnly)
	for iterator.Next(it) {
		end := iterator.Value(it).(int)
		if end > horizon {
			horizon = end
		}
	}

	return horizon
}

func collectIDs(ctx storage.Context, prefix []byte) []int {
	result := []int{}

	it := storage.Find(ctx, prefix, storage.ValuesOnly)
	for iterator.Next(it) {
		result = append(result, iterator.Value(it).(int))
	}

	return result
}

func spotReservationKey(spotID, id int) []byte {
	return append(common.IDKey(spotReservationPrefix, spotID), common.FixedID(id)...)
}

func activeReservationKey(spotID, id int) []byte {
	return append(common.IDKey(activeReservationPrefix, spotID), common.FixedID(id)...)
}

func getSpot(ctx storage.Context, id int) (Spot, bool) {
	data := storage.Get(ctx, common.IDKey(spotPrefix, id))
	if data == nil {
		return Spot{}, false
	}

	return std.Deserialize(data.([]byte)).(Spot), true
}

func mustGetSpot(ctx storage.Context, id int) Spot {
	spot, ok := getSpot(ctx, id)
	if !ok {
		panic(common.ErrSpotNotFound)
	}

	return spot
}

func putSpot(ctx storage.Context, spot Spot) {
	common.SetSerialized(ctx, common.IDKey(spotPrefix, spot.ID), spot)
}

func mustGetReservation(ctx storage.Context, id int) Reservation {
	data := storage.Get(ctx, common.IDKey(reservationPrefix, id))
	if data == nil {
		panic(common.ErrReservationNotFound)
	}

	return std.Deserialize(data.([]byte)).(Reservation)
}

func putReservation(ctx storage.Context, res Reservation) {
	common.SetSerialized(ctx, common.IDKey(reservationPrefix, res.ID), res)
}
