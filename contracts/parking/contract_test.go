package parking_test

import (
	"encoding/json"
	"testing"

	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/common"
	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/contracts/parking/parkingconst"
	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/internal/chaintest"
	parkingrpc "github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/rpc/parking"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	hourlyRate = int64(100)
	hour       = int64(3600)
)

type parkingEnv struct {
	e        *neotest.Executor
	hash     util.Uint160
	owner    *neotest.ContractInvoker
	reporter *neotest.ContractInvoker
}

func newParking(t *testing.T, feePercent int64) *parkingEnv {
	e := chaintest.NewExecutor(t)
	reporter := e.NewAccount(t)
	h := chaintest.DeployParking(t, e, reporter.ScriptHash(), feePercent)

	return &parkingEnv{
		e:        e,
		hash:     h,
		owner:    e.CommitteeInvoker(h),
		reporter: e.NewInvoker(h, reporter),
	}
}

func (p *parkingEnv) newUser(t *testing.T) (*neotest.ContractInvoker, util.Uint160) {
	acc := p.e.NewAccount(t)
	return p.e.NewInvoker(p.hash, acc), acc.ScriptHash()
}

func (p *parkingEnv) createSpot(t *testing.T, location string, rate int64) int64 {
	id := p.intCall(t, "spotCount") + 1
	p.owner.Invoke(t, id, "createSpot", location, rate)
	return id
}

func (p *parkingEnv) reserve(t *testing.T, c *neotest.ContractInvoker, requester util.Uint160,
	spotID, start, end, payment int64) (int64, *state.AppExecResult) {
	id := p.intCall(t, "reservationCount") + 1
	h := c.Invoke(t, id, "reserve", requester, spotID, start, end, payment)
	return id, p.e.CheckHalt(t, h)
}

func (p *parkingEnv) intCall(t *testing.T, method string, args ...any) int64 {
	n, err := chaintest.Call(t, p.owner, method, args...).TryInteger()
	require.NoError(t, err)
	return n.Int64()
}

func (p *parkingEnv) spot(t *testing.T, id int64) *parkingrpc.Spot {
	s := new(parkingrpc.Spot)
	require.NoError(t, s.FromStackItem(chaintest.Call(t, p.owner, "getSpot", id)))
	return s
}

func (p *parkingEnv) reservation(t *testing.T, id int64) *parkingrpc.Reservation {
	r := new(parkingrpc.Reservation)
	require.NoError(t, r.FromStackItem(chaintest.Call(t, p.owner, "getReservation", id)))
	return r
}

func (p *parkingEnv) balance() int64 {
	return chaintest.GASBalance(p.e, p.hash)
}

func TestParking_Deploy(t *testing.T) {
	p := newParking(t, 10)

	p.owner.Invoke(t, stackitem.NewBuffer(p.e.CommitteeHash.BytesBE()), "owner")
	p.owner.Invoke(t, 10, "feePercent")
	p.owner.Invoke(t, false, "paused")
	p.owner.Invoke(t, 0, "platformEarnings")
	p.owner.Invoke(t, 0, "spotCount")
	p.owner.Invoke(t, 0, "reservationCount")
	p.owner.Invoke(t, common.Version, "version")

	t.Run("fee out of range", func(t *testing.T) {
		e := chaintest.NewExecutor(t)
		c := chaintest.CompileContract(t, e.CommitteeHash, "parking")
		e.DeployContractCheckFAULT(t, c, []any{e.CommitteeHash, e.CommitteeHash, int64(21)}, common.ErrFeeOutOfRange)
	})
}

func TestParking_CreateSpot(t *testing.T) {
	p := newParking(t, 10)
	user, _ := p.newUser(t)

	user.InvokeFail(t, common.ErrNotOwner, "createSpot", "A-1", hourlyRate)
	p.owner.InvokeFail(t, common.ErrZeroRate, "createSpot", "A-1", int64(0))
	p.owner.InvokeFail(t, common.ErrZeroRate, "createSpot", "A-1", int64(-5))
	p.owner.InvokeFail(t, common.ErrEmptyLocation, "createSpot", "", hourlyRate)

	h := p.owner.Invoke(t, 1, "createSpot", "A-1", hourlyRate)
	events, err := parkingrpc.SpotCreatedEventsFromApplicationLog(chaintest.ApplicationLog(p.e.CheckHalt(t, h)))
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, parkingrpc.SpotCreatedEvent{SpotID: 1, Location: "A-1", HourlyRate: hourlyRate}, *events[0])

	p.owner.Invoke(t, 2, "createSpot", "A-2", int64(250))
	p.owner.Invoke(t, 2, "spotCount")

	s := p.spot(t, 2)
	require.Equal(t, parkingrpc.Spot{ID: 2, Location: "A-2", HourlyRate: 250, Active: true}, *s)

	_, err = p.owner.TestInvoke(t, "getSpot", int64(3))
	require.ErrorContains(t, err, common.ErrSpotNotFound)

	t.Run("rate and status", func(t *testing.T) {
		user.InvokeFail(t, common.ErrNotOwner, "setHourlyRate", int64(1), int64(300))
		p.owner.InvokeFail(t, common.ErrZeroRate, "setHourlyRate", int64(1), int64(0))
		p.owner.InvokeFail(t, common.ErrSpotNotFound, "setHourlyRate", int64(7), int64(300))
		p.owner.Invoke(t, stackitem.Null{}, "setHourlyRate", int64(1), int64(300))
		require.EqualValues(t, 300, p.spot(t, 1).HourlyRate)

		user.InvokeFail(t, common.ErrNotOwner, "setSpotActive", int64(1), false)
		h := p.owner.Invoke(t, stackitem.Null{}, "setSpotActive", int64(1), false)
		events, err := parkingrpc.SpotStatusChangedEventsFromApplicationLog(chaintest.ApplicationLog(p.e.CheckHalt(t, h)))
		require.NoError(t, err)
		require.Equal(t, []*parkingrpc.SpotStatusChangedEvent{{SpotID: 1, Active: false}}, events)
		require.False(t, p.spot(t, 1).Active)

		h = p.owner.Invoke(t, stackitem.Null{}, "setSpotActive", int64(1), false)
		require.Empty(t, chaintest.Notifications(p.e.CheckHalt(t, h), "SpotStatusChanged"))
	})
}

func TestParking_Reserve(t *testing.T) {
	p := newParking(t, 10)
	user, userHash := p.newUser(t)
	spotID := p.createSpot(t, "B-7", hourlyRate)

	now := chaintest.Now(t, p.e)
	start, end := now+100, now+100+hour

	p.owner.Invoke(t, hourlyRate, "calculateCost", spotID, start, end)
	p.owner.Invoke(t, true, "isSpotAvailable", spotID, start, end)

	id, aer := p.reserve(t, user, userHash, spotID, start, end, 2*hourlyRate)
	require.EqualValues(t, 1, id)

	events, err := parkingrpc.ReservationCreatedEventsFromApplicationLog(chaintest.ApplicationLog(aer))
	require.NoError(t, err)
	require.Equal(t, []*parkingrpc.ReservationCreatedEvent{{
		ReservationID: id,
		Requester:     userHash,
		SpotID:        spotID,
		Start:         start,
		End:           end,
		Cost:          hourlyRate,
	}}, events)

	require.Equal(t, map[util.Uint160]int64{userHash: hourlyRate},
		chaintest.GASTransfers(t, p.e, aer, p.hash))
	require.EqualValues(t, hourlyRate, p.balance())

	r := p.reservation(t, id)
	require.Equal(t, parkingrpc.Reservation{
		ID:         id,
		Requester:  userHash,
		SpotID:     spotID,
		Start:      start,
		End:        end,
		HourlyRate: hourlyRate,
		TotalCost:  hourlyRate,
		PaidAmount: hourlyRate,
		Status:     parkingconst.Active,
	}, *r)

	require.Equal(t, end, p.spot(t, spotID).ReservedUntil)
	p.owner.Invoke(t, false, "isSpotAvailable", spotID, start, end)
	p.owner.Invoke(t, true, "isSpotAvailable", spotID, end, end+hour)

	t.Run("exact payment has no refund", func(t *testing.T) {
		_, aer := p.reserve(t, user, userHash, spotID, end, end+hour, hourlyRate)
		require.Empty(t, chaintest.GASTransfers(t, p.e, aer, p.hash))
		require.EqualValues(t, 2*hourlyRate, p.balance())
	})

	t.Run("rate change doesn't affect reservation", func(t *testing.T) {
		p.owner.Invoke(t, stackitem.Null{}, "setHourlyRate", spotID, int64(1000))
		require.Equal(t, hourlyRate, p.reservation(t, id).HourlyRate)
	})
}

func TestParking_CostTruncation(t *testing.T) {
	p := newParking(t, 10)
	spotID := p.createSpot(t, "C-1", 7)

	p.owner.Invoke(t, 10, "calculateCost", spotID, int64(0), int64(5400))
	p.owner.Invoke(t, 0, "calculateCost", spotID, int64(0), int64(500))
	p.owner.InvokeFail(t, common.ErrEndBeforeStart, "calculateCost", spotID, int64(10), int64(10))
	p.owner.InvokeFail(t, common.ErrSpotNotFound, "calculateCost", int64(9), int64(0), int64(5400))

	user, userHash := p.newUser(t)
	now := chaintest.Now(t, p.e)
	id, _ := p.reserve(t, user, userHash, spotID, now+10, now+10+5400, 10)
	require.EqualValues(t, 10, p.reservation(t, id).TotalCost)
}

func TestParking_ReservePreconditions(t *testing.T) {
	p := newParking(t, 10)
	user, userHash := p.newUser(t)
	_, otherHash := p.newUser(t)

	spotID := p.createSpot(t, "D-1", hourlyRate)
	inactive := p.createSpot(t, "D-2", hourlyRate)
	p.owner.Invoke(t, stackitem.Null{}, "setSpotActive", inactive, false)

	now := chaintest.Now(t, p.e)
	start := now + 100

	testCases := []struct {
		name                  string
		requester             util.Uint160
		spot, start, end, pay int64
		err                   string
	}{
		{"foreign requester", otherHash, spotID, start, start + hour, hourlyRate, common.ErrWitnessFailed},
		{"missing spot", userHash, 42, start, start + hour, hourlyRate, common.ErrSpotNotFound},
		{"inactive spot", userHash, inactive, start, start + hour, hourlyRate, common.ErrSpotInactive},
		{"past start", userHash, spotID, now - 10, now - 10 + hour, hourlyRate, common.ErrPastStart},
		{"empty window", userHash, spotID, start, start, hourlyRate, common.ErrEndBeforeStart},
		{"reversed window", userHash, spotID, start, start - hour, hourlyRate, common.ErrEndBeforeStart},
		{"too short", userHash, spotID, start, start + hour - 1, hourlyRate, common.ErrDurationOutOfRange},
		{"too long", userHash, spotID, start, start + 24*hour + 1, 25 * hourlyRate, common.ErrDurationOutOfRange},
		{"underpaid", userHash, spotID, start, start + hour, hourlyRate - 1, common.ErrInsufficientPayment},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user.InvokeFail(t, tc.err, "reserve", tc.requester, tc.spot, tc.start, tc.end, tc.pay)
		})
	}

	p.owner.Invoke(t, false, "isSpotAvailable", inactive, start, start+hour)
	p.owner.Invoke(t, false, "isSpotAvailable", int64(42), start, start+hour)
	p.owner.Invoke(t, false, "isSpotAvailable", spotID, start, start+hour-1)
	p.owner.Invoke(t, true, "isSpotAvailable", spotID, start, start+24*hour)

	t.Run("overlap", func(t *testing.T) {
		_, _ = p.reserve(t, user, userHash, spotID, start, start+2*hour, 2*hourlyRate)

		user.InvokeFail(t, common.ErrOverlap, "reserve", userHash, spotID, start+hour, start+3*hour, 2*hourlyRate)
		user.InvokeFail(t, common.ErrOverlap, "reserve", userHash, spotID, start+2*hour-1, start+3*hour, 2*hourlyRate)

		// Back-to-back reservation is fine.
		_, _ = p.reserve(t, user, userHash, spotID, start+2*hour, start+3*hour, hourlyRate)
	})

	t.Run("occupied", func(t *testing.T) {
		p.reporter.Invoke(t, stackitem.Null{}, "startReservation", int64(1))
		user.InvokeFail(t, common.ErrSpotOccupied, "reserve", userHash, spotID, start+3*hour, start+4*hour, hourlyRate)
		p.owner.Invoke(t, false, "isSpotAvailable", spotID, start+3*hour, start+4*hour)
	})

	t.Run("paused", func(t *testing.T) {
		free := p.createSpot(t, "D-3", hourlyRate)
		p.owner.Invoke(t, stackitem.Null{}, "pause")
		user.InvokeFail(t, common.ErrPaused, "reserve", userHash, free, start, start+hour, hourlyRate)
		p.owner.Invoke(t, stackitem.Null{}, "unpause")
		_, _ = p.reserve(t, user, userHash, free, start, start+hour, hourlyRate)
	})
}

func TestParking_Cancel(t *testing.T) {
	p := newParking(t, 10)
	user, userHash := p.newUser(t)
	other, _ := p.newUser(t)
	spotID := p.createSpot(t, "E-1", hourlyRate)

	now := chaintest.Now(t, p.e)
	start := now + 100
	id, _ := p.reserve(t, user, userHash, spotID, start, start+hour, hourlyRate)

	other.InvokeFail(t, common.ErrNotRequester, "cancelReservation", id)
	user.InvokeFail(t, common.ErrReservationNotFound, "cancelReservation", int64(5))

	h := user.Invoke(t, stackitem.Null{}, "cancelReservation", id)
	aer := p.e.CheckHalt(t, h)

	events, err := parkingrpc.ReservationCancelledEventsFromApplicationLog(chaintest.ApplicationLog(aer))
	require.NoError(t, err)
	require.Equal(t, []*parkingrpc.ReservationRefundEvent{{ReservationID: id, Refund: 95}}, events)
	require.Equal(t, map[util.Uint160]int64{userHash: 95}, chaintest.GASTransfers(t, p.e, aer, p.hash))

	require.Equal(t, parkingconst.Cancelled, p.reservation(t, id).Status)
	require.Zero(t, p.spot(t, spotID).ReservedUntil)
	p.owner.Invoke(t, 5, "platformEarnings")
	p.owner.Invoke(t, 5, "penalties")
	require.EqualValues(t, 5, p.balance())

	user.InvokeFail(t, common.ErrNotActive, "cancelReservation", id)

	t.Run("horizon keeps other reservations", func(t *testing.T) {
		first, _ := p.reserve(t, user, userHash, spotID, start, start+hour, hourlyRate)
		second, _ := p.reserve(t, user, userHash, spotID, start+hour, start+2*hour, hourlyRate)

		user.Invoke(t, stackitem.Null{}, "cancelReservation", second)
		require.Equal(t, start+hour, p.spot(t, spotID).ReservedUntil)

		user.Invoke(t, stackitem.Null{}, "cancelReservation", first)
		require.Zero(t, p.spot(t, spotID).ReservedUntil)
	})

	t.Run("closed reservations release horizon", func(t *testing.T) {
		spotID := p.createSpot(t, "E-2", hourlyRate)

		now := chaintest.Now(t, p.e)
		done, _ := p.reserve(t, user, userHash, spotID, now+10, now+10+hour, hourlyRate)
		p.e.CheckHalt(t, chaintest.InvokeAt(t, p.reporter, now+20, "startReservation", done))
		p.e.CheckHalt(t, chaintest.InvokeAt(t, p.reporter, now+30, "completeReservation", done))
		require.Equal(t, now+10+hour, p.spot(t, spotID).ReservedUntil)

		next, _ := p.reserve(t, user, userHash, spotID, now+10+hour, now+10+2*hour, hourlyRate)
		user.Invoke(t, stackitem.Null{}, "cancelReservation", next)
		require.Zero(t, p.spot(t, spotID).ReservedUntil)
	})

	t.Run("started", func(t *testing.T) {
		id, _ := p.reserve(t, user, userHash, spotID, start, start+hour, hourlyRate)
		p.reporter.Invoke(t, stackitem.Null{}, "startReservation", id)
		user.InvokeFail(t, common.ErrAlreadyStarted, "cancelReservation", id)
	})
}

func TestParking_StartComplete(t *testing.T) {
	p := newParking(t, 10)
	user, userHash := p.newUser(t)
	spotID := p.createSpot(t, "F-1", hourlyRate)

	now := chaintest.Now(t, p.e)
	id, _ := p.reserve(t, user, userHash, spotID, now+10, now+10+hour, hourlyRate)

	user.InvokeFail(t, common.ErrNotReporter, "startReservation", id)
	p.reporter.InvokeFail(t, common.ErrNotStarted, "completeReservation", id)
	p.reporter.InvokeFail(t, common.ErrReservationNotFound, "startReservation", int64(9))

	startAt := now + 20
	aer := p.e.CheckHalt(t, chaintest.InvokeAt(t, p.reporter, startAt, "startReservation", id))

	started, err := parkingrpc.ReservationStartedEventsFromApplicationLog(chaintest.ApplicationLog(aer))
	require.NoError(t, err)
	require.Equal(t, []*parkingrpc.ReservationStartedEvent{{ReservationID: id, ActualStart: startAt}}, started)

	occupancy, err := parkingrpc.SpotOccupancyChangedEventsFromApplicationLog(chaintest.ApplicationLog(aer))
	require.NoError(t, err)
	require.Equal(t, []*parkingrpc.SpotOccupancyChangedEvent{{SpotID: spotID, Occupied: true, Occupant: userHash}}, occupancy)

	s := p.spot(t, spotID)
	require.True(t, s.Occupied)
	require.Equal(t, userHash, s.Occupant)
	require.EqualValues(t, 1, s.OccupationCount)

	p.reporter.InvokeFail(t, common.ErrAlreadyStarted, "startReservation", id)
	user.InvokeFail(t, common.ErrNotReporter, "completeReservation", id)

	aer = p.e.CheckHalt(t, chaintest.InvokeAt(t, p.reporter, startAt+1800, "completeReservation", id))

	completed, err := parkingrpc.ReservationCompletedEventsFromApplicationLog(chaintest.ApplicationLog(aer))
	require.NoError(t, err)
	require.Equal(t, []*parkingrpc.ReservationCompletedEvent{{
		ReservationID: id,
		ActualEnd:     startAt + 1800,
		ActualCost:    50,
		Refund:        50,
	}}, completed)
	require.Equal(t, map[util.Uint160]int64{userHash: 50}, chaintest.GASTransfers(t, p.e, aer, p.hash))

	r := p.reservation(t, id)
	require.Equal(t, parkingconst.Completed, r.Status)
	require.Equal(t, startAt, r.ActualStart)
	require.Equal(t, startAt+1800, r.ActualEnd)

	s = p.spot(t, spotID)
	require.False(t, s.Occupied)
	require.Equal(t, util.Uint160{}, s.Occupant)
	require.EqualValues(t, 45, s.TotalEarnings)

	p.owner.Invoke(t, 5, "platformEarnings")
	p.owner.Invoke(t, 5, "settlementFees")
	p.owner.Invoke(t, 0, "penalties")
	require.EqualValues(t, 50, p.balance())

	p.reporter.InvokeFail(t, common.ErrNotActive, "completeReservation", id)

	t.Run("overstay is capped", func(t *testing.T) {
		// Completion keeps the horizon.
		start := p.spot(t, spotID).ReservedUntil
		id, _ := p.reserve(t, user, userHash, spotID, start, start+hour, hourlyRate)

		now := chaintest.Now(t, p.e)
		p.e.CheckHalt(t, chaintest.InvokeAt(t, p.reporter, now+20, "startReservation", id))
		aer := p.e.CheckHalt(t, chaintest.InvokeAt(t, p.reporter, now+20+3*hour, "completeReservation", id))

		completed, err := parkingrpc.ReservationCompletedEventsFromApplicationLog(chaintest.ApplicationLog(aer))
		require.NoError(t, err)
		require.Len(t, completed, 1)
		require.EqualValues(t, hourlyRate, completed[0].ActualCost)
		require.Zero(t, completed[0].Refund)
		require.Empty(t, chaintest.GASTransfers(t, p.e, aer, p.hash))

		require.EqualValues(t, 45+90, p.spot(t, spotID).TotalEarnings)
		p.owner.Invoke(t, 15, "platformEarnings")
	})
}

func TestParking_Expire(t *testing.T) {
	p := newParking(t, 10)
	user, userHash := p.newUser(t)
	spotID := p.createSpot(t, "G-1", hourlyRate)

	now := chaintest.Now(t, p.e)
	start, end := now+10, now+10+hour
	id, _ := p.reserve(t, user, userHash, spotID, start, end, hourlyRate)

	p.reporter.InvokeFail(t, common.ErrNotEnded, "expireReservation", id)
	user.InvokeFail(t, common.ErrNotReporter, "expireReservation", id)

	aer := p.e.CheckHalt(t, chaintest.InvokeAt(t, p.reporter, end, "expireReservation", id))

	events, err := parkingrpc.ReservationExpiredEventsFromApplicationLog(chaintest.ApplicationLog(aer))
	require.NoError(t, err)
	require.Equal(t, []*parkingrpc.ReservationRefundEvent{{ReservationID: id, Refund: 95}}, events)
	require.Equal(t, map[util.Uint160]int64{userHash: 95}, chaintest.GASTransfers(t, p.e, aer, p.hash))

	require.Equal(t, parkingconst.Expired, p.reservation(t, id).Status)
	p.owner.Invoke(t, 5, "penalties")
	p.owner.Invoke(t, 5, "platformEarnings")

	p.reporter.InvokeFail(t, common.ErrNotActive, "expireReservation", id)

	t.Run("started can't expire", func(t *testing.T) {
		now := chaintest.Now(t, p.e)
		id, _ := p.reserve(t, user, userHash, spotID, now+10, now+10+hour, hourlyRate)
		p.reporter.Invoke(t, stackitem.Null{}, "startReservation", id)

		chaintest.AdvanceTo(t, p.e, now+10+hour)
		p.reporter.InvokeFail(t, common.ErrAlreadyStarted, "expireReservation", id)
	})
}

func TestParking_Admin(t *testing.T) {
	p := newParking(t, 10)
	user, _ := p.newUser(t)

	t.Run("fee", func(t *testing.T) {
		user.InvokeFail(t, common.ErrNotOwner, "setFeePercent", int64(5))
		p.owner.InvokeFail(t, common.ErrFeeOutOfRange, "setFeePercent", int64(21))
		p.owner.InvokeFail(t, common.ErrFeeOutOfRange, "setFeePercent", int64(-1))

		h := p.owner.Invoke(t, stackitem.Null{}, "setFeePercent", int64(20))
		events, err := parkingrpc.FeePercentChangedEventsFromApplicationLog(chaintest.ApplicationLog(p.e.CheckHalt(t, h)))
		require.NoError(t, err)
		require.Equal(t, []*parkingrpc.FeePercentChangedEvent{{OldPercent: 10, NewPercent: 20}}, events)
		p.owner.Invoke(t, 20, "feePercent")

		p.owner.Invoke(t, stackitem.Null{}, "setFeePercent", int64(0))
		p.owner.Invoke(t, 0, "feePercent")
	})

	t.Run("reporter", func(t *testing.T) {
		acc := p.e.NewAccount(t)

		user.InvokeFail(t, common.ErrNotOwner, "setReporter", acc.ScriptHash())

		h := p.owner.Invoke(t, stackitem.Null{}, "setReporter", acc.ScriptHash())
		events, err := parkingrpc.ReporterChangedEventsFromApplicationLog(chaintest.ApplicationLog(p.e.CheckHalt(t, h)))
		require.NoError(t, err)
		require.Equal(t, []*parkingrpc.ReporterChangedEvent{{Reporter: acc.ScriptHash()}}, events)
		p.owner.Invoke(t, stackitem.NewBuffer(acc.ScriptHash().BytesBE()), "reporter")

		p.reporter.InvokeFail(t, common.ErrNotReporter, "startReservation", int64(1))
		p.reporter = p.e.NewInvoker(p.hash, acc)
	})

	t.Run("pause", func(t *testing.T) {
		user.InvokeFail(t, common.ErrNotOwner, "pause")
		p.owner.InvokeFail(t, common.ErrNotPaused, "unpause")

		h := p.owner.Invoke(t, stackitem.Null{}, "pause")
		require.Len(t, chaintest.Notifications(p.e.CheckHalt(t, h), "Paused"), 1)
		p.owner.Invoke(t, true, "paused")
		p.owner.InvokeFail(t, common.ErrPaused, "pause")

		user.InvokeFail(t, common.ErrPaused, "cancelReservation", int64(1))
		p.reporter.InvokeFail(t, common.ErrPaused, "startReservation", int64(1))
		p.reporter.InvokeFail(t, common.ErrPaused, "completeReservation", int64(1))
		p.reporter.InvokeFail(t, common.ErrPaused, "expireReservation", int64(1))

		// Spot management is not suspended.
		p.createSpot(t, "H-1", hourlyRate)

		user.InvokeFail(t, common.ErrNotOwner, "unpause")
		h = p.owner.Invoke(t, stackitem.Null{}, "unpause")
		require.Len(t, chaintest.Notifications(p.e.CheckHalt(t, h), "Unpaused"), 1)
		p.owner.Invoke(t, false, "paused")
	})
}

func TestParking_Withdraw(t *testing.T) {
	p := newParking(t, 10)
	user, userHash := p.newUser(t)
	spotID := p.createSpot(t, "I-1", hourlyRate)
	recipient := p.e.NewAccount(t).ScriptHash()

	p.owner.InvokeFail(t, common.ErrNothingToWithdraw, "withdrawPlatformEarnings", recipient)

	now := chaintest.Now(t, p.e)
	id, _ := p.reserve(t, user, userHash, spotID, now+100, now+100+hour, hourlyRate)
	user.Invoke(t, stackitem.Null{}, "cancelReservation", id)

	user.InvokeFail(t, common.ErrNotOwner, "withdrawPlatformEarnings", userHash)

	// Withdrawal isn't suspended by pause.
	p.owner.Invoke(t, stackitem.Null{}, "pause")

	h := p.owner.Invoke(t, stackitem.Null{}, "withdrawPlatformEarnings", recipient)
	aer := p.e.CheckHalt(t, h)

	events, err := parkingrpc.PlatformWithdrawalEventsFromApplicationLog(chaintest.ApplicationLog(aer))
	require.NoError(t, err)
	require.Equal(t, []*parkingrpc.PlatformWithdrawalEvent{{To: recipient, Amount: 5}}, events)
	require.Equal(t, map[util.Uint160]int64{recipient: 5}, chaintest.GASTransfers(t, p.e, aer, p.hash))

	p.owner.Invoke(t, 0, "platformEarnings")
	p.owner.Invoke(t, 5, "penalties")
	require.Zero(t, p.balance())

	p.owner.InvokeFail(t, common.ErrNothingToWithdraw, "withdrawPlatformEarnings", recipient)
}

func TestParking_Reentrancy(t *testing.T) {
	p := newParking(t, 10)
	user, userHash := p.newUser(t)
	spotID := p.createSpot(t, "J-1", hourlyRate)

	recv := chaintest.DeployGASReceiver(t, p.e)
	recvInv := p.e.CommitteeInvoker(recv)

	earn := func() {
		now := chaintest.Now(t, p.e)
		id, _ := p.reserve(t, user, userHash, spotID, now+100, now+100+hour, hourlyRate)
		user.Invoke(t, stackitem.Null{}, "cancelReservation", id)
	}

	earn()
	p.owner.Invoke(t, stackitem.Null{}, "withdrawPlatformEarnings", recv)
	recvInv.Invoke(t, 5, "received")

	earn()
	recvInv.Invoke(t, stackitem.Null{}, "setTarget", p.hash)
	p.owner.InvokeFail(t, common.ErrReentrantCall, "withdrawPlatformEarnings", recv)

	p.owner.Invoke(t, 5, "platformEarnings")
	recvInv.Invoke(t, 5, "received")
}

func TestParking_Payments(t *testing.T) {
	p := newParking(t, 10)

	acc := p.e.NewAccount(t)
	gasInv := p.e.NewInvoker(p.e.NativeHash(t, nativenames.Gas), acc)
	gasInv.InvokeFail(t, common.ErrUnexpectedGAS, "transfer", acc.ScriptHash(), p.hash, int64(100), nil)

	neoInv := p.e.CommitteeInvoker(p.e.NativeHash(t, nativenames.Neo))
	neoInv.InvokeFail(t, common.ErrGASOnly, "transfer", p.e.CommitteeHash, p.hash, int64(1), nil)

	require.Zero(t, p.balance())
}

func TestParking_Indexes(t *testing.T) {
	p := newParking(t, 10)
	alice, aliceHash := p.newUser(t)
	bob, bobHash := p.newUser(t)

	first := p.createSpot(t, "K-1", hourlyRate)
	second := p.createSpot(t, "K-2", 2*hourlyRate)
	third := p.createSpot(t, "K-3", 3*hourlyRate)

	now := chaintest.Now(t, p.e)
	start := now + 100

	r1, _ := p.reserve(t, alice, aliceHash, first, start, start+hour, hourlyRate)
	r2, _ := p.reserve(t, bob, bobHash, first, start+hour, start+2*hour, hourlyRate)
	r3, _ := p.reserve(t, alice, aliceHash, second, start, start+hour, 2*hourlyRate)

	ids := func(method string, arg any) []int64 {
		arr, ok := chaintest.Call(t, p.owner, method, arg).Value().([]stackitem.Item)
		require.True(t, ok)

		res := make([]int64, 0, len(arr))
		for i := range arr {
			n, err := arr[i].TryInteger()
			require.NoError(t, err)
			res = append(res, n.Int64())
		}
		return res
	}

	require.ElementsMatch(t, []int64{r1, r3}, ids("getUserReservations", aliceHash))
	require.ElementsMatch(t, []int64{r2}, ids("getUserReservations", bobHash))
	require.Empty(t, ids("getUserReservations", p.hash))
	require.ElementsMatch(t, []int64{r1, r2}, ids("getSpotReservations", first))
	require.ElementsMatch(t, []int64{r3}, ids("getSpotReservations", second))
	require.Empty(t, ids("getSpotReservations", third))

	p.owner.Invoke(t, stackitem.Null{}, "setSpotActive", second, false)

	arr, ok := chaintest.Call(t, p.owner, "listActiveSpots").Value().([]stackitem.Item)
	require.True(t, ok)

	active := make([]int64, 0, len(arr))
	for i := range arr {
		s := new(parkingrpc.Spot)
		require.NoError(t, s.FromStackItem(arr[i]))
		require.True(t, s.Active)
		active = append(active, s.ID)
	}
	require.ElementsMatch(t, []int64{first, third}, active)

	t.Run("escrow conservation", func(t *testing.T) {
		bob.Invoke(t, stackitem.Null{}, "cancelReservation", r2)

		p.e.CheckHalt(t, chaintest.InvokeAt(t, p.reporter, start, "startReservation", r1))
		p.e.CheckHalt(t, chaintest.InvokeAt(t, p.reporter, start+hour/2, "completeReservation", r1))

		var escrow int64
		for id := int64(1); id <= p.intCall(t, "reservationCount"); id++ {
			if r := p.reservation(t, id); r.Status == parkingconst.Active {
				escrow += r.PaidAmount
			}
		}

		var earnings int64
		for id := int64(1); id <= p.intCall(t, "spotCount"); id++ {
			earnings += p.spot(t, id).TotalEarnings
		}

		platform := p.intCall(t, "platformEarnings")
		require.Equal(t, p.balance(), escrow+earnings+platform)
		require.Equal(t, platform, p.intCall(t, "settlementFees")+p.intCall(t, "penalties"))
	})
}

func TestParking_Update(t *testing.T) {
	p := newParking(t, 10)
	user, _ := p.newUser(t)

	c := chaintest.CompileContract(t, p.e.CommitteeHash, "parking")
	rawNef, err := c.NEF.Bytes()
	require.NoError(t, err)
	rawManifest, err := json.Marshal(c.Manifest)
	require.NoError(t, err)

	user.InvokeFail(t, common.ErrCommitteeOnly, "update", rawNef, rawManifest, nil)
	p.owner.InvokeFail(t, common.ErrAlreadyUpdated, "update", rawNef, rawManifest, nil)
}
