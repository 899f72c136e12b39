package oracle

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

type testInv struct {
	err error
	res *result.Invoke

	expandErr error
	expandRes *result.Invoke
	expandMax int

	batches    [][]stackitem.Item
	traversed  []int
	terminated []uuid.UUID
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	return t.res, t.err
}

func (t *testInv) CallAndExpandIterator(contract util.Uint160, operation string, i int, params ...any) (*result.Invoke, error) {
	t.expandMax = i
	return t.expandRes, t.expandErr
}

func (t *testInv) TraverseIterator(_ uuid.UUID, _ *result.Iterator, num int) ([]stackitem.Item, error) {
	t.traversed = append(t.traversed, num)
	if len(t.batches) == 0 {
		return nil, errors.New("no more batches")
	}

	b := t.batches[0]
	t.batches = t.batches[1:]
	return b, nil
}

func (t *testInv) TerminateSession(id uuid.UUID) error {
	t.terminated = append(t.terminated, id)
	return nil
}

func nodeItem(addr util.Uint160, active bool) stackitem.Item {
	pos := int64(-1)
	if active {
		pos = 0
	}

	return stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(addr.BytesBE()),
		stackitem.Make(active),
		stackitem.Make(500),
		stackitem.Make(3),
		stackitem.Make(1700000000),
		stackitem.Make("gate"),
		stackitem.Make(2),
		stackitem.Make(pos),
	})
}

func TestGetNode(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})
	addr := util.Uint160{7}

	ti.err = errors.New("bad")
	_, err := r.GetNode(addr)
	require.Error(t, err)

	ti.err = nil
	ti.res = &result.Invoke{State: "HALT", Stack: []stackitem.Item{nodeItem(addr, false)}}
	n, err := r.GetNode(addr)
	require.NoError(t, err)
	require.Equal(t, Node{
		Address:      addr,
		Reputation:   500,
		TotalUpdates: 3,
		LastUpdate:   1700000000,
		Label:        "gate",
		Index:        2,
		ActivePos:    -1,
	}, *n)

	ti.res = &result.Invoke{State: "HALT", Stack: []stackitem.Item{
		stackitem.Make([]stackitem.Item{stackitem.Make(addr.BytesBE())}),
	}}
	nodes, err := r.ActiveNodes()
	require.NoError(t, err)
	require.Equal(t, []util.Uint160{addr}, nodes)
}

func TestListNodes(t *testing.T) {
	a, b, c := util.Uint160{1}, util.Uint160{2}, util.Uint160{3}

	t.Run("session", func(t *testing.T) {
		sess := uuid.New()
		iterID := uuid.New()

		ti := &testInv{
			res: &result.Invoke{
				State:   "HALT",
				Session: sess,
				Stack:   []stackitem.Item{stackitem.NewInterop(result.Iterator{ID: &iterID})},
			},
			batches: [][]stackitem.Item{
				{nodeItem(a, true), nodeItem(b, false)},
				{nodeItem(c, true)},
			},
		}

		nodes, err := NewReader(ti, util.Uint160{}).ListNodes(2)
		require.NoError(t, err)
		require.Len(t, nodes, 3)
		require.Equal(t, c, nodes[2].Address)
		require.Equal(t, []int{2, 2}, ti.traversed)
		require.Equal(t, []uuid.UUID{sess}, ti.terminated)
	})

	t.Run("traverse error", func(t *testing.T) {
		sess := uuid.New()
		iterID := uuid.New()

		ti := &testInv{
			res: &result.Invoke{
				State:   "HALT",
				Session: sess,
				Stack:   []stackitem.Item{stackitem.NewInterop(result.Iterator{ID: &iterID})},
			},
		}

		_, err := NewReader(ti, util.Uint160{}).ListNodes(0)
		require.ErrorContains(t, err, "traverse iterator")
		require.Equal(t, []int{DefaultBatch}, ti.traversed)
		require.Equal(t, []uuid.UUID{sess}, ti.terminated)
	})

	t.Run("expanded", func(t *testing.T) {
		ti := &testInv{
			err: errors.New("sessions are disabled"),
			expandRes: &result.Invoke{State: "HALT", Stack: []stackitem.Item{
				stackitem.Make([]stackitem.Item{nodeItem(a, true)}),
			}},
		}

		nodes, err := NewReader(ti, util.Uint160{}).ListNodes(-1)
		require.NoError(t, err)
		require.Len(t, nodes, 1)
		require.Equal(t, a, nodes[0].Address)
		require.Equal(t, DefaultBatch, ti.expandMax)
		require.Empty(t, ti.terminated)

		ti.expandErr = errors.New("bad")
		_, err = NewReader(ti, util.Uint160{}).ListNodes(5)
		require.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		ti := &testInv{
			err: errors.New("sessions are disabled"),
			expandRes: &result.Invoke{State: "HALT", Stack: []stackitem.Item{
				stackitem.Make([]stackitem.Item{stackitem.Make(1)}),
			}},
		}

		_, err := NewReader(ti, util.Uint160{}).ListNodes(5)
		require.ErrorContains(t, err, "item 0")
	})
}

func TestReadings(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})
	reporter := util.Uint160{5}

	reading := func(ts int64, hash string) stackitem.Item {
		return stackitem.NewStruct([]stackitem.Item{
			stackitem.Make(4),
			stackitem.Make(true),
			stackitem.Make(90),
			stackitem.Make(ts),
			stackitem.Make("ultrasonic"),
			stackitem.Make([]byte(hash)),
			stackitem.Make(reporter.BytesBE()),
		})
	}

	ti.res = &result.Invoke{State: "HALT", Stack: []stackitem.Item{reading(100, "h1")}}
	latest, err := r.GetLatestReading(4)
	require.NoError(t, err)
	require.Equal(t, Reading{
		SpotID:     4,
		Occupied:   true,
		Confidence: 90,
		Timestamp:  100,
		SensorType: "ultrasonic",
		Hash:       []byte("h1"),
		Reporter:   reporter,
	}, *latest)

	ti.res = &result.Invoke{State: "HALT", Stack: []stackitem.Item{
		stackitem.Make([]stackitem.Item{reading(100, "h1"), reading(130, "h2")}),
	}}
	history, err := r.GetReadingHistory(4)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, []byte("h2"), history[1].Hash)

	ti.res = &result.Invoke{State: "FAULT", FaultException: "state error: no reading for spot"}
	_, err = r.GetLatestReading(5)
	require.ErrorContains(t, err, "no reading for spot")
}
