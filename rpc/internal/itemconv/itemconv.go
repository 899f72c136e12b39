// Package itemconv converts VM stack items returned by the contracts into Go
// values.
package itemconv

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// ErrNilApplicationLog is returned on attempt to parse events from nil log.
var ErrNilApplicationLog = errors.New("nil application log")

// Fields returns elements of the array or struct item which must have exactly
// n elements.
func Fields(item stackitem.Item, n int) ([]stackitem.Item, error) {
	if item == nil {
		return nil, errors.New("nil item")
	}

	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}

	if len(arr) != n {
		return nil, fmt.Errorf("wrong number of structure elements: %d instead of %d", len(arr), n)
	}

	return arr, nil
}

// Int64 converts integer item.
func Int64(item stackitem.Item) (int64, error) {
	bi, err := item.TryInteger()
	if err != nil {
		return 0, err
	}

	if !bi.IsInt64() {
		return 0, errors.New("integer overflow")
	}

	return bi.Int64(), nil
}

// Bool converts boolean item.
func Bool(item stackitem.Item) (bool, error) {
	return item.TryBool()
}

// String converts byte string item holding valid UTF-8.
func String(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}

	if !utf8.Valid(b) {
		return "", errors.New("not a UTF-8 string")
	}

	return string(b), nil
}

// Bytes converts byte string or buffer item, null is converted to nil.
func Bytes(item stackitem.Item) ([]byte, error) {
	if _, ok := item.(stackitem.Null); ok {
		return nil, nil
	}

	return item.TryBytes()
}

// Uint160 converts 20-byte script hash item. Null and empty byte string items
// are converted to zero hash.
func Uint160(item stackitem.Item) (util.Uint160, error) {
	b, err := Bytes(item)
	if err != nil {
		return util.Uint160{}, err
	}

	if len(b) == 0 {
		return util.Uint160{}, nil
	}

	return util.Uint160DecodeBytesBE(b)
}

// Int64Slice converts array of integers.
func Int64Slice(item stackitem.Item) ([]int64, error) {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}

	res := make([]int64, len(arr))
	for i := range arr {
		v, err := Int64(arr[i])
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		res[i] = v
	}

	return res, nil
}

// Uint160Slice converts array of script hashes.
func Uint160Slice(item stackitem.Item) ([]util.Uint160, error) {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}

	res := make([]util.Uint160, len(arr))
	for i := range arr {
		v, err := Uint160(arr[i])
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		res[i] = v
	}

	return res, nil
}

// Event is implemented by contract notification types.
type Event[T any] interface {
	*T
	FromStackItem(*stackitem.Array) error
}

// EventsFromApplicationLog retrieves all events with the given name from the
// application log and decodes them.
func EventsFromApplicationLog[T any, PT Event[T]](log *result.ApplicationLog, name string) ([]*T, error) {
	if log == nil {
		return nil, ErrNilApplicationLog
	}

	var res []*T
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != name {
				continue
			}

			event := PT(new(T))
			if err := event.FromStackItem(e.Item); err != nil {
				return nil, fmt.Errorf("failed to deserialize %s from stackitem (execution #%d, event #%d): %w", name, i, j, err)
			}

			res = append(res, (*T)(event))
		}
	}

	return res, nil
}

// EventFields returns parameters of the notification which must have exactly
// n of them.
func EventFields(item *stackitem.Array, n int) ([]stackitem.Item, error) {
	if item == nil {
		return nil, errors.New("nil item")
	}

	return Fields(item, n)
}
