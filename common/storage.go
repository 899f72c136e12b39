package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key any, value any) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}

// GetInt returns integer stored by key or 0 if there is no such key.
func GetInt(ctx storage.Context, key any) int {
	data := storage.Get(ctx, key)
	if data != nil {
		return data.(int)
	}

	return 0
}

// GetBool returns boolean stored by key or false if there is no such key.
func GetBool(ctx storage.Context, key any) bool {
	data := storage.Get(ctx, key)
	if data != nil {
		return data.(bool)
	}

	return false
}

// NextID increments the counter stored by key and returns its new value.
// The first returned value is 1.
func NextID(ctx storage.Context, key any) int {
	id := GetInt(ctx, key) + 1
	storage.Put(ctx, key, id)

	return id
}

// idLen is the width of an identifier inside a storage key.
const idLen = 4

// FixedID encodes a non-negative identifier as a little-endian integer of
// idLen bytes, so identifiers can be used as key prefixes for storage.Find.
func FixedID(id int) []byte {
	b := convert.ToBytes(id)
	for len(b) < idLen {
		b = append(b, []byte{0}...)
	}

	return b
}

// IDKey returns storage key made of the prefix and the fixed-width id.
func IDKey(prefix byte, id int) []byte {
	return append([]byte{prefix}, FixedID(id)...)
}
