// Package util contains internal helpers (hashing, sharding, padding).
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Hash hashes common key types to a 64-bit value for sharding and generic
// indexing. string/[]byte use xxhash (fast, well-distributed, no allocation
// for strings); fixed-width integer keys use FNV-1a over their little-endian
// bytes, since xxhash's streaming API costs more than it returns on 8 bytes.
// For other key types, either convert the key to string or supply a custom
// hasher upstream. Panicking on unsupported types is deliberate to avoid
// silently poor hashing.
func Hash[K comparable](k K) uint64 {
	switch v := any(k).(type) {
	case string:
		return xxhash.Sum64String(v)
	case []byte:
		return xxhash.Sum64(v)
	case [16]byte:
		return xxhash.Sum64(v[:])
	case [32]byte:
		return xxhash.Sum64(v[:])
	case [64]byte:
		return xxhash.Sum64(v[:])

	// Integer-like keys: hash little-endian bytes of the value.
	case uint8:
		return fnv64aFromUint64(uint64(v))
	case uint16:
		return fnv64aFromUint64(uint64(v))
	case uint32:
		return fnv64aFromUint64(uint64(v))
	case uint64:
		return fnv64aFromUint64(v)
	case uint:
		return fnv64aFromUint64(uint64(v))
	case uintptr:
		return fnv64aFromUint64(uint64(v))
	case int8:
		return fnv64aFromUint64(uint64(uint8(v)))
	case int16:
		return fnv64aFromUint64(uint64(uint16(v)))
	case int32:
		return fnv64aFromUint64(uint64(uint32(v)))
	case int64:
		return fnv64aFromUint64(uint64(v))
	case int:
		return fnv64aFromUint64(uint64(v))

	// Fallback for pseudo-keys via String() (avoid if you can).
	case fmt.Stringer:
		return xxhash.Sum64String(v.String())
	default:
		panic(fmt.Sprintf("util.Hash: unsupported key type %T; convert key to string or provide a custom hasher", k))
	}
}

const (
	fnvOffset64 = 1469598103934665603
	fnvPrime64  = 1099511628211
)

func fnv64aFromUint64(u uint64) uint64 {
	// Hash the 8 little-endian bytes of u without allocating.
	h := uint64(fnvOffset64)
	for i := 0; i < 8; i++ {
		h ^= uint64(byte(u))
		h *= fnvPrime64
		u >>= 8
	}
	return h
}
