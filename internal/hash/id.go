package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
//
// The intern tables store these hashes instead of the string content itself;
// a collision between two distinct strings produces an incorrect reference,
// a probability the table sizing accepts.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// PairID computes the xxHash64 of a (processID, threadID) pair.
//
// Both IDs are hashed in little-endian byte order, process ID first, so the
// pair hash is order-sensitive: PairID(a, b) != PairID(b, a) in general.
func PairID(processID, threadID uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], processID)
	binary.LittleEndian.PutUint64(buf[8:16], threadID)

	return xxhash.Sum64(buf[:])
}
