package robinhoodcache

import "github.com/cespare/xxhash/v2"

/*
XXHash is an alternate HashFunc backed by xxhash, wired in as the
drop-in replacement for the default DJB2 hasher
(WithHasher(robinhoodcache.XXHash)). DJB2 remains the default because
its test vectors are fixed, but a caller hashing large or
high-cardinality keys under real load may prefer xxhash's distribution
and throughput.

xxhash/v2 only exposes a 64-bit sum; it is folded down to 32 bits by
XOR-ing the high and low halves, the same fold used by hash table
implementations that adapt a 64-bit hash to a 32-bit bucket index.
*/
func XXHash(key []byte) uint32 {
	sum := xxhash.Sum64(key)
	return uint32(sum) ^ uint32(sum>>32)
}
