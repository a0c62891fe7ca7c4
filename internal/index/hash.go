package index

// HashFunc computes a 32-bit hash of a key. The index is built
// hash-agnostic: DJB2 is the default (spec test vectors fix it), but
// any deterministic function with this shape can be substituted via
// robinhoodcache.WithHasher, the way zyedidia/generic's RobinMap takes
// a HashFn instead of hard-coding one.
type HashFunc func(key []byte) uint32

// DJB2 is the classic Bernstein hash: seed 5381, h = h*33 + byte for
// every byte of the key. hash("") == 5381 and hash("abc") ==
// 193485963 are fixed test vectors.
func DJB2(key []byte) uint32 {
	h := uint32(5381)
	for _, c := range key {
		h = h*33 + uint32(c)
	}
	return h
}
