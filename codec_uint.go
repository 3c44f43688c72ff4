package amp

import (
	"math"
	"strconv"
)

// PutUint32 encodes v as its decimal ASCII representation.
func PutUint32(b *Box, key string, v uint32) error {
	return b.Put(key, Chunk(strconv.FormatUint(uint64(v), 10)))
}

// GetUint32 decodes an unsigned 32-bit integer. The value is first decoded
// as a signed 64-bit integer (so a leading '-' is recognized, not silently
// wrapped), then range-checked against [0, math.MaxUint32].
func GetUint32(b *Box, key string) (uint32, error) {
	c, err := b.Get(key)
	if err != nil {
		return 0, err
	}
	v, err := decodeBase10Range(c, 0, math.MaxUint32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
