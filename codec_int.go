package amp

import (
	"math"
	"strconv"
)

// decodeBase10 parses buf as an optionally-signed base-10 integer using
// explicit cutoff comparisons against the int64 range, rather than relying
// on a library parser's own overflow behavior. An empty buffer, a bare sign
// with no digits, or any non-digit byte is a DecodeError; a value outside
// [math.MinInt64, math.MaxInt64] is an OutOfRange error.
func decodeBase10(buf []byte) (int64, error) {
	if len(buf) == 0 {
		return 0, newErr(DecodeError, "codec.int.decode", nil)
	}

	s := buf
	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}

	const base = 10
	var cutoff, cutlim int64
	if neg {
		cutoff = math.MinInt64 / base
		cutlim = -(math.MinInt64 % base)
	} else {
		cutoff = math.MaxInt64 / base
		cutlim = math.MaxInt64 % base
	}

	var acc int64
	any := false
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, newErr(DecodeError, "codec.int.decode", nil)
		}
		d := int64(c - '0')
		if neg {
			if acc < cutoff || (acc == cutoff && d > cutlim) {
				return 0, newErr(OutOfRange, "codec.int.decode", nil)
			}
			any = true
			acc = acc*base - d
		} else {
			if acc > cutoff || (acc == cutoff && d > cutlim) {
				return 0, newErr(OutOfRange, "codec.int.decode", nil)
			}
			any = true
			acc = acc*base + d
		}
	}
	if !any {
		return 0, newErr(DecodeError, "codec.int.decode", nil)
	}
	return acc, nil
}

// decodeBase10Range decodes buf as a base-10 integer and range-checks it
// against [min, max], returning OutOfRange if outside.
func decodeBase10Range(buf []byte, min, max int64) (int64, error) {
	v, err := decodeBase10(buf)
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, newErr(OutOfRange, "codec.int.decode", nil)
	}
	return v, nil
}

// PutInt64 encodes v as its decimal ASCII representation.
func PutInt64(b *Box, key string, v int64) error {
	return b.Put(key, Chunk(strconv.FormatInt(v, 10)))
}

// GetInt64 decodes a signed 64-bit integer from the value stored under key.
func GetInt64(b *Box, key string) (int64, error) {
	c, err := b.Get(key)
	if err != nil {
		return 0, err
	}
	return decodeBase10(c)
}

// PutInt32 encodes v as its decimal ASCII representation.
func PutInt32(b *Box, key string, v int32) error {
	return b.Put(key, Chunk(strconv.FormatInt(int64(v), 10)))
}

// GetInt32 decodes a signed 32-bit integer, range-checked against
// [math.MinInt32, math.MaxInt32].
func GetInt32(b *Box, key string) (int32, error) {
	c, err := b.Get(key)
	if err != nil {
		return 0, err
	}
	v, err := decodeBase10Range(c, math.MinInt32, math.MaxInt32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}
