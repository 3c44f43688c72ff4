package amp

import (
	"fmt"
	"math"
)

// PutFloat64 encodes v per the protocol's float grammar: the exact ASCII
// tokens "nan", "inf", "-inf" for the corresponding special values, or
// %.17f for any other value (a fixed 17 digits after the decimal point, so
// digits below 1e-17 are not carried).
func PutFloat64(b *Box, key string, v float64) error {
	var s string
	switch {
	case math.IsNaN(v):
		s = "nan"
	case math.IsInf(v, 1):
		s = "inf"
	case math.IsInf(v, -1):
		s = "-inf"
	default:
		s = fmt.Sprintf("%.17f", v)
	}
	return b.Put(key, Chunk(s))
}

// GetFloat64 decodes a float64 per the protocol's float grammar: the exact
// tokens "nan"/"inf"/"-inf" (case-sensitive, no other spelling accepted), or
// an optionally-signed digit sequence with an optional single '.'. A '.' is
// only accepted once at least one digit has already been parsed, so ".5"
// and ".0" are DecodeError, while "3." is accepted (with no fractional
// digits contributing).
func GetFloat64(b *Box, key string) (float64, error) {
	c, err := b.Get(key)
	if err != nil {
		return 0, err
	}
	buf := []byte(c)
	if len(buf) < 1 {
		return 0, newErr(DecodeError, "codec.float64.decode", nil)
	}

	switch string(buf) {
	case "inf":
		return math.Inf(1), nil
	case "nan":
		return math.NaN(), nil
	case "-inf":
		return math.Inf(-1), nil
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

	var acc float64
	any := false
	gotDot := false
	fractionFactor := 0.1

	for _, c := range s {
		if c >= '0' && c <= '9' {
			d := float64(c - '0')
			any = true
			if !gotDot {
				if neg {
					acc = acc*10 - d
				} else {
					acc = acc*10 + d
				}
			} else {
				if neg {
					acc -= d * fractionFactor
				} else {
					acc += d * fractionFactor
				}
				fractionFactor /= 10
			}
			continue
		}
		if c == '.' && !gotDot && any {
			gotDot = true
			continue
		}
		return 0, newErr(DecodeError, "codec.float64.decode", nil)
	}

	if !any {
		return 0, newErr(DecodeError, "codec.float64.decode", nil)
	}
	return acc, nil
}
