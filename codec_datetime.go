package amp

import "fmt"

// DateTime is a calendar timestamp with microsecond precision and an
// explicit UTC offset in minutes, matching the protocol's fixed 32-byte
// wire representation. It intentionally does not use time.Time: the wire
// format keeps year/month/day/hour/min/sec/msec/utc_offset as independent
// fields with their own range checks, and round-tripping through time.Time
// would obscure which field failed validation.
type DateTime struct {
	Year      int // 1-9999
	Month     int // 1-12
	Day       int // 1-31
	Hour      int // 0-23
	Min       int // 0-59
	Sec       int // 0-59
	Msec      int // 0-999999 (microseconds despite the field name)
	UTCOffset int // minutes, -1439..1439
}

// PutDateTime encodes v into the fixed 32-byte
// "YYYY-MM-DDTHH:MM:SS.uuuuuu+HH:MM" representation. Any field outside its
// valid range is an EncodeError.
func PutDateTime(b *Box, key string, v DateTime) error {
	if v.Year < 1 || v.Year > 9999 ||
		v.Month < 1 || v.Month > 12 ||
		v.Day < 1 || v.Day > 31 ||
		v.Hour < 0 || v.Hour > 23 ||
		v.Min < 0 || v.Min > 59 ||
		v.Sec < 0 || v.Sec > 59 ||
		v.Msec < 0 || v.Msec > 999999 ||
		v.UTCOffset < -1439 || v.UTCOffset > 1439 {
		return newErr(EncodeError, "codec.datetime.encode", nil)
	}

	offsetHour := v.UTCOffset / 60
	offsetMin := v.UTCOffset % 60
	sign := byte('+')
	if v.UTCOffset < 0 {
		sign = '-'
		offsetHour = -offsetHour
		offsetMin = -offsetMin
	}

	s := fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%06d%c%02d:%02d",
		v.Year, v.Month, v.Day, v.Hour, v.Min, v.Sec, v.Msec, sign, offsetHour, offsetMin)
	if len(s) != 32 {
		return newErr(EncodeError, "codec.datetime.encode", nil)
	}
	return b.Put(key, Chunk(s))
}

// GetDateTime decodes a DateTime from the fixed 32-byte representation
// stored under key. A length mismatch, a non-numeric field, or a missing
// sign byte is a DecodeError; a numeric field outside its range is
// OutOfRange.
func GetDateTime(b *Box, key string) (DateTime, error) {
	var out DateTime
	c, err := b.Get(key)
	if err != nil {
		return out, err
	}
	buf := []byte(c)
	if len(buf) != 32 {
		return out, newErr(DecodeError, "codec.datetime.decode", nil)
	}

	fields := []struct {
		dst      *int
		off, ln  int
		min, max int64
	}{
		{&out.Year, 0, 4, 1, 9999},
		{&out.Month, 5, 2, 1, 12},
		{&out.Day, 8, 2, 1, 31},
		{&out.Hour, 11, 2, 0, 23},
		{&out.Min, 14, 2, 0, 59},
		{&out.Sec, 17, 2, 0, 59},
		{&out.Msec, 20, 6, 0, 999999},
	}
	for _, f := range fields {
		v, err := decodeBase10Range(buf[f.off:f.off+f.ln], f.min, f.max)
		if err != nil {
			return out, err
		}
		*f.dst = int(v)
	}

	offsetHour, err := decodeBase10Range(buf[27:29], 0, 23)
	if err != nil {
		return out, err
	}
	offsetMin, err := decodeBase10Range(buf[30:32], 0, 59)
	if err != nil {
		return out, err
	}

	switch buf[26] {
	case '+':
		out.UTCOffset = int(offsetHour)*60 + int(offsetMin)
	case '-':
		out.UTCOffset = int(offsetHour)*-60 - int(offsetMin)
	default:
		return out, newErr(DecodeError, "codec.datetime.decode", nil)
	}
	return out, nil
}
