package amp

import (
	"math"
	"testing"
)

func TestBoolRoundTrip(t *testing.T) {
	b := NewBox()
	_ = PutBool(b, "flag", true)
	v, err := GetBool(b, "flag")
	if err != nil || v != true {
		t.Fatalf("got (%v, %v)", v, err)
	}
	_ = PutBool(b, "flag", false)
	v, err = GetBool(b, "flag")
	if err != nil || v != false {
		t.Fatalf("got (%v, %v)", v, err)
	}
}

func TestBoolRejectsGarbage(t *testing.T) {
	b := NewBox()
	_ = b.Put("flag", Chunk("true"))
	if _, err := GetBool(b, "flag"); err == nil {
		t.Fatalf("expected decode error for lowercase literal")
	}
}

func TestInt64RoundTrip(t *testing.T) {
	b := NewBox()
	for _, v := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64} {
		_ = PutInt64(b, "v", v)
		got, err := GetInt64(b, "v")
		if err != nil {
			t.Fatalf("GetInt64(%d): %v", v, err)
		}
		if got != v {
			t.Fatalf("GetInt64: want %d got %d", v, got)
		}
	}
}

func TestInt64OverflowIsOutOfRange(t *testing.T) {
	b := NewBox()
	_ = b.Put("v", Chunk("99999999999999999999999"))
	_, err := GetInt64(b, "v")
	if k, _ := KindOf(err); k != OutOfRange {
		t.Fatalf("expected OutOfRange, got %v", err)
	}
}

func TestInt64DecodeErrors(t *testing.T) {
	b := NewBox()
	for _, bad := range []string{"", "+", "-", "12a", "1.5"} {
		_ = b.Put("v", Chunk(bad))
		if _, err := GetInt64(b, "v"); err == nil {
			t.Fatalf("expected error for %q", bad)
		} else if k, _ := KindOf(err); k != DecodeError {
			t.Fatalf("expected DecodeError for %q, got %v", bad, k)
		}
	}
}

func TestUint32RoundTrip(t *testing.T) {
	b := NewBox()
	_ = PutUint32(b, "v", math.MaxUint32)
	got, err := GetUint32(b, "v")
	if err != nil || got != math.MaxUint32 {
		t.Fatalf("got (%v, %v)", got, err)
	}
}

func TestUint32RejectsNegative(t *testing.T) {
	b := NewBox()
	_ = b.Put("v", Chunk("-1"))
	if _, err := GetUint32(b, "v"); err == nil {
		t.Fatalf("expected error")
	} else if k, _ := KindOf(err); k != OutOfRange {
		t.Fatalf("expected OutOfRange, got %v", k)
	}
}

func TestFloat64SpecialValues(t *testing.T) {
	cases := map[string]float64{"inf": math.Inf(1), "-inf": math.Inf(-1)}
	b := NewBox()
	for lit, want := range cases {
		_ = b.Put("v", Chunk(lit))
		got, err := GetFloat64(b, "v")
		if err != nil || got != want {
			t.Fatalf("%q: got (%v, %v)", lit, got, err)
		}
	}
	_ = b.Put("v", Chunk("nan"))
	got, err := GetFloat64(b, "v")
	if err != nil || !math.IsNaN(got) {
		t.Fatalf("nan: got (%v, %v)", got, err)
	}
}

func TestFloat64LeadingDotIsDecodeError(t *testing.T) {
	b := NewBox()
	for _, bad := range []string{".5", ".0", ".", "-."} {
		_ = b.Put("v", Chunk(bad))
		if _, err := GetFloat64(b, "v"); err == nil {
			t.Fatalf("expected decode error for %q", bad)
		} else if k, _ := KindOf(err); k != DecodeError {
			t.Fatalf("expected DecodeError for %q, got %v", bad, k)
		}
	}
}

func TestFloat64TrailingDotIsAccepted(t *testing.T) {
	b := NewBox()
	_ = b.Put("v", Chunk("3."))
	got, err := GetFloat64(b, "v")
	if err != nil || got != 3.0 {
		t.Fatalf("got (%v, %v)", got, err)
	}
}

func TestFloat64RoundTrip(t *testing.T) {
	b := NewBox()
	for _, v := range []float64{0, 1.5, -1.5, 12345.6789} {
		_ = PutFloat64(b, "v", v)
		got, err := GetFloat64(b, "v")
		if err != nil {
			t.Fatalf("GetFloat64(%v): %v", v, err)
		}
		if math.Abs(got-v) > 1e-9 {
			t.Fatalf("GetFloat64: want %v got %v", v, got)
		}
	}
}

func TestDateTimeRoundTrip(t *testing.T) {
	b := NewBox()
	dt := DateTime{Year: 2024, Month: 2, Day: 29, Hour: 13, Min: 5, Sec: 9, Msec: 123456, UTCOffset: -330}
	if err := PutDateTime(b, "ts", dt); err != nil {
		t.Fatalf("PutDateTime: %v", err)
	}
	got, err := GetDateTime(b, "ts")
	if err != nil {
		t.Fatalf("GetDateTime: %v", err)
	}
	if got != dt {
		t.Fatalf("want %+v got %+v", dt, got)
	}
}

func TestDateTimeRejectsBadSize(t *testing.T) {
	b := NewBox()
	_ = b.Put("ts", Chunk("short"))
	if _, err := GetDateTime(b, "ts"); err == nil {
		t.Fatalf("expected error")
	} else if k, _ := KindOf(err); k != DecodeError {
		t.Fatalf("expected DecodeError, got %v", k)
	}
}

func TestDateTimeEncodeRejectsOutOfRange(t *testing.T) {
	b := NewBox()
	dt := DateTime{Year: 2024, Month: 13, Day: 1}
	if err := PutDateTime(b, "ts", dt); err == nil {
		t.Fatalf("expected encode error for month 13")
	} else if k, _ := KindOf(err); k != EncodeError {
		t.Fatalf("expected EncodeError, got %v", k)
	}
}
