package amp

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	e := newErr(KeyNotFound, "box.get", nil)
	if got := e.Error(); got != "amp: box.get: key not found" {
		t.Fatalf("unexpected message: %q", got)
	}

	wrapped := newErr(DecodeError, "codec.int64.decode", fmt.Errorf("bad digit"))
	if got := wrapped.Error(); got != "amp: codec.int64.decode: decode error: bad digit" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestErrorIsMatchesKind(t *testing.T) {
	e := newErr(KeyNotFound, "box.get", nil)
	if !errors.Is(e, &Error{Kind: KeyNotFound}) {
		t.Fatalf("expected Is match on Kind")
	}
	if errors.Is(e, &Error{Kind: BadKeySize}) {
		t.Fatalf("did not expect Is match on different Kind")
	}
}

func TestKindOf(t *testing.T) {
	e := newErr(OutOfRange, "codec.uint32.decode", nil)
	k, ok := KindOf(e)
	if !ok || k != OutOfRange {
		t.Fatalf("KindOf returned (%v, %v)", k, ok)
	}
	if _, ok := KindOf(fmt.Errorf("plain")); ok {
		t.Fatalf("expected ok=false for non-amp error")
	}
}

func TestStrerrorUnknown(t *testing.T) {
	if got := Strerror(Kind(999)); got != "unknown error" {
		t.Fatalf("expected unknown error, got %q", got)
	}
}
