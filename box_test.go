package amp

import "testing"

func TestBoxPutGet(t *testing.T) {
	b := NewBox()
	if err := b.Put("name", Chunk("value")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := b.Get("name")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.String() != "value" {
		t.Fatalf("got %q", got)
	}
}

func TestBoxPutRejectsBadKeySize(t *testing.T) {
	b := NewBox()
	if err := b.Put("", Chunk("v")); err == nil {
		t.Fatalf("expected error for empty key")
	} else if k, _ := KindOf(err); k != BadKeySize {
		t.Fatalf("expected BadKeySize, got %v", k)
	}

	longKey := make([]byte, 256)
	if err := b.Put(string(longKey), Chunk("v")); err == nil {
		t.Fatalf("expected error for 256-byte key")
	} else if k, _ := KindOf(err); k != BadKeySize {
		t.Fatalf("expected BadKeySize, got %v", k)
	}
}

func TestBoxPutRejectsBadValueSize(t *testing.T) {
	b := NewBox()
	longVal := make([]byte, 0x10000)
	if err := b.Put("k", longVal); err == nil {
		t.Fatalf("expected error for 65536-byte value")
	} else if k, _ := KindOf(err); k != BadValueSize {
		t.Fatalf("expected BadValueSize, got %v", k)
	}
}

func TestBoxGetMissingKey(t *testing.T) {
	b := NewBox()
	if _, err := b.Get("missing"); err == nil {
		t.Fatalf("expected error")
	} else if k, _ := KindOf(err); k != KeyNotFound {
		t.Fatalf("expected KeyNotFound, got %v", k)
	}
}

func TestBoxReplaceDoesNotGrowLen(t *testing.T) {
	b := NewBox()
	_ = b.Put("k", Chunk("a"))
	_ = b.Put("k", Chunk("bb"))
	if b.Len() != 1 {
		t.Fatalf("expected len 1, got %d", b.Len())
	}
	v, _ := b.Get("k")
	if v.String() != "bb" {
		t.Fatalf("expected replaced value, got %q", v)
	}
}

func TestBoxDelete(t *testing.T) {
	b := NewBox()
	_ = b.Put("k", Chunk("v"))

	if !b.Delete("k") {
		t.Fatalf("expected Delete to report true for a present key")
	}
	if b.Has("k") {
		t.Fatalf("expected key to be gone after Delete")
	}
	if b.Delete("k") {
		t.Fatalf("expected Delete to report false for an already-absent key")
	}
}

func TestBoxEqual(t *testing.T) {
	a := NewBox()
	_ = a.Put("k1", Chunk("v1"))
	_ = a.Put("k2", Chunk("v2"))

	b := NewBox()
	_ = b.Put("k2", Chunk("v2"))
	_ = b.Put("k1", Chunk("v1"))

	if !a.Equal(b) {
		t.Fatalf("expected equal boxes regardless of insertion order")
	}

	_ = b.Put("k3", Chunk("v3"))
	if a.Equal(b) {
		t.Fatalf("expected unequal after adding extra key")
	}
}
