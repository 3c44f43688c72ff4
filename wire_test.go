package amp

import "testing"

func collectBoxes(t *testing.T, data []byte) []*Box {
	t.Helper()
	p := newWireParser()
	var boxes []*Box
	consumed, err := p.feed(data, func(b *Box) { boxes = append(boxes, b) })
	if err != nil {
		t.Fatalf("feed error: %v (consumed %d)", err, consumed)
	}
	if consumed != len(data) {
		t.Fatalf("consumed %d, want %d", consumed, len(data))
	}
	return boxes
}

func TestWireParserSingleBox(t *testing.T) {
	data := mustSerialize(t, mustBox(t, map[string]string{"a": "1"}))
	boxes := collectBoxes(t, data)
	if len(boxes) != 1 {
		t.Fatalf("expected 1 box, got %d", len(boxes))
	}
	v, err := boxes[0].Get("a")
	if err != nil || v.String() != "1" {
		t.Fatalf("got (%v, %v)", v, err)
	}
}

func TestWireParserMultipleBoxesConcatenated(t *testing.T) {
	b1 := mustSerialize(t, mustBox(t, map[string]string{"a": "1"}))
	b2 := mustSerialize(t, mustBox(t, map[string]string{"b": "2"}))
	boxes := collectBoxes(t, append(b1, b2...))
	if len(boxes) != 2 {
		t.Fatalf("expected 2 boxes, got %d", len(boxes))
	}
}

func TestWireParserByteAtATimeFragmentation(t *testing.T) {
	data := mustSerialize(t, mustBox(t, map[string]string{"key": "value", "another": "one"}))
	p := newWireParser()
	var boxes []*Box
	for _, b := range data {
		_, err := p.feed([]byte{b}, func(box *Box) { boxes = append(boxes, box) })
		if err != nil {
			t.Fatalf("feed error: %v", err)
		}
	}
	if len(boxes) != 1 {
		t.Fatalf("expected 1 box, got %d", len(boxes))
	}
	if boxes[0].Len() != 2 {
		t.Fatalf("expected 2 pairs, got %d", boxes[0].Len())
	}
}

func TestWireParserBadKeyLenHiIsFatal(t *testing.T) {
	p := newWireParser()
	_, err := p.feed([]byte{0x01, 0x00}, func(*Box) {})
	if err == nil {
		t.Fatalf("expected error")
	}
	if k, _ := KindOf(err); k != BadKeySize {
		t.Fatalf("expected BadKeySize, got %v", err)
	}
}

func TestWireParserEmptyBoxYieldsEmptyBox(t *testing.T) {
	// A bare terminator is accepted by the parser itself; rejecting it as
	// BoxEmpty is the dispatcher's job, not the parser's.
	p := newWireParser()
	var boxes []*Box
	_, err := p.feed([]byte{0x00, 0x00}, func(b *Box) { boxes = append(boxes, b) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(boxes) != 1 || boxes[0].Len() != 0 {
		t.Fatalf("expected one empty box, got %v", boxes)
	}
}

func TestWireParserZeroLengthValue(t *testing.T) {
	// key "k" (len 1) with a zero-length value, then terminator.
	data := []byte{0x00, 0x01, 'k', 0x00, 0x00, 0x00, 0x00}
	boxes := collectBoxes(t, data)
	if len(boxes) != 1 {
		t.Fatalf("expected 1 box, got %d", len(boxes))
	}
	v, err := boxes[0].Get("k")
	if err != nil || len(v) != 0 {
		t.Fatalf("got (%v, %v)", v, err)
	}
}

func mustBox(t *testing.T, pairs map[string]string) *Box {
	t.Helper()
	b := NewBox()
	for k, v := range pairs {
		if err := b.Put(k, Chunk(v)); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	return b
}

func mustSerialize(t *testing.T, b *Box) []byte {
	t.Helper()
	data, err := Serialize(b)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	return data
}
