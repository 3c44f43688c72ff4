package amp

import "sort"

// Serialize encodes a Box into wire bytes: each key/value pair as a 2-byte
// big-endian key length (always with a zero high byte, since keys are
// capped at 255 bytes), the key bytes, a 2-byte big-endian value length,
// and the value bytes, followed by a single 2-byte zero-length terminator.
// Keys are emitted in sorted order for deterministic, reproducible output;
// box equality itself does not depend on this order. An empty box has
// nothing meaningful to send and fails with BoxEmpty.
func Serialize(b *Box) ([]byte, error) {
	if b.Len() == 0 {
		return nil, newErr(BoxEmpty, "box.serialize", nil)
	}

	keys := b.Keys()
	sort.Strings(keys)

	size := 2 // terminator
	for _, k := range keys {
		v, _ := b.Get(k)
		size += 2 + len(k) + 2 + len(v)
	}

	out := make([]byte, 0, size)
	for _, k := range keys {
		v, _ := b.Get(k)
		out = append(out, 0x00, byte(len(k)))
		out = append(out, k...)
		out = append(out, byte(len(v)>>8), byte(len(v)))
		out = append(out, v...)
	}
	out = append(out, 0x00, 0x00)
	return out, nil
}
