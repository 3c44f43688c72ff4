package amp

// Chunk is a sized byte span carrying a key or a value as it moves through
// the parser, a Box, and the serializer. Chunks are plain []byte under the
// hood; Go's garbage collector makes the owned/borrowed distinction from the
// original C implementation (AMP_Chunk, allocated with trailing storage vs.
// wrapping a caller buffer) unnecessary, but callers should still treat a
// Chunk handed to them as read-only unless documented otherwise, since it
// may alias an internal scratch buffer that gets reused on the next Consume.
type Chunk []byte

// Clone returns a Chunk with its own backing array, safe to retain past the
// lifetime of whatever scratch buffer c may currently alias.
func (c Chunk) Clone() Chunk {
	if c == nil {
		return nil
	}
	out := make(Chunk, len(c))
	copy(out, c)
	return out
}

// Equal reports whether two chunks have identical length and bytes.
func (c Chunk) Equal(other Chunk) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

func (c Chunk) String() string { return string(c) }
