package amp

// PutBytes stores raw bytes verbatim. Byte strings are the identity codec:
// every other codec in this package is defined in terms of the ASCII or
// binary encoding it produces into a Chunk of this same shape.
func PutBytes(b *Box, key string, value []byte) error {
	return b.Put(key, Chunk(value))
}

// GetBytes returns the raw bytes stored under key.
func GetBytes(b *Box, key string) ([]byte, error) {
	c, err := b.Get(key)
	if err != nil {
		return nil, err
	}
	return []byte(c), nil
}
