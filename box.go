package amp

// Box is an unordered key/value mapping: the unit of data AMP carries in
// both directions. Keys are 1-255 bytes, unique within a box; values are
// 0-65535 bytes. Iteration order is not part of the contract.
type Box struct {
	pairs map[string]Chunk
}

// NewBox returns an empty Box ready for Put.
func NewBox() *Box {
	return &Box{pairs: make(map[string]Chunk)}
}

// Put inserts or replaces the value stored under key. It returns an error
// with Kind BadKeySize or BadValueSize if either length is out of range.
func (b *Box) Put(key string, value Chunk) error {
	if len(key) < 1 || len(key) > 0xff {
		return newErr(BadKeySize, "box.put", nil)
	}
	if len(value) > 0xffff {
		return newErr(BadValueSize, "box.put", nil)
	}
	if b.pairs == nil {
		b.pairs = make(map[string]Chunk)
	}
	b.pairs[key] = value
	return nil
}

// Get returns the value stored under key, or a KeyNotFound error.
func (b *Box) Get(key string) (Chunk, error) {
	v, ok := b.pairs[key]
	if !ok {
		return nil, newErr(KeyNotFound, "box.get", nil)
	}
	return v, nil
}

// Has reports whether key is present in the box.
func (b *Box) Has(key string) bool {
	_, ok := b.pairs[key]
	return ok
}

// Delete removes key from the box, reporting whether it was present.
func (b *Box) Delete(key string) bool {
	if _, ok := b.pairs[key]; !ok {
		return false
	}
	delete(b.pairs, key)
	return true
}

// Len returns the number of key/value pairs in the box.
func (b *Box) Len() int {
	return len(b.pairs)
}

// Keys returns the box's keys in unspecified order.
func (b *Box) Keys() []string {
	keys := make([]string, 0, len(b.pairs))
	for k := range b.pairs {
		keys = append(keys, k)
	}
	return keys
}

// Equal reports whether two boxes contain the same key set with bytewise
// equal values. Used by tests; not part of the wire contract.
func (b *Box) Equal(other *Box) bool {
	if b.Len() != other.Len() {
		return false
	}
	for k, v := range b.pairs {
		ov, ok := other.pairs[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
