package amp

// PutBool encodes v as the literal ASCII string "True" or "False".
func PutBool(b *Box, key string, v bool) error {
	if v {
		return b.Put(key, Chunk("True"))
	}
	return b.Put(key, Chunk("False"))
}

// GetBool decodes the value stored under key, requiring it to be the exact
// ASCII literal "True" or "False"; anything else is a DecodeError.
func GetBool(b *Box, key string) (bool, error) {
	c, err := b.Get(key)
	if err != nil {
		return false, err
	}
	switch string(c) {
	case "True":
		return true, nil
	case "False":
		return false, nil
	default:
		return false, newErr(DecodeError, "codec.bool.decode", nil)
	}
}
