package amp

// wirePhase is one step of the incremental box parser. The protocol's
// four named states (ReadKeyLen, ReadKeyData, ReadValLen, ReadValData) are
// split here into the six byte-granular phases actually needed to parse a
// length prefix one byte at a time, which is what lets feed accept
// arbitrarily fragmented input without any internal buffering beyond the
// box currently under construction.
type wirePhase int

const (
	phaseKeyLenHi wirePhase = iota
	phaseKeyLenLoOrTerminator
	phaseKey
	phaseValLenHi
	phaseValLenLo
	phaseVal
)

// wireParser incrementally reconstructs Boxes from a byte stream. It holds
// no state beyond the box currently being assembled; feed may be called
// with any size input, including single bytes, and will call onBox once
// per completed box.
type wireParser struct {
	phase wirePhase
	box   *Box

	keyLen int
	key    []byte

	valLen int
	val    []byte
}

func newWireParser() *wireParser {
	return &wireParser{phase: phaseKeyLenHi, box: NewBox()}
}

// reset discards any partially-parsed box and returns the parser to its
// initial phase, clearing fatal poisoning at the caller's level (Engine).
func (p *wireParser) reset() {
	p.phase = phaseKeyLenHi
	p.box = NewBox()
	p.key = nil
	p.val = nil
}

// feed processes every byte of data, invoking onBox for each box completed
// along the way, and returns the number of bytes consumed and a non-nil
// error the instant a malformed byte is seen. On error, the parser's
// internal state is left as-is; callers must not call feed again without
// first calling reset (this mirrors the protocol's fatal-state poisoning).
func (p *wireParser) feed(data []byte, onBox func(*Box)) (int, error) {
	for i, b := range data {
		done, err := p.step(b)
		if err != nil {
			return i + 1, err
		}
		if done {
			box := p.box
			p.phase = phaseKeyLenHi
			p.box = NewBox()
			onBox(box)
		}
	}
	return len(data), nil
}

func (p *wireParser) step(b byte) (boxDone bool, err error) {
	switch p.phase {
	case phaseKeyLenHi:
		if b != 0 {
			return false, newErr(BadKeySize, "wire.parse.keyLenHi", nil)
		}
		p.phase = phaseKeyLenLoOrTerminator

	case phaseKeyLenLoOrTerminator:
		if b == 0 {
			// A terminator with zero preceding pairs is accepted here; an
			// empty box is still handed to onBox, and it is up to the
			// caller (Engine.dispatch) to reject it with BoxEmpty. This
			// keeps BoxEmpty a non-fatal, dispatch-level error rather than
			// one that poisons the parser.
			return true, nil
		}
		p.keyLen = int(b)
		p.key = make([]byte, 0, p.keyLen)
		p.phase = phaseKey

	case phaseKey:
		p.key = append(p.key, b)
		if len(p.key) == p.keyLen {
			p.phase = phaseValLenHi
		}

	case phaseValLenHi:
		p.valLen = int(b) << 8
		p.phase = phaseValLenLo

	case phaseValLenLo:
		p.valLen |= int(b)
		if p.valLen == 0 {
			if err := p.box.Put(string(p.key), Chunk{}); err != nil {
				return false, err
			}
			p.phase = phaseKeyLenHi
			return false, nil
		}
		p.val = make([]byte, 0, p.valLen)
		p.phase = phaseVal

	case phaseVal:
		p.val = append(p.val, b)
		if len(p.val) == p.valLen {
			if err := p.box.Put(string(p.key), Chunk(p.val)); err != nil {
				return false, err
			}
			p.phase = phaseKeyLenHi
		}
	}
	return false, nil
}
