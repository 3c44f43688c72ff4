package amp

// Reserved box keys with protocol meaning.
const (
	keyCommand     = "_command"
	keyAsk         = "_ask"
	keyAnswer      = "_answer"
	keyError       = "_error"
	keyErrorCode   = "_error_code"
	keyErrorDescription = "_error_description"
)

// Standard error code strings used in _error_code.
const (
	ErrorCodeUnhandled = "UNHANDLED"
	ErrorCodeUnknown   = "UNKNOWN"
)

// Request is derived from an incoming box carrying _command. AskID holds
// the raw bytes of _ask as the peer sent them (nil if absent) — ask-ids are
// opaque on the wire; only our own outgoing ask-ids are decimal-encoded
// 32-bit integers. Args is the same box with _command and _ask removed.
type Request struct {
	Command string
	AskID   Chunk
	Args    *Box
}

// HasAsk reports whether the request carries an ask-id and therefore
// expects a reply via Respond or RespondError.
func (r *Request) HasAsk() bool { return r.AskID != nil }

// Response is derived from an incoming box carrying _answer.
type Response struct {
	AskID uint32
	Args  *Box
}

// ErrorReply is derived from an incoming box carrying _error.
type ErrorReply struct {
	AskID       uint32
	Code        Chunk
	Description Chunk
}

// ResultKind tags which field of a Result is meaningful.
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultError
	ResultCancelled
)

// Result is delivered to a pending call's Completion. Response is set for
// ResultSuccess, Error for ResultError, and neither for ResultCancelled.
type Result struct {
	Kind     ResultKind
	Response *Response
	Error    *ErrorReply
}

// Responder handles a dispatched Request. It owns req and, if req.HasAsk(),
// must eventually call the owning Engine's Respond or RespondError (or drop
// the request deliberately, leaving the caller's call to time out at a
// higher layer — the core has no timeout facility).
type Responder func(req *Request)

// Completion receives the eventual outcome of a call.
type Completion func(Result)

// dispatch routes a freshly parsed Box to either a responder or a pending
// call's completion, per the reserved-key precedence _command, _answer,
// _error. It never poisons the engine: every error it returns is a local,
// non-fatal dispatch failure (RequiredKeyMissing, DecodeError, OutOfRange,
// BoxEmpty).
func (e *Engine) dispatch(box *Box) error {
	if box.Len() == 0 {
		return newErr(BoxEmpty, "engine.dispatch", nil)
	}

	switch {
	case box.Has(keyCommand):
		return e.dispatchCommand(box)
	case box.Has(keyAnswer):
		return e.dispatchAnswer(box)
	case box.Has(keyError):
		return e.dispatchError(box)
	default:
		return newErr(RequiredKeyMissing, "engine.dispatch", nil)
	}
}

func (e *Engine) dispatchCommand(box *Box) error {
	commandChunk, err := box.Get(keyCommand)
	if err != nil {
		return err
	}
	command := commandChunk.String()

	var askID Chunk
	if box.Has(keyAsk) {
		askID, _ = box.Get(keyAsk)
	}

	box.Delete(keyCommand)
	box.Delete(keyAsk)

	req := &Request{Command: command, AskID: askID, Args: box}

	responder, ok := e.responders.get(command)
	if ok {
		responder(req)
		return nil
	}

	if !req.HasAsk() {
		e.logf("amp: dropping unhandled command %q with no ask-id", command)
		return nil
	}
	return e.sendUnhandled(req.AskID, command)
}

func (e *Engine) dispatchAnswer(box *Box) error {
	askID, err := GetUint32(box, keyAnswer)
	if err != nil {
		return err
	}
	box.Delete(keyAnswer)

	pc, ok := e.calls.pop(askID)
	if !ok {
		e.logf("amp: dropping answer for unknown ask-id %d", askID)
		return nil
	}
	pc.completion(Result{Kind: ResultSuccess, Response: &Response{AskID: askID, Args: box}})
	return nil
}

func (e *Engine) dispatchError(box *Box) error {
	raw, err := box.Get(keyError)
	if err != nil {
		return err
	}
	// The _error value is documented (and historically implemented) as a
	// signed integer, even though it semantically identifies an ask-id;
	// see the design notes on this quirk. It is decoded signed here and
	// range-checked into the unsigned pending-table key space.
	signed, err := decodeBase10(raw)
	if err != nil {
		return err
	}
	if signed < 0 || signed > int64(^uint32(0)) {
		return newErr(OutOfRange, "engine.dispatch.error", nil)
	}
	askID := uint32(signed)

	var code, description Chunk
	if box.Has(keyErrorCode) {
		code, _ = box.Get(keyErrorCode)
	}
	if box.Has(keyErrorDescription) {
		description, _ = box.Get(keyErrorDescription)
	}

	pc, ok := e.calls.pop(askID)
	if !ok {
		e.logf("amp: dropping error for unknown ask-id %d", askID)
		return nil
	}
	pc.completion(Result{Kind: ResultError, Error: &ErrorReply{AskID: askID, Code: code, Description: description}})
	return nil
}
