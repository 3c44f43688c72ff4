package amp

import (
	stderrors "errors"
	"fmt"
)

// WriteFunc is the single mutable out-channel an Engine uses to hand
// serialized bytes to the transport. The callback adopts the slice; Go's
// garbage collector makes the move-on-handoff contract automatic, so
// implementations are free to retain, queue, or copy it. A non-nil return
// is surfaced synchronously from Call/CallNoAnswer/Respond/RespondError.
type WriteFunc func(data []byte) error

// Engine is the protocol core: one per connection, single-threaded,
// non-reentrant-unsafe by design. Callers serialize access; the engine
// itself performs no locking. Responders and completions may call back
// into the engine (Call, Respond, Cancel) from within Consume — such
// reentrancy is supported and preserves wire ordering of later callbacks.
type Engine struct {
	parser     *wireParser
	calls      *callTable
	responders *responderTable

	askCounter uint32

	writeFn WriteFunc
	logFn   func(string)

	fatal    bool
	fatalErr error
}

// NewEngine constructs a ready-to-use Engine with no write handler and no
// registered responders.
func NewEngine() *Engine {
	return &Engine{
		parser:     newWireParser(),
		calls:      newCallTable(),
		responders: newResponderTable(),
	}
}

// SetWriteHandler registers the sink that receives serialized outgoing boxes.
func (e *Engine) SetWriteHandler(fn WriteFunc) {
	e.writeFn = fn
}

// SetLogger registers the single process-... well, engine-wide logging
// sink. A nil fn disables logging. Messages carry no level and no
// structured fields, matching the protocol's minimal logging contract.
func (e *Engine) SetLogger(fn func(string)) {
	e.logFn = fn
}

func (e *Engine) logf(format string, args ...any) {
	if e.logFn != nil {
		e.logFn(fmt.Sprintf(format, args...))
	}
}

func (e *Engine) write(data []byte) error {
	if e.writeFn == nil {
		return newErr(InternalError, "engine.write", fmt.Errorf("no write handler registered"))
	}
	return e.writeFn(data)
}

// Reset clears parser state, any partially-assembled box, and the fatal
// flag, returning the engine to its freshly-constructed parsing state.
// Pending calls and registered responders are untouched.
func (e *Engine) Reset() {
	e.parser.reset()
	e.fatal = false
	e.fatalErr = nil
}

// Consume feeds bytes read from the transport into the engine. It may
// synchronously invoke zero or more responder and completion callbacks, one
// per box fully parsed from data, strictly in wire order. If the engine is
// already in a fatal state from a previous call, it immediately returns
// ProtocolInFatalState without examining data.
func (e *Engine) Consume(data []byte) error {
	if e.fatal {
		return newErr(ProtocolInFatalState, "engine.consume", e.fatalErr)
	}

	var dispatchErrs []error
	_, err := e.parser.feed(data, func(box *Box) {
		if derr := e.dispatch(box); derr != nil {
			e.logf("dispatch error: %v", derr)
			dispatchErrs = append(dispatchErrs, derr)
		}
	})
	if err != nil {
		e.fatal = true
		e.fatalErr = err
		return err
	}
	if len(dispatchErrs) > 0 {
		return stderrors.Join(dispatchErrs...)
	}
	return nil
}

// nextAskID pre-increments the 32-bit counter, so the first id issued is 1;
// it wraps to 0 on overflow past math.MaxUint32, matching Go's defined
// unsigned-integer wraparound.
func (e *Engine) nextAskID() uint32 {
	e.askCounter++
	return e.askCounter
}

// Call issues an asynchronous request expecting a reply. It allocates the
// next ask-id, injects _command and decimal-encoded _ask into args,
// registers completion against that id, and writes the serialized box. If
// the write fails, the pending-table entry is rolled back before the error
// is returned, and completion is never invoked.
func (e *Engine) Call(command string, args *Box, completion Completion) (uint32, error) {
	if args == nil {
		args = NewBox()
	}
	askID := e.nextAskID()
	if err := args.Put(keyCommand, Chunk(command)); err != nil {
		return 0, err
	}
	if err := PutUint32(args, keyAsk, askID); err != nil {
		return 0, err
	}

	e.calls.put(askID, completion)
	data, err := Serialize(args)
	if err != nil {
		e.calls.remove(askID)
		return 0, err
	}
	if err := e.write(data); err != nil {
		e.calls.remove(askID)
		return 0, err
	}
	return askID, nil
}

// CallNoAnswer issues a fire-and-forget request: _command is injected, any
// stale _ask the caller left in args is stripped, and no completion is
// registered.
func (e *Engine) CallNoAnswer(command string, args *Box) error {
	if args == nil {
		args = NewBox()
	}
	args.Delete(keyAsk)
	if err := args.Put(keyCommand, Chunk(command)); err != nil {
		return err
	}
	data, err := Serialize(args)
	if err != nil {
		return err
	}
	return e.write(data)
}

// Cancel synchronously delivers Result{Kind: ResultCancelled} to the
// completion registered for askID and removes it from the pending table.
// Nothing is sent on the wire; a subsequently arriving _answer/_error for
// this id will be silently dropped by dispatch. Returns NoSuchAskKey if no
// call is pending under askID.
func (e *Engine) Cancel(askID uint32) error {
	pc, ok := e.calls.pop(askID)
	if !ok {
		return newErr(NoSuchAskKey, "engine.cancel", nil)
	}
	pc.completion(Result{Kind: ResultCancelled})
	return nil
}

// AddResponder registers fn to handle incoming requests for command name.
// A later registration for the same name replaces the earlier one.
func (e *Engine) AddResponder(name string, fn Responder) {
	e.responders.add(name, fn)
}

// RemoveResponder unregisters the responder for name, if any.
func (e *Engine) RemoveResponder(name string) {
	e.responders.remove(name)
}

// Respond replies to req, which must carry an ask-id, by injecting _answer
// set to req.AskID's bytes verbatim (not re-encoded) into args and writing
// the serialized box.
func (e *Engine) Respond(req *Request, args *Box) error {
	if !req.HasAsk() {
		return newErr(InternalError, "engine.respond", fmt.Errorf("request has no ask-id"))
	}
	if args == nil {
		args = NewBox()
	}
	if err := args.Put(keyAnswer, req.AskID); err != nil {
		return err
	}
	data, err := Serialize(args)
	if err != nil {
		return err
	}
	return e.write(data)
}

// RespondError replies to req with an error box: _error set to req.AskID's
// bytes verbatim, plus optional _error_code and _error_description.
func (e *Engine) RespondError(req *Request, code, description string) error {
	if !req.HasAsk() {
		return newErr(InternalError, "engine.respond_error", fmt.Errorf("request has no ask-id"))
	}
	box := NewBox()
	if err := box.Put(keyError, req.AskID); err != nil {
		return err
	}
	if code != "" {
		if err := box.Put(keyErrorCode, Chunk(code)); err != nil {
			return err
		}
	}
	if description != "" {
		if err := box.Put(keyErrorDescription, Chunk(description)); err != nil {
			return err
		}
	}
	data, err := Serialize(box)
	if err != nil {
		return err
	}
	return e.write(data)
}

// sendUnhandled replies to an unrecognized command whose request carried an
// ask-id, using the standard UNHANDLED error code.
func (e *Engine) sendUnhandled(askID Chunk, command string) error {
	box := NewBox()
	if err := box.Put(keyError, askID); err != nil {
		return err
	}
	_ = box.Put(keyErrorCode, Chunk(ErrorCodeUnhandled))
	_ = box.Put(keyErrorDescription, Chunk(fmt.Sprintf("Unhandled Command: '%s'", command)))
	data, err := Serialize(box)
	if err != nil {
		return err
	}
	return e.write(data)
}
