package amp

import (
	stdErrors "errors"
	"fmt"
)

// Kind is a stable protocol error code. Values and meanings are part of the
// wire-level contract: callers may switch on Kind to decide retry/backoff
// policy without parsing error strings.
type Kind int

const (
	// BadKeySize means a box key's encoded length was 0 (outside a box
	// terminator position) or exceeded 255 bytes.
	BadKeySize Kind = iota + 1
	// BadValueSize means a box value's encoded length exceeded 65535 bytes.
	BadValueSize
	// BoxEmpty means a box was terminated before any key/value pair was read.
	BoxEmpty
	// RequiredKeyMissing means a box carried none of _command, _answer, _error.
	RequiredKeyMissing
	// ProtocolInFatalState means consume was called after a prior fatal error
	// and before Reset.
	ProtocolInFatalState
	// KeyNotFound means a requested key is absent from a box.
	KeyNotFound
	// DecodeError means a value's bytes could not be decoded as the requested type.
	DecodeError
	// EncodeError means a value could not be encoded into wire bytes.
	EncodeError
	// OutOfRange means a decoded numeric value does not fit the requested width.
	OutOfRange
	// InternalError means an invariant the engine relies on was violated.
	InternalError
	// NoSuchAskKey means Cancel was given an ask-id with no matching
	// pending call.
	NoSuchAskKey
	// OutOfMemory means a buffer allocation exceeded configured limits.
	OutOfMemory
)

var kindStrings = map[Kind]string{
	BadKeySize:            "bad key size",
	BadValueSize:          "bad value size",
	BoxEmpty:              "box empty",
	RequiredKeyMissing:    "required key missing",
	ProtocolInFatalState:  "protocol in fatal state",
	KeyNotFound:           "key not found",
	DecodeError:           "decode error",
	EncodeError:           "encode error",
	OutOfRange:            "out of range",
	InternalError:         "internal error",
	NoSuchAskKey:          "no such ask key",
	OutOfMemory:           "out of memory",
}

// Strerror returns the stable human-readable description for a Kind,
// mirroring the protocol's own error-string table.
func Strerror(k Kind) string {
	if s, ok := kindStrings[k]; ok {
		return s
	}
	return "unknown error"
}

// Error is the error type returned by every exported operation in this
// package. Op names the failing operation (e.g. "box.put", "codec.int64.decode");
// Err, when non-nil, is the underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("amp: %s: %s", e.Op, Strerror(e.Kind))
	}
	return fmt.Sprintf("amp: %s: %s: %v", e.Op, Strerror(e.Kind), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, &amp.Error{Kind: amp.KeyNotFound}).
func (e *Error) Is(target error) bool {
	var other *Error
	if !stdErrors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

func newErr(kind Kind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

// KindOf returns the Kind carried by err if it is (or wraps) an *Error, and
// ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if stdErrors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
