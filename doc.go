// Package amp implements the Asynchronous Messaging Protocol: a symmetric,
// bidirectional request/response messaging protocol carrying structured
// key/value "boxes" of bytes over an opaque byte stream.
//
// The package is transport-agnostic. An Engine consumes bytes via Consume
// and emits bytes via a registered WriteFunc; callers own the event loop,
// the connection lifecycle, and framing beyond the single AMP packet
// terminator. Both peers of a connection use the same Engine type — there
// is no client/server distinction, since either side may issue Call and
// either side may register responders via AddResponder.
package amp
