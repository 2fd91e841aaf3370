package deflog

// Backend receives the framed byte stream of accepted log records. For
// every accepted record the core invokes exactly one StartMessage, then
// zero or more AppendData/AppendString calls in call-site order (the
// interned format reference is always the first append), then exactly one
// FinishMessage. The core never interleaves two records on its own, but it
// also does not serialize distinct loggers sharing one backend instance;
// a shared backend must hold its own exclusion from StartMessage through
// FinishMessage, as StreamBackend and RingBackend do.
type Backend interface {
	// StartMessage begins a new record stamped with tick. A backend may
	// reserve or allocate framing here.
	StartMessage(tick uint64)
	// AppendData appends the raw bytes of one fixed-width value. The slice
	// is only valid for the duration of the call.
	AppendData(p []byte)
	// AppendString appends one variable-length string using backend-chosen
	// framing. The framing must stay unambiguous to a consumer that knows
	// the argument slot holds a string; the shipped backends NUL-terminate.
	AppendString(s string)
	// FinishMessage seals the record. Only after it returns may the backend
	// surface or flush the record.
	FinishMessage()
}
