package deflog

// BackendOp identifies one backend operation observed by a Recorder.
type BackendOp int

// The four backend operations, in the order a record produces them.
const (
	OpStartMessage BackendOp = iota
	OpAppendData
	OpAppendString
	OpFinishMessage
)

// BackendCall is one recorded backend invocation.
type BackendCall struct {
	Op   BackendOp
	Tick uint64
	Data []byte
	Str  string
}

// Recorder is an instrumented backend that captures the exact call
// sequence it receives. It is meant for tests and for verifying backend
// ordering; it does no framing and holds no lock.
type Recorder struct {
	Calls []BackendCall
}

// StartMessage implements Backend.
func (r *Recorder) StartMessage(tick uint64) {
	r.Calls = append(r.Calls, BackendCall{Op: OpStartMessage, Tick: tick})
}

// AppendData implements Backend. The bytes are copied because the slice is
// only valid during the call.
func (r *Recorder) AppendData(p []byte) {
	data := make([]byte, len(p))
	copy(data, p)
	r.Calls = append(r.Calls, BackendCall{Op: OpAppendData, Data: data})
}

// AppendString implements Backend.
func (r *Recorder) AppendString(s string) {
	r.Calls = append(r.Calls, BackendCall{Op: OpAppendString, Str: s})
}

// FinishMessage implements Backend.
func (r *Recorder) FinishMessage() {
	r.Calls = append(r.Calls, BackendCall{Op: OpFinishMessage})
}

// Reset discards everything captured so far.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
