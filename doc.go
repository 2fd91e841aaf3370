// Package deflog is a deferred binary logger aimed at firmware-style
// targets: a log call site pays for a level comparison, one tick read, and
// a handful of fixed-size byte copies. The format string itself never
// travels, only a stable 32-bit interned reference does, and the human
// readable text is recovered off-device by the decoder package using a
// catalog image of the interned string pools.
//
// # Design overview
//
//   - Interning happens once, at registration time: package var blocks call
//     InternDebug/InternInfo/InternWarning/InternError so every distinct
//     (severity, text) pair owns exactly one pool entry and one stable ref.
//     The per-severity regions are kept separate in the catalog image, so a
//     catalog can be stripped of, say, the debug region without touching
//     code or the other regions.
//   - The encoder is type-directed with exactly two paths: fixed-width
//     scalars are copied raw in native byte order with no tags or length
//     prefixes, and strings take the backend's AppendString path because
//     their length is not statically known.
//   - Backends own framing, buffering, and concurrency. The core guarantees
//     a strict StartMessage, AppendData/AppendString..., FinishMessage
//     sequence per accepted record and calls nothing at all for records
//     below the threshold.
//
// # Usage
//
//	var fmtReady = deflog.InternInfo("listening on port %d")
//
//	backend := deflog.NewStreamBackend(uart)
//	logger := deflog.New(backend)
//	logger.Info(fmtReady, int32(8080))
//
// The decoder side reads the catalog emitted by WriteCatalog and turns the
// framed byte stream back into text:
//
//	catalog, _ := decoder.ParseCatalog(catalogBytes)
//	lines, _ := decoder.DecodeStream(catalog, uartBytes)
//
// # Integration notes
//
//   - SetLevel filters at the call site; below-threshold calls do no work,
//     not even the tick read.
//   - Backends shared between goroutines must serialize records themselves;
//     StreamBackend and RingBackend already carry a mutex, Recorder does
//     not.
//   - Argument types must match the format directives the decoder will
//     apply (%d pairs with int32, %ld with int64, %f with float64, %s with
//     string). Keeping the literal next to its Intern call keeps that
//     reviewable; there is no runtime check.
package deflog
