package deflog_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	deflog "github.com/Javier-varez/deferred-logging"
	"github.com/Javier-varez/deferred-logging/decoder"
)

var (
	fmtStream      = deflog.InternInfo("stream temperature %d mC on %s")
	fmtStreamPlain = deflog.InternWarning("stream watchdog kicked")
)

func parseCatalog(t *testing.T) *decoder.Catalog {
	t.Helper()
	catalog, err := decoder.ParseCatalog(deflog.AppendCatalog(nil))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	return catalog
}

func TestStreamRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	backend := deflog.NewStreamBackend(&buf)
	logger := deflog.NewWithOptions(backend, deflog.Options{
		Ticks: deflog.TickSourceFunc(func() uint64 { return 1234 }),
	})

	logger.Info(fmtStream, int32(21500), "sensor0")
	logger.Warning(fmtStreamPlain)

	records, err := decoder.DecodeStream(parseCatalog(t), buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeStream: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Tick != 1234 {
		t.Fatalf("tick: got %d want 1234", records[0].Tick)
	}
	if records[0].Message != "stream temperature 21500 mC on sensor0" {
		t.Fatalf("message: got %q", records[0].Message)
	}
	if records[0].Level != deflog.InfoLevel {
		t.Fatalf("level: got %v", records[0].Level)
	}
	if records[1].Message != "stream watchdog kicked" {
		t.Fatalf("message: got %q", records[1].Message)
	}
	if got := backend.Stats(); got.Records != 2 || got.Dropped != 0 {
		t.Fatalf("stats: %+v", got)
	}
}

type failingWriter struct {
	failures int
	err      error
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.failures++
	return len(p) / 2, w.err
}

func TestStreamDropAccounting(t *testing.T) {
	wantErr := errors.New("uart fifo stalled")
	var drops []deflog.RecordDrop
	backend := deflog.NewObservedStreamBackend(&failingWriter{err: wantErr}, func(d deflog.RecordDrop) {
		drops = append(drops, d)
	})
	logger := deflog.New(backend)
	logger.Warning(fmtStreamPlain)

	if got := backend.Stats(); got.Dropped != 1 || got.Records != 0 {
		t.Fatalf("stats after failed write: %+v", got)
	}
	if len(drops) != 1 {
		t.Fatalf("expected one drop callback, got %d", len(drops))
	}
	if !errors.Is(drops[0].Err, wantErr) {
		t.Fatalf("drop error: got %v want %v", drops[0].Err, wantErr)
	}
	if drops[0].Written >= drops[0].Framed {
		t.Fatalf("drop should report a partial write: %+v", drops[0])
	}
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) - 1, nil }

func TestStreamShortWriteCountsAsDrop(t *testing.T) {
	backend := deflog.NewStreamBackend(shortWriter{})
	deflog.New(backend).Warning(fmtStreamPlain)
	if got := backend.Stats(); got.Dropped != 1 {
		t.Fatalf("short write not counted: %+v", got)
	}
}

func TestStreamSharedBetweenLoggers(t *testing.T) {
	var buf bytes.Buffer
	backend := deflog.NewStreamBackend(&buf)

	const perLogger = 50
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger := deflog.New(backend)
			for j := 0; j < perLogger; j++ {
				logger.Info(fmtStream, int32(j), "shared")
			}
		}()
	}
	wg.Wait()

	records, err := decoder.DecodeStream(parseCatalog(t), buf.Bytes())
	if err != nil {
		t.Fatalf("interleaved records in shared stream: %v", err)
	}
	if len(records) != 4*perLogger {
		t.Fatalf("expected %d records, got %d", 4*perLogger, len(records))
	}
}
