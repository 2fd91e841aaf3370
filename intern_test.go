package deflog_test

import (
	"bytes"
	"testing"

	deflog "github.com/Javier-varez/deferred-logging"
	"github.com/Javier-varez/deferred-logging/decoder"
)

func TestInternDeduplicatesPerSeverity(t *testing.T) {
	a := deflog.InternDebug("intern dedup: boot")
	b := deflog.InternDebug("intern dedup: boot")
	if a != b {
		t.Fatalf("identical (severity, text) pairs must share a reference: %#x vs %#x", a.Ref(), b.Ref())
	}
	c := deflog.InternInfo("intern dedup: boot")
	if c == a {
		t.Fatalf("same text at another severity must not share a reference")
	}
	if a.Ref()>>24 != uint32(deflog.DebugLevel) {
		t.Fatalf("debug ref in region %d", a.Ref()>>24)
	}
	if c.Ref()>>24 != uint32(deflog.InfoLevel) {
		t.Fatalf("info ref in region %d", c.Ref()>>24)
	}
}

func TestInternStorageCountedOnce(t *testing.T) {
	before := len(deflog.AppendCatalog(nil))
	first := deflog.InternWarning("intern storage: spin retry")
	after := len(deflog.AppendCatalog(nil))
	if after <= before {
		t.Fatalf("new string did not grow the catalog: %d -> %d", before, after)
	}
	second := deflog.InternWarning("intern storage: spin retry")
	if second != first {
		t.Fatalf("re-intern returned a different reference")
	}
	if again := len(deflog.AppendCatalog(nil)); again != after {
		t.Fatalf("re-intern grew the catalog: %d -> %d", after, again)
	}
}

func TestInternEmptyStringIsValid(t *testing.T) {
	empty := deflog.InternError("")
	other := deflog.InternError("intern empty: anchor")
	if empty == other {
		t.Fatalf("empty string must be its own entry")
	}
	catalog, err := decoder.ParseCatalog(deflog.AppendCatalog(nil))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	text, level, ok := catalog.Lookup(empty.Ref())
	if !ok || text != "" || level != deflog.ErrorLevel {
		t.Fatalf("empty entry lookup: text=%q level=%v ok=%v", text, level, ok)
	}
}

func TestInternedTextRecoverableFromCatalog(t *testing.T) {
	ref := deflog.InternInfo("intern catalog: voltage %d mV")
	catalog, err := decoder.ParseCatalog(deflog.AppendCatalog(nil))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	text, level, ok := catalog.Lookup(ref.Ref())
	if !ok {
		t.Fatalf("reference did not resolve")
	}
	if text != "intern catalog: voltage %d mV" {
		t.Fatalf("format text stored verbatim: got %q", text)
	}
	if level != deflog.InfoLevel {
		t.Fatalf("resolved into region %v", level)
	}
	found := false
	for _, s := range catalog.Strings(deflog.InfoLevel) {
		if s == "intern catalog: voltage %d mV" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("string missing from its severity region dump")
	}
}

func TestWriteCatalogMatchesAppendCatalog(t *testing.T) {
	var buf bytes.Buffer
	if err := deflog.WriteCatalog(&buf); err != nil {
		t.Fatalf("WriteCatalog: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), deflog.AppendCatalog(nil)) {
		t.Fatalf("WriteCatalog and AppendCatalog disagree")
	}
}

func TestInternRejectsInvalidInput(t *testing.T) {
	assertPanics(t, "off level", func() { deflog.Intern(deflog.OffLevel, "nope") })
	assertPanics(t, "nul byte", func() { deflog.InternDebug("bad\x00text") })
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}
