package deflog

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"sync"
)

// InternedString is an opaque, stable reference to exactly one deduplicated
// copy of a format string. References are process-wide, immutable, and
// never freed. Two Intern calls with the same severity and text return
// equal references; the same text interned at two severities yields two
// distinct references in two distinct regions.
type InternedString struct {
	ref uint32
}

// Ref exposes the 32-bit wire value of the reference. The top byte selects
// the severity region, the rest is the byte offset of the text inside that
// region's pool.
func (s InternedString) Ref() uint32 { return s.ref }

const (
	regionShift = 24
	offsetMask  = 1<<regionShift - 1
)

// Catalog image layout: magic, u16 format version, u16 region count, then
// one u32 pool length plus raw pool bytes per region in severity order.
// All header fields are little-endian regardless of host order so a
// catalog file is portable between capture and decode hosts.
const (
	CatalogMagic   = "DLIC"
	CatalogVersion = 1
)

type internRegion struct {
	pool  []byte
	index map[string]uint32
}

type internTable struct {
	mu      sync.Mutex
	regions [numLevels]internRegion
}

var interned internTable

func (t *internTable) intern(level Level, text string) InternedString {
	if level < DebugLevel || level >= OffLevel {
		panic(fmt.Sprintf("deflog: cannot intern at level %q", LevelString(level)))
	}
	if strings.IndexByte(text, 0) >= 0 {
		panic("deflog: format string contains a NUL byte")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	r := &t.regions[level]
	if off, ok := r.index[text]; ok {
		return InternedString{ref: uint32(level)<<regionShift | off}
	}
	off := uint32(len(r.pool))
	if off+uint32(len(text)) > offsetMask {
		panic("deflog: interned string region exhausted")
	}
	if r.index == nil {
		r.index = make(map[string]uint32)
	}
	r.pool = append(r.pool, text...)
	r.pool = append(r.pool, 0)
	r.index[text] = off
	return InternedString{ref: uint32(level)<<regionShift | off}
}

func (t *internTable) appendCatalog(dst []byte) []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	dst = append(dst, CatalogMagic...)
	dst = binary.LittleEndian.AppendUint16(dst, CatalogVersion)
	dst = binary.LittleEndian.AppendUint16(dst, numLevels)
	for i := range t.regions {
		pool := t.regions[i].pool
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(pool)))
		dst = append(dst, pool...)
	}
	return dst
}

// Intern registers text in the region of level and returns its stable
// reference. Interning is intended for package var blocks so the cost is
// paid at init time; a log call only ever moves the returned reference.
// Interning at OffLevel or an out-of-range level panics.
func Intern(level Level, text string) InternedString {
	return interned.intern(level, text)
}

// InternDebug registers text in the debug region.
func InternDebug(text string) InternedString { return interned.intern(DebugLevel, text) }

// InternInfo registers text in the info region.
func InternInfo(text string) InternedString { return interned.intern(InfoLevel, text) }

// InternWarning registers text in the warning region.
func InternWarning(text string) InternedString { return interned.intern(WarningLevel, text) }

// InternError registers text in the error region.
func InternError(text string) InternedString { return interned.intern(ErrorLevel, text) }

// AppendCatalog appends the catalog image of every interned string region
// to dst and returns the extended slice. The image is what the decoder
// package consumes to map references back to text.
func AppendCatalog(dst []byte) []byte {
	return interned.appendCatalog(dst)
}

// WriteCatalog writes the catalog image to w.
func WriteCatalog(w io.Writer) error {
	_, err := w.Write(interned.appendCatalog(nil))
	return err
}
