// Package decoder is the host side of deferred logging: it maps interned
// references back to format strings using a catalog image and renders the
// framed binary records a backend captured into readable text.
package decoder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	deflog "github.com/Javier-varez/deferred-logging"
)

// ErrCatalog reports a catalog image the parser cannot use.
var ErrCatalog = errors.New("decoder: malformed catalog")

// Catalog holds the per-severity string pools recovered from a catalog
// image written by deflog.WriteCatalog.
type Catalog struct {
	regions [][]byte
}

// ParseCatalog parses a catalog image. A region may be empty, which is how
// production captures ship with lower-severity strings stripped; references
// into a stripped region simply resolve as unknown.
func ParseCatalog(image []byte) (*Catalog, error) {
	header := 4 + 2 + 2
	if len(image) < header || string(image[:4]) != deflog.CatalogMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrCatalog)
	}
	if v := binary.LittleEndian.Uint16(image[4:6]); v != deflog.CatalogVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCatalog, v)
	}
	count := int(binary.LittleEndian.Uint16(image[6:8]))
	rest := image[header:]
	regions := make([][]byte, count)
	for i := range regions {
		if len(rest) < 4 {
			return nil, fmt.Errorf("%w: truncated region table", ErrCatalog)
		}
		n := int(binary.LittleEndian.Uint32(rest[:4]))
		rest = rest[4:]
		if len(rest) < n {
			return nil, fmt.Errorf("%w: region %d shorter than declared", ErrCatalog, i)
		}
		regions[i] = rest[:n]
		rest = rest[n:]
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCatalog, len(rest))
	}
	return &Catalog{regions: regions}, nil
}

// Lookup resolves ref into its format text and severity region.
func (c *Catalog) Lookup(ref uint32) (text string, level deflog.Level, ok bool) {
	region := int(ref >> 24)
	off := int(ref & 0xffffff)
	if region >= len(c.regions) || off >= len(c.regions[region]) {
		return "", 0, false
	}
	pool := c.regions[region][off:]
	end := bytes.IndexByte(pool, 0)
	if end < 0 {
		end = len(pool)
	}
	return string(pool[:end]), deflog.Level(region), true
}

// Strings returns every format string stored in the region of level,
// in pool order. This is the carve operation: all strings a build can log
// at one severity, with no records needed.
func (c *Catalog) Strings(level deflog.Level) []string {
	region := int(level)
	if region < 0 || region >= len(c.regions) || len(c.regions[region]) == 0 {
		return nil
	}
	parts := bytes.Split(c.regions[region], []byte{0})
	// The pool ends with a NUL, so the final split element is empty.
	if n := len(parts); n > 0 && len(parts[n-1]) == 0 {
		parts = parts[:n-1]
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out
}
