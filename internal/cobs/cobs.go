// Package cobs implements Consistent Overhead Byte Stuffing, the framing
// the stream transport uses to delimit records with 0x00 bytes on an
// unreliable byte pipe.
package cobs

import "errors"

// ErrFrame reports a malformed COBS frame.
var ErrFrame = errors.New("cobs: malformed frame")

// Encode appends the COBS frame of p to dst, including the trailing 0x00
// delimiter, and returns the extended slice.
func Encode(dst, p []byte) []byte {
	codeIdx := len(dst)
	dst = append(dst, 0)
	code := byte(1)
	for _, b := range p {
		if b == 0 {
			dst[codeIdx] = code
			codeIdx = len(dst)
			dst = append(dst, 0)
			code = 1
			continue
		}
		dst = append(dst, b)
		code++
		if code == 0xff {
			dst[codeIdx] = code
			codeIdx = len(dst)
			dst = append(dst, 0)
			code = 1
		}
	}
	dst[codeIdx] = code
	return append(dst, 0)
}

// Decode appends the payload of one frame to dst and returns the extended
// slice. The trailing 0x00 delimiter may be present or already stripped.
func Decode(dst, frame []byte) ([]byte, error) {
	if n := len(frame); n > 0 && frame[n-1] == 0 {
		frame = frame[:n-1]
	}
	for len(frame) > 0 {
		code := frame[0]
		if code == 0 {
			return dst, ErrFrame
		}
		n := int(code) - 1
		if n > len(frame)-1 {
			return dst, ErrFrame
		}
		dst = append(dst, frame[1:1+n]...)
		frame = frame[1+n:]
		// A 0xff code means a maximum-length block with no implied zero.
		if code != 0xff && len(frame) > 0 {
			dst = append(dst, 0)
		}
	}
	return dst, nil
}
