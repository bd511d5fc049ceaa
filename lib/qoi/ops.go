// Copyright 2025 The Qoipack Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package qoi

import (
	"fmt"
)

// The AppendOpXxx functions append a single opcode to dst and return the
// extended slice. Those that take a payload reject values that the opcode
// cannot represent.

// AppendOpRGB appends an RGB literal. p's alpha is not written.
func AppendOpRGB(dst []byte, p Pixel) []byte {
	return append(dst, opRGB, p[0], p[1], p[2])
}

// AppendOpRGBA appends an RGBA literal.
func AppendOpRGBA(dst []byte, p Pixel) []byte {
	return append(dst, opRGBA, p[0], p[1], p[2], p[3])
}

// AppendOpIndex appends a reference to cache slot index, which must be less
// than 64.
func AppendOpIndex(dst []byte, index int) ([]byte, error) {
	if (index < 0) || (cacheSize <= index) {
		return dst, fmt.Errorf("%w: index %d", ErrInvalidInput, index)
	}
	return append(dst, opIndex|uint8(index)), nil
}

// AppendOpDiff appends small per-channel deltas, each in [-2, +1].
func AppendOpDiff(dst []byte, dr int, dg int, db int) ([]byte, error) {
	if !fitsDiff(dr, dg, db) {
		return dst, fmt.Errorf("%w: diff (%d, %d, %d)", ErrInvalidInput, dr, dg, db)
	}
	return append(dst, opDiff|
		uint8((dr+2)<<4)|
		uint8((dg+2)<<2)|
		uint8((db+2)<<0)), nil
}

// AppendOpLuma appends a green delta in [-32, +31] and red and blue deltas
// whose difference from the green delta is in [-8, +7].
func AppendOpLuma(dst []byte, dr int, dg int, db int) ([]byte, error) {
	if !fitsLuma(dr, dg, db) {
		return dst, fmt.Errorf("%w: luma (%d, %d, %d)", ErrInvalidInput, dr, dg, db)
	}
	return append(dst,
		opLuma|uint8(dg+32),
		uint8((dr-dg+8)<<4)|uint8(db-dg+8),
	), nil
}

// AppendOpRun appends a run of count repetitions of the previous pixel, with
// count in [1, 62].
func AppendOpRun(dst []byte, count int) ([]byte, error) {
	if (count < 1) || (MaxRun < count) {
		return dst, fmt.Errorf("%w: run %d", ErrInvalidInput, count)
	}
	return append(dst, opRun|uint8(count-1)), nil
}

func fitsDiff(dr int, dg int, db int) bool {
	return (-2 <= dr) && (dr <= 1) &&
		(-2 <= dg) && (dg <= 1) &&
		(-2 <= db) && (db <= 1)
}

func fitsLuma(dr int, dg int, db int) bool {
	drdg, dbdg := dr-dg, db-dg
	return (-32 <= dg) && (dg <= 31) &&
		(-8 <= drdg) && (drdg <= 7) &&
		(-8 <= dbdg) && (dbdg <= 7)
}

// The DecodeOpXxx functions are the inverses of the AppendOpXxx functions.
// They take the opcode's bytes (including the tag byte) and the previous
// pixel, and return the produced pixel.

// DecodeOpRGB decodes a 4 byte RGB literal, keeping prev's alpha.
func DecodeOpRGB(src []byte, prev Pixel) (Pixel, error) {
	if (len(src) < 4) || (src[0] != opRGB) {
		return Pixel{}, fmt.Errorf("%w: bad RGB op", ErrFormat)
	}
	return Pixel{src[1], src[2], src[3], prev[3]}, nil
}

// DecodeOpRGBA decodes a 5 byte RGBA literal.
func DecodeOpRGBA(src []byte) (Pixel, error) {
	if (len(src) < 5) || (src[0] != opRGBA) {
		return Pixel{}, fmt.Errorf("%w: bad RGBA op", ErrFormat)
	}
	return Pixel{src[1], src[2], src[3], src[4]}, nil
}

// DecodeOpDiff decodes a 1 byte DIFF op relative to prev.
func DecodeOpDiff(op byte, prev Pixel) (Pixel, error) {
	if (op & opMask2) != opDiff {
		return Pixel{}, fmt.Errorf("%w: bad DIFF op", ErrFormat)
	}
	return Pixel{
		prev[0] + ((op >> 4) & 0x03) - 2,
		prev[1] + ((op >> 2) & 0x03) - 2,
		prev[2] + ((op >> 0) & 0x03) - 2,
		prev[3],
	}, nil
}

// DecodeOpLuma decodes a 2 byte LUMA op relative to prev.
func DecodeOpLuma(src []byte, prev Pixel) (Pixel, error) {
	if (len(src) < 2) || ((src[0] & opMask2) != opLuma) {
		return Pixel{}, fmt.Errorf("%w: bad LUMA op", ErrFormat)
	}
	dg := (src[0] & 0x3F) - 32
	return Pixel{
		prev[0] + dg + (src[1] >> 4) - 8,
		prev[1] + dg,
		prev[2] + dg + (src[1] & 0x0F) - 8,
		prev[3],
	}, nil
}

// DecodeOpRun fills dst[pos:] with as many copies of prev as op's run length
// says, returning the number of pixels written. It fails if the run does not
// fit in dst.
func DecodeOpRun(dst []Pixel, pos int, op byte, prev Pixel) (int, error) {
	n := int(op&0x3F) + 1
	if (pos < 0) || (n > (len(dst) - pos)) {
		return 0, fmt.Errorf("%w: run of %d overflows %d pixels", ErrFormat, n, len(dst))
	}
	for i := range n {
		dst[pos+i] = prev
	}
	return n, nil
}
