// Copyright 2025 The Qoipack Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package nie implements the NIE (Naive) image file format.
//
// It is an incomplete implementation (and hence an internal package), only
// writing the 8 bits per channel, non-premultiplied BGRA variant that
// qoipack's decoder output maps onto exactly.
//
// NIE is specified at
// https://github.com/google/wuffs/blob/main/doc/spec/nie-spec.md
package nie

import (
	"errors"
	"image"
	"image/color"
)

var (
	ErrBadArgument = errors.New("nie: bad argument")
)

// MagicBN4 is the 8 byte prefix of a bn4 NIE file.
var MagicBN4 = [8]byte{0x6E, 0xC3, 0xAF, 0x45, 0xFF, 'b', 'n', '4'}

// HeaderSize is the size of a NIE header: magic, width and height.
const HeaderSize = 16

// EncodeBN4 encodes m as a NIE file in BGRA order, non-premultiplied alpha, 4
// bytes per pixel (8 bits per channel).
func EncodeBN4(m image.Image) (ret []byte, retErr error) {
	if m == nil {
		return nil, ErrBadArgument
	}
	b := m.Bounds()
	if (b.Dx() > 0x7FFFFFFF) || (b.Dy() > 0x7FFFFFFF) {
		return nil, ErrBadArgument
	}

	ret = make([]byte, 0, HeaderSize+(4*b.Dx()*b.Dy()))
	ret = append(ret, MagicBN4[:]...)
	ret = appendU32LE(ret, uint32(b.Dx()))
	ret = appendU32LE(ret, uint32(b.Dy()))

	if m, ok := m.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := m.PixOffset(b.Min.X, y)
			row := m.Pix[i : i+(4*b.Dx())]
			for ; len(row) >= 4; row = row[4:] {
				ret = append(ret, row[2], row[1], row[0], row[3])
			}
		}
		return ret, nil
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			at := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			ret = append(ret, at.B, at.G, at.R, at.A)
		}
	}
	return ret, nil
}

func appendU32LE(b []byte, u uint32) []byte {
	return append(b,
		uint8(u>>0),
		uint8(u>>8),
		uint8(u>>16),
		uint8(u>>24),
	)
}
