// Copyright 2025 The Qoipack Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package qoi implements the QOI (Quite OK Image) lossless image file format.
//
// A QOI file is a 14 byte header (magic, width, height, channel count and
// color space), followed by a stream of variable length opcodes, followed by
// an 8 byte end marker. Each opcode produces one or more pixels, either from
// literal channel values, from a small delta against the previous pixel, from
// a 64 slot cache of recently seen pixels or by repeating the previous pixel.
//
// The whole image is held in memory during encoding and decoding. There is no
// shared state between calls: each call owns its own cache and previous pixel
// and returns freshly allocated buffers.
//
// QOI is specified at https://qoiformat.org/qoi-specification.pdf
package qoi

import (
	"errors"
	"image"
)

// Magic is the byte string prefix of every QOI image file.
const Magic = "qoif"

func init() {
	image.RegisterFormat("qoi", Magic, Decode, DecodeConfig)
}

var (
	// ErrFormat means that the encoded bytes are malformed: a bad header, a
	// truncated or over-long opcode stream, or a missing end marker.
	ErrFormat = errors.New("qoi: format error")

	// ErrInvalidInput means that a caller-supplied argument (pixel grid,
	// header field or opcode payload) is outside of what the format allows.
	ErrInvalidInput = errors.New("qoi: invalid input")

	// ErrImageIsTooLarge means that width×height exceeds MaxPixels.
	ErrImageIsTooLarge = errors.New("qoi: image is too large")
)

const (
	// HeaderSize is the size, in bytes, of a QOI file header.
	HeaderSize = 14

	// MaxPixels bounds width×height for both encoding and decoding. At 5
	// bytes per pixel (the worst case) this keeps encoded files under 2 GB.
	MaxPixels = 400_000_000

	// MaxRun is the longest run that a single RUN opcode can express.
	MaxRun = 62

	cacheSize = 64
)

// EndMarker is the 8 byte trailer of every QOI image file.
var EndMarker = [8]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}

// Channel counts. They are metadata only: every Pixel carries alpha.
const (
	ChannelsRGB  = uint8(3)
	ChannelsRGBA = uint8(4)
)

// Color space tags. Like the channel count, they are metadata only and the
// codec never converts between them.
const (
	ColorSpaceSRGB   = uint8(0)
	ColorSpaceLinear = uint8(1)
)

// Opcode tags. The RGB and RGBA literals use a full byte. The other four use
// the top two bits.
const (
	opIndex = 0x00
	opDiff  = 0x40
	opLuma  = 0x80
	opRun   = 0xC0
	opRGB   = 0xFE
	opRGBA  = 0xFF

	opMask2 = 0xC0
)

// Pixel is a non-premultiplied color, in R, G, B, A order.
type Pixel [4]uint8

// StartPixel is the implicit previous pixel before the first one.
var StartPixel = Pixel{0x00, 0x00, 0x00, 0xFF}

func validChannels(c uint8) bool {
	return (c == ChannelsRGB) || (c == ChannelsRGBA)
}

func validColorSpace(c uint8) bool {
	return (c == ColorSpaceSRGB) || (c == ColorSpaceLinear)
}
