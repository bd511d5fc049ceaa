// Copyright 2025 The Qoipack Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package qoi

import (
	"image"
	"io"

	"github.com/nigeltao/qoipack/lib/bytepack"
)

// EncodeOptions are optional arguments to Encode. The zero value is valid and
// means to use the default configuration.
type EncodeOptions struct {
	// If zero, the default is ChannelsRGB for images that report themselves
	// as opaque and ChannelsRGBA otherwise.
	Channels uint8

	// ColorSpace is copied to the header. The zero value is ColorSpaceSRGB.
	ColorSpace uint8
}

// Encode writes src to w in the QOI format.
//
// options may be nil, which means to use the default configuration.
func Encode(w io.Writer, src image.Image, options *EncodeOptions) error {
	if (w == nil) || (src == nil) {
		return ErrInvalidInput
	}

	channels, colorSpace := ChannelsRGBA, ColorSpaceSRGB
	if o, ok := src.(interface{ Opaque() bool }); ok && o.Opaque() {
		channels = ChannelsRGB
	}
	if options != nil {
		if options.Channels != 0 {
			channels = options.Channels
		}
		colorSpace = options.ColorSpace
	}

	b := src.Bounds()
	h := Header{
		Width:      uint32(max(0, b.Dx())),
		Height:     uint32(max(0, b.Dy())),
		Channels:   channels,
		ColorSpace: colorSpace,
	}
	if h.NumPixels() > MaxPixels {
		return ErrImageIsTooLarge
	}
	header, err := EncodeHeader(h)
	if err != nil {
		return err
	}

	pixels := make([]Pixel, 0, h.NumPixels())
	extract := makeExtract(src)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pixels = append(pixels, extract(x, y))
		}
	}

	if _, err := w.Write(bytepack.Concat(header, EncodeData(pixels), EndMarker[:])); err != nil {
		return err
	}
	return nil
}

// EncodeFile returns the complete QOI file (header, opcodes and end marker)
// for m.
func EncodeFile(m *Image) ([]byte, error) {
	header, err := EncodeImageHeader(m)
	if err != nil {
		return nil, err
	}
	if uint64(len(m.Data))*uint64(len(m.Data[0])) > MaxPixels {
		return nil, ErrImageIsTooLarge
	}
	pixels, err := ImageToChannels(m.Data)
	if err != nil {
		return nil, err
	}
	return bytepack.Concat(header, EncodeData(pixels), EndMarker[:]), nil
}

// EncodeData returns the opcode stream for pixels, without header or end
// marker.
//
// For each pixel, the first of these that applies is chosen, which makes the
// output canonical:
//   - extend the current run, if the pixel repeats the previous one,
//   - INDEX, if the pixel is in the cache,
//   - DIFF, then LUMA, if alpha is unchanged and the deltas are small enough,
//   - an RGB literal, if alpha is unchanged,
//   - an RGBA literal.
func EncodeData(pixels []Pixel) []byte {
	e := encoder{
		dst:  make([]byte, 0, len(pixels)+(len(pixels)/2)),
		prev: StartPixel,
	}
	for i, p := range pixels {
		e.encodePixel(p, i == (len(pixels)-1))
	}
	return e.dst
}

type encoder struct {
	dst   []byte
	cache cache
	prev  Pixel
	run   int
}

func (e *encoder) encodePixel(p Pixel, last bool) {
	if p == e.prev {
		e.run++
		if (e.run == MaxRun) || last {
			e.flushRun()
		}
		return
	}
	e.flushRun()
	e.emit(p)
	e.prev = p
}

// emit appends the op for p, which differs from e.prev.
func (e *encoder) emit(p Pixel) {
	if index, hit := e.cache.lookup(p); hit {
		e.dst = append(e.dst, opIndex|index)
		return
	}
	e.cache.store(p)

	if p[3] != e.prev[3] {
		e.dst = AppendOpRGBA(e.dst, p)
		return
	}

	// Channel deltas wrap around, so that 0xFF to 0x00 is +1.
	dr := int(int8(p[0] - e.prev[0]))
	dg := int(int8(p[1] - e.prev[1]))
	db := int(int8(p[2] - e.prev[2]))

	var err error
	if fitsDiff(dr, dg, db) {
		e.dst, err = AppendOpDiff(e.dst, dr, dg, db)
	} else if fitsLuma(dr, dg, db) {
		e.dst, err = AppendOpLuma(e.dst, dr, dg, db)
	} else {
		e.dst = AppendOpRGB(e.dst, p)
	}
	if err != nil {
		panic("qoi: unreachable")
	}
}

func (e *encoder) flushRun() {
	if e.run == 0 {
		return
	}
	e.dst = append(e.dst, opRun|uint8(e.run-1))
	e.run = 0
}
