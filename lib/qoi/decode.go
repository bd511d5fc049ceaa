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
	"image"
	"io"

	"github.com/nigeltao/qoipack/lib/bytepack"
)

// Decode reads a QOI image from r. The concrete type of the result is
// *image.NRGBA.
func Decode(r io.Reader) (image.Image, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	// No valid stream is longer than an RGBA literal per pixel plus the end
	// marker, so reading one byte past that is enough to reject it.
	maxLen := (int64(h.NumPixels()) * 5) + int64(len(EndMarker))
	rest, err := io.ReadAll(io.LimitReader(r, maxLen+1))
	if err != nil {
		return nil, err
	}
	if int64(len(rest)) > maxLen {
		return nil, fmt.Errorf("%w: stream is longer than %d pixels allow", ErrFormat, h.NumPixels())
	} else if len(rest) < len(EndMarker) {
		return nil, fmt.Errorf("%w: missing end marker", ErrFormat)
	}
	data := rest[:len(rest)-len(EndMarker)]
	if !bytepack.Equal(rest[len(data):], EndMarker[:]) {
		return nil, fmt.Errorf("%w: bad end marker", ErrFormat)
	}

	pixels, err := DecodeData(data, int(h.Width), int(h.Height))
	if err != nil {
		return nil, err
	}
	return pixelsToNRGBA(pixels, int(h.Width), int(h.Height)), nil
}

// DecodeFile decodes a complete QOI file (header, opcodes and end marker)
// held in memory.
func DecodeFile(b []byte) (*Image, error) {
	if len(b) < (HeaderSize + len(EndMarker)) {
		return nil, fmt.Errorf("%w: file is too short", ErrFormat)
	}
	parts, err := bytepack.Partition(b, HeaderSize, len(b)-HeaderSize-len(EndMarker), len(EndMarker))
	if err != nil {
		return nil, err
	}
	if !bytepack.Equal(parts[2], EndMarker[:]) {
		return nil, fmt.Errorf("%w: bad end marker", ErrFormat)
	}

	h, err := DecodeHeader(parts[0])
	if err != nil {
		return nil, err
	}
	if h.NumPixels() > MaxPixels {
		return nil, ErrImageIsTooLarge
	}

	pixels, err := DecodeData(parts[1], int(h.Width), int(h.Height))
	if err != nil {
		return nil, err
	}
	data, err := ChannelsToImage(pixels, int(h.Height), int(h.Width))
	if err != nil {
		return nil, err
	}
	return &Image{
		Channels:   h.Channels,
		ColorSpace: h.ColorSpace,
		Data:       data,
	}, nil
}

// DecodeData decodes an opcode stream (without header or end marker) into
// exactly width×height pixels. Every byte of data must be consumed.
func DecodeData(data []byte, width int, height int) ([]Pixel, error) {
	if (width <= 0) || (height <= 0) {
		return nil, fmt.Errorf("%w: empty %dx%d image", ErrInvalidInput, width, height)
	} else if (uint64(width) * uint64(height)) > MaxPixels {
		return nil, ErrImageIsTooLarge
	}

	d := decoder{
		src:  data,
		dst:  make([]Pixel, width*height),
		prev: StartPixel,
	}
	for d.pos < len(d.dst) {
		if d.idx >= len(d.src) {
			return nil, fmt.Errorf("%w: truncated after %d of %d pixels", ErrFormat, d.pos, len(d.dst))
		}
		if err := d.decodeOp(); err != nil {
			return nil, err
		}
	}
	if d.idx != len(d.src) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrFormat, len(d.src)-d.idx)
	}
	return d.dst, nil
}

type decoder struct {
	src   []byte
	idx   int
	dst   []Pixel
	pos   int
	cache cache
	prev  Pixel
}

func (d *decoder) decodeOp() (err error) {
	op := d.src[d.idx]
	p := Pixel{}

	switch {
	case op == opRGB:
		if p, err = DecodeOpRGB(d.src[d.idx:], d.prev); err != nil {
			return err
		}
		d.idx += 4

	case op == opRGBA:
		if p, err = DecodeOpRGBA(d.src[d.idx:]); err != nil {
			return err
		}
		d.idx += 5

	case (op & opMask2) == opIndex:
		p = d.cache[op&0x3F]
		d.idx += 1

	case (op & opMask2) == opDiff:
		if p, err = DecodeOpDiff(op, d.prev); err != nil {
			return err
		}
		d.idx += 1

	case (op & opMask2) == opLuma:
		if p, err = DecodeOpLuma(d.src[d.idx:], d.prev); err != nil {
			return err
		}
		d.idx += 2

	case (op & opMask2) == opRun:
		n := 0
		if n, err = DecodeOpRun(d.dst, d.pos, op, d.prev); err != nil {
			return err
		}
		d.idx += 1
		d.pos += n
		d.cache.store(d.prev)
		return nil

	default:
		panic("qoi: unreachable")
	}

	d.dst[d.pos] = p
	d.pos++
	d.cache.store(p)
	d.prev = p
	return nil
}

func pixelsToNRGBA(pixels []Pixel, width int, height int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, p := range pixels {
		copy(m.Pix[4*i:4*i+4], p[:])
	}
	return m
}
