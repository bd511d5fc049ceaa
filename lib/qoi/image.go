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
)

// Image is an in-memory QOI image: header metadata plus a row-major grid of
// 0xAARRGGBB values (see PackARGB).
type Image struct {
	Channels   uint8
	ColorSpace uint8
	Data       [][]uint32
}

// Width returns the length of the first row, or 0 for an empty grid.
func (m *Image) Width() int {
	if len(m.Data) == 0 {
		return 0
	}
	return len(m.Data[0])
}

// Height returns the number of rows.
func (m *Image) Height() int {
	return len(m.Data)
}

// Header returns m's header. It fails if m is nil, empty or not rectangular,
// or if its channel count or color space is invalid.
func (m *Image) Header() (Header, error) {
	if m == nil {
		return Header{}, ErrInvalidInput
	}
	w, h := m.Width(), m.Height()
	if (w == 0) || (h == 0) {
		return Header{}, fmt.Errorf("%w: empty %dx%d image", ErrInvalidInput, w, h)
	}
	for y, row := range m.Data {
		if len(row) != w {
			return Header{}, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrInvalidInput, y, len(row), w)
		}
	}
	if (uint64(w) > 0xFFFFFFFF) || (uint64(h) > 0xFFFFFFFF) {
		return Header{}, ErrImageIsTooLarge
	}
	ret := Header{
		Width:      uint32(w),
		Height:     uint32(h),
		Channels:   m.Channels,
		ColorSpace: m.ColorSpace,
	}
	if !validChannels(ret.Channels) {
		return Header{}, fmt.Errorf("%w: channels %d", ErrInvalidInput, ret.Channels)
	} else if !validColorSpace(ret.ColorSpace) {
		return Header{}, fmt.Errorf("%w: color space %d", ErrInvalidInput, ret.ColorSpace)
	}
	return ret, nil
}

// NRGBA converts m to a standard library image.
func (m *Image) NRGBA() (*image.NRGBA, error) {
	pixels, err := ImageToChannels(m.Data)
	if err != nil {
		return nil, err
	}
	return pixelsToNRGBA(pixels, m.Width(), m.Height()), nil
}

// FromImage converts src to an Image with the given metadata.
func FromImage(src image.Image, channels uint8, colorSpace uint8) (*Image, error) {
	if src == nil {
		return nil, ErrInvalidInput
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidInput)
	} else if (uint64(b.Dx()) * uint64(b.Dy())) > MaxPixels {
		return nil, ErrImageIsTooLarge
	}

	extract := makeExtract(src)
	data := make([][]uint32, b.Dy())
	for y := range data {
		row := make([]uint32, b.Dx())
		for x := range row {
			row[x] = PackARGB(extract(b.Min.X+x, b.Min.Y+y))
		}
		data[y] = row
	}

	m := &Image{
		Channels:   channels,
		ColorSpace: colorSpace,
		Data:       data,
	}
	if _, err := m.Header(); err != nil {
		return nil, err
	}
	return m, nil
}

// makeExtract returns a closure that returns the non-premultiplied pixel of
// src at (x, y).
func makeExtract(src image.Image) func(x int, y int) Pixel {
	if srcNRGBA, ok := src.(*image.NRGBA); ok {
		return func(x int, y int) Pixel {
			c := srcNRGBA.NRGBAAt(x, y)
			return Pixel{c.R, c.G, c.B, c.A}
		}

	} else if srcNRGBA64, ok := src.(*image.NRGBA64); ok {
		return func(x int, y int) Pixel {
			c := srcNRGBA64.NRGBA64At(x, y)
			return Pixel{
				uint8(c.R >> 8),
				uint8(c.G >> 8),
				uint8(c.B >> 8),
				uint8(c.A >> 8),
			}
		}

	} else if srcRGBA64, ok := src.(image.RGBA64Image); ok {
		return func(x int, y int) Pixel {
			c := srcRGBA64.RGBA64At(x, y)
			return unpremultiply(uint32(c.R), uint32(c.G), uint32(c.B), uint32(c.A))
		}
	}

	return func(x int, y int) Pixel {
		return unpremultiply(src.At(x, y).RGBA())
	}
}

func unpremultiply(r uint32, g uint32, b uint32, a uint32) Pixel {
	if (a != 0x0000) && (a != 0xFFFF) {
		r = (r * 0xFFFF) / a
		g = (g * 0xFFFF) / a
		b = (b * 0xFFFF) / a
	}
	return Pixel{
		uint8(r >> 8),
		uint8(g >> 8),
		uint8(b >> 8),
		uint8(a >> 8),
	}
}
