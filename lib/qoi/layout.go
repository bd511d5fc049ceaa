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

// PackARGB packs p as 0xAARRGGBB, the element type of Image.Data.
func PackARGB(p Pixel) uint32 {
	return (uint32(p[3]) << 24) |
		(uint32(p[0]) << 16) |
		(uint32(p[1]) << 8) |
		(uint32(p[2]) << 0)
}

// UnpackARGB is the inverse of PackARGB.
func UnpackARGB(u uint32) Pixel {
	return Pixel{
		uint8(u >> 16),
		uint8(u >> 8),
		uint8(u >> 0),
		uint8(u >> 24),
	}
}

// ImageToChannels flattens a row-major grid of ARGB values into RGBA pixels.
// The grid must be non-empty and rectangular.
func ImageToChannels(grid [][]uint32) ([]Pixel, error) {
	if (len(grid) == 0) || (len(grid[0]) == 0) {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidInput)
	}
	width := len(grid[0])
	for y, row := range grid {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrInvalidInput, y, len(row), width)
		}
	}

	ret := make([]Pixel, 0, width*len(grid))
	for _, row := range grid {
		for _, u := range row {
			ret = append(ret, UnpackARGB(u))
		}
	}
	return ret, nil
}

// ChannelsToImage is the inverse of ImageToChannels. len(pixels) must equal
// width×height.
func ChannelsToImage(pixels []Pixel, height int, width int) ([][]uint32, error) {
	if (width <= 0) || (height <= 0) {
		return nil, fmt.Errorf("%w: empty %dx%d grid", ErrInvalidInput, width, height)
	} else if len(pixels) != (width * height) {
		return nil, fmt.Errorf("%w: %d pixels for a %dx%d grid", ErrInvalidInput, len(pixels), width, height)
	}

	backing := make([]uint32, len(pixels))
	for i, p := range pixels {
		backing[i] = PackARGB(p)
	}
	ret := make([][]uint32, height)
	for y := range ret {
		ret[y] = backing[y*width : (y+1)*width : (y+1)*width]
	}
	return ret, nil
}
