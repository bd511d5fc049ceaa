// Copyright 2025 The Qoipack Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package qoi

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLayout(tt *testing.T) {
	grid := [][]uint32{
		{0xFF102030, 0x80405060},
		{0x00000000, 0x01020304},
	}
	pixels, err := ImageToChannels(grid)
	if err != nil {
		tt.Fatalf("ImageToChannels: %v", err)
	}
	want := []Pixel{
		{0x10, 0x20, 0x30, 0xFF},
		{0x40, 0x50, 0x60, 0x80},
		{0x00, 0x00, 0x00, 0x00},
		{0x02, 0x03, 0x04, 0x01},
	}
	if diff := cmp.Diff(want, pixels); diff != "" {
		tt.Errorf("ImageToChannels mismatch (-want +got):\n%s", diff)
	}

	round, err := ChannelsToImage(pixels, 2, 2)
	if err != nil {
		tt.Fatalf("ChannelsToImage: %v", err)
	}
	if diff := cmp.Diff(grid, round); diff != "" {
		tt.Errorf("ChannelsToImage mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutInvalid(tt *testing.T) {
	badGrids := map[string][][]uint32{
		"nil":       nil,
		"empty row": {{}},
		"ragged":    {{1, 2, 3}, {4, 5}},
	}
	for name, grid := range badGrids {
		if _, err := ImageToChannels(grid); !errors.Is(err, ErrInvalidInput) {
			tt.Errorf("tc=%q: got %v, want ErrInvalidInput", name, err)
		}
	}

	pixels := make([]Pixel, 6)
	if _, err := ChannelsToImage(pixels, 2, 2); !errors.Is(err, ErrInvalidInput) {
		tt.Errorf("length mismatch: got %v, want ErrInvalidInput", err)
	}
	if _, err := ChannelsToImage(pixels, 0, 6); !errors.Is(err, ErrInvalidInput) {
		tt.Errorf("zero height: got %v, want ErrInvalidInput", err)
	}
	if _, err := ChannelsToImage(pixels, 2, 3); err != nil {
		tt.Errorf("2x3: %v", err)
	}
}

func TestFromImage(tt *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{0x40, 0x20, 0x10, 0x80})
	src.SetRGBA(1, 0, color.RGBA{0xFF, 0x00, 0x00, 0xFF})

	m, err := FromImage(src, ChannelsRGBA, ColorSpaceSRGB)
	if err != nil {
		tt.Fatalf("FromImage: %v", err)
	}
	want := [][]uint32{{0x807F3F1F, 0xFFFF0000}}
	if diff := cmp.Diff(want, m.Data); diff != "" {
		tt.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := FromImage(src, 5, ColorSpaceSRGB); !errors.Is(err, ErrInvalidInput) {
		tt.Errorf("bad channels: got %v, want ErrInvalidInput", err)
	}
	if _, err := FromImage(image.NewRGBA(image.Rectangle{}), 4, 0); !errors.Is(err, ErrInvalidInput) {
		tt.Errorf("empty: got %v, want ErrInvalidInput", err)
	}
}
