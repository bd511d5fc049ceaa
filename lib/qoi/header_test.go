// Copyright 2025 The Qoipack Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package qoi

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHeaderRoundTrip(tt *testing.T) {
	testCases := []Header{
		{Width: 1, Height: 1, Channels: ChannelsRGB, ColorSpace: ColorSpaceSRGB},
		{Width: 800, Height: 600, Channels: ChannelsRGBA, ColorSpace: ColorSpaceLinear},
		{Width: 0x12345678, Height: 3, Channels: ChannelsRGBA, ColorSpace: ColorSpaceSRGB},
		{Width: 0xFFFFFFFF, Height: 0xFFFFFFFF, Channels: ChannelsRGB, ColorSpace: ColorSpaceLinear},
	}

	for _, tc := range testCases {
		enc, err := EncodeHeader(tc)
		if err != nil {
			tt.Errorf("tc=%+v: EncodeHeader: %v", tc, err)
			continue
		}
		if len(enc) != HeaderSize {
			tt.Errorf("tc=%+v: length: got %d, want %d", tc, len(enc), HeaderSize)
			continue
		}
		got, err := DecodeHeader(enc)
		if err != nil {
			tt.Errorf("tc=%+v: DecodeHeader: %v", tc, err)
			continue
		}
		if diff := cmp.Diff(tc, got); diff != "" {
			tt.Errorf("tc=%+v: mismatch (-want +got):\n%s", tc, diff)
		}
	}
}

func TestEncodeHeaderLayout(tt *testing.T) {
	got, err := EncodeHeader(Header{Width: 0x0102, Height: 0x030405, Channels: 4, ColorSpace: 1})
	if err != nil {
		tt.Fatalf("EncodeHeader: %v", err)
	}
	want := []byte{
		'q', 'o', 'i', 'f',
		0x00, 0x00, 0x01, 0x02,
		0x00, 0x03, 0x04, 0x05,
		0x04,
		0x01,
	}
	if !bytes.Equal(got, want) {
		tt.Errorf("got  % 02X\nwant % 02X", got, want)
	}
}

func TestEncodeImageHeader(tt *testing.T) {
	m := &Image{
		Channels:   ChannelsRGB,
		ColorSpace: ColorSpaceLinear,
		Data: [][]uint32{
			{0xFF000000, 0xFF000000, 0xFF000000},
			{0xFF000000, 0xFF000000, 0xFF000000},
		},
	}
	enc, err := EncodeImageHeader(m)
	if err != nil {
		tt.Fatalf("EncodeImageHeader: %v", err)
	}
	got, err := DecodeHeader(enc)
	if err != nil {
		tt.Fatalf("DecodeHeader: %v", err)
	}
	want := Header{Width: 3, Height: 2, Channels: ChannelsRGB, ColorSpace: ColorSpaceLinear}
	if diff := cmp.Diff(want, got); diff != "" {
		tt.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeHeaderInvalid(tt *testing.T) {
	testCases := []Header{
		{Width: 1, Height: 1, Channels: 2, ColorSpace: 0},
		{Width: 1, Height: 1, Channels: 5, ColorSpace: 0},
		{Width: 1, Height: 1, Channels: 3, ColorSpace: 2},
		{Width: 0, Height: 1, Channels: 3, ColorSpace: 0},
		{Width: 1, Height: 0, Channels: 3, ColorSpace: 0},
	}
	for _, tc := range testCases {
		if _, err := EncodeHeader(tc); !errors.Is(err, ErrInvalidInput) {
			tt.Errorf("tc=%+v: got %v, want ErrInvalidInput", tc, err)
		}
	}

	ragged := &Image{Channels: 4, Data: [][]uint32{{0, 0}, {0}}}
	if _, err := EncodeImageHeader(ragged); !errors.Is(err, ErrInvalidInput) {
		tt.Errorf("ragged: got %v, want ErrInvalidInput", err)
	}
	if _, err := EncodeImageHeader(nil); !errors.Is(err, ErrInvalidInput) {
		tt.Errorf("nil: got %v, want ErrInvalidInput", err)
	}
}

func TestDecodeHeaderInvalid(tt *testing.T) {
	valid := []byte{'q', 'o', 'i', 'f', 0, 0, 0, 2, 0, 0, 0, 3, 4, 0}
	if _, err := DecodeHeader(valid); err != nil {
		tt.Fatalf("valid: %v", err)
	}

	mutate := func(i int, v byte) []byte {
		b := bytes.Clone(valid)
		b[i] = v
		return b
	}
	testCases := map[string][]byte{
		"short":       valid[:13],
		"long":        append(bytes.Clone(valid), 0),
		"magic":       mutate(0, 'Q'),
		"channels":    mutate(12, 1),
		"color space": mutate(13, 7),
		"zero width":  mutate(7, 0),
		"zero height": mutate(11, 0),
	}
	for name, b := range testCases {
		if _, err := DecodeHeader(b); !errors.Is(err, ErrFormat) {
			tt.Errorf("tc=%q: got %v, want ErrFormat", name, err)
		}
	}
}

func TestDecodeConfig(tt *testing.T) {
	enc, err := EncodeHeader(Header{Width: 21, Height: 32, Channels: 3, ColorSpace: 0})
	if err != nil {
		tt.Fatalf("EncodeHeader: %v", err)
	}
	config, err := DecodeConfig(bytes.NewReader(enc))
	if err != nil {
		tt.Fatalf("DecodeConfig: %v", err)
	}
	if (config.Width != 21) || (config.Height != 32) {
		tt.Errorf("got %dx%d, want 21x32", config.Width, config.Height)
	}

	if _, err := DecodeConfig(bytes.NewReader(enc[:5])); !errors.Is(err, ErrFormat) {
		tt.Errorf("truncated: got %v, want ErrFormat", err)
	}

	huge, _ := EncodeHeader(Header{Width: 100000, Height: 100000, Channels: 3, ColorSpace: 0})
	if _, err := DecodeConfig(bytes.NewReader(huge)); err != ErrImageIsTooLarge {
		tt.Errorf("huge: got %v, want ErrImageIsTooLarge", err)
	}
}
