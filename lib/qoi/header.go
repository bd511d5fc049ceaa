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
	"image/color"
	"io"

	"github.com/nigeltao/qoipack/lib/bytepack"
)

// Header is the fixed size prefix of a QOI file.
type Header struct {
	Width      uint32
	Height     uint32
	Channels   uint8
	ColorSpace uint8
}

// NumPixels returns Width×Height.
func (h Header) NumPixels() uint64 {
	return uint64(h.Width) * uint64(h.Height)
}

// EncodeHeader returns the HeaderSize bytes encoding h.
func EncodeHeader(h Header) ([]byte, error) {
	if !validChannels(h.Channels) {
		return nil, fmt.Errorf("%w: channels %d", ErrInvalidInput, h.Channels)
	} else if !validColorSpace(h.ColorSpace) {
		return nil, fmt.Errorf("%w: color space %d", ErrInvalidInput, h.ColorSpace)
	} else if (h.Width == 0) || (h.Height == 0) {
		return nil, fmt.Errorf("%w: empty %dx%d image", ErrInvalidInput, h.Width, h.Height)
	}

	ret := make([]byte, 0, HeaderSize)
	ret = append(ret, Magic...)
	ret = bytepack.AppendU32BE(ret, h.Width)
	ret = bytepack.AppendU32BE(ret, h.Height)
	return append(ret, h.Channels, h.ColorSpace), nil
}

// EncodeImageHeader returns the header bytes for m.
func EncodeImageHeader(m *Image) ([]byte, error) {
	h, err := m.Header()
	if err != nil {
		return nil, err
	}
	return EncodeHeader(h)
}

// DecodeHeader parses a header. b must be exactly HeaderSize bytes long.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) != HeaderSize {
		return Header{}, fmt.Errorf("%w: header length %d", ErrFormat, len(b))
	}
	parts, err := bytepack.Partition(b, 4, 4, 4, 1, 1)
	if err != nil {
		return Header{}, err
	}
	if !bytepack.Equal(parts[0], []byte(Magic)) {
		return Header{}, fmt.Errorf("%w: not a QOI file", ErrFormat)
	}

	h := Header{
		Channels:   parts[3][0],
		ColorSpace: parts[4][0],
	}
	if h.Width, err = bytepack.ToU32BE(parts[1]); err != nil {
		return Header{}, err
	}
	if h.Height, err = bytepack.ToU32BE(parts[2]); err != nil {
		return Header{}, err
	}

	if !validChannels(h.Channels) {
		return Header{}, fmt.Errorf("%w: channels %d", ErrFormat, h.Channels)
	} else if !validColorSpace(h.ColorSpace) {
		return Header{}, fmt.Errorf("%w: color space %d", ErrFormat, h.ColorSpace)
	} else if (h.Width == 0) || (h.Height == 0) {
		return Header{}, fmt.Errorf("%w: empty %dx%d image", ErrFormat, h.Width, h.Height)
	}
	return h, nil
}

func readHeader(r io.Reader) (Header, error) {
	buf := [HeaderSize]byte{}
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Header{}, fmt.Errorf("%w: short header", ErrFormat)
		}
		return Header{}, err
	}
	h, err := DecodeHeader(buf[:])
	if err != nil {
		return Header{}, err
	}
	if h.NumPixels() > MaxPixels {
		return Header{}, ErrImageIsTooLarge
	}
	return h, nil
}

// DecodeConfig reads a QOI image configuration from r.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := readHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(h.Width),
		Height:     int(h.Height),
	}, nil
}
