// Copyright 2025 The Qoipack Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"

	"github.com/nigeltao/qoipack/internal/nie"
	"github.com/nigeltao/qoipack/lib/qoi"
)

type EncodeCmd struct {
	Path       string `arg:"" optional:"" help:"Input image. Defaults to stdin."`
	Channels   uint8  `help:"Channel count to record: 3, 4, or 0 to pick from the input's opacity." default:"0"`
	ColorSpace uint8  `help:"Color space to record: 0 (sRGB, linear alpha) or 1 (all linear)." default:"0" name:"colorspace"`
	Zstd       bool   `help:"Wrap the output in a zstd frame."`
	Force      bool   `help:"Write binary output even if stdout is a terminal."`
}

func (c *EncodeCmd) Validate() error {
	switch c.Channels {
	case 0, qoi.ChannelsRGB, qoi.ChannelsRGBA:
	default:
		return fmt.Errorf("invalid channel count: %d", c.Channels)
	}
	switch c.ColorSpace {
	case qoi.ColorSpaceSRGB, qoi.ColorSpaceLinear:
	default:
		return fmt.Errorf("invalid color space: %d", c.ColorSpace)
	}
	return nil
}

func (c *EncodeCmd) Run(g *Globals) error {
	src, err := g.readInput(c.Path)
	if err != nil {
		return err
	}
	enc, err := encodeQOI(src, &qoi.EncodeOptions{
		Channels:   c.Channels,
		ColorSpace: c.ColorSpace,
	}, c.Zstd)
	if err != nil {
		return err
	}
	return g.writeOutput(enc, c.Force)
}

// encodeQOI decodes src in any registered image format and re-encodes it as
// QOI, optionally zstd-wrapped.
func encodeQOI(src []byte, options *qoi.EncodeOptions, wrap bool) ([]byte, error) {
	src, err := maybeDecompressZstd(src)
	if err != nil {
		return nil, err
	}
	m, format, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}
	b := m.Bounds()
	slog.Debug("decoded", "format", format, "width", b.Dx(), "height", b.Dy())

	buf := &bytes.Buffer{}
	if err := qoi.Encode(buf, m, options); err != nil {
		return nil, fmt.Errorf("could not encode QOI: %w", err)
	}
	slog.Debug("encoded", "bytes", buf.Len(), "raw_bytes", 4*b.Dx()*b.Dy())
	if !wrap {
		return buf.Bytes(), nil
	}
	return compressZstd(buf.Bytes())
}

// decodeQOI decodes src, a QOI file that may be zstd-wrapped.
func decodeQOI(src []byte) (image.Image, error) {
	src, err := maybeDecompressZstd(src)
	if err != nil {
		return nil, err
	}
	m, err := qoi.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("could not decode QOI: %w", err)
	}
	return m, nil
}

type DecodeCmd struct {
	Path   string `arg:"" optional:"" help:"Input QOI file. Defaults to stdin."`
	Output string `help:"Output format." enum:"png,nie-bn4" default:"png"`
	Force  bool   `help:"Write binary output even if stdout is a terminal."`
}

func (c *DecodeCmd) Run(g *Globals) error {
	src, err := g.readInput(c.Path)
	if err != nil {
		return err
	}
	m, err := decodeQOI(src)
	if err != nil {
		return err
	}

	var dst []byte
	switch c.Output {
	case "nie-bn4":
		if dst, err = nie.EncodeBN4(m); err != nil {
			return err
		}
	default:
		buf := &bytes.Buffer{}
		if err := png.Encode(buf, m); err != nil {
			return fmt.Errorf("could not encode PNG: %w", err)
		}
		dst = buf.Bytes()
	}
	return g.writeOutput(dst, c.Force)
}

type InfoCmd struct {
	Path string `arg:"" optional:"" help:"Input QOI file. Defaults to stdin."`
}

func (c *InfoCmd) Run(g *Globals) error {
	src, err := g.readInput(c.Path)
	if err != nil {
		return err
	}
	if src, err = maybeDecompressZstd(src); err != nil {
		return err
	}
	if len(src) < qoi.HeaderSize {
		return fmt.Errorf("could not read header: %w", qoi.ErrFormat)
	}
	h, err := qoi.DecodeHeader(src[:qoi.HeaderSize])
	if err != nil {
		return fmt.Errorf("could not read header: %w", err)
	}
	_, err = fmt.Fprintf(g.Stdout, "width=%d height=%d channels=%d colorspace=%d bytes=%d\n",
		h.Width, h.Height, h.Channels, h.ColorSpace, len(src))
	return err
}
