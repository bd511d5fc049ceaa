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

	"github.com/klauspost/compress/zstd"

	"github.com/nigeltao/qoipack/lib/qoi"
)

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// maxUnwrappedSize bounds a zstd-wrapped QOI file: MaxPixels at 5 bytes per
// pixel, plus header and end marker.
const maxUnwrappedSize = (qoi.MaxPixels * 5) + qoi.HeaderSize + len(qoi.EndMarker)

func compressZstd(src []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd encoder: %w", err)
	}
	dst := enc.EncodeAll(src, make([]byte, 0, len(src)/2))
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("could not close zstd encoder: %w", err)
	}
	return dst, nil
}

// maybeDecompressZstd returns src unchanged unless it starts with a zstd frame
// header, in which case it returns the decompressed contents.
func maybeDecompressZstd(src []byte) ([]byte, error) {
	if !bytes.HasPrefix(src, zstdMagic) {
		return src, nil
	}
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxUnwrappedSize),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd decoder: %w", err)
	}
	defer dec.Close()

	dst, err := dec.DecodeAll(src, nil)
	if err != nil {
		return nil, fmt.Errorf("could not decompress zstd frame: %w", err)
	}
	return dst, nil
}
