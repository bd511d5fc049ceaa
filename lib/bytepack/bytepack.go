// Copyright 2025 The Qoipack Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package bytepack provides small, allocation-explicit helpers for building
// and slicing byte buffers: concatenation, extraction, partitioning and
// big-endian 32-bit integers.
//
// Every function that returns a slice returns a freshly allocated one. None of
// them alias their arguments.
package bytepack

import (
	"errors"
)

var ErrBadArgument = errors.New("bytepack: bad argument")

// Concat returns a new slice holding the parts, in order.
func Concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	ret := make([]byte, 0, n)
	for _, p := range parts {
		ret = append(ret, p...)
	}
	return ret
}

// Extract returns a copy of the length bytes of b starting at start.
func Extract(b []byte, start int, length int) ([]byte, error) {
	if (start < 0) || (length < 0) || (start > len(b)) || (length > (len(b) - start)) {
		return nil, ErrBadArgument
	}
	ret := make([]byte, length)
	copy(ret, b[start:start+length])
	return ret, nil
}

// Partition splits b into consecutive copies whose lengths are given by sizes.
// The sizes must be non-negative and sum to len(b).
func Partition(b []byte, sizes ...int) ([][]byte, error) {
	sum := 0
	for _, s := range sizes {
		if s < 0 {
			return nil, ErrBadArgument
		}
		sum += s
	}
	if sum != len(b) {
		return nil, ErrBadArgument
	}

	ret := make([][]byte, len(sizes))
	for i, s := range sizes {
		ret[i] = make([]byte, s)
		copy(ret[i], b[:s])
		b = b[s:]
	}
	return ret, nil
}

// Equal reports whether a and b have the same length and contents. A nil
// slice equals an empty one.
func Equal(a []byte, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// AppendU32BE appends u to b in big-endian byte order.
func AppendU32BE(b []byte, u uint32) []byte {
	return append(b,
		uint8(u>>24),
		uint8(u>>16),
		uint8(u>>8),
		uint8(u>>0),
	)
}

// ToU32BE decodes a big-endian uint32. b must be exactly 4 bytes long.
func ToU32BE(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, ErrBadArgument
	}
	return (uint32(b[0]) << 24) |
		(uint32(b[1]) << 16) |
		(uint32(b[2]) << 8) |
		(uint32(b[3]) << 0), nil
}
