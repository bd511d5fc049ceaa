// Copyright 2025 The Qoipack Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package qoi

// Hash returns p's slot in the pixel cache: (3r + 5g + 7b + 11a) mod 64.
func Hash(p Pixel) uint8 {
	h := (3 * uint32(p[0])) +
		(5 * uint32(p[1])) +
		(7 * uint32(p[2])) +
		(11 * uint32(p[3]))
	return uint8(h % cacheSize)
}

// cache is the direct-mapped table of recently seen pixels. Its zero value,
// all zero pixels, is the state at the start of every encode and decode.
type cache [cacheSize]Pixel

func (c *cache) lookup(p Pixel) (index uint8, hit bool) {
	index = Hash(p)
	return index, c[index] == p
}

func (c *cache) store(p Pixel) {
	c[Hash(p)] = p
}
