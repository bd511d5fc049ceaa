// Copyright 2025 The Qoipack Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package bytepack

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConcat(tt *testing.T) {
	got := Concat([]byte("qoif"), nil, []byte{}, []byte{0x01, 0x02})
	want := []byte{'q', 'o', 'i', 'f', 0x01, 0x02}
	if diff := cmp.Diff(want, got); diff != "" {
		tt.Errorf("Concat mismatch (-want +got):\n%s", diff)
	}

	if got := Concat(); len(got) != 0 {
		tt.Errorf("Concat(): got %d bytes, want 0", len(got))
	}
}

func TestConcatDoesNotAlias(tt *testing.T) {
	a := []byte{1, 2, 3}
	got := Concat(a)
	got[0] = 9
	if a[0] != 1 {
		tt.Errorf("Concat aliased its argument")
	}
}

func TestExtract(tt *testing.T) {
	src := []byte{0, 1, 2, 3, 4, 5}
	testCases := []struct {
		start, length int
		want          []byte
		wantErr       bool
	}{
		{0, 0, []byte{}, false},
		{0, 6, []byte{0, 1, 2, 3, 4, 5}, false},
		{2, 3, []byte{2, 3, 4}, false},
		{6, 0, []byte{}, false},
		{5, 2, nil, true},
		{-1, 2, nil, true},
		{1, -1, nil, true},
		{7, 0, nil, true},
	}

	for _, tc := range testCases {
		got, err := Extract(src, tc.start, tc.length)
		if tc.wantErr {
			if err != ErrBadArgument {
				tt.Errorf("start=%d length=%d: got err %v, want ErrBadArgument", tc.start, tc.length, err)
			}
			continue
		}
		if err != nil {
			tt.Errorf("start=%d length=%d: %v", tc.start, tc.length, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			tt.Errorf("start=%d length=%d: mismatch (-want +got):\n%s", tc.start, tc.length, diff)
		}
	}
}

func TestPartition(tt *testing.T) {
	src := []byte("qoifWWWWHHHHcsbody")
	got, err := Partition(src, 4, 4, 4, 1, 1, 4)
	if err != nil {
		tt.Fatalf("Partition: %v", err)
	}
	want := [][]byte{
		[]byte("qoif"),
		[]byte("WWWW"),
		[]byte("HHHH"),
		[]byte("c"),
		[]byte("s"),
		[]byte("body"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		tt.Errorf("Partition mismatch (-want +got):\n%s", diff)
	}

	if _, err := Partition(src, 4, 4); err != ErrBadArgument {
		tt.Errorf("short sizes: got %v, want ErrBadArgument", err)
	}
	if _, err := Partition(src, 20, -2); err != ErrBadArgument {
		tt.Errorf("negative size: got %v, want ErrBadArgument", err)
	}
}

func TestEqual(tt *testing.T) {
	if !Equal(nil, []byte{}) {
		tt.Errorf("Equal(nil, empty): got false")
	}
	if !Equal([]byte{1, 2}, []byte{1, 2}) {
		tt.Errorf("Equal(12, 12): got false")
	}
	if Equal([]byte{1, 2}, []byte{1, 3}) {
		tt.Errorf("Equal(12, 13): got true")
	}
	if Equal([]byte{1}, []byte{1, 0}) {
		tt.Errorf("Equal(1, 10): got true")
	}
}

func TestU32BE(tt *testing.T) {
	testCases := []uint32{0, 1, 0xFF, 0x0100, 0x12345678, 0xFFFFFFFF}
	for _, tc := range testCases {
		b := AppendU32BE([]byte{0xAA}, tc)
		if len(b) != 5 || b[0] != 0xAA {
			tt.Errorf("tc=0x%08X: AppendU32BE clobbered its prefix: % 02X", tc, b)
			continue
		}
		got, err := ToU32BE(b[1:])
		if err != nil {
			tt.Errorf("tc=0x%08X: ToU32BE: %v", tc, err)
		} else if got != tc {
			tt.Errorf("tc=0x%08X: ToU32BE: got 0x%08X", tc, got)
		}
	}

	if b := AppendU32BE(nil, 0x12345678); !Equal(b, []byte{0x12, 0x34, 0x56, 0x78}) {
		tt.Errorf("AppendU32BE: got % 02X, want 12 34 56 78", b)
	}
	if _, err := ToU32BE([]byte{1, 2, 3}); err != ErrBadArgument {
		tt.Errorf("ToU32BE(3 bytes): got %v, want ErrBadArgument", err)
	}
}
