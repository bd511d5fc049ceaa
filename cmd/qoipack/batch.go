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
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/alecthomas/kong"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/nigeltao/qoipack/internal/parallel"
)

type BatchCmd struct {
	Scan    string `help:"Source folder to scan." default:"."`
	Dest    string `help:"Destination folder. Relative to the scan folder if not absolute." default:"converted"`
	To      string `help:"Output format." enum:"qoi,png,bmp,tiff" default:"qoi"`
	Zstd    bool   `help:"Wrap QOI output in a zstd frame."`
	Workers int    `help:"Number of parallel workers. 0 means one per CPU." default:"0"`
}

func (c *BatchCmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", c.Workers)
	}
	return nil
}

func (c *BatchCmd) Run(g *Globals) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	pool := parallel.Start(c.Workers)
	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if !file.Type().IsRegular() {
			continue
		}

		fileName := file.Name()
		pool.Do(func() {
			filePath := filepath.Join(c.Scan, fileName)
			logger := slog.Default().With("file", filePath)

			destName, err := c.convert(filePath, fileName)
			if err != nil {
				errCount.Add(1)
				logger.Error("could not convert image", "error", err)
				return
			}
			logger.Debug("converted", "to", destName)
			processedCount.Add(1)
		})
	}
	pool.Wait()

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *BatchCmd) convert(filePath string, fileName string) (string, error) {
	src, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("could not read: %w", err)
	}

	oldExt := filepath.Ext(fileName)
	destName := strings.TrimSuffix(fileName, oldExt) + "." + c.To

	var dst []byte
	if c.To == "qoi" {
		if dst, err = encodeQOI(src, nil, c.Zstd); err != nil {
			return "", err
		}
		if c.Zstd {
			destName += ".zst"
		}
	} else {
		if src, err = maybeDecompressZstd(src); err != nil {
			return "", err
		}
		m, _, err := image.Decode(bytes.NewReader(src))
		if err != nil {
			return "", fmt.Errorf("could not decode image: %w", err)
		}
		if dst, err = encodeOther(m, c.To); err != nil {
			return "", err
		}
	}

	return destName, writeFileAtomic(c.Dest, destName, dst)
}

func encodeOther(m image.Image, format string) ([]byte, error) {
	buf := &bytes.Buffer{}
	switch format {
	case "png":
		if err := png.Encode(buf, m); err != nil {
			return nil, fmt.Errorf("could not encode PNG: %w", err)
		}
	case "bmp":
		if err := bmp.Encode(buf, m); err != nil {
			return nil, fmt.Errorf("could not encode BMP: %w", err)
		}
	case "tiff":
		if err := tiff.Encode(buf, m, nil); err != nil {
			return nil, fmt.Errorf("could not encode TIFF: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	return buf.Bytes(), nil
}

// writeFileAtomic writes b to destDir/destName via a temporary file, so that
// a failed conversion never leaves a partial output behind.
func writeFileAtomic(destDir string, destName string, b []byte) (retErr error) {
	outFile, err := os.CreateTemp(destDir, destName+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	defer func() {
		if retErr != nil {
			os.Remove(outFile.Name())
		}
	}()

	if _, err := outFile.Write(b); err != nil {
		outFile.Close()
		return fmt.Errorf("could not write temporary destination %q: %w", destName, err)
	}
	if err := outFile.Sync(); err != nil {
		outFile.Close()
		return fmt.Errorf("could not flush temporary destination %q: %w", destName, err)
	}
	if err := outFile.Close(); err != nil {
		return fmt.Errorf("could not close temporary destination %q: %w", destName, err)
	}
	if err := os.Rename(outFile.Name(), filepath.Join(destDir, destName)); err != nil {
		return fmt.Errorf("could not rename destination file %q: %w", destName, err)
	}
	return nil
}
