// Copyright 2025 The Qoipack Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// qoipack decodes and encodes the QOI (Quite OK Image) lossless image file
// format.
package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const description = `qoipack decodes and encodes the QOI lossless image file format.

Encode inputs BMP, GIF, JPEG, PNG, QOI, TIFF or WEBP and outputs QOI.
Decode inputs QOI and outputs PNG or NIE.

Where a path is optional and omitted, stdin is read. Output is written to
stdout. QOI input may be wrapped in a zstd frame.`

var ErrTerminalOutput = errors.New("main: refusing to write binary output to a terminal (use --force)")

// Globals are the process-wide streams. Tests replace them.
type Globals struct {
	Stdin  io.Reader
	Stdout io.Writer
}

type CLI struct {
	Verbose bool `help:"Log debug messages." short:"v"`

	Encode EncodeCmd `cmd:"" help:"Encode an image as QOI."`
	Decode DecodeCmd `cmd:"" help:"Decode a QOI image."`
	Info   InfoCmd   `cmd:"" help:"Print a QOI image's header."`
	Batch  BatchCmd  `cmd:"" help:"Convert every image in a folder, in parallel."`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("qoipack"),
		kong.Description(description),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := kctx.Run(&Globals{Stdin: os.Stdin, Stdout: os.Stdout}); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// readInput returns the contents of the file at path, or of stdin if path is
// empty.
func (g *Globals) readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(g.Stdin)
	}
	return os.ReadFile(path)
}

// writeOutput writes b to stdout, unless stdout is a terminal and force is
// false.
func (g *Globals) writeOutput(b []byte, force bool) error {
	if f, ok := g.Stdout.(*os.File); ok && !force && term.IsTerminal(int(f.Fd())) {
		return ErrTerminalOutput
	}
	_, err := g.Stdout.Write(b)
	return err
}
