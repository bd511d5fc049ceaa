// Copyright 2025 The Qoipack Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// Package parallel runs independent per-file conversions on a fixed number of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Pool runs tasks submitted with Do. A Pool with a single worker runs each
// task synchronously, inside Do.
type Pool struct {
	wg    sync.WaitGroup
	work  chan func()
	close func()
}

// Start returns a Pool with numWorkers goroutines. A non-positive numWorkers
// means runtime.GOMAXPROCS(0).
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{close: func() {}}
	if numWorkers == 1 {
		return p
	}

	p.work = make(chan func(), numWorkers)
	for range numWorkers {
		p.wg.Go(func() {
			for f := range p.work {
				f()
			}
		})
	}
	p.close = sync.OnceFunc(func() { close(p.work) })
	return p
}

// Do submits f. It blocks while every worker is busy and the queue is full.
// Do must not be called after Wait.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Wait stops accepting tasks and returns once every submitted task has
// finished.
func (p *Pool) Wait() {
	p.close()
	p.wg.Wait()
}
