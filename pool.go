// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package sgcount

import (
	"sync"
	"sync/atomic"
)

// Pool bounds how many input files are processed concurrently (spec.md
// §5: "at most --threads files are read and matched at once"). It is
// adapted from arvados/lightning's throttle: a buffered semaphore
// channel gates acquire/release, and the first error reported by any
// submitted task wins and is returned by Wait, so one bad file fails
// the run without losing track of the others already in flight.
type Pool struct {
	Max       int
	wg        sync.WaitGroup
	ch        chan struct{}
	err       atomic.Value
	setupOnce sync.Once
	errOnce   sync.Once
}

// NewPool returns a Pool allowing at most max tasks to run at once.
// max < 1 is treated as 1 (spec.md §5's default).
func NewPool(max int) *Pool {
	if max < 1 {
		max = 1
	}
	return &Pool{Max: max}
}

func (p *Pool) acquire() {
	p.setupOnce.Do(func() {
		p.ch = make(chan struct{}, p.Max)
	})
	p.wg.Add(1)
	p.ch <- struct{}{}
}

func (p *Pool) release() {
	p.wg.Done()
	<-p.ch
}

func (p *Pool) report(err error) {
	if err != nil {
		p.errOnce.Do(func() { p.err.Store(err) })
	}
}

// Err returns the first error reported by any task submitted via Go,
// or nil if none has failed (yet).
func (p *Pool) Err() error {
	err, _ := p.err.Load().(error)
	return err
}

// Wait blocks until every submitted task has finished and returns the
// first error any of them reported.
func (p *Pool) Wait() error {
	p.wg.Wait()
	return p.Err()
}

// Go submits f to run on its own goroutine once a slot is free. It
// still acquires a slot after an earlier failure, so the caller's
// Wait observes every task's completion, but refuses to start f if a
// prior task has already failed, since spec.md §5 wants the run to
// stop spawning new file-processing work once one file has errored.
func (p *Pool) Go(f func() error) {
	p.acquire()
	if p.Err() != nil {
		p.release()
		return
	}
	go func() {
		p.report(f())
		p.release()
	}()
}
