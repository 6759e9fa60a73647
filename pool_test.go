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
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolRunsAllTasks(t *testing.T) {
	p := NewPool(4)
	var completed int32

	for i := 0; i < 20; i++ {
		p.Go(func() error {
			atomic.AddInt32(&completed, 1)
			return nil
		})
	}

	require.NoError(t, p.Wait())
	require.Equal(t, int32(20), atomic.LoadInt32(&completed))
}

func TestPoolFirstErrorWins(t *testing.T) {
	p := NewPool(2)
	errBoom := errors.New("boom")
	var completed int32

	for i := 0; i < 10; i++ {
		p.Go(func() error {
			atomic.AddInt32(&completed, 1)
			return errBoom
		})
	}

	err := p.Wait()
	require.ErrorIs(t, err, errBoom)
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const max = 3
	p := NewPool(max)
	var inFlight, peak int32

	for i := 0; i < 30; i++ {
		p.Go(func() error {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
					break
				}
			}
			atomic.AddInt32(&inFlight, -1)
			return nil
		})
	}

	require.NoError(t, p.Wait())
	require.LessOrEqual(t, atomic.LoadInt32(&peak), int32(max))
}

func TestPoolDefaultsBelowOneToOne(t *testing.T) {
	p := NewPool(0)
	require.Equal(t, 1, p.Max)
}
