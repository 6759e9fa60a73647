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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReverseComplement(t *testing.T) {
	require.Equal(t, []byte("CAT"), ReverseComplement([]byte("ATG")))
	require.Equal(t, []byte("N"), ReverseComplement([]byte("N")))
}

func TestReverseComplementInvolution(t *testing.T) {
	seq := []byte("ACGTNACGTGGTCA")
	require.Equal(t, seq, ReverseComplement(ReverseComplement(seq)))
}

func TestHammingDistance(t *testing.T) {
	require.Equal(t, 0, HammingDistance([]byte("ACGT"), []byte("ACGT")))
	require.Equal(t, 1, HammingDistance([]byte("ACGT"), []byte("ACGA")))
	require.Equal(t, 4, HammingDistance([]byte("ACGT"), []byte("TGCA")))
}

func TestHammingDistancePanicsOnLengthMismatch(t *testing.T) {
	require.Panics(t, func() {
		HammingDistance([]byte("ACG"), []byte("ACGT"))
	})
}
