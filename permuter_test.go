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

func TestPermuterResolvesUniqueNeighbor(t *testing.T) {
	p := BuildPermuter([][]byte{[]byte("ACGT")})

	parent, ok := p.Contains([]byte("CCGT")) // one substitution at position 0
	require.True(t, ok)
	require.Equal(t, []byte("ACGT"), parent)

	// A library key itself is never a valid neighbor of another key.
	_, ok = p.Contains([]byte("ACGT"))
	require.False(t, ok)

	// Something at Hamming distance 2 is never indexed.
	_, ok = p.Contains([]byte("CCCT"))
	require.False(t, ok)
}

func TestPermuterEvictsAmbiguousNeighbor(t *testing.T) {
	// ACGA and ACGC both neighbor ACGG at position 3; ACGG itself must
	// resolve to neither (spec.md §4.2's ambiguity rule).
	p := BuildPermuter([][]byte{[]byte("ACGA"), []byte("ACGC")})

	_, ok := p.Contains([]byte("ACGG"))
	require.False(t, ok, "a neighbor shared by two parents must be evicted to null")

	parent, ok := p.Contains([]byte("ACGT"))
	require.False(t, ok, "ACGT is also shared by both ACGA and ACGC")
	_ = parent
}

func TestPermuterSizeCountsOnlyUnambiguousNeighbors(t *testing.T) {
	p := BuildPermuter([][]byte{[]byte("AA")})
	// length-2 sequence over a 5-symbol lexicon: 2 positions * 4
	// substitutions each = 8 candidate neighbors, none ambiguous since
	// there is only one parent key.
	require.Equal(t, 8, p.Size())
}
