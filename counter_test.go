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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFasta(t *testing.T, records map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reads.fasta")
	var content string
	// Preserve a stable order for deterministic test fixtures.
	for _, name := range []string{"read1", "read2", "read3", "read4"} {
		if seq, ok := records[name]; ok {
			content += ">" + name + "\n" + seq + "\n"
		}
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCountFileExactMatch(t *testing.T) {
	lib, err := BuildLibrary([]Entry{{Seq: []byte("ACGT"), Alias: []byte("sgrna1")}})
	require.NoError(t, err)

	path := writeFasta(t, map[string]string{"read1": "ACGTAAAA"})

	counter, err := CountFile(path, CountOptions{
		Library: lib,
		Offset:  Offset{Direction: Forward, Index: 0},
	})
	require.NoError(t, err)
	require.Equal(t, 1, counter.Get([]byte("sgrna1")))
	require.Equal(t, 1, counter.TotalReads())
	require.Equal(t, 1, counter.MatchedReads())
	require.Equal(t, 1.0, counter.FractionMapped())
}

func TestCountFileOneOffDisambiguation(t *testing.T) {
	lib, err := BuildLibrary([]Entry{{Seq: []byte("ACGT"), Alias: []byte("sgrna1")}})
	require.NoError(t, err)
	permuter := BuildPermuter(lib.Keys())

	path := writeFasta(t, map[string]string{"read1": "CCGTAAAA"}) // one substitution at position 0

	counter, err := CountFile(path, CountOptions{
		Library:  lib,
		Permuter: permuter,
		Offset:   Offset{Direction: Forward, Index: 0},
	})
	require.NoError(t, err)
	require.Equal(t, 1, counter.Get([]byte("sgrna1")))
}

func TestCountFileExactDisabledWithoutPermuter(t *testing.T) {
	lib, err := BuildLibrary([]Entry{{Seq: []byte("ACGT"), Alias: []byte("sgrna1")}})
	require.NoError(t, err)

	path := writeFasta(t, map[string]string{"read1": "CCGTAAAA"})

	counter, err := CountFile(path, CountOptions{
		Library: lib,
		Offset:  Offset{Direction: Forward, Index: 0},
	})
	require.NoError(t, err)
	require.Equal(t, 0, counter.Get([]byte("sgrna1")))
	require.Equal(t, 0, counter.MatchedReads())
}

func TestCountFilePositionRecursion(t *testing.T) {
	lib, err := BuildLibrary([]Entry{{Seq: []byte("ACGT"), Alias: []byte("sgrna1")}})
	require.NoError(t, err)

	// A leading insertion shifts the guide one base to the right of the
	// estimated offset; only +1 position recursion recovers it.
	path := writeFasta(t, map[string]string{"read1": "AACGTTTT"})

	counter, err := CountFile(path, CountOptions{
		Library:           lib,
		Offset:            Offset{Direction: Forward, Index: 0},
		PositionRecursion: true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, counter.Get([]byte("sgrna1")))
}

func TestCountFileNoPositionRecursionMisses(t *testing.T) {
	lib, err := BuildLibrary([]Entry{{Seq: []byte("ACGT"), Alias: []byte("sgrna1")}})
	require.NoError(t, err)

	path := writeFasta(t, map[string]string{"read1": "AACGTTTT"})

	counter, err := CountFile(path, CountOptions{
		Library:           lib,
		Offset:            Offset{Direction: Forward, Index: 0},
		PositionRecursion: false,
	})
	require.NoError(t, err)
	require.Equal(t, 0, counter.Get([]byte("sgrna1")))
}

func TestCountFileReverseOrientation(t *testing.T) {
	lib, err := BuildLibrary([]Entry{{Seq: []byte("ACGT"), Alias: []byte("sgrna1")}})
	require.NoError(t, err)

	// ReverseComplement("AAAAACGT") == "ACGTTTTT", so the guide sits at
	// offset 0 once the read is reverse-complemented.
	path := writeFasta(t, map[string]string{"read1": "AAAAACGT"})

	counter, err := CountFile(path, CountOptions{
		Library: lib,
		Offset:  Offset{Direction: Reverse, Index: 0},
	})
	require.NoError(t, err)
	require.Equal(t, 1, counter.Get([]byte("sgrna1")))
}

func TestCountFileShortReadUnmatched(t *testing.T) {
	lib, err := BuildLibrary([]Entry{{Seq: []byte("ACGTACGT"), Alias: []byte("sgrna1")}})
	require.NoError(t, err)

	path := writeFasta(t, map[string]string{"read1": "ACGT"}) // shorter than the library guide length

	counter, err := CountFile(path, CountOptions{
		Library: lib,
		Offset:  Offset{Direction: Forward, Index: 0},
	})
	require.NoError(t, err)
	require.Equal(t, 1, counter.TotalReads())
	require.Equal(t, 0, counter.MatchedReads())
}

func TestCounterAdditivity(t *testing.T) {
	lib, err := BuildLibrary([]Entry{{Seq: []byte("ACGT"), Alias: []byte("sgrna1")}})
	require.NoError(t, err)

	path := writeFasta(t, map[string]string{
		"read1": "ACGTAAAA",
		"read2": "ACGTAAAA",
		"read3": "TTTTTTTT",
	})

	counter, err := CountFile(path, CountOptions{
		Library: lib,
		Offset:  Offset{Direction: Forward, Index: 0},
	})
	require.NoError(t, err)
	require.Equal(t, 2, counter.Get([]byte("sgrna1")))
	require.Equal(t, 3, counter.TotalReads())
	require.Equal(t, 2, counter.MatchedReads())
	require.InDelta(t, 2.0/3.0, counter.FractionMapped(), 1e-9)
}
