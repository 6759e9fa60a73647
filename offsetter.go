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
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Direction is the orientation half of an Offset (spec.md §4.3).
type Direction int

const (
	// Forward means the guide window starts at Index bases from the
	// 5' end of the read as given.
	Forward Direction = iota
	// Reverse means the read is reverse-complemented first, then the
	// guide window starts at Index bases from its new 5' end.
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "Reverse"
	}
	return "Forward"
}

// Offset is the (direction, index) pair telling the Counter where
// within a read the guide window begins (spec.md §3/§9).
type Offset struct {
	Direction Direction
	Index     int
}

func (o Offset) String() string {
	return o.Direction.String() + "(" + strconv.Itoa(o.Index) + ")"
}

// positionCounts builds the W x 4 positional nucleotide count matrix
// spec.md §4.3 describes: row i, column b is the number of times base
// b was observed at position i across the given sequences. An N (or
// any non-ACGT symbol) at position i contributes 1 to every column,
// since it could be any base. W is taken from the first sequence;
// longer sequences are truncated to W, matching
// original_source/src/offsetter.rs's assumption of one fixed read
// length per file (get_sequence_size uses only the first record).
func positionCounts(seqs [][]byte) *mat.Dense {
	w := len(seqs[0])
	m := mat.NewDense(w, 4, nil)
	for _, s := range seqs {
		limit := len(s)
		if limit > w {
			limit = w
		}
		for idx := 0; idx < limit; idx++ {
			if col, ok := baseColumn(s[idx]); ok {
				m.Set(idx, col, m.At(idx, col)+1)
			} else {
				for col := 0; col < 4; col++ {
					m.Set(idx, col, m.At(idx, col)+1)
				}
			}
		}
	}
	return m
}

// positionalEntropy row-normalizes the positional count matrix and
// computes the Shannon entropy of each row (spec.md §4.3), using
// gonum.org/v1/gonum/stat.Entropy in place of the Rust original's
// ndarray_stats::EntropyExt.
func positionalEntropy(seqs [][]byte) []float64 {
	m := positionCounts(seqs)
	w, _ := m.Dims()

	out := make([]float64, w)
	row := make([]float64, 4)
	for i := 0; i < w; i++ {
		mat.Row(row, i, m)
		sum := floats.Sum(row)
		if sum == 0 {
			out[i] = 0
			continue
		}
		probs := make([]float64, 4)
		for j, v := range row {
			probs[j] = v / sum
		}
		out[i] = stat.Entropy(probs)
	}
	return out
}

// meanSquaredError is a small stdlib loop rather than a gonum call:
// gonum/floats and gonum/stat expose distance norms (Distance,
// floats.Norm) but no literal elementwise mean-squared-error, and a
// 6-line loop isn't worth layering a dependency over.
func meanSquaredError(reference, window []float64) float64 {
	sum := 0.0
	for i := range reference {
		d := reference[i] - window[i]
		sum += d * d
	}
	return sum / float64(len(reference))
}

func reverseFloats(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[len(v)-1-i] = x
	}
	return out
}

func argmin(v []float64) (int, float64) {
	best := 0
	bestVal := math.Inf(1)
	for i, x := range v {
		if x < bestVal {
			best = i
			bestVal = x
		}
	}
	return best, bestVal
}

// EstimateOffset implements spec.md §4.3's offset selection: minimize
// the MSE between the library's positional entropy and every
// length-L window of the input's positional entropy, trying both the
// input as given (Forward) and reversed (Reverse), and returning
// whichever orientation's minimum MSE is smaller (ties favor Forward).
func EstimateOffset(libraryEntropy, inputEntropy []float64) (Offset, error) {
	l := len(libraryEntropy)
	w := len(inputEntropy)
	if w < l {
		return Offset{}, ErrInputShorterThanLibrary
	}

	span := w - l + 1
	mseFwd := make([]float64, span)
	for i := 0; i < span; i++ {
		mseFwd[i] = meanSquaredError(libraryEntropy, inputEntropy[i:i+l])
	}

	reversed := reverseFloats(inputEntropy)
	mseRev := make([]float64, span)
	for i := 0; i < span; i++ {
		mseRev[i] = meanSquaredError(libraryEntropy, reversed[i:i+l])
	}

	iFwd, minFwd := argmin(mseFwd)
	jRev, minRev := argmin(mseRev)

	if minFwd <= minRev {
		return Offset{Direction: Forward, Index: iFwd}, nil
	}
	return Offset{Direction: Reverse, Index: jRev}, nil
}

// LibraryEntropy computes the positional entropy profile of a
// library's guide sequences, the reference profile an input file's
// own profile is matched against.
func LibraryEntropy(lib *Library) []float64 {
	return positionalEntropy(lib.Keys())
}

// EstimateOffsetForPath computes an Offset for a single input file by
// reading up to subsample records (spec.md §4.3's default 5000),
// computing their positional entropy, and minimizing MSE against
// libraryEntropy.
func EstimateOffsetForPath(libraryEntropy []float64, path string, subsample int) (Offset, error) {
	reader, err := fastx.NewDefaultReader(path)
	if err != nil {
		return Offset{}, errors.Wrap(err, path)
	}

	seqs := make([][]byte, 0, subsample)
	for len(seqs) < subsample {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return Offset{}, errors.Wrap(err, path)
		}
		seqs = append(seqs, append([]byte(nil), record.Seq.Seq...))
	}
	if len(seqs) == 0 {
		return Offset{}, errors.Wrapf(ErrInputShorterThanLibrary, "%s: no reads", path)
	}

	inputEntropy := positionalEntropy(seqs)
	offset, err := EstimateOffset(libraryEntropy, inputEntropy)
	if err != nil {
		return Offset{}, errors.Wrap(err, path)
	}
	return offset, nil
}
