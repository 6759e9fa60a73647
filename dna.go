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

// lexicon is the five-symbol nucleotide alphabet the Permuter permutes
// over: the four bases plus the ambiguity code N (spec.md §4.2).
var lexicon = [5]byte{'A', 'C', 'G', 'T', 'N'}

// complement maps a base to its complement for reverse-complementing a
// read before windowing (spec.md §4.4 step 1). Upper- and lowercase
// ACGT are complemented within their own case; anything else
// (including N) maps to itself.
var complement = buildComplementTable()

func buildComplementTable() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	t['A'], t['T'] = 'T', 'A'
	t['C'], t['G'] = 'G', 'C'
	t['a'], t['t'] = 't', 'a'
	t['c'], t['g'] = 'g', 'c'
	return t
}

// ReverseComplement returns the reverse complement of seq. Applying it
// twice returns the original sequence (spec.md §8, "Reverse-complement
// involution").
func ReverseComplement(seq []byte) []byte {
	out := make([]byte, len(seq))
	n := len(seq)
	for i, b := range seq {
		out[n-1-i] = complement[b]
	}
	return out
}

// HammingDistance counts the positions at which two equal-length
// sequences differ. It panics if the sequences differ in length, the
// same precondition original_source/src/hamming.rs asserts.
func HammingDistance(a, b []byte) int {
	if len(a) != len(b) {
		panic("sgcount: HammingDistance requires equal-length sequences")
	}
	d := 0
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}

// baseColumn assigns a stable column index to each of the four bases,
// used by the Offsetter's positional count matrix. ok is false for any
// symbol outside ACGT (including N), which the caller spreads across
// all four columns per spec.md §4.3.
func baseColumn(c byte) (int, bool) {
	switch c {
	case 'A':
		return 0, true
	case 'C':
		return 1, true
	case 'G':
		return 2, true
	case 'T':
		return 3, true
	default:
		return -1, false
	}
}
