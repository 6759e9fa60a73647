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

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
)

// Counter aggregates per-guide match counts for a single input file
// (spec.md §3/§4.4).
type Counter struct {
	results      map[string]int
	totalReads   int
	matchedReads int
}

func newCounter() *Counter {
	return &Counter{results: make(map[string]int)}
}

// credit increments the count for alias and marks the current read as
// matched. It is the helper shared by every resolution branch in
// CountFile.
func (c *Counter) credit(alias []byte) {
	c.results[string(alias)]++
	c.matchedReads++
}

// Get returns the count recorded for alias, or 0 if the alias was
// never credited in this file (spec.md §4.6, "An alias absent from a
// Counter contributes 0").
func (c *Counter) Get(alias []byte) int {
	return c.results[string(alias)]
}

// TotalReads is the number of records seen in this file.
func (c *Counter) TotalReads() int { return c.totalReads }

// MatchedReads is the number of records credited to some alias.
func (c *Counter) MatchedReads() int { return c.matchedReads }

// FractionMapped reports matched_reads / total_reads (spec.md §3),
// returning 0 for an empty file rather than dividing by zero.
func (c *Counter) FractionMapped() float64 {
	if c.totalReads == 0 {
		return 0
	}
	return float64(c.matchedReads) / float64(c.totalReads)
}

// CountOptions configures a single file's streaming match (spec.md
// §4.4).
type CountOptions struct {
	Library           *Library
	Permuter          *Permuter // nil disables one-off matching (-x/--exact)
	Offset            Offset
	PositionRecursion bool
}

// CountFile streams one FASTA/FASTQ (optionally gzipped) file through
// the resolution pipeline spec.md §4.4 describes: exact lookup, then
// Permuter lookup, then +-1 position recursion, in that order, with
// the first hit winning. It is a direct generalization of
// original_source/src/counter.rs's exact-only fold, extended to the
// three-tier resolution and reverse-orientation handling spec.md §4.4
// names; original_source never captured a revision implementing all
// three in one Counter (see DESIGN.md).
func CountFile(path string, opt CountOptions) (*Counter, error) {
	reader, err := fastx.NewDefaultReader(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	c := newCounter()
	l := opt.Library.Size()

	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, path)
		}

		c.totalReads++

		seq := record.Seq.Seq
		if opt.Offset.Direction == Reverse {
			seq = ReverseComplement(seq)
		}

		i := opt.Offset.Index
		if i < 0 || i+l > len(seq) {
			continue // short read: silently unmatched (spec.md §4.4 step 2)
		}

		candidate := seq[i : i+l]

		if alias, ok := opt.Library.Contains(candidate); ok {
			c.credit(alias)
			continue
		}

		if opt.Permuter != nil {
			if parent, ok := opt.Permuter.Contains(candidate); ok {
				if alias, ok := opt.Library.Alias(parent); ok {
					c.credit(alias)
					continue
				}
			}
		}

		if opt.PositionRecursion {
			if alias, ok := recursionLookup(opt.Library, seq, i, l); ok {
				c.credit(alias)
				continue
			}
		}
	}

	return c, nil
}

// recursionLookup retries the exact lookup at offset i-1 then i+1,
// each only once and only against the Library (never the Permuter),
// per spec.md §4.4: "retry at i-1 and i+1 (each once, only as exact
// lookups against the Library); the first that hits wins. Ties are
// broken by i-1 first."
func recursionLookup(lib *Library, seq []byte, i, l int) ([]byte, bool) {
	for _, shifted := range [2]int{i - 1, i + 1} {
		if shifted < 0 || shifted+l > len(seq) {
			continue
		}
		if alias, ok := lib.Contains(seq[shifted : shifted+l]); ok {
			return alias, true
		}
	}
	return nil, false
}
