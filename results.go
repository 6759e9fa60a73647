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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
)

// WriteResultsOptions configures the results table emitted by
// WriteResults (spec.md §4.6).
type WriteResultsOptions struct {
	Library     *Library
	SampleNames []string
	Counters    []*Counter // one per SampleNames entry, same order
	GeneMap     *GeneMap   // nil omits the Gene column
	IncludeZero bool
}

// WriteResults joins per-sample Counters into a guide-by-sample TSV,
// writing to path, or to stdout when path is empty (spec.md §4.6). It
// generalizes original_source/src/results.rs's single-sample
// write_results to the multi-sample, optional-gene-column table
// spec.md §4.6 describes.
func WriteResults(path string, opt WriteResultsOptions) error {
	var w io.Writer
	if path == "" || path == "-" {
		w = os.Stdout
	} else {
		out, err := xopen.Wopen(path)
		if err != nil {
			return errors.Wrap(err, path)
		}
		defer out.Close()
		w = out
	}

	if err := writeHeader(w, opt); err != nil {
		return errors.Wrap(err, path)
	}

	for _, key := range opt.Library.Keys() {
		alias, _ := opt.Library.Alias(key)
		if err := writeRow(w, opt, alias); err != nil {
			return errors.Wrap(err, path)
		}
	}

	return nil
}

func writeHeader(w io.Writer, opt WriteResultsOptions) error {
	cols := []string{"Guide"}
	if opt.GeneMap != nil {
		cols = append(cols, "Gene")
	}
	cols = append(cols, opt.SampleNames...)
	_, err := fmt.Fprintln(w, strings.Join(cols, "\t"))
	return err
}

func writeRow(w io.Writer, opt WriteResultsOptions, alias []byte) error {
	counts := make([]int, len(opt.Counters))
	allZero := true
	for i, c := range opt.Counters {
		counts[i] = c.Get(alias)
		if counts[i] != 0 {
			allZero = false
		}
	}
	if allZero && !opt.IncludeZero {
		return nil
	}

	var row strings.Builder
	row.WriteString(string(alias))
	if opt.GeneMap != nil {
		gene, _ := opt.GeneMap.Get(alias)
		row.WriteByte('\t')
		row.Write(gene)
	}
	for _, n := range counts {
		row.WriteByte('\t')
		row.WriteString(strconv.Itoa(n))
	}
	_, err := fmt.Fprintln(w, row.String())
	return err
}
