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

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
)

var sampleNameSuffixes = []string{".gz", ".fasta", ".fastq", ".fa", ".fq"}

// generateSampleNames derives a default sample name per input path by
// stripping its directory and any of the suffixes in
// sampleNameSuffixes, in that order. If two input paths produce the
// same base name, it falls back to "Sample.N" for every path instead,
// since silently colliding column headers in the results table would
// be worse than uninformative ones. Ported from
// original_source/src/utils.rs's generate_sample_names.
func generateSampleNames(inputPaths []string) []string {
	baseNames := make([]string, len(inputPaths))
	seen := make(map[string]struct{}, len(inputPaths))
	duplicate := false

	for i, p := range inputPaths {
		name := filepath.Base(p)
		for _, suffix := range sampleNameSuffixes {
			name = strings.TrimSuffix(name, suffix)
		}
		baseNames[i] = name
		if _, ok := seen[name]; ok {
			duplicate = true
		}
		seen[name] = struct{}{}
	}

	if !duplicate {
		return baseNames
	}

	log.Warning("duplicate basenames detected, using incrementing sample names")
	simpleNames := make([]string, len(inputPaths))
	for i := range inputPaths {
		simpleNames[i] = fmt.Sprintf("Sample.%d", i)
	}
	return simpleNames
}
