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

import "errors"

// Sentinel errors for the kinds named in spec.md §7. Callers at the CLI
// boundary wrap these with github.com/pkg/errors to attach file paths.
var (
	// ErrEmptyLibrary is returned when a library reader yields no records.
	ErrEmptyLibrary = errors.New("sgcount: library is empty")

	// ErrInconsistentSize is returned when library keys do not all share
	// the same length.
	ErrInconsistentSize = errors.New("sgcount: library sequence sizes are inconsistent")

	// ErrDuplicateKey is returned when two library records share a
	// sequence.
	ErrDuplicateKey = errors.New("sgcount: duplicate sequence in library")

	// ErrGeneMapMissingTab is returned when a gene map line has no TAB
	// separator.
	ErrGeneMapMissingTab = errors.New("sgcount: missing tab in gene map line")

	// ErrGeneMapDuplicateAlias is returned when a gene map has two
	// entries for the same alias.
	ErrGeneMapDuplicateAlias = errors.New("sgcount: duplicate alias in gene map")

	// ErrGeneMapIncomplete is returned when a library alias has no
	// corresponding gene map entry.
	ErrGeneMapIncomplete = errors.New("sgcount: library alias missing from gene map")

	// ErrInputShorterThanLibrary is returned when an input file's reads
	// are too short to contain the library's guide length at offset 0.
	ErrInputShorterThanLibrary = errors.New("sgcount: input sequence shorter than library guide length")

	// ErrArgumentInvalid is returned for CLI argument validation
	// failures (sample-name count mismatch, nonexistent path, ...).
	ErrArgumentInvalid = errors.New("sgcount: invalid argument")
)
