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

// Entry is a single (sequence, alias) pair read from a library file,
// the FASTA-header-less form of a library record (spec.md §3).
type Entry struct {
	Seq   []byte
	Alias []byte
}

// Library owns a guide's sequence -> alias mapping. It is built once
// and read thereafter by every worker (spec.md §3, "Ownership").
type Library struct {
	table map[string][]byte
	keys  []string
	size  int
}

// BuildLibrary constructs a Library from an ordered sequence of
// entries, enforcing spec.md §3's invariants: every key has the same
// length, no duplicate key, and at least one entry. Duplicate
// sequences are a construction failure, never a silent overwrite
// (original_source/src/library.rs: table_from_reader inserts
// unconditionally into a HashMap, which we reject here because
// spec.md §4.1 calls out duplicate-key detection explicitly).
func BuildLibrary(entries []Entry) (*Library, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyLibrary
	}

	lib := &Library{
		table: make(map[string][]byte, len(entries)),
		keys:  make([]string, 0, len(entries)),
	}

	size := -1
	for _, e := range entries {
		if size == -1 {
			size = len(e.Seq)
		} else if len(e.Seq) != size {
			return nil, ErrInconsistentSize
		}

		key := string(e.Seq)
		if _, dup := lib.table[key]; dup {
			return nil, ErrDuplicateKey
		}

		alias := make([]byte, len(e.Alias))
		copy(alias, e.Alias)
		lib.table[key] = alias
		lib.keys = append(lib.keys, key)
	}

	lib.size = size
	return lib, nil
}

// FromPath builds a Library from a FASTA/FASTQ (optionally gzipped)
// library file, using the record-stream collaborator spec.md §6
// names (github.com/shenwei356/bio/seqio/fastx, the same reader the
// teacher's unikmer/unikmer/cmd/count.go opens input files with).
func FromPath(path string) (*Library, error) {
	reader, err := fastx.NewDefaultReader(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	var entries []Entry
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, path)
		}

		entries = append(entries, Entry{
			Seq:   append([]byte(nil), record.Seq.Seq...),
			Alias: append([]byte(nil), record.ID...),
		})
	}

	lib, err := BuildLibrary(entries)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return lib, nil
}

// Alias returns the alias for seq iff seq is a library key.
func (l *Library) Alias(seq []byte) ([]byte, bool) {
	alias, ok := l.table[string(seq)]
	return alias, ok
}

// Contains returns the alias for seq iff seq is a library key. It is
// equivalent to Alias; spec.md §4.1 names both for the caller contexts
// that use them (exact-match lookup vs. permuter parent resolution).
func (l *Library) Contains(seq []byte) ([]byte, bool) {
	return l.Alias(seq)
}

// Keys returns the library's guide sequences in a stable (insertion)
// order.
func (l *Library) Keys() [][]byte {
	out := make([][]byte, len(l.keys))
	for i, k := range l.keys {
		out[i] = []byte(k)
	}
	return out
}

// Values returns the library's aliases in the same order as Keys.
func (l *Library) Values() [][]byte {
	out := make([][]byte, len(l.keys))
	for i, k := range l.keys {
		out[i] = l.table[k]
	}
	return out
}

// Size returns the common guide length L.
func (l *Library) Size() int {
	return l.size
}
