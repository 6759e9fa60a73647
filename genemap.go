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
	"bytes"

	"github.com/pkg/errors"
	"github.com/shenwei356/breader"
)

// GeneMap maps a library alias to its gene, loaded from a two-column
// TSV of gene<TAB>alias lines (spec.md §3/§4.5).
type GeneMap struct {
	table map[string][]byte
}

// BuildGeneMap constructs a GeneMap from raw TSV lines (one
// "gene<TAB>alias" entry per line, no header), enforcing spec.md
// §4.5's invariant that no alias appears twice. It mirrors
// original_source/src/genemap.rs's build: find the first TAB, split
// gene from alias around it, and fail loudly on a missing TAB or a
// repeated alias rather than overwriting silently.
func BuildGeneMap(lines [][]byte) (*GeneMap, error) {
	g := &GeneMap{table: make(map[string][]byte, len(lines))}

	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		tab := bytes.IndexByte(line, '\t')
		if tab < 0 {
			return nil, ErrGeneMapMissingTab
		}

		gene := line[:tab]
		alias := line[tab+1:]

		key := string(alias)
		if _, dup := g.table[key]; dup {
			return nil, ErrGeneMapDuplicateAlias
		}

		geneCopy := make([]byte, len(gene))
		copy(geneCopy, gene)
		g.table[key] = geneCopy
	}

	return g, nil
}

// GeneMapFromPath builds a GeneMap from a file on disk, streaming
// lines through github.com/shenwei356/breader the way
// unikmer/unikmer/cmd/decode.go streams a plain-text file of one
// value per line.
func GeneMapFromPath(path string) (*GeneMap, error) {
	reader, err := breader.NewDefaultBufferedReader(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	var lines [][]byte
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return nil, errors.Wrap(chunk.Err, path)
		}
		for _, data := range chunk.Data {
			line, _ := data.(string)
			lines = append(lines, []byte(line))
		}
	}

	g, err := BuildGeneMap(lines)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return g, nil
}

// Get returns the gene associated with alias, if any.
func (g *GeneMap) Get(alias []byte) ([]byte, bool) {
	gene, ok := g.table[string(alias)]
	return gene, ok
}

// ValidateLibrary returns the first library alias not present in the
// gene map, or nil if every library alias resolves (spec.md §4.5).
func (g *GeneMap) ValidateLibrary(lib *Library) []byte {
	for _, alias := range lib.Values() {
		if _, ok := g.Get(alias); !ok {
			return alias
		}
	}
	return nil
}
