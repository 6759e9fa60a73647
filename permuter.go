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

// Permuter pre-computes every Hamming-1 neighbor of every library
// guide, retaining only neighbors that map back to exactly one parent
// (spec.md §3/§4.2).
type Permuter struct {
	table map[string][]byte   // neighbor -> parent sequence
	null  map[string]struct{} // library keys + ambiguous neighbors
}

// BuildPermuter runs the algorithm in spec.md §4.2 over a library's
// key set: every library key is seeded into null (a parent is never a
// valid neighbor of itself), then for each position and each of the
// five lexicon symbols that isn't already there, the resulting
// neighbor is either skipped (already null), claimed (first sighting),
// or evicted to null (second, ambiguous, sighting). This is a direct
// port of original_source/src/permutes.rs's build/insert_sequence
// fold, generalized from Rust's &str indexing to Go's []byte.
func BuildPermuter(keys [][]byte) *Permuter {
	p := &Permuter{
		table: make(map[string][]byte),
		null:  make(map[string]struct{}, len(keys)),
	}

	for _, key := range keys {
		p.null[string(key)] = struct{}{}
	}

	for _, key := range keys {
		for _, neighbor := range permutations(key) {
			p.insert(key, neighbor)
		}
	}

	return p
}

// permutations returns every length-L sequence at Hamming distance 1
// from seq, substituting one of the five lexicon symbols at each
// position (spec.md §4.2 step 3).
func permutations(seq []byte) [][]byte {
	out := make([][]byte, 0, len(seq)*(len(lexicon)-1))
	for pos := range seq {
		original := seq[pos]
		for _, c := range lexicon {
			if c == original {
				continue
			}
			n := make([]byte, len(seq))
			copy(n, seq)
			n[pos] = c
			out = append(out, n)
		}
	}
	return out
}

func (p *Permuter) insert(parent, neighbor []byte) {
	key := string(neighbor)
	if _, nulled := p.null[key]; nulled {
		return
	}
	if _, claimed := p.table[key]; claimed {
		delete(p.table, key)
		p.null[key] = struct{}{}
		return
	}
	cp := make([]byte, len(parent))
	copy(cp, parent)
	p.table[key] = cp
}

// Contains returns the unique parent sequence of seq, iff seq is an
// unambiguous Hamming-1 neighbor of exactly one library key.
func (p *Permuter) Contains(seq []byte) ([]byte, bool) {
	parent, ok := p.table[string(seq)]
	return parent, ok
}

// Size returns the number of unambiguous neighbors indexed.
func (p *Permuter) Size() int {
	return len(p.table)
}
