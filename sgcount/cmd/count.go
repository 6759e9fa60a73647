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
	"io"

	"github.com/dustin/go-humanize"
	"github.com/guidecount/sgcount"
	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/spf13/cobra"
)

// progressPort is the side-effect collaborator spec.md §9 names:
// begin/finish events per file, routed through the ambient logger.
// With quiet set (from --quiet) both methods are no-ops; there is no
// progress-bar widget (none of the retrieved examples carry one).
type progressPort struct {
	quiet bool
}

func (p progressPort) Begin(name string) {
	if !p.quiet {
		log.Infof("processing: %s", name)
	}
}

func (p progressPort) Finish(name string, summary string) {
	if !p.quiet {
		log.Infof("finished: %s; %s", name, summary)
	}
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "count sgRNA guides across FASTA/FASTQ files",
	Long: `count sgRNA guides across FASTA/FASTQ files

Builds a one-mismatch guide index from a library file, estimates or
accepts a fixed read offset per input file, streams each input through
the matcher, and writes a guide-by-sample count table.
`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		progress := progressPort{quiet: opt.Quiet}

		libraryPath := getFlagString(cmd, "library-path")
		inputPaths := getFlagStringSlice(cmd, "input-paths")
		sampleNames := getFlagStringSlice(cmd, "sample-names")
		outputPath := getFlagString(cmd, "output-path")
		geneMapPath := getFlagString(cmd, "genemap")
		fixedOffset := getFlagInt(cmd, "offset")
		offsetGiven := cmd.Flags().Changed("offset")
		noPositionRecursion := getFlagBool(cmd, "no-position-recursion")
		reverse := getFlagBool(cmd, "reverse")
		exact := getFlagBool(cmd, "exact")
		subsample := getFlagPositiveInt(cmd, "subsample")
		includeZero := getFlagBool(cmd, "include-zero")

		if libraryPath == "" {
			checkError(errors.Wrap(sgcount.ErrArgumentInvalid, "-l/--library-path is required"))
		}
		if len(inputPaths) == 0 {
			checkError(errors.Wrap(sgcount.ErrArgumentInvalid, "-i/--input-paths requires at least one file"))
		}
		if len(sampleNames) > 0 && len(sampleNames) != len(inputPaths) {
			checkError(errors.Wrapf(sgcount.ErrArgumentInvalid,
				"-n/--sample-names count (%d) must match -i/--input-paths count (%d)", len(sampleNames), len(inputPaths)))
		}
		if len(sampleNames) == 0 {
			sampleNames = generateSampleNames(inputPaths)
		}

		checkFiles(libraryPath)
		checkFiles(inputPaths...)
		if geneMapPath != "" {
			checkFiles(geneMapPath)
		}

		log.Infof("loading library: %s", libraryPath)
		library, err := sgcount.FromPath(libraryPath)
		checkError(err)
		log.Infof("loaded %d guides of length %d", len(library.Keys()), library.Size())

		var geneMap *sgcount.GeneMap
		if geneMapPath != "" {
			log.Infof("loading gene map: %s", geneMapPath)
			geneMap, err = sgcount.GeneMapFromPath(geneMapPath)
			checkError(err)
			if missing := geneMap.ValidateLibrary(library); missing != nil {
				checkError(errors.Wrapf(sgcount.ErrGeneMapIncomplete, "%s", missing))
			}
		}

		validateReadLengths(inputPaths, library.Size())

		var permuter *sgcount.Permuter
		if !exact {
			log.Info("building one-mismatch index")
			permuter = sgcount.BuildPermuter(library.Keys())
			log.Infof("indexed %d unambiguous one-mismatch neighbors", permuter.Size())
		}

		libraryEntropy := sgcount.LibraryEntropy(library)

		// Offsetter and Counter each get their own pool round
		// (spec.md §5): offset estimation is a construction-time
		// error and must abort the run before any file is counted,
		// so every file's offset is resolved and Wait()ed on first;
		// only once that round succeeds in full does the second
		// round start streaming reads.
		offsets := make([]sgcount.Offset, len(inputPaths))
		offsetPool := sgcount.NewPool(opt.NumCPUs)
		for i, path := range inputPaths {
			i, path, name := i, path, sampleNames[i]
			offsetPool.Go(func() error {
				offset, err := resolveOffset(path, libraryEntropy, fixedOffset, offsetGiven, reverse, subsample)
				if err != nil {
					return errors.Wrap(err, name)
				}
				offsets[i] = offset
				return nil
			})
		}
		checkError(offsetPool.Wait())

		counters := make([]*sgcount.Counter, len(inputPaths))
		countPool := sgcount.NewPool(opt.NumCPUs)
		for i, path := range inputPaths {
			i, path, name := i, path, sampleNames[i]
			countPool.Go(func() error {
				progress.Begin(name)

				counter, err := sgcount.CountFile(path, sgcount.CountOptions{
					Library:           library,
					Permuter:          permuter,
					Offset:            offsets[i],
					PositionRecursion: !noPositionRecursion,
				})
				if err != nil {
					return errors.Wrap(err, name)
				}

				counters[i] = counter
				progress.Finish(name, fmt.Sprintf("fraction mapped: %.3f [%s / %s]",
					counter.FractionMapped(),
					humanize.Comma(int64(counter.MatchedReads())),
					humanize.Comma(int64(counter.TotalReads()))))
				return nil
			})
		}
		checkError(countPool.Wait())

		log.Infof("writing results: %s", outOrStdout(outputPath))
		err = sgcount.WriteResults(outputPath, sgcount.WriteResultsOptions{
			Library:     library,
			SampleNames: sampleNames,
			Counters:    counters,
			GeneMap:     geneMap,
			IncludeZero: includeZero,
		})
		checkError(err)
	},
}

func init() {
	RootCmd.AddCommand(countCmd)

	countCmd.Flags().StringP("library-path", "l", "", "guide library FASTA/FASTQ file (required)")
	countCmd.Flags().StringSliceP("input-paths", "i", nil, "input FASTA/FASTQ files, one per sample (required)")
	countCmd.Flags().StringSliceP("sample-names", "n", nil, "sample names, one per --input-paths entry (default: derived from file basenames)")
	countCmd.Flags().StringP("output-path", "o", "", "results TSV path (default: stdout)")
	countCmd.Flags().StringP("genemap", "g", "", "gene<TAB>alias map file")
	countCmd.Flags().IntP("offset", "a", 0, "skip offset estimation, use this fixed offset for every file")
	countCmd.Flags().BoolP("no-position-recursion", "p", false, "disable +-1 position retry on a miss")
	countCmd.Flags().BoolP("reverse", "r", false, "force Reverse(N) when -a/--offset is given")
	countCmd.Flags().BoolP("exact", "x", false, "disable one-mismatch matching")
	countCmd.Flags().IntP("subsample", "s", 5000, "reads sampled per file for offset estimation")
	countCmd.Flags().Bool("include-zero", false, "include all-zero rows in the results table")
}

// resolveOffset implements the -a/-r override spec.md §6 describes:
// when -a/--offset is given, skip estimation entirely and build the
// Offset directly (Reverse iff -r/--reverse was also given); otherwise
// estimate it from a subsample of the file (spec.md §4.3).
func resolveOffset(path string, libraryEntropy []float64, fixedOffset int, offsetGiven, reverse bool, subsample int) (sgcount.Offset, error) {
	if offsetGiven {
		direction := sgcount.Forward
		if reverse {
			direction = sgcount.Reverse
		}
		return sgcount.Offset{Direction: direction, Index: fixedOffset}, nil
	}
	return sgcount.EstimateOffsetForPath(libraryEntropy, path, subsample)
}

// validateReadLengths peeks the first record of every input file and
// fails fast if any read is shorter than the library's guide length,
// rather than letting every worker rediscover the same problem
// independently during offset estimation (original_source/src/count.rs:
// validate_library_size).
func validateReadLengths(inputPaths []string, librarySize int) {
	for _, path := range inputPaths {
		reader, err := fastx.NewDefaultReader(path)
		checkError(errors.Wrap(err, path))

		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				continue
			}
			checkError(errors.Wrap(err, path))
		}

		if len(record.Seq.Seq) < librarySize {
			checkError(errors.Wrapf(sgcount.ErrInputShorterThanLibrary,
				"%s: read length %d, library guide length %d; check for un-trimmed adapters",
				path, len(record.Seq.Seq), librarySize))
		}
	}
}

func outOrStdout(path string) string {
	if isStdout(path) {
		return "stdout"
	}
	return path
}
