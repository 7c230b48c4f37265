// q16s: a pipeline driver for 16S rRNA amplicon analysis with QIIME 2.
// Copyright (c) 2026, the q16s contributors.

package pipeline

import (
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"
	"github.com/pkg/errors"
)

// CountReads returns the number of reads in a FASTQ file. It backs the
// informational per-sample report of the conversion stage and never
// gates pipeline progress.
func CountReads(filename string) (int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, errors.Wrapf(err, "unable to open read file %v", filename)
	}
	defer func() { _ = f.Close() }()
	template := linear.NewQSeq("", nil, alphabet.DNAredundant, alphabet.Sanger)
	sc := seqio.NewScanner(fastq.NewReader(f, template))
	n := 0
	for sc.Next() {
		n++
	}
	if err := sc.Error(); err != nil {
		return n, errors.Wrapf(err, "unable to parse read file %v", filename)
	}
	return n, nil
}
