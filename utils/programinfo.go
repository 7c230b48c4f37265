// q16s: a pipeline driver for 16S rRNA amplicon analysis with QIIME 2.
// Copyright (c) 2026, the q16s contributors.

package utils

const (
	// ProgramName is "q16s"
	ProgramName = "q16s"

	// ProgramVersion is the version of the q16s binary
	ProgramVersion = "1.2.0"

	// ProgramURL is the repository for the q16s source code
	ProgramURL = "http://github.com/marjimrus/q16s"
)
