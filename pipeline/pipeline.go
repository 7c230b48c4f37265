// q16s: a pipeline driver for 16S rRNA amplicon analysis with QIIME 2.
// Copyright (c) 2026, the q16s contributors.

/*
Package pipeline drives a fixed eight-stage 16S rRNA amplicon analysis
through external tools: directory setup, read conversion, import into
the toolkit's artifact format, denoising, taxonomic classification,
phylogeny construction, diversity metrics, and export to flat files.

The pipeline contributes no analysis of its own. Each stage is a fixed
sequence of synchronous external invocations; a nonzero exit aborts the
run, and no stage starts before its predecessor completed successfully.
*/
package pipeline

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/marjimrus/q16s/internal"
)

// File extensions driving the conversion loops.
const (
	archiveExt = ".zip"
	bamExt     = ".bam"
	fastqExt   = ".fastq"
)

// A Pipeline runs the analysis described by its configuration through
// the given Runner.
type Pipeline struct {
	Config *Config
	Runner Runner
}

// New returns a pipeline over the given configuration, running external
// tools as child processes.
func New(config *Config) *Pipeline {
	return &Pipeline{Config: config, Runner: ExecRunner{}}
}

// Run executes all stages in their fixed order. The first failing
// invocation aborts the run; no downstream stage executes.
func (p *Pipeline) Run() error {
	if err := p.Setup(); err != nil {
		return err
	}
	if err := p.Convert(); err != nil {
		return err
	}
	for _, stage := range p.Stages() {
		if err := p.runStage(stage); err != nil {
			return err
		}
	}
	log.Println("Pipeline completed.")
	return nil
}

// Setup creates the output directory tree. It is idempotent: re-running
// it on an existing tree succeeds without error.
func (p *Pipeline) Setup() error {
	log.Println("Setting up output directories...")
	for _, dir := range []string{DenoisingDir, TaxonomyDir, DiversityDir, ExportsDir} {
		if err := os.MkdirAll(p.outpath(dir), 0700); err != nil {
			return errors.Wrapf(err, "unable to create output directory %v", dir)
		}
	}
	return nil
}

// Convert extracts every raw read archive in the working directory and
// converts every binary alignment file to a plain read file. Files
// absent from the working directory are skipped silently; these
// per-pattern existence checks are the only ones the pipeline performs.
func (p *Pipeline) Convert() error {
	log.Println("Converting raw reads...")
	if err := p.extractArchives(); err != nil {
		return err
	}
	return p.convertAlignments()
}

func (p *Pipeline) extractArchives() error {
	archives, err := p.workFiles(archiveExt)
	if err != nil {
		return err
	}
	for _, archive := range archives {
		err := p.Runner.Run(p.Config.UnzipTool, "-o", filepath.Join(p.Config.WorkDir, archive), "-d", p.Config.WorkDir)
		if err != nil {
			return errors.Wrap(err, "stage Converting raw reads failed")
		}
	}
	return nil
}

func (p *Pipeline) convertAlignments() error {
	alignments, err := p.workFiles(bamExt)
	if err != nil {
		return err
	}
	for _, alignment := range alignments {
		sample := strings.TrimSuffix(alignment, bamExt)
		reads := filepath.Join(p.Config.WorkDir, sample+fastqExt)
		err := p.Runner.Run(p.Config.SamtoolsTool, "fastq", "-0", reads, filepath.Join(p.Config.WorkDir, alignment))
		if err != nil {
			return errors.Wrap(err, "stage Converting raw reads failed")
		}
		p.reportReads(sample, reads)
	}
	return nil
}

// reportReads logs the read count of a converted sample. The report is
// informational only and never gates pipeline progress.
func (p *Pipeline) reportReads(sample, reads string) {
	n, err := CountReads(reads)
	if err != nil {
		log.Printf("Warning: unable to count reads for sample %v: %v\n", sample, err)
		return
	}
	if n == 0 {
		log.Printf("Warning: sample %v: no reads\n", sample)
		return
	}
	log.Printf("sample %v: %v reads\n", sample, n)
}

// Export runs the export stage alone, rendering the feature table,
// taxonomy, rooted tree, and unweighted UniFrac distance matrix of an
// existing output tree to flat files.
func (p *Pipeline) Export() error {
	return p.runStage(p.exportStage())
}

func (p *Pipeline) runStage(stage Stage) error {
	log.Printf("%v...\n", stage.Name)
	for _, command := range stage.Commands {
		if err := p.Runner.Run(command.Tool, command.Args...); err != nil {
			return errors.Wrapf(err, "stage %v failed", stage.Name)
		}
	}
	return nil
}

// workFiles returns the working directory entries with the given
// extension, in sorted order.
func (p *Pipeline) workFiles(ext string) ([]string, error) {
	files, err := internal.Directory(p.Config.WorkDir)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to list working directory %v", p.Config.WorkDir)
	}
	var matches []string
	for _, file := range files {
		if strings.HasSuffix(file, ext) {
			matches = append(matches, file)
		}
	}
	return matches, nil
}
