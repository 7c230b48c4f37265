// q16s: a pipeline driver for 16S rRNA amplicon analysis with QIIME 2.
// Copyright (c) 2026, the q16s contributors.

package pipeline

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/marjimrus/q16s/internal"
)

// Config collects all parameters of a pipeline run. A Config can be
// populated from command-line flags, from a JSON configuration file,
// or from both, with flags taking precedence.
type Config struct {

	// The directory containing the raw read archives, the converted
	// read files, and the manifest and metadata tables.
	WorkDir string

	// The directory under which all pipeline outputs are written.
	OutputDir string

	// The read manifest: a comma-separated table with columns
	// sample-id, absolute-filepath, and direction. It defines the
	// universe of samples for the run.
	ManifestFile string

	// The sample metadata: a tab-separated table whose first column
	// is the sample identifier. Consumed by visualization and
	// statistics steps only.
	MetadataFile string

	// The pre-trained taxonomic classifier artifact.
	ClassifierFile string

	// The number of bases trimmed from the 5' end of each read
	// during denoising.
	TrimLeft int

	// The position at which reads are truncated during denoising.
	// Zero disables truncation.
	TruncLen int

	// Reads are truncated at the first position with a quality
	// score at or below this value.
	TruncQ int

	// The even sampling depth for the core diversity metrics.
	SamplingDepth int

	// The maximum depth of the alpha rarefaction curves.
	MaxRarefactionDepth int

	// The number of threads passed to every external invocation
	// that accepts a concurrency parameter.
	Threads int

	// The names or paths of the external tools. They default to
	// the bare tool names, resolved through PATH.
	QiimeTool    string
	SamtoolsTool string
	UnzipTool    string
	BiomTool     string

	// The directory where log files are written. When empty, logs
	// go to logs/q16s/ under the user's home directory.
	LogPath string
}

// DefaultConfig returns the configuration block of the published
// pipeline: pyrosequencing reads trimmed at 15 bases, no fixed
// truncation position, quality truncation at 20.
func DefaultConfig() *Config {
	return &Config{
		WorkDir:             ".",
		OutputDir:           "output",
		ManifestFile:        "manifest.csv",
		MetadataFile:        "metadata.tsv",
		ClassifierFile:      "classifier.qza",
		TrimLeft:            15,
		TruncLen:            0,
		TruncQ:              20,
		SamplingDepth:       4000,
		MaxRarefactionDepth: 10000,
		Threads:             1,
		QiimeTool:           "qiime",
		SamtoolsTool:        "samtools",
		UnzipTool:           "unzip",
		BiomTool:            "biom",
	}
}

// ReadConfig populates a default configuration from the given JSON
// file. Fields absent from the file keep their default values.
func ReadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read configuration file %v", filename)
	}
	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "unable to parse configuration file %v", filename)
	}
	return config, nil
}

// Normalize makes the path-valued fields absolute against the current
// working directory, so that external tools can be invoked from any
// directory.
func (config *Config) Normalize() error {
	for _, field := range []*string{
		&config.WorkDir,
		&config.OutputDir,
		&config.ManifestFile,
		&config.MetadataFile,
		&config.ClassifierFile,
	} {
		full, err := internal.FullPathname(*field)
		if err != nil {
			return errors.Wrapf(err, "unable to resolve path %v", *field)
		}
		*field = full
	}
	return nil
}
