// q16s: a pipeline driver for 16S rRNA amplicon analysis with QIIME 2.
// Copyright (c) 2026, the q16s contributors.

// Package cmd implements the commands of the q16s binary.
package cmd

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/marjimrus/q16s/pipeline"
)

// RunHelp is the help string for this command.
const RunHelp = "\nrun parameters:\n" +
	"q16s run\n" +
	"[--config file]\n" +
	"[--work-dir dir]\n" +
	"[--output-dir dir]\n" +
	"[--manifest file]\n" +
	"[--metadata file]\n" +
	"[--classifier file]\n" +
	"[--trim-left nr]\n" +
	"[--trunc-len nr]\n" +
	"[--trunc-q nr]\n" +
	"[--sampling-depth nr]\n" +
	"[--max-rarefaction-depth nr]\n" +
	"[--nr-of-threads nr]\n" +
	"[--qiime path]\n" +
	"[--samtools path]\n" +
	"[--unzip path]\n" +
	"[--biom path]\n" +
	"[--log-path path]\n"

// Run implements the q16s run command.
func Run() error {
	config, flags := commandFlags()
	parseFlags(flags, 2, RunHelp)

	config, err := loadConfigFile(config, flags)
	if err != nil {
		return err
	}

	setLogOutput(config.LogPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("--work-dir", config.WorkDir) {
		sanityChecksFailed = true
	}
	if !checkExist("--manifest", config.ManifestFile) {
		sanityChecksFailed = true
	}
	if !checkExist("--metadata", config.MetadataFile) {
		sanityChecksFailed = true
	}
	if !checkExist("--classifier", config.ClassifierFile) {
		sanityChecksFailed = true
	}
	if !checkOutputDir(config) {
		sanityChecksFailed = true
	}
	if !checkParameters(config) {
		sanityChecksFailed = true
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, RunHelp)
		os.Exit(1)
	}

	if err := config.Normalize(); err != nil {
		return err
	}

	manifest, err := pipeline.ReadManifest(config.ManifestFile)
	if err != nil {
		return err
	}
	if err := manifest.Validate(); err != nil {
		return err
	}
	samples, err := pipeline.ReadMetadataSamples(config.MetadataFile)
	if err != nil {
		return err
	}
	for _, sample := range manifest.MissingFrom(samples) {
		log.Println("Warning: sample", sample, "is listed in the manifest but missing from the metadata.")
	}
	log.Println("Samples:", manifest.SampleIDs())

	log.Println("Executing command:\n", commandString("run", config))

	return pipeline.New(config).Run()
}

func checkParameters(config *pipeline.Config) bool {
	ok := true
	if config.TrimLeft < 0 {
		log.Println("Error: Invalid trim-left: ", config.TrimLeft)
		ok = false
	}
	if config.TruncLen < 0 {
		log.Println("Error: Invalid trunc-len: ", config.TruncLen)
		ok = false
	}
	if config.TruncQ < 0 {
		log.Println("Error: Invalid trunc-q: ", config.TruncQ)
		ok = false
	}
	if config.SamplingDepth <= 0 {
		log.Println("Error: Invalid sampling-depth: ", config.SamplingDepth)
		ok = false
	}
	if config.MaxRarefactionDepth <= 0 {
		log.Println("Error: Invalid max-rarefaction-depth: ", config.MaxRarefactionDepth)
		ok = false
	}
	if config.Threads <= 0 {
		log.Println("Error: Invalid nr-of-threads: ", config.Threads)
		ok = false
	}
	return ok
}

// checkOutputDir verifies that the first artifact of the run can be
// created under the output directory.
func checkOutputDir(config *pipeline.Config) bool {
	return checkCreate("--output-dir", filepath.Join(config.OutputDir, "demux.qza"))
}

// commandFlags returns a default configuration and a flag set binding
// the full parameter surface to it. Every command registers the same
// flags so that a shared configuration file serves all of them.
func commandFlags() (*pipeline.Config, *flag.FlagSet) {
	config := pipeline.DefaultConfig()
	flags := flag.NewFlagSet("q16s", flag.ContinueOnError)
	flags.String("config", "", "JSON configuration file")
	flags.StringVar(&config.WorkDir, "work-dir", config.WorkDir, "directory containing the raw reads, manifest, and metadata")
	flags.StringVar(&config.OutputDir, "output-dir", config.OutputDir, "directory for all pipeline outputs")
	flags.StringVar(&config.ManifestFile, "manifest", config.ManifestFile, "read manifest table")
	flags.StringVar(&config.MetadataFile, "metadata", config.MetadataFile, "sample metadata table")
	flags.StringVar(&config.ClassifierFile, "classifier", config.ClassifierFile, "pre-trained taxonomic classifier artifact")
	flags.IntVar(&config.TrimLeft, "trim-left", config.TrimLeft, "bases trimmed from the 5' end of each read")
	flags.IntVar(&config.TruncLen, "trunc-len", config.TruncLen, "read truncation position, 0 to disable")
	flags.IntVar(&config.TruncQ, "trunc-q", config.TruncQ, "quality score truncation threshold")
	flags.IntVar(&config.SamplingDepth, "sampling-depth", config.SamplingDepth, "even sampling depth for core diversity metrics")
	flags.IntVar(&config.MaxRarefactionDepth, "max-rarefaction-depth", config.MaxRarefactionDepth, "maximum depth of the alpha rarefaction curves")
	flags.IntVar(&config.Threads, "nr-of-threads", config.Threads, "number of worker threads for the external tools")
	flags.StringVar(&config.QiimeTool, "qiime", config.QiimeTool, "name or path of the qiime executable")
	flags.StringVar(&config.SamtoolsTool, "samtools", config.SamtoolsTool, "name or path of the samtools executable")
	flags.StringVar(&config.UnzipTool, "unzip", config.UnzipTool, "name or path of the unzip executable")
	flags.StringVar(&config.BiomTool, "biom", config.BiomTool, "name or path of the biom executable")
	flags.StringVar(&config.LogPath, "log-path", config.LogPath, "write log files to the specified directory")
	return config, flags
}

// loadConfigFile merges a JSON configuration file, when given, under
// the flags parsed so far: file values replace defaults, and flags set
// explicitly on the command line win over the file.
func loadConfigFile(config *pipeline.Config, flags *flag.FlagSet) (*pipeline.Config, error) {
	configFile := flags.Lookup("config").Value.String()
	if configFile == "" {
		return config, nil
	}
	fileConfig, err := pipeline.ReadConfig(configFile)
	if err != nil {
		return nil, err
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "work-dir":
			fileConfig.WorkDir = config.WorkDir
		case "output-dir":
			fileConfig.OutputDir = config.OutputDir
		case "manifest":
			fileConfig.ManifestFile = config.ManifestFile
		case "metadata":
			fileConfig.MetadataFile = config.MetadataFile
		case "classifier":
			fileConfig.ClassifierFile = config.ClassifierFile
		case "trim-left":
			fileConfig.TrimLeft = config.TrimLeft
		case "trunc-len":
			fileConfig.TruncLen = config.TruncLen
		case "trunc-q":
			fileConfig.TruncQ = config.TruncQ
		case "sampling-depth":
			fileConfig.SamplingDepth = config.SamplingDepth
		case "max-rarefaction-depth":
			fileConfig.MaxRarefactionDepth = config.MaxRarefactionDepth
		case "nr-of-threads":
			fileConfig.Threads = config.Threads
		case "qiime":
			fileConfig.QiimeTool = config.QiimeTool
		case "samtools":
			fileConfig.SamtoolsTool = config.SamtoolsTool
		case "unzip":
			fileConfig.UnzipTool = config.UnzipTool
		case "biom":
			fileConfig.BiomTool = config.BiomTool
		case "log-path":
			fileConfig.LogPath = config.LogPath
		}
	})
	return fileConfig, nil
}

// commandString reconstructs the effective command line for the log.
func commandString(command string, config *pipeline.Config) string {
	var b bytes.Buffer
	fmt.Fprint(&b, os.Args[0], " ", command)
	fmt.Fprint(&b, " --work-dir ", config.WorkDir)
	fmt.Fprint(&b, " --output-dir ", config.OutputDir)
	fmt.Fprint(&b, " --manifest ", config.ManifestFile)
	fmt.Fprint(&b, " --metadata ", config.MetadataFile)
	fmt.Fprint(&b, " --classifier ", config.ClassifierFile)
	fmt.Fprint(&b, " --trim-left ", config.TrimLeft)
	fmt.Fprint(&b, " --trunc-len ", config.TruncLen)
	fmt.Fprint(&b, " --trunc-q ", config.TruncQ)
	fmt.Fprint(&b, " --sampling-depth ", config.SamplingDepth)
	fmt.Fprint(&b, " --max-rarefaction-depth ", config.MaxRarefactionDepth)
	fmt.Fprint(&b, " --nr-of-threads ", config.Threads)
	return b.String()
}
