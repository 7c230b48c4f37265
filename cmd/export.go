// q16s: a pipeline driver for 16S rRNA amplicon analysis with QIIME 2.
// Copyright (c) 2026, the q16s contributors.

package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/marjimrus/q16s/pipeline"
)

// ExportHelp is the help string for this command.
const ExportHelp = "\nexport parameters:\n" +
	"q16s export\n" +
	"[--config file]\n" +
	"[--output-dir dir]\n" +
	"[--qiime path]\n" +
	"[--biom path]\n" +
	"[--log-path path]\n"

// Export implements the q16s export command. It re-runs the export
// stage against an existing output tree, for example after additional
// manual toolkit work on the artifacts.
func Export() error {
	config, flags := commandFlags()
	parseFlags(flags, 2, ExportHelp)

	config, err := loadConfigFile(config, flags)
	if err != nil {
		return err
	}

	setLogOutput(config.LogPath)

	if !checkExist("--output-dir", config.OutputDir) ||
		!checkCreate("--output-dir", filepath.Join(config.OutputDir, pipeline.ExportsDir, "feature-table.tsv")) {
		fmt.Fprint(os.Stderr, ExportHelp)
		os.Exit(1)
	}

	if err := config.Normalize(); err != nil {
		return err
	}

	log.Println("Executing command:\n", os.Args[0], "export --output-dir", config.OutputDir)

	return pipeline.New(config).Export()
}
