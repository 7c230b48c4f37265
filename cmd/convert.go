// q16s: a pipeline driver for 16S rRNA amplicon analysis with QIIME 2.
// Copyright (c) 2026, the q16s contributors.

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/marjimrus/q16s/pipeline"
)

// ConvertHelp is the help string for this command.
const ConvertHelp = "\nconvert parameters:\n" +
	"q16s convert\n" +
	"[--config file]\n" +
	"[--work-dir dir]\n" +
	"[--samtools path]\n" +
	"[--unzip path]\n" +
	"[--log-path path]\n"

// Convert implements the q16s convert command. It runs the conversion
// stage alone: archives in the working directory are extracted, and
// binary alignment files are converted to plain read files.
func Convert() error {
	config, flags := commandFlags()
	parseFlags(flags, 2, ConvertHelp)

	config, err := loadConfigFile(config, flags)
	if err != nil {
		return err
	}

	setLogOutput(config.LogPath)

	if !checkExist("--work-dir", config.WorkDir) {
		fmt.Fprint(os.Stderr, ConvertHelp)
		os.Exit(1)
	}

	if err := config.Normalize(); err != nil {
		return err
	}

	log.Println("Executing command:\n", os.Args[0], "convert --work-dir", config.WorkDir)

	return pipeline.New(config).Convert()
}
