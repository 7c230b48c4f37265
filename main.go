// q16s: a pipeline driver for 16S rRNA amplicon analysis with QIIME 2.
// Copyright (c) 2026, the q16s contributors.

// q16s drives a fixed eight-stage 16S rRNA amplicon analysis through
// the QIIME 2 command-line interface: read conversion, import,
// denoising, taxonomic classification, phylogeny construction,
// diversity metrics, and export to flat files. All analysis happens in
// the external tools; q16s contributes the orchestration only.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/marjimrus/q16s/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: run, convert, export")
	fmt.Fprint(os.Stderr, "\n", cmd.RunHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.ConvertHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.ExportHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = cmd.Run()
	case "convert":
		err = cmd.Convert()
	case "export":
		err = cmd.Export()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Println("Invalid command: ", os.Args[1])
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
