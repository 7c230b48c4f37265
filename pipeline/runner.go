// q16s: a pipeline driver for 16S rRNA amplicon analysis with QIIME 2.
// Copyright (c) 2026, the q16s contributors.

package pipeline

import (
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// A Command is a single external tool invocation.
type Command struct {
	Tool string
	Args []string
}

func (command Command) String() string {
	return command.Tool + " " + strings.Join(command.Args, " ")
}

// A Stage is a named, fixed sequence of external tool invocations.
type Stage struct {
	Name     string
	Commands []Command
}

// A Runner executes a single external command and blocks until it
// completes. A nonzero exit status is returned as an error.
type Runner interface {
	Run(tool string, args ...string) error
}

// ExecRunner runs commands as child processes, with their output wired
// to the parent's standard error so that the external tools' own
// diagnostics end up in the run log.
type ExecRunner struct{}

// Run implements the Runner interface.
func (ExecRunner) Run(tool string, args ...string) error {
	command := Command{Tool: tool, Args: args}
	log.Println("Executing command:\n", command.String())
	cmd := exec.Command(tool, args...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "command %v failed", command.String())
	}
	return nil
}
