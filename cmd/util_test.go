// q16s: a pipeline driver for 16S rRNA amplicon analysis with QIIME 2.
// Copyright (c) 2026, the q16s contributors.

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckExist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "present")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	assert.True(t, checkExist("--manifest", path))
	assert.False(t, checkExist("--manifest", filepath.Join(t.TempDir(), "absent")))
	assert.False(t, checkExist("--manifest", ""))
	assert.False(t, checkExist("--manifest", "--metadata"))
}

func TestCheckCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "out.log")
	assert.True(t, checkCreate("--log-path", path))

	// the creation check must not leave its temporary file behind
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestCreateLogFilename(t *testing.T) {
	name := createLogFilename()
	assert.True(t, strings.HasPrefix(name, "logs/q16s/q16s-"))
	assert.True(t, strings.HasSuffix(name, ".log"))
	// run identifiers keep concurrent runs from sharing a log file
	assert.NotEqual(t, name, createLogFilename())
}
