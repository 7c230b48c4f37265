// q16s: a pipeline driver for 16S rRNA amplicon analysis with QIIME 2.
// Copyright (c) 2026, the q16s contributors.

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marjimrus/q16s/pipeline"
)

func TestConfigFileFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Threads": 8, "TrimLeft": 5}`), 0600))

	config, flags := commandFlags()
	require.NoError(t, flags.Parse([]string{"--config", path, "--trim-left", "9"}))

	config, err := loadConfigFile(config, flags)
	require.NoError(t, err)
	// file values replace defaults
	assert.Equal(t, 8, config.Threads)
	// flags set on the command line win over the file
	assert.Equal(t, 9, config.TrimLeft)
	// everything else keeps its default
	assert.Equal(t, 20, config.TruncQ)
	assert.Equal(t, "qiime", config.QiimeTool)
}

func TestLoadConfigFileAbsent(t *testing.T) {
	config, flags := commandFlags()
	require.NoError(t, flags.Parse([]string{"--trunc-q", "25"}))

	merged, err := loadConfigFile(config, flags)
	require.NoError(t, err)
	assert.Same(t, config, merged)
	assert.Equal(t, 25, merged.TruncQ)
}

func TestLoadConfigFileMissing(t *testing.T) {
	config, flags := commandFlags()
	require.NoError(t, flags.Parse([]string{"--config", filepath.Join(t.TempDir(), "nope.json")}))

	_, err := loadConfigFile(config, flags)
	require.Error(t, err)
}

func TestCheckOutputDir(t *testing.T) {
	config := pipeline.DefaultConfig()
	config.OutputDir = filepath.Join(t.TempDir(), "output")
	assert.True(t, checkOutputDir(config))

	// the creation check must not leave the artifact behind
	_, err := os.Stat(filepath.Join(config.OutputDir, "demux.qza"))
	assert.True(t, os.IsNotExist(err))

	blocked := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0600))
	config.OutputDir = filepath.Join(blocked, "output")
	assert.False(t, checkOutputDir(config))
}
