// q16s: a pipeline driver for 16S rRNA amplicon analysis with QIIME 2.
// Copyright (c) 2026, the q16s contributors.

package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestReadManifest(t *testing.T) {
	path := writeTestFile(t, "manifest.csv",
		"sample-id,absolute-filepath,direction\n"+
			"S1,/data/S1.fastq,forward\n"+
			"S2,/data/S2.fastq,Reverse\n")

	manifest, err := ReadManifest(path)
	require.NoError(t, err)
	require.Len(t, manifest.Entries, 2)
	assert.Equal(t, ManifestEntry{SampleID: "S1", Filepath: "/data/S1.fastq", Direction: Forward}, manifest.Entries[0])
	assert.Equal(t, ManifestEntry{SampleID: "S2", Filepath: "/data/S2.fastq", Direction: Reverse}, manifest.Entries[1])
	assert.Equal(t, []string{"S1", "S2"}, manifest.SampleIDs())
	assert.NoError(t, manifest.Validate())
}

func TestReadManifestMissing(t *testing.T) {
	_, err := ReadManifest(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestValidateManifest(t *testing.T) {
	tests := []struct {
		name    string
		entries []ManifestEntry
		errMsg  string
	}{
		{
			name: "duplicate sample",
			entries: []ManifestEntry{
				{SampleID: "S1", Filepath: "/a", Direction: Forward},
				{SampleID: "S1", Filepath: "/b", Direction: Forward},
			},
			errMsg: "duplicate sample S1",
		},
		{
			name: "empty sample id",
			entries: []ManifestEntry{
				{SampleID: "", Filepath: "/a", Direction: Forward},
			},
			errMsg: "empty sample identifier",
		},
		{
			name: "bad direction",
			entries: []ManifestEntry{
				{SampleID: "S1", Filepath: "/a", Direction: "sideways"},
			},
			errMsg: "invalid read direction",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			manifest := &Manifest{Entries: test.entries}
			err := manifest.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.errMsg)
		})
	}
}

func TestReadMetadataSamples(t *testing.T) {
	path := writeTestFile(t, "metadata.tsv",
		"sample-id\tgroup\n"+
			"#q2:types\tcategorical\n"+
			"S1\tcontrol\n"+
			"S2\tcase\n")

	samples, err := ReadMetadataSamples(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"S1": true, "S2": true}, samples)
}

func TestMissingFrom(t *testing.T) {
	manifest := &Manifest{Entries: []ManifestEntry{
		{SampleID: "S1", Filepath: "/a", Direction: Forward},
		{SampleID: "S2", Filepath: "/b", Direction: Forward},
		{SampleID: "S3", Filepath: "/c", Direction: Forward},
	}}
	missing := manifest.MissingFrom(map[string]bool{"S2": true})
	assert.Equal(t, []string{"S1", "S3"}, missing)
}
