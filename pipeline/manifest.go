// q16s: a pipeline driver for 16S rRNA amplicon analysis with QIIME 2.
// Copyright (c) 2026, the q16s contributors.

package pipeline

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Read directions accepted in a manifest.
const (
	Forward = "forward"
	Reverse = "reverse"
)

// A ManifestEntry maps a sample identifier to its read file and read
// direction.
type ManifestEntry struct {
	SampleID  string
	Filepath  string
	Direction string
}

// A Manifest defines the universe of samples for a pipeline run.
type Manifest struct {
	Entries []ManifestEntry
}

// ReadManifest parses a comma-separated manifest with a
// sample-id,absolute-filepath,direction header. Lines starting with #
// are skipped.
func ReadManifest(filename string) (*Manifest, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open manifest %v", filename)
	}
	defer func() { _ = f.Close() }()
	reader := csv.NewReader(f)
	reader.Comment = '#'
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true
	manifest := &Manifest{}
	header := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "unable to parse manifest %v", filename)
		}
		if header {
			header = false
			if strings.EqualFold(record[0], "sample-id") {
				continue
			}
		}
		manifest.Entries = append(manifest.Entries, ManifestEntry{
			SampleID:  record[0],
			Filepath:  record[1],
			Direction: strings.ToLower(record[2]),
		})
	}
	return manifest, nil
}

// Validate checks that every entry has a nonempty sample identifier,
// that no sample identifier occurs twice, and that every direction is
// forward or reverse.
func (manifest *Manifest) Validate() error {
	seen := make(map[string]bool)
	for _, entry := range manifest.Entries {
		if entry.SampleID == "" {
			return errors.Errorf("manifest entry for %v has an empty sample identifier", entry.Filepath)
		}
		if seen[entry.SampleID] {
			return errors.Errorf("duplicate sample %v in manifest", entry.SampleID)
		}
		seen[entry.SampleID] = true
		switch entry.Direction {
		case Forward, Reverse:
		default:
			return errors.Errorf("invalid read direction %v for sample %v", entry.Direction, entry.SampleID)
		}
	}
	return nil
}

// SampleIDs returns the sample identifiers in manifest order.
func (manifest *Manifest) SampleIDs() []string {
	ids := make([]string, 0, len(manifest.Entries))
	for _, entry := range manifest.Entries {
		ids = append(ids, entry.SampleID)
	}
	return ids
}

// MissingFrom returns the manifest sample identifiers absent from the
// given metadata sample set, in manifest order.
func (manifest *Manifest) MissingFrom(samples map[string]bool) []string {
	var missing []string
	for _, entry := range manifest.Entries {
		if !samples[entry.SampleID] {
			missing = append(missing, entry.SampleID)
		}
	}
	return missing
}

// ReadMetadataSamples parses a tab-separated metadata table and
// returns the set of sample identifiers in its first column. The
// header row and QIIME 2 type-annotation rows (first column starting
// with #) are skipped.
func ReadMetadataSamples(filename string) (map[string]bool, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open metadata %v", filename)
	}
	defer func() { _ = f.Close() }()
	reader := csv.NewReader(f)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	samples := make(map[string]bool)
	header := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "unable to parse metadata %v", filename)
		}
		if len(record) == 0 || strings.HasPrefix(record[0], "#") {
			continue
		}
		if header {
			header = false
			continue
		}
		if record[0] != "" {
			samples[record[0]] = true
		}
	}
	return samples, nil
}
