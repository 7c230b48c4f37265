// q16s: a pipeline driver for 16S rRNA amplicon analysis with QIIME 2.
// Copyright (c) 2026, the q16s contributors.

package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.bam", "a.zip", "c.fastq"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}
	files, err := Directory(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.zip", "b.bam", "c.fastq"}
	if len(files) != len(want) {
		t.Fatalf("Directory returned %v files, want %v", len(files), len(want))
	}
	for i, name := range want {
		if files[i] != name {
			t.Errorf("Directory[%v] = %v, want %v", i, files[i], name)
		}
	}
}

func TestDirectoryOnFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "only.bam")
	if err := os.WriteFile(file, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	files, err := Directory(file)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != "only.bam" {
		t.Errorf("Directory on a plain file = %v, want [only.bam]", files)
	}
}

func TestFullPathname(t *testing.T) {
	full, err := FullPathname("relative/path")
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(full) {
		t.Errorf("FullPathname(relative/path) = %v is not absolute", full)
	}
	if full, _ := FullPathname("/already/abs"); full != "/already/abs" {
		t.Errorf("FullPathname(/already/abs) = %v", full)
	}
}
