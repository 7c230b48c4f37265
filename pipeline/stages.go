// q16s: a pipeline driver for 16S rRNA amplicon analysis with QIIME 2.
// Copyright (c) 2026, the q16s contributors.

package pipeline

import (
	"path/filepath"
	"strconv"
)

// Subdirectories of the output tree, created by the setup stage.
const (
	DenoisingDir = "denoising"
	TaxonomyDir  = "taxonomy"
	DiversityDir = "diversity"
	ExportsDir   = "exports"
)

// CoreMetricsDir is the core diversity metrics directory under
// DiversityDir. It must not exist before the diversity stage runs; the
// toolkit creates it.
const CoreMetricsDir = "core-metrics-results"

func (p *Pipeline) outpath(elem ...string) string {
	return filepath.Join(append([]string{p.Config.OutputDir}, elem...)...)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// Stages returns the toolkit stages in their fixed execution order:
// import, denoise, classify, phylogeny, diversity, export. The
// conversion stage precedes them and is driven separately because its
// commands depend on the files present in the working directory.
func (p *Pipeline) Stages() []Stage {
	return []Stage{
		p.importStage(),
		p.denoiseStage(),
		p.classifyStage(),
		p.phylogenyStage(),
		p.diversityStage(),
		p.exportStage(),
	}
}

func (p *Pipeline) importStage() Stage {
	demux := p.outpath("demux.qza")
	return Stage{
		Name: "Importing reads",
		Commands: []Command{
			{p.Config.QiimeTool, []string{
				"tools", "import",
				"--type", "SampleData[SequencesWithQuality]",
				"--input-format", "SingleEndFastqManifestPhred33",
				"--input-path", p.Config.ManifestFile,
				"--output-path", demux,
			}},
			{p.Config.QiimeTool, []string{
				"demux", "summarize",
				"--i-data", demux,
				"--o-visualization", p.outpath("demux.qzv"),
			}},
		},
	}
}

func (p *Pipeline) denoiseStage() Stage {
	table := p.outpath(DenoisingDir, "table.qza")
	repSeqs := p.outpath(DenoisingDir, "rep-seqs.qza")
	stats := p.outpath(DenoisingDir, "stats.qza")
	return Stage{
		Name: "Denoising",
		Commands: []Command{
			{p.Config.QiimeTool, []string{
				"dada2", "denoise-pyro",
				"--i-demultiplexed-seqs", p.outpath("demux.qza"),
				"--p-trim-left", itoa(p.Config.TrimLeft),
				"--p-trunc-len", itoa(p.Config.TruncLen),
				"--p-trunc-q", itoa(p.Config.TruncQ),
				"--p-n-threads", itoa(p.Config.Threads),
				"--o-table", table,
				"--o-representative-sequences", repSeqs,
				"--o-denoising-stats", stats,
			}},
			{p.Config.QiimeTool, []string{
				"metadata", "tabulate",
				"--m-input-file", stats,
				"--o-visualization", p.outpath(DenoisingDir, "stats.qzv"),
			}},
			{p.Config.QiimeTool, []string{
				"feature-table", "summarize",
				"--i-table", table,
				"--m-sample-metadata-file", p.Config.MetadataFile,
				"--o-visualization", p.outpath(DenoisingDir, "table.qzv"),
			}},
			{p.Config.QiimeTool, []string{
				"feature-table", "tabulate-seqs",
				"--i-data", repSeqs,
				"--o-visualization", p.outpath(DenoisingDir, "rep-seqs.qzv"),
			}},
		},
	}
}

func (p *Pipeline) classifyStage() Stage {
	taxonomy := p.outpath(TaxonomyDir, "taxonomy.qza")
	return Stage{
		Name: "Assigning taxonomy",
		Commands: []Command{
			{p.Config.QiimeTool, []string{
				"feature-classifier", "classify-sklearn",
				"--i-classifier", p.Config.ClassifierFile,
				"--i-reads", p.outpath(DenoisingDir, "rep-seqs.qza"),
				"--p-n-jobs", itoa(p.Config.Threads),
				"--o-classification", taxonomy,
			}},
			{p.Config.QiimeTool, []string{
				"metadata", "tabulate",
				"--m-input-file", taxonomy,
				"--o-visualization", p.outpath(TaxonomyDir, "taxonomy.qzv"),
			}},
			{p.Config.QiimeTool, []string{
				"taxa", "barplot",
				"--i-table", p.outpath(DenoisingDir, "table.qza"),
				"--i-taxonomy", taxonomy,
				"--m-metadata-file", p.Config.MetadataFile,
				"--o-visualization", p.outpath(TaxonomyDir, "taxa-bar-plots.qzv"),
			}},
		},
	}
}

func (p *Pipeline) phylogenyStage() Stage {
	aligned := p.outpath(DenoisingDir, "aligned-rep-seqs.qza")
	masked := p.outpath(DenoisingDir, "masked-aligned-rep-seqs.qza")
	unrooted := p.outpath(DenoisingDir, "unrooted-tree.qza")
	return Stage{
		Name: "Building phylogeny",
		Commands: []Command{
			{p.Config.QiimeTool, []string{
				"alignment", "mafft",
				"--i-sequences", p.outpath(DenoisingDir, "rep-seqs.qza"),
				"--p-n-threads", itoa(p.Config.Threads),
				"--o-alignment", aligned,
			}},
			{p.Config.QiimeTool, []string{
				"alignment", "mask",
				"--i-alignment", aligned,
				"--o-masked-alignment", masked,
			}},
			{p.Config.QiimeTool, []string{
				"phylogeny", "fasttree",
				"--i-alignment", masked,
				"--p-n-threads", itoa(p.Config.Threads),
				"--o-tree", unrooted,
			}},
			{p.Config.QiimeTool, []string{
				"phylogeny", "midpoint-root",
				"--i-tree", unrooted,
				"--o-rooted-tree", p.outpath(DenoisingDir, "rooted-tree.qza"),
			}},
		},
	}
}

func (p *Pipeline) diversityStage() Stage {
	table := p.outpath(DenoisingDir, "table.qza")
	rooted := p.outpath(DenoisingDir, "rooted-tree.qza")
	return Stage{
		Name: "Computing diversity metrics",
		Commands: []Command{
			{p.Config.QiimeTool, []string{
				"diversity", "core-metrics-phylogenetic",
				"--i-phylogeny", rooted,
				"--i-table", table,
				"--p-sampling-depth", itoa(p.Config.SamplingDepth),
				"--m-metadata-file", p.Config.MetadataFile,
				"--p-n-jobs-or-threads", itoa(p.Config.Threads),
				"--output-dir", p.outpath(DiversityDir, CoreMetricsDir),
			}},
			{p.Config.QiimeTool, []string{
				"diversity", "alpha-rarefaction",
				"--i-table", table,
				"--i-phylogeny", rooted,
				"--p-max-depth", itoa(p.Config.MaxRarefactionDepth),
				"--m-metadata-file", p.Config.MetadataFile,
				"--o-visualization", p.outpath(DiversityDir, "alpha-rarefaction.qzv"),
			}},
			{p.Config.QiimeTool, []string{
				"diversity", "alpha-group-significance",
				"--i-alpha-diversity", p.outpath(DiversityDir, CoreMetricsDir, "shannon_vector.qza"),
				"--m-metadata-file", p.Config.MetadataFile,
				"--o-visualization", p.outpath(DiversityDir, "shannon-group-significance.qzv"),
			}},
		},
	}
}

func (p *Pipeline) exportStage() Stage {
	exports := p.outpath(ExportsDir)
	return Stage{
		Name: "Exporting artifacts",
		Commands: []Command{
			{p.Config.QiimeTool, []string{
				"tools", "export",
				"--input-path", p.outpath(DenoisingDir, "table.qza"),
				"--output-path", exports,
			}},
			{p.Config.BiomTool, []string{
				"convert",
				"-i", filepath.Join(exports, "feature-table.biom"),
				"-o", filepath.Join(exports, "feature-table.tsv"),
				"--to-tsv",
			}},
			{p.Config.QiimeTool, []string{
				"tools", "export",
				"--input-path", p.outpath(TaxonomyDir, "taxonomy.qza"),
				"--output-path", exports,
			}},
			{p.Config.QiimeTool, []string{
				"tools", "export",
				"--input-path", p.outpath(DenoisingDir, "rooted-tree.qza"),
				"--output-path", exports,
			}},
			{p.Config.QiimeTool, []string{
				"tools", "export",
				"--input-path", p.outpath(DiversityDir, CoreMetricsDir, "unweighted_unifrac_distance_matrix.qza"),
				"--output-path", filepath.Join(exports, "unweighted-unifrac"),
			}},
		},
	}
}
