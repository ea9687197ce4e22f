package cnvreport

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"

	"github.com/matthewlyf/nextgene-cnv-heatmap/cnvtable"
	"github.com/matthewlyf/nextgene-cnv-heatmap/heatmap"
	"github.com/matthewlyf/nextgene-cnv-heatmap/pairing"
)

// GeneTablePath is where a gene's filtered table artifact lives under outDir.
func GeneTablePath(outDir, gene string) string {
	return filepath.Join(outDir, gene+"_dataframe.csv")
}

// Run executes the whole report: one CSV per gene of interest, then the pair
// detection and heatmap over the chosen gene table. A run with zero detected
// pairs writes no image and is still a success.
func Run(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return pfx.Err(err)
	}

	tbl, err := cnvtable.OpenSheet(cfg.Input, cfg.Sheet)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d rows x %d columns from %s sheet %q\n", len(tbl.Rows), len(tbl.Columns), cfg.Input, cfg.Sheet)

	for _, gene := range cfg.Genes {
		if err := writeGeneTable(cfg, tbl, gene); err != nil {
			return err
		}
	}

	basis := cfg.HeatmapTable
	if basis == "" {
		basis = GeneTablePath(cfg.OutDir, cfg.HeatmapGene)
	}

	return renderHeatmap(cfg, basis)
}

func writeGeneTable(cfg Config, tbl *cnvtable.Table, gene string) error {
	geneTable, err := tbl.FilterContains(cnvtable.DescriptionColumn, gene)
	if err != nil {
		return err
	}

	if err := geneTable.SortByNumeric(cnvtable.ChrStartColumn, cfg.SortDescending(gene)); err != nil {
		return err
	}

	outPath := GeneTablePath(cfg.OutDir, gene)
	if err := geneTable.WriteCSV(outPath); err != nil {
		return err
	}

	log.Printf("%s: %d matching rows written to %s\n", gene, len(geneTable.Rows), outPath)

	return nil
}

func renderHeatmap(cfg Config, tablePath string) error {
	tbl, err := cnvtable.ReadCSV(tablePath)
	if err != nil {
		return err
	}

	pairs := pairing.Detect(tbl.Columns, cfg.Markers)

	log.Printf("Identified %d comparison pairs in %s:\n", len(pairs), tablePath)
	for _, pair := range pairs {
		log.Printf("  %s: (%s, %s)\n", pair.Prefix, pair.OutputColumn, pair.SampleColumn)
	}

	if err := writePairList(cfg, pairs); err != nil {
		return err
	}

	if len(pairs) == 0 {
		log.Println("No comparison pairs found based on the naming convention; skipping heatmap.")
		return nil
	}

	matrix, err := heatmap.Build(tbl, pairs)
	if err != nil {
		return err
	}

	logPairSummaries(matrix)

	img, err := matrix.Render()
	if err != nil {
		return err
	}

	outPNG := filepath.Join(cfg.OutDir, cfg.OutputImage)
	if err := heatmap.SavePNG(img, outPNG); err != nil {
		return err
	}

	log.Printf("Heatmap saved to: %s\n", outPNG)

	return nil
}

// writePairList persists the detected pairs alongside the image so an
// analyst can audit which columns were compared.
func writePairList(cfg Config, pairs []pairing.Pair) error {
	outPath := filepath.Join(cfg.OutDir, "comparison_pairs.csv")

	f, err := os.Create(outPath)
	if err != nil {
		return pfx.Err(fmt.Errorf("creating %s: %v", outPath, err))
	}

	// gocsv needs a non-nil slice even when no pairs were found, so the
	// artifact still carries its header row.
	list := pairs
	if list == nil {
		list = []pairing.Pair{}
	}

	if err := gocsv.MarshalFile(&list, f); err != nil {
		f.Close()
		return pfx.Err(fmt.Errorf("writing %s: %v", outPath, err))
	}

	if err := f.Close(); err != nil {
		return pfx.Err(fmt.Errorf("closing %s: %v", outPath, err))
	}

	return nil
}

// logPairSummaries prints per-row mean and median ratios, a quick sanity
// check on overall signal level before anyone reads the image.
func logPairSummaries(m *heatmap.Matrix) {
	for i, label := range m.RowLabels {
		mean, err := stats.Mean(m.Values[i])
		if err != nil {
			continue
		}
		median, err := stats.Median(m.Values[i])
		if err != nil {
			continue
		}
		log.Printf("  %s: mean ratio %.2f, median %.2f\n", label, mean, median)
	}
}
