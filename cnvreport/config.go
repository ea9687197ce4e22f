// Package cnvreport wires the CNV report pipeline together: load the
// spreadsheet, write per-gene tables, detect comparison pairs, and render the
// heatmap artifact.
package cnvreport

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/carbocation/pfx"

	"github.com/matthewlyf/nextgene-cnv-heatmap/pairing"
)

// Config is the full description of one reporting run. Every path the
// pipeline touches is named here rather than in package-level constants.
type Config struct {
	ConfigPath string `json:"-"`

	// Spreadsheet input.
	Input string `json:"input"`
	Sheet string `json:"sheet"`

	// Genes whose rows become per-gene CSV tables. ReverseSortGenes lists
	// the subset sorted descending by chromosomal start; everything else
	// sorts ascending.
	Genes            []string `json:"genes"`
	ReverseSortGenes []string `json:"reverse_sort_genes"`

	// OutDir receives every artifact. The heatmap is built from the table
	// for HeatmapGene, or from an explicit HeatmapTable path if set.
	OutDir       string `json:"out_dir"`
	HeatmapGene  string `json:"heatmap_gene"`
	HeatmapTable string `json:"heatmap_table"`
	OutputImage  string `json:"output_image"`

	Markers pairing.Markers `json:"markers"`
}

// DefaultConfig mirrors the original analysis run: the four hereditary
// cancer genes, BRCA1 and PALB2 reverse-sorted, heatmap built from PALB2.
func DefaultConfig() Config {
	return Config{
		Genes:            []string{"ATM", "PALB2", "BRCA1", "BRCA2"},
		ReverseSortGenes: []string{"BRCA1", "PALB2"},
		HeatmapGene:      "PALB2",
		OutputImage:      "cnv_heatmap_with_grouped_comparisons_no_legend.png",
		Markers:          pairing.DefaultMarkers,
	}
}

// ParseJSONConfigFromPath loads a Config from a JSON file, filling any field
// the file leaves unset from DefaultConfig.
func ParseJSONConfigFromPath(path string) (Config, error) {
	out := Config{ConfigPath: path}

	f, err := os.Open(path)
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}
		return out, pfx.Err(fmt.Errorf("parsing config %s: %v", path, err))
	}

	return out.WithDefaults(), nil
}

// WithDefaults fills unset fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()

	if len(c.Genes) == 0 {
		c.Genes = def.Genes
	}
	if c.ReverseSortGenes == nil {
		c.ReverseSortGenes = def.ReverseSortGenes
	}
	if c.HeatmapGene == "" && c.HeatmapTable == "" {
		c.HeatmapGene = def.HeatmapGene
	}
	if c.OutputImage == "" {
		c.OutputImage = def.OutputImage
	}
	if c.Markers.Output == "" {
		c.Markers.Output = def.Markers.Output
	}
	if c.Markers.Sample == "" {
		c.Markers.Sample = def.Markers.Sample
	}

	return c
}

// Validate rejects configs that cannot describe a complete run.
func (c Config) Validate() error {
	if c.Input == "" {
		return pfx.Err(fmt.Errorf("no input spreadsheet given"))
	}
	if c.Sheet == "" {
		return pfx.Err(fmt.Errorf("no sheet name given for %s", c.Input))
	}
	if len(c.Genes) == 0 {
		return pfx.Err(fmt.Errorf("no genes of interest given"))
	}
	if c.OutDir == "" {
		return pfx.Err(fmt.Errorf("no output directory given"))
	}
	if c.HeatmapGene == "" && c.HeatmapTable == "" {
		return pfx.Err(fmt.Errorf("neither a heatmap gene nor a heatmap table path given"))
	}

	return nil
}

// SortDescending reports whether a gene's table sorts descending by
// chromosomal start. Matching is case-insensitive, like the gene filter.
func (c Config) SortDescending(gene string) bool {
	for _, g := range c.ReverseSortGenes {
		if strings.EqualFold(g, gene) {
			return true
		}
	}

	return false
}
