package cnvreport

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWithDefaults(t *testing.T) {
	cfg := Config{Input: "cnv.xls", Sheet: "RUN1", OutDir: "out"}.WithDefaults()

	if want := []string{"ATM", "PALB2", "BRCA1", "BRCA2"}; !reflect.DeepEqual(cfg.Genes, want) {
		t.Errorf("Genes = %v, want %v", cfg.Genes, want)
	}
	if want := []string{"BRCA1", "PALB2"}; !reflect.DeepEqual(cfg.ReverseSortGenes, want) {
		t.Errorf("ReverseSortGenes = %v, want %v", cfg.ReverseSortGenes, want)
	}
	if cfg.HeatmapGene != "PALB2" {
		t.Errorf("HeatmapGene = %q, want PALB2", cfg.HeatmapGene)
	}
	if cfg.Markers.Output != "_marked_duplicates_removed_Output.pjt" || cfg.Markers.Sample != "_S" {
		t.Errorf("Markers = %+v", cfg.Markers)
	}
}

func TestWithDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Input:            "cnv.xls",
		Sheet:            "RUN1",
		OutDir:           "out",
		Genes:            []string{"TP53"},
		ReverseSortGenes: []string{},
		HeatmapTable:     "custom.csv",
	}.WithDefaults()

	if !reflect.DeepEqual(cfg.Genes, []string{"TP53"}) {
		t.Errorf("Genes = %v", cfg.Genes)
	}
	// An explicitly empty reverse-sort list means every table sorts ascending.
	if len(cfg.ReverseSortGenes) != 0 {
		t.Errorf("ReverseSortGenes = %v, want none", cfg.ReverseSortGenes)
	}
	// An explicit table path suppresses the default heatmap gene.
	if cfg.HeatmapGene != "" {
		t.Errorf("HeatmapGene = %q, want empty", cfg.HeatmapGene)
	}
}

func TestValidate(t *testing.T) {
	type expectation struct {
		Name string
		Cfg  Config
		OK   bool
	}

	complete := Config{Input: "cnv.xls", Sheet: "RUN1", OutDir: "out"}.WithDefaults()

	for _, v := range []expectation{
		{"complete", complete, true},
		{"missing input", Config{Sheet: "RUN1", OutDir: "out"}.WithDefaults(), false},
		{"missing sheet", Config{Input: "cnv.xls", OutDir: "out"}.WithDefaults(), false},
		{"missing outdir", Config{Input: "cnv.xls", Sheet: "RUN1"}.WithDefaults(), false},
	} {
		err := v.Cfg.Validate()
		if v.OK && err != nil {
			t.Errorf("%s: unexpected error %v", v.Name, err)
		}
		if !v.OK && err == nil {
			t.Errorf("%s: expected an error", v.Name)
		}
	}
}

func TestSortDescending(t *testing.T) {
	cfg := Config{}.WithDefaults()

	for gene, want := range map[string]bool{
		"BRCA1": true,
		"brca1": true,
		"PALB2": true,
		"BRCA2": false,
		"ATM":   false,
	} {
		if got := cfg.SortDescending(gene); got != want {
			t.Errorf("SortDescending(%q) = %v, want %v", gene, got, want)
		}
	}
}

func TestParseJSONConfigFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{
		"input": "cnv.xls",
		"sheet": "22SOMATICNGS6_NO_CONTROLS",
		"out_dir": "out",
		"genes": ["PALB2"],
		"heatmap_gene": "PALB2"
	}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseJSONConfigFromPath(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Sheet != "22SOMATICNGS6_NO_CONTROLS" {
		t.Errorf("Sheet = %q", cfg.Sheet)
	}
	if !reflect.DeepEqual(cfg.Genes, []string{"PALB2"}) {
		t.Errorf("Genes = %v", cfg.Genes)
	}
	// Unset fields come from the defaults.
	if cfg.OutputImage == "" || cfg.Markers.Sample != "_S" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("parsed config should validate: %v", err)
	}
}

func TestParseJSONConfigMissingFile(t *testing.T) {
	if _, err := ParseJSONConfigFromPath(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
