// cnvheatmap loads a NextGene CNV spreadsheet export, writes one
// filtered/sorted CSV per gene of interest, then classifies the paired
// output/sample measurement columns of one gene's table into gain/loss/normal
// calls and renders them as an annotated heatmap PNG.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/matthewlyf/nextgene-cnv-heatmap/cnvreport"
)

func init() {
	flag.Usage = func() {
		flag.PrintDefaults()

		log.Println("Example JSONConfig file layout:")
		bts, err := json.MarshalIndent(cnvreport.DefaultConfig(), "", "  ")
		if err == nil {
			log.Println(string(bts))
		}
	}
}

func main() {
	start := time.Now()
	log.Println("cnvheatmap start")
	defer func() {
		log.Printf("cnvheatmap end. Took %.2f seconds\n", time.Since(start).Seconds())
	}()

	var configPath, input, sheet, genes, reverseGenes, outDir, heatmapGene, heatmapTable, outputImage string

	flag.StringVar(&configPath, "config", "", "(Optional) JSON config file; flags below override nothing when this is set.")
	flag.StringVar(&input, "file", "", "Path to the XLS workbook exported from NextGene.")
	flag.StringVar(&sheet, "sheet", "", "Worksheet name within the workbook.")
	flag.StringVar(&genes, "genes", "", "(Optional) Comma-delimited genes of interest. Defaults to ATM,PALB2,BRCA1,BRCA2.")
	flag.StringVar(&reverseGenes, "reverse", "", "(Optional) Comma-delimited genes whose tables sort descending by chromosomal start. Defaults to BRCA1,PALB2.")
	flag.StringVar(&outDir, "out", "", "Directory that receives the per-gene CSVs and the heatmap PNG.")
	flag.StringVar(&heatmapGene, "heatmap-gene", "", "(Optional) Gene whose table becomes the heatmap basis. Defaults to PALB2.")
	flag.StringVar(&heatmapTable, "heatmap-table", "", "(Optional) Explicit CSV path to use as the heatmap basis instead of a gene's table.")
	flag.StringVar(&outputImage, "image", "", "(Optional) File name for the heatmap PNG within the output directory.")
	flag.Parse()

	cfg, err := assembleConfig(configPath, input, sheet, genes, reverseGenes, outDir, heatmapGene, heatmapTable, outputImage)
	if err != nil {
		log.Println(err)
		flag.Usage()
		os.Exit(1)
	}

	if err := cnvreport.Run(cfg); err != nil {
		log.Fatalln(err)
	}
}

func assembleConfig(configPath, input, sheet, genes, reverseGenes, outDir, heatmapGene, heatmapTable, outputImage string) (cnvreport.Config, error) {
	if configPath != "" {
		cfg, err := cnvreport.ParseJSONConfigFromPath(configPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	cfg := cnvreport.Config{
		Input:        input,
		Sheet:        sheet,
		Genes:        splitList(genes),
		OutDir:       outDir,
		HeatmapGene:  heatmapGene,
		HeatmapTable: heatmapTable,
		OutputImage:  outputImage,
	}
	if reverseGenes != "" {
		cfg.ReverseSortGenes = splitList(reverseGenes)
	}
	cfg = cfg.WithDefaults()

	return cfg, cfg.Validate()
}

func splitList(commaDelimited string) []string {
	if commaDelimited == "" {
		return nil
	}

	out := make([]string, 0)
	for _, v := range strings.Split(commaDelimited, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}
