package heatmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"

	"github.com/matthewlyf/nextgene-cnv-heatmap/cnvtable"
	"github.com/matthewlyf/nextgene-cnv-heatmap/pairing"
)

// Matrix is the laid-out heatmap: two rows per comparison pair (output first,
// then sample), one column per table record. Values holds the rounded raw
// ratios used for the in-cell annotations.
type Matrix struct {
	RowLabels []string
	ColLabels []string
	Classes   [][]Class
	Values    [][]float64
}

// Build lays out the matrix for the given table and pairs, in pair order.
// Column labels come from the table's Description column. Any measurement
// cell that does not parse as a number is an error naming the cell.
func Build(tbl *cnvtable.Table, pairs []pairing.Pair) (*Matrix, error) {
	descriptions, err := tbl.Column(cnvtable.DescriptionColumn)
	if err != nil {
		return nil, err
	}

	m := &Matrix{ColLabels: descriptions}

	for _, pair := range pairs {
		for sampleN, col := range []string{pair.OutputColumn, pair.SampleColumn} {
			values, classes, err := classifyColumn(tbl, col)
			if err != nil {
				return nil, err
			}

			m.Values = append(m.Values, values)
			m.Classes = append(m.Classes, classes)
			m.RowLabels = append(m.RowLabels, fmt.Sprintf("%s (Sample %d)", col, sampleN+1))
		}
	}

	return m, nil
}

func classifyColumn(tbl *cnvtable.Table, column string) ([]float64, []Class, error) {
	cells, err := tbl.Column(column)
	if err != nil {
		return nil, nil, err
	}

	values := make([]float64, len(cells))
	classes := make([]Class, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, nil, pfx.Err(fmt.Errorf("column %q row %d: %q is not numeric", column, i+1, cell))
		}
		values[i] = Round2(v)
		classes[i] = Classify(v)
	}

	return values, classes, nil
}
