// Package cnvtable loads NextGene CNV spreadsheet exports into an in-memory
// table and writes filtered per-gene tables back out as CSV.
package cnvtable

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/carbocation/pfx"
	"github.com/csimplestring/go-csv/detector"
	"github.com/extrame/xls"
)

// Column names the NextGene export is required to carry.
const (
	DescriptionColumn = "Description"
	ChrStartColumn    = "Chr Start_x"
)

// Table is one worksheet (or CSV) held fully in memory. Cells stay as strings
// until a stage needs them as numbers, so a malformed value fails at the stage
// that depends on it rather than silently at load time.
type Table struct {
	Columns []string
	Rows    [][]string
}

// OpenSheet reads the named worksheet from an XLS workbook. The first row is
// treated as the header and every data row is padded to the header's width.
func OpenSheet(path, sheetName string) (*Table, error) {
	spreadsheet, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("opening workbook %s: %v", path, err))
	}

	var sheet *xls.WorkSheet
	sheetCount := spreadsheet.NumSheets()
	for sheetID := 0; sheetID < sheetCount; sheetID++ {
		if candidate := spreadsheet.GetSheet(sheetID); candidate != nil && candidate.Name == sheetName {
			sheet = candidate
			break
		}
	}
	if sheet == nil {
		return nil, pfx.Err(fmt.Errorf("workbook %s has no sheet named %q (%d sheets present)", path, sheetName, sheetCount))
	}

	out := &Table{}
	for rowID := 0; rowID <= int(sheet.MaxRow); rowID++ {
		row := sheet.Row(rowID)
		if row == nil {
			return nil, pfx.Err(fmt.Errorf("workbook %s sheet %q: nil row %d", path, sheetName, rowID))
		}

		cells := make([]string, 0, row.LastCol()+1)
		for colID := 0; colID <= row.LastCol(); colID++ {
			cells = append(cells, row.Col(colID))
		}

		if rowID == 0 {
			out.Columns = cells
			continue
		}

		// XLS rows can be ragged; square them off against the header.
		for len(cells) < len(out.Columns) {
			cells = append(cells, "")
		}
		out.Rows = append(out.Rows, cells[:len(out.Columns)])
	}

	if len(out.Columns) == 0 {
		return nil, pfx.Err(fmt.Errorf("workbook %s sheet %q has no header row", path, sheetName))
	}

	return out, nil
}

// ReadCSV loads a previously written table, sniffing the delimiter so that
// comma- and tab-delimited exports both work.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("opening table %s: %v", path, err))
	}
	defer f.Close()

	delim := determineDelimiter(f)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, pfx.Err(err)
	}

	r := csv.NewReader(bufio.NewReader(f))
	r.Comma = delim
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("parsing table %s: %v", path, err))
	}
	if len(records) == 0 {
		return nil, pfx.Err(fmt.Errorf("table %s is empty (no header row)", path))
	}

	return &Table{Columns: records[0], Rows: records[1:]}, nil
}

// determineDelimiter returns the single most likely rune delimiting the
// values in the reader, assuming a CSV-like file.
func determineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}

// WriteCSV persists the table. The artifact is written through a single
// scoped handle and flush/close errors are surfaced, so a run either leaves a
// complete file or reports failure. An empty table yields a header-only file.
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(fmt.Errorf("creating %s: %v", path, err))
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		f.Close()
		return pfx.Err(err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return pfx.Err(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return pfx.Err(fmt.Errorf("writing %s: %v", path, err))
	}

	if err := f.Close(); err != nil {
		return pfx.Err(fmt.Errorf("closing %s: %v", path, err))
	}

	return nil
}

// ColumnIndex maps a column name to its position, erroring with the table's
// actual header when the name is absent.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, col := range t.Columns {
		if col == name {
			return i, nil
		}
	}

	return 0, pfx.Err(fmt.Errorf("required column %q not found among %v", name, t.Columns))
}

// Column returns all cell values under the named column, in row order.
func (t *Table) Column(name string) ([]string, error) {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, row[idx])
	}

	return out, nil
}
