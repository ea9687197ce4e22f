package cnvtable

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// FilterContains returns a new table keeping only rows whose value under the
// named column contains substr, case-insensitively. Empty cells never match.
// Row order is preserved.
func (t *Table) FilterContains(column, substr string) (*Table, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(substr)

	out := &Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if row[idx] == "" {
			continue
		}
		if strings.Contains(strings.ToLower(row[idx]), needle) {
			out.Rows = append(out.Rows, row)
		}
	}

	return out, nil
}

// SortByNumeric stably sorts rows by the float value of the named column.
// Any cell that does not parse as a number is fatal to the caller, since
// downstream ordering would be meaningless.
func (t *Table) SortByNumeric(column string, descending bool) error {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return err
	}

	keys := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
		if err != nil {
			return pfx.Err(fmt.Errorf("column %q row %d: %q is not numeric", column, i+1, row[idx]))
		}
		keys[i] = v
	}

	// Sort a permutation rather than the rows directly, so the comparator's
	// keys stay aligned with the row indices throughout.
	perm := make([]int, len(t.Rows))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		if descending {
			return keys[perm[i]] > keys[perm[j]]
		}
		return keys[perm[i]] < keys[perm[j]]
	})

	sorted := make([][]string, len(t.Rows))
	for i, p := range perm {
		sorted[i] = t.Rows[p]
	}
	t.Rows = sorted

	return nil
}
