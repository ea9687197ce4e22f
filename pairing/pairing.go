// Package pairing matches output-pipeline measurement columns with their
// corresponding sample columns by the NextGene filename suffix convention.
package pairing

import "strings"

// Markers are the substring tags that distinguish the two sides of a
// comparison within a column name. Everything before the first occurrence of
// a marker is the prefix shared by a pair.
type Markers struct {
	Output string `json:"output_marker"`
	Sample string `json:"sample_marker"`
}

// DefaultMarkers matches the NextGene duplicate-removal export convention.
var DefaultMarkers = Markers{
	Output: "_marked_duplicates_removed_Output.pjt",
	Sample: "_S",
}

// Pair is one qualifying prefix with both of its columns.
type Pair struct {
	Prefix       string `csv:"prefix"`
	OutputColumn string `csv:"output_column"`
	SampleColumn string `csv:"sample_column"`
}

type group struct {
	outputs []string
	samples []string
}

// Detect scans column names and returns the qualifying comparison pairs in
// prefix first-encounter order. A column is tested against the Output marker
// first, then the Sample marker, and contributes to at most one group. A
// prefix qualifies only when exactly one column matched each marker;
// one-sided or duplicated prefixes are silently dropped.
func Detect(columns []string, m Markers) []Pair {
	groups := make(map[string]*group)
	order := make([]string, 0)

	add := func(prefix string) *group {
		g, seen := groups[prefix]
		if !seen {
			g = &group{}
			groups[prefix] = g
			order = append(order, prefix)
		}
		return g
	}

	for _, col := range columns {
		if strings.Contains(col, m.Output) {
			prefix := strings.SplitN(col, m.Output, 2)[0]
			g := add(prefix)
			g.outputs = append(g.outputs, col)
		} else if strings.Contains(col, m.Sample) {
			prefix := strings.SplitN(col, m.Sample, 2)[0]
			g := add(prefix)
			g.samples = append(g.samples, col)
		}
	}

	pairs := make([]Pair, 0, len(order))
	for _, prefix := range order {
		g := groups[prefix]
		if len(g.outputs) != 1 || len(g.samples) != 1 {
			continue
		}
		pairs = append(pairs, Pair{
			Prefix:       prefix,
			OutputColumn: g.outputs[0],
			SampleColumn: g.samples[0],
		})
	}

	return pairs
}
