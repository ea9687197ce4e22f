package pairing

import (
	"reflect"
	"testing"
)

func TestDetect(t *testing.T) {
	type expectation struct {
		Name    string
		Columns []string
		Pairs   []Pair
	}

	for _, v := range []expectation{
		{
			Name:    "one complete pair",
			Columns: []string{"A_marked_duplicates_removed_Output.pjt", "A_S1"},
			Pairs:   []Pair{{Prefix: "A", OutputColumn: "A_marked_duplicates_removed_Output.pjt", SampleColumn: "A_S1"}},
		},
		{
			Name: "pairs keep prefix encounter order",
			Columns: []string{
				"B_marked_duplicates_removed_Output.pjt",
				"A_marked_duplicates_removed_Output.pjt",
				"A_S1",
				"B_S2",
			},
			Pairs: []Pair{
				{Prefix: "B", OutputColumn: "B_marked_duplicates_removed_Output.pjt", SampleColumn: "B_S2"},
				{Prefix: "A", OutputColumn: "A_marked_duplicates_removed_Output.pjt", SampleColumn: "A_S1"},
			},
		},
		{
			Name:    "unmatched columns contribute nothing",
			Columns: []string{"Description", "Chr Start_x", "A_marked_duplicates_removed_Output.pjt", "A_S1"},
			Pairs:   []Pair{{Prefix: "A", OutputColumn: "A_marked_duplicates_removed_Output.pjt", SampleColumn: "A_S1"}},
		},
		{
			Name:    "one-sided prefix is dropped",
			Columns: []string{"A_marked_duplicates_removed_Output.pjt", "B_S1"},
			Pairs:   []Pair{},
		},
		{
			Name: "duplicated side disqualifies the prefix",
			Columns: []string{
				"A_marked_duplicates_removed_Output.pjt",
				"A_marked_duplicates_removed_Output.pjt_v2",
				"A_S1",
			},
			Pairs: []Pair{},
		},
		{
			// A column carrying both markers is classified by the output
			// marker, so it can never pair as the sample side.
			Name: "output marker tested before sample marker",
			Columns: []string{
				"A_marked_duplicates_removed_Output.pjt",
				"A_S1_marked_duplicates_removed_Output.pjt",
			},
			Pairs: []Pair{},
		},
		{
			Name:    "no columns",
			Columns: nil,
			Pairs:   []Pair{},
		},
	} {
		got := Detect(v.Columns, DefaultMarkers)
		if !reflect.DeepEqual(got, v.Pairs) {
			t.Errorf("%s: Detect() = %+v, want %+v", v.Name, got, v.Pairs)
		}
	}
}

func TestDetectCustomMarkers(t *testing.T) {
	markers := Markers{Output: "_out", Sample: "_ctl"}

	got := Detect([]string{"X_out", "X_ctl", "Y_ctl"}, markers)
	want := []Pair{{Prefix: "X", OutputColumn: "X_out", SampleColumn: "X_ctl"}}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detect() = %+v, want %+v", got, want)
	}
}
