package progress

import (
	"testing"
)

func TestStageThresholds(t *testing.T) {
	// 100 entries: unit is 20, stage advances past each multiple.
	cases := []struct {
		current int
		want    string
	}{
		{0, "[-----]"},
		{20, "[-----]"},
		{21, "[>----]"},
		{40, "[>----]"},
		{41, "[>>---]"},
		{61, "[>>>--]"},
		{81, "[>>>>-]"},
		{100, "[>>>>-]"},
	}
	for _, tc := range cases {
		if got := Stage(tc.current, 100); got != tc.want {
			t.Errorf("Stage(%d, 100) = %q, want %q", tc.current, tc.want, got)
		}
	}
}

func TestStageSmallTotals(t *testing.T) {
	// Totals below five entries never advance past the first stage.
	for current := 0; current < 4; current++ {
		if got := Stage(current, 4); got != "[-----]" {
			t.Errorf("Stage(%d, 4) = %q, want [-----]", current, got)
		}
	}
	if got := Stage(0, 0); got != "[-----]" {
		t.Errorf("Stage(0, 0) = %q, want [-----]", got)
	}
}

func TestStagesDeduplicates(t *testing.T) {
	var rendered []string
	report := Stages(func(s string) { rendered = append(rendered, s) })

	for i := 0; i <= 100; i++ {
		report(i, 100)
	}

	want := []string{"[-----]", "[>----]", "[>>---]", "[>>>--]", "[>>>>-]"}
	if len(rendered) != len(want) {
		t.Fatalf("rendered %d stages, want %d: %v", len(rendered), len(want), rendered)
	}
	for i, s := range want {
		if rendered[i] != s {
			t.Errorf("rendered[%d] = %q, want %q", i, rendered[i], s)
		}
	}
}

func TestNilFuncReport(t *testing.T) {
	// A nil reporter is valid and must not panic.
	var f Func
	f.Report(1, 10)
}
