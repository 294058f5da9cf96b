package combos

import (
	"testing"
)

func TestSummarizeEmptySet(t *testing.T) {
	t.Parallel()

	summary := Summarize(nil)
	if summary.Count != 0 || summary.CountProfitable != 0 {
		t.Fatalf("empty set must produce the zero summary, got %+v", summary)
	}
	if !summary.MeanMargin.IsZero() || !summary.MeanProfit.IsZero() {
		t.Fatal("empty set means must stay zero, never NaN")
	}
}

func TestSummarizeAggregates(t *testing.T) {
	t.Parallel()

	ranked := []Scored{
		scored(0, "150", "30", "20"),
		scored(1, "100", "10", "10"),
		scored(2, "50", "5", "10"),
		scored(3, "-20", "-2", "10"),
	}
	summary := Summarize(ranked)

	if summary.Count != 4 {
		t.Fatalf("count = %d, want 4", summary.Count)
	}
	if !summary.MinMargin.Equal(dec("-20")) {
		t.Fatalf("min margin = %s, want -20", summary.MinMargin)
	}
	if !summary.MaxMargin.Equal(dec("150")) {
		t.Fatalf("max margin = %s, want 150", summary.MaxMargin)
	}
	if !summary.MeanMargin.Equal(dec("70")) {
		t.Fatalf("mean margin = %s, want 70", summary.MeanMargin)
	}
	if !summary.MeanProfit.Equal(dec("10.75")) {
		t.Fatalf("mean profit = %s, want 10.75", summary.MeanProfit)
	}
	if !summary.MeanCost.Equal(dec("12.5")) {
		t.Fatalf("mean cost = %s, want 12.5", summary.MeanCost)
	}
	// margin >= 100 doubles the money put in
	if summary.CountProfitable != 2 {
		t.Fatalf("profitable = %d, want 2", summary.CountProfitable)
	}
}
