package pkg

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRankByConfirmed_DescendingAndStable(t *testing.T) {
	records := []SummaryRecord{
		{Country: "Aland", Slug: "aland", TotalConfirmed: 10},
		{Country: "Borland", Slug: "borland", TotalConfirmed: 30},
		{Country: "Corland", Slug: "corland", TotalConfirmed: 30},
		{Country: "Dorland", Slug: "dorland", TotalConfirmed: 20},
	}
	ranked := RankByConfirmed(records)
	for i := 1; i < len(ranked); i++ {
		if ranked[i].TotalConfirmed > ranked[i-1].TotalConfirmed {
			t.Fatalf("rank order increases at %d: %d > %d", i, ranked[i].TotalConfirmed, ranked[i-1].TotalConfirmed)
		}
	}
	// Equal counts keep input order.
	if ranked[0].Slug != "borland" || ranked[1].Slug != "corland" {
		t.Fatalf("tie order = %s,%s, want borland,corland", ranked[0].Slug, ranked[1].Slug)
	}
	if records[0].Slug != "aland" {
		t.Fatalf("input slice was reordered")
	}
}

func TestNewestFirst(t *testing.T) {
	points := []SeriesPoint{
		{Date: day("2021-01-01"), Cases: 5},
		{Date: day("2021-01-03"), Cases: 12},
		{Date: day("2021-01-02"), Cases: 9},
	}
	sorted := NewestFirst(points)
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Date.After(sorted[i-1].Date) {
			t.Fatalf("date order increases at %d", i)
		}
	}
	if sorted[0].Cases != 12 {
		t.Fatalf("newest cases = %d, want 12", sorted[0].Cases)
	}
}

func TestSumTotals(t *testing.T) {
	records := []SummaryRecord{
		{TotalConfirmed: 10, TotalDeaths: 1, TotalRecovered: 2},
		{TotalConfirmed: 20, TotalDeaths: 3, TotalRecovered: 4},
	}
	totals := SumTotals(records)
	if totals.Confirmed != 30 || totals.Deaths != 4 || totals.Recovered != 6 {
		t.Fatalf("totals = %+v, want {30 4 6}", totals)
	}
}

func TestLatestCases_AnyInputOrder(t *testing.T) {
	forward := []SeriesPoint{
		{Date: day("2021-01-01"), Cases: 5},
		{Date: day("2021-01-02"), Cases: 9},
	}
	backward := []SeriesPoint{forward[1], forward[0]}
	for _, points := range [][]SeriesPoint{forward, backward} {
		got, ok := LatestCases(points)
		if !ok || got != 9 {
			t.Fatalf("LatestCases = %d,%v, want 9,true", got, ok)
		}
	}
}

func TestLatestCases_Empty(t *testing.T) {
	got, ok := LatestCases(nil)
	if ok || got != 0 {
		t.Fatalf("LatestCases(nil) = %d,%v, want 0,false", got, ok)
	}
}

func TestLastWindow(t *testing.T) {
	var points []SeriesPoint
	base := day("2021-01-01")
	for i := 0; i < 20; i++ {
		points = append(points, SeriesPoint{Date: base.AddDate(0, 0, i), Cases: int64(i)})
	}
	window := LastWindow(points, 14)
	if len(window) != 14 {
		t.Fatalf("window size = %d, want 14", len(window))
	}
	if window[0].Cases != 6 || window[13].Cases != 19 {
		t.Fatalf("window = [%d..%d], want [6..19]", window[0].Cases, window[13].Cases)
	}
	for i := 1; i < len(window); i++ {
		if window[i].Date.Before(window[i-1].Date) {
			t.Fatalf("window not chronological at %d", i)
		}
	}

	short := LastWindow(points[:5], 14)
	if len(short) != 5 {
		t.Fatalf("short window size = %d, want 5", len(short))
	}
}

func TestFilterBySlug(t *testing.T) {
	records := []SummaryRecord{
		{Slug: "thailand"}, {Slug: "norway"}, {Slug: "peru"},
	}
	filtered := FilterBySlug(records, []string{"peru", "thailand"})
	if len(filtered) != 2 || filtered[0].Slug != "thailand" || filtered[1].Slug != "peru" {
		t.Fatalf("filtered = %+v", filtered)
	}
	if got := FilterBySlug(records, nil); len(got) != 3 {
		t.Fatalf("empty allow list should keep everything, got %d", len(got))
	}
}
