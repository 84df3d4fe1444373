package pkg

import "sort"

// WorldTotals are the sums of the per-country cumulative counts.
type WorldTotals struct {
	Confirmed int64
	Deaths    int64
	Recovered int64
}

// RankByConfirmed returns the records ordered by descending confirmed
// count. The sort is stable: ties keep their input order. The input
// slice is not modified.
func RankByConfirmed(records []SummaryRecord) []SummaryRecord {
	ranked := make([]SummaryRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalConfirmed > ranked[j].TotalConfirmed
	})
	return ranked
}

// NewestFirst returns the points ordered by descending date, stable on
// ties. The input slice is not modified.
func NewestFirst(points []SeriesPoint) []SeriesPoint {
	sorted := make([]SeriesPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

// SumTotals adds up confirmed, deaths and recovered across all records.
func SumTotals(records []SummaryRecord) WorldTotals {
	var totals WorldTotals
	for _, record := range records {
		totals.Confirmed += record.TotalConfirmed
		totals.Deaths += record.TotalDeaths
		totals.Recovered += record.TotalRecovered
	}
	return totals
}

// LatestCases returns the cumulative count of the most recent point,
// regardless of input order. The second return is false when the series
// is empty.
func LatestCases(points []SeriesPoint) (int64, bool) {
	if len(points) == 0 {
		return 0, false
	}
	return NewestFirst(points)[0].Cases, true
}

// LastWindow returns the last n points in chronological order, or all
// of them when fewer exist. The input slice is not modified.
func LastWindow(points []SeriesPoint, n int) []SeriesPoint {
	sorted := make([]SeriesPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}
