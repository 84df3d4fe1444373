package pkg

import "time"

// Status selects which cumulative metric a time-series query returns.
type Status int

const (
	StatusConfirmed Status = iota
	StatusDeaths
	StatusRecovered
)

// String returns the lower-case selector used in endpoint paths.
func (s Status) String() string {
	switch s {
	case StatusConfirmed:
		return "confirmed"
	case StatusDeaths:
		return "deaths"
	case StatusRecovered:
		return "recovered"
	}
	return "unknown"
}

// SummaryRecord is one country's cumulative totals as of the report date.
type SummaryRecord struct {
	Country        string `json:"Country"`
	Slug           string `json:"Slug"`
	TotalConfirmed int64  `json:"TotalConfirmed"`
	TotalDeaths    int64  `json:"TotalDeaths"`
	TotalRecovered int64  `json:"TotalRecovered"`
}

// Summary is the global report: a timestamp plus one record per country.
type Summary struct {
	Date      time.Time       `json:"Date"`
	Countries []SummaryRecord `json:"Countries"`
}

// SeriesPoint is the cumulative case count for one country, one status,
// as of one date.
type SeriesPoint struct {
	Date  time.Time `json:"Date"`
	Cases int64     `json:"Cases"`
}
