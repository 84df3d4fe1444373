package pkg

// GroupBySlug indexes summary records by country slug.
func GroupBySlug(records []SummaryRecord) map[string]SummaryRecord {
	result := make(map[string]SummaryRecord, len(records))
	for _, record := range records {
		result[record.Slug] = record
	}
	return result
}

// FilterBySlug keeps only the records whose slug appears in the allow
// list. An empty allow list keeps everything.
func FilterBySlug(records []SummaryRecord, allow []string) []SummaryRecord {
	if len(allow) == 0 {
		return records
	}
	filtered := make([]SummaryRecord, 0, len(allow))
	for _, record := range records {
		if IsStringInList(allow, record.Slug) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

func IsStringInList(items []string, val string) bool {
	for _, item := range items {
		if item == val {
			return true
		}
	}
	return false
}
