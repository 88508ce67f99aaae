// Package catalog defines the static college table and the recommendation
// filter applied against a predicted admission percentage.
package catalog

// Entry is one institution and the minimum predicted percentage it considers.
type Entry struct {
	Name             string  `json:"name"`
	CutoffPercentage float64 `json:"cutoff_percentage"`
}

// Recommend returns the entries whose cutoff is at or below pct, in catalog
// order. The result is never nil; an empty slice means no college qualifies.
func Recommend(pct float64, entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.CutoffPercentage <= pct {
			out = append(out, e)
		}
	}
	return out
}
