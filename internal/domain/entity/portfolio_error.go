package entity

// RefreshResult reports the outcome of refreshing one account during a
// portfolio-wide refresh. Err is nil on success.
type RefreshResult struct {
	AccountID string
	Err       error
}

// Failed returns the results that carry an error.
func Failed(results []RefreshResult) []RefreshResult {
	var out []RefreshResult
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
