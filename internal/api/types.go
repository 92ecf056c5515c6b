// Package api contains types for the API requests and responses.
package api

// RowError records one row-level failure. Row numbers are 1-based and refer
// to the physical row in the uploaded file.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportResult summarizes one importer batch.
type ImportResult struct {
	Total      int        `json:"total"`
	Successful int        `json:"successful"`
	Failed     int        `json:"failed"`
	Skipped    int        `json:"skipped"`
	Errors     []RowError `json:"errors,omitempty"`
}

// UpdateResult summarizes one updater batch. NotFound counts rows whose
// business key matched no owned record; it is distinct from Failed.
type UpdateResult struct {
	Total      int        `json:"total"`
	Successful int        `json:"successful"`
	NotFound   int        `json:"notFound"`
	Failed     int        `json:"failed"`
	Skipped    int        `json:"skipped"`
	Errors     []RowError `json:"errors,omitempty"`
}

// ExportResponse carries the presigned download for a generated export file.
type ExportResponse struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
	Count     int    `json:"count"`
}
