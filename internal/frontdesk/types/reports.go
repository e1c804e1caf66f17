package types

type ViolationSummaryResponse struct {
	Counts map[string]int64 `json:"counts"`
	Total  int64            `json:"total"`
}

type ForecastBucket struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

type ExpirationForecastResponse struct {
	WindowHours int              `json:"window_hours"`
	Buckets     []ForecastBucket `json:"buckets"`
}
