package types

type RecordViolationRequest struct {
	Plate  string `json:"plate"`
	Reason string `json:"reason"`
	Action string `json:"action"`
	Notes  string `json:"notes,omitempty"`
}

type ViolationResponse struct {
	ID         int64  `json:"id"`
	Plate      string `json:"plate"`
	Reason     string `json:"reason"`
	Action     string `json:"action"`
	Notes      string `json:"notes,omitempty"`
	RecordedAt string `json:"recorded_at"`
}

type ViolationHistoryResponse struct {
	Plate      string              `json:"plate"`
	Violations []ViolationResponse `json:"violations"`
}
