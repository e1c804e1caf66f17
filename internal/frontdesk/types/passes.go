package types

type IssuePassRequest struct {
	Plate    string  `json:"plate"`
	Unit     string  `json:"unit"`
	Duration float64 `json:"duration"` // hours
}

type PassResponse struct {
	ID        string `json:"id"`
	Plate     string `json:"plate"`
	Unit      string `json:"unit"`
	IssuedAt  string `json:"issued_at"`
	ExpiresAt string `json:"expires_at"`
	Status    string `json:"status"` // "valid" or "expired"
}

type PassListResponse struct {
	Passes     []PassResponse `json:"passes"`
	ServerTime string         `json:"server_time"`
}

// LookupResponse answers a plate lookup.  Pass is omitted when the plate
// has no pass on file.
type LookupResponse struct {
	Plate string        `json:"plate"`
	Found bool          `json:"found"`
	Pass  *PassResponse `json:"pass,omitempty"`
}

type RevokeResponse struct {
	Revoked int64 `json:"revoked"`
}

type SweepResponse struct {
	Removed    int64  `json:"removed"`
	ServerTime string `json:"server_time"`
}
