package types

type CheckInRequest struct {
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Type      string `json:"type"`
	GuestPass string `json:"guest_pass,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type VisitorResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Unit       string `json:"unit"`
	Type       string `json:"type"`
	GuestPass  string `json:"guest_pass,omitempty"`
	Notes      string `json:"notes,omitempty"`
	CheckInAt  string `json:"check_in_at"`
	CheckOutAt string `json:"check_out_at,omitempty"`
	Status     string `json:"status"` // "on_site" or "checked_out"
}

type VisitorListResponse struct {
	Visitors []VisitorResponse `json:"visitors"`
}
