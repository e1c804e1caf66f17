package types

// SaveResidentRequest is the body of PUT /v1/residents/{unit}; the unit
// comes from the path.
type SaveResidentRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	PrimaryPlate string `json:"primary_plate"`
}

type ResidentResponse struct {
	Unit         string `json:"unit"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	PrimaryPlate string `json:"primary_plate"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type ResidentListResponse struct {
	Residents []ResidentResponse `json:"residents"`
}
