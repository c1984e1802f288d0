package models

// School is a free-text destination; students reference it by name only.
type School struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// CreateSchoolRequest is the support page payload for a new school.
type CreateSchoolRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
}
