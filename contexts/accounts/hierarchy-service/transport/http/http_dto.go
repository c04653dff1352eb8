package http

type AssignRelationshipRequest struct {
	SuperiorID    string `json:"superior_id"`
	SubordinateID string `json:"subordinate_id"`
	Type          string `json:"relationship_type"`
}

type RelationshipResponse struct {
	ID              string `json:"id"`
	SuperiorID      string `json:"superior_id"`
	SubordinateID   string `json:"subordinate_id"`
	Type            string `json:"relationship_type"`
	BankKey         string `json:"bank_key"`
	SuperiorName    string `json:"superior_name,omitempty"`
	SubordinateName string `json:"subordinate_name,omitempty"`
	CreatedAt       string `json:"created_at"`
}

type ListRelationshipsResponse struct {
	Relationships []RelationshipResponse `json:"relationships"`
}

type PromoteRequest struct {
	BankKey string `json:"bank"`
}

type StatusResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
