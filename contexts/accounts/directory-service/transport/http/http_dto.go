package http

type UserResponse struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	FullName          string `json:"full_name,omitempty"`
	FirstName         string `json:"first_name,omitempty"`
	LastName          string `json:"last_name,omitempty"`
	KYCStatus         string `json:"kyc_status"`
	IsAdmin           bool   `json:"is_admin"`
	IsManager         bool   `json:"is_manager"`
	IsSuperiorManager bool   `json:"is_superiormanager"`
	CreatedAt         string `json:"created_at"`
	BankKey           string `json:"bank_key"`
	BankName          string `json:"bank_name"`
}

type PaginationResponse struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

type ListUsersResponse struct {
	Users      []UserResponse     `json:"users"`
	Pagination PaginationResponse `json:"pagination"`
}

type UpdateKYCStatusRequest struct {
	BankKey string `json:"bank"`
	Status  string `json:"status"`
}

type StatusResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
