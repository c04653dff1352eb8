package http

type UpdateBalancesRequest struct {
	BankKey   string            `json:"bank"`
	UserID    string            `json:"user_id"`
	Operation string            `json:"operation"`
	Balances  map[string]string `json:"balances"`
}

type UpdateBalancesResponse struct {
	Success bool `json:"success"`
}

type BalancesResponse struct {
	UserID   string            `json:"user_id"`
	BankKey  string            `json:"bank_key"`
	Balances map[string]string `json:"balances"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
