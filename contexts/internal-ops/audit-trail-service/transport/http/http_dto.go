package http

type AuditEntryResponse struct {
	AuditID    string            `json:"audit_id"`
	Action     string            `json:"action"`
	ActorID    string            `json:"actor_id,omitempty"`
	BankKey    string            `json:"bank_key,omitempty"`
	TargetID   string            `json:"target_id,omitempty"`
	Detail     map[string]string `json:"detail,omitempty"`
	OccurredAt string            `json:"occurred_at"`
}

type ListAuditEntriesResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
