package httpserver

import (
	"net/http"
	"strconv"
	"time"

	audithttp "crossbank/contexts/internal-ops/audit-trail-service/transport/http"
)

func (s *Server) handleListAuditActions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitRaw := r.URL.Query().Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeAuditError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	entries, err := s.audit.Service.ListRecent(r.Context(), limit)
	if err != nil {
		writeAuditError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	resp := audithttp.ListAuditEntriesResponse{
		Entries: make([]audithttp.AuditEntryResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, audithttp.AuditEntryResponse{
			AuditID:    entry.AuditID,
			Action:     entry.Action,
			ActorID:    entry.ActorID,
			BankKey:    entry.BankKey,
			TargetID:   entry.TargetID,
			Detail:     entry.Detail,
			OccurredAt: entry.OccurredAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAuditError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, audithttp.ErrorResponse{Code: code, Message: message})
}
