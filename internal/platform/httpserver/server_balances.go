package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	balanceerrors "crossbank/contexts/finance-core/balance-service/domain/errors"
	balancehttp "crossbank/contexts/finance-core/balance-service/transport/http"
)

func (s *Server) handleUpdateBalances(w http.ResponseWriter, r *http.Request) {
	actorID := strings.TrimSpace(r.Header.Get("X-Actor-Id"))
	if actorID == "" {
		writeBalanceError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return
	}

	var req balancehttp.UpdateBalancesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBalanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.balances.Handler.UpdateBalancesHandler(r.Context(), actorID, req)
	if err != nil {
		writeBalanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	bankKey := r.URL.Query().Get("bank")

	resp, err := s.balances.Handler.GetBalancesHandler(r.Context(), bankKey, userID)
	if err != nil {
		writeBalanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeBalanceDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, balanceerrors.ErrInvalidRequest),
		errors.Is(err, balanceerrors.ErrInvalidOperation):
		writeBalanceError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, balanceerrors.ErrInvalidCurrency):
		writeBalanceError(w, http.StatusUnprocessableEntity, "invalid_currency", err.Error())
	case errors.Is(err, balanceerrors.ErrInvalidAmount):
		writeBalanceError(w, http.StatusUnprocessableEntity, "invalid_amount", err.Error())
	case errors.Is(err, balanceerrors.ErrBankNotFound):
		writeBalanceError(w, http.StatusNotFound, "bank_not_found", err.Error())
	case errors.Is(err, balanceerrors.ErrUserNotFound):
		writeBalanceError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, balanceerrors.ErrBankUnavailable):
		writeBalanceError(w, http.StatusFailedDependency, "bank_unavailable", err.Error())
	default:
		writeBalanceError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeBalanceError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, balancehttp.ErrorResponse{Code: code, Message: message})
}
