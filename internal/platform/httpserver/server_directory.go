package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	directoryapp "crossbank/contexts/accounts/directory-service/application"
	directoryerrors "crossbank/contexts/accounts/directory-service/domain/errors"
	directoryhttp "crossbank/contexts/accounts/directory-service/transport/http"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := directoryapp.ListUsersQuery{
		Page:       1,
		PerPage:    s.defaultPerPage,
		BankFilter: query.Get("bank"),
		KYCFilter:  query.Get("kyc_status"),
		Search:     query.Get("search"),
	}

	if pageRaw := query.Get("page"); pageRaw != "" {
		page, err := strconv.Atoi(pageRaw)
		if err != nil {
			writeDirectoryError(w, http.StatusBadRequest, "invalid_page", "page must be an integer")
			return
		}
		req.Page = page
	}
	if perPageRaw := query.Get("perPage"); perPageRaw != "" {
		perPage, err := strconv.Atoi(perPageRaw)
		if err != nil {
			writeDirectoryError(w, http.StatusBadRequest, "invalid_per_page", "perPage must be an integer")
			return
		}
		req.PerPage = perPage
	}

	resp, err := s.directory.Handler.ListUsersHandler(r.Context(), resolveActor(r), req)
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateKYCStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireDirectoryActor(w, r)
	if !ok {
		return
	}

	var req directoryhttp.UpdateKYCStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDirectoryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	userID := r.PathValue("user_id")
	resp, err := s.directory.Handler.UpdateKYCStatusHandler(r.Context(), actor, userID, req)
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireDirectoryActor(w, r)
	if !ok {
		return
	}

	userID := r.PathValue("user_id")
	bankKey := r.URL.Query().Get("bank")
	resp, err := s.directory.Handler.DeleteUserHandler(r.Context(), actor, bankKey, userID)
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func requireDirectoryActor(w http.ResponseWriter, r *http.Request) (directoryapp.Actor, bool) {
	actor := resolveActor(r)
	if strings.TrimSpace(actor.ID) == "" {
		writeDirectoryError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return directoryapp.Actor{}, false
	}
	return actor, true
}

func writeDirectoryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, directoryerrors.ErrInvalidListQuery):
		writeDirectoryError(w, http.StatusBadRequest, "invalid_list_query", err.Error())
	case errors.Is(err, directoryerrors.ErrInvalidKYCStatus):
		writeDirectoryError(w, http.StatusUnprocessableEntity, "invalid_kyc_status", err.Error())
	case errors.Is(err, directoryerrors.ErrBankNotFound):
		writeDirectoryError(w, http.StatusNotFound, "bank_not_found", err.Error())
	case errors.Is(err, directoryerrors.ErrUserNotFound):
		writeDirectoryError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, directoryerrors.ErrBankUnavailable):
		writeDirectoryError(w, http.StatusFailedDependency, "bank_unavailable", err.Error())
	default:
		writeDirectoryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeDirectoryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, directoryhttp.ErrorResponse{Code: code, Message: message})
}
