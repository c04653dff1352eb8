package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	hierarchyerrors "crossbank/contexts/accounts/hierarchy-service/domain/errors"
	hierarchyhttp "crossbank/contexts/accounts/hierarchy-service/transport/http"
)

func (s *Server) handleListRelationships(w http.ResponseWriter, r *http.Request) {
	resp, err := s.hierarchy.Handler.ListRelationshipsHandler(r.Context())
	if err != nil {
		writeHierarchyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAssignRelationship(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireHierarchyActor(w, r)
	if !ok {
		return
	}

	var req hierarchyhttp.AssignRelationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeHierarchyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.hierarchy.Handler.AssignRelationshipHandler(r.Context(), actorID, req)
	if err != nil {
		writeHierarchyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUnassignRelationship(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireHierarchyActor(w, r)
	if !ok {
		return
	}

	relationshipID := r.PathValue("relationship_id")
	resp, err := s.hierarchy.Handler.UnassignRelationshipHandler(r.Context(), actorID, relationshipID)
	if err != nil {
		writeHierarchyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePromoteManager(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireHierarchyActor(w, r)
	if !ok {
		return
	}

	var req hierarchyhttp.PromoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeHierarchyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	userID := r.PathValue("user_id")
	resp, err := s.hierarchy.Handler.PromoteManagerHandler(r.Context(), actorID, userID, req)
	if err != nil {
		writeHierarchyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePromoteSuperiorManager(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireHierarchyActor(w, r)
	if !ok {
		return
	}

	var req hierarchyhttp.PromoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeHierarchyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	userID := r.PathValue("user_id")
	resp, err := s.hierarchy.Handler.PromoteSuperiorManagerHandler(r.Context(), actorID, userID, req)
	if err != nil {
		writeHierarchyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func requireHierarchyActor(w http.ResponseWriter, r *http.Request) (string, bool) {
	actorID := strings.TrimSpace(r.Header.Get("X-Actor-Id"))
	if actorID == "" {
		writeHierarchyError(w, http.StatusUnauthorized, "missing_actor", "X-Actor-Id header is required")
		return "", false
	}
	return actorID, true
}

func writeHierarchyDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, hierarchyerrors.ErrInvalidRequest),
		errors.Is(err, hierarchyerrors.ErrInvalidRelationType):
		writeHierarchyError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, hierarchyerrors.ErrCrossBankRelationship):
		writeHierarchyError(w, http.StatusUnprocessableEntity, "cross_bank_relationship", err.Error())
	case errors.Is(err, hierarchyerrors.ErrSuperiorRoleMismatch),
		errors.Is(err, hierarchyerrors.ErrSubordinateRoleMismatch):
		writeHierarchyError(w, http.StatusUnprocessableEntity, "role_mismatch", err.Error())
	case errors.Is(err, hierarchyerrors.ErrRelationshipExists):
		writeHierarchyError(w, http.StatusConflict, "relationship_exists", err.Error())
	case errors.Is(err, hierarchyerrors.ErrRelationshipNotFound):
		writeHierarchyError(w, http.StatusNotFound, "relationship_not_found", err.Error())
	case errors.Is(err, hierarchyerrors.ErrUserNotFound):
		writeHierarchyError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, hierarchyerrors.ErrBankUnavailable):
		writeHierarchyError(w, http.StatusFailedDependency, "bank_unavailable", err.Error())
	default:
		writeHierarchyError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeHierarchyError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, hierarchyhttp.ErrorResponse{Code: code, Message: message})
}
