package http

import (
	"context"
	"time"

	"crossbank/contexts/accounts/directory-service/application"
	httptransport "crossbank/contexts/accounts/directory-service/transport/http"
)

type Handler struct {
	Service application.Service
}

func (h Handler) ListUsersHandler(
	ctx context.Context,
	actor application.Actor,
	q application.ListUsersQuery,
) (httptransport.ListUsersResponse, error) {
	envelope, err := h.Service.ListUsers(ctx, actor, q)
	if err != nil {
		return httptransport.ListUsersResponse{}, err
	}

	resp := httptransport.ListUsersResponse{
		Users: make([]httptransport.UserResponse, 0, len(envelope.Rows)),
		Pagination: httptransport.PaginationResponse{
			Page:       envelope.Pagination.Page,
			PerPage:    envelope.Pagination.PerPage,
			TotalCount: envelope.Pagination.TotalCount,
			TotalPages: envelope.Pagination.TotalPages,
		},
	}
	for _, row := range envelope.Rows {
		resp.Users = append(resp.Users, httptransport.UserResponse{
			ID:                row.ID,
			Email:             row.Email,
			FullName:          row.FullName,
			FirstName:         row.FirstName,
			LastName:          row.LastName,
			KYCStatus:         row.KYCStatus,
			IsAdmin:           row.IsAdmin,
			IsManager:         row.IsManager,
			IsSuperiorManager: row.IsSuperiorManager,
			CreatedAt:         row.CreatedAt.UTC().Format(time.RFC3339),
			BankKey:           row.BankKey,
			BankName:          row.BankName,
		})
	}
	return resp, nil
}

func (h Handler) UpdateKYCStatusHandler(
	ctx context.Context,
	actor application.Actor,
	userID string,
	req httptransport.UpdateKYCStatusRequest,
) (httptransport.StatusResponse, error) {
	if err := h.Service.UpdateKYCStatus(ctx, actor, req.BankKey, userID, req.Status); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Success: true}, nil
}

func (h Handler) DeleteUserHandler(
	ctx context.Context,
	actor application.Actor,
	bankKey string,
	userID string,
) (httptransport.StatusResponse, error) {
	if err := h.Service.DeleteUser(ctx, actor, bankKey, userID); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Success: true}, nil
}
