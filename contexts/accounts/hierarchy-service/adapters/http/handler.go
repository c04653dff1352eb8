package http

import (
	"context"
	"time"

	"crossbank/contexts/accounts/hierarchy-service/application"
	"crossbank/contexts/accounts/hierarchy-service/ports"
	httptransport "crossbank/contexts/accounts/hierarchy-service/transport/http"
)

type Handler struct {
	Service application.Service
}

func (h Handler) AssignRelationshipHandler(
	ctx context.Context,
	actorID string,
	req httptransport.AssignRelationshipRequest,
) (httptransport.RelationshipResponse, error) {
	rel, err := h.Service.AssignRelationship(ctx, actorID, application.AssignInput{
		SuperiorID:    req.SuperiorID,
		SubordinateID: req.SubordinateID,
		Type:          req.Type,
	})
	if err != nil {
		return httptransport.RelationshipResponse{}, err
	}
	return relationshipResponse(ports.JoinedRelationship{Relationship: rel}), nil
}

func (h Handler) UnassignRelationshipHandler(ctx context.Context, actorID string, relationshipID string) (httptransport.StatusResponse, error) {
	if err := h.Service.UnassignRelationship(ctx, actorID, relationshipID); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Success: true}, nil
}

func (h Handler) ListRelationshipsHandler(ctx context.Context) (httptransport.ListRelationshipsResponse, error) {
	rows, err := h.Service.ListRelationships(ctx)
	if err != nil {
		return httptransport.ListRelationshipsResponse{}, err
	}
	resp := httptransport.ListRelationshipsResponse{
		Relationships: make([]httptransport.RelationshipResponse, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Relationships = append(resp.Relationships, relationshipResponse(row))
	}
	return resp, nil
}

func (h Handler) PromoteManagerHandler(
	ctx context.Context,
	actorID string,
	userID string,
	req httptransport.PromoteRequest,
) (httptransport.StatusResponse, error) {
	if err := h.Service.PromoteManager(ctx, actorID, req.BankKey, userID); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Success: true}, nil
}

func (h Handler) PromoteSuperiorManagerHandler(
	ctx context.Context,
	actorID string,
	userID string,
	req httptransport.PromoteRequest,
) (httptransport.StatusResponse, error) {
	if err := h.Service.PromoteSuperiorManager(ctx, actorID, req.BankKey, userID); err != nil {
		return httptransport.StatusResponse{}, err
	}
	return httptransport.StatusResponse{Success: true}, nil
}

func relationshipResponse(row ports.JoinedRelationship) httptransport.RelationshipResponse {
	return httptransport.RelationshipResponse{
		ID:              row.ID,
		SuperiorID:      row.SuperiorID,
		SubordinateID:   row.SubordinateID,
		Type:            row.Type,
		BankKey:         row.BankKey,
		SuperiorName:    row.SuperiorName,
		SubordinateName: row.SubordinateName,
		CreatedAt:       row.CreatedAt.UTC().Format(time.RFC3339),
	}
}
