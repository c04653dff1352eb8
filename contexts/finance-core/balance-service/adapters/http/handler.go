package http

import (
	"context"

	"crossbank/contexts/finance-core/balance-service/application"
	httptransport "crossbank/contexts/finance-core/balance-service/transport/http"
)

type Handler struct {
	Service application.Service
}

func (h Handler) UpdateBalancesHandler(
	ctx context.Context,
	actorID string,
	req httptransport.UpdateBalancesRequest,
) (httptransport.UpdateBalancesResponse, error) {
	result, err := h.Service.UpdateBalances(ctx, actorID, application.UpdateBalancesInput{
		BankKey:   req.BankKey,
		UserID:    req.UserID,
		Operation: req.Operation,
		Balances:  req.Balances,
	})
	if err != nil {
		return httptransport.UpdateBalancesResponse{}, err
	}
	return httptransport.UpdateBalancesResponse{Success: result.Success}, nil
}

func (h Handler) GetBalancesHandler(
	ctx context.Context,
	bankKey string,
	userID string,
) (httptransport.BalancesResponse, error) {
	balances, err := h.Service.GetBalances(ctx, bankKey, userID)
	if err != nil {
		return httptransport.BalancesResponse{}, err
	}

	resp := httptransport.BalancesResponse{
		UserID:   userID,
		BankKey:  bankKey,
		Balances: make(map[string]string, len(balances)),
	}
	for currency, amount := range balances {
		resp.Balances[currency] = amount.String()
	}
	return resp, nil
}
