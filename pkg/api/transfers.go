package api

import (
	"context"

	"github.com/aussiebroadwan/dwolla/pkg/dwolla"
	"github.com/aussiebroadwan/dwolla/pkg/models"
)

// TransfersAPI moves money between funding sources.
type TransfersAPI struct{ base }

// Initiate creates a transfer and fetches it. Pass an idempotency key in
// headers to make retries safe.
func (a *TransfersAPI) Initiate(ctx context.Context, body models.InitiateTransfer, headers dwolla.Headers) (*models.Transfer, error) {
	return bodyOf(dwolla.PostFollowMapped[models.Transfer](ctx, a.client, PathTransfers, body, headers))
}

func (a *TransfersAPI) Get(ctx context.Context, id string) (*models.Transfer, error) {
	return bodyOf(dwolla.GetMapped[models.Transfer](ctx, a.client, buildPath(PathTransfers, id), nil, nil))
}

// Cancel cancels a pending transfer.
func (a *TransfersAPI) Cancel(ctx context.Context, id string) (*models.Transfer, error) {
	body := map[string]string{"status": string(models.TransferStatusCancelled)}
	return bodyOf(dwolla.PostMapped[models.Transfer](ctx, a.client, buildPath(PathTransfers, id), body, nil))
}

func (a *TransfersAPI) GetFailureReason(ctx context.Context, id string) (*models.FailureReason, error) {
	path := buildPath(PathTransfers, id, PathFailure)
	return bodyOf(dwolla.GetMapped[models.FailureReason](ctx, a.client, path, nil, nil))
}

func (a *TransfersAPI) ListFees(ctx context.Context, id string) (*models.FacilitatorFees, error) {
	path := buildPath(PathTransfers, id, PathFees)
	return bodyOf(dwolla.GetMapped[models.FacilitatorFees](ctx, a.client, path, nil, nil))
}

func (a *TransfersAPI) ListForCustomer(ctx context.Context, customerID string, q models.ListTransfersQuery) (*models.Transfers, error) {
	query := dwolla.Query{}
	set := func(key, value string) {
		if value != "" {
			query[key] = value
		}
	}
	set("search", q.Search)
	set("startAmount", q.StartAmount)
	set("endAmount", q.EndAmount)
	set("startDate", q.StartDate)
	set("endDate", q.EndDate)
	set("status", string(q.Status))
	set("correlationId", q.CorrelationID)
	if q.Limit > 0 {
		query["limit"] = q.Limit
	}
	if q.Offset > 0 {
		query["offset"] = q.Offset
	}

	path := buildPath(PathCustomers, customerID, PathTransfers)
	return bodyOf(dwolla.GetMapped[models.Transfers](ctx, a.client, path, query, nil))
}
