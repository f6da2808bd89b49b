package api

import (
	"context"

	"github.com/aussiebroadwan/dwolla/pkg/dwolla"
	"github.com/aussiebroadwan/dwolla/pkg/models"
)

// FundingSourcesAPI manages bank and virtual accounts, balances and
// micro-deposit verification.
type FundingSourcesAPI struct{ base }

func (a *FundingSourcesAPI) CreateBankForCustomer(ctx context.Context, customerID string, body models.CreateBankFundingSource, headers dwolla.Headers) (*models.FundingSource, error) {
	path := buildPath(PathCustomers, customerID, PathFundingSources)
	return bodyOf(dwolla.PostFollowMapped[models.FundingSource](ctx, a.client, path, body, headers))
}

// CreateVirtualForCustomer creates a virtual account number funding source.
func (a *FundingSourcesAPI) CreateVirtualForCustomer(ctx context.Context, customerID string, body models.CreateVirtualFundingSource, headers dwolla.Headers) (*models.FundingSource, error) {
	if body.Type == "" {
		body.Type = string(models.FundingSourceTypeVirtual)
	}
	path := buildPath(PathCustomers, customerID, PathFundingSources)
	return bodyOf(dwolla.PostFollowMapped[models.FundingSource](ctx, a.client, path, body, headers))
}

func (a *FundingSourcesAPI) CreateTokenForCustomer(ctx context.Context, customerID string) (*models.FundingSourceToken, error) {
	path := buildPath(PathCustomers, customerID, PathFundingSourcesToken)
	return bodyOf(dwolla.PostMapped[models.FundingSourceToken](ctx, a.client, path, nil, nil))
}

func (a *FundingSourcesAPI) CreateCardTokenForCustomer(ctx context.Context, customerID string) (*models.FundingSourceToken, error) {
	path := buildPath(PathCustomers, customerID, PathCardFundingSourcesToken)
	return bodyOf(dwolla.PostMapped[models.FundingSourceToken](ctx, a.client, path, nil, nil))
}

func (a *FundingSourcesAPI) Get(ctx context.Context, id string) (*models.FundingSource, error) {
	return bodyOf(dwolla.GetMapped[models.FundingSource](ctx, a.client, buildPath(PathFundingSources, id), nil, nil))
}

func (a *FundingSourcesAPI) GetACHRouting(ctx context.Context, id string) (*models.ACHRouting, error) {
	path := buildPath(PathFundingSources, id, PathACHRouting)
	return bodyOf(dwolla.GetMapped[models.ACHRouting](ctx, a.client, path, nil, nil))
}

func (a *FundingSourcesAPI) GetBalance(ctx context.Context, id string) (*models.FundingSourceBalance, error) {
	path := buildPath(PathFundingSources, id, PathBalance)
	return bodyOf(dwolla.GetMapped[models.FundingSourceBalance](ctx, a.client, path, nil, nil))
}

func (a *FundingSourcesAPI) GetMicroDeposits(ctx context.Context, id string) (*models.MicroDeposits, error) {
	path := buildPath(PathFundingSources, id, PathMicroDeposits)
	return bodyOf(dwolla.GetMapped[models.MicroDeposits](ctx, a.client, path, nil, nil))
}

// InitiateMicroDeposits sends two small deposits to a bank funding source.
func (a *FundingSourcesAPI) InitiateMicroDeposits(ctx context.Context, id string, headers dwolla.Headers) (*models.MicroDeposits, error) {
	path := buildPath(PathFundingSources, id, PathMicroDeposits)
	return bodyOf(dwolla.PostFollowMapped[models.MicroDeposits](ctx, a.client, path, nil, headers))
}

// VerifyMicroDeposits confirms the two amounts and returns the funding source links.
func (a *FundingSourcesAPI) VerifyMicroDeposits(ctx context.Context, id string, body models.VerifyMicroDeposits, headers dwolla.Headers) (*models.Created, error) {
	path := buildPath(PathFundingSources, id, PathMicroDeposits)
	return bodyOf(dwolla.PostMapped[models.Created](ctx, a.client, path, body, headers))
}

// ListForCustomer lists funding sources; removed filters on the removed flag
// when not nil.
func (a *FundingSourcesAPI) ListForCustomer(ctx context.Context, customerID string, removed *bool) (*models.FundingSources, error) {
	path := buildPath(PathCustomers, customerID, PathFundingSources)
	return bodyOf(dwolla.GetMapped[models.FundingSources](ctx, a.client, path, dwolla.Query{"removed": removed}, nil))
}

// Remove soft-deletes a funding source.
func (a *FundingSourcesAPI) Remove(ctx context.Context, id string, headers dwolla.Headers) (*models.FundingSource, error) {
	body := map[string]bool{"removed": true}
	return bodyOf(dwolla.PostMapped[models.FundingSource](ctx, a.client, buildPath(PathFundingSources, id), body, headers))
}

func (a *FundingSourcesAPI) Update(ctx context.Context, id string, body models.UpdateFundingSource, headers dwolla.Headers) (*models.FundingSource, error) {
	return bodyOf(dwolla.PostMapped[models.FundingSource](ctx, a.client, buildPath(PathFundingSources, id), body, headers))
}
