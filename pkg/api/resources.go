package api

import (
	"context"

	"github.com/aussiebroadwan/dwolla/pkg/dwolla"
	"github.com/aussiebroadwan/dwolla/pkg/models"
)

// RootAPI reads the entry point of the API.
type RootAPI struct{ base }

// Get fetches the API root, whose links point at the account.
func (a *RootAPI) Get(ctx context.Context) (*models.Root, error) {
	return bodyOf(dwolla.GetMapped[models.Root](ctx, a.client, "/", nil, nil))
}

// AccountsAPI reads the master account.
type AccountsAPI struct{ base }

func (a *AccountsAPI) Get(ctx context.Context, id string) (*models.Account, error) {
	return bodyOf(dwolla.GetMapped[models.Account](ctx, a.client, buildPath(PathAccounts, id), nil, nil))
}

// BusinessClassificationsAPI reads the industry codes used by business customers.
type BusinessClassificationsAPI struct{ base }

func (a *BusinessClassificationsAPI) Get(ctx context.Context, id string) (*models.BusinessClassification, error) {
	return bodyOf(dwolla.GetMapped[models.BusinessClassification](ctx, a.client, buildPath(PathBusinessClassifications, id), nil, nil))
}

func (a *BusinessClassificationsAPI) List(ctx context.Context) (*models.BusinessClassifications, error) {
	return bodyOf(dwolla.GetMapped[models.BusinessClassifications](ctx, a.client, PathBusinessClassifications, nil, nil))
}

// OnDemandAuthorizationsAPI creates authorizations for variable bank transfers.
type OnDemandAuthorizationsAPI struct{ base }

// Create returns the authorization text to display before linking a bank.
func (a *OnDemandAuthorizationsAPI) Create(ctx context.Context) (*models.OnDemandAuthorization, error) {
	return bodyOf(dwolla.PostMapped[models.OnDemandAuthorization](ctx, a.client, PathOnDemandAuthorizations, nil, nil))
}
