package api

import (
	"context"

	"github.com/aussiebroadwan/dwolla/pkg/dwolla"
	"github.com/aussiebroadwan/dwolla/pkg/models"
)

// BeneficialOwnersAPI manages the owners of verified business customers.
type BeneficialOwnersAPI struct{ base }

func (a *BeneficialOwnersAPI) CreateForCustomer(ctx context.Context, customerID string, body models.CreateBeneficialOwner, headers dwolla.Headers) (*models.BeneficialOwner, error) {
	path := buildPath(PathCustomers, customerID, PathBeneficialOwners)
	return bodyOf(dwolla.PostFollowMapped[models.BeneficialOwner](ctx, a.client, path, body, headers))
}

func (a *BeneficialOwnersAPI) Get(ctx context.Context, id string) (*models.BeneficialOwner, error) {
	return bodyOf(dwolla.GetMapped[models.BeneficialOwner](ctx, a.client, buildPath(PathBeneficialOwners, id), nil, nil))
}

func (a *BeneficialOwnersAPI) ListForCustomer(ctx context.Context, customerID string) (*models.BeneficialOwners, error) {
	path := buildPath(PathCustomers, customerID, PathBeneficialOwners)
	return bodyOf(dwolla.GetMapped[models.BeneficialOwners](ctx, a.client, path, nil, nil))
}

// Remove deletes the owner and returns the removed record.
func (a *BeneficialOwnersAPI) Remove(ctx context.Context, id string) (*models.BeneficialOwner, error) {
	return bodyOf(dwolla.DeleteMapped[models.BeneficialOwner](ctx, a.client, buildPath(PathBeneficialOwners, id), nil, nil))
}

func (a *BeneficialOwnersAPI) Update(ctx context.Context, id string, body models.UpdateBeneficialOwner) (*models.BeneficialOwner, error) {
	return bodyOf(dwolla.PostMapped[models.BeneficialOwner](ctx, a.client, buildPath(PathBeneficialOwners, id), body, nil))
}
