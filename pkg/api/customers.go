package api

import (
	"context"

	"github.com/aussiebroadwan/dwolla/pkg/dwolla"
	"github.com/aussiebroadwan/dwolla/pkg/models"
)

// CustomersAPI creates, lists and updates customers.
type CustomersAPI struct{ base }

// CreateReceiveOnly creates a receive-only customer; body.Type is forced.
func (a *CustomersAPI) CreateReceiveOnly(ctx context.Context, body models.CreateUnverifiedCustomer, headers dwolla.Headers) (*models.Customer, error) {
	body.Type = models.CustomerTypeReceiveOnly
	return a.create(ctx, body, headers)
}

func (a *CustomersAPI) CreateUnverified(ctx context.Context, body models.CreateUnverifiedCustomer, headers dwolla.Headers) (*models.Customer, error) {
	return a.create(ctx, body, headers)
}

func (a *CustomersAPI) CreateVerifiedPersonal(ctx context.Context, body models.CreateVerifiedPersonalCustomer, headers dwolla.Headers) (*models.Customer, error) {
	if body.Type == "" {
		body.Type = models.CustomerTypePersonal
	}
	return a.create(ctx, body, headers)
}

func (a *CustomersAPI) CreateVerifiedBusiness(ctx context.Context, body models.CreateVerifiedBusinessCustomer, headers dwolla.Headers) (*models.Customer, error) {
	if body.Type == "" {
		body.Type = models.CustomerTypeBusiness
	}
	return a.create(ctx, body, headers)
}

// CreateVerifiedSoleProp creates a business customer with the sole
// proprietorship business type.
func (a *CustomersAPI) CreateVerifiedSoleProp(ctx context.Context, body models.CreateVerifiedSolePropCustomer, headers dwolla.Headers) (*models.Customer, error) {
	if body.Type == "" {
		body.Type = models.CustomerTypeBusiness
	}
	body.BusinessType = models.BusinessTypeSoleProprietorship
	return a.create(ctx, body, headers)
}

func (a *CustomersAPI) create(ctx context.Context, body any, headers dwolla.Headers) (*models.Customer, error) {
	return bodyOf(dwolla.PostFollowMapped[models.Customer](ctx, a.client, PathCustomers, body, headers))
}

func (a *CustomersAPI) Get(ctx context.Context, id string) (*models.Customer, error) {
	return bodyOf(dwolla.GetMapped[models.Customer](ctx, a.client, buildPath(PathCustomers, id), nil, nil))
}

// List pages through customers. Zero fields of q are not sent.
func (a *CustomersAPI) List(ctx context.Context, q models.ListCustomersQuery) (*models.Customers, error) {
	query := dwolla.Query{}
	if q.Limit > 0 {
		query["limit"] = q.Limit
	}
	if q.Offset > 0 {
		query["offset"] = q.Offset
	}
	if q.Search != "" {
		query["search"] = q.Search
	}
	if len(q.Status) > 0 {
		query["status"] = q.Status
	}
	return bodyOf(dwolla.GetMapped[models.Customers](ctx, a.client, PathCustomers, query, nil))
}

func (a *CustomersAPI) Update(ctx context.Context, id string, body models.UpdateCustomer, headers dwolla.Headers) (*models.Customer, error) {
	return bodyOf(dwolla.PostMapped[models.Customer](ctx, a.client, buildPath(PathCustomers, id), body, headers))
}
