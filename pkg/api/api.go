// Package api wraps the Dwolla endpoints with typed methods. Every method is
// a thin call to one of the generic verbs of dwolla.Client.
package api

import (
	"net/url"
	"strings"

	"github.com/aussiebroadwan/dwolla/pkg/dwolla"
)

// Path segments of the Dwolla API.
const (
	PathAccounts                = "accounts"
	PathACHRouting              = "ach-routing"
	PathBalance                 = "balance"
	PathBeneficialOwners        = "beneficial-owners"
	PathBusinessClassifications = "business-classifications"
	PathCardFundingSourcesToken = "card-funding-sources-token"
	PathCustomers               = "customers"
	PathDocuments               = "documents"
	PathFailure                 = "failure"
	PathFees                    = "fees"
	PathFundingSources          = "funding-sources"
	PathFundingSourcesToken     = "funding-sources-token"
	PathMicroDeposits           = "micro-deposits"
	PathOnDemandAuthorizations  = "on-demand-authorizations"
	PathTransfers               = "transfers"
)

// API groups the resource wrappers.
type API struct {
	Root                    *RootAPI
	Accounts                *AccountsAPI
	Customers               *CustomersAPI
	BeneficialOwners        *BeneficialOwnersAPI
	BusinessClassifications *BusinessClassificationsAPI
	Documents               *DocumentsAPI
	FundingSources          *FundingSourcesAPI
	Transfers               *TransfersAPI
	OnDemandAuthorizations  *OnDemandAuthorizationsAPI
}

// New binds the wrappers to c.
func New(c *dwolla.Client) *API {
	b := base{client: c}
	return &API{
		Root:                    &RootAPI{b},
		Accounts:                &AccountsAPI{b},
		Customers:               &CustomersAPI{b},
		BeneficialOwners:        &BeneficialOwnersAPI{b},
		BusinessClassifications: &BusinessClassificationsAPI{b},
		Documents:               &DocumentsAPI{b},
		FundingSources:          &FundingSourcesAPI{b},
		Transfers:               &TransfersAPI{b},
		OnDemandAuthorizations:  &OnDemandAuthorizationsAPI{b},
	}
}

type base struct {
	client *dwolla.Client
}

// buildPath joins segments, escaping each one.
func buildPath(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.Join(escaped, "/")
}

func bodyOf[T any](res *dwolla.Response[T], err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	return &res.Body, nil
}
