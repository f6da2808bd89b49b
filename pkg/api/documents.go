package api

import (
	"context"

	"github.com/aussiebroadwan/dwolla/pkg/dwolla"
	"github.com/aussiebroadwan/dwolla/pkg/models"
)

// DocumentsAPI uploads and reads identity documents.
type DocumentsAPI struct{ base }

func (a *DocumentsAPI) CreateForCustomer(ctx context.Context, customerID string, doc models.CreateDocument, headers dwolla.Headers) (*models.Document, error) {
	return a.create(ctx, buildPath(PathCustomers, customerID, PathDocuments), doc, headers)
}

func (a *DocumentsAPI) CreateForBeneficialOwner(ctx context.Context, ownerID string, doc models.CreateDocument, headers dwolla.Headers) (*models.Document, error) {
	return a.create(ctx, buildPath(PathBeneficialOwners, ownerID, PathDocuments), doc, headers)
}

func (a *DocumentsAPI) create(ctx context.Context, path string, doc models.CreateDocument, headers dwolla.Headers) (*models.Document, error) {
	form := dwolla.NewFormData().
		Set("documentType", string(doc.DocumentType)).
		File("file", doc.Filename, doc.File)
	return bodyOf(dwolla.PostFollowMapped[models.Document](ctx, a.client, path, form, headers))
}

func (a *DocumentsAPI) Get(ctx context.Context, id string) (*models.Document, error) {
	return bodyOf(dwolla.GetMapped[models.Document](ctx, a.client, buildPath(PathDocuments, id), nil, nil))
}

func (a *DocumentsAPI) ListForCustomer(ctx context.Context, customerID string) (*models.Documents, error) {
	path := buildPath(PathCustomers, customerID, PathDocuments)
	return bodyOf(dwolla.GetMapped[models.Documents](ctx, a.client, path, nil, nil))
}

func (a *DocumentsAPI) ListForBeneficialOwner(ctx context.Context, ownerID string) (*models.Documents, error) {
	path := buildPath(PathBeneficialOwners, ownerID, PathDocuments)
	return bodyOf(dwolla.GetMapped[models.Documents](ctx, a.client, path, nil, nil))
}
