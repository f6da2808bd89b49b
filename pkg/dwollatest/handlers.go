package dwollatest

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aussiebroadwan/dwolla/pkg/httpx"
)

func (s *Server) created() string {
	return s.now().UTC().Format(time.RFC3339)
}

// seed adds the master account and the business classifications.
func (s *Server) seed() {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	account := "accounts/" + s.accountID
	s.store.put(account, map[string]any{
		"id":      s.accountID,
		"name":    "dwollatest",
		"type":    "Commercial",
		"created": s.created(),
		"_links": map[string]any{
			"self":            link(s.href(account), "account"),
			"customers":       link(s.href("customers"), "customer"),
			"funding-sources": link(s.href(account, "funding-sources"), "funding-source"),
			"transfers":       link(s.href(account, "transfers"), "transfer"),
		},
	})

	classifications := []struct {
		name       string
		industries []string
	}{
		{"Food retail and service", []string{"Grocery stores and supermarkets", "Restaurants"}},
		{"Manufacturing", []string{"Industrial machinery"}},
	}
	for _, c := range classifications {
		id := uuid.NewString()
		key := "business-classifications/" + id
		industries := make([]map[string]any, 0, len(c.industries))
		for _, name := range c.industries {
			industries = append(industries, map[string]any{"id": uuid.NewString(), "name": name})
		}
		s.store.put(key, map[string]any{
			"id":        id,
			"name":      c.name,
			"_links":    map[string]any{"self": link(s.href(key), "business-classification")},
			"_embedded": map[string]any{"industry-classifications": industries},
		}, "business-classifications")
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	httpx.WriteHAL(w, http.StatusOK, map[string]any{
		"_links": map[string]any{
			"account":   link(s.href("accounts", s.accountID), "account"),
			"customers": link(s.href("customers"), "customer"),
		},
	})
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	s.handleGetResource("accounts")(w, r)
}

// handleGetResource serves collection/{id} straight from the store.
func (s *Server) handleGetResource(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.store.mu.Lock()
		defer s.store.mu.Unlock()

		res, ok := s.store.get(collection + "/" + chi.URLParam(r, "id"))
		if !ok {
			notFound(w)
			return
		}
		httpx.WriteHAL(w, http.StatusOK, res)
	}
}

func (s *Server) handleListBusinessClassifications(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	items := s.store.list("business-classifications")
	httpx.WriteHAL(w, http.StatusOK, s.page(r, "business-classifications", "business-classifications", items))
}

func (s *Server) handleOnDemandAuthorization(w http.ResponseWriter, r *http.Request) {
	key := "on-demand-authorizations/" + uuid.NewString()
	httpx.WriteHAL(w, http.StatusOK, map[string]any{
		"_links":     map[string]any{"self": link(s.href(key), "on-demand-authorization")},
		"bodyText":   "I agree that future payments to dwollatest will be processed by the Dwolla payment system from the selected account above.",
		"buttonText": "Agree & Continue",
	})
}

// ============================================================================
// Customers
// ============================================================================

var verifiedTypes = []string{"personal", "business"}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		badRequest(w, "Invalid JSON body.")
		return
	}
	if errs := required(body, "firstName", "lastName", "email"); len(errs) > 0 {
		validationError(w, errs...)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	email := strings.ToLower(str(body, "email"))
	for _, c := range s.store.list("customers") {
		if strings.ToLower(str(c, "email")) == email {
			validationError(w, fieldError{Code: "Duplicate", Message: "A customer with the specified email already exists.", Path: "/email"})
			return
		}
	}

	ctype := str(body, "type")
	if ctype == "" {
		ctype = "unverified"
	}
	status := "unverified"
	if slices.Contains(verifiedTypes, ctype) {
		status = "verified"
	}

	id := uuid.NewString()
	key := "customers/" + id
	res := clone(body)
	delete(res, "ssn")
	delete(res, "dateOfBirth")
	if controller, ok := res["controller"].(map[string]any); ok {
		controller = clone(controller)
		delete(controller, "ssn")
		delete(controller, "dateOfBirth")
		delete(controller, "passport")
		res["controller"] = controller
	}
	res["id"] = id
	res["type"] = ctype
	res["status"] = status
	res["created"] = s.created()

	l := map[string]any{
		"self":            link(s.href(key), "customer"),
		"funding-sources": link(s.href(key, "funding-sources"), "funding-source"),
		"transfers":       link(s.href(key, "transfers"), "transfer"),
	}
	if status == "verified" {
		l["documents"] = link(s.href(key, "documents"), "document")
	}
	if ctype == "business" {
		l["beneficial-owners"] = link(s.href(key, "beneficial-owners"), "beneficial-owner")
	}
	res["_links"] = l

	s.store.put(key, res, "customers")
	httpx.WriteCreated(w, s.href(key))
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	s.handleGetResource("customers")(w, r)
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := strings.ToLower(q.Get("search"))
	statuses := q["status"]

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	var items []map[string]any
	for _, c := range s.store.list("customers") {
		if len(statuses) > 0 && !slices.Contains(statuses, str(c, "status")) {
			continue
		}
		if search != "" && !matches(c, search, "firstName", "lastName", "email", "businessName") {
			continue
		}
		items = append(items, c)
	}
	if items == nil {
		items = []map[string]any{}
	}
	httpx.WriteHAL(w, http.StatusOK, s.page(r, "customers", "customers", items))
}

func matches(res map[string]any, search string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(str(res, f)), search) {
			return true
		}
	}
	return false
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		badRequest(w, "Invalid JSON body.")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	res, ok := s.store.get("customers/" + chi.URLParam(r, "id"))
	if !ok {
		notFound(w)
		return
	}
	if str(res, "status") == "deactivated" && str(body, "status") == "" {
		invalidState(w)
		return
	}
	merge(res, body)
	httpx.WriteHAL(w, http.StatusOK, res)
}

// ============================================================================
// Beneficial owners
// ============================================================================

func (s *Server) handleCreateBeneficialOwner(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		badRequest(w, "Invalid JSON body.")
		return
	}
	if errs := required(body, "firstName", "lastName"); len(errs) > 0 {
		validationError(w, errs...)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	customer := "customers/" + chi.URLParam(r, "id")
	if _, ok := s.store.get(customer); !ok {
		notFound(w)
		return
	}

	id := uuid.NewString()
	key := "beneficial-owners/" + id
	res := map[string]any{
		"id":                 id,
		"firstName":          body["firstName"],
		"lastName":           body["lastName"],
		"address":            body["address"],
		"verificationStatus": "verified",
		"created":            s.created(),
		"_links": map[string]any{
			"self":      link(s.href(key), "beneficial-owner"),
			"documents": link(s.href(key, "documents"), "document"),
		},
	}
	s.store.put(key, res, customer+"/beneficial-owners")
	httpx.WriteCreated(w, s.href(key))
}

func (s *Server) handleListBeneficialOwners(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	customer := "customers/" + chi.URLParam(r, "id")
	if _, ok := s.store.get(customer); !ok {
		notFound(w)
		return
	}
	path := customer + "/beneficial-owners"
	httpx.WriteHAL(w, http.StatusOK, s.page(r, path, "beneficial-owners", s.store.list(path)))
}

func (s *Server) handleUpdateBeneficialOwner(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		badRequest(w, "Invalid JSON body.")
		return
	}
	delete(body, "ssn")
	delete(body, "dateOfBirth")
	delete(body, "passport")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	res, ok := s.store.get("beneficial-owners/" + chi.URLParam(r, "id"))
	if !ok {
		notFound(w)
		return
	}
	merge(res, body)
	httpx.WriteHAL(w, http.StatusOK, res)
}

func (s *Server) handleRemoveBeneficialOwner(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	key := "beneficial-owners/" + chi.URLParam(r, "id")
	res, ok := s.store.get(key)
	if !ok {
		notFound(w)
		return
	}
	s.store.remove(key)
	httpx.WriteHAL(w, http.StatusOK, res)
}

// ============================================================================
// Documents
// ============================================================================

var documentTypes = []string{"passport", "license", "idCard", "other"}

const maxDocumentBytes = 10 << 20

func (s *Server) handleCreateDocument(parent string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxDocumentBytes); err != nil {
			badRequest(w, "Expected a multipart form body.")
			return
		}
		docType := r.FormValue("documentType")
		if !slices.Contains(documentTypes, docType) {
			validationError(w, fieldError{Code: "Invalid", Message: "Invalid document type.", Path: "/documentType"})
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			validationError(w, fieldError{Code: "Required", Message: "File is required.", Path: "/file"})
			return
		}
		_ = file.Close()

		s.store.mu.Lock()
		defer s.store.mu.Unlock()

		owner := parent + "/" + chi.URLParam(r, "id")
		if _, ok := s.store.get(owner); !ok {
			notFound(w)
			return
		}

		id := uuid.NewString()
		key := "documents/" + id
		s.store.put(key, map[string]any{
			"id":                         id,
			"type":                       docType,
			"status":                     "pending",
			"documentVerificationStatus": "pending",
			"created":                    s.created(),
			"_links":                     map[string]any{"self": link(s.href(key), "document")},
		}, owner+"/documents")
		httpx.WriteCreated(w, s.href(key))
	}
}

func (s *Server) handleListDocuments(parent string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.store.mu.Lock()
		defer s.store.mu.Unlock()

		owner := parent + "/" + chi.URLParam(r, "id")
		if _, ok := s.store.get(owner); !ok {
			notFound(w)
			return
		}
		path := owner + "/documents"
		httpx.WriteHAL(w, http.StatusOK, s.page(r, path, "documents", s.store.list(path)))
	}
}
