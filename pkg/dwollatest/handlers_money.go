package dwollatest

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aussiebroadwan/dwolla/pkg/httpx"
)

const sandboxRoutingNumber = "222222226"

// ============================================================================
// Funding sources
// ============================================================================

func (s *Server) handleCreateFundingSource(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		badRequest(w, "Invalid JSON body.")
		return
	}

	virtual := str(body, "type") == "virtual"
	fields := []string{"name", "bankAccountType"}
	if !virtual {
		fields = append(fields, "routingNumber", "accountNumber")
	}
	if errs := required(body, fields...); len(errs) > 0 {
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
	key := "funding-sources/" + id
	res := map[string]any{
		"id":              id,
		"name":            body["name"],
		"bankAccountType": body["bankAccountType"],
		"created":         s.created(),
		"removed":         false,
		"channels":        []string{"ach"},
	}
	l := map[string]any{
		"self":     link(s.href(key), "funding-source"),
		"customer": link(s.href(customer), "customer"),
	}
	routing := map[string]any{
		"routingNumber": body["routingNumber"],
		"accountNumber": body["accountNumber"],
	}

	if virtual {
		res["type"] = "virtual"
		res["status"] = "verified"
		res["bankName"] = "DWOLLATEST VIRTUAL BANK"
		l["balance"] = link(s.href(key, "balance"), "balance")
		l["ach-routing"] = link(s.href(key, "ach-routing"), "ach-routing")
		routing = map[string]any{
			"routingNumber": sandboxRoutingNumber,
			"accountNumber": strconv.FormatUint(rand.Uint64N(9e11)+1e11, 10),
		}
	} else {
		res["type"] = "bank"
		res["status"] = "unverified"
		res["bankName"] = "SANDBOX TEST BANK"
		l["initiate-micro-deposits"] = link(s.href(key, "micro-deposits"), "micro-deposits")
	}
	res["_links"] = l

	s.store.put(key, res, customer+"/funding-sources")
	s.store.private[key] = map[string]any{"customer": customer, "routing": routing}
	httpx.WriteCreated(w, s.href(key))
}

func (s *Server) handleListFundingSources(w http.ResponseWriter, r *http.Request) {
	removed := r.URL.Query().Get("removed")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	customer := "customers/" + chi.URLParam(r, "id")
	if _, ok := s.store.get(customer); !ok {
		notFound(w)
		return
	}

	items := []map[string]any{}
	for _, fs := range s.store.list(customer + "/funding-sources") {
		if removed != "" && strconv.FormatBool(fs["removed"] == true) != removed {
			continue
		}
		items = append(items, fs)
	}
	httpx.WriteHAL(w, http.StatusOK, s.page(r, customer+"/funding-sources", "funding-sources", items))
}

func (s *Server) handleUpdateFundingSource(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		badRequest(w, "Invalid JSON body.")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	key := "funding-sources/" + chi.URLParam(r, "id")
	res, ok := s.store.get(key)
	if !ok {
		notFound(w)
		return
	}
	if res["removed"] == true {
		invalidState(w)
		return
	}

	if body["removed"] == true {
		res["removed"] = true
		delete(links(res), "initiate-micro-deposits")
		httpx.WriteHAL(w, http.StatusOK, res)
		return
	}
	if name := str(body, "name"); name != "" {
		res["name"] = name
	}
	if t := str(body, "bankAccountType"); t != "" {
		res["bankAccountType"] = t
	}
	httpx.WriteHAL(w, http.StatusOK, res)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	key := "funding-sources/" + chi.URLParam(r, "id")
	if _, ok := s.store.get(key); !ok {
		notFound(w)
		return
	}
	balance := map[string]any{"value": "0.00", "currency": "USD"}
	httpx.WriteHAL(w, http.StatusOK, map[string]any{
		"_links":      map[string]any{"self": link(s.href(key, "balance"), "balance")},
		"balance":     balance,
		"total":       balance,
		"lastUpdated": s.created(),
	})
}

func (s *Server) handleACHRouting(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	key := "funding-sources/" + chi.URLParam(r, "id")
	private, ok := s.store.private[key]
	if !ok {
		notFound(w)
		return
	}
	routing := clone(private["routing"].(map[string]any))
	routing["_links"] = map[string]any{"self": link(s.href(key, "ach-routing"), "ach-routing")}
	httpx.WriteHAL(w, http.StatusOK, routing)
}

func (s *Server) handleFundingSourceToken(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	customer := "customers/" + chi.URLParam(r, "id")
	if _, ok := s.store.get(customer); !ok {
		notFound(w)
		return
	}
	httpx.WriteHAL(w, http.StatusOK, map[string]any{
		"_links": map[string]any{"self": link(s.href(customer), "customer")},
		"token":  uuid.NewString(),
	})
}

// ============================================================================
// Micro-deposits
// ============================================================================

// maxMicroDeposit is the largest amount, in cents, accepted when verifying.
const maxMicroDeposit = 10

func (s *Server) handleMicroDeposits(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		badRequest(w, "Invalid JSON body.")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	key := "funding-sources/" + chi.URLParam(r, "id")
	fs, ok := s.store.get(key)
	if !ok {
		notFound(w)
		return
	}
	microKey := key + "/micro-deposits"

	if body["amount1"] == nil && body["amount2"] == nil {
		if str(fs, "type") != "bank" || str(fs, "status") != "unverified" {
			invalidState(w)
			return
		}
		s.store.put(microKey, map[string]any{
			"_links":  map[string]any{"self": link(s.href(microKey), "micro-deposits")},
			"created": s.created(),
			"status":  "pending",
		})
		delete(links(fs), "initiate-micro-deposits")
		links(fs)["verify-micro-deposits"] = link(s.href(microKey), "micro-deposits")
		httpx.WriteCreated(w, s.href(microKey))
		return
	}

	micro, ok := s.store.get(microKey)
	if !ok || str(micro, "status") != "pending" {
		invalidState(w)
		return
	}
	for _, field := range []string{"amount1", "amount2"} {
		cents, ok := centsOf(body[field])
		if !ok || cents <= 0 || cents > maxMicroDeposit {
			validationError(w, fieldError{Code: "InvalidAmount", Message: "Wrong amount(s).", Path: "/" + field + "/value"})
			return
		}
	}

	micro["status"] = "processed"
	fs["status"] = "verified"
	delete(links(fs), "verify-micro-deposits")
	httpx.WriteHAL(w, http.StatusOK, map[string]any{
		"_links": map[string]any{"self": link(s.href(microKey), "micro-deposits")},
	})
}

func (s *Server) handleGetMicroDeposits(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	res, ok := s.store.get("funding-sources/" + chi.URLParam(r, "id") + "/micro-deposits")
	if !ok {
		notFound(w)
		return
	}
	httpx.WriteHAL(w, http.StatusOK, res)
}

// centsOf reads {"value": "0.03", "currency": "USD"} as 3.
func centsOf(v any) (int64, bool) {
	amount, ok := v.(map[string]any)
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseFloat(fmt.Sprint(amount["value"]), 64)
	if err != nil {
		return 0, false
	}
	return int64(value*100 + 0.5), true
}

// ============================================================================
// Transfers
// ============================================================================

func (s *Server) handleInitiateTransfer(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		badRequest(w, "Invalid JSON body.")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	idempotencyKey := r.Header.Get("Idempotency-Key")
	if location, ok := s.store.idempotency[idempotencyKey]; ok && idempotencyKey != "" {
		httpx.WriteCreated(w, location)
		return
	}

	bodyLinks, _ := body["_links"].(map[string]any)
	source, sourceOK := s.linkedFundingSource(bodyLinks, "source")
	destination, destinationOK := s.linkedFundingSource(bodyLinks, "destination")
	var errs []fieldError
	if !sourceOK {
		errs = append(errs, fieldError{Code: "Invalid", Message: "Invalid funding source.", Path: "/_links/source/href"})
	}
	if !destinationOK {
		errs = append(errs, fieldError{Code: "Invalid", Message: "Invalid funding source.", Path: "/_links/destination/href"})
	}
	if cents, ok := centsOf(body["amount"]); !ok || cents <= 0 {
		errs = append(errs, fieldError{Code: "Invalid", Message: "Invalid amount.", Path: "/amount/value"})
	}
	if len(errs) > 0 {
		validationError(w, errs...)
		return
	}

	id := uuid.NewString()
	key := "transfers/" + id
	res := map[string]any{
		"id":       id,
		"status":   "pending",
		"amount":   body["amount"],
		"created":  s.created(),
		"clearing": map[string]any{"source": "standard"},
		"_links": map[string]any{
			"self":                       link(s.href(key), "transfer"),
			"source":                     link(s.href(source), "funding-source"),
			"destination":                link(s.href(destination), "funding-source"),
			"source-funding-source":      link(s.href(source), "funding-source"),
			"destination-funding-source": link(s.href(destination), "funding-source"),
			"cancel":                     link(s.href(key), "transfer"),
			"fees":                       link(s.href(key, "fees"), "fee"),
		},
	}
	for _, field := range []string{"metadata", "correlationId", "achDetails", "rtpDetails", "processingChannel"} {
		if v, ok := body[field]; ok {
			res[field] = v
		}
	}

	owners := []string{s.ownerOf(source) + "/transfers"}
	if o := s.ownerOf(destination) + "/transfers"; o != owners[0] {
		owners = append(owners, o)
	}
	s.store.put(key, res, owners...)
	if idempotencyKey != "" {
		s.store.idempotency[idempotencyKey] = s.href(key)
	}
	httpx.WriteCreated(w, s.href(key))
}

// linkedFundingSource resolves _links[name].href to a usable funding source key.
func (s *Server) linkedFundingSource(bodyLinks map[string]any, name string) (string, bool) {
	l, _ := bodyLinks[name].(map[string]any)
	key := s.keyOf(str(l, "href"))
	fs, ok := s.store.get(key)
	if !ok || fs["removed"] == true || str(fs, "type") == "" {
		return "", false
	}
	return key, true
}

func (s *Server) ownerOf(fundingSource string) string {
	customer, _ := s.store.private[fundingSource]["customer"].(string)
	return customer
}

func (s *Server) handleCancelTransfer(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		badRequest(w, "Invalid JSON body.")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	res, ok := s.store.get("transfers/" + chi.URLParam(r, "id"))
	if !ok {
		notFound(w)
		return
	}
	if str(body, "status") != "cancelled" || str(res, "status") != "pending" {
		invalidState(w)
		return
	}
	res["status"] = "cancelled"
	delete(links(res), "cancel")
	httpx.WriteHAL(w, http.StatusOK, res)
}

func (s *Server) handleTransferFailure(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	key := "transfers/" + chi.URLParam(r, "id")
	failure, ok := s.store.get(key + "/failure")
	if !ok {
		notFound(w)
		return
	}
	httpx.WriteHAL(w, http.StatusOK, failure)
}

func (s *Server) handleTransferFees(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	key := "transfers/" + chi.URLParam(r, "id")
	if _, ok := s.store.get(key); !ok {
		notFound(w)
		return
	}
	httpx.WriteHAL(w, http.StatusOK, map[string]any{
		"_links":       map[string]any{"self": link(s.href(key, "fees"), "fee")},
		"transactions": []any{},
		"total":        0,
	})
}

func (s *Server) handleListTransfers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := q.Get("status")
	correlationID := q.Get("correlationId")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	customer := "customers/" + chi.URLParam(r, "id")
	if _, ok := s.store.get(customer); !ok {
		notFound(w)
		return
	}

	items := []map[string]any{}
	for _, t := range s.store.list(customer + "/transfers") {
		if status != "" && str(t, "status") != status {
			continue
		}
		if correlationID != "" && str(t, "correlationId") != correlationID {
			continue
		}
		items = append(items, t)
	}
	httpx.WriteHAL(w, http.StatusOK, s.page(r, customer+"/transfers", "transfers", items))
}

// FailTransfer marks a pending transfer failed with an ACH return code.
func (s *Server) FailTransfer(id, code, description string) bool {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	key := "transfers/" + id
	res, ok := s.store.get(key)
	if !ok || str(res, "status") != "pending" {
		return false
	}
	res["status"] = "failed"
	l := links(res)
	delete(l, "cancel")
	l["failure"] = link(s.href(key, "failure"), "failure")

	s.store.put(key+"/failure", map[string]any{
		"_links":      map[string]any{"self": link(s.href(key, "failure"), "failure")},
		"code":        code,
		"description": description,
		"explanation": "The transfer was returned by the receiving bank.",
	})
	return true
}
