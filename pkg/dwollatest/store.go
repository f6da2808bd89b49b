package dwollatest

import (
	"encoding/json"
	"io"
	"maps"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/aussiebroadwan/dwolla/pkg/httpx"
)

// store keeps resources by path ("customers/<id>") and collections as
// ordered lists of member paths.
type store struct {
	mu          sync.Mutex
	items       map[string]map[string]any
	collections map[string][]string
	private     map[string]map[string]any
	idempotency map[string]string
}

func newStore() *store {
	return &store{
		items:       make(map[string]map[string]any),
		collections: make(map[string][]string),
		private:     make(map[string]map[string]any),
		idempotency: make(map[string]string),
	}
}

func (st *store) put(key string, res map[string]any, collections ...string) {
	st.items[key] = res
	for _, c := range collections {
		st.collections[c] = append(st.collections[c], key)
	}
}

func (st *store) get(key string) (map[string]any, bool) {
	res, ok := st.items[key]
	return res, ok
}

func (st *store) remove(key string) {
	delete(st.items, key)
	for c, members := range st.collections {
		st.collections[c] = slicesDelete(members, key)
	}
}

func (st *store) list(collection string) []map[string]any {
	out := make([]map[string]any, 0, len(st.collections[collection]))
	for _, key := range st.collections[collection] {
		if res, ok := st.items[key]; ok {
			out = append(out, res)
		}
	}
	return out
}

func slicesDelete(members []string, key string) []string {
	out := members[:0]
	for _, m := range members {
		if m != key {
			out = append(out, m)
		}
	}
	return out
}

// merge copies body into res, leaving server-owned fields alone.
func merge(res, body map[string]any) {
	for k, v := range body {
		switch k {
		case "id", "created", "_links", "_embedded":
			continue
		}
		res[k] = v
	}
}

func clone(res map[string]any) map[string]any {
	return maps.Clone(res)
}

// ============================================================================
// HAL helpers
// ============================================================================

func (s *Server) href(parts ...string) string {
	return s.URL + "/" + strings.Join(parts, "/")
}

// keyOf maps an href on this server back to a store key.
func (s *Server) keyOf(href string) string {
	return strings.TrimPrefix(href, s.URL+"/")
}

func link(href, resourceType string) map[string]any {
	return map[string]any{
		"href":          href,
		"type":          httpx.HALContentType,
		"resource-type": resourceType,
	}
}

func links(res map[string]any) map[string]any {
	l, _ := res["_links"].(map[string]any)
	if l == nil {
		l = map[string]any{}
		res["_links"] = l
	}
	return l
}

// page renders a collection slice with limit and offset from the query.
func (s *Server) page(r *http.Request, path, embedKey string, items []map[string]any) map[string]any {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 {
		limit = 25
	}
	offset, _ := strconv.Atoi(q.Get("offset"))
	if offset < 0 {
		offset = 0
	}

	total := len(items)
	start := min(offset, total)
	end := min(start+limit, total)

	pageLink := func(off int) map[string]any {
		return link(s.href(path)+"?limit="+strconv.Itoa(limit)+"&offset="+strconv.Itoa(off), embedKey)
	}
	l := map[string]any{
		"self":  pageLink(offset),
		"first": pageLink(0),
	}
	if end < total {
		l["next"] = pageLink(end)
	}
	if total > 0 {
		l["last"] = pageLink((total - 1) / limit * limit)
	}

	return map[string]any{
		"_links":    l,
		"_embedded": map[string]any{embedKey: items[start:end]},
		"total":     total,
	}
}

// ============================================================================
// Request and response helpers
// ============================================================================

func decodeBody(r *http.Request) (map[string]any, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	var body map[string]any
	if len(strings.TrimSpace(string(data))) == 0 {
		return body, nil
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	return body, nil
}

func str(body map[string]any, key string) string {
	v, _ := body[key].(string)
	return v
}

type fieldError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

func validationError(w http.ResponseWriter, errs ...fieldError) {
	httpx.WriteHAL(w, http.StatusBadRequest, map[string]any{
		"code":      "ValidationError",
		"message":   "Validation error(s) present. See embedded errors list for more details.",
		"_embedded": map[string]any{"errors": errs},
	})
}

// required reports missing string fields as Required errors.
func required(body map[string]any, fields ...string) []fieldError {
	var errs []fieldError
	for _, f := range fields {
		if str(body, f) == "" {
			errs = append(errs, fieldError{Code: "Required", Message: f + " is required.", Path: "/" + f})
		}
	}
	return errs
}

func notFound(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusNotFound, "NotFound", "The requested resource was not found.")
}

func badRequest(w http.ResponseWriter, message string) {
	httpx.WriteError(w, http.StatusBadRequest, "BadRequest", message)
}

func invalidState(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, "InvalidResourceState", "Resource cannot be modified.")
}
