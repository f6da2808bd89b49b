package dwolla_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/aussiebroadwan/dwolla/pkg/dwolla"
	"github.com/aussiebroadwan/dwolla/pkg/hal"
	"github.com/aussiebroadwan/dwolla/pkg/models"
	"github.com/stretchr/testify/require"
)

type widget struct {
	hal.Resource
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}

func (widget) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"id":     hal.Copy(),
		"status": hal.Enum("active", "removed"),
	})
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	writeHAL(w, http.StatusOK, map[string]any{"id": "1"})
}

func TestURLResolution(t *testing.T) {
	t.Parallel()

	srv := newAPIServer(t, okHandler)
	c := newTestClient(t, srv)

	linked := widget{Resource: hal.Resource{Links: hal.Links{
		"self": {Href: srv.URL + "/widgets/abc"},
	}}}
	raw := map[string]any{"_links": map[string]any{"self": map[string]any{"href": srv.URL + "/widgets/raw"}}}

	cases := []struct {
		name      string
		path      any
		query     dwolla.Query
		wantPath  string
		wantQuery string
	}{
		{name: "relative path", path: "customers", wantPath: "/customers"},
		{name: "leading slash", path: "/customers", wantPath: "/customers"},
		{name: "api url prefix", path: srv.URL + "/customers/1", wantPath: "/customers/1"},
		{name: "foreign host is rebased", path: "https://api.dwolla.com/accounts/9", wantPath: "/accounts/9"},
		{name: "linked resource", path: linked, wantPath: "/widgets/abc"},
		{name: "pointer to linked resource", path: &linked, wantPath: "/widgets/abc"},
		{name: "raw hal body", path: raw, wantPath: "/widgets/raw"},
		{
			name:      "query appended",
			path:      "customers",
			query:     dwolla.Query{"limit": 10, "search": "jane", "skip": nil},
			wantPath:  "/customers",
			wantQuery: "limit=10&search=jane",
		},
		{
			name:      "arrays become repeated keys",
			path:      "customers",
			query:     dwolla.Query{"status": []string{"verified", "unverified"}},
			wantPath:  "/customers",
			wantQuery: "status=verified&status=unverified",
		},
		{name: "empty query", path: "customers", query: dwolla.Query{}, wantPath: "/customers"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Get(t.Context(), tc.path, tc.query, nil)
			require.NoError(t, err)

			got := srv.last(t)
			require.Equal(t, tc.wantPath, got.URL.Path)
			require.Equal(t, tc.wantQuery, got.URL.RawQuery)
		})
	}

	t.Run("rejects unsupported path types", func(t *testing.T) {
		_, err := c.Get(t.Context(), 42, nil, nil)
		require.ErrorIs(t, err, dwolla.ErrInvalidPath)
		require.True(t, dwolla.IsDwollaError(err))
	})

	t.Run("rejects resources without a self link", func(t *testing.T) {
		_, err := c.Get(t.Context(), widget{}, nil, nil)
		require.ErrorIs(t, err, dwolla.ErrInvalidPath)
	})

	t.Run("rejects nil resource pointers", func(t *testing.T) {
		var missing *widget
		_, err := c.Get(t.Context(), missing, nil, nil)
		require.ErrorIs(t, err, dwolla.ErrInvalidPath)

		var customer *models.Customer
		_, err = c.Delete(t.Context(), customer, nil, nil)
		require.ErrorIs(t, err, dwolla.ErrInvalidPath)
	})
}

func TestQueryEncode(t *testing.T) {
	t.Parallel()

	var missing *string
	present := "x"

	require.Empty(t, dwolla.Query(nil).Encode())
	require.Equal(t, "a=1&a=2", dwolla.Query{"a": []any{1, nil, 2}}.Encode())
	require.Equal(t, "p=x", dwolla.Query{"p": &present, "m": missing}.Encode())
	require.Equal(t, "b=true&f=1.5", dwolla.Query{"b": true, "f": 1.5}.Encode())
}

func TestRequestHeaders(t *testing.T) {
	t.Parallel()

	srv := newAPIServer(t, okHandler)
	c := newTestClient(t, srv)

	t.Run("defaults", func(t *testing.T) {
		_, err := c.Get(t.Context(), "customers", nil, nil)
		require.NoError(t, err)

		h := srv.last(t).Header
		require.Equal(t, "Bearer test-token", h.Get("Authorization"))
		require.Equal(t, "application/vnd.dwolla.v1.hal+json", h.Get("Accept"))
		require.Equal(t, "dwolla-v2-go "+dwolla.Version, h.Get("User-Agent"))
	})

	t.Run("caller headers win", func(t *testing.T) {
		_, err := c.Get(t.Context(), "customers", nil, dwolla.Headers{
			"Accept":  "application/json",
			"X-Extra": "1",
		})
		require.NoError(t, err)

		h := srv.last(t).Header
		require.Equal(t, "application/json", h.Get("Accept"))
		require.Equal(t, "1", h.Get("X-Extra"))
	})

	t.Run("idempotency key", func(t *testing.T) {
		key := dwolla.NewIdempotencyKey()
		_, err := c.Post(t.Context(), "transfers", map[string]any{}, dwolla.Headers{}.WithIdempotencyKey(key))
		require.NoError(t, err)
		require.Equal(t, key, srv.last(t).Header.Get(dwolla.IdempotencyKeyHeader))
	})

	t.Run("custom user agent", func(t *testing.T) {
		custom := newTestClient(t, srv, dwolla.WithUserAgent("my-app/1"))
		_, err := custom.Get(t.Context(), "customers", nil, nil)
		require.NoError(t, err)
		require.Equal(t, "my-app/1", srv.last(t).Header.Get("User-Agent"))
	})
}

func TestPost(t *testing.T) {
	t.Parallel()

	srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "https://api.dwolla.com/customers/new")
		w.WriteHeader(http.StatusCreated)
	})
	c := newTestClient(t, srv)

	t.Run("json body", func(t *testing.T) {
		res, err := c.Post(t.Context(), "customers", map[string]string{"firstName": "Jane"}, nil)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, res.Status)
		require.Equal(t, "https://api.dwolla.com/customers/new", res.Location())
		require.Equal(t, "", res.Body)

		got := srv.last(t)
		require.Equal(t, http.MethodPost, got.Method)
		require.Equal(t, "application/json", got.Header.Get("Content-Type"))
		require.JSONEq(t, `{"firstName":"Jane"}`, string(got.Body))
	})

	t.Run("multipart body", func(t *testing.T) {
		form := dwolla.NewFormData().
			Set("documentType", "passport").
			File("file", "passport.png", strings.NewReader("png-bytes"))

		_, err := c.Post(t.Context(), "customers/1/documents", form, nil)
		require.NoError(t, err)

		got := srv.last(t)
		require.True(t, strings.HasPrefix(got.Header.Get("Content-Type"), "multipart/form-data; boundary="))
		require.Contains(t, string(got.Body), `name="documentType"`)
		require.Contains(t, string(got.Body), "passport")
		require.Contains(t, string(got.Body), `Content-Disposition: form-data; name="file"; filename="passport.png"`)
		require.Contains(t, string(got.Body), "Content-Type: image/png")
		require.Contains(t, string(got.Body), "png-bytes")
	})

	t.Run("multipart filenames are quoted", func(t *testing.T) {
		form := dwolla.NewFormData().File("file", `my "id".pdf`, strings.NewReader("pdf"))

		_, err := c.Post(t.Context(), "customers/1/documents", form, nil)
		require.NoError(t, err)

		got := srv.last(t)
		require.Contains(t, string(got.Body), `name="file"; filename="my \"id\".pdf"`)
		require.Contains(t, string(got.Body), "Content-Type: application/pdf")
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeHAL(w, http.StatusOK, map[string]any{"id": "1", "status": "removed", "extra": true})
	})
	c := newTestClient(t, srv)

	res, err := dwolla.DeleteMapped[widget](t.Context(), c, "widgets/1", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "removed", res.Body.Status)

	got := srv.last(t)
	require.Equal(t, http.MethodDelete, got.Method)
	require.Empty(t, got.Body)
	require.Empty(t, got.Header.Get("Content-Type"))
}

func TestPostFollow(t *testing.T) {
	t.Parallel()

	t.Run("follows the location", func(t *testing.T) {
		var srv *apiServer
		srv = newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				w.Header().Set("Location", srv.URL+"/widgets/42")
				w.WriteHeader(http.StatusCreated)
				return
			}
			writeHAL(w, http.StatusOK, map[string]any{
				"_links": map[string]any{"self": map[string]any{"href": srv.URL + "/widgets/42"}},
				"id":     "42",
				"status": "active",
				"secret": "dropped",
			})
		})
		c := newTestClient(t, srv)

		res, err := dwolla.PostFollowMapped[widget](t.Context(), c, "widgets", map[string]any{"name": "w"}, nil)
		require.NoError(t, err)
		require.Equal(t, "42", res.Body.ID)
		require.Equal(t, "active", res.Body.Status)
		require.Equal(t, srv.URL+"/widgets/42", res.Body.SelfHref())
		require.Equal(t, "dropped", res.Raw.(map[string]any)["secret"])

		got := srv.last(t)
		require.Equal(t, http.MethodGet, got.Method)
		require.Equal(t, "/widgets/42", got.URL.Path)
	})

	t.Run("missing location", func(t *testing.T) {
		srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
		c := newTestClient(t, srv)

		_, err := c.PostFollow(t.Context(), "widgets", map[string]any{}, nil)
		require.ErrorIs(t, err, dwolla.ErrMissingLocation)
		require.ErrorIs(t, err, dwolla.ErrDwolla)
		require.False(t, dwolla.IsResponseError(err))
	})

	t.Run("disabled follow returns the post response", func(t *testing.T) {
		srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Location", "https://api.dwolla.com/widgets/1")
			w.WriteHeader(http.StatusCreated)
		})
		c := newTestClient(t, srv, dwolla.WithFollowLocation(false))

		res, err := c.PostFollow(t.Context(), "widgets", map[string]any{}, nil)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, res.Status)
		require.Len(t, srv.Requests(), 2)
	})
}

func TestResponseParsing(t *testing.T) {
	t.Parallel()

	t.Run("non json body is raw text", func(t *testing.T) {
		srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("plain text"))
		})
		c := newTestClient(t, srv)

		res, err := c.Get(t.Context(), "/", nil, nil)
		require.NoError(t, err)
		require.Equal(t, "plain text", res.Body)
	})

	t.Run("mapped drops unknown fields and enum values", func(t *testing.T) {
		srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeHAL(w, http.StatusOK, map[string]any{"id": "7", "status": "exploded", "other": 1})
		})
		c := newTestClient(t, srv)

		res, err := dwolla.GetMapped[widget](t.Context(), c, "widgets/7", nil, nil)
		require.NoError(t, err)
		require.Equal(t, "7", res.Body.ID)
		require.Empty(t, res.Body.Status)
	})

	t.Run("mapped drops mistyped values", func(t *testing.T) {
		srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeHAL(w, http.StatusOK, map[string]any{
				"id":         "1",
				"firstName":  "Jane",
				"created":    "2022-07-15",
				"controller": "unexpected",
			})
		})
		c := newTestClient(t, srv)

		res, err := dwolla.GetMapped[models.Customer](t.Context(), c, "customers/1", nil, nil)
		require.NoError(t, err)
		require.Equal(t, "1", res.Body.ID)
		require.Equal(t, "Jane", res.Body.FirstName)
		require.True(t, res.Body.Created.IsZero())
		require.Nil(t, res.Body.Controller)
		require.Equal(t, "2022-07-15", res.Raw.(map[string]any)["created"])
	})

	t.Run("error status returns the unmapped body", func(t *testing.T) {
		body := map[string]any{"code": "NotFound", "message": "The requested resource was not found."}
		srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Request-Id", "r-1")
			writeHAL(w, http.StatusNotFound, body)
		})
		c := newTestClient(t, srv)

		_, err := dwolla.GetMapped[widget](t.Context(), c, "widgets/missing", nil, nil)
		require.True(t, dwolla.IsResponseError(err))

		var respErr *dwolla.ResponseError
		require.True(t, errors.As(err, &respErr))
		require.Equal(t, http.StatusNotFound, respErr.Status)
		require.Equal(t, "r-1", respErr.Headers.Get("X-Request-Id"))
		require.Equal(t, "NotFound", respErr.Code())

		want, _ := json.Marshal(body)
		var wantBody any
		require.NoError(t, json.Unmarshal(want, &wantBody))
		require.Equal(t, wantBody, respErr.Body)
		require.Contains(t, respErr.Error(), "NotFound")
	})

	t.Run("error status with text body", func(t *testing.T) {
		srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		})
		c := newTestClient(t, srv)

		_, err := c.Delete(t.Context(), "widgets/1", nil, nil)
		var respErr *dwolla.ResponseError
		require.ErrorAs(t, err, &respErr)
		require.Equal(t, "upstream down", respErr.Body)
	})

	t.Run("oversized body", func(t *testing.T) {
		srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", 4096)))
		})
		c := newTestClient(t, srv, dwolla.WithMaxResponseBytes(1024))

		_, err := c.Get(t.Context(), "/", nil, nil)
		require.ErrorIs(t, err, dwolla.ErrBodyTooLarge)
	})
}

func TestTransportErrors(t *testing.T) {
	t.Parallel()

	srv := newAPIServer(t, okHandler)
	c := newTestClient(t, srv)

	_, err := c.Get(t.Context(), "/", nil, nil)
	require.NoError(t, err)
	srv.Close()

	_, err = c.Get(t.Context(), "/", nil, nil)
	require.Error(t, err)
	require.False(t, dwolla.IsDwollaError(err))
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	err := &dwolla.Error{Message: "failed to map response", Err: errors.New("bad field")}
	require.Equal(t, "dwolla: failed to map response: bad field", err.Error())

	err = &dwolla.Error{Message: "cannot follow URL, Location header is missing", Err: dwolla.ErrMissingLocation}
	require.Equal(t, "dwolla: cannot follow URL, Location header is missing", err.Error())
	require.ErrorIs(t, err, dwolla.ErrMissingLocation)
}
