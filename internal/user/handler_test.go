// AngelaMos | 2026
// handler_test.go

package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mindtrack/internal/core"
	"github.com/carterperez-dev/mindtrack/internal/middleware"
	"github.com/carterperez-dev/mindtrack/internal/testdb"
)

func withUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(
			r.Context(),
			middleware.UserIDKey,
			r.Header.Get("X-Test-User"),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func TestMeEndpoints(t *testing.T) {
	svc := NewService(NewRepository(testdb.New(t)))
	u, err := svc.Create(context.Background(), "carol@example.com", "hash")
	require.NoError(t, err)

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, withUser)

	do := func(method string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/users/me", nil)
		req.Header.Set("X-Test-User", u.ID)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool         `json:"success"`
		Data    UserResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "carol@example.com", body.Data.Email)
	assert.Equal(t, RoleUser, body.Data.Role)

	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodGet).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodDelete).Code)

	var errBody struct {
		Error core.ErrorBody `json:"error"`
	}
	rec = do(http.MethodGet)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	assert.NotEmpty(t, errBody.Error.Code)
}

func passthrough(next http.Handler) http.Handler { return next }

func TestListUsersPaginates(t *testing.T) {
	svc := NewService(NewRepository(testdb.New(t)))
	ctx := context.Background()
	for _, email := range []string{"ann@example.com", "bob@example.com", "cy_x@example.com"} {
		_, err := svc.Create(ctx, email, "hash")
		require.NoError(t, err)
	}

	r := chi.NewRouter()
	NewHandler(svc).RegisterAdminRoutes(r, passthrough, passthrough)

	type page struct {
		Data []UserResponse  `json:"data"`
		Meta core.Pagination `json:"meta"`
	}
	get := func(t *testing.T, query string) page {
		t.Helper()
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/users"+query, nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var p page
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		return p
	}

	first := get(t, "?page=1&page_size=2")
	assert.Len(t, first.Data, 2)
	assert.Equal(t, core.Pagination{Page: 1, PageSize: 2, Total: 3, TotalPages: 2}, first.Meta)

	second := get(t, "?page=2&page_size=2")
	assert.Len(t, second.Data, 1)

	seen := map[string]bool{}
	for _, u := range append(first.Data, second.Data...) {
		seen[u.Email] = true
	}
	assert.Len(t, seen, 3)

	defaults := get(t, "?page=0&page_size=1000")
	assert.Equal(t, 1, defaults.Meta.Page)
	assert.Equal(t, maxPageSize, defaults.Meta.PageSize)
	assert.Len(t, defaults.Data, 3)

	tests := []struct {
		search string
		want   []string
	}{
		{"BOB", []string{"bob@example.com"}},
		{"_", []string{"cy_x@example.com"}},
		{"%", nil},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			p := get(t, "?search=" + url.QueryEscape(tt.search))
			var got []string
			for _, u := range p.Data {
				got = append(got, u.Email)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), p.Meta.Total)
		})
	}
}
