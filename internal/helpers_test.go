package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filevault/internal"
)

func captureContext(t *testing.T, req *http.Request, fn func(c internal.Context)) {
	t.Helper()

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/", func(c internal.Context) error {
			fn(c)
			return c.NoContent(http.StatusOK)
		})
	})))
	w := httptest.NewRecorder()
	app.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestQueryHelpers(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?page=3&size=abc&public=true&parentId=5f1d", nil)
	captureContext(t, req, func(c internal.Context) {
		require.Equal(t, 3, internal.Query[int](c, "page"))
		require.Equal(t, 0, internal.Query[int](c, "size"))
		require.True(t, internal.Query[bool](c, "public"))
		require.Equal(t, "5f1d", internal.Query[string](c, "parentId"))
		require.Equal(t, int64(3), internal.Query[int64](c, "page"))

		require.Equal(t, 7, internal.QueryDefault(c, "missing", 7))
		require.Equal(t, 7, internal.QueryDefault(c, "size", 7))
		require.Equal(t, 3, internal.QueryDefault(c, "page", 7))
	})
}

func TestExtractor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		want    string
		wantOK  bool
	}{
		{name: "no headers", wantOK: false},
		{name: "x-token", headers: map[string]string{"X-Token": "abc"}, want: "abc", wantOK: true},
		{name: "bearer", headers: map[string]string{"Authorization": "Bearer xyz"}, want: "xyz", wantOK: true},
		{name: "lowercase bearer", headers: map[string]string{"Authorization": "bearer xyz"}, want: "xyz", wantOK: true},
		{name: "basic is ignored", headers: map[string]string{"Authorization": "Basic Zm9vOmJhcg=="}, wantOK: false},
		{name: "empty bearer", headers: map[string]string{"Authorization": "Bearer "}, wantOK: false},
		{
			name:    "x-token wins",
			headers: map[string]string{"X-Token": "first", "Authorization": "Bearer second"},
			want:    "first",
			wantOK:  true,
		},
	}

	ext := internal.NewExtractor(internal.FromHeader("x-token"), internal.FromBearerToken())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			captureContext(t, req, func(c internal.Context) {
				got, ok := ext.Extract(c)
				require.Equal(t, tt.wantOK, ok)
				require.Equal(t, tt.want, got)
			})
		})
	}
}
