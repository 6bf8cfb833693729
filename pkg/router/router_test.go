package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cleanmate-lab/admin-backend/config"
	"github.com/cleanmate-lab/admin-backend/pkg/errorx"
	"github.com/cleanmate-lab/admin-backend/pkg/logger"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type echoResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestRouter() *Router {
	return New(nil, config.Configs{}, logger.NewLogger(logger.SILENCE))
}

func TestRouterGETBindsQuery(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: req.Name, Count: req.Count}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo?name=foo&count=3", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Code int          `json:"code"`
		Data echoResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, 0, resp.Code)
	require.Equal(t, "foo", resp.Data.Name)
	require.Equal(t, 3, resp.Data.Count)
}

func TestRouterPOSTBindsBody(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Name: req.Name, Count: req.Count}, nil
	})

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"name": "bar", "count": 7}`)
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", body))

	var resp struct {
		Code int          `json:"code"`
		Data echoResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, 0, resp.Code)
	require.Equal(t, "bar", resp.Data.Name)
	require.Equal(t, 7, resp.Data.Count)
}

func TestRouterErrorEnvelope(t *testing.T) {
	r := newTestRouter()
	GET(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errorx.New(errorx.NotFound, "Not found anything")
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	var resp struct {
		Code  int    `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, int(errorx.NotFound), resp.Code)
	require.Equal(t, "Not found anything", resp.Error)
}

func TestRouterBranchMiddleware(t *testing.T) {
	root := newTestRouter()
	guarded := root.Branch()
	guarded.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "You must login")
	})

	GET(root, "/open", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{}, nil
	})
	GET(guarded, "/guarded", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{}, nil
	})

	w := httptest.NewRecorder()
	root.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	var open struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&open))
	require.Equal(t, 0, open.Code)

	w = httptest.NewRecorder()
	root.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	var denied struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&denied))
	require.Equal(t, int(errorx.Unauthenticated), denied.Code)
}
