package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/api"
	"github.com/Mcenroe-Ryan/DemandPlanning-Backend/internal/config"
)

// stubStorage 外层路由冒烟测试用的存储桩
// 被测路由不触达维度/事实方法，嵌入的 api.Store 保持 nil
type stubStorage struct {
	api.Store
	pingErr error
}

func (s stubStorage) Ping(context.Context) error { return s.pingErr }
func (s stubStorage) Close()                     {}

func newTestServer(st storage) *Server {
	gin.SetMode(gin.TestMode)
	return newWithStorage(config.DefaultConfig(), st)
}

func serve(srv *Server, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRootBanner(t *testing.T) {
	srv := newTestServer(stubStorage{})

	w := serve(srv, http.MethodGet, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status want=200 got=%d", w.Code)
	}
	if w.Body.String() != "Backend API is running" {
		t.Fatalf("unexpected banner: %q", w.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(stubStorage{})

	w := serve(srv, http.MethodGet, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("status want=200 got=%d body=%s", w.Code, w.Body.String())
	}

	srv = newTestServer(stubStorage{pingErr: errors.New("connection refused")})
	w = serve(srv, http.MethodGet, "/healthz")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status want=503 got=%d body=%s", w.Code, w.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(stubStorage{})

	w := serve(srv, http.MethodOptions, "/api/forecast")
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status want=204 got=%d", w.Code)
	}
	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "http://localhost:5173" {
		t.Fatalf("unexpected allowed origin: %q", origin)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(stubStorage{})

	w := serve(srv, http.MethodGet, "/")
	id := w.Header().Get("X-Request-Id")
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("X-Request-Id %q is not a uuid: %v", id, err)
	}
}
