package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	config "github.com/meetlens/backend/config/web"
	"github.com/meetlens/backend/gateways/web/handler"
	"github.com/meetlens/backend/pkg/logger"
)

func newTestServer(authRequired bool) *Server {
	log := logger.Discard()
	return &Server{
		cfg:     &config.Config{AuthRequired: authRequired, JWTSecret: "secret"},
		log:     log,
		handler: handler.New(nil, nil, 1<<20, log),
	}
}

func TestRouterSessionGuard(t *testing.T) {
	cases := map[string]struct {
		auth   bool
		method string
		path   string
		code   int
	}{
		"health open with auth":     {auth: true, method: "GET", path: "/api/health", code: http.StatusOK},
		"summary guarded":           {auth: true, method: "POST", path: "/api/summary", code: http.StatusUnauthorized},
		"transcribe guarded":        {auth: true, method: "GET", path: "/api/transcribe?id=op", code: http.StatusUnauthorized},
		"summary open without auth": {auth: false, method: "POST", path: "/api/summary", code: http.StatusBadRequest},
		"unknown route":             {auth: false, method: "GET", path: "/api/nope", code: http.StatusNotFound},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newTestServer(tc.auth).Router().ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			if w.Code != tc.code {
				t.Errorf("status = %d, want %d", w.Code, tc.code)
			}
		})
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	r := httptest.NewRequest("OPTIONS", "/api/transcribe", nil)
	r.Header.Set("Origin", "http://localhost:5173")
	r.Header.Set("Access-Control-Request-Method", "POST")

	w := httptest.NewRecorder()
	newTestServer(true).Router().ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Errorf("missing Access-Control-Allow-Origin, status %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Errorf("Access-Control-Allow-Credentials = %q, want unset", got)
	}
}
