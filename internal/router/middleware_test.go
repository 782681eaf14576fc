package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/storeadmin/internal/config"
	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/http/handlers"
	"github.com/storeadmin/internal/service"

	"github.com/gin-gonic/gin"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", "*", false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", "*", true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://shop.example.com", "https://shop.example.com/", false)
	if got != "https://shop.example.com" {
		t.Fatalf("matched origin should be echoed, got %s", got)
	}

	got = resolveAllowedOrigin("https://evil.example.com", "https://shop.example.com", false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func protectTestRouter() *gin.Engine {
	authService := service.NewAuthService(&config.Config{
		JWT: config.JWTConfig{
			Secret:           "router-test-secret",
			ExpiresIn:        "1h",
			RefreshExpiresIn: "24h",
		},
	}, nil)

	r := gin.New()
	r.GET("/me", Protect(authService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestProtectRejectsMissingOrMalformedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := protectTestRouter()

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"invalid token", "Bearer not-a-jwt"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status want 401 got %d", tc.name, w.Code)
		}
		var resp struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: unmarshal response failed: %v", tc.name, err)
		}
		if resp.Status != "fail" {
			t.Fatalf("%s: status field want fail got %s", tc.name, resp.Status)
		}
	}
}

func TestRestrictByRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role string, withActor bool) *gin.Engine {
		r := gin.New()
		r.GET("/admin",
			func(c *gin.Context) {
				if withActor {
					c.Set(handlers.ActorContextKey, service.Actor{ID: 1, Role: role})
				}
			},
			Restrict(constants.RoleAdmin),
			func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})
		return r
	}

	run := func(r *gin.Engine) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		return w.Code
	}

	if code := run(newRouter("", false)); code != http.StatusUnauthorized {
		t.Fatalf("no actor: want 401 got %d", code)
	}
	if code := run(newRouter(constants.RoleUser, true)); code != http.StatusForbidden {
		t.Fatalf("customer: want 403 got %d", code)
	}
	if code := run(newRouter(constants.RoleAdmin, true)); code != http.StatusOK {
		t.Fatalf("admin: want 200 got %d", code)
	}
}
