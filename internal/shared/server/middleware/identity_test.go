package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newIdentityRouter() *gin.Engine {
	r := gin.New()
	r.Use(Identity())
	r.GET("/open", func(c *gin.Context) {
		c.String(http.StatusOK, OwnerIDFromContext(c))
	})
	r.GET("/closed", RequireIdentity(), func(c *gin.Context) {
		c.String(http.StatusOK, OwnerIDFromContext(c))
	})
	return r
}

func TestIdentityStoresGuestOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newIdentityRouter()

	req := httptest.NewRequest(http.MethodGet, "/closed", nil)
	req.Header.Set("X-Guest-Id", "abc-123")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Body.String() != "guest:abc-123" {
		t.Fatalf("unexpected owner: %q", resp.Body.String())
	}
}

func TestIdentityOptionalOnOpenRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newIdentityRouter()

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/open", nil))
	if resp.Code != http.StatusOK || resp.Body.String() != "" {
		t.Fatalf("expected anonymous 200, got %d %q", resp.Code, resp.Body.String())
	}
}

func TestRequireIdentityRejectsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newIdentityRouter()

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/closed", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestIdentityRejectsMalformedGuestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newIdentityRouter()

	for _, id := range []string{"../etc", "a b", strings.Repeat("x", 129)} {
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("X-Guest-Id", id)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", id, resp.Code)
		}
	}
}
