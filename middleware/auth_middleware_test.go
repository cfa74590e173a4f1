package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, apiToken string) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authHandler, err := NewAuthHandler(apiToken)
	if err != nil {
		t.Fatalf("new auth handler: %v", err)
	}

	handled := 0
	router := gin.New()
	router.Use(authHandler.AuthMiddleware())
	router.GET("/health", func(c *gin.Context) {
		handled++
		c.Status(http.StatusOK)
	})
	router.POST("/extract-vocals", func(c *gin.Context) {
		handled++
		c.Status(http.StatusOK)
	})
	return router, &handled
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	router, handled := newTestRouter(t, "secret-token")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/extract-vocals", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if *handled != 0 {
		t.Fatal("handler must not run for unauthenticated requests")
	}
}

func TestAuthRejectsWrongToken(t *testing.T) {
	router, handled := newTestRouter(t, "secret-token")

	for _, header := range []string{"Bearer wrong", "secret-token", "Basic secret-token"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/extract-vocals", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, w.Code)
		}
	}
	if *handled != 0 {
		t.Fatal("handler must not run for bad credentials")
	}
}

func TestAuthAcceptsValidToken(t *testing.T) {
	router, handled := newTestRouter(t, "secret-token")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/extract-vocals", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if *handled != 1 {
		t.Fatal("expected handler to run once")
	}
}

func TestAuthExemptsHealth(t *testing.T) {
	router, handled := newTestRouter(t, "secret-token")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if *handled != 1 {
		t.Fatal("expected health handler to run without credentials")
	}
}

func TestNewAuthHandlerFailsClosedOnEmptyToken(t *testing.T) {
	if _, err := NewAuthHandler(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}
