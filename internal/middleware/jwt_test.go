package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/magicdancearts/server/internal/auth"
	"github.com/magicdancearts/server/internal/middleware"
)

const secret = "test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenEmail string
	next := func(c echo.Context) error {
		seenEmail, _ = c.Get(middleware.EmailKey).(string)
		return c.NoContent(http.StatusOK)
	}
	if err := middleware.JWTAuth(secret)(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, seenEmail
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	rec, _ := runJWT(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	rec, _ := runJWT(t, "Bearer garbage")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestJWTAuth_ValidToken(t *testing.T) {
	token, err := auth.IssueToken("dancer@example.com", secret, auth.TokenTTL)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	rec, email := runJWT(t, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if email != "dancer@example.com" {
		t.Errorf("context email: got %q, want %q", email, "dancer@example.com")
	}
}

func TestJWTAuth_WrongScheme(t *testing.T) {
	token, err := auth.IssueToken("dancer@example.com", secret, auth.TokenTTL)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	rec, _ := runJWT(t, "Basic "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
