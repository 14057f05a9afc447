package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

type stubVerifier struct {
	identity ports.Identity
	err      error
	seen     string
}

func (s *stubVerifier) VerifyToken(token string) (ports.Identity, error) {
	s.seen = token
	if s.err != nil {
		return ports.Identity{}, s.err
	}
	return s.identity, nil
}

type stubRevocation struct {
	revoked map[string]bool
	err     error
	checked []string
}

func (s *stubRevocation) Revoke(_ context.Context, token string, _ time.Duration) error {
	if s.revoked == nil {
		s.revoked = make(map[string]bool)
	}
	s.revoked[token] = true
	return nil
}

func (s *stubRevocation) IsRevoked(_ context.Context, token string) (bool, error) {
	s.checked = append(s.checked, token)
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[token], nil
}

func runAuth(t *testing.T, verifier *stubVerifier, revoker *stubRevocation, decorate func(*http.Request)) (echo.Context, *httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(verifier, revoker)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, rec, handler(c)
}

func TestAuth_BearerHeader(t *testing.T) {
	verifier := &stubVerifier{identity: ports.Identity{UserID: "user-1", Role: domain.RoleUser}}
	revoker := &stubRevocation{}

	c, rec, err := runAuth(t, verifier, revoker, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer tok-123")
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if c.Get(ContextUserID) != "user-1" || c.Get(ContextRole) != domain.RoleUser {
		t.Fatalf("identity not set on context")
	}
	if c.Get(ContextToken) != "tok-123" {
		t.Fatalf("raw token not set on context")
	}
}

func TestAuth_CookieFallback(t *testing.T) {
	verifier := &stubVerifier{identity: ports.Identity{UserID: "user-1", Role: domain.RoleUser}}

	_, rec, err := runAuth(t, verifier, &stubRevocation{}, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "cookie-token"})
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if verifier.seen != "cookie-token" {
		t.Fatalf("cookie token not used: %q", verifier.seen)
	}
}

func TestAuth_HeaderPreferredOverCookie(t *testing.T) {
	verifier := &stubVerifier{identity: ports.Identity{UserID: "user-1", Role: domain.RoleUser}}

	_, _, err := runAuth(t, verifier, &stubRevocation{}, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer header-token")
		r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "cookie-token"})
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if verifier.seen != "header-token" {
		t.Fatalf("header token not preferred: %q", verifier.seen)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	_, _, err := runAuth(t, &stubVerifier{}, &stubRevocation{}, nil)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_RevokedToken(t *testing.T) {
	verifier := &stubVerifier{identity: ports.Identity{UserID: "user-1", Role: domain.RoleUser}}
	revoker := &stubRevocation{revoked: map[string]bool{"tok-123": true}}

	_, _, err := runAuth(t, verifier, revoker, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer tok-123")
	})

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	// The revocation list is consulted before any signature work.
	if len(revoker.checked) != 1 || revoker.checked[0] != "tok-123" {
		t.Fatalf("revocation not checked: %+v", revoker.checked)
	}
	if verifier.seen != "" {
		t.Fatalf("revoked token must not reach the verifier")
	}
}

func TestAuth_RevocationCheckFailureFailsClosed(t *testing.T) {
	verifier := &stubVerifier{identity: ports.Identity{UserID: "user-1", Role: domain.RoleUser}}
	revoker := &stubRevocation{err: errors.New("redis down")}

	_, _, err := runAuth(t, verifier, revoker, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer tok-123")
	})

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when revocation check fails, got %v", err)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: domain.ErrInvalidToken}

	_, _, err := runAuth(t, verifier, &stubRevocation{}, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer bad-token")
	})

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
