package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

func invokeErrorHandler(t *testing.T, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return rec, body
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusBadRequest},
		{domain.ErrTwoFactorRequired, http.StatusBadRequest},
		{domain.ErrTwoFactorInvalid, http.StatusBadRequest},
		{domain.ErrEmailTaken, http.StatusBadRequest},
		{domain.ErrNoChanges, http.StatusBadRequest},
		{domain.ErrPasswordMismatch, http.StatusBadRequest},
		{domain.ErrInvalidToken, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrAdminProtected, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrBookmarkNotFound, http.StatusNotFound},
		{domain.ErrUpstream, http.StatusBadGateway},
	}

	for _, tc := range cases {
		rec, body := invokeErrorHandler(t, tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		if body.Error == "" {
			t.Fatalf("%v: empty error message", tc.err)
		}
	}
}

func TestErrorHandler_WrappedDomainErrorStillMaps(t *testing.T) {
	wrapped := fmt.Errorf("lookup account: %w", domain.ErrUserNotFound)

	rec, _ := invokeErrorHandler(t, wrapped)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped error, got %d", rec.Code)
	}
}

func TestErrorHandler_UpstreamDetailNeverLeaks(t *testing.T) {
	wrapped := fmt.Errorf("%w: status 401 apikey=tm-secret", domain.ErrUpstream)

	rec, body := invokeErrorHandler(t, wrapped)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if body.Error != "failed to fetch events" {
		t.Fatalf("provider detail leaked: %q", body.Error)
	}
}

func TestErrorHandler_EchoHTTPErrorPassesThrough(t *testing.T) {
	rec, body := invokeErrorHandler(t, echo.NewHTTPError(http.StatusUnauthorized, "no token provided"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body.Error != "no token provided" {
		t.Fatalf("unexpected message: %q", body.Error)
	}
}

func TestErrorHandler_UnknownErrorIsGeneric500(t *testing.T) {
	rec, body := invokeErrorHandler(t, errors.New("mongo: connection reset by peer"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body.Error != "internal server error" {
		t.Fatalf("internal detail leaked: %q", body.Error)
	}
}
