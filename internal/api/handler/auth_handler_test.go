package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
	"github.com/eventsphere/eventsphere-api/internal/infrastructure/storage"
)

type stubAuthService struct {
	user       *domain.User
	token      string
	loginErr   error
	signupErr  error
	loggedOut  []string
	changedPwd bool
}

func (s *stubAuthService) Signup(_ context.Context, in ports.SignupInput) (*domain.User, error) {
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	u := *s.user
	u.Email = in.Email
	return &u, nil
}

func (s *stubAuthService) Login(_ context.Context, _, _, _ string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.token, s.user, nil
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	s.loggedOut = append(s.loggedOut, token)
	return nil
}

func (s *stubAuthService) ChangePassword(_ context.Context, _, _, _ string) error {
	s.changedPwd = true
	return nil
}

func (s *stubAuthService) VerifyToken(_ string) (ports.Identity, error) {
	return ports.Identity{UserID: s.user.ID, Role: s.user.Role}, nil
}

type stubTwoFactorService struct {
	setup     *ports.TwoFactorSetup
	verifyErr error
	disabled  bool
}

func (s *stubTwoFactorService) Setup(_ context.Context, _ string) (*ports.TwoFactorSetup, error) {
	return s.setup, nil
}

func (s *stubTwoFactorService) Verify(_ context.Context, _, _ string) error {
	return s.verifyErr
}

func (s *stubTwoFactorService) Disable(_ context.Context, _ string) error {
	s.disabled = true
	return nil
}

type stubUserService struct {
	user      *domain.User
	updates   []ports.ProfileUpdate
	updateErr error
}

func (s *stubUserService) Profile(_ context.Context, _ string) (*domain.User, error) {
	if s.user == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.user, nil
}

func (s *stubUserService) UpdateProfile(_ context.Context, _ string, upd ports.ProfileUpdate) (*domain.User, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.updates = append(s.updates, upd)
	return s.user, nil
}

func (s *stubUserService) ListUsers(_ context.Context) ([]*domain.User, error) {
	return []*domain.User{s.user}, nil
}

func (s *stubUserService) AdminUpdateUser(_ context.Context, _ string, _ ports.AdminUserUpdate) error {
	return nil
}

func (s *stubUserService) DeleteUser(_ context.Context, _ string) error {
	return nil
}

type stubSink struct {
	entries []domain.AuditEntry
}

func (s *stubSink) Enqueue(entry domain.AuditEntry) {
	s.entries = append(s.entries, entry)
}

func testUser() *domain.User {
	return &domain.User{
		ID:    "user-1",
		Email: "alice@example.com",
		Role:  domain.RoleUser,
	}
}

func newTestAuthHandler(t *testing.T, auth ports.AuthService, twoFactor ports.TwoFactorService, users ports.UserService, sink ports.AuditSink) *AuthHandler {
	t.Helper()
	avatars, err := storage.NewAvatarStore(t.TempDir())
	if err != nil {
		t.Fatalf("avatar store: %v", err)
	}
	return NewAuthHandler(auth, twoFactor, users, avatars, sink, false, time.Hour)
}

func newJSONContext(method, path, body string, authed bool) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if authed {
		c.Set("user_id", "user-1")
		c.Set("role", domain.RoleUser)
		c.Set("token", "tok-123")
	}
	return c, rec
}

func TestAuthHandler_Signup(t *testing.T) {
	auth := &stubAuthService{user: testUser()}
	sink := &stubSink{}
	h := newTestAuthHandler(t, auth, &stubTwoFactorService{}, &stubUserService{}, sink)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/signup",
		`{"username":"alice","email":"alice@example.com","password":"pass123"}`, false)
	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "pass123") {
		t.Fatalf("password leaked into response")
	}
	if len(sink.entries) != 1 || sink.entries[0].Action != domain.AuditSignup {
		t.Fatalf("signup not audited: %+v", sink.entries)
	}
}

func TestAuthHandler_Signup_ValidationFailure(t *testing.T) {
	h := newTestAuthHandler(t, &stubAuthService{user: testUser()}, &stubTwoFactorService{}, &stubUserService{}, &stubSink{})

	c, _ := newJSONContext(http.MethodPost, "/api/auth/signup",
		`{"email":"not-an-email","password":"pass123"}`, false)
	err := h.Signup(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_SetsHTTPOnlyCookie(t *testing.T) {
	auth := &stubAuthService{user: testUser(), token: "tok-abc"}
	h := newTestAuthHandler(t, auth, &stubTwoFactorService{}, &stubUserService{}, &stubSink{})

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"pass123"}`, false)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	var session *http.Cookie
	for _, ck := range cookies {
		if ck.Name == tokenCookieName {
			session = ck
		}
	}
	if session == nil {
		t.Fatalf("session cookie not set")
	}
	if session.Value != "tok-abc" {
		t.Fatalf("unexpected cookie value: %q", session.Value)
	}
	if !session.HttpOnly {
		t.Fatalf("cookie must be httpOnly")
	}
	if session.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie must be SameSite=Lax")
	}
	if session.MaxAge <= 0 {
		t.Fatalf("cookie must carry a positive max age, got %d", session.MaxAge)
	}
}

func TestAuthHandler_Login_FailurePropagatesDomainError(t *testing.T) {
	auth := &stubAuthService{user: testUser(), loginErr: domain.ErrTwoFactorRequired}
	h := newTestAuthHandler(t, auth, &stubTwoFactorService{}, &stubUserService{}, &stubSink{})

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"pass123"}`, false)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrTwoFactorRequired) {
		t.Fatalf("expected ErrTwoFactorRequired, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie may be set on a failed login")
	}
}

func TestAuthHandler_Logout_RevokesAndClearsCookie(t *testing.T) {
	auth := &stubAuthService{user: testUser()}
	sink := &stubSink{}
	h := newTestAuthHandler(t, auth, &stubTwoFactorService{}, &stubUserService{}, sink)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/logout", "", true)
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if len(auth.loggedOut) != 1 || auth.loggedOut[0] != "tok-123" {
		t.Fatalf("presented token not revoked: %+v", auth.loggedOut)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != tokenCookieName {
		t.Fatalf("expected cleared session cookie, got %+v", cookies)
	}
	if cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Fatalf("cookie not cleared: %+v", cookies[0])
	}
	if len(sink.entries) != 1 || sink.entries[0].Action != domain.AuditLogout {
		t.Fatalf("logout not audited: %+v", sink.entries)
	}
}

func TestAuthHandler_Logout_RequiresAuthContext(t *testing.T) {
	h := newTestAuthHandler(t, &stubAuthService{user: testUser()}, &stubTwoFactorService{}, &stubUserService{}, &stubSink{})

	c, _ := newJSONContext(http.MethodPost, "/api/auth/logout", "", false)
	err := h.Logout(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth context, got %v", err)
	}
}

func TestAuthHandler_UpdateProfile_ParsesPreferencesJSON(t *testing.T) {
	users := &stubUserService{user: testUser()}
	h := newTestAuthHandler(t, &stubAuthService{user: testUser()}, &stubTwoFactorService{}, users, &stubSink{})

	e := echo.New()
	e.Validator = NewValidator()
	form := strings.NewReader("username=alice2&preferences=" +
		`{"genres":["jazz"]}`)
	req := httptest.NewRequest(http.MethodPut, "/api/auth/profile", form)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user-1")
	c.Set("role", domain.RoleUser)

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if len(users.updates) != 1 {
		t.Fatalf("expected one update, got %d", len(users.updates))
	}
	upd := users.updates[0]
	if upd.Username == nil || *upd.Username != "alice2" {
		t.Fatalf("username not parsed: %+v", upd)
	}
	if upd.Preferences == nil {
		t.Fatalf("preferences not parsed")
	}
}

func TestAuthHandler_UpdateProfile_RejectsMalformedPreferences(t *testing.T) {
	h := newTestAuthHandler(t, &stubAuthService{user: testUser()}, &stubTwoFactorService{}, &stubUserService{user: testUser()}, &stubSink{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/auth/profile",
		strings.NewReader("preferences=not-json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user-1")
	c.Set("role", domain.RoleUser)

	err := h.UpdateProfile(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_TwoFactorVerify_InvalidCode(t *testing.T) {
	twoFactor := &stubTwoFactorService{verifyErr: domain.ErrTwoFactorInvalid}
	h := newTestAuthHandler(t, &stubAuthService{user: testUser()}, twoFactor, &stubUserService{}, &stubSink{})

	c, _ := newJSONContext(http.MethodPost, "/api/auth/2fa/verify", `{"token":"000000"}`, true)
	if err := h.TwoFactorVerify(c); !errors.Is(err, domain.ErrTwoFactorInvalid) {
		t.Fatalf("expected ErrTwoFactorInvalid, got %v", err)
	}
}

func TestAuthHandler_TwoFactorSetup(t *testing.T) {
	twoFactor := &stubTwoFactorService{setup: &ports.TwoFactorSetup{
		Secret: "SECRET",
		QRCode: "data:image/png;base64,xxxx",
	}}
	h := newTestAuthHandler(t, &stubAuthService{user: testUser()}, twoFactor, &stubUserService{}, &stubSink{})

	c, rec := newJSONContext(http.MethodGet, "/api/auth/2fa/setup", "", true)
	if err := h.TwoFactorSetup(c); err != nil {
		t.Fatalf("TwoFactorSetup returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "qrCode") {
		t.Fatalf("response missing qrCode: %s", rec.Body.String())
	}
}
