package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

const bcryptCost = 12

// AuthService implements signup, login, logout, and session token handling.
type AuthService struct {
	users    ports.UserRepository
	codes    ports.CodeVerifier
	revoker  ports.TokenRevoker
	secret   string
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	codes ports.CodeVerifier,
	revoker ports.TokenRevoker,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:    users,
		codes:    codes,
		revoker:  revoker,
		secret:   jwtSecret,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	// Self-service signup can never mint an admin. Admin accounts are
	// provisioned out-of-band.
	if in.Role != "" && in.Role != domain.RoleUser {
		return nil, domain.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	prefs := in.Preferences
	if prefs == nil {
		prefs = map[string]any{}
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Preferences:  prefs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user signed up")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password, otpCode string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Unknown email and wrong password are indistinguishable.
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if user.TwoFactorEnabled {
		if otpCode == "" {
			return "", nil, domain.ErrTwoFactorRequired
		}
		if !s.codes.VerifyCode(user.TwoFactorSecret, otpCode) {
			return "", nil, domain.ErrTwoFactorInvalid
		}
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login succeeded")
	return token, user, nil
}

// Logout records the token in the revocation list for the remainder of its
// validity. An already-expired token needs no entry: signature expiry rejects
// it regardless.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	ttl := s.tokenTTL
	if exp, err := s.tokenExpiry(token); err == nil {
		ttl = time.Until(exp)
	}
	if ttl <= 0 {
		return nil
	}
	return s.revoker.Revoke(ctx, token, ttl)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	newHash := string(hash)
	return s.users.Update(ctx, userID, ports.UserUpdate{PasswordHash: &newHash})
}

// VerifyToken checks signature and expiry and returns the embedded identity.
func (s *AuthService) VerifyToken(token string) (ports.Identity, error) {
	claims, err := s.parseClaims(token)
	if err != nil {
		return ports.Identity{}, domain.ErrInvalidToken
	}

	id, _ := claims["id"].(string)
	role, _ := claims["role"].(string)
	if id == "" || role == "" {
		return ports.Identity{}, domain.ErrInvalidToken
	}
	return ports.Identity{UserID: id, Role: role}, nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

func (s *AuthService) parseClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) tokenExpiry(token string) (time.Time, error) {
	claims, err := s.parseClaims(token)
	if err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, domain.ErrInvalidToken
	}
	return exp.Time, nil
}
