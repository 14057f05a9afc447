package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/rs/zerolog"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

const qrCodeSize = 200

// TwoFactorService manages TOTP enrolment: secret generation, QR
// provisioning, code verification, and enable/disable.
type TwoFactorService struct {
	users  ports.UserRepository
	issuer string
	log    zerolog.Logger
}

func NewTwoFactorService(users ports.UserRepository, issuer string, log zerolog.Logger) *TwoFactorService {
	if issuer == "" {
		issuer = "EventSphere"
	}
	return &TwoFactorService{users: users, issuer: issuer, log: log}
}

// Setup generates a fresh secret for the user and stores it without enabling
// two-factor auth. A previously provisioned but unconfirmed secret is
// overwritten.
func (s *TwoFactorService) Setup(ctx context.Context, userID string) (*ports.TwoFactorSetup, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: user.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("generate totp secret: %w", err)
	}

	secret := key.Secret()
	if err := s.users.Update(ctx, userID, ports.UserUpdate{TwoFactorSecret: &secret}); err != nil {
		return nil, err
	}

	qr, err := qrDataURL(key)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Msg("2fa secret provisioned")
	return &ports.TwoFactorSetup{Secret: secret, QRCode: qr}, nil
}

// Verify validates the code against the stored secret and enables two-factor
// auth on success.
func (s *TwoFactorService) Verify(ctx context.Context, userID, code string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.TwoFactorSecret == "" || !s.VerifyCode(user.TwoFactorSecret, code) {
		return domain.ErrTwoFactorInvalid
	}

	enabled := true
	if err := s.users.Update(ctx, userID, ports.UserUpdate{TwoFactorEnabled: &enabled}); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("2fa enabled")
	return nil
}

// Disable clears the enabled flag and the stored secret, returning the
// account to a clean disabled state.
func (s *TwoFactorService) Disable(ctx context.Context, userID string) error {
	enabled := false
	secret := ""
	if err := s.users.Update(ctx, userID, ports.UserUpdate{
		TwoFactorEnabled: &enabled,
		TwoFactorSecret:  &secret,
	}); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("2fa disabled")
	return nil
}

// VerifyCode checks a 6-digit time-based code with a tolerance of one step
// in either direction.
func (s *TwoFactorService) VerifyCode(secret, code string) bool {
	ok, err := totp.ValidateCustom(code, secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

// qrDataURL renders the provisioning URI as a PNG data URL the client can
// drop straight into an <img> tag.
func qrDataURL(key *otp.Key) (string, error) {
	img, err := key.Image(qrCodeSize, qrCodeSize)
	if err != nil {
		return "", fmt.Errorf("render qr code: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode qr code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
