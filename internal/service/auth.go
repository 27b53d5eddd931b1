package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/Strob0t/ProcureDesk/internal/adapter/otel"
	"github.com/Strob0t/ProcureDesk/internal/config"
	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/user"
	"github.com/Strob0t/ProcureDesk/internal/port/database"
	"github.com/Strob0t/ProcureDesk/internal/port/mailer"
	"github.com/Strob0t/ProcureDesk/internal/port/otp"
)

// ErrInvalidOTP is returned when a login code is missing, expired, or wrong.
var ErrInvalidOTP = errors.New("invalid or expired code")

// AuthService handles passwordless (email OTP) login for corporate users
// and issues their access tokens.
type AuthService struct {
	store   database.Store
	otps    otp.Store
	mail    mailer.Mailer
	metrics *otel.Metrics
	cfg     *config.Auth
	secret  []byte
}

// NewAuthService creates a new corporate authentication service.
func NewAuthService(store database.Store, otps otp.Store, mail mailer.Mailer, metrics *otel.Metrics, cfg *config.Auth) *AuthService {
	return &AuthService{
		store:   store,
		otps:    otps,
		mail:    mail,
		metrics: metrics,
		cfg:     cfg,
		secret:  []byte(cfg.JWTSecret),
	}
}

// LoginResponse is returned after a successful OTP verification.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int       `json:"expires_in"`
	User        user.User `json:"user"`
}

// RequestOTP generates a login code for a registered corporate user,
// stores it with a TTL, and emails it. Requesting a new code replaces
// any outstanding one.
func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no account for this email: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("get user: %w", err)
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	if err := s.otps.Set(ctx, u.Email, code, s.cfg.OTPExpiry); err != nil {
		return fmt.Errorf("store code: %w", err)
	}

	body := fmt.Sprintf("<p>Hi %s,</p><p>Your ProcureDesk login code is <b>%s</b>. It expires in %d minutes.</p>",
		u.Name, code, int(s.cfg.OTPExpiry.Minutes()))
	if err := s.mail.Send(ctx, u.Email, "Your ProcureDesk login code", body); err != nil {
		// The code is stored; the user can retry the email by requesting again.
		return fmt.Errorf("send code: %w", err)
	}

	if s.metrics != nil {
		s.metrics.OTPSent.Add(ctx, 1)
	}
	slog.Info("login code sent", "user_id", u.ID)
	return nil
}

// VerifyOTP consumes the stored code for the address and, on match,
// issues an access token. A code can be used at most once.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*LoginResponse, error) {
	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidOTP
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	stored, ok, err := s.otps.Consume(ctx, u.Email)
	if err != nil {
		return nil, fmt.Errorf("consume code: %w", err)
	}
	if !ok || stored != code {
		return nil, ErrInvalidOTP
	}

	if err := s.store.TouchUserLogin(ctx, u.ID); err != nil {
		slog.Warn("failed to record login time", "user_id", u.ID, "error", err)
	}

	token, err := s.signUserToken(u)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &LoginResponse{
		AccessToken: token,
		ExpiresIn:   int(s.cfg.AccessTokenExpiry.Seconds()),
		User:        *u,
	}, nil
}

// ValidateToken verifies a corporate access token and returns the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*user.TokenClaims, error) {
	var claims user.TokenClaims
	if err := verifyJWT(s.secret, tokenStr, &claims); err != nil {
		return nil, err
	}
	if err := checkStandardClaims(claims.Expiry, claims.Audience, claims.Issuer); err != nil {
		return nil, err
	}
	if claims.UserID == "" || claims.TenantID == "" {
		return nil, errors.New("not a corporate token")
	}
	return &claims, nil
}

func (s *AuthService) signUserToken(u *user.User) (string, error) {
	now := time.Now()
	return signJWT(s.secret, user.TokenClaims{
		UserID:   u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		TenantID: u.TenantID,
		IssuedAt: now.Unix(),
		Expiry:   now.Add(s.cfg.AccessTokenExpiry).Unix(),
		JTI:      uuid.NewString(),
		Audience: tokenAudience,
		Issuer:   tokenIssuer,
	})
}

// generateOTP returns a random 5-digit login code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%05d", n.Int64()+10000), nil
}
