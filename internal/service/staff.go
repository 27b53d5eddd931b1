package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Strob0t/ProcureDesk/internal/config"
	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/staff"
	"github.com/Strob0t/ProcureDesk/internal/port/database"
)

// ErrInvalidCredentials is returned for any failed staff login, without
// revealing whether the account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// StaffService handles back-office accounts and their password login.
type StaffService struct {
	store  database.Store
	cfg    *config.Auth
	secret []byte
}

// NewStaffService creates a new staff service.
func NewStaffService(store database.Store, cfg *config.Auth) *StaffService {
	return &StaffService{
		store:  store,
		cfg:    cfg,
		secret: []byte(cfg.JWTSecret),
	}
}

// StaffLoginResponse is returned after a successful staff login.
type StaffLoginResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int         `json:"expires_in"`
	Staff       staff.Staff `json:"staff"`
}

// Register creates a staff account with a bcrypt-hashed password.
func (s *StaffService) Register(ctx context.Context, req *staff.RegisterRequest) (*staff.Staff, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = staff.RoleAdmin
	}

	st := &staff.Staff{
		Name:         req.Name,
		Email:        req.Email,
		Contact:      req.Contact,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.store.CreateStaff(ctx, st); err != nil {
		return nil, fmt.Errorf("create staff: %w", err)
	}
	return st, nil
}

// Login authenticates a staff user and issues an access token.
func (s *StaffService) Login(ctx context.Context, req staff.LoginRequest) (*StaffLoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrValidation)
	}

	st, err := s.store.GetStaffByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	if !st.Active {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.store.TouchStaffLogin(ctx, st.ID); err != nil {
		slog.Warn("failed to record staff login time", "staff_id", st.ID, "error", err)
	}

	token, err := s.signStaffToken(st)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &StaffLoginResponse{
		AccessToken: token,
		ExpiresIn:   int(s.cfg.AccessTokenExpiry.Seconds()),
		Staff:       *st,
	}, nil
}

// ValidateToken verifies a staff access token and returns the claims.
func (s *StaffService) ValidateToken(tokenStr string) (*staff.TokenClaims, error) {
	var claims staff.TokenClaims
	if err := verifyJWT(s.secret, tokenStr, &claims); err != nil {
		return nil, err
	}
	if err := checkStandardClaims(claims.Expiry, claims.Audience, claims.Issuer); err != nil {
		return nil, err
	}
	if claims.StaffID == "" {
		return nil, errors.New("not a staff token")
	}
	return &claims, nil
}

func (s *StaffService) signStaffToken(st *staff.Staff) (string, error) {
	now := time.Now()
	return signJWT(s.secret, staff.TokenClaims{
		StaffID:  st.ID,
		Email:    st.Email,
		Role:     st.Role,
		IssuedAt: now.Unix(),
		Expiry:   now.Add(s.cfg.AccessTokenExpiry).Unix(),
		JTI:      uuid.NewString(),
		Audience: tokenAudience,
		Issuer:   tokenIssuer,
	})
}
