package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/staff"
)

const staffCols = `id, name, email, contact, password_hash, role, active, last_login, created_at, updated_at`

func (s *Store) CreateStaff(ctx context.Context, st *staff.Staff) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO staff_users (name, email, contact, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, active, created_at, updated_at`,
		st.Name, st.Email, st.Contact, st.PasswordHash, string(st.Role),
	).Scan(&st.ID, &st.Active, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("staff email already registered: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert staff: %w", err)
	}
	return nil
}

func (s *Store) GetStaff(ctx context.Context, id string) (*staff.Staff, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+staffCols+` FROM staff_users WHERE id = $1`, id)

	st, err := scanStaff(row)
	if err != nil {
		return nil, notFoundWrap(err, "get staff %s", id)
	}
	return &st, nil
}

func (s *Store) GetStaffByEmail(ctx context.Context, email string) (*staff.Staff, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+staffCols+` FROM staff_users WHERE email = $1`, email)

	st, err := scanStaff(row)
	if err != nil {
		return nil, notFoundWrap(err, "get staff by email")
	}
	return &st, nil
}

func (s *Store) TouchStaffLogin(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE staff_users SET last_login = now() WHERE id = $1`, id)
	return execExpectOne(tag, err, "touch staff login %s", id)
}

func scanStaff(row scannable) (staff.Staff, error) {
	var st staff.Staff
	var lastLogin *time.Time
	err := row.Scan(&st.ID, &st.Name, &st.Email, &st.Contact, &st.PasswordHash, &st.Role, &st.Active,
		&lastLogin, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return st, err
		}
		return st, fmt.Errorf("scan staff: %w", err)
	}
	if lastLogin != nil {
		st.LastLogin = *lastLogin
	}
	return st, nil
}
