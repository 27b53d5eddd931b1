package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Strob0t/ProcureDesk/internal/domain/homepage"
)

// GetHomepage returns the singleton homepage document. ErrNotFound means
// it has never been published.
func (s *Store) GetHomepage(ctx context.Context) (*homepage.Homepage, error) {
	var h homepage.Homepage
	var id int
	var sectionsJSON, carouselJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, sections, carousel, COALESCE(updated_by::text, ''), created_at, updated_at
		 FROM homepage WHERE id = 1`,
	).Scan(&id, &sectionsJSON, &carouselJSON, &h.UpdatedBy, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, notFoundWrap(err, "get homepage")
	}
	h.ID = strconv.Itoa(id)

	if err := json.Unmarshal(sectionsJSON, &h.Sections); err != nil {
		return nil, fmt.Errorf("unmarshal sections: %w", err)
	}
	if err := json.Unmarshal(carouselJSON, &h.Carousel); err != nil {
		return nil, fmt.Errorf("unmarshal carousel: %w", err)
	}
	return &h, nil
}

// UpsertHomepage replaces the singleton homepage content.
func (s *Store) UpsertHomepage(ctx context.Context, h *homepage.Homepage) error {
	sectionsJSON, err := json.Marshal(orEmpty(h.Sections))
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}
	carouselJSON, err := json.Marshal(h.Carousel)
	if err != nil {
		return fmt.Errorf("marshal carousel: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		`INSERT INTO homepage (id, sections, carousel, updated_by)
		 VALUES (1, $1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET
		   sections = EXCLUDED.sections,
		   carousel = EXCLUDED.carousel,
		   updated_by = EXCLUDED.updated_by,
		   updated_at = now()
		 RETURNING created_at, updated_at`,
		sectionsJSON, carouselJSON, nullIfEmpty(h.UpdatedBy),
	).Scan(&h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert homepage: %w", err)
	}
	h.ID = "1"
	return nil
}
