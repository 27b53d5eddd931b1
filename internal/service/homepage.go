package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/homepage"
	"github.com/Strob0t/ProcureDesk/internal/port/database"
)

// HomepageService manages the storefront homepage singleton.
type HomepageService struct {
	store database.Store
}

// NewHomepageService creates a new homepage service.
func NewHomepageService(store database.Store) *HomepageService {
	return &HomepageService{store: store}
}

// Get returns the published homepage. An unpublished homepage reads as
// an empty document.
func (s *HomepageService) Get(ctx context.Context) (*homepage.Homepage, error) {
	h, err := s.store.GetHomepage(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &homepage.Homepage{Sections: []homepage.Section{}}, nil
		}
		return nil, err
	}
	return h, nil
}

// Upsert replaces the homepage content.
func (s *HomepageService) Upsert(ctx context.Context, updatedBy string, req *homepage.UpsertRequest) (*homepage.Homepage, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrValidation)
	}

	h := &homepage.Homepage{
		Sections:  req.Sections,
		Carousel:  req.Carousel,
		UpdatedBy: updatedBy,
	}
	if err := s.store.UpsertHomepage(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}
