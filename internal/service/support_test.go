package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/homepage"
	"github.com/Strob0t/ProcureDesk/internal/domain/support"
)

func TestSupportCreateAndClose(t *testing.T) {
	store := newMockStore()
	svc := NewSupportService(store)

	tk, err := svc.Create(context.Background(), "tenant-1", "user-1", &support.CreateRequest{Message: "invoice missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tk.Status != support.StatusOpen {
		t.Fatalf("expected open ticket, got %q", tk.Status)
	}

	closed, err := svc.Close(context.Background(), tk.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if closed.Status != support.StatusClosed {
		t.Fatalf("expected closed, got %q", closed.Status)
	}

	// Closing twice is refused, distinct from not-found.
	_, err = svc.Close(context.Background(), tk.ID)
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on double close, got %v", err)
	}
	_, err = svc.Close(context.Background(), "ticket-missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSupportCreateValidation(t *testing.T) {
	svc := NewSupportService(newMockStore())

	_, err := svc.Create(context.Background(), "tenant-1", "user-1", &support.CreateRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSupportListStatusFilter(t *testing.T) {
	store := newMockStore()
	svc := NewSupportService(store)

	a, _ := svc.Create(context.Background(), "tenant-1", "user-1", &support.CreateRequest{Message: "one"})
	_, _ = svc.Create(context.Background(), "tenant-2", "user-2", &support.CreateRequest{Message: "two"})
	_, _ = svc.Close(context.Background(), a.ID)

	open, err := svc.List(context.Background(), support.StatusOpen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(open) != 1 || open[0].TenantID != "tenant-2" {
		t.Fatalf("unexpected open tickets: %+v", open)
	}
}

func TestHomepageUnpublishedReadsEmpty(t *testing.T) {
	svc := NewHomepageService(newMockStore())

	h, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.Sections) != 0 {
		t.Fatalf("expected empty homepage, got %+v", h)
	}
}

func TestHomepageUpsertReplaces(t *testing.T) {
	store := newMockStore()
	svc := NewHomepageService(store)

	_, err := svc.Upsert(context.Background(), "staff-1", &homepage.UpsertRequest{
		Sections: []homepage.Section{{Name: "Featured"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h2, err := svc.Upsert(context.Background(), "staff-2", &homepage.UpsertRequest{
		Sections: []homepage.Section{{Name: "Deals"}, {Name: "New"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h2.Sections) != 2 {
		t.Fatalf("expected replacement, got %+v", h2.Sections)
	}

	got, _ := svc.Get(context.Background())
	if len(got.Sections) != 2 || got.UpdatedBy != "staff-2" {
		t.Fatalf("unexpected stored homepage: %+v", got)
	}
}

func TestHomepageUpsertValidation(t *testing.T) {
	svc := NewHomepageService(newMockStore())

	_, err := svc.Upsert(context.Background(), "staff-1", &homepage.UpsertRequest{
		Sections: []homepage.Section{{Name: ""}},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	_, err = svc.Upsert(context.Background(), "staff-1", &homepage.UpsertRequest{
		Carousel: homepage.Carousel{Mobile: []homepage.Banner{{Image: "", Link: "/x"}}},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad banner, got %v", err)
	}
}
