package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/credit"
)

func TestCreditRequestValidation(t *testing.T) {
	svc := NewCreditService(newMockStore(), nil)

	_, err := svc.Request(context.Background(), "tenant-1", "user-1", &credit.CreateRequest{Amount: 0})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreditRequestSinglePending(t *testing.T) {
	store := newMockStore()
	tenantID := seedTenant(store, 10000, 0)
	svc := NewCreditService(store, nil)

	r, err := svc.Request(context.Background(), tenantID, "user-1", &credit.CreateRequest{Amount: 5000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != credit.StatusPending {
		t.Fatalf("expected pending, got %q", r.Status)
	}

	_, err = svc.Request(context.Background(), tenantID, "user-1", &credit.CreateRequest{Amount: 3000})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict for second pending request, got %v", err)
	}
}

func TestCreditRequestAfterDecision(t *testing.T) {
	store := newMockStore()
	tenantID := seedTenant(store, 10000, 0)
	svc := NewCreditService(store, nil)

	r, err := svc.Request(context.Background(), tenantID, "user-1", &credit.CreateRequest{Amount: 5000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Decide(context.Background(), r.ID, "staff-1", &credit.DecideRequest{Action: credit.ActionReject}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The pending slot is free again.
	if _, err := svc.Request(context.Background(), tenantID, "user-1", &credit.CreateRequest{Amount: 3000}); err != nil {
		t.Fatalf("expected new request after decision, got %v", err)
	}
}

func TestCreditDecideApproveRaisesLimit(t *testing.T) {
	store := newMockStore()
	tenantID := seedTenant(store, 10000, 2000)
	svc := NewCreditService(store, nil)

	r, _ := svc.Request(context.Background(), tenantID, "user-1", &credit.CreateRequest{Amount: 5000})
	decided, err := svc.Decide(context.Background(), r.ID, "staff-1", &credit.DecideRequest{Action: credit.ActionApprove, Note: "good standing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decided.Status != credit.StatusApproved || decided.DecidedBy != "staff-1" {
		t.Fatalf("unexpected decision record: %+v", decided)
	}

	tn, _ := store.GetTenant(context.Background(), tenantID)
	if tn.CreditLimit != 15000 {
		t.Fatalf("expected limit raised to 15000, got %d", tn.CreditLimit)
	}
	if tn.CreditUsed != 2000 {
		t.Fatalf("approval must not touch credit_used, got %d", tn.CreditUsed)
	}
}

func TestCreditDecideRejectKeepsLimit(t *testing.T) {
	store := newMockStore()
	tenantID := seedTenant(store, 10000, 0)
	svc := NewCreditService(store, nil)

	r, _ := svc.Request(context.Background(), tenantID, "user-1", &credit.CreateRequest{Amount: 5000})
	decided, err := svc.Decide(context.Background(), r.ID, "staff-1", &credit.DecideRequest{Action: credit.ActionReject})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decided.Status != credit.StatusRejected {
		t.Fatalf("expected rejected, got %q", decided.Status)
	}

	tn, _ := store.GetTenant(context.Background(), tenantID)
	if tn.CreditLimit != 10000 {
		t.Fatalf("rejection must not change the limit, got %d", tn.CreditLimit)
	}
}

func TestCreditDecideExactlyOnce(t *testing.T) {
	store := newMockStore()
	tenantID := seedTenant(store, 10000, 0)
	svc := NewCreditService(store, nil)

	r, _ := svc.Request(context.Background(), tenantID, "user-1", &credit.CreateRequest{Amount: 5000})

	// Two staff race to decide; only one decision lands.
	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, action := range []credit.Action{credit.ActionApprove, credit.ActionApprove} {
		wg.Add(1)
		go func(a credit.Action) {
			defer wg.Done()
			_, err := svc.Decide(context.Background(), r.ID, "staff-1", &credit.DecideRequest{Action: a})
			results <- err
		}(action)
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, domain.ErrInvalidState) {
			t.Fatalf("unexpected error kind: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly 1 successful decision, got %d", succeeded)
	}

	// A double approval would have raised the limit twice.
	tn, _ := store.GetTenant(context.Background(), tenantID)
	if tn.CreditLimit != 15000 {
		t.Fatalf("expected limit 15000 after single approval, got %d", tn.CreditLimit)
	}
}

func TestCreditDecideValidation(t *testing.T) {
	svc := NewCreditService(newMockStore(), nil)

	_, err := svc.Decide(context.Background(), "req-1", "staff-1", &credit.DecideRequest{Action: "maybe"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreditDecideNotFound(t *testing.T) {
	svc := NewCreditService(newMockStore(), nil)

	_, err := svc.Decide(context.Background(), "req-missing", "staff-1", &credit.DecideRequest{Action: credit.ActionApprove})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
