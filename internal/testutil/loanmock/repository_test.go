package loanmock

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	domain "oqassets-backend/internal/domain/loan"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	l := &domain.Loan{LoanID: "a1b2"}

	// Uses provided func
	called := false
	wantErr := errors.New("boom")
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.Loan) error {
			called = true
			if gotCtx != ctx {
				t.Fatalf("Create ctx mismatch")
			}
			if got != l {
				t.Fatalf("Create arg mismatch")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, l); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	// Default (nil func) → no-op, nil error
	m = &Repo{}
	if err := m.Create(ctx, l); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
}

func TestRepo_GetByLoanID(t *testing.T) {
	ctx := context.Background()
	want := &domain.Loan{LoanID: "c3d4"}

	// Uses provided func
	called := false
	m := &Repo{
		GetByLoanIDFn: func(gotCtx context.Context, loanID string) (*domain.Loan, error) {
			called = true
			if gotCtx != ctx {
				t.Fatalf("GetByLoanID ctx mismatch")
			}
			if loanID != "c3d4" {
				t.Fatalf("GetByLoanID loanID mismatch: got %s", loanID)
			}
			return want, nil
		},
	}
	got, err := m.GetByLoanID(ctx, "c3d4")
	if err != nil {
		t.Fatalf("GetByLoanID: unexpected err: %v", err)
	}
	if got != want {
		t.Fatalf("GetByLoanID: want %+v, got %+v", want, got)
	}
	if !called {
		t.Fatalf("GetByLoanIDFn not called")
	}

	// Default (nil func) → record not found
	m = &Repo{}
	got, err = m.GetByLoanID(ctx, "c3d4")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByLoanID default: want gorm.ErrRecordNotFound, got %v", err)
	}
	if got != nil {
		t.Fatalf("GetByLoanID default: want nil loan, got %+v", got)
	}
}

func TestRepo_GetActiveByAssetID(t *testing.T) {
	ctx := context.Background()
	want := &domain.Loan{LoanID: "e5f6", AssetID: "a-1"}

	called := false
	m := &Repo{
		GetActiveByAssetIDFn: func(gotCtx context.Context, assetID string) (*domain.Loan, error) {
			called = true
			if assetID != "a-1" {
				t.Fatalf("GetActiveByAssetID assetID mismatch: got %s", assetID)
			}
			return want, nil
		},
	}
	got, err := m.GetActiveByAssetID(ctx, "a-1")
	if err != nil {
		t.Fatalf("GetActiveByAssetID: unexpected err: %v", err)
	}
	if got != want {
		t.Fatalf("GetActiveByAssetID: want %+v, got %+v", want, got)
	}
	if !called {
		t.Fatalf("GetActiveByAssetIDFn not called")
	}

	// Default → record not found
	m = &Repo{}
	if _, err = m.GetActiveByAssetID(ctx, "a-1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetActiveByAssetID default: want gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestRepo_Save(t *testing.T) {
	ctx := context.Background()
	l := &domain.Loan{LoanID: "aa11"}

	called := false
	wantErr := errors.New("save-fail")
	m := &Repo{
		SaveFn: func(gotCtx context.Context, got *domain.Loan) error {
			called = true
			if got != l {
				t.Fatalf("Save arg mismatch")
			}
			return wantErr
		},
	}
	if err := m.Save(ctx, l); !errors.Is(err, wantErr) {
		t.Fatalf("Save: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("SaveFn not called")
	}

	// Default (nil func) → no-op, nil error
	m = &Repo{}
	if err := m.Save(ctx, l); err != nil {
		t.Fatalf("Save default: want nil, got %v", err)
	}
}

func TestRepo_UpdateWithVersion_DefaultBumpsVersion(t *testing.T) {
	ctx := context.Background()
	l := &domain.Loan{LoanID: "bb22", Version: 3}

	m := &Repo{}
	if err := m.UpdateWithVersion(ctx, l); err != nil {
		t.Fatalf("UpdateWithVersion default: want nil, got %v", err)
	}
	if l.Version != 4 {
		t.Fatalf("UpdateWithVersion default: want version 4, got %d", l.Version)
	}

	// Provided func wins and may refuse the write
	m = &Repo{
		UpdateWithVersionFn: func(context.Context, *domain.Loan) error {
			return domain.ErrStale
		},
	}
	if err := m.UpdateWithVersion(ctx, l); !errors.Is(err, domain.ErrStale) {
		t.Fatalf("UpdateWithVersion: want ErrStale, got %v", err)
	}
}

func TestRepo_ListByStatus(t *testing.T) {
	ctx := context.Background()
	want := []domain.Loan{{LoanID: "cc33"}, {LoanID: "dd44"}}

	m := &Repo{
		ListByStatusFn: func(gotCtx context.Context, st domain.Status) ([]domain.Loan, error) {
			if st != domain.StatusActive {
				t.Fatalf("ListByStatus status mismatch: got %s", st)
			}
			return want, nil
		},
	}
	got, err := m.ListByStatus(ctx, domain.StatusActive)
	if err != nil {
		t.Fatalf("ListByStatus: unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByStatus: want 2 loans, got %d", len(got))
	}

	// Default → empty, nil error
	m = &Repo{}
	got, err = m.ListByStatus(ctx, domain.StatusActive)
	if err != nil || got != nil {
		t.Fatalf("ListByStatus default: want nil/nil, got %v/%v", got, err)
	}
}
