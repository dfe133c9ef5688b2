package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	valDomain "oqassets-backend/internal/domain/valuation"
)

func TestValuationCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewValuationRepository(db)
	ctx := context.Background()

	jobID := uuid.NewString()
	j := &valDomain.Job{JobID: jobID, DocumentID: 3, Status: valDomain.StatusPending}
	if err := repo.Create(ctx, j); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByJobID(ctx, jobID)
	if err != nil {
		t.Fatalf("GetByJobID: %v", err)
	}
	if got.DocumentID != 3 || got.Status != valDomain.StatusPending {
		t.Errorf("unexpected job: %+v", got)
	}
}

func TestValuationSave_ResultRoundtrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewValuationRepository(db)
	ctx := context.Background()

	j := &valDomain.Job{JobID: uuid.NewString(), DocumentID: 3, Status: valDomain.StatusProcessing}
	if err := repo.Create(ctx, j); err != nil {
		t.Fatalf("Create: %v", err)
	}

	j.Status = valDomain.StatusDone
	j.SuggestedValue = decimal.RequireFromString("10470.59")
	j.Confidence = decimal.RequireFromString("0.85")
	if err := j.SetSourceResults([]valDomain.SourceResult{
		{Source: "marketdata", Value: decimal.RequireFromString("10000"), Confidence: decimal.RequireFromString("0.9")},
		{Source: "comps", Value: decimal.RequireFromString("11000"), Confidence: decimal.RequireFromString("0.8")},
	}); err != nil {
		t.Fatalf("SetSourceResults: %v", err)
	}
	if err := repo.Save(ctx, j); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByJobID(ctx, j.JobID)
	if err != nil {
		t.Fatalf("GetByJobID: %v", err)
	}
	if got.Status != valDomain.StatusDone {
		t.Errorf("status not persisted: %s", got.Status)
	}
	results, err := got.SourceResults()
	if err != nil {
		t.Fatalf("SourceResults: %v", err)
	}
	if len(results) != 2 || results[0].Source != "marketdata" {
		t.Errorf("source results roundtrip: %+v", results)
	}
}

func TestValuationGet_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewValuationRepository(db)

	if _, err := repo.GetByJobID(context.Background(), uuid.NewString()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
