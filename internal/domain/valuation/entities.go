package valuation

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("valuation job not found")
	// ErrNotDone: acceptance attempted on a job that has no auto-accepted result.
	ErrNotDone = errors.New("valuation job is not done")
)

type Status string

const (
	StatusPending      Status = "pending"
	StatusProcessing   Status = "processing"
	StatusDone         Status = "done"
	StatusManualReview Status = "manual_review"
)

// SourceResult is one oracle source's contribution, as persisted on the job.
type SourceResult struct {
	Source     string          `json:"source"`
	Value      decimal.Decimal `json:"value"`
	Confidence decimal.Decimal `json:"confidence"`
}

// Job tracks one valuation attempt for a document. Written only by the
// valuation pipeline.
type Job struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	JobID          string          `gorm:"size:36;uniqueIndex:ux_valuation_jobs_job_id" json:"job_id"`
	DocumentID     uint64          `gorm:"index:idx_valuation_jobs_document" json:"-"`
	SuggestedValue decimal.Decimal `gorm:"type:decimal(18,2)" json:"suggested_value"`
	Confidence     decimal.Decimal `gorm:"type:decimal(4,2)" json:"confidence"`
	// Sources holds the JSON-encoded []SourceResult consulted for this job.
	Sources      string    `gorm:"type:text" json:"-"`
	Status       Status    `gorm:"type:enum('pending','processing','done','manual_review');default:'pending'" json:"status"`
	ErrorMessage string    `gorm:"type:text;column:error_message" json:"error,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Job) TableName() string { return "valuation_jobs" }

func (j *Job) SetSourceResults(results []SourceResult) error {
	b, err := json.Marshal(results)
	if err != nil {
		return err
	}
	j.Sources = string(b)
	return nil
}

func (j *Job) SourceResults() ([]SourceResult, error) {
	if j.Sources == "" {
		return nil, nil
	}
	var out []SourceResult
	if err := json.Unmarshal([]byte(j.Sources), &out); err != nil {
		return nil, err
	}
	return out, nil
}
