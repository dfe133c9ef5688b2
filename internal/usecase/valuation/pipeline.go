package valuation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"oqassets-backend/internal/domain/document"
	"oqassets-backend/internal/domain/event"
	"oqassets-backend/internal/domain/uow"
	domain "oqassets-backend/internal/domain/valuation"
	"oqassets-backend/internal/oracle"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stage progress percentages, emitted to observers in order.
const (
	progressAnalyze   = 10
	progressExtract   = 30
	progressConsult   = 60
	progressAggregate = 90
	progressDone      = 100
)

type JobDTO struct {
	JobID          string                `json:"job_id"`
	DocumentID     string                `json:"document_id"`
	Status         string                `json:"status"`
	SuggestedValue decimal.Decimal       `json:"suggested_value"`
	Confidence     decimal.Decimal       `json:"confidence"`
	Sources        []domain.SourceResult `json:"sources,omitempty"`
	Error          string                `json:"error,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

// Pipeline drives a valuation job through its stages to a terminal state.
// Jobs run on a detached context; the enqueuing request does not wait.
type Pipeline struct {
	jobs     domain.Repository
	docs     document.Repository
	tx       uow.UnitOfWork
	analyzer Analyzer
	sources  []oracle.Source
	agg      *oracle.Aggregator
	sink     event.Sink
	// oracleTimeout bounds each individual source call; runTimeout bounds the
	// whole job once detached from the request.
	oracleTimeout time.Duration
	runTimeout    time.Duration
}

func NewPipeline(jobs domain.Repository, docs document.Repository, tx uow.UnitOfWork,
	analyzer Analyzer, sources []oracle.Source, agg *oracle.Aggregator, sink event.Sink,
	oracleTimeout, runTimeout time.Duration) *Pipeline {
	if analyzer == nil {
		analyzer = &SimulatedAnalyzer{}
	}
	return &Pipeline{
		jobs: jobs, docs: docs, tx: tx, analyzer: analyzer,
		sources: sources, agg: agg, sink: sink,
		oracleTimeout: oracleTimeout, runTimeout: runTimeout,
	}
}

// Enqueue records a pending job for the document. The caller is expected to
// hand the returned job id to Process on a separate goroutine.
func (p *Pipeline) Enqueue(ctx context.Context, documentID string) (*JobDTO, error) {
	doc, err := p.docs.GetByDocumentID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, document.ErrNotFound
		}
		return nil, err
	}
	if doc.Status == document.StatusMinted {
		return nil, fmt.Errorf("document %s is already minted", documentID)
	}

	j := &domain.Job{
		JobID:      uuid.NewString(),
		DocumentID: doc.ID,
		Status:     domain.StatusPending,
	}
	if err := p.jobs.Create(ctx, j); err != nil {
		return nil, err
	}
	return toJobDTO(j, doc.DocumentID), nil
}

// Process is the fire-and-forget entrypoint: it detaches from the request
// context and runs the job to a terminal state.
func (p *Pipeline) Process(jobID string) {
	ctx, cancel := context.WithTimeout(context.Background(), p.runTimeout)
	defer cancel()
	if err := p.Run(ctx, jobID); err != nil {
		log.Printf("valuation: job %s: %v", jobID, err)
	}
}

// Run executes the staged pipeline. Any stage failure lands the job in
// manual_review with a synthetic zero-confidence "Error" source; the document
// is only advanced to valued when the job lands done.
func (p *Pipeline) Run(ctx context.Context, jobID string) error {
	j, err := p.jobs.GetByJobID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	doc, err := p.docs.GetByID(ctx, j.DocumentID)
	if err != nil {
		return err
	}

	j.Status = domain.StatusProcessing
	if err := p.jobs.Save(ctx, j); err != nil {
		return err
	}

	p.emit(ctx, j, doc, progressAnalyze, "analyzing document content", nil)
	if err := p.analyzer.AnalyzeContent(ctx, doc); err != nil {
		return p.fail(ctx, j, doc, err)
	}

	p.emit(ctx, j, doc, progressExtract, "extracting financial data", nil)
	base, err := p.analyzer.ExtractFinancials(ctx, doc)
	if err != nil {
		return p.fail(ctx, j, doc, err)
	}

	p.emit(ctx, j, doc, progressConsult, "consulting oracle sources", nil)
	req := oracle.Request{DocHash: doc.DocHash, AssetType: doc.AssetType, ExtractedValue: base}
	estimates := oracle.Consult(ctx, p.sources, req, p.oracleTimeout)

	p.emit(ctx, j, doc, progressAggregate, "aggregating oracle estimates", nil)
	agg, err := p.agg.Aggregate(estimates)
	if err != nil {
		return p.fail(ctx, j, doc, err)
	}

	results := make([]domain.SourceResult, 0, len(estimates))
	for _, e := range estimates {
		results = append(results, domain.SourceResult{
			Source: e.Source, Value: e.Value, Confidence: e.Confidence.Round(2),
		})
	}
	j.SuggestedValue = agg.SuggestedValue
	j.Confidence = agg.Confidence
	if err := j.SetSourceResults(results); err != nil {
		return p.fail(ctx, j, doc, err)
	}

	if p.agg.NeedsReview(agg.Confidence) {
		j.Status = domain.StatusManualReview
		if err := p.jobs.Save(ctx, j); err != nil {
			return err
		}
	} else {
		j.Status = domain.StatusDone
		doc.Status = document.StatusValued
		doc.SuggestedValue = agg.SuggestedValue
		doc.Confidence = agg.Confidence
		doc.StatusUpdatedAt = time.Now().UTC()
		// Document advance and job completion commit together; a failed job
		// save must not leave the document already valued.
		err := p.tx.WithinTx(ctx, func(r uow.Repos) error {
			if err := r.Documents.Save(ctx, doc); err != nil {
				return err
			}
			return r.Valuations.Save(ctx, j)
		})
		if err != nil {
			return err
		}
	}

	msg := "valuation complete"
	if j.Status == domain.StatusManualReview {
		msg = "confidence too low, queued for manual review"
	}
	p.emit(ctx, j, doc, progressDone, msg, &agg)
	return nil
}

// Get returns a job with its document's public id resolved.
func (p *Pipeline) Get(ctx context.Context, jobID string) (*JobDTO, error) {
	j, err := p.jobs.GetByJobID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	doc, err := p.docs.GetByID(ctx, j.DocumentID)
	if err != nil {
		return nil, err
	}
	return toJobDTO(j, doc.DocumentID), nil
}

// fail is the single terminal error path: manual review with a synthetic
// zero-confidence source and the reason attached to the final broadcast.
func (p *Pipeline) fail(ctx context.Context, j *domain.Job, doc *document.Document, cause error) error {
	j.Status = domain.StatusManualReview
	j.ErrorMessage = cause.Error()
	_ = j.SetSourceResults([]domain.SourceResult{{
		Source: "Error", Value: decimal.Zero, Confidence: decimal.Zero,
	}})
	if err := p.jobs.Save(ctx, j); err != nil {
		return errors.Join(cause, err)
	}
	p.emit(ctx, j, doc, progressDone, "valuation failed: "+cause.Error(), nil)
	return cause
}

func (p *Pipeline) emit(ctx context.Context, j *domain.Job, doc *document.Document, progress int, msg string, result *oracle.Aggregate) {
	if p.sink == nil {
		return
	}
	ev := event.ValuationEvent{
		JobID:      j.JobID,
		DocumentID: doc.DocumentID,
		Status:     string(j.Status),
		Progress:   progress,
		Message:    msg,
	}
	if result != nil {
		v, c := result.SuggestedValue, result.Confidence
		ev.SuggestedValue, ev.Confidence = &v, &c
	}
	if err := p.sink.PublishValuation(ctx, ev); err != nil {
		log.Printf("valuation: publish progress for %s: %v", j.JobID, err)
	}
}

func toJobDTO(j *domain.Job, documentID string) *JobDTO {
	sources, err := j.SourceResults()
	if err != nil {
		log.Printf("valuation: decode sources for %s: %v", j.JobID, err)
	}
	return &JobDTO{
		JobID:          j.JobID,
		DocumentID:     documentID,
		Status:         string(j.Status),
		SuggestedValue: j.SuggestedValue,
		Confidence:     j.Confidence,
		Sources:        sources,
		Error:          j.ErrorMessage,
		CreatedAt:      j.CreatedAt,
	}
}
