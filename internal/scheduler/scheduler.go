package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	domain "oqassets-backend/internal/domain/loan"
	loanuc "oqassets-backend/internal/usecase/loan"
)

// Ledger is the slice of the loan usecase the sweeps drive.
type Ledger interface {
	ListActive(ctx context.Context) ([]domain.Loan, error)
	AccrueInterest(ctx context.Context, loanID string) (*loanuc.LoanDTO, error)
	CheckLiquidation(ctx context.Context, loanID string) (*loanuc.LoanDTO, error)
}

// Scheduler walks all active loans on fixed intervals: a fine-grained interest
// accrual sweep and a coarser liquidation sweep. Loans are independent, so a
// single loan's failure never aborts the rest of a sweep.
type Scheduler struct {
	ledger           Ledger
	accrualEvery     time.Duration
	liquidationEvery time.Duration
	// mu keeps the two sweeps of this process from interleaving; cross-process
	// races on one loan are handled by the ledger's version check.
	mu sync.Mutex
}

func New(ledger Ledger, accrualEvery, liquidationEvery time.Duration) *Scheduler {
	return &Scheduler{
		ledger:           ledger,
		accrualEvery:     accrualEvery,
		liquidationEvery: liquidationEvery,
	}
}

// Run blocks until ctx is cancelled, firing both sweeps on their tickers.
func (s *Scheduler) Run(ctx context.Context) error {
	log.Printf("scheduler: started (accrual %s, liquidation %s)", s.accrualEvery, s.liquidationEvery)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.loop(ctx, s.accrualEvery, s.SweepAccrual)
	}()
	go func() {
		defer wg.Done()
		s.loop(ctx, s.liquidationEvery, s.SweepLiquidation)
	}()
	wg.Wait()
	return ctx.Err()
}

func (s *Scheduler) loop(ctx context.Context, every time.Duration, sweep func(context.Context) error) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if err := sweep(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("scheduler: sweep error: %v", err)
		}
	}
}

// SweepAccrual applies one period of interest to every active loan.
func (s *Scheduler) SweepAccrual(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loans, err := s.ledger.ListActive(ctx)
	if err != nil {
		return err
	}
	for i := range loans {
		if _, err := s.ledger.AccrueInterest(ctx, loans[i].LoanID); err != nil {
			if skippable(err) {
				continue
			}
			log.Printf("scheduler: accrue %s: %v", loans[i].LoanID, err)
		}
	}
	return nil
}

// SweepLiquidation force-closes any active loan past the hard LTV threshold.
func (s *Scheduler) SweepLiquidation(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loans, err := s.ledger.ListActive(ctx)
	if err != nil {
		return err
	}
	for i := range loans {
		if _, err := s.ledger.CheckLiquidation(ctx, loans[i].LoanID); err != nil {
			if skippable(err) {
				continue
			}
			log.Printf("scheduler: liquidation check %s: %v", loans[i].LoanID, err)
		}
	}
	return nil
}

// skippable: a loan that went terminal between the list and the mutation is
// not an error worth logging.
func skippable(err error) bool {
	return errors.Is(err, domain.ErrNotActive) || errors.Is(err, domain.ErrNotFound)
}
