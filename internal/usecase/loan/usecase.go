package loan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"oqassets-backend/internal/domain/asset"
	"oqassets-backend/internal/domain/event"
	domain "oqassets-backend/internal/domain/loan"
	"oqassets-backend/internal/domain/uow"
	"oqassets-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	hundred        = decimal.NewFromInt(100)
	daysPerYear    = decimal.NewFromInt(365)
	minutesPerYear = decimal.NewFromInt(365 * 24 * 60)
)

// casRetries bounds the re-read/re-apply loop when a concurrent sweep or
// repayment wins the version race.
const casRetries = 3

// Thresholds are LTV percentages: admission cap, soft warning, hard close.
type Thresholds struct {
	MaxLTV       decimal.Decimal
	WarnLTV      decimal.Decimal
	LiquidateLTV decimal.Decimal
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxLTV:       decimal.NewFromInt(80),
		WarnLTV:      decimal.NewFromInt(85),
		LiquidateLTV: decimal.NewFromInt(90),
	}
}

// Usecase is the loan ledger: the only writer of loan records.
type Usecase struct {
	loans domain.Repository
	uow   uow.UnitOfWork
	sink  event.Sink
	model LTVModel
	th    Thresholds
}

func NewUsecase(loans domain.Repository, tx uow.UnitOfWork, sink event.Sink, model LTVModel, th Thresholds) *Usecase {
	if model == nil {
		model = AnchoredLTV{}
	}
	return &Usecase{loans: loans, uow: tx, sink: sink, model: model, th: th}
}

// Create admits a loan against a minted asset. The asset is read under a row
// lock inside the transaction, so the one-active-loan check and the insert
// serialize across concurrent requests; a plain snapshot read would let two
// admissions both see "no active loan" and both commit.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if in.UserAddress == "" || in.AssetID == "" || in.Principal.Sign() <= 0 || in.AnnualRate.Sign() <= 0 {
		return nil, errors.New("invalid input")
	}

	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Assets.LockByAssetID(ctx, in.AssetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return asset.ErrNotFound
			}
			return err
		}
		if !strings.EqualFold(a.OwnerAddress, in.UserAddress) {
			return asset.ErrNotOwner
		}

		_, err = r.Loans.GetActiveByAssetID(ctx, a.AssetID)
		switch {
		case err == nil:
			return domain.ErrAssetCollateralized
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		ltv := in.Principal.Div(a.FaceValue).Mul(hundred).Round(4)
		if ltv.GreaterThan(u.th.MaxLTV) {
			return fmt.Errorf("%w: computed LTV %s%% over cap %s%%", domain.ErrLTVTooHigh, ltv, u.th.MaxLTV)
		}

		l := &domain.Loan{
			LoanID:          id.NewID32(),
			UserAddress:     strings.ToLower(in.UserAddress),
			AssetID:         a.AssetID,
			Principal:       in.Principal,
			AccruedInterest: decimal.Zero,
			AnnualRate:      in.AnnualRate,
			LTV:             ltv,
			CurrentLTV:      ltv,
			Status:          domain.StatusActive,
			StatusUpdatedAt: time.Now().UTC(),
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}

// ListActive feeds the scheduler sweeps.
func (u *Usecase) ListActive(ctx context.Context) ([]domain.Loan, error) {
	return u.loans.ListByStatus(ctx, domain.StatusActive)
}

// AccrueInterest applies one sweep period's interest:
//
//	principal * (rate/100) / (365*24*60)
//
// i.e. one minute of the annual rate. The increment is added to the principal
// (upstream-observable behavior) and mirrored into AccruedInterest.
func (u *Usecase) AccrueInterest(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.mutate(ctx, loanID, func(l *domain.Loan) error {
		if l.Status != domain.StatusActive {
			return domain.ErrNotActive
		}
		interest := l.Principal.Mul(l.AnnualRate).Div(hundred).Div(minutesPerYear)
		l.Principal = l.Principal.Add(interest)
		l.AccruedInterest = l.AccruedInterest.Add(interest)
		return u.refreshCurrentLTV(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	if l.CurrentLTV.GreaterThan(u.th.WarnLTV) {
		u.publishRisk(ctx, l, event.SeverityWarning,
			fmt.Sprintf("loan LTV %s%% above warning threshold %s%%", l.CurrentLTV, u.th.WarnLTV))
	}
	return toDTO(l), nil
}

// CheckLiquidation recomputes the current LTV and force-closes the loan when
// it breaches the hard threshold. Liquidation is terminal.
func (u *Usecase) CheckLiquidation(ctx context.Context, loanID string) (*LoanDTO, error) {
	liquidated := false
	l, err := u.mutate(ctx, loanID, func(l *domain.Loan) error {
		liquidated = false
		if l.Status != domain.StatusActive {
			return domain.ErrNotActive
		}
		if err := u.refreshCurrentLTV(ctx, l); err != nil {
			return err
		}
		if l.CurrentLTV.GreaterThan(u.th.LiquidateLTV) {
			l.Status = domain.StatusLiquidated
			l.StatusUpdatedAt = time.Now().UTC()
			liquidated = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if liquidated {
		u.publishRisk(ctx, l, event.SeverityCritical,
			fmt.Sprintf("loan liquidated at LTV %s%% (threshold %s%%)", l.CurrentLTV, u.th.LiquidateLTV))
	}
	return toDTO(l), nil
}

// Repay settles or reduces an active loan. Amounts covering the total owed
// (principal plus pro-rata interest since creation) close the loan; smaller
// amounts reduce the principal and leave it active.
func (u *Usecase) Repay(ctx context.Context, in RepayInput) (*LoanDTO, error) {
	if in.Amount.Sign() <= 0 {
		return nil, errors.New("invalid input")
	}
	now := time.Now().UTC()
	l, err := u.mutate(ctx, in.LoanID, func(l *domain.Loan) error {
		if l.Status != domain.StatusActive {
			return domain.ErrNotActive
		}
		if in.Amount.GreaterThanOrEqual(TotalOwed(l, now)) {
			l.Status = domain.StatusRepaid
			l.StatusUpdatedAt = now
			return nil
		}
		l.Principal = l.Principal.Sub(in.Amount)
		return u.refreshCurrentLTV(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

// TotalOwed is the settlement amount at a point in time, computed
// independently of the accrual sweeps: principal + principal*rate*days/365.
func TotalOwed(l *domain.Loan, at time.Time) decimal.Decimal {
	days := decimal.NewFromFloat(at.Sub(l.CreatedAt).Hours() / 24)
	if days.Sign() < 0 {
		days = decimal.Zero
	}
	interest := l.Principal.Mul(l.AnnualRate).Div(hundred).Mul(days).Div(daysPerYear)
	return l.Principal.Add(interest).Round(2)
}

// mutate runs a read-modify-write cycle under the optimistic version check,
// re-reading and re-applying fn when a concurrent writer bumped the version.
func (u *Usecase) mutate(ctx context.Context, loanID string, fn func(l *domain.Loan) error) (*domain.Loan, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		l, err := u.loans.GetByLoanID(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		if err := fn(l); err != nil {
			return nil, err
		}
		switch err := u.loans.UpdateWithVersion(ctx, l); {
		case err == nil:
			return l, nil
		case !errors.Is(err, domain.ErrStale):
			return nil, err
		}
	}
	return nil, domain.ErrStale
}

func (u *Usecase) refreshCurrentLTV(ctx context.Context, l *domain.Loan) error {
	cur, err := u.model.CurrentLTV(ctx, l)
	if err != nil {
		return err
	}
	l.CurrentLTV = cur.Round(4)
	return nil
}

func (u *Usecase) publishRisk(ctx context.Context, l *domain.Loan, sev event.Severity, msg string) {
	if u.sink == nil {
		return
	}
	ev := event.RiskEvent{
		LoanID:      l.LoanID,
		UserAddress: l.UserAddress,
		Severity:    sev,
		Message:     msg,
		CurrentLTV:  l.CurrentLTV,
	}
	if err := u.sink.PublishRisk(ctx, ev); err != nil {
		log.Printf("loan: publish risk event for %s: %v", l.LoanID, err)
	}
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:          l.LoanID,
		UserAddress:     l.UserAddress,
		AssetID:         l.AssetID,
		Principal:       l.Principal.Round(2),
		AccruedInterest: l.AccruedInterest.Round(2),
		AnnualRate:      l.AnnualRate,
		LTV:             l.LTV,
		CurrentLTV:      l.CurrentLTV,
		Status:          string(l.Status),
		CreatedAt:       l.CreatedAt,
	}
}
