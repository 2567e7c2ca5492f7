package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
)

// ReportUseCase computes read-only derived reports for the reporting layer.
type ReportUseCase struct {
	coord *Coordinator
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(coord *Coordinator) *ReportUseCase {
	return &ReportUseCase{coord: coord}
}

// InvestorBalance is the investor's current-period position.
type InvestorBalance struct {
	Balance       decimal.Decimal
	Invested      decimal.Decimal
	Profit        decimal.Decimal
	ProfitPercent decimal.Decimal
}

// LifetimePerformance is the investor's position against the immutable
// lifetime baseline. GrossReturn adds fees back; both returns are ratios.
type LifetimePerformance struct {
	OriginalInvested decimal.Decimal
	CurrentValue     decimal.Decimal
	TotalFeesPaid    decimal.Decimal
	GrossReturn      decimal.Decimal
	NetReturn        decimal.Decimal
}

// GetInvestorBalance values the investor's units at the given NAV and reports
// profit against the current invested value.
func (uc *ReportUseCase) GetInvestorBalance(ctx context.Context, investorID int64, totalNAV decimal.Decimal) (*InvestorBalance, error) {
	var out *InvestorBalance

	err := uc.coord.Read(ctx, func(l *domain.Ledger) error {
		if _, err := l.FindInvestor(investorID); err != nil {
			return err
		}

		out = &InvestorBalance{
			Balance:       decimal.Zero,
			Invested:      decimal.Zero,
			Profit:        decimal.Zero,
			ProfitPercent: decimal.Zero,
		}

		tranches := l.TranchesOf(investorID)
		if len(tranches) == 0 {
			return nil
		}

		price, err := domain.PricePerUnit(totalNAV, l.TotalUnits())
		if err != nil {
			return err
		}

		for _, t := range tranches {
			out.Balance = out.Balance.Add(t.MarketValue(price))
			out.Invested = out.Invested.Add(t.InvestedValue)
		}

		out.Profit = out.Balance.Sub(out.Invested)
		if out.Invested.IsPositive() {
			out.ProfitPercent = out.Profit.Div(out.Invested).Mul(decimal.NewFromInt(100))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// GetLifetimePerformance reports the investor's lifetime result: what they
// originally put in, what it is worth now, the fees they paid along the way,
// and gross/net return ratios against the original investment.
func (uc *ReportUseCase) GetLifetimePerformance(ctx context.Context, investorID int64, totalNAV decimal.Decimal) (*LifetimePerformance, error) {
	var out *LifetimePerformance

	err := uc.coord.Read(ctx, func(l *domain.Ledger) error {
		if _, err := l.FindInvestor(investorID); err != nil {
			return err
		}

		out = &LifetimePerformance{
			OriginalInvested: decimal.Zero,
			CurrentValue:     decimal.Zero,
			TotalFeesPaid:    decimal.Zero,
			GrossReturn:      decimal.Zero,
			NetReturn:        decimal.Zero,
		}

		tranches := l.TranchesOf(investorID)
		if len(tranches) == 0 {
			return nil
		}

		price, err := domain.PricePerUnit(totalNAV, l.TotalUnits())
		if err != nil {
			return err
		}

		for _, t := range tranches {
			out.OriginalInvested = out.OriginalInvested.Add(t.OriginalInvestedValue)
			out.CurrentValue = out.CurrentValue.Add(t.MarketValue(price))
			out.TotalFeesPaid = out.TotalFeesPaid.Add(t.CumulativeFeesPaid)
		}

		if out.OriginalInvested.IsPositive() {
			out.NetReturn = out.CurrentValue.Sub(out.OriginalInvested).Div(out.OriginalInvested)
			out.GrossReturn = out.CurrentValue.Add(out.TotalFeesPaid).Sub(out.OriginalInvested).Div(out.OriginalInvested)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
