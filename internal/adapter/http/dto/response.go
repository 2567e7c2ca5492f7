package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// InvestorResponse represents an investor in API responses.
type InvestorResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	JoinDate   time.Time `json:"join_date"`
	IsOperator bool      `json:"is_operator"`
}

// InvestorFromDomain converts a domain investor to a response.
func InvestorFromDomain(inv *domain.Investor) *InvestorResponse {
	return &InvestorResponse{
		ID:         inv.ID,
		Name:       inv.Name,
		Email:      inv.Email,
		Phone:      inv.Phone,
		JoinDate:   inv.JoinDate,
		IsOperator: inv.IsOperator,
	}
}

// InvestorsFromDomain converts domain investors to responses.
func InvestorsFromDomain(investors []*domain.Investor) []*InvestorResponse {
	result := make([]*InvestorResponse, len(investors))
	for i, inv := range investors {
		result[i] = InvestorFromDomain(inv)
	}
	return result
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID         string          `json:"id"`
	InvestorID int64           `json:"investor_id"`
	TrancheID  string          `json:"tranche_id,omitempty"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	NAVAtTime  decimal.Decimal `json:"nav_at_time"`
	UnitsDelta decimal.Decimal `json:"units_delta"`
	Date       time.Time       `json:"date"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:         t.ID,
		InvestorID: t.InvestorID,
		TrancheID:  t.TrancheID,
		Type:       string(t.Type),
		Amount:     t.Amount,
		NAVAtTime:  t.NAVAtTime,
		UnitsDelta: t.UnitsDelta,
		Date:       t.Date,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps a transaction listing.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// FeePreviewItemResponse is one tranche's row in a fee preview.
type FeePreviewItemResponse struct {
	TrancheID     string          `json:"tranche_id"`
	InvestorID    int64           `json:"investor_id"`
	EntryDate     time.Time       `json:"entry_date"`
	EntryPrice    decimal.Decimal `json:"entry_price"`
	Units         decimal.Decimal `json:"units"`
	HighWaterMark decimal.Decimal `json:"high_water_mark"`
	YearsHeld     decimal.Decimal `json:"years_held"`
	HurdlePrice   decimal.Decimal `json:"hurdle_price"`
	Threshold     decimal.Decimal `json:"threshold"`
	ExcessProfit  decimal.Decimal `json:"excess_profit"`
	FeeAmount     decimal.Decimal `json:"fee_amount"`
	FeeUnits      decimal.Decimal `json:"fee_units"`
}

// FeePreviewResponse represents a fee preview in API responses.
type FeePreviewResponse struct {
	AsOfDate       string                    `json:"as_of_date"`
	TotalNAV       decimal.Decimal           `json:"total_nav"`
	PricePerUnit   decimal.Decimal           `json:"price_per_unit"`
	TotalFeeAmount decimal.Decimal           `json:"total_fee_amount"`
	TotalFeeUnits  decimal.Decimal           `json:"total_fee_units"`
	ConfirmToken   string                    `json:"confirm_token"`
	Items          []*FeePreviewItemResponse `json:"items"`
}

// FeePreviewFromUseCase converts a preview result to a response.
func FeePreviewFromUseCase(p *usecase.FeePreviewResult) *FeePreviewResponse {
	items := make([]*FeePreviewItemResponse, len(p.Items))
	for i, item := range p.Items {
		items[i] = &FeePreviewItemResponse{
			TrancheID:     item.TrancheID,
			InvestorID:    item.InvestorID,
			EntryDate:     item.EntryDate,
			EntryPrice:    item.EntryPrice,
			Units:         item.Units,
			HighWaterMark: item.HighWaterMark,
			YearsHeld:     item.YearsHeld,
			HurdlePrice:   item.HurdlePrice,
			Threshold:     item.Threshold,
			ExcessProfit:  item.ExcessProfit,
			FeeAmount:     item.FeeAmount,
			FeeUnits:      item.FeeUnits,
		}
	}

	return &FeePreviewResponse{
		AsOfDate:       p.AsOfDate.Format(usecase.DateLayout),
		TotalNAV:       p.TotalNAV,
		PricePerUnit:   p.PricePerUnit,
		TotalFeeAmount: p.TotalFeeAmount,
		TotalFeeUnits:  p.TotalFeeUnits,
		ConfirmToken:   p.ConfirmToken,
		Items:          items,
	}
}

// ApplyFeesResponse represents the outcome of a fee application.
type ApplyFeesResponse struct {
	TranchesCharged   int             `json:"tranches_charged"`
	TotalFeeAmount    decimal.Decimal `json:"total_fee_amount"`
	TotalFeeUnits     decimal.Decimal `json:"total_fee_units"`
	PricePerUnit      decimal.Decimal `json:"price_per_unit"`
	OperatorTrancheID string          `json:"operator_tranche_id,omitempty"`
}

// ApplyFeesFromUseCase converts an apply summary to a response.
func ApplyFeesFromUseCase(s *usecase.ApplySummary) *ApplyFeesResponse {
	return &ApplyFeesResponse{
		TranchesCharged:   s.TranchesCharged,
		TotalFeeAmount:    s.TotalFeeAmount,
		TotalFeeUnits:     s.TotalFeeUnits,
		PricePerUnit:      s.PricePerUnit,
		OperatorTrancheID: s.OperatorTrancheID,
	}
}

// EffectiveRatesResponse represents resolved fee rates.
type EffectiveRatesResponse struct {
	PerformanceFeeRate   decimal.Decimal `json:"performance_fee_rate"`
	HurdleRateAnnual     decimal.Decimal `json:"hurdle_rate_annual"`
	PerformanceFeeSource string          `json:"performance_fee_source"`
	HurdleRateSource     string          `json:"hurdle_rate_source"`
}

// EffectiveRatesFromDomain converts resolved rates to a response.
func EffectiveRatesFromDomain(r domain.EffectiveRates) *EffectiveRatesResponse {
	return &EffectiveRatesResponse{
		PerformanceFeeRate:   r.PerformanceFeeRate,
		HurdleRateAnnual:     r.HurdleRateAnnual,
		PerformanceFeeSource: string(r.PerformanceFeeSource),
		HurdleRateSource:     string(r.HurdleRateSource),
	}
}

// FeeOverrideResponse is one investor's partial override; omitted fields
// inherit the global rate.
type FeeOverrideResponse struct {
	PerformanceFeeRate *decimal.Decimal `json:"performance_fee_rate,omitempty"`
	HurdleRateAnnual   *decimal.Decimal `json:"hurdle_rate_annual,omitempty"`
}

// FeeConfigResponse represents the full fee configuration.
type FeeConfigResponse struct {
	PerformanceFeeRate decimal.Decimal               `json:"performance_fee_rate"`
	HurdleRateAnnual   decimal.Decimal               `json:"hurdle_rate_annual"`
	Overrides          map[int64]FeeOverrideResponse `json:"overrides,omitempty"`
}

// FeeConfigFromDomain converts the fee configuration to a response.
func FeeConfigFromDomain(cfg domain.FeeConfig) *FeeConfigResponse {
	resp := &FeeConfigResponse{
		PerformanceFeeRate: cfg.Global.PerformanceFeeRate,
		HurdleRateAnnual:   cfg.Global.HurdleRateAnnual,
	}
	if len(cfg.Overrides) > 0 {
		resp.Overrides = make(map[int64]FeeOverrideResponse, len(cfg.Overrides))
		for id, o := range cfg.Overrides {
			resp.Overrides[id] = FeeOverrideResponse{
				PerformanceFeeRate: o.PerformanceFeeRate,
				HurdleRateAnnual:   o.HurdleRateAnnual,
			}
		}
	}
	return resp
}

// BalanceResponse represents an investor's current position.
type BalanceResponse struct {
	InvestorID    int64           `json:"investor_id"`
	Balance       decimal.Decimal `json:"balance"`
	Invested      decimal.Decimal `json:"invested"`
	Profit        decimal.Decimal `json:"profit"`
	ProfitPercent decimal.Decimal `json:"profit_percent"`
}

// BalanceFromUseCase converts an investor balance to a response.
func BalanceFromUseCase(investorID int64, b *usecase.InvestorBalance) *BalanceResponse {
	return &BalanceResponse{
		InvestorID:    investorID,
		Balance:       b.Balance,
		Invested:      b.Invested,
		Profit:        b.Profit,
		ProfitPercent: b.ProfitPercent,
	}
}

// PerformanceResponse represents an investor's lifetime result.
type PerformanceResponse struct {
	InvestorID       int64           `json:"investor_id"`
	OriginalInvested decimal.Decimal `json:"original_invested"`
	CurrentValue     decimal.Decimal `json:"current_value"`
	TotalFeesPaid    decimal.Decimal `json:"total_fees_paid"`
	GrossReturn      decimal.Decimal `json:"gross_return"`
	NetReturn        decimal.Decimal `json:"net_return"`
}

// PerformanceFromUseCase converts a lifetime performance to a response.
func PerformanceFromUseCase(investorID int64, p *usecase.LifetimePerformance) *PerformanceResponse {
	return &PerformanceResponse{
		InvestorID:       investorID,
		OriginalInvested: p.OriginalInvested,
		CurrentValue:     p.CurrentValue,
		TotalFeesPaid:    p.TotalFeesPaid,
		GrossReturn:      p.GrossReturn,
		NetReturn:        p.NetReturn,
	}
}
