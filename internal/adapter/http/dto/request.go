package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// ParseDate parses a calendar date in the API's YYYY-MM-DD format.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, domain.ErrInvalidDate
	}
	d, err := time.Parse(usecase.DateLayout, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return d, nil
}

// AddInvestorRequest represents a request to register an investor.
type AddInvestorRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	JoinDate string `json:"join_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddInvestorRequest) ToUseCaseInput() (usecase.AddInvestorInput, error) {
	input := usecase.AddInvestorInput{
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
	}
	if r.JoinDate != "" {
		d, err := ParseDate(r.JoinDate)
		if err != nil {
			return usecase.AddInvestorInput{}, err
		}
		input.JoinDate = d
	}
	return input, nil
}

// UpdateInvestorRequest carries partial contact updates.
type UpdateInvestorRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateInvestorRequest) ToUseCaseInput() usecase.UpdateInvestorContactInput {
	return usecase.UpdateInvestorContactInput{
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
	}
}

// DepositRequest represents a deposit.
type DepositRequest struct {
	InvestorID    int64           `json:"investor_id"`
	Amount        decimal.Decimal `json:"amount"`
	TotalNAVAfter decimal.Decimal `json:"total_nav_after"`
	Date          string          `json:"date"`
}

// ToUseCaseInput converts to use case input.
func (r *DepositRequest) ToUseCaseInput() (usecase.DepositInput, error) {
	d, err := ParseDate(r.Date)
	if err != nil {
		return usecase.DepositInput{}, err
	}
	return usecase.DepositInput{
		InvestorID:    r.InvestorID,
		Amount:        r.Amount,
		TotalNAVAfter: r.TotalNAVAfter,
		Date:          d,
	}, nil
}

// WithdrawRequest represents a withdrawal.
type WithdrawRequest struct {
	InvestorID    int64           `json:"investor_id"`
	Amount        decimal.Decimal `json:"amount"`
	TotalNAVAfter decimal.Decimal `json:"total_nav_after"`
	Date          string          `json:"date"`
}

// ToUseCaseInput converts to use case input.
func (r *WithdrawRequest) ToUseCaseInput() (usecase.WithdrawInput, error) {
	d, err := ParseDate(r.Date)
	if err != nil {
		return usecase.WithdrawInput{}, err
	}
	return usecase.WithdrawInput{
		InvestorID:    r.InvestorID,
		Amount:        r.Amount,
		TotalNAVAfter: r.TotalNAVAfter,
		Date:          d,
	}, nil
}

// NAVUpdateRequest represents a fund-wide NAV mark.
type NAVUpdateRequest struct {
	TotalNAV decimal.Decimal `json:"total_nav"`
	Date     string          `json:"date"`
}

// FeePreviewRequest represents a fee preview.
type FeePreviewRequest struct {
	AsOfDate string          `json:"as_of_date"`
	TotalNAV decimal.Decimal `json:"total_nav"`
}

// ApplyFeesRequest represents a confirmed fee application.
type ApplyFeesRequest struct {
	AsOfDate          string          `json:"as_of_date"`
	TotalNAV          decimal.Decimal `json:"total_nav"`
	ConfirmToken      string          `json:"confirm_token"`
	AcknowledgeRisk   bool            `json:"acknowledge_risk"`
	AcknowledgeBackup bool            `json:"acknowledge_backup"`
}

// ToUseCaseInput converts to use case input.
func (r *ApplyFeesRequest) ToUseCaseInput() (usecase.ApplyFeesInput, error) {
	d, err := ParseDate(r.AsOfDate)
	if err != nil {
		return usecase.ApplyFeesInput{}, err
	}
	return usecase.ApplyFeesInput{
		AsOfDate:     d,
		TotalNAV:     r.TotalNAV,
		ConfirmToken: r.ConfirmToken,
		Acknowledgements: usecase.Acknowledgements{
			Risk:   r.AcknowledgeRisk,
			Backup: r.AcknowledgeBackup,
		},
	}, nil
}

// UpdateFeeConfigRequest replaces the global fee rates.
type UpdateFeeConfigRequest struct {
	PerformanceFeeRate decimal.Decimal `json:"performance_fee_rate"`
	HurdleRateAnnual   decimal.Decimal `json:"hurdle_rate_annual"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateFeeConfigRequest) ToUseCaseInput() domain.FeeRates {
	return domain.FeeRates{
		PerformanceFeeRate: r.PerformanceFeeRate,
		HurdleRateAnnual:   r.HurdleRateAnnual,
	}
}

// UpsertFeeOverrideRequest sets a per-investor fee override. Omitted fields
// inherit the global rate.
type UpsertFeeOverrideRequest struct {
	PerformanceFeeRate *decimal.Decimal `json:"performance_fee_rate,omitempty"`
	HurdleRateAnnual   *decimal.Decimal `json:"hurdle_rate_annual,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpsertFeeOverrideRequest) ToUseCaseInput() domain.FeeOverride {
	return domain.FeeOverride{
		PerformanceFeeRate: r.PerformanceFeeRate,
		HurdleRateAnnual:   r.HurdleRateAnnual,
	}
}
