package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/metrics"
)

// FeeUseCase handles the two-phase performance-fee workflow and fee
// configuration.
type FeeUseCase struct {
	coord   *Coordinator
	idGen   IDGenerator
	metrics *metrics.Metrics
}

// NewFeeUseCase creates a new FeeUseCase. metrics may be nil.
func NewFeeUseCase(coord *Coordinator, idGen IDGenerator, m *metrics.Metrics) *FeeUseCase {
	return &FeeUseCase{coord: coord, idGen: idGen, metrics: m}
}

// FeePreviewResult is the outcome of a fee preview: per-tranche items, batch
// totals and the confirm token binding them to the exact ledger state and fee
// configuration at preview time.
type FeePreviewResult struct {
	AsOfDate       time.Time
	ConfirmToken   string
	Items          []domain.FeePreview
	TotalNAV       decimal.Decimal
	PricePerUnit   decimal.Decimal
	TotalFeeAmount decimal.Decimal
	TotalFeeUnits  decimal.Decimal
}

// Acknowledgements are the caller-supplied safety gates for fee application.
type Acknowledgements struct {
	Risk   bool
	Backup bool
}

// ApplyFeesInput represents input for fee application.
type ApplyFeesInput struct {
	AsOfDate         time.Time
	ConfirmToken     string
	Acknowledgements Acknowledgements
	TotalNAV         decimal.Decimal
}

// ApplySummary reports the outcome of a confirmed fee application.
type ApplySummary struct {
	OperatorTrancheID string
	TranchesCharged   int
	PricePerUnit      decimal.Decimal
	TotalFeeAmount    decimal.Decimal
	TotalFeeUnits     decimal.Decimal
}

// PreviewFees computes the performance fee for every non-operator tranche as
// of the given date and NAV, without mutating anything.
func (uc *FeeUseCase) PreviewFees(ctx context.Context, asOf time.Time, totalNAV decimal.Decimal) (*FeePreviewResult, error) {
	if err := domain.ValidateDate(asOf); err != nil {
		return nil, err
	}

	var result *FeePreviewResult

	err := uc.coord.Read(ctx, func(l *domain.Ledger) error {
		var err error
		result, err = uc.preview(l, asOf, totalNAV)
		return err
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.FeePreviews.Inc()
	}

	return result, nil
}

func (uc *FeeUseCase) preview(l *domain.Ledger, asOf time.Time, totalNAV decimal.Decimal) (*FeePreviewResult, error) {
	price, err := domain.PricePerUnit(totalNAV, l.TotalUnits())
	if err != nil {
		return nil, err
	}

	result := &FeePreviewResult{
		AsOfDate:       asOf,
		TotalNAV:       totalNAV,
		PricePerUnit:   price,
		TotalFeeAmount: decimal.Zero,
		TotalFeeUnits:  decimal.Zero,
	}

	operator := l.Operator()

	for _, t := range l.Tranches {
		if operator != nil && t.InvestorID == operator.ID {
			continue
		}

		rates := l.FeeConfig.Resolve(t.InvestorID)
		item := domain.CalculateTrancheFee(t, asOf, price, rates)

		result.Items = append(result.Items, item)
		result.TotalFeeAmount = result.TotalFeeAmount.Add(item.FeeAmount)
		result.TotalFeeUnits = result.TotalFeeUnits.Add(item.FeeUnits)
	}

	result.ConfirmToken = confirmToken(l, result)

	return result, nil
}

// tokenPayload is the canonical form hashed into a confirm token. Field order
// is fixed by the struct; decimals are serialized as strings.
type tokenPayload struct {
	AsOfDate           string         `json:"as_of_date"`
	TotalNAV           string         `json:"total_nav"`
	TotalFeeAmount     string         `json:"total_fee_amount"`
	TotalUnitsTransfer string         `json:"total_units_transfer"`
	TransactionCount   int            `json:"transaction_count"`
	LastTransactionID  string         `json:"last_transaction_id"`
	FeeConfig          tokenFeeConfig `json:"fee_config"`
}

type tokenFeeConfig struct {
	PerformanceFeeRate string             `json:"performance_fee_rate"`
	HurdleRateAnnual   string             `json:"hurdle_rate_annual"`
	Overrides          []tokenFeeOverride `json:"overrides"`
}

type tokenFeeOverride struct {
	InvestorID         int64   `json:"investor_id"`
	PerformanceFeeRate *string `json:"performance_fee_rate"`
	HurdleRateAnnual   *string `json:"hurdle_rate_annual"`
}

// confirmToken binds a preview to the exact ledger state and fee
// configuration it was computed from. Any mutation or config edit between
// preview and apply changes the token and rejects the stale preview.
func confirmToken(l *domain.Ledger, preview *FeePreviewResult) string {
	payload := tokenPayload{
		AsOfDate:           preview.AsOfDate.UTC().Format(DateLayout),
		TotalNAV:           preview.TotalNAV.String(),
		TotalFeeAmount:     preview.TotalFeeAmount.String(),
		TotalUnitsTransfer: preview.TotalFeeUnits.String(),
		TransactionCount:   len(l.Transactions),
		FeeConfig: tokenFeeConfig{
			PerformanceFeeRate: l.FeeConfig.Global.PerformanceFeeRate.String(),
			HurdleRateAnnual:   l.FeeConfig.Global.HurdleRateAnnual.String(),
			Overrides:          []tokenFeeOverride{},
		},
	}

	if last := l.LastTransaction(); last != nil {
		payload.LastTransactionID = last.ID
	}

	ids := make([]int64, 0, len(l.FeeConfig.Overrides))
	for id := range l.FeeConfig.Overrides {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		ov := l.FeeConfig.Overrides[id]
		item := tokenFeeOverride{InvestorID: id}
		if ov.PerformanceFeeRate != nil {
			s := ov.PerformanceFeeRate.String()
			item.PerformanceFeeRate = &s
		}
		if ov.HurdleRateAnnual != nil {
			s := ov.HurdleRateAnnual.String()
			item.HurdleRateAnnual = &s
		}
		payload.FeeConfig.Overrides = append(payload.FeeConfig.Overrides, item)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		// The payload is plain strings and ints; marshal cannot fail.
		panic(fmt.Sprintf("confirm token marshal: %v", err))
	}

	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}

// ApplyFees charges the previewed fees exactly once. The preview is recomputed
// from current state and its token compared against the caller's; a mismatch
// means the ledger or fee configuration changed since preview and the request
// is rejected. On match every tranche with a positive fee is charged, its
// high-water mark and hurdle baseline are reset to the current price, and the
// operator is credited with the fee units in one new tranche. The whole batch
// commits in a single mutation; no partial application is observable.
func (uc *FeeUseCase) ApplyFees(ctx context.Context, input ApplyFeesInput) (*ApplySummary, error) {
	if !input.Acknowledgements.Risk || !input.Acknowledgements.Backup {
		return nil, domain.ErrAcknowledgementRequired
	}
	if err := domain.ValidateDate(input.AsOfDate); err != nil {
		return nil, err
	}

	var summary *ApplySummary

	err := uc.coord.Mutate(ctx, func(l *domain.Ledger) error {
		preview, err := uc.preview(l, input.AsOfDate, input.TotalNAV)
		if err != nil {
			return err
		}

		if preview.ConfirmToken != input.ConfirmToken {
			return domain.ErrTokenMismatch
		}

		summary, err = uc.apply(l, preview)
		return err
	})
	if err != nil {
		if uc.metrics != nil && errors.Is(err, domain.ErrTokenMismatch) {
			uc.metrics.TokenMismatches.Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.FeeApplications.Inc()
		amount, _ := summary.TotalFeeAmount.Float64()
		uc.metrics.FeeAmountCharged.Observe(amount)
	}

	return summary, nil
}

func (uc *FeeUseCase) apply(l *domain.Ledger, preview *FeePreviewResult) (*ApplySummary, error) {
	price := preview.PricePerUnit
	period := preview.AsOfDate.Format(FeePeriodLayout)

	summary := &ApplySummary{
		PricePerUnit:   price,
		TotalFeeAmount: decimal.Zero,
		TotalFeeUnits:  decimal.Zero,
	}

	for _, item := range preview.Items {
		if !item.FeeAmount.IsPositive() {
			continue
		}

		tranche, err := l.FindTranche(item.TrancheID)
		if err != nil {
			return nil, err
		}

		unitsBefore := tranche.Units

		tranche.Units = tranche.Units.Sub(item.FeeUnits)
		tranche.CumulativeFeesPaid = tranche.CumulativeFeesPaid.Add(item.FeeAmount)

		// Reset the fee baseline: the high-water mark prevents re-charging
		// this gain, and the fresh entry price/date restarts the hurdle clock.
		tranche.HighWaterMark = price
		tranche.EntryPrice = price
		tranche.EntryDate = preview.AsOfDate

		l.Transactions = append(l.Transactions, &domain.Transaction{
			ID:         uc.idGen.Generate(),
			InvestorID: item.InvestorID,
			Date:       preview.AsOfDate,
			Type:       domain.TransactionTypeFeeCharged,
			Amount:     item.FeeAmount.Neg(),
			NAVAtTime:  preview.TotalNAV,
			UnitsDelta: item.FeeUnits.Neg(),
			TrancheID:  tranche.TrancheID,
		})

		l.FeeRecords = append(l.FeeRecords, &domain.FeeRecord{
			ID:              uc.idGen.Generate(),
			Period:          period,
			InvestorID:      item.InvestorID,
			TrancheID:       tranche.TrancheID,
			FeeAmount:       item.FeeAmount,
			FeeUnits:        item.FeeUnits,
			CalculationDate: preview.AsOfDate,
			UnitsBefore:     unitsBefore,
			UnitsAfter:      tranche.Units,
			PricePerUnit:    price,
			Description: fmt.Sprintf("performance fee %s%% above threshold %s",
				item.Rates.PerformanceFeeRate.Mul(decimal.NewFromInt(100)), item.Threshold.Round(4)),
		})

		summary.TranchesCharged++
		summary.TotalFeeAmount = summary.TotalFeeAmount.Add(item.FeeAmount)
		summary.TotalFeeUnits = summary.TotalFeeUnits.Add(item.FeeUnits)
	}

	if summary.TranchesCharged == 0 {
		return summary, nil
	}

	operator := l.Operator()
	if operator == nil {
		return nil, domain.ErrInvestorNotFound
	}

	opTranche := &domain.Tranche{
		TrancheID:             uc.idGen.Generate(),
		InvestorID:            operator.ID,
		EntryDate:             preview.AsOfDate,
		EntryPrice:            price,
		Units:                 summary.TotalFeeUnits,
		HighWaterMark:         price,
		OriginalEntryDate:     preview.AsOfDate,
		OriginalEntryPrice:    price,
		CumulativeFeesPaid:    decimal.Zero,
		InvestedValue:         summary.TotalFeeAmount,
		OriginalInvestedValue: summary.TotalFeeAmount,
	}
	l.Tranches = append(l.Tranches, opTranche)
	summary.OperatorTrancheID = opTranche.TrancheID

	l.Transactions = append(l.Transactions, &domain.Transaction{
		ID:         uc.idGen.Generate(),
		InvestorID: operator.ID,
		Date:       preview.AsOfDate,
		Type:       domain.TransactionTypeFeeReceived,
		Amount:     summary.TotalFeeAmount,
		NAVAtTime:  preview.TotalNAV,
		UnitsDelta: summary.TotalFeeUnits,
		TrancheID:  opTranche.TrancheID,
	})

	l.PruneDust()

	return summary, nil
}

// ResolveFeeConfig returns the effective fee rates for an investor.
func (uc *FeeUseCase) ResolveFeeConfig(ctx context.Context, investorID int64) (domain.EffectiveRates, error) {
	var rates domain.EffectiveRates

	err := uc.coord.Read(ctx, func(l *domain.Ledger) error {
		if _, err := l.FindInvestor(investorID); err != nil {
			return err
		}
		rates = l.FeeConfig.Resolve(investorID)
		return nil
	})
	if err != nil {
		return domain.EffectiveRates{}, err
	}

	return rates, nil
}

// GetFeeConfig returns the full fee configuration.
func (uc *FeeUseCase) GetFeeConfig(ctx context.Context) (domain.FeeConfig, error) {
	var cfg domain.FeeConfig

	err := uc.coord.Read(ctx, func(l *domain.Ledger) error {
		cfg = l.FeeConfig.Clone()
		return nil
	})
	if err != nil {
		return domain.FeeConfig{}, err
	}

	return cfg, nil
}

// UpdateGlobalFeeConfig replaces the global fee rates.
func (uc *FeeUseCase) UpdateGlobalFeeConfig(ctx context.Context, rates domain.FeeRates) error {
	if err := domain.ValidateRates(rates); err != nil {
		return err
	}

	return uc.coord.Mutate(ctx, func(l *domain.Ledger) error {
		l.FeeConfig.Global = rates
		return nil
	})
}

// UpsertInvestorOverride sets a per-investor fee override. The operator pays
// no fees and cannot carry an override.
func (uc *FeeUseCase) UpsertInvestorOverride(ctx context.Context, investorID int64, override domain.FeeOverride) error {
	if override.PerformanceFeeRate != nil || override.HurdleRateAnnual != nil {
		check := domain.FeeRates{}
		if override.PerformanceFeeRate != nil {
			check.PerformanceFeeRate = *override.PerformanceFeeRate
		}
		if override.HurdleRateAnnual != nil {
			check.HurdleRateAnnual = *override.HurdleRateAnnual
		}
		if err := domain.ValidateRates(check); err != nil {
			return err
		}
	}

	return uc.coord.Mutate(ctx, func(l *domain.Ledger) error {
		inv, err := l.FindInvestor(investorID)
		if err != nil {
			return err
		}
		if inv.IsOperator {
			return domain.ErrOperatorReserved
		}

		if l.FeeConfig.Overrides == nil {
			l.FeeConfig.Overrides = map[int64]domain.FeeOverride{}
		}
		l.FeeConfig.Overrides[investorID] = override

		return nil
	})
}

// DeleteInvestorOverride removes a per-investor fee override.
func (uc *FeeUseCase) DeleteInvestorOverride(ctx context.Context, investorID int64) error {
	return uc.coord.Mutate(ctx, func(l *domain.Ledger) error {
		if _, ok := l.FeeConfig.Overrides[investorID]; !ok {
			return domain.ErrInvestorNotFound
		}
		delete(l.FeeConfig.Overrides, investorID)
		return nil
	})
}
