package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

type feeServiceStub struct {
	previewFn        func(ctx context.Context, asOf time.Time, totalNAV decimal.Decimal) (*usecase.FeePreviewResult, error)
	applyFn          func(ctx context.Context, input usecase.ApplyFeesInput) (*usecase.ApplySummary, error)
	resolveFn        func(ctx context.Context, investorID int64) (domain.EffectiveRates, error)
	getConfigFn      func(ctx context.Context) (domain.FeeConfig, error)
	updateConfigFn   func(ctx context.Context, rates domain.FeeRates) error
	upsertOverrideFn func(ctx context.Context, investorID int64, override domain.FeeOverride) error
	deleteOverrideFn func(ctx context.Context, investorID int64) error
}

func (s *feeServiceStub) PreviewFees(ctx context.Context, asOf time.Time, totalNAV decimal.Decimal) (*usecase.FeePreviewResult, error) {
	return s.previewFn(ctx, asOf, totalNAV)
}

func (s *feeServiceStub) ApplyFees(ctx context.Context, input usecase.ApplyFeesInput) (*usecase.ApplySummary, error) {
	return s.applyFn(ctx, input)
}

func (s *feeServiceStub) ResolveFeeConfig(ctx context.Context, investorID int64) (domain.EffectiveRates, error) {
	return s.resolveFn(ctx, investorID)
}

func (s *feeServiceStub) GetFeeConfig(ctx context.Context) (domain.FeeConfig, error) {
	return s.getConfigFn(ctx)
}

func (s *feeServiceStub) UpdateGlobalFeeConfig(ctx context.Context, rates domain.FeeRates) error {
	return s.updateConfigFn(ctx, rates)
}

func (s *feeServiceStub) UpsertInvestorOverride(ctx context.Context, investorID int64, override domain.FeeOverride) error {
	return s.upsertOverrideFn(ctx, investorID, override)
}

func (s *feeServiceStub) DeleteInvestorOverride(ctx context.Context, investorID int64) error {
	return s.deleteOverrideFn(ctx, investorID)
}

func TestFeeHandler_Preview_Success(t *testing.T) {
	asOf, _ := time.Parse("2006-01-02", "2024-12-31")
	preview := &usecase.FeePreviewResult{
		AsOfDate:       asOf,
		ConfirmToken:   "abc123",
		TotalNAV:       decimal.NewFromInt(200000000),
		PricePerUnit:   decimal.NewFromInt(2000),
		TotalFeeAmount: decimal.NewFromInt(18800853),
		TotalFeeUnits:  decimal.NewFromInt(9400),
	}

	var capturedNAV decimal.Decimal
	h := NewFeeHandler(&feeServiceStub{
		previewFn: func(ctx context.Context, asOf time.Time, totalNAV decimal.Decimal) (*usecase.FeePreviewResult, error) {
			capturedNAV = totalNAV
			return preview, nil
		},
	})

	body, _ := json.Marshal(dto.FeePreviewRequest{
		AsOfDate: "2024-12-31",
		TotalNAV: decimal.NewFromInt(200000000),
	})

	req := httptest.NewRequest(http.MethodPost, "/fees/preview", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Preview(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !capturedNAV.Equal(decimal.NewFromInt(200000000)) {
		t.Fatalf("expected NAV to pass through, got %s", capturedNAV)
	}

	var resp dto.FeePreviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ConfirmToken != "abc123" {
		t.Fatalf("expected confirm token in response, got %q", resp.ConfirmToken)
	}
	if resp.AsOfDate != "2024-12-31" {
		t.Fatalf("expected as_of_date 2024-12-31, got %q", resp.AsOfDate)
	}
}

func TestFeeHandler_Preview_InvalidDate(t *testing.T) {
	h := NewFeeHandler(&feeServiceStub{})

	body, _ := json.Marshal(dto.FeePreviewRequest{AsOfDate: "31/12/2024"})
	req := httptest.NewRequest(http.MethodPost, "/fees/preview", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Preview(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestFeeHandler_Apply_TokenMismatch(t *testing.T) {
	h := NewFeeHandler(&feeServiceStub{
		applyFn: func(ctx context.Context, input usecase.ApplyFeesInput) (*usecase.ApplySummary, error) {
			return nil, domain.ErrTokenMismatch
		},
	})

	body, _ := json.Marshal(dto.ApplyFeesRequest{
		AsOfDate:          "2024-12-31",
		TotalNAV:          decimal.NewFromInt(200000000),
		ConfirmToken:      "stale",
		AcknowledgeRisk:   true,
		AcknowledgeBackup: true,
	})

	req := httptest.NewRequest(http.MethodPost, "/fees/apply", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Apply(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for stale token, got %d", rec.Code)
	}
}

func TestFeeHandler_Apply_MissingAcknowledgements(t *testing.T) {
	h := NewFeeHandler(&feeServiceStub{
		applyFn: func(ctx context.Context, input usecase.ApplyFeesInput) (*usecase.ApplySummary, error) {
			return nil, domain.ErrAcknowledgementRequired
		},
	})

	body, _ := json.Marshal(dto.ApplyFeesRequest{
		AsOfDate:     "2024-12-31",
		TotalNAV:     decimal.NewFromInt(200000000),
		ConfirmToken: "abc123",
	})

	req := httptest.NewRequest(http.MethodPost, "/fees/apply", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Apply(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing acknowledgements, got %d", rec.Code)
	}
}
