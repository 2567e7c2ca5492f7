package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// FeeService defines the behavior needed by FeeHandler.
type FeeService interface {
	PreviewFees(ctx context.Context, asOf time.Time, totalNAV decimal.Decimal) (*usecase.FeePreviewResult, error)
	ApplyFees(ctx context.Context, input usecase.ApplyFeesInput) (*usecase.ApplySummary, error)
	ResolveFeeConfig(ctx context.Context, investorID int64) (domain.EffectiveRates, error)
	GetFeeConfig(ctx context.Context) (domain.FeeConfig, error)
	UpdateGlobalFeeConfig(ctx context.Context, rates domain.FeeRates) error
	UpsertInvestorOverride(ctx context.Context, investorID int64, override domain.FeeOverride) error
	DeleteInvestorOverride(ctx context.Context, investorID int64) error
}

// FeeHandler handles fee preview, application and configuration requests.
type FeeHandler struct {
	feeUC FeeService
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(feeUC FeeService) *FeeHandler {
	return &FeeHandler{feeUC: feeUC}
}

// Preview computes fees without applying them and returns a confirm token.
func (h *FeeHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.FeePreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	asOf, err := dto.ParseDate(req.AsOfDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of_date", err.Error())
		return
	}

	preview, err := h.feeUC.PreviewFees(r.Context(), asOf, req.TotalNAV)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to preview fees", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FeePreviewFromUseCase(preview))
}

// Apply applies a previously previewed fee batch.
func (h *FeeHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplyFeesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of_date", err.Error())
		return
	}

	summary, err := h.feeUC.ApplyFees(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to apply fees", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ApplyFeesFromUseCase(summary))
}

// GetEffectiveRates resolves the effective fee rates for an investor.
func (h *FeeHandler) GetEffectiveRates(w http.ResponseWriter, r *http.Request) {
	id, err := parseInvestorID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid investor ID", err.Error())
		return
	}

	rates, err := h.feeUC.ResolveFeeConfig(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to resolve fee config", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EffectiveRatesFromDomain(rates))
}

// GetConfig returns the global rates and all per-investor overrides.
func (h *FeeHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.feeUC.GetFeeConfig(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load fee config", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FeeConfigFromDomain(cfg))
}

// UpdateConfig replaces the global fee rates.
func (h *FeeHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateFeeConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.feeUC.UpdateGlobalFeeConfig(r.Context(), req.ToUseCaseInput()); err != nil {
		writeError(w, mapDomainError(err), "failed to update fee config", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpsertOverride sets a per-investor fee override.
func (h *FeeHandler) UpsertOverride(w http.ResponseWriter, r *http.Request) {
	id, err := parseInvestorID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid investor ID", err.Error())
		return
	}

	var req dto.UpsertFeeOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.feeUC.UpsertInvestorOverride(r.Context(), id, req.ToUseCaseInput()); err != nil {
		writeError(w, mapDomainError(err), "failed to set fee override", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteOverride removes a per-investor fee override.
func (h *FeeHandler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	id, err := parseInvestorID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid investor ID", err.Error())
		return
	}

	if err := h.feeUC.DeleteInvestorOverride(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete fee override", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
