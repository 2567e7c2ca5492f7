package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	GetInvestorBalance(ctx context.Context, investorID int64, totalNAV decimal.Decimal) (*usecase.InvestorBalance, error)
	GetLifetimePerformance(ctx context.Context, investorID int64, totalNAV decimal.Decimal) (*usecase.LifetimePerformance, error)
}

// ReportHandler handles balance and performance report requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Balance values an investor's holdings at the given NAV.
func (h *ReportHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id, err := parseInvestorID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid investor ID", err.Error())
		return
	}

	totalNAV, err := parseNAVQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid total_nav", err.Error())
		return
	}

	balance, err := h.reportUC.GetInvestorBalance(r.Context(), id, totalNAV)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromUseCase(id, balance))
}

// Performance reports an investor's lifetime result.
func (h *ReportHandler) Performance(w http.ResponseWriter, r *http.Request) {
	id, err := parseInvestorID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid investor ID", err.Error())
		return
	}

	totalNAV, err := parseNAVQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid total_nav", err.Error())
		return
	}

	perf, err := h.reportUC.GetLifetimePerformance(r.Context(), id, totalNAV)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get performance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PerformanceFromUseCase(id, perf))
}

func parseNAVQuery(r *http.Request) (decimal.Decimal, error) {
	return decimal.NewFromString(r.URL.Query().Get("total_nav"))
}
