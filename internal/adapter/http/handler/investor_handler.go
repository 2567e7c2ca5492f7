package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// InvestorService defines the behavior needed by InvestorHandler.
type InvestorService interface {
	AddInvestor(ctx context.Context, input usecase.AddInvestorInput) (*domain.Investor, error)
	UpdateInvestorContact(ctx context.Context, investorID int64, input usecase.UpdateInvestorContactInput) (*domain.Investor, error)
	GetInvestor(ctx context.Context, investorID int64) (*domain.Investor, error)
	ListInvestors(ctx context.Context, includeOperator bool) ([]*domain.Investor, error)
}

// InvestorHandler handles investor-related HTTP requests.
type InvestorHandler struct {
	investorUC InvestorService
}

// NewInvestorHandler creates a new InvestorHandler.
func NewInvestorHandler(investorUC InvestorService) *InvestorHandler {
	return &InvestorHandler{investorUC: investorUC}
}

// Create registers a new investor.
func (h *InvestorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AddInvestorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid join date", err.Error())
		return
	}

	investor, err := h.investorUC.AddInvestor(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add investor", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.InvestorFromDomain(investor))
}

// Get retrieves an investor by ID.
func (h *InvestorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseInvestorID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid investor ID", err.Error())
		return
	}

	investor, err := h.investorUC.GetInvestor(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get investor", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InvestorFromDomain(investor))
}

// Update applies partial contact updates.
func (h *InvestorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseInvestorID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid investor ID", err.Error())
		return
	}

	var req dto.UpdateInvestorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	investor, err := h.investorUC.UpdateInvestorContact(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update investor", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InvestorFromDomain(investor))
}

// List lists investors. The operator is hidden unless include_operator=true.
func (h *InvestorHandler) List(w http.ResponseWriter, r *http.Request) {
	includeOperator := r.URL.Query().Get("include_operator") == "true"

	investors, err := h.investorUC.ListInvestors(r.Context(), includeOperator)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list investors", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InvestorsFromDomain(investors))
}
