package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	Deposit(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error)
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Transaction, error)
	RecordNAVUpdate(ctx context.Context, totalNAV decimal.Decimal, date time.Time) (*domain.Transaction, error)
	UndoTransaction(ctx context.Context, transactionID string) error
	ListTransactions(ctx context.Context, investorID *int64, limit int) ([]*domain.Transaction, error)
}

// LedgerHandler handles deposit, withdrawal, NAV and transaction requests.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Deposit records a deposit.
func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	tx, err := h.ledgerUC.Deposit(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}

// Withdraw records a withdrawal.
func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	tx, err := h.ledgerUC.Withdraw(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record withdrawal", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}

// RecordNAV records a fund-wide NAV mark.
func (h *LedgerHandler) RecordNAV(w http.ResponseWriter, r *http.Request) {
	var req dto.NAVUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	tx, err := h.ledgerUC.RecordNAVUpdate(r.Context(), req.TotalNAV, date)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record NAV", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}

// Undo reverses the most recent transaction.
func (h *LedgerHandler) Undo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	if err := h.ledgerUC.UndoTransaction(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to undo transaction", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTransactions lists transactions, newest first.
func (h *LedgerHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 0)

	var investorID *int64
	if raw := r.URL.Query().Get("investor_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid investor_id", err.Error())
			return
		}
		investorID = &id
	}

	transactions, err := h.ledgerUC.ListTransactions(r.Context(), investorID, limit)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(transactions),
		Total:        int64(len(transactions)),
	})
}
