package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvestorNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTrancheNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTokenMismatch):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAcknowledgementRequired):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidFeeRate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDivisionByZero):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotUndoable):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOperatorReserved):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseInvestorID parses the investor ID path parameter.
func parseInvestorID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
