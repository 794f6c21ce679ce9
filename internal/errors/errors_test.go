package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "gostorefront/internal/errors"
)

func TestMapToHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		category string
	}{
		{"validação", apperror.NewValidationError("x"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"não autorizado", apperror.NewUnauthorizedError("x"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"não encontrado", apperror.NewNotFoundError("x"), http.StatusNotFound, "NOT_FOUND"},
		{"conflito", apperror.NewConflictError("x"), http.StatusConflict, "CONFLICT"},
		{"limite", apperror.NewTooManyRequestsError("x"), http.StatusTooManyRequests, "RATE_LIMITED"},
		{"interno", apperror.NewDBError("falhou", errors.New("conn reset")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"encapsulado com %w", fmt.Errorf("serviço: %w", apperror.NewNotFoundError("x")), http.StatusNotFound, "NOT_FOUND"},
		{"erro genérico", errors.New("boom"), http.StatusInternalServerError, "UNKNOWN_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, category, _ := apperror.MapToHTTPStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.category, category)
		})
	}
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := apperror.NewCacheError("falha ao ler catálogo", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Erro Interno: falha ao ler catálogo (cache)")
}
