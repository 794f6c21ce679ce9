// Package response padroniza as respostas JSON dos handlers HTTP.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gostorefront/internal/domain"
	apperror "gostorefront/internal/errors"
	"gostorefront/internal/pkg/logger"
)

// Writer escreve respostas de sucesso e de erro no mesmo formato para todos os handlers.
type Writer struct {
	Logger logger.Logger
}

func NewWriter(log logger.Logger) *Writer {
	return &Writer{Logger: log}
}

// Handle envia data com successStatus quando err é nil; caso contrário delega para Error.
func (rw *Writer) Handle(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err != nil {
		rw.Error(w, r, err)
		return
	}
	rw.JSON(w, successStatus, data)
}

func (rw *Writer) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rw.Logger.Error("Falha ao codificar JSON de resposta", err)
	}
}

// Error traduz err para {code, category, message}. Também serve de ErrorWriter para os middlewares.
func (rw *Writer) Error(w http.ResponseWriter, r *http.Request, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		rw.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
		// Detalhes de infraestrutura não vazam para o cliente.
		message = "Erro interno. Tente novamente mais tarde."
	} else {
		rw.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	rw.JSON(w, status, domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}
