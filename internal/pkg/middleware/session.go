package middleware

import (
	"context"
	"net/http"
	"strings"

	apperror "gostorefront/internal/errors"
	"gostorefront/internal/pkg/token"
)

// ContextKey é um tipo não exportável para evitar colisão com outras chaves de contexto.
type ContextKey int

const (
	SessionIDKey ContextKey = iota
)

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.SessionClaims, error)
}

// ErrorWriter responde erros no formato padronizado da API.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// NewSessionMiddleware valida o token "Authorization: Bearer <token>" e anexa o ID
// da sessão ao contexto da requisição.
func NewSessionMiddleware(tokenSvc TokenService, onError ErrorWriter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				onError(w, r, apperror.NewUnauthorizedError("Token de sessão ausente ou malformado."))
				return
			}

			claims, err := tokenSvc.ValidateToken(strings.TrimSpace(raw))
			if err != nil {
				onError(w, r, apperror.NewUnauthorizedError("Token de sessão inválido ou expirado."))
				return
			}

			ctx := context.WithValue(r.Context(), SessionIDKey, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionIDFromContext extrai o ID anexado pelo middleware.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok && id != ""
}
