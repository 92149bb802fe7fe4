package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"labstock/internal/domain"
	apperror "labstock/internal/errors"
	"labstock/internal/pkg/token"
	"labstock/internal/policy"
)

// ContextKey é o tipo das chaves usadas para armazenar dados no contexto.
// Usamos um tipo próprio para garantir que a chave seja única e não haja
// conflito com chaves string de outros pacotes.
type ContextKey int

const (
	// UserClaimsKey é a chave usada para armazenar as claims do usuário no contexto.
	UserClaimsKey ContextKey = iota
)

// UserClaims representa os dados do usuário extraídos do token JWT,
// que serão anexados ao contexto.
type UserClaims struct {
	UserID string
	Cargo  domain.Cargo
	Nome   string
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// writeError serializa um AppError no corpo da resposta no mesmo formato
// usado pelos handlers.
func writeError(w http.ResponseWriter, err apperror.AppError) {
	status, category, message := apperror.MapToHTTPStatus(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	})
}

// NewAuthMiddleware cria uma função de middleware que valida um JWT e anexa as
// claims (UserID, Cargo e Nome) ao contexto da requisição.
//
// A ausência do token e um token inválido produzem respostas distintas:
// token ausente retorna 403 (o cliente deve fornecer credenciais), enquanto
// token presente porém inválido/expirado retorna 401 (o cliente deve refazer
// o login).
func NewAuthMiddleware(tokenSvc TokenService) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if tokenString == "" {
				writeError(w, apperror.NewTokenMissingError("Token não fornecido."))
				return
			}

			// 2. Validar o Token
			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				writeError(w, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			// 3. Anexar Claims ao Contexto
			userClaims := UserClaims{
				UserID: claims.UserID,
				Cargo:  domain.Cargo(claims.Cargo),
				Nome:   claims.Nome,
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, userClaims)

			// Chama o próximo handler com o novo contexto
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetUserClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// RequirePermission cria um middleware que consulta a política centralizada de
// autorização para a ação dada. A decisão é tomada uma única vez por
// requisição, sempre sobre a mesma tabela (cargo, ação).
func RequirePermission(action policy.Action) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			claims, ok := GetUserClaimsFromContext(r.Context())
			if !ok {
				// O AuthMiddleware não foi executado ou falhou em anexar as claims.
				writeError(w, apperror.NewTokenMissingError("Autorização necessária. Token não processado."))
				return
			}

			if !policy.Authorize(claims.Cargo, action) {
				writeError(w, apperror.NewForbiddenError("Você não tem a permissão necessária."))
				return
			}

			next.ServeHTTP(w, r)
		}
	}
}
