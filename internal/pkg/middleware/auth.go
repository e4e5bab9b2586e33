package middleware

import (
	"context"
	"net/http"

	"goshop/internal/domain"
	apperror "goshop/internal/errors"
	"goshop/internal/pkg/token"
)

// ContextKey é o tipo das chaves usadas para armazenar valores no contexto.
// Usamos um tipo próprio para garantir que não haja conflito com chaves
// string de outros pacotes.
type ContextKey int

const (
	// UserClaimsKey armazena as claims do usuário autenticado.
	UserClaimsKey ContextKey = iota
)

// UserClaims representa os dados do usuário extraídos do token JWT,
// que serão anexados ao contexto.
type UserClaims struct {
	UserID string
	Role   domain.UserRole
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware cria uma função de middleware que valida um JWT e anexa
// as claims (UserID e Role) ao contexto da requisição.
// Rotas que exigem identidade (checkout, pedidos) devem ser envolvidas por
// este middleware: a submissão sem identidade é barrada aqui, antes de
// qualquer passo da saga criar estado parcial.
func NewAuthMiddleware(tokenSvc TokenService) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {

			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || len(authHeader) < 7 || authHeader[:7] != "Bearer " {
				http.Error(w, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado.").Error(), http.StatusUnauthorized)
				return
			}

			tokenString := authHeader[7:]

			// 2. Validar o Token
			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, apperror.NewUnauthorizedError("Token inválido ou expirado.").Error(), http.StatusUnauthorized)
				return
			}

			// 3. Anexar Claims ao Contexto
			userClaims := UserClaims{
				UserID: claims.UserID,
				Role:   domain.UserRole(claims.Role),
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, userClaims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// NewOptionalAuthMiddleware cria uma variante que anexa as claims ao contexto
// quando um token válido está presente, mas nunca rejeita a requisição.
// Rotas de carrinho e recomendações usam esta variante: visitantes anônimos
// operam pelo X-Session-ID, e usuários logados passam a operar pelo UserID.
func NewOptionalAuthMiddleware(tokenSvc TokenService) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
				if claims, err := tokenSvc.ValidateToken(authHeader[7:]); err == nil {
					ctx := context.WithValue(r.Context(), UserClaimsKey, UserClaims{
						UserID: claims.UserID,
						Role:   domain.UserRole(claims.Role),
					})
					r = r.WithContext(ctx)
				}
				// Token inválido em rota pública não derruba a requisição;
				// ela segue como anônima.
			}
			next.ServeHTTP(w, r)
		}
	}
}

// GetUserClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}
