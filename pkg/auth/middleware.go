package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/billing-dashboard/internal/adapter/api/dto"
	"github.com/hugohenrick/billing-dashboard/pkg/owner"
)

// TokenQueryParam permite enviar o token na URL, usado no upgrade de WebSocket
const TokenQueryParam = "access_token"

// TokenValidator valida tokens e retorna as claims
type TokenValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTAuthMiddleware cria um middleware para autenticação JWT. O owner do token
// é colocado no contexto do Gin e no context.Context da requisição.
func JWTAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, message := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Autenticação requerida",
				message,
			))
			return
		}

		// Validar o token
		claims, err := validator.ValidateToken(token)
		if err != nil {
			message := "Token inválido"
			if errors.Is(err, ErrExpiredToken) {
				message = "Token expirado"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				message,
				err.Error(),
			))
			return
		}

		// Armazenar as claims no contexto
		c.Set(owner.GinKey, claims.OwnerID())
		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)
		c.Request = c.Request.WithContext(owner.WithOwner(c.Request.Context(), claims.OwnerID()))

		c.Next()
	}
}

// extractToken obtém o token do cabeçalho Authorization ou do parâmetro access_token
func extractToken(c *gin.Context) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if token := c.Query(TokenQueryParam); token != "" {
			return token, ""
		}
		return "", "O cabeçalho Authorization não foi fornecido"
	}

	// Verificar o formato "Bearer <token>"
	tokenParts := strings.Fields(authHeader)
	if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
		return "", "Use o formato 'Bearer <token>'"
	}
	return tokenParts[1], ""
}
