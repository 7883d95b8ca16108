package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cosspos/internal/apierror"
	"cosspos/internal/service"
)

const (
	ctxClaims = "claims"
)

// Auth validates the Bearer token and stores its claims on the context.
func Auth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.New(http.StatusUnauthorized, "token requerido"))
			return
		}
		claims, err := auth.Validar(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.New(http.StatusUnauthorized, "token inválido o expirado"))
			return
		}
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

// RequireRole restricts a route to the listed roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsDe(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.New(http.StatusUnauthorized, "token requerido"))
			return
		}
		for _, r := range roles {
			if claims.Rol == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			apierror.New(http.StatusForbidden, "permisos insuficientes"))
	}
}

// ClaimsDe extracts the authenticated claims, nil if absent.
func ClaimsDe(c *gin.Context) *service.Claims {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*service.Claims)
	return claims
}
