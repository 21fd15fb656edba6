package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ipdr-analysis/auth-server/pkg/response"
)

const CtxAccessTokenKey = "access_token"

// BearerToken extracts the access token from "Authorization: Bearer <token>"
// and stores it under CtxAccessTokenKey. Verification is left to the handler.
func BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "No token provided")
			return
		}
		c.Set(CtxAccessTokenKey, token)
		c.Next()
	}
}

func bearerFromHeader(h string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
