package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"crmboard/internal/pkg/response"
	"crmboard/internal/repository"
)

// ApiTokenAuth authenticates machine ingress (webhook callbacks, channel
// connectors) using the X-Api-Token header. On success company_id is set
// in the context and last_used_at is stamped.
func ApiTokenAuth(tokens *repository.ApiTokenRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader("X-Api-Token")
		if secret == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing X-Api-Token header")
			c.Abort()
			return
		}

		token, err := tokens.GetActiveBySecret(c.Request.Context(), secret)
		if err != nil || token == nil {
			log.Printf("api_token_auth_failed client_ip=%s path=%s", c.ClientIP(), c.Request.URL.Path)
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid API token")
			c.Abort()
			return
		}

		if err := tokens.TouchLastUsed(c.Request.Context(), token.ID); err != nil {
			// non-fatal, the request itself is authenticated
			log.Printf("api_token_touch_failed token_id=%d err=%v", token.ID, err)
		}

		c.Set("company_id", token.CompanyID)
		c.Set("api_token_id", token.ID)

		c.Next()
	}
}
