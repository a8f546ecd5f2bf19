package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Technizer/ModeFilter-Pro/models"
	"github.com/Technizer/ModeFilter-Pro/utils"
)

// WidgetAuth validates the short-lived token a rendered shell embeds.
// Fetch requests carry it in the X-Widget-Token header, with a Bearer
// fallback for clients that reuse the standard header.
func WidgetAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Widget-Token")
		if token == "" {
			if header := c.GetHeader("Authorization"); header != "" {
				extracted, err := utils.ExtractTokenFromHeader(header)
				if err != nil {
					c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid authorization header format"))
					c.Abort()
					return
				}
				token = extracted
			}
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Widget token required"))
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid or expired token"))
			c.Abort()
			return
		}
		if claims.Scope != utils.ScopeWidget && claims.Scope != utils.ScopeAdmin {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid or expired token"))
			c.Abort()
			return
		}

		c.Set("tokenScope", claims.Scope)
		c.Next()
	}
}

// AdminAuth validates an admin token from cookie or Authorization header.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		cookieToken, err := c.Cookie("auth_token")
		if err == nil && cookieToken != "" {
			token = cookieToken
		} else {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Authorization header required"))
				c.Abort()
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid authorization header format"))
				c.Abort()
				return
			}

			token = parts[1]
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid or expired token"))
			c.Abort()
			return
		}
		if claims.Scope != utils.ScopeAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Admin access required"))
			c.Abort()
			return
		}

		c.Set("tokenScope", claims.Scope)
		c.Next()
	}
}
