package middleware

import (
	"handyhub/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthAnyMiddleware accepts a token from any of the given audience
// guards. The token's audience claim picks which guard runs, so each
// audience keeps its own verification rules (user cookie fallback,
// provider verification gate, admin secret).
func JWTAuthAnyMiddleware(tokens *utils.TokenManager, guards map[string]gin.HandlerFunc) gin.HandlerFunc {
	order := []string{utils.AudienceUser, utils.AudienceProvider, utils.AudienceAdmin}
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c, true)
		if !ok {
			abortWithAppError(c, errMissingToken)
			return
		}
		for _, audience := range order {
			guard, registered := guards[audience]
			if !registered {
				continue
			}
			if _, err := tokens.ExtractSubject(tokenString, audience); err == nil {
				guard(c)
				return
			}
		}
		abortWithAppError(c, errInvalidToken)
	}
}

// JWTAuthAnyOptionalMiddleware is the pass-through variant: a missing or
// unrecognized token proceeds unauthenticated instead of failing.
func JWTAuthAnyOptionalMiddleware(tokens *utils.TokenManager, guards map[string]gin.HandlerFunc) gin.HandlerFunc {
	order := []string{utils.AudienceUser, utils.AudienceProvider, utils.AudienceAdmin}
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c, true)
		if !ok {
			c.Next()
			return
		}
		for _, audience := range order {
			guard, registered := guards[audience]
			if !registered {
				continue
			}
			if _, err := tokens.ExtractSubject(tokenString, audience); err == nil {
				guard(c)
				return
			}
		}
		c.Next()
	}
}
