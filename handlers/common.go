package handlers

import (
	"handyhub/middleware"
	"handyhub/models"
	"handyhub/utils"

	"github.com/gin-gonic/gin"
)

// actorFromContext reconstructs the authenticated actor the guard placed
// on the request context.
func actorFromContext(c *gin.Context) models.Actor {
	role := c.GetString(middleware.CtxRole)
	switch role {
	case utils.AudienceUser:
		return models.Actor{ID: c.GetString(middleware.CtxUserID), Role: role}
	case utils.AudienceProvider:
		return models.Actor{ID: c.GetString(middleware.CtxProviderID), Role: role}
	case utils.AudienceAdmin:
		return models.Actor{ID: c.GetString(middleware.CtxAdminID), Role: role}
	}
	return models.Actor{}
}
