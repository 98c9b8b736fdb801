package middleware

import (
	"errors"

	adminRepo "handyhub/database/repository/admin"
	"handyhub/models"
	"handyhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// JWTAuthAdminMiddleware resolves the request's bearer credential into an
// admin identity. Admin tokens are signed with the admin secret and are
// header-only.
func JWTAuthAdminMiddleware(tokens *utils.TokenManager, cache *redis.Client, repo adminRepo.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c, false)
		if !ok {
			abortWithAppError(c, errMissingToken)
			return
		}

		adminID, err := tokens.ExtractSubject(tokenString, utils.AudienceAdmin)
		if err != nil || adminID == "" {
			abortWithAppError(c, errInvalidToken)
			return
		}

		snap, hit := snapshotFromCache(cache, utils.AudienceAdmin, adminID)
		if !hit {
			adm, err := repo.GetByIDWithProjection(adminID, bson.M{"id": 1, "status": 1})
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					abortWithAppError(c, utils.NewAppError(utils.CodeNotFound, "account no longer exists"))
					return
				}
				utils.JSONError(c, err)
				c.Abort()
				return
			}
			snap = &identitySnapshot{Status: adm.Status}
			snapshotToCache(cache, utils.AudienceAdmin, adminID, *snap)
		}

		if snap.Status != models.AccountActive {
			abortWithAppError(c, utils.NewAppError(utils.CodeForbidden, "account is not active"))
			return
		}

		go func() { _ = repo.TouchLastActive(adminID) }()

		c.Set(CtxAdminID, adminID)
		c.Set(CtxRole, utils.AudienceAdmin)
		c.Next()
	}
}
