package middleware

import (
	"errors"

	userRepo "handyhub/database/repository/user"
	"handyhub/models"
	"handyhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// JWTAuthUserMiddleware resolves the request's bearer credential (or the
// "token" cookie) into a user identity. When optional is true, a missing or
// invalid token lets the request proceed unauthenticated instead of
// failing.
func JWTAuthUserMiddleware(tokens *utils.TokenManager, cache *redis.Client, repo userRepo.UserRepository, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c, true)
		if !ok {
			if optional {
				c.Next()
				return
			}
			abortWithAppError(c, errMissingToken)
			return
		}

		userID, err := tokens.ExtractSubject(tokenString, utils.AudienceUser)
		if err != nil || userID == "" {
			if optional {
				c.Next()
				return
			}
			abortWithAppError(c, errInvalidToken)
			return
		}

		snap, hit := snapshotFromCache(cache, utils.AudienceUser, userID)
		if !hit {
			usr, err := repo.GetByIDWithProjection(userID, bson.M{"id": 1, "status": 1})
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					abortWithAppError(c, utils.NewAppError(utils.CodeNotFound, "account no longer exists"))
					return
				}
				utils.JSONError(c, err)
				c.Abort()
				return
			}
			snap = &identitySnapshot{Status: usr.Status}
			snapshotToCache(cache, utils.AudienceUser, userID, *snap)
		}

		if snap.Status != models.AccountActive {
			abortWithAppError(c, utils.NewAppError(utils.CodeForbidden, "account is not active"))
			return
		}

		// Bookkeeping write; must not fail or delay the request.
		go func() { _ = repo.TouchLastActive(userID) }()

		c.Set(CtxUserID, userID)
		c.Set(CtxRole, utils.AudienceUser)
		c.Next()
	}
}
