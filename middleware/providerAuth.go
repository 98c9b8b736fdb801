package middleware

import (
	"errors"

	providerRepo "handyhub/database/repository/provider"
	"handyhub/models"
	"handyhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// JWTAuthProviderMiddleware resolves the request's bearer credential into a
// provider identity. An active-but-unverified provider is rejected: the
// verification gate is independent of account status.
func JWTAuthProviderMiddleware(tokens *utils.TokenManager, cache *redis.Client, repo providerRepo.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c, false)
		if !ok {
			abortWithAppError(c, errMissingToken)
			return
		}

		providerID, err := tokens.ExtractSubject(tokenString, utils.AudienceProvider)
		if err != nil || providerID == "" {
			abortWithAppError(c, errInvalidToken)
			return
		}

		snap, hit := snapshotFromCache(cache, utils.AudienceProvider, providerID)
		if !hit {
			prov, err := repo.GetByIDWithProjection(providerID, bson.M{"id": 1, "status": 1, "verification.status": 1})
			if err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					abortWithAppError(c, utils.NewAppError(utils.CodeNotFound, "account no longer exists"))
					return
				}
				utils.JSONError(c, err)
				c.Abort()
				return
			}
			snap = &identitySnapshot{
				Status:             prov.Status,
				VerificationStatus: prov.Verification.Status,
			}
			snapshotToCache(cache, utils.AudienceProvider, providerID, *snap)
		}

		if snap.Status != models.AccountActive {
			abortWithAppError(c, utils.NewAppError(utils.CodeForbidden, "account is not active"))
			return
		}
		if snap.VerificationStatus != models.VerificationVerified {
			abortWithAppError(c, utils.NewAppError(utils.CodeForbidden, "provider is not verified"))
			return
		}

		go func() { _ = repo.TouchLastActive(providerID) }()

		c.Set(CtxProviderID, providerID)
		c.Set(CtxRole, utils.AudienceProvider)
		c.Next()
	}
}
