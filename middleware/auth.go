package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"handyhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Context keys set by the guards on success.
const (
	CtxUserID     = "userID"
	CtxProviderID = "providerID"
	CtxAdminID    = "adminID"
	CtxRole       = "role"
)

const (
	authSnapPrefix = "authsnap:"
	authSnapTTL    = 2 * time.Minute
)

var (
	errMissingToken = utils.NewAppError(utils.CodeUnauthenticated, "authentication required")
	errInvalidToken = utils.NewAppError(utils.CodeUnauthenticated, "invalid or expired token")
)

// identitySnapshot is the cached view of an identity's gate-keeping state.
// It keeps guard reads off the database for a short window; account
// suspensions propagate within the TTL.
type identitySnapshot struct {
	Status             string `json:"status"`
	VerificationStatus string `json:"verificationStatus,omitempty"`
}

// bearerToken extracts the credential from the Authorization header. The
// user audience additionally accepts a "token" cookie; provider and admin
// audiences are header-only.
func bearerToken(c *gin.Context, allowCookie bool) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != "" {
			return token, true
		}
	}
	if allowCookie {
		if token, err := c.Cookie("token"); err == nil && token != "" {
			return token, true
		}
	}
	return "", false
}

func abortWithAppError(c *gin.Context, err *utils.AppError) {
	c.Abort()
	utils.JSONError(c, err)
}

// snapshotFromCache loads a cached identity snapshot, returning false on
// miss or any cache error (the caller falls back to the database).
func snapshotFromCache(cache *redis.Client, audience, id string) (*identitySnapshot, bool) {
	if cache == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	raw, err := cache.Get(ctx, authSnapPrefix+audience+":"+id).Result()
	if err != nil {
		if err != redis.Nil {
			zap.L().Warn("auth cache read failed, falling back to DB", zap.Error(err))
		}
		return nil, false
	}
	var snap identitySnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, false
	}
	return &snap, true
}

// snapshotToCache stores an identity snapshot, best effort.
func snapshotToCache(cache *redis.Client, audience, id string, snap identitySnapshot) {
	if cache == nil {
		return
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := cache.Set(ctx, authSnapPrefix+audience+":"+id, raw, authSnapTTL).Err(); err != nil {
		zap.L().Warn("auth cache write failed", zap.Error(err))
	}
}
