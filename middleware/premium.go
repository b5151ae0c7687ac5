package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/farrowscore/api/logging"
	"github.com/farrowscore/api/model"
	"github.com/farrowscore/api/service"
	"github.com/farrowscore/api/util"
)

// RequirePremium answers 402 unless the caller holds a grant for feature. For
// game-scoped features gameParam names the path parameter carrying the game id.
func RequirePremium(access service.IAccessService, feature model.Feature, gameParam string) gin.HandlerFunc {
	spec, _ := feature.Spec()

	return func(c *gin.Context) {
		userID := util.GetUserIDFromContext(c)
		gameID := ""
		if gameParam != "" {
			gameID = c.Param(gameParam)
		}

		grant, err := access.CheckAccess(c.Request.Context(), userID, feature, gameID)
		if err != nil {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to check premium access", err)
			c.Abort()
			return
		}

		if !grant.Granted {
			logger.Debug("Premium access denied",
				logger.UserID(userID),
				logger.Feature(feature),
				zap.String("gameID", gameID))
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error":   "Payment required",
				"feature": feature,
				"price":   spec.Price,
				"game_id": gameID,
			})
			return
		}

		c.Set("accessGrant", grant)
		c.Next()
	}
}
