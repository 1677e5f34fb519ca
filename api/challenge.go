package api

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/velokiez/cargoshare-backend/challenge"
	"github.com/velokiez/cargoshare-backend/internal/middleware"
)

// localePattern matches two-letter-dash-two-letter locales like "de-DE".
var localePattern = regexp.MustCompile(`^\w{2}-\w{2}$`)

type challengeResponse struct {
	TokenChallengeID int     `json:"tokenChallengeId"`
	Question         string  `json:"question"`
	URL              *string `json:"url"`
}

func (a *API) randomChallengeHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	locale := c.Param("locale")
	if !localePattern.MatchString(locale) {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_LOCALE", "message": "No valid locale passed."})
		return
	}

	ch, err := a.challenges.GetRandomChallenge(c, locale)
	if err != nil {
		if errors.Is(err, challenge.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "CHALLENGE_NOT_FOUND", "message": "No challenge for locale"})
			return
		}
		logger.ErrorContext(c, "failed to get random challenge", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, challengeResponse{
		TokenChallengeID: ch.TokenChallengeID,
		Question:         ch.Question,
		URL:              ch.URL,
	})
}

func (a *API) testChallengeHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var resp challenge.Response
	if err := c.ShouldBindJSON(&resp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	token, err := a.challenges.VerifyChallenge(c, resp)
	if err != nil {
		if errors.Is(err, challenge.ErrInvalidAnswer) {
			c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ANSWER", "message": "Challenge response is not valid."})
			return
		}
		logger.ErrorContext(c, "failed to verify challenge", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token.UUID})
}
