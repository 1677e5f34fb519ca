package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velokiez/cargoshare-backend/internal/middleware"
	"github.com/velokiez/cargoshare-backend/supporter"
)

type supporterResponse struct {
	ID                 int     `json:"id"`
	SupporterTypeTitle string  `json:"supporterTypeTitle"`
	Locale             string  `json:"locale"`
	Title              string  `json:"title"`
	Description        *string `json:"description"`
	URL                *string `json:"url"`
	LogoURL            *string `json:"logoUrl"`
	LogoWidth          *int16  `json:"logoWidth"`
	LogoHeight         *int16  `json:"logoHeight"`
}

func toSupporterResponse(s supporter.SupporterWithTypeAndTranslatable) supporterResponse {
	return supporterResponse{
		ID:                 s.ID,
		SupporterTypeTitle: s.SupporterTypeTitle,
		Locale:             s.Locale,
		Title:              s.Title,
		Description:        s.Description,
		URL:                s.URL,
		LogoURL:            s.LogoURL,
		LogoWidth:          s.LogoWidth,
		LogoHeight:         s.LogoHeight,
	}
}

func (a *API) supportersHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	supporters, err := a.supporters.GetSupporters(c)
	if err != nil {
		logger.ErrorContext(c, "failed to get supporters", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]supporterResponse, 0, len(supporters))
	for _, s := range supporters {
		responses = append(responses, toSupporterResponse(s))
	}

	c.JSON(http.StatusOK, responses)
}
