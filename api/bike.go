package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velokiez/cargoshare-backend/bike"
	"github.com/velokiez/cargoshare-backend/internal/middleware"
)

type bikeResponse struct {
	ID          int     `json:"id"`
	BikeID      int     `json:"bikeId"`
	Locale      string  `json:"locale"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
}

func toBikeResponse(t bike.Translatable) bikeResponse {
	return bikeResponse{
		ID:          t.ID,
		BikeID:      t.BikeID,
		Locale:      t.Locale,
		Title:       t.Title,
		Description: t.Description,
		URL:         t.URL,
	}
}

func (a *API) bikesHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	bikes, err := a.bikes.GetBikes(c)
	if err != nil {
		logger.ErrorContext(c, "failed to get bikes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]bikeResponse, 0, len(bikes))
	for _, b := range bikes {
		responses = append(responses, toBikeResponse(b))
	}

	c.JSON(http.StatusOK, responses)
}
