package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/velokiez/cargoshare-backend/internal/middleware"
	"github.com/velokiez/cargoshare-backend/rent"
)

type rentResponse struct {
	ID                  int        `json:"id"`
	TokenID             int        `json:"tokenId"`
	BikeID              int        `json:"bikeId"`
	CreatedAt           time.Time  `json:"createdAt"`
	StartTimestamp      time.Time  `json:"startTimestamp"`
	EndTimestamp        time.Time  `json:"endTimestamp"`
	RevocationTimestamp *time.Time `json:"revocationTimestamp"`
}

func toRentResponse(r rent.Rent) rentResponse {
	resp := rentResponse{
		ID:             r.ID,
		TokenID:        r.TokenID,
		BikeID:         r.BikeID,
		CreatedAt:      r.CreatedAt,
		StartTimestamp: r.StartTimestamp,
		EndTimestamp:   r.EndTimestamp,
	}
	if r.RevocationTimestamp.Valid {
		resp.RevocationTimestamp = &r.RevocationTimestamp.Time
	}
	return resp
}

type createRentRequest struct {
	Token            string  `json:"token" binding:"required"`
	BikeID           int     `json:"bikeId" binding:"required"`
	StartTimestamp   string  `json:"startTimestamp" binding:"required"`
	EndTimestamp     string  `json:"endTimestamp" binding:"required"`
	EncryptedDetails string  `json:"encryptedDetails" binding:"required"`
	ShortToken       string  `json:"shortToken" binding:"required"`
	Email            *string `json:"email"`
}

func (a *API) getRentsHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	// Without as_of every active rent since the epoch is returned.
	asOf := time.Unix(0, 0).UTC()
	if asOfStr := c.Query("as_of"); asOfStr != "" {
		t, err := time.Parse(time.RFC3339, asOfStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid as_of format"})
			return
		}
		asOf = t.UTC()
	}

	rents, err := a.rents.GetRents(c, asOf)
	if err != nil {
		logger.ErrorContext(c, "failed to get rents", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]rentResponse, 0, len(rents))
	for _, r := range rents {
		responses = append(responses, toRentResponse(r))
	}

	c.JSON(http.StatusOK, responses)
}

func (a *API) createRentHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req createRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	token, err := uuid.Parse(req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid token format"})
		return
	}

	startTimestamp, err := time.Parse(time.RFC3339, req.StartTimestamp)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid startTimestamp format"})
		return
	}
	endTimestamp, err := time.Parse(time.RFC3339, req.EndTimestamp)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid endTimestamp format"})
		return
	}
	if endTimestamp.Before(startTimestamp) {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "endTimestamp before startTimestamp"})
		return
	}

	booking := rent.Booking{
		Token:            token,
		BikeID:           req.BikeID,
		StartTimestamp:   startTimestamp.UTC(),
		EndTimestamp:     endTimestamp.UTC(),
		EncryptedDetails: req.EncryptedDetails,
		ShortToken:       req.ShortToken,
		Email:            req.Email,
	}

	err = a.rents.CreateBooking(c, booking)
	if err != nil {
		if errors.Is(err, rent.ErrOverlap) {
			a.bookingsTotal.WithLabelValues("conflict").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"code": "BOOKING_OVERLAP", "message": "There is already a rent at the same period."})
			return
		}
		if errors.Is(err, rent.ErrTokenNotFound) {
			a.bookingsTotal.WithLabelValues("token_not_found").Inc()
			c.JSON(http.StatusNotFound, gin.H{"code": "TOKEN_NOT_FOUND", "message": "Token not found"})
			return
		}
		a.bookingsTotal.WithLabelValues("error").Inc()
		logger.ErrorContext(c, "failed to create booking", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	a.bookingsTotal.WithLabelValues("created").Inc()

	// The booking is committed at this point. A failed notification is
	// reported with its own status so the client can tell the difference.
	if a.sendRentMail {
		if err := a.mail.SendRentMail(c, booking); err != nil {
			logger.ErrorContext(c, "failed to send rent mail", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{
				"code":    "MAIL_SEND_FAILED",
				"message": "The rent was booked but the notification mail could not be sent",
				"token":   token,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (a *API) revokeRentHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid token format"})
		return
	}

	err = a.rents.RevokeBooking(c, token)
	if err != nil {
		if errors.Is(err, rent.ErrTokenNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "TOKEN_NOT_FOUND", "message": "Token not found"})
			return
		}
		if errors.Is(err, rent.ErrNotBooked) {
			c.JSON(http.StatusNotFound, gin.H{"code": "RENT_NOT_FOUND", "message": "No rent booked for this token"})
			return
		}
		if errors.Is(err, rent.ErrAlreadyRevoked) {
			c.JSON(http.StatusBadRequest, gin.H{"code": "ALREADY_REVOKED", "message": "Rent has already been revoked"})
			return
		}
		logger.ErrorContext(c, "failed to revoke booking", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
