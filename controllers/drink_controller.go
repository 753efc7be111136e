package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type DrinkController struct {
	drinks *services.DrinkService
}

func NewDrinkController(drinks *services.DrinkService) *DrinkController {
	return &DrinkController{drinks: drinks}
}

// LogDrink runs the accrual for one drink. The bearer token is handed
// to the service untouched; the service owns credential verification,
// so nothing is read or written when the token is bad.
func (dc *DrinkController) LogDrink(c *gin.Context) {
	credential := bearerToken(c)
	if credential == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "rejected", "reason": "invalid credential"})
		return
	}

	var req services.DrinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "rejected", "reason": "invalid drink payload"})
		return
	}

	_, err := dc.drinks.LogDrink(c.Request.Context(), credential, req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "logged"})
	case errors.Is(err, services.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"status": "rejected", "reason": err.Error()})
	case errors.Is(err, services.ErrInvalidDrink), errors.Is(err, services.ErrProfileIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"status": "rejected", "reason": err.Error()})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "rejected", "reason": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"status": "failed", "reason": "server error"})
	}
}

func (dc *DrinkController) GetHistory(c *gin.Context) {
	userID := c.GetString("userID")

	limit := 0
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	drinks, err := dc.drinks.History(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, drinks)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
