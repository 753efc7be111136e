package controllers

import (
	"net/http"
	"strings"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type CocktailController struct {
	cocktails *services.CocktailService
}

func NewCocktailController(cocktails *services.CocktailService) *CocktailController {
	return &CocktailController{cocktails: cocktails}
}

func (cc *CocktailController) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	results, err := cc.cocktails.Search(query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "cocktail lookup failed"})
		return
	}
	c.JSON(http.StatusOK, results)
}
