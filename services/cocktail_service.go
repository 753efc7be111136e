package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// CocktailService looks drinks up on TheCocktailDB so clients can
// prefill a log entry. Read-only glue; it never touches user records.
type CocktailService struct {
	baseURL string
	client  *http.Client
}

func NewCocktailService() *CocktailService {
	return &CocktailService{
		baseURL: "https://www.thecocktaildb.com/api/json/v1/1",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type Cocktail struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Alcoholic    string `json:"alcoholic"`
	Glass        string `json:"glass"`
	Instructions string `json:"instructions"`
	ThumbURL     string `json:"thumb_url"`
}

type cocktailSearchResponse struct {
	Drinks []struct {
		IDDrink         string `json:"idDrink"`
		StrDrink        string `json:"strDrink"`
		StrCategory     string `json:"strCategory"`
		StrAlcoholic    string `json:"strAlcoholic"`
		StrGlass        string `json:"strGlass"`
		StrInstructions string `json:"strInstructions"`
		StrDrinkThumb   string `json:"strDrinkThumb"`
	} `json:"drinks"`
}

func (s *CocktailService) Search(query string) ([]Cocktail, error) {
	u := fmt.Sprintf("%s/search.php?s=%s", s.baseURL, url.QueryEscape(query))

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call cocktail API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read cocktail response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cocktail API error %d: %s", resp.StatusCode, string(body))
	}

	var sr cocktailSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse cocktail JSON: %w", err)
	}

	results := make([]Cocktail, 0, len(sr.Drinks))
	for _, d := range sr.Drinks {
		results = append(results, Cocktail{
			ID:           d.IDDrink,
			Name:         d.StrDrink,
			Category:     d.StrCategory,
			Alcoholic:    d.StrAlcoholic,
			Glass:        d.StrGlass,
			Instructions: d.StrInstructions,
			ThumbURL:     d.StrDrinkThumb,
		})
	}
	return results, nil
}
