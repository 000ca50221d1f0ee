package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dishcovery/dishcovery/internal/utils"
)

const edamamBaseURL = "https://api.edamam.com/api/recipes/v2"

type (
	edamamProvider struct {
		baseURL    string
		appID      string
		appKey     string
		httpClient *http.Client
	}

	edamamResponse struct {
		Hits []struct {
			Recipe struct {
				Label           string   `json:"label"`
				Image           string   `json:"image"`
				IngredientLines []string `json:"ingredientLines"`
				CuisineType     []string `json:"cuisineType"`
				DishType        []string `json:"dishType"`
				URL             string   `json:"url"`
			} `json:"recipe"`
		} `json:"hits"`
	}
)

func NewEdamamProvider() RecipeProvider {
	return &edamamProvider{
		baseURL:    edamamBaseURL,
		appID:      utils.GetConfig("EDAMAM_APP_ID"),
		appKey:     utils.GetConfig("EDAMAM_APP_KEY"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewEdamamProviderWithBaseURL points the client at a non-default endpoint.
func NewEdamamProviderWithBaseURL(baseURL, appID, appKey string) RecipeProvider {
	return &edamamProvider{
		baseURL:    baseURL,
		appID:      appID,
		appKey:     appKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *edamamProvider) Search(ctx context.Context, query string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("type", "public")
	params.Set("q", query)
	params.Set("app_id", p.appID)
	params.Set("app_key", p.appKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("edamam API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var edamamResp edamamResponse
	if err := json.NewDecoder(resp.Body).Decode(&edamamResp); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(edamamResp.Hits))
	for _, hit := range edamamResp.Hits {
		candidates = append(candidates, Candidate{
			Label:           hit.Recipe.Label,
			Image:           hit.Recipe.Image,
			IngredientLines: hit.Recipe.IngredientLines,
			CuisineType:     hit.Recipe.CuisineType,
			DishType:        hit.Recipe.DishType,
			URL:             hit.Recipe.URL,
		})
	}

	return candidates, nil
}
