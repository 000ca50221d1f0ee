package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdamamSearchMapsHits(t *testing.T) {
	var gotQuery, gotAppID, gotAppKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAppID = r.URL.Query().Get("app_id")
		gotAppKey = r.URL.Query().Get("app_key")
		assert.Equal(t, "public", r.URL.Query().Get("type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"hits": [
				{"recipe": {
					"label": "Roast Chicken",
					"image": "https://img.example.com/a.jpg",
					"ingredientLines": ["1 whole chicken", "salt"],
					"cuisineType": ["american"],
					"dishType": ["main course"],
					"url": "https://recipes.example.com/a"
				}},
				{"recipe": {
					"label": "Mystery Dish",
					"image": "https://img.example.com/m.jpg",
					"ingredientLines": ["something"],
					"cuisineType": ["french"],
					"url": "https://recipes.example.com/m"
				}}
			]
		}`))
	}))
	defer server.Close()

	p := NewEdamamProviderWithBaseURL(server.URL, "test-id", "test-key")

	candidates, err := p.Search(context.Background(), "chicken")
	require.NoError(t, err)

	assert.Equal(t, "chicken", gotQuery)
	assert.Equal(t, "test-id", gotAppID)
	assert.Equal(t, "test-key", gotAppKey)

	require.Len(t, candidates, 2)
	assert.Equal(t, "Roast Chicken", candidates[0].Label)
	assert.Equal(t, []string{"1 whole chicken", "salt"}, candidates[0].IngredientLines)
	assert.Equal(t, []string{"main course"}, candidates[0].DishType)
	assert.Equal(t, "https://recipes.example.com/a", candidates[0].URL)

	// degraded hit: no dishType tag, still a valid candidate
	assert.Empty(t, candidates[1].DishType)
	assert.Equal(t, "https://recipes.example.com/m", candidates[1].URL)
}

func TestEdamamSearchEmptyHits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hits": []}`))
	}))
	defer server.Close()

	p := NewEdamamProviderWithBaseURL(server.URL, "test-id", "test-key")

	candidates, err := p.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestEdamamSearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	p := NewEdamamProviderWithBaseURL(server.URL, "bad-id", "bad-key")

	_, err := p.Search(context.Background(), "chicken")
	assert.Error(t, err)
}

func TestEdamamSearchMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	p := NewEdamamProviderWithBaseURL(server.URL, "test-id", "test-key")

	_, err := p.Search(context.Background(), "chicken")
	assert.Error(t, err)
}
