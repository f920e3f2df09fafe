package spoonacular

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"diet-planner/internal/config"
	"diet-planner/internal/nutrition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url, key string) Client {
	return NewClient(&config.Config{
		SpoonacularBaseURL: url,
		SpoonacularAPIKey:  key,
		HTTPTimeout:        2 * time.Second,
	})
}

func TestSearch(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/recipes/complexSearch", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "test_key", q.Get("apiKey"))
			assert.Equal(t, "main course", q.Get("type"))
			assert.Equal(t, "540", q.Get("minCalories"))
			assert.Equal(t, "594", q.Get("maxCalories"))
			assert.Equal(t, "7", q.Get("number"))
			assert.Equal(t, "11,22", q.Get("excludeIds"))
			assert.Equal(t, "1", q.Get("minIron"))
			assert.Equal(t, "1", q.Get("minVitaminB12"))

			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, `{
				"results": [
					{"id": 1, "title": "Lentil Stew", "image": "a.jpg", "imageType": "jpg"},
					{"id": 2, "title": "Beef Chili"}
				],
				"offset": 0, "number": 7, "totalResults": 2
			}`)
		}))
		defer server.Close()

		client := newTestClient(server.URL, "test_key")
		got, err := client.Search(context.Background(), SearchRequest{
			Category:    "main course",
			MinCalories: 540,
			MaxCalories: 594,
			Number:      7,
			NutrientMinimums: map[nutrition.Nutrient]float64{
				nutrition.Iron:       1,
				nutrition.VitaminB12: 1,
			},
			ExcludeIDs: []int{11, 22},
		})
		require.NoError(t, err)
		assert.Equal(t, []RecipeSummary{{ID: 1, Title: "Lentil Stew"}, {ID: 2, Title: "Beef Chili"}}, got)
	})

	t.Run("EmptyExclusionAndAbsentResults", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "", r.URL.Query().Get("excludeIds"))
			assert.False(t, r.URL.Query().Has("minIron"))
			fmt.Fprintln(w, `{"offset": 0, "number": 7, "totalResults": 0}`)
		}))
		defer server.Close()

		got, err := newTestClient(server.URL, "k").Search(context.Background(), SearchRequest{Category: "breakfast", Number: 7})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, "k").Search(context.Background(), SearchRequest{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRequestFailed)

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusPaymentRequired, statusErr.StatusCode)
	})

	t.Run("MissingAPIKey", func(t *testing.T) {
		_, err := newTestClient("http://unused.test", "").Search(context.Background(), SearchRequest{})
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})
}

const recipeJSON = `{
	"id": 716429,
	"title": "Pasta with Garlic",
	"image": "https://img.spoonacular.com/recipes/716429-556x370.jpg",
	"servings": 2,
	"readyInMinutes": 45,
	"summary": "You can never have <b>too many</b> main course recipes.",
	"extendedIngredients": [
		{"id": 1001, "name": "butter", "amount": 1, "unit": "tbsp", "original": "1 tbsp butter"}
	],
	"nutrition": {"nutrients": [
		{"name": "Calories", "amount": 584.46, "unit": "kcal", "percentOfDailyNeeds": 29.22}
	]},
	"analyzedInstructions": [
		{"name": "", "steps": [
			{"number": 1, "step": "Boil the pasta.", "ingredients": [{"id": 20420, "name": "pasta"}], "equipment": [{"id": 404784, "name": "pot"}]},
			{"number": 2, "step": "Serve."}
		]}
	],
	"vegetarian": true,
	"vegan": false,
	"glutenFree": false,
	"dairyFree": false,
	"veryHealthy": true,
	"healthScore": 19,
	"spoonacularScore": 83.4
}`

func TestFetchByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/recipes/716429/information", r.URL.Path)
			assert.Equal(t, "test_key", r.URL.Query().Get("apiKey"))
			assert.Equal(t, "true", r.URL.Query().Get("includeNutrition"))
			fmt.Fprintln(w, recipeJSON)
		}))
		defer server.Close()

		recipe, err := newTestClient(server.URL, "test_key").FetchByID(context.Background(), 716429)
		require.NoError(t, err)

		assert.Equal(t, "Pasta with Garlic", recipe.Title)
		assert.Equal(t, 45, recipe.ReadyInMinutes)
		assert.True(t, recipe.VeryHealthy)
		require.Len(t, recipe.ExtendedIngredients, 1)
		require.Len(t, recipe.AnalyzedInstructions, 1)
		require.Len(t, recipe.AnalyzedInstructions[0].Steps, 2)
		assert.Equal(t, "pasta", Names(recipe.AnalyzedInstructions[0].Steps[0].Ingredients))
		assert.NotNil(t, recipe.AnalyzedInstructions[0].Steps[1].Equipment)
		assert.Equal(t, "You can never have too many main course recipes.", recipe.SummaryText())
	})

	t.Run("MissingListsBecomeEmpty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintln(w, `{"id": 5, "title": "Toast"}`)
		}))
		defer server.Close()

		recipe, err := newTestClient(server.URL, "k").FetchByID(context.Background(), 5)
		require.NoError(t, err)
		assert.NotNil(t, recipe.ExtendedIngredients)
		assert.Empty(t, recipe.ExtendedIngredients)
		assert.NotNil(t, recipe.AnalyzedInstructions)
		assert.NotNil(t, recipe.Nutrition.Nutrients)
	})

	t.Run("NotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, "k").FetchByID(context.Background(), 1)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrRequestFailed)
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, "k").FetchByID(context.Background(), 1)
		assert.ErrorIs(t, err, ErrRequestFailed)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("NetworkFailure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := newTestClient(url, "k").FetchByID(context.Background(), 1)
		assert.ErrorIs(t, err, ErrRequestFailed)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("MalformedPayload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintln(w, `{"id": "not-a-number"`)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, "k").FetchByID(context.Background(), 1)
		assert.ErrorIs(t, err, ErrRequestFailed)
	})

	t.Run("MissingAPIKey", func(t *testing.T) {
		_, err := newTestClient("http://unused.test", "").FetchByID(context.Background(), 1)
		assert.ErrorIs(t, err, ErrMissingAPIKey)
		assert.ErrorIs(t, err, ErrRequestFailed)
	})
}
