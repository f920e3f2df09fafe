package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"diet-planner/internal/app"
	"diet-planner/internal/metrics"
	"diet-planner/internal/nutrition"
	"diet-planner/internal/planner"
	"diet-planner/internal/shared"
	"diet-planner/internal/spoonacular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	planCalls  int
	lastFlags  nutrition.SymptomFlags
	planResult shared.Result[*app.PlanResult]
	recipe     shared.Result[*spoonacular.Recipe]
	recipeID   int
}

func (m *mockService) Plan(ctx context.Context, pd nutrition.PersonalData, flags nutrition.SymptomFlags) shared.Result[*app.PlanResult] {
	m.planCalls++
	m.lastFlags = flags
	return m.planResult
}

func (m *mockService) Recipe(ctx context.Context, id int) shared.Result[*spoonacular.Recipe] {
	m.recipeID = id
	return m.recipe
}

func newTestServer(t *testing.T, svc *mockService) http.Handler {
	t.Helper()
	srv, err := NewServer(svc, metrics.NewStore("diet").Handler(), nil)
	require.NoError(t, err)
	return srv.Routes()
}

func samplePlan() *app.PlanResult {
	week := planner.BuildWeek(map[planner.MealType][]spoonacular.RecipeSummary{
		planner.Breakfast: {{ID: 11, Title: "Oatmeal"}},
		planner.Dinner:    {{ID: 33, Title: "Salmon"}},
	})
	return &app.PlanResult{
		BMR:            1648.75,
		Budget:         nutrition.NewBudget(1978.5),
		Micronutrients: []nutrition.MicronutrientTarget{{Nutrient: nutrition.Iron, Amount: 18}},
		Plan:           week,
	}
}

func postForm(h http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/plan", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func validForm() url.Values {
	return url.Values{
		"weight":          {"70"},
		"height":          {"175"},
		"age":             {"30"},
		"gender":          {"male"},
		"activity_factor": {"1.2"},
		"symptoms":        {"fatigue", "hairLoss"},
	}
}

func TestShowForm(t *testing.T) {
	h := newTestServer(t, &mockService{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Moderately Active")
	assert.Contains(t, body, `value="poorNightVision"`)
	assert.Contains(t, body, "Slow wound healing")
}

func TestSubmitPlan(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &mockService{planResult: shared.Success(samplePlan())}
		rec := postForm(newTestServer(t, svc), validForm())

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Calories: 1979")
		assert.Contains(t, body, "Protein: 98.9 g")
		assert.Contains(t, body, "iron: 18 µg")
		assert.Contains(t, body, "Day 7")
		assert.Contains(t, body, `href="/recipes/11"`)
		assert.Contains(t, body, "Lunch: No recipe found")
		assert.True(t, svc.lastFlags[nutrition.SymptomFatigue])
		assert.True(t, svc.lastFlags[nutrition.SymptomHairLoss])
	})

	t.Run("NonNumericInputRejectedBeforePlanning", func(t *testing.T) {
		svc := &mockService{}
		form := validForm()
		form.Set("weight", "heavy")
		rec := postForm(newTestServer(t, svc), form)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "weight must be a number")
		assert.Zero(t, svc.planCalls)
	})

	t.Run("UnknownSymptom", func(t *testing.T) {
		svc := &mockService{}
		form := validForm()
		form.Add("symptoms", "hiccups")
		rec := postForm(newTestServer(t, svc), form)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, svc.planCalls)
	})

	t.Run("ServiceFailure", func(t *testing.T) {
		svc := &mockService{planResult: shared.Failure[*app.PlanResult](shared.FailureRequestFailed, errors.New("boom"))}
		rec := postForm(newTestServer(t, svc), validForm())

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), planUnavailableMessage)
	})
}

func TestShowRecipe(t *testing.T) {
	recipe := &spoonacular.Recipe{
		ID:               42,
		Title:            "Lentil Soup",
		Servings:         4,
		ReadyInMinutes:   45,
		Summary:          "<b>Hearty</b> and <a href=\"#\">warm</a>.",
		HealthScore:      80,
		SpoonacularScore: 91.6,
		Vegan:            true,
		ExtendedIngredients: []spoonacular.Ingredient{
			{ID: 1, Name: "lentils", Amount: 2, Unit: "cups", Original: "2 cups lentils"},
		},
		Nutrition: spoonacular.Nutrition{Nutrients: []spoonacular.Nutrient{
			{Name: "Iron", Amount: 6.2, Unit: "mg", PercentOfDailyNeeds: 34.44},
		}},
		AnalyzedInstructions: []spoonacular.Instruction{},
	}

	t.Run("Success", func(t *testing.T) {
		svc := &mockService{recipe: shared.Success(recipe)}
		rec := httptest.NewRecorder()
		newTestServer(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recipes/42", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Equal(t, 42, svc.recipeID)
		assert.Contains(t, body, "Spoonacular Score:</strong> 92%")
		assert.Contains(t, body, "Vegan: Yes")
		assert.Contains(t, body, "Vegetarian: No")
		assert.Contains(t, body, "Hearty and warm.")
		assert.Contains(t, body, "2 cups lentils - 2 cups lentils")
		assert.Contains(t, body, "34.4% of daily needs")
		assert.Contains(t, body, "No instructions available.")
	})

	t.Run("NonIntegerID", func(t *testing.T) {
		svc := &mockService{}
		rec := httptest.NewRecorder()
		newTestServer(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recipes/abc", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Zero(t, svc.recipeID)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := &mockService{recipe: shared.Failure[*spoonacular.Recipe](shared.FailureNotFound, spoonacular.ErrNotFound)}
		rec := httptest.NewRecorder()
		newTestServer(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recipes/7", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Page not found")
	})

	t.Run("RequestFailed", func(t *testing.T) {
		svc := &mockService{recipe: shared.Failure[*spoonacular.Recipe](shared.FailureRequestFailed, spoonacular.ErrRequestFailed)}
		rec := httptest.NewRecorder()
		newTestServer(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recipes/7", nil))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), recipeUnavailableMessage)
	})
}

func TestAPI(t *testing.T) {
	t.Run("Plan", func(t *testing.T) {
		svc := &mockService{planResult: shared.Success(samplePlan())}
		body := `{"weight":70,"height":175,"age":30,"gender":"male","activity_factor":1.2,"symptoms":["fatigue"]}`
		req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
		req.Header.Set("Origin", "http://example.com")
		rec := httptest.NewRecorder()
		newTestServer(t, svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

		var got app.PlanResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Len(t, got.Plan, planner.DaysPerWeek)
		assert.Nil(t, got.Plan[0].Lunch)
		assert.True(t, svc.lastFlags[nutrition.SymptomFatigue])
	})

	t.Run("PlanInvalidInput", func(t *testing.T) {
		verr := &nutrition.ValidationError{Fields: []nutrition.FieldError{{Field: "age", Message: "is required"}}}
		svc := &mockService{planResult: shared.Failure[*app.PlanResult](shared.FailureInvalidInput, verr)}
		req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{"weight":70}`))
		rec := httptest.NewRecorder()
		newTestServer(t, svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var got apiError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, []nutrition.FieldError{{Field: "age", Message: "is required"}}, got.Fields)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		newTestServer(t, &mockService{}).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("RecipeNotFound", func(t *testing.T) {
		svc := &mockService{recipe: shared.Failure[*spoonacular.Recipe](shared.FailureNotFound, spoonacular.ErrNotFound)}
		rec := httptest.NewRecorder()
		newTestServer(t, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recipes/9", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(t, &mockService{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var health metrics.SysHealth
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
	assert.Positive(t, health.Goroutines)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
