package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"diet-planner/internal/app"
	"diet-planner/internal/nutrition"
	"diet-planner/internal/shared"
	"diet-planner/internal/spoonacular"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	recipeUnavailableMessage = "Unable to load the recipe. Please try again later."
	planUnavailableMessage   = "Unable to generate a meal plan. Please try again later."
)

type symptomOption struct {
	ID      nutrition.Symptom
	Label   string
	Checked bool
}

type formView struct {
	Form           nutrition.RawPersonalData
	ActivityLevels []nutrition.ActivityLevel
	Symptoms       []symptomOption
	Errors         []nutrition.FieldError
	Result         *app.PlanResult
}

type messageView struct {
	Message string
}

type recipeView struct {
	Recipe *spoonacular.Recipe
}

func newFormView(raw nutrition.RawPersonalData, checked map[string]bool) formView {
	if raw.Gender == "" {
		raw.Gender = string(nutrition.GenderMale)
	}
	if raw.ActivityFactor == "" {
		raw.ActivityFactor = strconv.FormatFloat(nutrition.ActivityLevels[0].Factor, 'f', -1, 64)
	}
	options := make([]symptomOption, 0, len(nutrition.Symptoms))
	for _, sym := range nutrition.Symptoms {
		options = append(options, symptomOption{
			ID:      sym,
			Label:   sym.Label(),
			Checked: checked[strings.ToLower(string(sym))],
		})
	}
	return formView{
		Form:           raw,
		ActivityLevels: nutrition.ActivityLevels,
		Symptoms:       options,
	}
}

func (s *Server) showForm(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, "form", newFormView(nutrition.RawPersonalData{}, nil))
}

func (s *Server) submitPlan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	raw := nutrition.RawPersonalData{
		Weight:         r.PostForm.Get("weight"),
		Height:         r.PostForm.Get("height"),
		Age:            r.PostForm.Get("age"),
		Gender:         r.PostForm.Get("gender"),
		ActivityFactor: r.PostForm.Get("activity_factor"),
	}
	names := r.PostForm["symptoms"]
	checked := make(map[string]bool, len(names))
	for _, n := range names {
		checked[strings.ToLower(strings.TrimSpace(n))] = true
	}
	view := newFormView(raw, checked)

	pd, err := nutrition.ParsePersonalData(raw)
	if err != nil {
		view.Errors = fieldErrors(err)
		s.render(w, http.StatusBadRequest, "form", view)
		return
	}
	flags, err := nutrition.ParseSymptoms(names)
	if err != nil {
		view.Errors = []nutrition.FieldError{{Field: "symptoms", Message: err.Error()}}
		s.render(w, http.StatusBadRequest, "form", view)
		return
	}

	res := s.service.Plan(r.Context(), pd, flags)
	switch {
	case res.IsSuccess():
		view.Result = res.Value
		s.render(w, http.StatusOK, "plan", view)
	case res.Kind == shared.FailureInvalidInput:
		view.Errors = fieldErrors(res.Err)
		s.render(w, http.StatusBadRequest, "form", view)
	default:
		s.logger.Error("failed to generate plan", zap.Error(res.Err))
		s.render(w, http.StatusBadGateway, "error", messageView{Message: planUnavailableMessage})
	}
}

func (s *Server) showRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "recipeID"))
	if err != nil {
		s.notFound(w, r)
		return
	}

	res := s.service.Recipe(r.Context(), id)
	switch {
	case res.IsSuccess():
		s.render(w, http.StatusOK, "recipe", recipeView{Recipe: res.Value})
	case res.Kind == shared.FailureNotFound:
		s.notFound(w, r)
	default:
		s.render(w, http.StatusBadGateway, "error", messageView{Message: recipeUnavailableMessage})
	}
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, http.StatusNotFound, apiError{Error: "not found"})
		return
	}
	s.render(w, http.StatusNotFound, "not_found", messageView{
		Message: "The page you are looking for does not exist.",
	})
}

func fieldErrors(err error) []nutrition.FieldError {
	var verr *nutrition.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return []nutrition.FieldError{{Field: "input", Message: err.Error()}}
}
