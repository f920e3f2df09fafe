package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"diet-planner/internal/nutrition"
	"diet-planner/internal/shared"

	"github.com/go-chi/chi/v5"
)

type planRequest struct {
	nutrition.PersonalData
	Symptoms []string `json:"symptoms"`
}

type apiError struct {
	Error  string                 `json:"error"`
	Fields []nutrition.FieldError `json:"fields,omitempty"`
}

func (s *Server) apiPlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body"})
		return
	}
	if req.Gender == "" {
		req.Gender = nutrition.GenderMale
	}
	if req.ActivityFactor == 0 {
		req.ActivityFactor = nutrition.ActivityLevels[0].Factor
	}

	flags, err := nutrition.ParseSymptoms(req.Symptoms)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}

	res := s.service.Plan(r.Context(), req.PersonalData, flags)
	switch {
	case res.IsSuccess():
		writeJSON(w, http.StatusOK, res.Value)
	case res.Kind == shared.FailureInvalidInput:
		writeJSON(w, http.StatusBadRequest, apiError{Error: res.Err.Error(), Fields: fieldErrors(res.Err)})
	default:
		writeJSON(w, http.StatusBadGateway, apiError{Error: planUnavailableMessage})
	}
}

func (s *Server) apiRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "recipeID"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, apiError{Error: "recipe not found"})
		return
	}

	res := s.service.Recipe(r.Context(), id)
	switch {
	case res.IsSuccess():
		writeJSON(w, http.StatusOK, res.Value)
	case res.Kind == shared.FailureNotFound:
		writeJSON(w, http.StatusNotFound, apiError{Error: "recipe not found"})
	default:
		writeJSON(w, http.StatusBadGateway, apiError{Error: recipeUnavailableMessage})
	}
}
