package handlers

import (
	"net/http"

	"foodRecipesWebsite/internal/models"
	"foodRecipesWebsite/internal/services"
	"foodRecipesWebsite/internal/utils"
)

type RecipeHandlers struct {
	recipes *services.RecipeService
}

func NewRecipeHandlers(recipes *services.RecipeService) *RecipeHandlers {
	return &RecipeHandlers{recipes: recipes}
}

func (h *RecipeHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.RequireAuthentication(w, r)
	if !ok {
		return
	}

	var in models.RecipeInput
	if !decodeJSON(w, r, &in) {
		return
	}

	recipe, err := h.recipes.Create(r.Context(), userID, in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.RequireAuthentication(w, r)
	if !ok {
		return
	}

	recipes, err := h.recipes.List(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	utils.RespondWithJSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.RequireAuthentication(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in models.RecipeInput
	if !decodeJSON(w, r, &in) {
		return
	}

	if err := h.recipes.Update(r.Context(), userID, id, in); err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithMessage(w, http.StatusOK, "Data updated successfully")
}

func (h *RecipeHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.RequireAuthentication(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.recipes.Delete(r.Context(), userID, id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithMessage(w, http.StatusOK, "Data deleted successfully")
}
