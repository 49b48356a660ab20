package main

import (
	"net/http"
	"strconv"
	"strings"

	"foodRecipesWebsite/internal/api"
	"foodRecipesWebsite/internal/logger"
	"foodRecipesWebsite/internal/models"

	"github.com/gorilla/mux"
)

const (
	msgFetchFailed  = "Failed to fetch data."
	msgCreateFailed = "Failed to create data."
	msgUpdateFailed = "Failed to update data."
	msgDeleteFailed = "Failed to delete data."
	msgCreated      = "Data created successfully!"
	msgUpdated      = "Data updated successfully!"
	msgDeleted      = "Data deleted successfully!"
)

type homePage struct {
	Recipes []models.Recipe
	EditID  int
}

// handleHome lists the user's recipes. ?edit=<id> opens the inline editor.
func (app *App) handleHome(w http.ResponseWriter, r *http.Request) {
	page := homePage{}
	if id, err := strconv.Atoi(r.URL.Query().Get("edit")); err == nil && id > 0 {
		page.EditID = id
	}
	data := &TemplateData{Title: "Home", PageData: &page}

	client, err := app.apiClient(r)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to build API client")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	recipes, err := client.Recipes(r.Context())
	if err != nil {
		app.reportAPIError(r, "list_recipes", err)
		data.Error = api.UserMessage(err, msgFetchFailed)
	}
	page.Recipes = recipes

	app.render(w, r, "home", http.StatusOK, data)
}

func recipeInput(r *http.Request) models.RecipeInput {
	return models.RecipeInput{
		FoodName:   strings.TrimSpace(r.PostFormValue("food_name")),
		FoodRecipe: strings.TrimSpace(r.PostFormValue("food_recipe")),
	}
}

func (app *App) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	in := recipeInput(r)
	if v := validateRecipe(in); v.HasErrors() {
		app.backHome(w, r, FlashError, v.First())
		return
	}

	app.mutateRecipe(w, r, "create_recipe", msgCreated, msgCreateFailed, func(c *api.Client) error {
		return c.CreateRecipe(r.Context(), in)
	})
}

// recipeID reads the {id} route variable. An id that does not fit an int
// is answered with 404.
func recipeID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}

func (app *App) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}
	in := recipeInput(r)
	if v := validateRecipe(in); v.HasErrors() {
		app.backHome(w, r, FlashError, v.First())
		return
	}

	app.mutateRecipe(w, r, "update_recipe", msgUpdated, msgUpdateFailed, func(c *api.Client) error {
		return c.UpdateRecipe(r.Context(), id, in)
	})
}

func (app *App) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	app.mutateRecipe(w, r, "delete_recipe", msgDeleted, msgDeleteFailed, func(c *api.Client) error {
		return c.DeleteRecipe(r.Context(), id)
	})
}

// mutateRecipe runs call and sends the user back to /home, which fetches
// the list again, with a flash describing the outcome.
func (app *App) mutateRecipe(w http.ResponseWriter, r *http.Request, operation, success, fallback string, call func(*api.Client) error) {
	client, err := app.apiClient(r)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to build API client")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := call(client); err != nil {
		app.reportAPIError(r, operation, err)
		app.backHome(w, r, FlashError, api.UserMessage(err, fallback))
		return
	}
	app.backHome(w, r, FlashSuccess, success)
}

func (app *App) backHome(w http.ResponseWriter, r *http.Request, kind, message string) {
	app.addFlash(w, r, kind, message)
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}
