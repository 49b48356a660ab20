package api

import (
	"strconv"
	"strings"
)

// Base URLs of the remote API per deployment environment.
var BaseURLs = map[string]string{
	"local": "http://localhost:8080/",
	"dev":   "https://mydb-beta.vercel.app/",
}

// DefaultEnvironment is used when no environment is configured.
const DefaultEnvironment = "dev"

// BaseURLFor returns override when set, otherwise the base URL of env.
func BaseURLFor(env, override string) (string, bool) {
	if override != "" {
		return override, true
	}
	if env == "" {
		env = DefaultEnvironment
	}
	u, ok := BaseURLs[strings.ToLower(env)]
	return u, ok
}

// Endpoint catalog of the remote API.
const (
	LoginPath         = "/api/users/login"
	RegisterPath      = "/api/users/register"
	CountriesPath     = "/api/countries"
	ProfilePath       = "/api/users/profile"
	UpdateProfilePath = "/api/users/update"
	CreateRecipePath  = "/api/users/data/create"
	RecipesPath       = "/api/users/data"
	UpdateRecipePath  = "/api/users/data/update"
	DeleteRecipePath  = "/api/users/data/delete"
)

// RecipeUpdatePath is the update endpoint for one recipe.
func RecipeUpdatePath(id int) string {
	return UpdateRecipePath + "/" + strconv.Itoa(id)
}

// RecipeDeletePath is the delete endpoint for one recipe.
func RecipeDeletePath(id int) string {
	return DeleteRecipePath + "/" + strconv.Itoa(id)
}
