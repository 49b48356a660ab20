package handlers

import (
	"net/http"

	"foodRecipesWebsite/internal/services"
	"foodRecipesWebsite/internal/utils"

	"github.com/gorilla/mux"
)

// Services bundles what the API routes need.
type Services struct {
	Store   *services.Store
	Auth    *services.AuthService
	Recipes *services.RecipeService
}

// NewRouter builds the API routes. middleware is applied to every route
// before authentication.
func NewRouter(svc Services, middleware ...mux.MiddlewareFunc) *mux.Router {
	auth := NewAuthHandlers(svc.Auth, svc.Store)
	recipes := NewRecipeHandlers(svc.Recipes)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		utils.NotFoundError(w, "Endpoint")
	})
	for _, mw := range middleware {
		r.Use(mw)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users/login", auth.HandleLogin).Methods("POST")
	api.HandleFunc("/users/register", auth.HandleRegister).Methods("POST")
	api.HandleFunc("/countries", auth.HandleCountries).Methods("GET")

	private := api.PathPrefix("/users").Subrouter()
	private.Use(BearerMiddleware(svc.Auth))
	private.HandleFunc("/profile", auth.HandleProfile).Methods("GET")
	private.HandleFunc("/update", auth.HandleUpdateProfile).Methods("PUT")
	private.HandleFunc("/data/create", recipes.HandleCreate).Methods("POST")
	private.HandleFunc("/data", recipes.HandleList).Methods("GET")
	private.HandleFunc("/data/update/{id:[0-9]+}", recipes.HandleUpdate).Methods("PUT")
	private.HandleFunc("/data/delete/{id:[0-9]+}", recipes.HandleDelete).Methods("DELETE")

	return r
}
