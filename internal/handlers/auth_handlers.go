package handlers

import (
	"net/http"

	"foodRecipesWebsite/internal/models"
	"foodRecipesWebsite/internal/services"
	"foodRecipesWebsite/internal/utils"
)

// AuthHandlers serves the account endpoints
type AuthHandlers struct {
	authService *services.AuthService
	store       *services.Store
}

// NewAuthHandlers creates new authentication handlers
func NewAuthHandlers(authService *services.AuthService, store *services.Store) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		store:       store,
	}
}

func (h *AuthHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}

	resp, err := h.authService.Login(r.Context(), creds)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if !decodeJSON(w, r, &reg) {
		return
	}

	if err := h.authService.Register(r.Context(), reg); err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithMessage(w, http.StatusOK, "User registered successfully")
}

func (h *AuthHandlers) HandleCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.store.Countries(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, countries)
}

func (h *AuthHandlers) HandleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.RequireAuthentication(w, r)
	if !ok {
		return
	}

	profile, err := h.authService.Profile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, profile)
}

func (h *AuthHandlers) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.RequireAuthentication(w, r)
	if !ok {
		return
	}

	var upd models.ProfileUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}

	if err := h.authService.UpdateProfile(r.Context(), userID, upd); err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondWithMessage(w, http.StatusOK, "Profile updated successfully")
}
