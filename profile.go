package main

import (
	"net/http"
	"strings"

	"foodRecipesWebsite/internal/logger"
	"foodRecipesWebsite/internal/models"
)

const (
	msgProfileUpdated      = "Profile updated successfully!"
	msgProfileUpdateFailed = "Profile update failed"
)

type profilePage struct {
	Form      models.Profile
	Countries []models.Country
}

// handleProfilePage pre-fills the form from the profile endpoint. A failed
// fetch is logged and the form renders empty.
func (app *App) handleProfilePage(w http.ResponseWriter, r *http.Request) {
	page := profilePage{Countries: app.loadCountries(r)}

	client, err := app.apiClient(r)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to build API client")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if profile, err := client.Profile(r.Context()); err != nil {
		app.reportAPIError(r, "profile", err)
	} else {
		page.Form = *profile
	}

	app.render(w, r, "profile", http.StatusOK, &TemplateData{Title: "Profile", PageData: page})
}

func (app *App) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	upd := models.ProfileUpdate{
		FirstName:       strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:        strings.TrimSpace(r.PostFormValue("last_name")),
		Email:           strings.TrimSpace(r.PostFormValue("email")),
		Country:         strings.TrimSpace(r.PostFormValue("country")),
		CurrentPassword: r.PostFormValue("current_password"),
		NewPassword:     r.PostFormValue("new_password"),
	}
	form := models.Profile{FirstName: upd.FirstName, LastName: upd.LastName, Email: upd.Email, Country: upd.Country}

	if v := validateProfile(upd, r.PostFormValue("confirm_password")); v.HasErrors() {
		app.renderProfile(w, r, http.StatusUnprocessableEntity, form, v.First())
		return
	}

	client, err := app.apiClient(r)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to build API client")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := client.UpdateProfile(r.Context(), upd); err != nil {
		app.reportAPIError(r, "update_profile", err)
		app.renderProfile(w, r, http.StatusOK, form, formMessage(err, msgProfileUpdateFailed))
		return
	}

	app.addFlash(w, r, FlashSuccess, msgProfileUpdated)
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (app *App) renderProfile(w http.ResponseWriter, r *http.Request, status int, form models.Profile, errMsg string) {
	app.render(w, r, "profile", status, &TemplateData{
		Title: "Profile",
		Error: errMsg,
		PageData: profilePage{
			Form:      form,
			Countries: app.loadCountries(r),
		},
	})
}
