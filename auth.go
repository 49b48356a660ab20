package main

import (
	"errors"
	"net/http"
	"strings"

	"foodRecipesWebsite/internal/api"
	"foodRecipesWebsite/internal/cookies"
	"foodRecipesWebsite/internal/logger"
	"foodRecipesWebsite/internal/models"
	"foodRecipesWebsite/internal/session"
	"foodRecipesWebsite/internal/utils"
)

const (
	msgRegistered         = "User registered successfully!"
	msgRegistrationFailed = "Registration failed"
)

type loginPage struct {
	Email string
}

type registerPage struct {
	Form      models.Registration
	Countries []models.Country
}

// formMessage is the server's message, or fallback for every other failure
// including transport errors.
func formMessage(err error, fallback string) string {
	if errors.Is(err, api.ErrTransport) {
		return fallback
	}
	return api.UserMessage(err, fallback)
}

func (app *App) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "login", http.StatusOK, &TemplateData{Title: "Login", PageData: loginPage{}})
}

func (app *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	creds := models.Credentials{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	page := loginPage{Email: creds.Email}

	if v := validateLogin(creds); v.HasErrors() {
		app.render(w, r, "login", http.StatusUnprocessableEntity, &TemplateData{Title: "Login", Error: v.First(), PageData: page})
		return
	}

	client, err := app.apiClient(r)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to build API client")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp, err := client.Login(r.Context(), creds)
	if err != nil {
		app.reportAPIError(r, "login", err)
		app.render(w, r, "login", http.StatusOK, &TemplateData{
			Title:    "Login",
			Error:    api.UserMessage(err, api.GenericMessage),
			PageData: page,
		})
		return
	}

	if err := session.FromContext(r.Context()).Login(resp.Token, resp.User); err != nil {
		logger.Log.WithError(err).Warn("Login response carried no usable token")
		app.render(w, r, "login", http.StatusOK, &TemplateData{Title: "Login", Error: api.GenericMessage, PageData: page})
		return
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id":    resp.User.ID,
		"request_id": utils.GetRequestID(r),
	}).Info("User logged in")
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

func (app *App) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	app.renderRegister(w, r, http.StatusOK, models.Registration{}, "")
}

func (app *App) renderRegister(w http.ResponseWriter, r *http.Request, status int, form models.Registration, errMsg string) {
	form.Password = ""
	app.render(w, r, "register", status, &TemplateData{
		Title: "Register",
		Error: errMsg,
		PageData: registerPage{
			Form:      form,
			Countries: app.loadCountries(r),
		},
	})
}

// loadCountries fetches the country list for a form. A failure is logged
// and the form renders with an empty list.
func (app *App) loadCountries(r *http.Request) []models.Country {
	client, err := app.apiClient(r)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to build API client")
		return nil
	}

	countries, err := app.Countries.Countries(r.Context(), client)
	if err != nil {
		app.reportAPIError(r, "countries", err)
		return nil
	}
	return countries
}

func (app *App) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	reg := models.Registration{
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Country:   strings.TrimSpace(r.PostFormValue("country")),
		Password:  r.PostFormValue("password"),
	}

	if v := validateRegistration(reg, r.PostFormValue("confirm_password")); v.HasErrors() {
		app.renderRegister(w, r, http.StatusUnprocessableEntity, reg, v.First())
		return
	}

	client, err := app.apiClient(r)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to build API client")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := client.Register(r.Context(), reg); err != nil {
		app.reportAPIError(r, "register", err)
		app.renderRegister(w, r, http.StatusOK, reg, formMessage(err, msgRegistrationFailed))
		return
	}

	app.addFlash(w, r, FlashSuccess, msgRegistered)
	http.Redirect(w, r, "/register", http.StatusSeeOther)
}

// handleLogout ends the session and clears every cookie of the site.
func (app *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	session.FromContext(r.Context()).Logout()
	cookies.FromContext(r.Context()).ClearAll()

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
