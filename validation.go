package main

import (
	"strings"

	"foodRecipesWebsite/internal/models"
)

// Messages shown for local validation failures. These forms are checked
// for presence and matching only; the API is the authority on everything
// else.
const (
	msgLoginFields      = "Please enter both email and password."
	msgRecipeFields     = "Please enter both food name and recipe."
	msgPasswordMismatch = "Passwords do not match"
	msgRegisterFields   = "Please fill in all fields."
	msgProfileFields    = "First name, last name, email and country are required."
	msgCurrentPassword  = "Enter your current password to set a new one."
)

// Validator collects validation errors
type Validator struct {
	errors []string
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		errors: make([]string, 0),
	}
}

// AddError adds a validation error
func (v *Validator) AddError(message string) {
	v.errors = append(v.errors, message)
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// First returns the first error, or "" when there is none
func (v *Validator) First() string {
	if len(v.errors) == 0 {
		return ""
	}
	return v.errors[0]
}

// RequireAll adds message once when any of values is blank
func (v *Validator) RequireAll(message string, values ...string) *Validator {
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			v.AddError(message)
			break
		}
	}
	return v
}

// ValidateMatch adds message when a and b differ
func (v *Validator) ValidateMatch(a, b, message string) *Validator {
	if a != b {
		v.AddError(message)
	}
	return v
}

func validateLogin(c models.Credentials) *Validator {
	return NewValidator().RequireAll(msgLoginFields, c.Email, c.Password)
}

func validateRegistration(reg models.Registration, confirm string) *Validator {
	v := NewValidator()
	v.RequireAll(msgRegisterFields, reg.FirstName, reg.LastName, reg.Email, reg.Country, reg.Password)
	return v.ValidateMatch(reg.Password, confirm, msgPasswordMismatch)
}

func validateRecipe(in models.RecipeInput) *Validator {
	return NewValidator().RequireAll(msgRecipeFields, in.FoodName, in.FoodRecipe)
}

func validateProfile(upd models.ProfileUpdate, confirm string) *Validator {
	v := NewValidator()
	v.RequireAll(msgProfileFields, upd.FirstName, upd.LastName, upd.Email, upd.Country)
	if upd.NewPassword != "" {
		v.ValidateMatch(upd.NewPassword, confirm, msgPasswordMismatch)
		if upd.CurrentPassword == "" {
			v.AddError(msgCurrentPassword)
		}
	}
	return v
}
