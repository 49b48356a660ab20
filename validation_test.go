package main

import (
	"strings"
	"testing"

	"foodRecipesWebsite/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name  string
		creds models.Credentials
		want  string
	}{
		{"complete", models.Credentials{Email: "a@b.co", Password: "pw"}, ""},
		{"no email", models.Credentials{Password: "pw"}, msgLoginFields},
		{"no password", models.Credentials{Email: "a@b.co"}, msgLoginFields},
		{"blank", models.Credentials{Email: "  ", Password: " "}, msgLoginFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validateLogin(tt.creds).First())
		})
	}
}

func TestValidateRegistration(t *testing.T) {
	reg := models.Registration{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Country: "Kenya", Password: "pw"}

	assert.False(t, validateRegistration(reg, "pw").HasErrors())
	assert.Equal(t, msgPasswordMismatch, validateRegistration(reg, "other").First())

	missing := reg
	missing.Country = ""
	assert.Equal(t, []string{msgRegisterFields}, validateRegistration(missing, "pw").errors)

	// the address format is left to the API
	unusual := reg
	unusual.Email = "josé@example.com"
	assert.False(t, validateRegistration(unusual, "pw").HasErrors())
}

func TestValidateRecipe(t *testing.T) {
	assert.False(t, validateRecipe(models.RecipeInput{FoodName: "Ugali", FoodRecipe: "Stir."}).HasErrors())
	assert.Equal(t, msgRecipeFields, validateRecipe(models.RecipeInput{FoodName: "Ugali"}).First())
	assert.Equal(t, msgRecipeFields, validateRecipe(models.RecipeInput{FoodRecipe: "Stir."}).First())
	assert.Equal(t, msgRecipeFields, validateRecipe(models.RecipeInput{FoodName: " ", FoodRecipe: "\t"}).First())

	long := models.RecipeInput{FoodName: strings.Repeat("a", 500), FoodRecipe: strings.Repeat("b", 20000)}
	assert.False(t, validateRecipe(long).HasErrors())
}

func TestValidateProfile(t *testing.T) {
	upd := models.ProfileUpdate{FirstName: "Ada", LastName: "King", Email: "ada@example.com", Country: "Kenya"}

	assert.False(t, validateProfile(upd, "").HasErrors(), "password change is optional")

	withPassword := upd
	withPassword.NewPassword = "next"
	withPassword.CurrentPassword = "secret"
	assert.False(t, validateProfile(withPassword, "next").HasErrors())
	assert.Equal(t, msgPasswordMismatch, validateProfile(withPassword, "nope").First())

	withPassword.CurrentPassword = ""
	assert.Equal(t, []string{msgCurrentPassword}, validateProfile(withPassword, "next").errors)

	upd.LastName = ""
	assert.Equal(t, msgProfileFields, validateProfile(upd, "").First())
}
