package models

// Recipe is one named recipe record owned by a user.
type Recipe struct {
	ID         int    `json:"id"`
	FoodName   string `json:"food_name"`
	FoodRecipe string `json:"food_recipe"`
}

// RecipeInput is the create/update request body.
type RecipeInput struct {
	FoodName   string `json:"food_name"`
	FoodRecipe string `json:"food_recipe"`
}
