package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"foodRecipesWebsite/internal/models"
)

// RecipeService manages the recipes of a user. Every operation is scoped to
// the owner: another user's recipe behaves as missing.
type RecipeService struct {
	store *Store
}

func NewRecipeService(store *Store) *RecipeService {
	return &RecipeService{store: store}
}

func cleanRecipe(in models.RecipeInput) (models.RecipeInput, error) {
	in.FoodName = strings.TrimSpace(in.FoodName)
	in.FoodRecipe = strings.TrimSpace(in.FoodRecipe)
	if in.FoodName == "" || in.FoodRecipe == "" {
		return in, ErrRecipeFields
	}
	return in, nil
}

func (s *RecipeService) Create(ctx context.Context, userID int, in models.RecipeInput) (*models.Recipe, error) {
	in, err := cleanRecipe(in)
	if err != nil {
		return nil, err
	}

	res, err := s.store.DB.ExecContext(ctx,
		"INSERT INTO recipes (user_id, food_name, food_recipe) VALUES (?, ?, ?)",
		userID, in.FoodName, in.FoodRecipe)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	return &models.Recipe{ID: int(id), FoodName: in.FoodName, FoodRecipe: in.FoodRecipe}, nil
}

func (s *RecipeService) List(ctx context.Context, userID int) ([]models.Recipe, error) {
	rows, err := s.store.DB.QueryContext(ctx,
		"SELECT id, food_name, food_recipe FROM recipes WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	recipes := []models.Recipe{}
	for rows.Next() {
		var r models.Recipe
		if err := rows.Scan(&r.ID, &r.FoodName, &r.FoodRecipe); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

func (s *RecipeService) Update(ctx context.Context, userID, id int, in models.RecipeInput) error {
	in, err := cleanRecipe(in)
	if err != nil {
		return err
	}

	return s.store.WithTransaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE recipes SET food_name = ?, food_recipe = ? WHERE id = ? AND user_id = ?",
			in.FoodName, in.FoodRecipe, id, userID)
		if err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		return requireOneRow(res)
	})
}

func (s *RecipeService) Delete(ctx context.Context, userID, id int) error {
	return s.store.WithTransaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM recipes WHERE id = ? AND user_id = ?", id, userID)
		if err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}
		return requireOneRow(res)
	})
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrRecipeNotFound
	}
	return nil
}
