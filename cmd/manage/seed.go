package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/recipe-api/backend/internal/database"
	"github.com/recipe-api/backend/internal/models"
	"github.com/recipe-api/backend/internal/service"
	"github.com/recipe-api/backend/internal/types"
)

type seedRecipe struct {
	title       string
	minutes     int
	price       models.Price
	description string
	tags        []string
	ingredients []string
}

var sampleRecipes = []seedRecipe{
	{
		title:       "Thai Prawn Curry",
		minutes:     30,
		price:       1250,
		description: "A quick red curry with prawns and coconut milk.",
		tags:        []string{"Thai", "Dinner"},
		ingredients: []string{"Prawns", "Coconut Milk", "Red Curry Paste"},
	},
	{
		title:       "Avocado Toast",
		minutes:     5,
		price:       450,
		description: "Sourdough, smashed avocado, chilli flakes.",
		tags:        []string{"Breakfast", "Vegan"},
		ingredients: []string{"Avocado", "Sourdough", "Chilli Flakes"},
	},
	{
		title:       "Porridge",
		minutes:     10,
		price:       200,
		description: "Oats simmered in milk with honey.",
		tags:        []string{"Breakfast", "Vegetarian"},
		ingredients: []string{"Oats", "Milk", "Honey"},
	},
}

func names(list []string) *[]types.NamedItem {
	items := make([]types.NamedItem, len(list))
	for i, n := range list {
		items[i] = types.NamedItem{Name: n}
	}
	return &items
}

func newSeedCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample recipes for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email is required")
			}

			_, db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB(db)
			if err := database.RunMigrations(db); err != nil {
				return err
			}

			var user models.User
			if err := db.WithContext(cmd.Context()).Where("email = ?", models.NormalizeEmail(email)).First(&user).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("no user with email %s", email)
				}
				return err
			}

			recipes := service.NewRecipeService(db, nil)
			for _, s := range sampleRecipes {
				title, minutes, price, description := s.title, s.minutes, s.price, s.description
				recipe, err := recipes.CreateRecipe(cmd.Context(), user.ID, types.RecipeRequest{
					Title:       &title,
					TimeMinutes: &minutes,
					Price:       &price,
					Description: &description,
					Tags:        names(s.tags),
					Ingredients: names(s.ingredients),
				})
				if err != nil {
					return fmt.Errorf("failed to seed %q: %w", s.title, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created recipe %d: %s\n", recipe.ID, recipe.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "owner of the sample recipes")
	return cmd
}
