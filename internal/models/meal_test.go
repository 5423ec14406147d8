package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSumMacrosAddsEveryField(t *testing.T) {
	meals := []Meal{
		{ID: "a", Macros: MacroNutrients{Calories: 420, Protein: 25, Carbs: 50, Fats: 12}},
		{ID: "b", Macros: MacroNutrients{Calories: 610.5, Protein: 40, Carbs: 60, Fats: 20.25}},
		{ID: "c", Macros: MacroNutrients{Calories: 0, Protein: 0, Carbs: 0, Fats: 0}},
	}

	total := SumMacros(meals)
	require.Equal(t, MacroNutrients{Calories: 1030.5, Protein: 65, Carbs: 110, Fats: 32.25}, total)
	require.Equal(t, MacroNutrients{}, SumMacros(nil))
}

func TestNewCustomMealUsesPlaceholders(t *testing.T) {
	meal := NewCustomMeal("id-1", "Grandma's Pie")

	require.Equal(t, "id-1", meal.ID)
	require.Equal(t, "Grandma's Pie", meal.Name)
	require.Equal(t, Snack, meal.Type)
	require.Empty(t, meal.Ingredients)
	require.NotNil(t, meal.Ingredients)
	require.Empty(t, meal.Instructions)
	require.Equal(t, MacroNutrients{Calories: 300, Protein: 10, Carbs: 30, Fats: 10}, meal.Macros)
	require.Equal(t, Easy, meal.Difficulty)
}

func TestIndexOf(t *testing.T) {
	meals := []Meal{{ID: "x"}, {ID: "y"}}
	require.Equal(t, 1, IndexOf(meals, "y"))
	require.Equal(t, -1, IndexOf(meals, "z"))
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	require.Empty(t, p.Name)
	require.Equal(t, 25, p.Age)
	require.Equal(t, GeneralFitness, p.Goal)
	require.Equal(t, 2000, p.CalorieTarget)
	require.Equal(t, DarkTheme, p.Theme)
	require.Equal(t, "Mixed", p.Cuisine)
	require.Equal(t, "08:00", p.MealTimes.Breakfast)
}

func TestScreenValid(t *testing.T) {
	require.True(t, GroceryListScreen.Valid())
	require.False(t, Screen("CHECKOUT").Valid())
}
