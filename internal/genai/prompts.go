// internal/genai/prompts.go
package genai

import (
	"fmt"
	"strings"

	"mealmate/internal/models"
)

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func buildMealPlanPrompt(user models.UserProfile) string {
	calories := "Calculate appropriate amount"
	if user.CalorieTarget > 0 {
		calories = fmt.Sprintf("%d", user.CalorieTarget)
	}

	var b strings.Builder
	b.WriteString("Generate a daily meal plan (Breakfast, Lunch, Dinner) for:\n")
	fmt.Fprintf(&b, "Name: %s\n", user.Name)
	fmt.Fprintf(&b, "Age: %d, Gender: %s, Activity: %s\n", user.Age, orDefault(string(user.Gender), "Unspecified"), user.ActivityLevel)
	fmt.Fprintf(&b, "Goal: %s\n", user.Goal)
	fmt.Fprintf(&b, "Diet: %s\n", user.Diet)
	fmt.Fprintf(&b, "Cuisine Preference: %s\n", orDefault(user.Cuisine, "Mixed"))
	fmt.Fprintf(&b, "Allergens to avoid: %s\n", orDefault(strings.Join(user.Allergens, ", "), "None"))
	fmt.Fprintf(&b, "Target Daily Calories: %s\n", calories)
	fmt.Fprintf(&b, "Meal Times: Breakfast %s, Lunch %s, Dinner %s\n",
		orDefault(user.MealTimes.Breakfast, "any"),
		orDefault(user.MealTimes.Lunch, "any"),
		orDefault(user.MealTimes.Dinner, "any"))
	b.WriteString("\nMake it healthy, delicious, and varied. Include simple cooking instructions.")
	return b.String()
}

func buildSwapPrompt(current models.Meal, user models.UserProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest a DIFFERENT alternative option for %s for %s.\n", current.Type, orDefault(user.Name, "the user"))
	fmt.Fprintf(&b, "Current ignored option: %s.\n", current.Name)
	fmt.Fprintf(&b, "Goal: %s. Diet: %s. Cuisine: %s.\n", user.Goal, user.Diet, orDefault(user.Cuisine, "Mixed"))
	if len(user.Allergens) > 0 {
		fmt.Fprintf(&b, "Allergens to avoid: %s.\n", strings.Join(user.Allergens, ", "))
	}
	b.WriteString("Return a single meal object.")
	return b.String()
}

func buildGroceryPrompt(ingredients []string, servings int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Given this list of ingredients: %s.\n", strings.Join(ingredients, ", "))
	fmt.Fprintf(&b, "Create a consolidated grocery shopping list for %d person(s).\n", servings)
	b.WriteString("Adjust quantities accordingly.\n")
	b.WriteString(`Return a simple list of strings with quantities (e.g. "500g Chicken Breast").`)
	return b.String()
}

func buildReportPrompt(meals []models.Meal, user models.UserProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this meal plan for %s (%d, %s, %s).\n",
		orDefault(user.Name, "the user"), user.Age, orDefault(string(user.Gender), "Unspecified"), user.Goal)
	b.WriteString("Meals:\n")
	for _, m := range meals {
		fmt.Fprintf(&b, "%s: %s (%gkcal, P:%g, C:%g, F:%g)\n",
			m.Type, m.Name, m.Macros.Calories, m.Macros.Protein, m.Macros.Carbs, m.Macros.Fats)
	}
	fmt.Fprintf(&b, "Daily calorie target: %d\n", user.CalorieTarget)
	b.WriteString("\nProvide:\n")
	b.WriteString("1. A summary.\n")
	b.WriteString("2. Suggestions for improvement.\n")
	b.WriteString("3. A nutrition score (1-100) based on balance and goal alignment.\n")
	b.WriteString("4. Potential health risks (e.g. high sodium, low fiber).\n")
	b.WriteString("5. Suggested natural supplements (e.g. Omega-3, Whey).")
	return b.String()
}

func buildMotivationPrompt(name string, checkIn models.CheckIn) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User %s log: Weight %g, Energy %g/10, Mood %g/10.\n", name, checkIn.Weight, checkIn.Energy, checkIn.Mood)
	b.WriteString("1. Motivational quote.\n")
	b.WriteString("2. One small actionable advice.\n")
	b.WriteString(`3. Suggest 1-2 gamification badges they might have earned (e.g. "Consistency King", "Mood Master").`)
	return b.String()
}

const storeSearchPrompt = "Find highly-rated grocery stores and supermarkets near this location."
