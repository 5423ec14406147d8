// internal/models/report.go
package models

type NutritionReport struct {
	TotalCalories float64        `json:"totalCalories"`
	TotalMacros   MacroNutrients `json:"totalMacros"`
	Summary       string         `json:"summary"`
	Suggestions   []string       `json:"suggestions"`
	Score         float64        `json:"score"`
	HealthRisks   []string       `json:"healthRisks"`
	Supplements   []string       `json:"supplements"`
}

// CheckIn is the progress form snapshot sent for motivation.
type CheckIn struct {
	Weight float64 `json:"weight"`
	Energy float64 `json:"energy"`
	Mood   float64 `json:"mood"`
}

type ProgressResult struct {
	Quote  string   `json:"quote"`
	Advice string   `json:"advice"`
	Badges []string `json:"badges"`
}

type StoreSource string

const (
	MapsSource StoreSource = "maps"
	WebSource  StoreSource = "web"
)

// StoreResult is one location-grounded result from a nearby store search.
type StoreResult struct {
	Title  string      `json:"title"`
	URI    string      `json:"uri"`
	Source StoreSource `json:"source"`
}

type Screen string

const (
	WelcomeScreen         Screen = "WELCOME"
	MealPlanScreen        Screen = "MEAL_PLAN"
	GroceryListScreen     Screen = "GROCERY_LIST"
	NutritionReportScreen Screen = "NUTRITION_REPORT"
	ProgressTrackerScreen Screen = "PROGRESS_TRACKER"
	FavoritesScreen       Screen = "FAVORITES"
	SettingsScreen        Screen = "SETTINGS"
)

var Screens = []Screen{
	WelcomeScreen,
	MealPlanScreen,
	GroceryListScreen,
	NutritionReportScreen,
	ProgressTrackerScreen,
	FavoritesScreen,
	SettingsScreen,
}

func (s Screen) Valid() bool {
	for _, screen := range Screens {
		if s == screen {
			return true
		}
	}
	return false
}
