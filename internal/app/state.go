// internal/app/state.go
package app

import (
	"errors"

	"mealmate/internal/models"
)

// State is a read-only snapshot of everything the screens render.
type State struct {
	Screen        models.Screen           `json:"screen"`
	Profile       models.UserProfile      `json:"profile"`
	Plan          []models.Meal           `json:"plan"`
	GroceryList   []string                `json:"groceryList"`
	Servings      int                     `json:"servings"`
	Report        *models.NutritionReport `json:"report,omitempty"`
	Favorites     []models.Meal           `json:"favorites"`
	Badges        []string                `json:"badges"`
	Photos        []string                `json:"photos"`
	Progress      *models.ProgressResult  `json:"progress,omitempty"`
	Stores        []models.StoreResult    `json:"stores"`
	Loading       bool                    `json:"loading"`
	FindingStores bool                    `json:"findingStores"`
}

func (s State) clone() State {
	out := s
	out.Profile.Allergens = cloneStrings(s.Profile.Allergens)
	out.Plan = cloneMeals(s.Plan)
	out.GroceryList = cloneStrings(s.GroceryList)
	out.Favorites = cloneMeals(s.Favorites)
	out.Badges = cloneStrings(s.Badges)
	out.Photos = cloneStrings(s.Photos)
	out.Stores = append([]models.StoreResult{}, s.Stores...)
	if s.Report != nil {
		report := *s.Report
		report.Suggestions = cloneStrings(s.Report.Suggestions)
		report.HealthRisks = cloneStrings(s.Report.HealthRisks)
		report.Supplements = cloneStrings(s.Report.Supplements)
		out.Report = &report
	}
	if s.Progress != nil {
		progress := *s.Progress
		progress.Badges = cloneStrings(s.Progress.Badges)
		out.Progress = &progress
	}
	return out
}

func cloneStrings(in []string) []string {
	return append([]string{}, in...)
}

func cloneMeals(in []models.Meal) []models.Meal {
	out := make([]models.Meal, len(in))
	for i, meal := range in {
		meal.Ingredients = cloneStrings(meal.Ingredients)
		meal.Instructions = cloneStrings(meal.Instructions)
		out[i] = meal
	}
	return out
}

var (
	ErrNoPlan       = errors.New("no meal plan")
	ErrMealNotFound = errors.New("meal not found")
)

// Alert is the user-visible error every failed operation returns.
type Alert struct {
	Message string
	Err     error
}

func (a *Alert) Error() string {
	if a.Err != nil {
		return a.Message + ": " + a.Err.Error()
	}
	return a.Message
}

func (a *Alert) Unwrap() error {
	return a.Err
}

func alert(message string, err error) error {
	return &Alert{Message: message, Err: err}
}

const (
	msgNameRequired     = "Please enter your name!"
	msgPlanFailed       = "Failed to generate plan. Please try again."
	msgSwapFailed       = "Could not swap meal."
	msgListFailed       = "Failed to create list."
	msgReportFailed     = "Could not analyze nutrition."
	msgNoPlan           = "Generate a meal plan first."
	msgMealNotFound     = "That meal is no longer available."
	msgSaveFailed       = "Could not save your changes."
	msgInvalidCheckIn   = "Please enter valid check-in values."
	msgNoPhoto          = "Please select a photo."
	msgMealNameRequired = "Please enter a meal name."
	msgNoGeolocation    = "Geolocation is not supported on this device."
	msgNoLocation       = "Unable to retrieve your location."
	msgStoresFailed     = "Could not find stores"
	msgNoStores         = "No stores found nearby."
	msgNoSpeech         = "Text-to-speech not supported."
	msgSpeechFailed     = "Could not read the recipe aloud."
	msgInvalidServings  = "Servings must be between 1 and 10."
	msgInvalidScreen    = "Unknown screen."
	msgNoGroceryList    = "Create a grocery list first."
	msgExportFailed     = "Could not export the grocery list."
)
