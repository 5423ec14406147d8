// internal/models/profile.go
package models

type HealthGoal string

const (
	WeightLoss     HealthGoal = "Weight Loss"
	MuscleGain     HealthGoal = "Muscle Gain"
	GeneralFitness HealthGoal = "General Fitness"
)

type DietaryPreference string

const (
	Vegetarian   DietaryPreference = "Vegetarian"
	Vegan        DietaryPreference = "Vegan"
	Keto         DietaryPreference = "Keto"
	Balanced     DietaryPreference = "Balanced"
	NoPreference DietaryPreference = "No Preference"
)

type ActivityLevel string

const (
	Sedentary      ActivityLevel = "Sedentary"
	ModerateActive ActivityLevel = "Moderate"
	HighlyActive   ActivityLevel = "High"
)

type AppTheme string

const (
	DarkTheme   AppTheme = "Dark"
	LightTheme  AppTheme = "Light"
	PastelTheme AppTheme = "Pastel"
)

// Gender is optional; the zero value means unset.
type Gender string

const (
	Male        Gender = "Male"
	Female      Gender = "Female"
	OtherGender Gender = "Other"
	GenderUnset Gender = ""
)

type MealTimes struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

type UserProfile struct {
	Name          string            `json:"name"`
	Age           int               `json:"age"`
	Gender        Gender            `json:"gender"`
	Goal          HealthGoal        `json:"goal"`
	Diet          DietaryPreference `json:"diet"`
	ActivityLevel ActivityLevel     `json:"activityLevel"`
	CalorieTarget int               `json:"calorieTarget"`
	MealTimes     MealTimes         `json:"mealTimes"`
	Allergens     []string          `json:"allergens"`
	Cuisine       string            `json:"cuisine"`
	Theme         AppTheme          `json:"theme"`
}

// The UI offers calorie targets in this range; the model itself does not enforce it.
const (
	MinCalorieTarget = 1200
	MaxCalorieTarget = 4000
)

func DefaultProfile() UserProfile {
	return UserProfile{
		Name:          "",
		Age:           25,
		Gender:        GenderUnset,
		Goal:          GeneralFitness,
		Diet:          NoPreference,
		ActivityLevel: ModerateActive,
		CalorieTarget: 2000,
		MealTimes: MealTimes{
			Breakfast: "08:00",
			Lunch:     "13:00",
			Dinner:    "19:00",
		},
		Allergens: []string{},
		Cuisine:   "Mixed",
		Theme:     DarkTheme,
	}
}
