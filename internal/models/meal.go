// internal/models/meal.go
package models

type MealType string

const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
	Snack     MealType = "Snack"
)

type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Difficulties lists the accepted difficulty values in schema order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// MacroNutrients doubles as an accumulator when summing a meal collection.
type MacroNutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

func (m MacroNutrients) Add(other MacroNutrients) MacroNutrients {
	return MacroNutrients{
		Calories: m.Calories + other.Calories,
		Protein:  m.Protein + other.Protein,
		Carbs:    m.Carbs + other.Carbs,
		Fats:     m.Fats + other.Fats,
	}
}

// SumMacros totals the macros of every meal in order.
func SumMacros(meals []Meal) MacroNutrients {
	var total MacroNutrients
	for _, meal := range meals {
		total = total.Add(meal.Macros)
	}
	return total
}

type Meal struct {
	ID           string         `json:"id"`
	Type         MealType       `json:"type"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Ingredients  []string       `json:"ingredients"`
	Instructions []string       `json:"instructions"`
	CookingTime  float64        `json:"cookingTime"`
	Difficulty   Difficulty     `json:"difficulty"`
	Macros       MacroNutrients `json:"macros"`
}

// Custom meals carry fixed placeholder values since the user only supplies a name.
const (
	CustomMealDescription = "User created custom meal"
	CustomMealCookingTime = 10
)

var CustomMealMacros = MacroNutrients{Calories: 300, Protein: 10, Carbs: 30, Fats: 10}

// NewCustomMeal builds a user-entered snack with placeholder macros.
func NewCustomMeal(id, name string) Meal {
	return Meal{
		ID:           id,
		Type:         Snack,
		Name:         name,
		Description:  CustomMealDescription,
		Ingredients:  []string{},
		Instructions: []string{},
		CookingTime:  CustomMealCookingTime,
		Difficulty:   Easy,
		Macros:       CustomMealMacros,
	}
}

// IndexOf returns the position of the meal with the given identity, or -1.
func IndexOf(meals []Meal, id string) int {
	for i, meal := range meals {
		if meal.ID == id {
			return i
		}
	}
	return -1
}
