// internal/genai/errors.go
package genai

import (
	"errors"
	"fmt"
)

const (
	OpMealPlan        = "generate_meal_plan"
	OpSwapMeal        = "swap_meal"
	OpGroceryList     = "generate_grocery_list"
	OpNutritionReport = "generate_nutrition_report"
	OpMotivation      = "generate_motivation"
	OpFindStores      = "find_grocery_stores"
)

var (
	ErrEmptyResponse = errors.New("no data returned")
	ErrMissingField  = errors.New("missing required field")
)

// GenerationError reports that an operation did not yield a valid payload.
// Callers must not assume any partial result accompanies it.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func generationError(op string, err error) error {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return err
	}
	return &GenerationError{Op: op, Err: err}
}
