// internal/app/favorites.go
package app

import (
	"strings"

	"mealmate/internal/models"
)

// ToggleFavorite removes the meal from favorites if present, otherwise adds
// the plan meal with that identity. It reports whether the meal was added.
func (c *Controller) ToggleFavorite(mealID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var added bool
	if idx := models.IndexOf(c.state.Favorites, mealID); idx != -1 {
		favorites := make([]models.Meal, 0, len(c.state.Favorites)-1)
		favorites = append(favorites, c.state.Favorites[:idx]...)
		favorites = append(favorites, c.state.Favorites[idx+1:]...)
		c.state.Favorites = favorites
	} else {
		idx := models.IndexOf(c.state.Plan, mealID)
		if idx == -1 {
			return false, alert(msgMealNotFound, ErrMealNotFound)
		}
		c.state.Favorites = append(cloneMeals(c.state.Favorites), cloneMeals(c.state.Plan[idx:idx+1])...)
		added = true
	}

	if err := c.store.SaveFavorites(c.state.Favorites); err != nil {
		return added, alert(msgSaveFailed, err)
	}
	return added, nil
}

// AddCustomMeal saves a user-named snack with placeholder macros to favorites.
func (c *Controller) AddCustomMeal(name string) (models.Meal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Meal{}, alert(msgMealNameRequired, nil)
	}

	meal := models.NewCustomMeal(c.newID(), name)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Favorites = append(cloneMeals(c.state.Favorites), meal)
	if err := c.store.SaveFavorites(c.state.Favorites); err != nil {
		return meal, alert(msgSaveFailed, err)
	}
	return meal, nil
}

// findMeal looks a meal up in the plan first, then in favorites.
func (c *Controller) findMeal(mealID string) (models.Meal, bool) {
	if idx := models.IndexOf(c.state.Plan, mealID); idx != -1 {
		return c.state.Plan[idx], true
	}
	if idx := models.IndexOf(c.state.Favorites, mealID); idx != -1 {
		return c.state.Favorites[idx], true
	}
	return models.Meal{}, false
}
