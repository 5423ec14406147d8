// internal/app/media.go
package app

import (
	"errors"
	"io"
	"strings"

	"mealmate/internal/export"
	"mealmate/internal/speech"
)

// ReadRecipeAloud speaks the instructions of a plan or favorite meal.
func (c *Controller) ReadRecipeAloud(mealID string) error {
	c.mu.Lock()
	meal, ok := c.findMeal(mealID)
	c.mu.Unlock()
	if !ok {
		return alert(msgMealNotFound, ErrMealNotFound)
	}
	return c.Speak(strings.Join(meal.Instructions, ". "))
}

func (c *Controller) Speak(text string) error {
	err := c.speaker.Speak(text)
	if errors.Is(err, speech.ErrUnsupported) {
		return alert(msgNoSpeech, err)
	}
	if err != nil {
		return alert(msgSpeechFailed, err)
	}
	return nil
}

// ExportGroceryList writes the current list as a PDF and returns its file name.
func (c *Controller) ExportGroceryList(w io.Writer) (string, error) {
	c.mu.Lock()
	list := export.GroceryExport{
		UserName: c.state.Profile.Name,
		Servings: c.state.Servings,
		Date:     c.now(),
		Items:    cloneStrings(c.state.GroceryList),
	}
	c.mu.Unlock()

	if len(list.Items) == 0 {
		return "", alert(msgNoGroceryList, nil)
	}
	if err := export.WriteGroceryPDF(w, list); err != nil {
		return "", alert(msgExportFailed, err)
	}
	return export.FileName(list.Date), nil
}
