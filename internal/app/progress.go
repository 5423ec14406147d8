// internal/app/progress.go
package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"strings"

	"mealmate/internal/models"
)

func validCheckIn(checkIn models.CheckIn) bool {
	for _, v := range []float64{checkIn.Weight, checkIn.Energy, checkIn.Mood} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return checkIn.Weight > 0 &&
		checkIn.Energy >= 1 && checkIn.Energy <= 10 &&
		checkIn.Mood >= 1 && checkIn.Mood <= 10
}

// SubmitCheckIn records a motivational result and merges any badges it
// names. Only input validation can fail it.
func (c *Controller) SubmitCheckIn(ctx context.Context, checkIn models.CheckIn) (models.ProgressResult, error) {
	if !validCheckIn(checkIn) {
		return models.ProgressResult{}, alert(msgInvalidCheckIn, nil)
	}

	c.mu.Lock()
	name := strings.TrimSpace(c.state.Profile.Name)
	if name == "" {
		name = "Friend"
	}
	c.begin()
	c.mu.Unlock()

	result := c.ai.GenerateMotivation(context.WithoutCancel(ctx), name, checkIn)
	if result.Badges == nil {
		result.Badges = []string{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.end()
	progress := result
	progress.Badges = cloneStrings(result.Badges)
	c.state.Progress = &progress

	if badges, changed := mergeBadges(c.state.Badges, result.Badges); changed {
		c.state.Badges = badges
		if err := c.store.SaveBadges(badges); err != nil {
			c.logger.Error("failed to persist badges", "error", err)
		}
	}
	return result, nil
}

// mergeBadges appends earned badges not already held, preserving order.
func mergeBadges(held, earned []string) ([]string, bool) {
	seen := make(map[string]struct{}, len(held))
	for _, b := range held {
		seen[b] = struct{}{}
	}
	merged := cloneStrings(held)
	for _, b := range earned {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		merged = append(merged, b)
	}
	return merged, len(merged) != len(held)
}

// EncodeImage builds the self-describing data string stored in the photo log.
func EncodeImage(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// UploadPhoto prepends an encoded image to the photo log.
func (c *Controller) UploadPhoto(image string) error {
	if strings.TrimSpace(image) == "" {
		return alert(msgNoPhoto, nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	photos := make([]string, 0, len(c.state.Photos)+1)
	photos = append(photos, image)
	photos = append(photos, c.state.Photos...)
	c.state.Photos = photos
	if err := c.store.SavePhotos(photos); err != nil {
		return alert(msgSaveFailed, err)
	}
	return nil
}
