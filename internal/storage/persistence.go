// internal/storage/persistence.go
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"mealmate/internal/models"
)

const (
	FavoritesKey = "mealMateFavorites"
	ProfileKey   = "mealMateUser"
	PhotosKey    = "mealMatePhotos"
	BadgesKey    = "mealMateBadges"
)

// Persistence serializes the four independent state slices. It holds no
// state between calls; every save overwrites its key.
type Persistence struct {
	store  KVStore
	logger *slog.Logger
}

func NewPersistence(store KVStore, logger *slog.Logger) *Persistence {
	if logger == nil {
		logger = slog.Default()
	}
	return &Persistence{store: store, logger: logger.With("component", "persistence")}
}

// LoadProfile returns the stored profile, or the defaults when the key is
// missing or its value does not decode. Fields absent from the stored value
// keep their defaults.
func (p *Persistence) LoadProfile() models.UserProfile {
	profile := models.DefaultProfile()
	if !p.load(ProfileKey, &profile) {
		return models.DefaultProfile()
	}
	if profile.Allergens == nil {
		profile.Allergens = []string{}
	}
	return profile
}

func (p *Persistence) SaveProfile(profile models.UserProfile) error {
	return p.save(ProfileKey, profile)
}

func (p *Persistence) LoadFavorites() []models.Meal {
	var favorites []models.Meal
	if !p.load(FavoritesKey, &favorites) {
		return []models.Meal{}
	}
	return favorites
}

func (p *Persistence) SaveFavorites(favorites []models.Meal) error {
	return p.save(FavoritesKey, favorites)
}

func (p *Persistence) LoadPhotos() []string {
	var photos []string
	if !p.load(PhotosKey, &photos) {
		return []string{}
	}
	return photos
}

func (p *Persistence) SavePhotos(photos []string) error {
	return p.save(PhotosKey, photos)
}

func (p *Persistence) LoadBadges() []string {
	var badges []string
	if !p.load(BadgesKey, &badges) {
		return []string{}
	}
	return badges
}

func (p *Persistence) SaveBadges(badges []string) error {
	return p.save(BadgesKey, badges)
}

func (p *Persistence) load(key string, target interface{}) bool {
	raw, err := p.store.Get(key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		p.logger.Warn("failed to read slice", "key", key, "error", err)
		return false
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false
	}
	if err := json.Unmarshal(raw, target); err != nil {
		p.logger.Warn("ignoring corrupt slice", "key", key, "error", err)
		return false
	}
	return true
}

func (p *Persistence) save(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := p.store.Put(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
