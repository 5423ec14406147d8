// internal/app/stores.go
package app

import (
	"context"
	"errors"

	"mealmate/internal/location"
	"mealmate/internal/models"
)

// StoreLookup carries the results of a nearby store search. Notice is set
// when the search succeeded but found nothing.
type StoreLookup struct {
	Stores []models.StoreResult `json:"stores"`
	Notice string               `json:"notice,omitempty"`
}

// LocateStores searches around at, or around the locator's position when at
// is nil.
func (c *Controller) LocateStores(ctx context.Context, at *location.Coordinates) (StoreLookup, error) {
	var pos location.Coordinates
	if at != nil {
		pos = *at
	} else {
		located, err := c.locator.Locate(ctx)
		if errors.Is(err, location.ErrUnavailable) {
			return StoreLookup{}, alert(msgNoGeolocation, err)
		}
		if err != nil {
			return StoreLookup{}, alert(msgNoLocation, err)
		}
		pos = located
	}
	if err := pos.Validate(); err != nil {
		return StoreLookup{}, alert(msgNoLocation, err)
	}

	c.mu.Lock()
	c.storesSeq++
	seq := c.storesSeq
	c.state.FindingStores = true
	c.mu.Unlock()

	stores := c.ai.FindGroceryStores(context.WithoutCancel(ctx), pos.Latitude, pos.Longitude)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq == c.storesSeq {
		c.state.FindingStores = false
	}
	if stores == nil {
		return StoreLookup{}, alert(msgStoresFailed, nil)
	}
	if seq == c.storesSeq {
		c.state.Stores = stores
	}

	lookup := StoreLookup{Stores: append([]models.StoreResult{}, stores...)}
	if len(stores) == 0 {
		lookup.Notice = msgNoStores
	}
	return lookup, nil
}
