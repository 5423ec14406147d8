// internal/location/locator.go
package location

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnavailable      = errors.New("geolocation unavailable")
	ErrPermissionDenied = errors.New("geolocation permission denied")
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinates) Validate() error {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return fmt.Errorf("coordinates are not numbers")
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %g out of range", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %g out of range", c.Longitude)
	}
	return nil
}

// Locator yields one best-effort position.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// StaticLocator reports a configured position.
type StaticLocator struct {
	Position Coordinates
}

func (s StaticLocator) Locate(ctx context.Context) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, err
	}
	return s.Position, nil
}

// Unavailable is used when no position source is configured.
type Unavailable struct{}

func (Unavailable) Locate(context.Context) (Coordinates, error) {
	return Coordinates{}, ErrUnavailable
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (Coordinates, error)

func (f LocatorFunc) Locate(ctx context.Context) (Coordinates, error) {
	return f(ctx)
}
