package location

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStaticLocator(t *testing.T) {
	pos, err := StaticLocator{Position: Coordinates{Latitude: 48.1, Longitude: 11.6}}.Locate(context.Background())
	require.NoError(t, err)
	require.Equal(t, Coordinates{Latitude: 48.1, Longitude: 11.6}, pos)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = StaticLocator{}.Locate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{}.Locate(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestCoordinatesValidate(t *testing.T) {
	require.NoError(t, Coordinates{Latitude: -33.9, Longitude: 151.2}.Validate())
	require.Error(t, Coordinates{Latitude: 91}.Validate())
	require.Error(t, Coordinates{Longitude: -181}.Validate())
	require.Error(t, Coordinates{Latitude: math.NaN()}.Validate())
}
