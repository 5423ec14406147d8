package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mealmate/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	stor, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "mealmate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { stor.Close() })
	return stor
}

func TestSQLiteStoragePutOverwrites(t *testing.T) {
	stor := newTestStorage(t)

	_, err := stor.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, stor.Put("k", []byte(`["a"]`)))
	require.NoError(t, stor.Put("k", []byte(`["b","c"]`)))

	value, err := stor.Get("k")
	require.NoError(t, err)
	require.Equal(t, `["b","c"]`, string(value))
}

func TestProfileRoundTrip(t *testing.T) {
	p := NewPersistence(newTestStorage(t), nil)

	profile := models.DefaultProfile()
	profile.Name = "Ada"
	profile.CalorieTarget = 2500
	profile.Allergens = []string{"peanuts"}
	profile.Theme = models.PastelTheme
	require.NoError(t, p.SaveProfile(profile))

	loaded := p.LoadProfile()
	require.Equal(t, 2500, loaded.CalorieTarget)
	require.Equal(t, profile, loaded)
}

func TestProfileDefaultsWhenAbsentOrCorrupt(t *testing.T) {
	stor := NewMemoryStorage()
	p := NewPersistence(stor, nil)

	require.Equal(t, models.DefaultProfile(), p.LoadProfile())

	require.NoError(t, stor.Put(ProfileKey, []byte(`{"name": "Ada", "calorieTarget": `)))
	loaded := p.LoadProfile()
	require.Empty(t, loaded.Name)
	require.Equal(t, 25, loaded.Age)
	require.Equal(t, models.GeneralFitness, loaded.Goal)
	require.Equal(t, 2000, loaded.CalorieTarget)
	require.Equal(t, models.DarkTheme, loaded.Theme)

	require.NoError(t, stor.Put(ProfileKey, []byte(`null`)))
	require.Equal(t, models.DefaultProfile(), p.LoadProfile())
}

func TestProfileMissingFieldsKeepDefaults(t *testing.T) {
	stor := NewMemoryStorage()
	p := NewPersistence(stor, nil)

	require.NoError(t, stor.Put(ProfileKey, []byte(`{"name": "Ada", "allergens": null}`)))
	loaded := p.LoadProfile()
	require.Equal(t, "Ada", loaded.Name)
	require.Equal(t, 25, loaded.Age)
	require.Equal(t, models.GeneralFitness, loaded.Goal)
	require.Equal(t, models.DarkTheme, loaded.Theme)
	require.Equal(t, "08:00", loaded.MealTimes.Breakfast)
	require.NotNil(t, loaded.Allergens)

	require.NoError(t, stor.Put(ProfileKey, []byte(`{"name": "Ada", "age": "old"}`)))
	require.Equal(t, models.DefaultProfile(), p.LoadProfile())
}

func TestSlicesAreIndependent(t *testing.T) {
	stor := NewMemoryStorage()
	p := NewPersistence(stor, nil)

	favorites := []models.Meal{models.NewCustomMeal("1", "Toast")}
	require.NoError(t, p.SaveFavorites(favorites))
	require.NoError(t, p.SavePhotos([]string{"data:image/png;base64,AAAA"}))
	require.NoError(t, p.SaveBadges([]string{"Starter"}))

	require.NoError(t, stor.Put(PhotosKey, []byte("not json")))

	require.Equal(t, favorites, p.LoadFavorites())
	require.Equal(t, []string{}, p.LoadPhotos())
	require.Equal(t, []string{"Starter"}, p.LoadBadges())
}
