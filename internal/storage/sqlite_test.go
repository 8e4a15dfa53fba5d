// internal/storage/sqlite_test.go
package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nutribot/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "meals.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveMealAssignsID(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	meal := &models.MealLog{
		UserID:         "u1",
		Timestamp:      time.Now().UTC(),
		Description:    "grilled salmon with rice",
		Classification: models.Classification{Protein: 0.2, Grains: 0.1},
	}
	id, err := s.SaveMeal(ctx, meal)
	require.NoError(t, err)
	require.Greater(t, id, int64(0))
	require.Equal(t, id, meal.ID)

	second := &models.MealLog{
		UserID:         "u1",
		Timestamp:      time.Now().UTC(),
		ImageURL:       "https://cdn.example/salad.jpg",
		Classification: models.Classification{Vegetables: 0.1},
	}
	id2, err := s.SaveMeal(ctx, second)
	require.NoError(t, err)
	require.Greater(t, id2, id)
}

func TestWeeklyTotalsSingleRecord(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	now := time.Now().UTC()

	cls := models.Classification{Vegetables: 0.3, Protein: 0.1}
	_, err := s.SaveMeal(ctx, &models.MealLog{
		UserID:         "u1",
		Timestamp:      now,
		Description:    "veggie bowl",
		Classification: cls,
	})
	require.NoError(t, err)

	totals, err := s.WeeklyTotals(ctx, "u1", now)
	require.NoError(t, err)
	require.Equal(t, cls, totals)
}

func TestWeeklyTotalsWindow(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	now := time.Now().UTC()

	save := func(ts time.Time, c models.Classification) {
		t.Helper()
		_, err := s.SaveMeal(ctx, &models.MealLog{
			UserID:         "u1",
			Timestamp:      ts,
			Description:    "meal",
			Classification: c,
		})
		require.NoError(t, err)
	}

	// Exactly at the boundary: included.
	save(now.Add(-7*24*time.Hour), models.Classification{Fruits: 0.2})
	// Inside the window.
	save(now.Add(-time.Hour), models.Classification{Fruits: 0.3})
	// Strictly older: excluded.
	save(now.Add(-7*24*time.Hour-time.Second), models.Classification{Fruits: 0.5})

	totals, err := s.WeeklyTotals(ctx, "u1", now)
	require.NoError(t, err)
	require.InDelta(t, 0.5, totals.Fruits, 1e-9)
}

func TestWeeklyTotalsPerUserIsolation(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := s.SaveMeal(ctx, &models.MealLog{
		UserID:         "u1",
		Timestamp:      now,
		Description:    "oatmeal",
		Classification: models.Classification{Grains: 0.4},
	})
	require.NoError(t, err)

	_, err = s.SaveMeal(ctx, &models.MealLog{
		UserID:         "u2",
		Timestamp:      now,
		Description:    "yogurt",
		Classification: models.Classification{Dairy: 0.2},
	})
	require.NoError(t, err)

	totals, err := s.WeeklyTotals(ctx, "u1", now)
	require.NoError(t, err)
	require.InDelta(t, 0.4, totals.Grains, 1e-9)
	require.Zero(t, totals.Dairy)
}

func TestWeeklyTotalsEmpty(t *testing.T) {
	s := newTestStorage(t)

	totals, err := s.WeeklyTotals(context.Background(), "nobody", time.Now().UTC())
	require.NoError(t, err)
	require.Equal(t, models.Classification{}, totals)
}

func TestWeeklyTotalsAccumulates(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		_, err := s.SaveMeal(ctx, &models.MealLog{
			UserID:         "u1",
			Timestamp:      now.Add(-time.Duration(i) * time.Hour),
			Description:    "snack",
			Classification: models.Classification{Oils: 0.1, Fruits: 0.2},
		})
		require.NoError(t, err)
	}

	totals, err := s.WeeklyTotals(ctx, "u1", now)
	require.NoError(t, err)
	require.InDelta(t, 0.3, totals.Oils, 1e-9)
	require.InDelta(t, 0.6, totals.Fruits, 1e-9)
}
