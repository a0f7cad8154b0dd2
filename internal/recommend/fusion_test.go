package recommend_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/pkg/errors"
	"github.com/itinerary-microservice/internal/recommend"
)

// stubOracle - минимальная реализация AffinityOracle для тестов движка
type stubOracle struct {
	predictions map[int64]float64
	knownUsers  map[int64]bool
	averages    map[int64]float64
	fallback    float64
}

func (o *stubOracle) Predict(userID, placeID int64) (float64, error) {
	v, ok := o.predictions[placeID]
	if !ok {
		return 0, fmt.Errorf("place %d not seen at training time", placeID)
	}
	return v, nil
}

func (o *stubOracle) IsKnownUser(userID int64) bool {
	return o.knownUsers[userID]
}

func (o *stubOracle) GlobalAverageRating(placeID int64) float64 {
	if v, ok := o.averages[placeID]; ok {
		return v
	}
	return o.fallback
}

func zeroJitter() float64 { return 0 }

func catalogFrom(m map[int64]float64) func(int64) float64 {
	return func(placeID int64) float64 { return m[placeID] }
}

func TestFuse_EmptyCandidates(t *testing.T) {
	ranked, mean, err := recommend.Fuse(nil, recommend.FuseOptions{})

	assert.NoError(t, err)
	assert.Empty(t, ranked)
	assert.Equal(t, 0.0, mean)
}

func TestFuse_ColdStartDeterministicWithZeroJitter(t *testing.T) {
	catalog := map[int64]float64{1: 4.6, 2: 4.0}
	averages := map[int64]float64{1: 4.1, 2: 3.9}

	candidates := []domain.CandidateScore{
		{PlaceID: 1, ContentSimilarity: 0.8},
		{PlaceID: 2, ContentSimilarity: 0.7},
	}

	opts := recommend.FuseOptions{
		UserID:        999,
		KnownUser:     false,
		CatalogRating: catalogFrom(catalog),
		GlobalAverage: catalogFrom(averages),
		Jitter:        zeroJitter,
	}

	ranked, mean, err := recommend.Fuse(candidates, opts)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	// С нулевым джиттером ранжирование совпадает с прямым вычислением:
	// consistency(1) = (4.6-4.1)^2 = 0.25, consistency(2) = (4.0-3.9)^2 = 0.01
	assert.Equal(t, int64(2), ranked[0].PlaceID)
	assert.InDelta(t, 0.01, ranked[0].Consistency, 1e-9)
	assert.Equal(t, int64(1), ranked[1].PlaceID)
	assert.InDelta(t, 0.25, ranked[1].Consistency, 1e-9)
	assert.InDelta(t, 0.13, mean, 1e-9)

	again, _, err := recommend.Fuse(candidates, opts)
	require.NoError(t, err)
	assert.Equal(t, ranked, again)
}

func TestFuse_SortedAscendingNoDuplicates(t *testing.T) {
	catalog := map[int64]float64{1: 4.0, 2: 4.5, 3: 3.5}
	oracle := &stubOracle{
		predictions: map[int64]float64{1: 4.4, 2: 4.6, 3: 2.0},
		knownUsers:  map[int64]bool{7: true},
	}

	// Место 2 приходит дважды от разных опорных мест
	candidates := []domain.CandidateScore{
		{PlaceID: 1, ContentSimilarity: 0.5},
		{PlaceID: 2, ContentSimilarity: 0.9},
		{PlaceID: 2, ContentSimilarity: 0.4},
		{PlaceID: 3, ContentSimilarity: 0.6},
	}

	ranked, _, err := recommend.Fuse(candidates, recommend.FuseOptions{
		UserID:        7,
		KnownUser:     true,
		Oracle:        oracle,
		CatalogRating: catalogFrom(catalog),
		GlobalAverage: func(int64) float64 { return 0 },
	})
	require.NoError(t, err)

	seen := make(map[int64]bool)
	for i, c := range ranked {
		assert.False(t, seen[c.PlaceID], "duplicate place %d", c.PlaceID)
		seen[c.PlaceID] = true
		if i > 0 {
			assert.GreaterOrEqual(t, c.Consistency, ranked[i-1].Consistency)
		}
	}
	assert.Len(t, ranked, 3)

	// (4.5-4.6)^2 < (4.0-4.4)^2 < (3.5-2.0)^2
	assert.Equal(t, int64(2), ranked[0].PlaceID)
	assert.Equal(t, int64(1), ranked[1].PlaceID)
	assert.Equal(t, int64(3), ranked[2].PlaceID)
}

func TestFuse_KnownUserWithoutOracle(t *testing.T) {
	candidates := []domain.CandidateScore{{PlaceID: 1}}

	_, _, err := recommend.Fuse(candidates, recommend.FuseOptions{
		UserID:        7,
		KnownUser:     true,
		CatalogRating: func(int64) float64 { return 4 },
		GlobalAverage: func(int64) float64 { return 4 },
	})

	assert.ErrorIs(t, err, errors.ErrModelUnavailable)
}

func TestFuse_KnownUserUnseenPlaceFallsBackWithoutJitter(t *testing.T) {
	oracle := &stubOracle{
		predictions: map[int64]float64{1: 4.2},
		knownUsers:  map[int64]bool{7: true},
	}

	jitterCalled := false
	ranked, _, err := recommend.Fuse(
		[]domain.CandidateScore{{PlaceID: 1}, {PlaceID: 99}},
		recommend.FuseOptions{
			UserID:        7,
			KnownUser:     true,
			Oracle:        oracle,
			CatalogRating: func(int64) float64 { return 4.0 },
			GlobalAverage: func(int64) float64 { return 3.8 },
			Jitter: func() float64 {
				jitterCalled = true
				return 0
			},
		},
	)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.False(t, jitterCalled)
	for _, c := range ranked {
		if c.PlaceID == 99 {
			assert.InDelta(t, 3.8, c.PredictedAffinity, 1e-9)
		}
	}
}

func TestFuse_MeanOverDeduplicatedCandidates(t *testing.T) {
	catalog := map[int64]float64{1: 4.0, 2: 4.0}
	averages := map[int64]float64{1: 3.0, 2: 3.5}

	// Дубликаты места 1 не должны перекашивать среднюю Consistency
	candidates := []domain.CandidateScore{
		{PlaceID: 1}, {PlaceID: 1}, {PlaceID: 1}, {PlaceID: 2},
	}

	_, mean, err := recommend.Fuse(candidates, recommend.FuseOptions{
		CatalogRating: catalogFrom(catalog),
		GlobalAverage: catalogFrom(averages),
		Jitter:        zeroJitter,
	})
	require.NoError(t, err)

	// (1.0 + 0.25) / 2
	assert.InDelta(t, 0.625, mean, 1e-9)
}
