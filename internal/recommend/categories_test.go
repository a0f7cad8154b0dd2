package recommend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/recommend"
)

func ratedPlace(category string) *domain.Place {
	return &domain.Place{Category: category}
}

func cityPlace(category string, rating float64) *domain.Place {
	return &domain.Place{Category: category, Rating: rating}
}

func TestResolveCategories_ExplicitWins(t *testing.T) {
	explicit := []string{domain.CategoryMarine}
	rated := []*domain.Place{
		ratedPlace(domain.CategoryCulture),
		ratedPlace(domain.CategoryCulture),
	}

	result := recommend.ResolveCategories(explicit, rated, nil)

	assert.Equal(t, explicit, result)
}

func TestResolveCategories_UserHistoryPath(t *testing.T) {
	rated := []*domain.Place{
		ratedPlace(domain.CategoryCulture),
		ratedPlace(domain.CategoryThemePark),
		ratedPlace(domain.CategoryCulture),
		ratedPlace(domain.CategoryMarine),
		ratedPlace(domain.CategoryThemePark),
		ratedPlace(domain.CategoryCulture),
	}

	result := recommend.ResolveCategories(nil, rated, nil)

	// Топ-2 по частоте: Budaya (3), Taman Hiburan (2)
	assert.Equal(t, []string{domain.CategoryCulture, domain.CategoryThemePark}, result)
}

func TestResolveCategories_ColdStartPath(t *testing.T) {
	city := []*domain.Place{
		cityPlace(domain.CategoryShopping, 4.0),
		cityPlace(domain.CategoryMarine, 4.8),
		cityPlace(domain.CategoryCulture, 4.5),
		cityPlace(domain.CategoryWorship, 3.9),
		cityPlace(domain.CategoryMarine, 4.6),
	}

	result := recommend.ResolveCategories(nil, nil, city)

	// Топ-3 по среднему рейтингу: Bahari (4.7), Budaya (4.5), Pusat Perbelanjaan (4.0)
	assert.Equal(t, []string{
		domain.CategoryMarine,
		domain.CategoryCulture,
		domain.CategoryShopping,
	}, result)
}

func TestTopUserCategories_TieBreakByFirstOccurrence(t *testing.T) {
	rated := []*domain.Place{
		ratedPlace(domain.CategoryWorship),
		ratedPlace(domain.CategoryMarine),
		ratedPlace(domain.CategoryWorship),
		ratedPlace(domain.CategoryMarine),
	}

	result := recommend.TopUserCategories(rated)

	// Частоты равны - побеждает порядок первого вхождения
	assert.Equal(t, []string{domain.CategoryWorship, domain.CategoryMarine}, result)
}

func TestTopCityCategories_TieBreakByFirstOccurrence(t *testing.T) {
	city := []*domain.Place{
		cityPlace(domain.CategoryThemePark, 4.0),
		cityPlace(domain.CategoryCulture, 4.0),
		cityPlace(domain.CategoryMarine, 4.0),
		cityPlace(domain.CategoryShopping, 4.0),
	}

	result := recommend.TopCityCategories(city)

	assert.Equal(t, []string{
		domain.CategoryThemePark,
		domain.CategoryCulture,
		domain.CategoryMarine,
	}, result)
}

func TestResolveCategories_NoCityMatches(t *testing.T) {
	result := recommend.ResolveCategories(nil, nil, nil)

	assert.Empty(t, result)
}
