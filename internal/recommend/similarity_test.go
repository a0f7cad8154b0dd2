package recommend_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/recommend"
)

func place(id int64, name, category string) *domain.Place {
	return &domain.Place{ID: id, Name: name, Category: category}
}

func TestContentRanker_EmptyAndSingleton(t *testing.T) {
	ranker := recommend.NewContentRanker()

	assert.Empty(t, ranker.Rank(nil))
	assert.Empty(t, ranker.Rank([]*domain.Place{}))
	assert.Empty(t, ranker.Rank([]*domain.Place{
		place(1, "Taman Mini", domain.CategoryThemePark),
	}))
}

func TestContentRanker_TwoPlacesRecommendEachOther(t *testing.T) {
	ranker := recommend.NewContentRanker()

	scores := ranker.Rank([]*domain.Place{
		place(1, "Pantai Ancol", domain.CategoryMarine),
		place(2, "Pantai Indrayanti", domain.CategoryMarine),
	})

	// Каждое место - единственный сосед другого
	assert.Len(t, scores, 2)
	assert.Equal(t, int64(2), scores[0].PlaceID)
	assert.Equal(t, int64(1), scores[1].PlaceID)

	// Общие токены (pantai + категория) дают ненулевую близость
	assert.Greater(t, scores[0].ContentSimilarity, 0.0)
	assert.Equal(t, scores[0].ContentSimilarity, scores[1].ContentSimilarity)
}

func TestContentRanker_IdenticalTextsHaveFullSimilarity(t *testing.T) {
	ranker := recommend.NewContentRanker()

	scores := ranker.Rank([]*domain.Place{
		place(1, "Museum Nasional", domain.CategoryCulture),
		place(2, "Museum Nasional", domain.CategoryCulture),
	})

	assert.Len(t, scores, 2)
	assert.InDelta(t, 1.0, scores[0].ContentSimilarity, 1e-9)
}

func TestContentRanker_NeighborCap(t *testing.T) {
	ranker := recommend.NewContentRanker()

	places := make([]*domain.Place, 0, 12)
	for i := int64(1); i <= 12; i++ {
		places = append(places, place(i, fmt.Sprintf("Tempat %d", i), domain.CategoryCulture))
	}

	scores := ranker.Rank(places)

	// 12 опорных мест, не более 9 соседей на каждое
	assert.Len(t, scores, 12*9)
}

func TestContentRanker_Deterministic(t *testing.T) {
	places := []*domain.Place{
		place(1, "Kota Tua", domain.CategoryCulture),
		place(2, "Taman Impian Jaya Ancol", domain.CategoryThemePark),
		place(3, "Museum Fatahillah Kota Tua", domain.CategoryCulture),
		place(4, "Pantai Ancol", domain.CategoryMarine),
	}
	ranker := recommend.NewContentRanker()

	first := ranker.Rank(places)
	second := ranker.Rank(places)

	assert.Equal(t, first, second)
}

func TestContentRanker_NoVocabularyLeakBetweenCalls(t *testing.T) {
	ranker := recommend.NewContentRanker()

	// Прогон на несвязанном наборе не должен влиять на последующие вызовы
	ranker.Rank([]*domain.Place{
		place(10, "Gunung Bromo", domain.CategoryNatureReserve),
		place(11, "Kawah Ijen", domain.CategoryNatureReserve),
	})

	baseline := recommend.NewContentRanker().Rank([]*domain.Place{
		place(1, "Pantai Kuta", domain.CategoryMarine),
		place(2, "Pantai Sanur", domain.CategoryMarine),
	})
	afterUnrelated := ranker.Rank([]*domain.Place{
		place(1, "Pantai Kuta", domain.CategoryMarine),
		place(2, "Pantai Sanur", domain.CategoryMarine),
	})

	assert.Equal(t, baseline, afterUnrelated)
}
