package recommend

import (
	"sort"

	"github.com/itinerary-microservice/internal/domain"
)

const (
	// userTopCategories - сколько категорий берется из истории оценок
	userTopCategories = 2

	// cityTopCategories - сколько категорий берется по среднему рейтингу
	// города для нового пользователя
	cityTopCategories = 3
)

// ResolveCategories определяет набор категорий для фильтрации каталога:
//   - явно заданные категории всегда побеждают;
//   - иначе топ-2 самых частых категорий среди оцененных пользователем мест;
//   - иначе (cold start) топ-3 категорий города по среднему рейтингу каталога.
//
// Пустой результат - не ошибка: вызывающая сторона отвечает пустым списком
// рекомендаций.
func ResolveCategories(explicit []string, ratedPlaces, cityPlaces []*domain.Place) []string {
	if len(explicit) > 0 {
		return explicit
	}
	if len(ratedPlaces) > 0 {
		return TopUserCategories(ratedPlaces)
	}
	return TopCityCategories(cityPlaces)
}

// TopUserCategories возвращает самые частые категории среди мест,
// которые пользователь оценивал. Равные частоты сохраняют порядок
// первого вхождения.
func TopUserCategories(ratedPlaces []*domain.Place) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, p := range ratedPlaces {
		if _, ok := counts[p.Category]; !ok {
			order = append(order, p.Category)
		}
		counts[p.Category]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	return truncate(order, userTopCategories)
}

// TopCityCategories возвращает категории города с наибольшим средним
// рейтингом каталога. Равные средние сохраняют порядок первого вхождения.
func TopCityCategories(cityPlaces []*domain.Place) []string {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, p := range cityPlaces {
		if _, ok := counts[p.Category]; !ok {
			order = append(order, p.Category)
		}
		sums[p.Category] += p.Rating
		counts[p.Category]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return sums[order[i]]/float64(counts[order[i]]) > sums[order[j]]/float64(counts[order[j]])
	})

	return truncate(order, cityTopCategories)
}

func truncate(categories []string, n int) []string {
	if len(categories) > n {
		return categories[:n]
	}
	return categories
}
