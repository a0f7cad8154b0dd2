package recommend

import (
	"sort"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/pkg/errors"
)

// FuseOptions - входы слияния контентного и латентно-факторного сигналов
type FuseOptions struct {
	UserID int64

	// KnownUser - видела ли модель пользователя при обучении.
	// Для известных пользователей обязателен Oracle.
	KnownUser bool
	Oracle    AffinityOracle

	// CatalogRating возвращает средний рейтинг каталога для места
	CatalogRating func(placeID int64) float64

	// GlobalAverage - фолбэк-предсказание для cold start и для мест,
	// не попавших в обучение
	GlobalAverage func(placeID int64) float64

	// Jitter разнообразит cold-start кандидатов, иначе все они
	// схлопнулись бы в одинаковый балл
	Jitter JitterFunc
}

// Fuse объединяет пары от ContentRanker с предсказаниями модели в один
// ранжированный список. Ключ сортировки - Consistency: квадрат расхождения
// между рейтингом каталога и предсказанием, по возрастанию. Согласие двух
// независимых сигналов считается признаком более надежной рекомендации.
//
// Возвращает дедуплицированный по PlaceID список (первое вхождение после
// сортировки) и среднюю Consistency по всем рассмотренным кандидатам.
func Fuse(candidates []domain.CandidateScore, opts FuseOptions) ([]domain.CandidateScore, float64, error) {
	if len(candidates) == 0 {
		return nil, 0, nil
	}

	// Один прогноз на каждый уникальный PlaceID
	predicted := make(map[int64]float64)
	for _, c := range candidates {
		if _, ok := predicted[c.PlaceID]; ok {
			continue
		}

		var affinity float64
		if opts.KnownUser {
			if opts.Oracle == nil {
				return nil, 0, errors.ErrModelUnavailable
			}
			v, err := opts.Oracle.Predict(opts.UserID, c.PlaceID)
			if err != nil {
				// Место не участвовало в обучении: берем среднее по
				// каталогу без джиттера - шум нужен только cold start
				v = opts.GlobalAverage(c.PlaceID)
			}
			affinity = v
		} else {
			affinity = opts.GlobalAverage(c.PlaceID) + opts.Jitter()
		}
		predicted[c.PlaceID] = affinity
	}

	scored := make([]domain.CandidateScore, len(candidates))
	for i, c := range candidates {
		c.PredictedAffinity = predicted[c.PlaceID]
		diff := opts.CatalogRating(c.PlaceID) - c.PredictedAffinity
		c.Consistency = diff * diff
		scored[i] = c
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Consistency < scored[j].Consistency
	})

	// Дедупликация по PlaceID: остается первое вхождение после сортировки
	seen := make(map[int64]bool, len(scored))
	ranked := scored[:0]
	for _, c := range scored {
		if seen[c.PlaceID] {
			continue
		}
		seen[c.PlaceID] = true
		ranked = append(ranked, c)
	}

	var total float64
	for _, c := range ranked {
		total += c.Consistency
	}

	return ranked, total / float64(len(ranked)), nil
}
