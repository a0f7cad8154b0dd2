package recommend

import (
	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/pkg/utils"
)

// RankedPlace - место с его итоговой оценкой после слияния
type RankedPlace struct {
	Place domain.Place
	Score domain.CandidateScore
}

// ScheduleParams - ограничения жадной упаковки маршрута
type ScheduleParams struct {
	StartLat float64
	StartLng float64

	// Days - число дней маршрута; 0 дает маршрут без дневных планов
	Days int

	// DailyTimeLimitHours - лимит времени на день (дорога + посещение)
	DailyTimeLimitHours float64

	// BudgetLimit - дневной денежный лимит; 0 означает без ограничения
	BudgetLimit float64
}

// Schedule жадно распределяет ранжированных кандидатов по дням.
//
// Каждый день начинается со стартовой точки пользователя (координата НЕ
// переносится с последней остановки предыдущего дня), но глобальное
// множество посещенных мест и порядок кандидатов сохраняются: день не
// пересортировывает список, а продолжает сканировать его, пропуская уже
// посещенное. Кандидат, не влезающий в лимит времени или бюджета,
// пропускается без прерывания сканирования. Ни одно место не попадает
// в маршрут дважды.
//
// День, в который не поместилось ни одно место, остается пустым и
// валидным: это не ошибка.
func Schedule(ranked []RankedPlace, p ScheduleParams) domain.Itinerary {
	itinerary := domain.Itinerary{Days: make([]domain.DayPlan, 0, p.Days)}
	visited := make(map[int64]bool, len(ranked))

	for day := 1; day <= p.Days; day++ {
		currentLat, currentLng := p.StartLat, p.StartLng
		plan := domain.DayPlan{Day: day, Visits: []domain.PlannedVisit{}}

		for _, candidate := range ranked {
			if visited[candidate.Place.ID] {
				continue
			}

			distKm, travelMin, err := utils.Distance(
				currentLat, currentLng,
				candidate.Place.Lat, candidate.Place.Lng,
			)
			if err != nil {
				// Кандидат с невалидными координатами не планируется
				continue
			}

			totalHours := candidate.Place.VisitMinutes/60 + travelMin/60
			if plan.TotalTimeHours+totalHours > p.DailyTimeLimitHours {
				continue
			}
			if p.BudgetLimit > 0 && plan.TotalBudget+candidate.Place.Price > p.BudgetLimit {
				continue
			}

			plan.Visits = append(plan.Visits, domain.PlannedVisit{
				Place:             candidate.Place,
				DistanceKm:        distKm,
				TravelTimeMinutes: travelMin,
			})
			plan.TotalTimeHours += totalHours
			plan.TotalBudget += candidate.Place.Price
			currentLat, currentLng = candidate.Place.Lat, candidate.Place.Lng
			visited[candidate.Place.ID] = true
		}

		itinerary.Days = append(itinerary.Days, plan)
	}

	return itinerary
}
