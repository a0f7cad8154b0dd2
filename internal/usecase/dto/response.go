package dto

import "github.com/itinerary-microservice/internal/domain"

// RecommendationResponse - ответ на построение маршрута
type RecommendationResponse struct {
	// Recommendations - посещения, сгруппированные по дням
	Recommendations [][]domain.PlannedVisit `json:"recommendations"`

	TotalTimePerDay   []float64 `json:"total_time_per_day"`
	TotalBudgetPerDay []float64 `json:"total_budget_per_day"`

	// MSE - среднее расхождение контентного и латентно-факторного
	// сигналов по рассмотренным кандидатам, меньше - лучше
	MSE float64 `json:"mse"`

	RecommendedFlights []*domain.Flight `json:"recommended_flights"`

	// Reason объясняет пустой результат; пустой результат - не ошибка
	Reason string `json:"reason,omitempty"`
}

// FlightSearchResponse - ответ на поиск рейсов
type FlightSearchResponse struct {
	Flights []*domain.Flight `json:"flights"`
	Total   int              `json:"total"`
}
