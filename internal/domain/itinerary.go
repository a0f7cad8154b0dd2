package domain

// CandidateScore - оценка места-кандидата, живет в рамках одного запроса.
// Consistency = (рейтинг каталога - предсказанный рейтинг)^2, меньше - лучше.
type CandidateScore struct {
	PlaceID           int64   `json:"place_id"`
	ContentSimilarity float64 `json:"content_similarity"`
	PredictedAffinity float64 `json:"predicted_affinity"`
	Consistency       float64 `json:"consistency"`
}

// PlannedVisit - одно место в дневном плане с транспортными аннотациями
// относительно предыдущей точки маршрута.
type PlannedVisit struct {
	Place             Place   `json:"place"`
	DistanceKm        float64 `json:"distance_km"`
	TravelTimeMinutes float64 `json:"travel_time"`
}

// DayPlan - упорядоченный план одного дня
type DayPlan struct {
	Day            int            `json:"day"`
	Visits         []PlannedVisit `json:"visits"`
	TotalTimeHours float64        `json:"total_time_hours"`
	TotalBudget    float64        `json:"total_budget"`
}

// Itinerary - маршрут на несколько дней.
// Инвариант: PlaceID встречается не более чем в одном DayPlan.
type Itinerary struct {
	Days []DayPlan `json:"days"`

	// MeanConsistency - среднее Consistency по всем рассмотренным
	// кандидатам, а не только по выбранным местам
	MeanConsistency float64 `json:"mean_consistency"`
}
