package dto

// RecommendationRequest - запрос на построение маршрута
type RecommendationRequest struct {
	UserID         int64    `json:"user_id" validate:"required,min=1"`
	UserLat        float64  `json:"user_lat" validate:"min=-90,max=90"`
	UserLng        float64  `json:"user_lng" validate:"min=-180,max=180"`
	UserCity       string   `json:"user_city" validate:"required,min=1"`
	UserCategories []string `json:"user_categories,omitempty" validate:"omitempty,dive,category"`

	// Days - число дней маршрута; 0 означает, что дневные планы не нужны.
	// Верхняя граница задается конфигурацией и проверяется в use case
	Days int `json:"days" validate:"min=0"`

	// Time - дневной лимит времени в часах; 0 заменяется значением по умолчанию
	Time float64 `json:"time" validate:"omitempty,min=1,max=24"`

	// Budget - дневной денежный лимит; 0 означает без ограничения
	Budget float64 `json:"budget" validate:"min=0"`

	// DepartureCity/DestinationCity - опциональный поиск перелета,
	// прикладывается к ответу и не влияет на выбор мест
	DepartureCity   string `json:"departure_city,omitempty"`
	DestinationCity string `json:"destination_city,omitempty"`
}

// FlightSearchRequest - запрос на поиск рейсов между городами
type FlightSearchRequest struct {
	DepartureCity   string  `json:"departure_city" validate:"required,min=1"`
	DestinationCity string  `json:"destination_city" validate:"required,min=1"`
	MaxBudget       float64 `json:"max_budget" validate:"min=0"`
}
