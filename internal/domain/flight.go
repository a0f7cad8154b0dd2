package domain

// Flight представляет рейс из внешнего справочника перелетов.
// Используется только как приложение к маршруту и не влияет на выбор мест.
type Flight struct {
	ID               int64   `json:"flight_id" db:"flight_id"`
	Airline          string  `json:"airline" db:"airline"`
	DepartureAirport string  `json:"departure_airport_name" db:"departure_airport_name"`
	ArrivalAirport   string  `json:"arrival_airport_name" db:"arrival_airport_name"`
	DepartureTime    *string `json:"departure_time,omitempty" db:"departure_time"`
	ArrivalTime      *string `json:"arrival_time,omitempty" db:"arrival_time"`
	Price            float64 `json:"price" db:"price"`
}
