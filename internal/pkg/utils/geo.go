package utils

import (
	"math"

	"github.com/itinerary-microservice/internal/pkg/errors"
)

const (
	earthRadiusKm = 6371.0

	// averageSpeedKmh - средняя скорость перемещения между местами
	averageSpeedKmh = 60.0
)

// Distance вычисляет расстояние по дуге большого круга (формула гаверсинусов)
// и оценку времени в пути при фиксированной средней скорости.
// Возвращает расстояние в километрах и время в минутах.
func Distance(lat1, lng1, lat2, lng2 float64) (km float64, etaMinutes float64, err error) {
	if !ValidateCoordinates(lat1, lng1) || !ValidateCoordinates(lat2, lng2) {
		return 0, 0, errors.ErrInvalidCoordinates
	}

	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLng := (lng2 - lng1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	km = earthRadiusKm * c
	etaMinutes = (km / averageSpeedKmh) * 60

	return km, etaMinutes, nil
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
