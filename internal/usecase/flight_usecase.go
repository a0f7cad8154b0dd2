package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
	"github.com/itinerary-microservice/internal/usecase/dto"
)

// airportByCity сопоставляет короткое название города с полным названием
// аэропорта, как оно записано в справочнике рейсов. Неизвестный город
// передается в запрос как есть.
var airportByCity = map[string]string{
	"Jakarta":                       "Bandar Udara Internasional Soekarno Hatta",
	"Yogyakarta":                    "Bandar Udara Internasional Yogyakarta",
	"Semarang":                      "Bandar Udara Jenderal Ahmad Yani",
	"Surabaya":                      "Bandar Udara Internasional Juanda",
	"Singapore":                     "Bandar Udara Internasional Changi Singapura",
	"Palembang":                     "Bandar Udara Internasional Sultan Mahmud Badaruddin II",
	"Balikpapan":                    "Bandar Udara Internasional Sultan Aji Muhammad Sulaiman Sepinggan Balikpapan",
	"Merauke":                       "Bandar Udara Mopah",
	"Jakarta (Halim Perdanakusuma)": "Bandar Udara Internasional Halim Perdanakusuma",
	"Banjarmasin":                   "Bandar Udara Internasional Syamsudin Noor",
	"Jayapura":                      "Bandar Udara Sentani",
	"Denpasar":                      "Bandara Internasional I Gusti Ngurah Rai",
	"Makassar":                      "Bandar Udara Internasional Sultan Hasanuddin",
	"Banda Aceh":                    "Bandar Udara Internasional Sultan Iskandar Muda",
}

// MapCityToAirport возвращает полное название аэропорта для города
func MapCityToAirport(city string) string {
	if airport, ok := airportByCity[city]; ok {
		return airport
	}
	return city
}

// FlightUseCase - use case для поиска рейсов
type FlightUseCase struct {
	flightRepo repository.FlightRepository
	logger     *zap.Logger
}

// NewFlightUseCase - создание нового FlightUseCase
func NewFlightUseCase(flightRepo repository.FlightRepository, logger *zap.Logger) *FlightUseCase {
	return &FlightUseCase{
		flightRepo: flightRepo,
		logger:     logger,
	}
}

// Search - поиск рейсов между городами с опциональным потолком по цене
func (uc *FlightUseCase) Search(ctx context.Context, req dto.FlightSearchRequest) (*dto.FlightSearchResponse, error) {
	flights, err := uc.SearchForTrip(ctx, req.DepartureCity, req.DestinationCity, req.MaxBudget)
	if err != nil {
		return nil, err
	}

	return &dto.FlightSearchResponse{
		Flights: flights,
		Total:   len(flights),
	}, nil
}

// SearchForTrip возвращает рейсы между городами, отсортированные по цене.
// Если поиск с потолком по цене ничего не нашел, выполняется один повтор
// без потолка: дорогой рейс в ответе полезнее пустого списка.
func (uc *FlightUseCase) SearchForTrip(ctx context.Context, departureCity, destinationCity string, maxBudget float64) ([]*domain.Flight, error) {
	departure := MapCityToAirport(departureCity)
	arrival := MapCityToAirport(destinationCity)

	flights, err := uc.flightRepo.Search(ctx, departure, arrival, maxBudget)
	if err != nil {
		uc.logger.Error("Failed to search flights",
			zap.String("departure", departure),
			zap.String("arrival", arrival),
			zap.Error(err))
		return nil, err
	}

	if len(flights) == 0 && maxBudget > 0 {
		uc.logger.Debug("No flights within budget, retrying without price ceiling",
			zap.String("departure", departure),
			zap.String("arrival", arrival),
			zap.Float64("max_budget", maxBudget))

		flights, err = uc.flightRepo.Search(ctx, departure, arrival, 0)
		if err != nil {
			uc.logger.Error("Failed to search flights",
				zap.String("departure", departure),
				zap.String("arrival", arrival),
				zap.Error(err))
			return nil, err
		}
	}

	return flights, nil
}
