package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/pkg/errors"
	"github.com/itinerary-microservice/internal/pkg/utils"
	"github.com/itinerary-microservice/internal/pkg/validator"
	"github.com/itinerary-microservice/internal/usecase"
	"github.com/itinerary-microservice/internal/usecase/dto"
)

// FlightHandler - обработчик запросов на поиск рейсов
type FlightHandler struct {
	flightUC *usecase.FlightUseCase
	logger   *zap.Logger
}

// NewFlightHandler - создание нового FlightHandler
func NewFlightHandler(flightUC *usecase.FlightUseCase, logger *zap.Logger) *FlightHandler {
	return &FlightHandler{
		flightUC: flightUC,
		logger:   logger,
	}
}

// Search godoc
// @Summary Поиск рейсов между городами
// @Description Ищет рейсы между городами, отсортированные по цене. Названия городов сопоставляются с полными названиями аэропортов. Если в рамках бюджета ничего не найдено, поиск повторяется без потолка по цене.
// @Tags Flights
// @Accept json
// @Produce json
// @Param request body dto.FlightSearchRequest true "Параметры поиска"
// @Success 200 {object} utils.SuccessResponse{data=dto.FlightSearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/flights/search [post]
func (h *FlightHandler) Search(c *fiber.Ctx) error {
	var req dto.FlightSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.flightUC.Search(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}
