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

// RecommendationHandler - обработчик запросов на построение маршрута
type RecommendationHandler struct {
	recommendationUC *usecase.RecommendationUseCase
	logger           *zap.Logger
}

// NewRecommendationHandler - создание нового RecommendationHandler
func NewRecommendationHandler(recommendationUC *usecase.RecommendationUseCase, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationUC: recommendationUC,
		logger:           logger,
	}
}

// Recommend godoc
// @Summary Построение многодневного туристического маршрута
// @Description Подбирает места по городу и категориям (явным, из истории оценок или топовым по городу), ранжирует их гибридной моделью и жадно распределяет по дням с учетом лимитов времени и бюджета. Опционально прикладывает рейсы между городами.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body dto.RecommendationRequest true "Параметры маршрута"
// @Success 200 {object} utils.SuccessResponse{data=dto.RecommendationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/recommendations [post]
func (h *RecommendationHandler) Recommend(c *fiber.Ctx) error {
	var req dto.RecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.recommendationUC.Recommend(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
