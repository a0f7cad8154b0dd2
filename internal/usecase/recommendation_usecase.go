package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
	"github.com/itinerary-microservice/internal/pkg/errors"
	"github.com/itinerary-microservice/internal/pkg/utils"
	"github.com/itinerary-microservice/internal/recommend"
	"github.com/itinerary-microservice/internal/usecase/dto"
)

// Причины пустого результата; пустой результат - валидный ответ, не ошибка
const (
	ReasonNoCategories = "no categories could be resolved for the user or city"
	ReasonNoPlaces     = "no places matched the requested city and categories"
	ReasonNoCandidates = "not enough candidate places to compare"
	ReasonNoDays       = "days not specified, no day plans were built"
)

// RecommendationUseCase - use case построения маршрута: фильтрация каталога,
// контентное ранжирование, слияние с предсказаниями модели и жадная упаковка
// по дням.
type RecommendationUseCase struct {
	placeRepo  repository.PlaceRepository
	ratingRepo repository.RatingRepository
	userRepo   repository.UserRepository
	cacheRepo  repository.CacheRepository
	flightUC   *FlightUseCase

	// oracle может быть nil: сервис стартует и без артефакта модели,
	// тогда запросам известных пользователей отвечает MODEL_UNAVAILABLE
	oracle recommend.AffinityOracle

	// jitterFactory выдает новый источник шума на каждый запрос
	jitterFactory func() recommend.JitterFunc

	logger           *zap.Logger
	cacheTTL         time.Duration
	defaultTimeLimit float64
	maxDays          int
}

// NewRecommendationUseCase - создание нового RecommendationUseCase
func NewRecommendationUseCase(
	placeRepo repository.PlaceRepository,
	ratingRepo repository.RatingRepository,
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	flightUC *FlightUseCase,
	oracle recommend.AffinityOracle,
	jitterFactory func() recommend.JitterFunc,
	logger *zap.Logger,
	cacheTTL time.Duration,
	defaultTimeLimit float64,
	maxDays int,
) *RecommendationUseCase {
	return &RecommendationUseCase{
		placeRepo:        placeRepo,
		ratingRepo:       ratingRepo,
		userRepo:         userRepo,
		cacheRepo:        cacheRepo,
		flightUC:         flightUC,
		oracle:           oracle,
		jitterFactory:    jitterFactory,
		logger:           logger,
		cacheTTL:         cacheTTL,
		defaultTimeLimit: defaultTimeLimit,
		maxDays:          maxDays,
	}
}

// Recommend строит многодневный маршрут для пользователя
func (uc *RecommendationUseCase) Recommend(ctx context.Context, req dto.RecommendationRequest) (*dto.RecommendationResponse, error) {
	if !utils.ValidateCoordinates(req.UserLat, req.UserLng) {
		return nil, errors.ErrInvalidCoordinates
	}
	if strings.TrimSpace(req.UserCity) == "" {
		return nil, errors.ErrEmptyCity
	}
	for _, c := range req.UserCategories {
		if !domain.ValidCategory(c) {
			return nil, errors.ErrUnknownCategory.WithDetails(map[string]interface{}{
				"category": c,
			})
		}
	}
	if req.Days < 0 || req.Days > uc.maxDays {
		return nil, errors.ErrInvalidDays.WithDetails(map[string]interface{}{
			"days":     req.Days,
			"max_days": uc.maxDays,
		})
	}
	if req.Time == 0 {
		req.Time = uc.defaultTimeLimit
	}

	cacheKey := uc.cacheKey(req)
	if cached := uc.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	// История оценок определяет и категории, и режим предсказания
	ratedPlaces, err := uc.ratedPlaces(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	knownUser := len(ratedPlaces) > 0

	cityPlaces, err := uc.placeRepo.GetByCity(ctx, req.UserCity)
	if err != nil {
		uc.logger.Error("Failed to load city places", zap.String("city", req.UserCity), zap.Error(err))
		return nil, err
	}

	categories := recommend.ResolveCategories(req.UserCategories, ratedPlaces, cityPlaces)
	if len(categories) == 0 {
		uc.logger.Warn("No categories resolved",
			zap.Int64("user_id", req.UserID),
			zap.String("city", req.UserCity))
		return uc.emptyResponse(ctx, cacheKey, ReasonNoCategories), nil
	}

	filtered, err := uc.placeRepo.GetByCityAndCategories(ctx, req.UserCity, categories)
	if err != nil {
		uc.logger.Error("Failed to filter places",
			zap.String("city", req.UserCity),
			zap.Strings("categories", categories),
			zap.Error(err))
		return nil, err
	}
	if len(filtered) == 0 {
		uc.logger.Warn("No places matched filter",
			zap.String("city", req.UserCity),
			zap.Strings("categories", categories))
		return uc.emptyResponse(ctx, cacheKey, ReasonNoPlaces), nil
	}

	pairs := recommend.NewContentRanker().Rank(filtered)
	if len(pairs) == 0 {
		return uc.emptyResponse(ctx, cacheKey, ReasonNoCandidates), nil
	}

	placeByID := make(map[int64]*domain.Place, len(filtered))
	for _, p := range filtered {
		placeByID[p.ID] = p
	}

	ranked, meanConsistency, err := recommend.Fuse(pairs, recommend.FuseOptions{
		UserID:    req.UserID,
		KnownUser: knownUser,
		Oracle:    uc.oracle,
		CatalogRating: func(placeID int64) float64 {
			if p, ok := placeByID[placeID]; ok {
				return p.Rating
			}
			return 0
		},
		GlobalAverage: uc.globalAverage(filtered),
		Jitter:        uc.jitterFactory(),
	})
	if err != nil {
		uc.logger.Error("Failed to fuse candidate scores",
			zap.Int64("user_id", req.UserID),
			zap.Error(err))
		return nil, err
	}

	resp := &dto.RecommendationResponse{
		Recommendations:    [][]domain.PlannedVisit{},
		TotalTimePerDay:    []float64{},
		TotalBudgetPerDay:  []float64{},
		MSE:                meanConsistency,
		RecommendedFlights: []*domain.Flight{},
	}

	if req.Days > 0 {
		rankedPlaces := make([]recommend.RankedPlace, 0, len(ranked))
		for _, score := range ranked {
			p, ok := placeByID[score.PlaceID]
			if !ok {
				continue
			}
			rankedPlaces = append(rankedPlaces, recommend.RankedPlace{Place: *p, Score: score})
		}

		itinerary := recommend.Schedule(rankedPlaces, recommend.ScheduleParams{
			StartLat:            req.UserLat,
			StartLng:            req.UserLng,
			Days:                req.Days,
			DailyTimeLimitHours: req.Time,
			BudgetLimit:         req.Budget,
		})
		itinerary.MeanConsistency = meanConsistency
		resp.MSE = itinerary.MeanConsistency

		for _, day := range itinerary.Days {
			resp.Recommendations = append(resp.Recommendations, day.Visits)
			resp.TotalTimePerDay = append(resp.TotalTimePerDay, day.TotalTimeHours)
			resp.TotalBudgetPerDay = append(resp.TotalBudgetPerDay, day.TotalBudget)
		}
	} else {
		resp.Reason = ReasonNoDays
	}

	// Перелет - приложение к маршруту: его отсутствие или ошибка поиска
	// не ломают ответ
	if req.DepartureCity != "" && req.DestinationCity != "" {
		flights, err := uc.flightUC.SearchForTrip(ctx, req.DepartureCity, req.DestinationCity, req.Budget)
		if err != nil {
			uc.logger.Warn("Flight lookup failed, returning itinerary without flights",
				zap.String("departure_city", req.DepartureCity),
				zap.String("destination_city", req.DestinationCity),
				zap.Error(err))
		} else {
			resp.RecommendedFlights = flights
		}
	}

	uc.toCache(ctx, cacheKey, resp)
	return resp, nil
}

// ratedPlaces возвращает места, которые пользователь оценивал.
// Известность пользователя определяется только историей оценок:
// справочник пользователей может отставать от потока событий.
// Пользователь без истории - это cold start, а не ошибка.
func (uc *RecommendationUseCase) ratedPlaces(ctx context.Context, userID int64) ([]*domain.Place, error) {
	ratings, err := uc.ratingRepo.GetByUser(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to load user ratings", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	if len(ratings) == 0 {
		// Справочник только уточняет лог: новый пользователь или
		// неизвестный идентификатор
		if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
			if err != errors.ErrUserNotFound {
				uc.logger.Warn("Failed to load user profile", zap.Int64("user_id", userID), zap.Error(err))
			} else {
				uc.logger.Debug("Unknown user id, serving cold start", zap.Int64("user_id", userID))
			}
		}
		return nil, nil
	}

	ids := make([]int64, 0, len(ratings))
	for _, r := range ratings {
		ids = append(ids, r.PlaceID)
	}

	places, err := uc.placeRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("Failed to load rated places", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return places, nil
}

// globalAverage возвращает фолбэк-предсказание: среднее модели, если она
// загружена, иначе рейтинг каталога для места
func (uc *RecommendationUseCase) globalAverage(filtered []*domain.Place) func(placeID int64) float64 {
	if uc.oracle != nil {
		return uc.oracle.GlobalAverageRating
	}

	ratingByID := make(map[int64]float64, len(filtered))
	var total float64
	for _, p := range filtered {
		ratingByID[p.ID] = p.Rating
		total += p.Rating
	}
	mean := total / float64(len(filtered))

	return func(placeID int64) float64 {
		if r, ok := ratingByID[placeID]; ok {
			return r
		}
		return mean
	}
}

func (uc *RecommendationUseCase) emptyResponse(ctx context.Context, cacheKey, reason string) *dto.RecommendationResponse {
	resp := &dto.RecommendationResponse{
		Recommendations:    [][]domain.PlannedVisit{},
		TotalTimePerDay:    []float64{},
		TotalBudgetPerDay:  []float64{},
		RecommendedFlights: []*domain.Flight{},
		Reason:             reason,
	}
	uc.toCache(ctx, cacheKey, resp)
	return resp
}

// cacheKey строит детерминированный отпечаток запроса
func (uc *RecommendationUseCase) cacheKey(req dto.RecommendationRequest) string {
	fingerprint := fmt.Sprintf("%d|%.5f|%.5f|%s|%s|%d|%.2f|%.2f|%s|%s",
		req.UserID, req.UserLat, req.UserLng,
		strings.ToLower(req.UserCity),
		strings.Join(req.UserCategories, ","),
		req.Days, req.Time, req.Budget,
		req.DepartureCity, req.DestinationCity,
	)
	sum := sha256.Sum256([]byte(fingerprint))
	return "recommendation:" + hex.EncodeToString(sum[:])
}

func (uc *RecommendationUseCase) fromCache(ctx context.Context, key string) *dto.RecommendationResponse {
	data, err := uc.cacheRepo.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("Cache lookup failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	if data == nil {
		return nil
	}

	var resp dto.RecommendationResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		uc.logger.Warn("Failed to unmarshal cached response", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &resp
}

func (uc *RecommendationUseCase) toCache(ctx context.Context, key string, resp *dto.RecommendationResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		uc.logger.Warn("Failed to marshal response for cache", zap.Error(err))
		return
	}
	if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache response", zap.String("key", key), zap.Error(err))
	}
}
