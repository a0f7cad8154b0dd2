package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrEmptyCity = New(
		"EMPTY_CITY",
		"City name must not be empty",
		http.StatusBadRequest,
	)

	ErrUnknownCategory = New(
		"UNKNOWN_CATEGORY",
		"Unknown place category",
		http.StatusBadRequest,
	)

	ErrInvalidDays = New(
		"INVALID_DAYS",
		"Number of days exceeds the allowed maximum",
		http.StatusBadRequest,
	)

	ErrInvalidTimeLimit = New(
		"INVALID_TIME_LIMIT",
		"Daily time limit must be between 1 and 24 hours",
		http.StatusBadRequest,
	)

	ErrInvalidBudget = New(
		"INVALID_BUDGET",
		"Budget must be non-negative",
		http.StatusBadRequest,
	)

	ErrInvalidRating = New(
		"INVALID_RATING",
		"Rating score is outside the allowed range",
		http.StatusBadRequest,
	)

	ErrPlaceNotFound = New(
		"PLACE_NOT_FOUND",
		"Place not found",
		http.StatusNotFound,
	)

	ErrUserNotFound = New(
		"USER_NOT_FOUND",
		"User not found",
		http.StatusNotFound,
	)

	// ErrModelUnavailable is request-scoped: the serving process stays up,
	// only requests that need a known-user prediction fail with it.
	ErrModelUnavailable = New(
		"MODEL_UNAVAILABLE",
		"Affinity model is not loaded",
		http.StatusServiceUnavailable,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
