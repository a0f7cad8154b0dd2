package domain

// Допустимый диапазон пользовательских оценок
const (
	RatingMin = 1.0
	RatingMax = 5.0
)

// Rating - историческая оценка места пользователем.
// Неизменяемый факт, many-to-many между User и Place.
type Rating struct {
	UserID  int64   `json:"user_id" db:"user_id"`
	PlaceID int64   `json:"place_id" db:"place_id"`
	Score   float64 `json:"score" db:"score"`
}

// ValidScore проверяет, что оценка находится в допустимом диапазоне
func ValidScore(score float64) bool {
	return score >= RatingMin && score <= RatingMax
}
