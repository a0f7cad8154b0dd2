package recommend

import "math/rand"

// AffinityOracle - контракт обученной латентно-факторной модели.
// Модель загружается один раз при старте, read-only и безопасна для
// конкурентных запросов. Обучение происходит офлайн (cmd/trainer) и
// никогда не запускается внутри serving-запроса.
type AffinityOracle interface {
	// Predict возвращает предсказанный рейтинг пары (user, place).
	// Определен для пар, известных на момент обучения.
	Predict(userID, placeID int64) (float64, error)

	// IsKnownUser сообщает, видела ли модель пользователя при обучении
	IsKnownUser(userID int64) bool

	// GlobalAverageRating возвращает средний рейтинг места,
	// с фолбэком на среднее по всему каталогу для неизвестных мест
	GlobalAverageRating(placeID int64) float64
}

// JitterFunc - источник симметричного шума для cold-start пути.
// Должен возвращать значения из U(-0.5, +0.5); в тестах подменяется
// константным нулем.
type JitterFunc func() float64

// UniformJitter возвращает seed-уемый источник U(-0.5, +0.5).
// Создается на каждый запрос: *rand.Rand не потокобезопасен.
func UniformJitter(seed int64) JitterFunc {
	r := rand.New(rand.NewSource(seed))
	return func() float64 {
		return r.Float64() - 0.5
	}
}
