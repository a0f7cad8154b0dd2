// Package mf реализует латентно-факторную модель предсказания рейтингов:
// скалярное произведение эмбеддингов пользователя и места плюс bias-термы,
// обучаемое SGD по квадратичной ошибке с L2-регуляризацией.
//
// Жизненные циклы разделены: cmd/trainer обучает и сохраняет артефакт,
// serving-процесс только загружает его и читает. Загруженная модель
// неизменяема и безопасна для конкурентных запросов.
package mf

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/itinerary-microservice/internal/domain"
)

// TrainConfig - гиперпараметры офлайн-обучения
type TrainConfig struct {
	Factors        int
	Epochs         int
	LearningRate   float64
	Regularization float64
	Seed           int64
}

// DefaultTrainConfig повторяет параметры, на которых модель обучалась
// исторически: 50 факторов, L2 1e-6.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Factors:        50,
		Epochs:         20,
		LearningRate:   0.005,
		Regularization: 1e-6,
		Seed:           1,
	}
}

// Model - обученная модель. Все поля экспортированы для сериализации
// артефакта; после загрузки модель используется только на чтение.
type Model struct {
	Factors    int               `json:"factors"`
	UserIndex  map[int64]int     `json:"user_index"`
	PlaceIndex map[int64]int     `json:"place_index"`
	UserVecs   [][]float64       `json:"user_vecs"`
	PlaceVecs  [][]float64       `json:"place_vecs"`
	UserBias   []float64         `json:"user_bias"`
	PlaceBias  []float64         `json:"place_bias"`
	GlobalMean float64           `json:"global_mean"`
	PlaceAvg   map[int64]float64 `json:"place_avg"`
}

// Train обучает модель на полном наборе оценок.
// Средние рейтинги по местам считаются из тех же оценок и входят в
// артефакт: они же служат фолбэком GlobalAverageRating.
func Train(ratings []*domain.Rating, cfg TrainConfig) (*Model, error) {
	if len(ratings) == 0 {
		return nil, fmt.Errorf("mf: no ratings to train on")
	}
	if cfg.Factors <= 0 {
		return nil, fmt.Errorf("mf: factors must be positive, got %d", cfg.Factors)
	}

	m := &Model{
		Factors:    cfg.Factors,
		UserIndex:  make(map[int64]int),
		PlaceIndex: make(map[int64]int),
		PlaceAvg:   make(map[int64]float64),
	}

	placeSums := make(map[int64]float64)
	placeCounts := make(map[int64]int)
	var total float64
	for _, r := range ratings {
		if _, ok := m.UserIndex[r.UserID]; !ok {
			m.UserIndex[r.UserID] = len(m.UserIndex)
		}
		if _, ok := m.PlaceIndex[r.PlaceID]; !ok {
			m.PlaceIndex[r.PlaceID] = len(m.PlaceIndex)
		}
		placeSums[r.PlaceID] += r.Score
		placeCounts[r.PlaceID]++
		total += r.Score
	}
	m.GlobalMean = total / float64(len(ratings))
	for placeID, sum := range placeSums {
		m.PlaceAvg[placeID] = sum / float64(placeCounts[placeID])
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	m.UserVecs = randomVectors(rng, len(m.UserIndex), cfg.Factors)
	m.PlaceVecs = randomVectors(rng, len(m.PlaceIndex), cfg.Factors)
	m.UserBias = make([]float64, len(m.UserIndex))
	m.PlaceBias = make([]float64, len(m.PlaceIndex))

	lr := cfg.LearningRate
	reg := cfg.Regularization
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		for _, r := range ratings {
			u := m.UserIndex[r.UserID]
			p := m.PlaceIndex[r.PlaceID]

			pred := m.GlobalMean + m.UserBias[u] + m.PlaceBias[p] + dot(m.UserVecs[u], m.PlaceVecs[p])
			errTerm := r.Score - pred

			m.UserBias[u] += lr * (errTerm - reg*m.UserBias[u])
			m.PlaceBias[p] += lr * (errTerm - reg*m.PlaceBias[p])

			uv, pv := m.UserVecs[u], m.PlaceVecs[p]
			for f := 0; f < cfg.Factors; f++ {
				du := lr * (errTerm*pv[f] - reg*uv[f])
				dp := lr * (errTerm*uv[f] - reg*pv[f])
				uv[f] += du
				pv[f] += dp
			}
		}
	}

	return m, nil
}

// RMSE возвращает корень из среднеквадратичной ошибки модели на наборе оценок
func (m *Model) RMSE(ratings []*domain.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		pred, err := m.Predict(r.UserID, r.PlaceID)
		if err != nil {
			pred = m.GlobalAverageRating(r.PlaceID)
		}
		diff := r.Score - pred
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(ratings)))
}

// Predict возвращает предсказанный рейтинг пары (user, place).
// Определен только для пар, известных на момент обучения.
func (m *Model) Predict(userID, placeID int64) (float64, error) {
	u, ok := m.UserIndex[userID]
	if !ok {
		return 0, fmt.Errorf("mf: user %d not seen at training time", userID)
	}
	p, ok := m.PlaceIndex[placeID]
	if !ok {
		return 0, fmt.Errorf("mf: place %d not seen at training time", placeID)
	}
	return m.GlobalMean + m.UserBias[u] + m.PlaceBias[p] + dot(m.UserVecs[u], m.PlaceVecs[p]), nil
}

// IsKnownUser сообщает, видела ли модель пользователя при обучении
func (m *Model) IsKnownUser(userID int64) bool {
	_, ok := m.UserIndex[userID]
	return ok
}

// GlobalAverageRating возвращает средний рейтинг места, с фолбэком на
// среднее по всему каталогу
func (m *Model) GlobalAverageRating(placeID int64) float64 {
	if avg, ok := m.PlaceAvg[placeID]; ok {
		return avg
	}
	return m.GlobalMean
}

// Save атомарно записывает артефакт модели: сначала во временный файл,
// затем rename
func (m *Model) Save(path string) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("mf: failed to marshal model: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mf: failed to create model directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "model-*.json.tmp")
	if err != nil {
		return fmt.Errorf("mf: failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("mf: failed to write model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("mf: failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("mf: failed to move model into place: %w", err)
	}
	return nil
}

// Load читает артефакт модели с диска
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mf: failed to read model artifact: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("mf: failed to unmarshal model artifact: %w", err)
	}
	if m.Factors <= 0 || len(m.UserVecs) != len(m.UserIndex) || len(m.PlaceVecs) != len(m.PlaceIndex) {
		return nil, fmt.Errorf("mf: model artifact is inconsistent")
	}
	return &m, nil
}

func randomVectors(rng *rand.Rand, n, factors int) [][]float64 {
	vecs := make([][]float64, n)
	for i := range vecs {
		v := make([]float64, factors)
		for f := range v {
			v[f] = rng.NormFloat64() * 0.05
		}
		vecs[i] = v
	}
	return vecs
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
