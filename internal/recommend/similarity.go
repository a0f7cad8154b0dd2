package recommend

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/itinerary-microservice/internal/domain"
)

// maxNeighbors - сколько ближайших соседей рекомендуется для каждого
// опорного места
const maxNeighbors = 9

// ContentRanker вычисляет контентную близость мест через TF-IDF векторы
// по текстовым признакам (название + категория) и косинусную меру.
// Значение создается на каждый набор кандидатов: словарь локален для
// вызова и не переживает запрос.
type ContentRanker struct {
	neighbors int
}

// NewContentRanker создает ContentRanker со стандартным числом соседей
func NewContentRanker() ContentRanker {
	return ContentRanker{neighbors: maxNeighbors}
}

// Rank возвращает пары (опорное место -> сосед) как частично заполненные
// CandidateScore: только PlaceID и ContentSimilarity. Одно и то же место
// может встречаться несколько раз как сосед разных опорных мест -
// дедупликацию выполняет ScoreFusionEngine.
//
// Пустой или одноэлементный набор кандидатов дает пустой результат без
// ошибки: соседей не существует.
func (r ContentRanker) Rank(places []*domain.Place) []domain.CandidateScore {
	if len(places) < 2 {
		return nil
	}

	vectors := tfidfVectors(places)

	out := make([]domain.CandidateScore, 0, len(places)*r.neighbors)
	for anchor := range places {
		type neighbor struct {
			idx int
			sim float64
		}

		neighbors := make([]neighbor, 0, len(places)-1)
		for other := range places {
			if other == anchor {
				continue
			}
			neighbors = append(neighbors, neighbor{
				idx: other,
				sim: dot(vectors[anchor], vectors[other]),
			})
		}

		// Стабильная сортировка: при равной близости порядок следования
		// кандидатов сохраняется
		sort.SliceStable(neighbors, func(i, j int) bool {
			return neighbors[i].sim > neighbors[j].sim
		})

		limit := r.neighbors
		if limit > len(neighbors) {
			limit = len(neighbors)
		}

		for _, n := range neighbors[:limit] {
			out = append(out, domain.CandidateScore{
				PlaceID:           places[n.idx].ID,
				ContentSimilarity: n.sim,
			})
		}
	}

	return out
}

// tfidfVectors строит L2-нормированные TF-IDF векторы для набора мест.
// IDF сглаженный: ln((1+n)/(1+df)) + 1.
func tfidfVectors(places []*domain.Place) []map[int]float64 {
	vocab := make(map[string]int)
	docs := make([][]string, len(places))
	for i, p := range places {
		docs[i] = tokenize(p.Name + " " + p.Category)
		for _, term := range docs[i] {
			if _, ok := vocab[term]; !ok {
				vocab[term] = len(vocab)
			}
		}
	}

	// Документная частота терминов
	df := make([]int, len(vocab))
	for _, doc := range docs {
		seen := make(map[int]bool, len(doc))
		for _, term := range doc {
			seen[vocab[term]] = true
		}
		for idx := range seen {
			df[idx]++
		}
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, d := range df {
		idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}

	vectors := make([]map[int]float64, len(docs))
	for i, doc := range docs {
		vec := make(map[int]float64)
		for _, term := range doc {
			vec[vocab[term]]++
		}

		var norm float64
		for idx := range vec {
			vec[idx] *= idf[idx]
			norm += vec[idx] * vec[idx]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for idx := range vec {
				vec[idx] /= norm
			}
		}
		vectors[i] = vec
	}

	return vectors
}

// dot - скалярное произведение; для L2-нормированных векторов совпадает
// с косинусной близостью
func dot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for idx, v := range a {
		sum += v * b[idx]
	}
	return sum
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
