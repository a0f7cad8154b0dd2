package domain

// Категории мест из туристического каталога
const (
	CategoryCulture       = "Budaya"
	CategoryThemePark     = "Taman Hiburan"
	CategoryNatureReserve = "Cagar Alam"
	CategoryMarine        = "Bahari"
	CategoryShopping      = "Pusat Perbelanjaan"
	CategoryWorship       = "Tempat Ibadah"
)

// Categories - полный набор допустимых категорий
var Categories = []string{
	CategoryCulture,
	CategoryThemePark,
	CategoryNatureReserve,
	CategoryMarine,
	CategoryShopping,
	CategoryWorship,
}

// ValidCategory проверяет, что категория входит в допустимый набор
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Place представляет туристическое место из каталога.
// Справочные данные, read-only для сервиса.
type Place struct {
	ID           int64   `json:"place_id" db:"place_id"`
	Name         string  `json:"name" db:"name"`
	Category     string  `json:"category" db:"category"`
	City         string  `json:"city" db:"city"`
	Price        float64 `json:"price" db:"price"`
	VisitMinutes float64 `json:"time_minutes" db:"time_minutes"`
	Rating       float64 `json:"rating" db:"rating"` // средний рейтинг каталога
	Lat          float64 `json:"lat" db:"lat"`
	Lng          float64 `json:"lng" db:"lng"`
	Description  string  `json:"description,omitempty" db:"description"`
	ImageURL     *string `json:"image_url,omitempty" db:"image_url"`
}
