package domain

// User представляет пользователя сервиса рекомендаций
type User struct {
	ID       int64  `json:"user_id" db:"user_id"`
	Location string `json:"location,omitempty" db:"location"`
	Age      *int   `json:"age,omitempty" db:"age"`
}
