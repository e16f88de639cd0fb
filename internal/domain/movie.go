// movies-service/internal/domain/movie.go
package domain

// Movie представляет основную доменную модель фильма.
// ID является первичным ключом хранилища и обязан быть непустым.
type Movie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	ReleaseYear int      `json:"releaseYear,omitempty"`
	Director    string   `json:"director,omitempty"`
	Genres      []string `json:"genres,omitempty"`
}

// CreateMovieRequest определяет тело запроса для добавления нового фильма.
// Если ID не указан, обработчик сгенерирует его сам.
type CreateMovieRequest struct {
	ID          string   `json:"id,omitempty" validate:"omitempty,min=1,max=64"`
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	ReleaseYear int      `json:"releaseYear,omitempty" validate:"omitempty,gte=1888,lte=2100"`
	Director    string   `json:"director,omitempty" validate:"omitempty,min=2,max=100"`
	Genres      []string `json:"genres,omitempty" validate:"omitempty,min=1,dive,min=2,max=50"`
}

// EnrichedMovie — фильм, дополненный данными сервиса отзывов.
// Поля обогащения опциональны: фильм, для которого удалённый сервис
// ничего не вернул, сохраняет только базовые атрибуты — поля
// не заполняются нулевыми значениями.
type EnrichedMovie struct {
	Movie
	TotalReviews  *int                     `json:"totalReviews,omitempty"`
	AverageRating *float64                 `json:"averageRating,omitempty"`
	Reviews       map[string]ReviewSummary `json:"reviews,omitempty"`
}
