// movies-service/internal/domain/review.go
package domain

import (
	"time"
)

// ReviewStatistic — агрегированная статистика отзывов по одному фильму.
// Приходит только из сервиса отзывов, локально не хранится.
type ReviewStatistic struct {
	ID            string  `json:"id"` // идентификатор фильма на стороне провайдера
	TotalReviews  int     `json:"totalReviews"`
	AverageRating float64 `json:"averageRating"`
}

// Review представляет один отзыв из сервиса отзывов. Метаданные провайдера
// (ipAddress, gender, anonymous, createdAt) агрегатором не используются,
// но их присутствие в ответе допустимо.
type Review struct {
	MovieID   string    `json:"movieId"` // внешний ключ к Movie
	ID        string    `json:"id"`      // уникален в пределах фильма
	Headline  string    `json:"headline"`
	Message   string    `json:"message"`
	IPAddress string    `json:"ipAddress,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	Anonymous bool      `json:"anonymous,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewSummary — проекция отзыва, попадающая в обогащённый ответ.
type ReviewSummary struct {
	Headline string `json:"headline"`
	Message  string `json:"message"`
}
