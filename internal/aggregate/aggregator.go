// movies-service/internal/aggregate/aggregator.go
package aggregate

import (
	"context"
	"errors"
	"log/slog"

	"movies-service/internal/clients"
	"movies-service/internal/domain"
	"movies-service/internal/store"
)

// ErrNoMovies возвращается, когда фильтру не соответствует ни один фильм.
// Удалённые вызовы при этом не выполняются.
var ErrNoMovies = errors.New("no movies matched the filter")

// MovieAggregator определяет операции чтения поверх хранилища фильмов
// с обогащением данными сервиса отзывов.
type MovieAggregator interface {
	ListAll(ctx context.Context) []domain.Movie
	ListByTitle(ctx context.Context, title string) ([]domain.Movie, error)
	ListWithStatistics(ctx context.Context, title string) ([]domain.EnrichedMovie, error)
	ListAllWithStatistics(ctx context.Context) ([]domain.EnrichedMovie, error)
	ListWithReviews(ctx context.Context, title string) ([]domain.EnrichedMovie, error)
}

// Aggregator сводит локальные записи фильмов и данные сервиса отзывов
// в единую форму ответа. Деградировавший результат клиента отзывов —
// не ошибка: базовый набор возвращается без полей обогащения.
type Aggregator struct {
	store   store.MovieStore
	reviews clients.ReviewsClient
	logger  *slog.Logger
}

func New(s store.MovieStore, reviews clients.ReviewsClient, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		store:   s,
		reviews: reviews,
		logger:  logger,
	}
}

func (a *Aggregator) ListAll(ctx context.Context) []domain.Movie {
	return a.store.FindAll()
}

// ListByTitle возвращает базовый набор фильмов по точному совпадению названия.
// Пустой набор — ErrNoMovies, это короткое замыкание до любых удалённых вызовов.
func (a *Aggregator) ListByTitle(ctx context.Context, title string) ([]domain.Movie, error) {
	movies := a.store.FindBy("title", title)
	if len(movies) == 0 {
		return nil, ErrNoMovies
	}
	return movies, nil
}

// ListWithStatistics обогащает отфильтрованный набор статистикой отзывов.
// Статистика сопоставляется по полю id удалённой записи; записи про
// неизвестные фильмы молча отбрасываются.
func (a *Aggregator) ListWithStatistics(ctx context.Context, title string) ([]domain.EnrichedMovie, error) {
	base, err := a.ListByTitle(ctx, title)
	if err != nil {
		return nil, err
	}

	result := a.reviews.GetMoviesStatistics(ctx, movieIDs(base))
	if result.Degraded {
		a.logger.WarnContext(ctx, "Statistics enrichment degraded, returning base movies only",
			slog.Int("movies", len(base)))
	}
	return mergeStatistics(base, result.Statistics), nil
}

// ListAllWithStatistics обогащает весь каталог глобальной статистикой.
// Пустое хранилище — пустой ответ без удалённого вызова.
func (a *Aggregator) ListAllWithStatistics(ctx context.Context) ([]domain.EnrichedMovie, error) {
	base := a.store.FindAll()
	if len(base) == 0 {
		return []domain.EnrichedMovie{}, nil
	}

	result := a.reviews.GetAllMoviesStatistics(ctx)
	if result.Degraded {
		a.logger.WarnContext(ctx, "Statistics enrichment degraded, returning base movies only",
			slog.Int("movies", len(base)))
	}
	return mergeStatistics(base, result.Statistics), nil
}

// ListWithReviews обогащает отфильтрованный набор текстами отзывов.
// Отзывы группируются по movieId; поле reviews получают только фильмы,
// у которых нашёлся хотя бы один отзыв.
func (a *Aggregator) ListWithReviews(ctx context.Context, title string) ([]domain.EnrichedMovie, error) {
	base, err := a.ListByTitle(ctx, title)
	if err != nil {
		return nil, err
	}

	result := a.reviews.GetMoviesReviews(ctx, movieIDs(base))
	if result.Degraded {
		a.logger.WarnContext(ctx, "Reviews enrichment degraded, returning base movies only",
			slog.Int("movies", len(base)))
	}

	known := make(map[string]struct{}, len(base))
	for _, movie := range base {
		known[movie.ID] = struct{}{}
	}

	grouped := make(map[string]map[string]domain.ReviewSummary)
	for _, review := range result.Reviews {
		if _, ok := known[review.MovieID]; !ok {
			// Отзыв про фильм вне базового набора не порождает фантомных записей.
			continue
		}
		group := grouped[review.MovieID]
		if group == nil {
			group = make(map[string]domain.ReviewSummary)
			grouped[review.MovieID] = group
		}
		group[review.ID] = domain.ReviewSummary{
			Headline: review.Headline,
			Message:  review.Message,
		}
	}

	enriched := make([]domain.EnrichedMovie, 0, len(base))
	for _, movie := range base {
		enrichedMovie := domain.EnrichedMovie{Movie: movie}
		if group, ok := grouped[movie.ID]; ok {
			enrichedMovie.Reviews = group
		}
		enriched = append(enriched, enrichedMovie)
	}
	return enriched, nil
}

// mergeStatistics накладывает статистику на базовый набор, сохраняя его порядок.
// Наложение идемпотентно: повторное применение того же списка даёт тот же результат.
func mergeStatistics(base []domain.Movie, stats []domain.ReviewStatistic) []domain.EnrichedMovie {
	byID := make(map[string]domain.ReviewStatistic, len(stats))
	for _, stat := range stats {
		byID[stat.ID] = stat
	}

	enriched := make([]domain.EnrichedMovie, 0, len(base))
	for _, movie := range base {
		enrichedMovie := domain.EnrichedMovie{Movie: movie}
		if stat, ok := byID[movie.ID]; ok {
			totalReviews := stat.TotalReviews
			averageRating := stat.AverageRating
			enrichedMovie.TotalReviews = &totalReviews
			enrichedMovie.AverageRating = &averageRating
		}
		enriched = append(enriched, enrichedMovie)
	}
	return enriched
}

func movieIDs(movies []domain.Movie) []string {
	ids := make([]string, 0, len(movies))
	for _, movie := range movies {
		ids = append(ids, movie.ID)
	}
	return ids
}
