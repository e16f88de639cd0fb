// movies-service/internal/clients/reviews_client.go
package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"movies-service/internal/domain"
)

// errNotFound сигнализирует ответ 404 провайдера: легитимный "пустой" результат,
// который не нужно ни повторять, ни считать деградацией.
var errNotFound = errors.New("not found")

// errMalformedPayload — некорректное тело 200-ответа. Это нарушение контракта
// провайдером, а не временный сбой, поэтому запрос не повторяется.
var errMalformedPayload = errors.New("malformed payload")

// StatsResult — результат запроса статистики. Degraded=true означает, что
// удалённый вызов не удался и пустой результат подставлен вместо ошибки.
type StatsResult struct {
	Statistics []domain.ReviewStatistic
	Degraded   bool
}

// ReviewsResult — результат запроса отзывов, семантика Degraded та же.
type ReviewsResult struct {
	Reviews  []domain.Review
	Degraded bool
}

// ReviewsClient определяет операции чтения сервиса отзывов.
// Ни одна операция не возвращает ошибку: любой сбой транспорта или
// не-2xx ответ поглощается на границе клиента и отдаётся как пустой
// результат. Агрегатор никогда не падает из-за недоступности отзывов.
type ReviewsClient interface {
	GetMoviesStatistics(ctx context.Context, movieIDs []string) StatsResult
	GetAllMoviesStatistics(ctx context.Context) StatsResult
	GetMoviesReviews(ctx context.Context, movieIDs []string) ReviewsResult
}

// reviewsHTTPClient реализует ReviewsClient поверх HTTP API сервиса отзывов.
type reviewsHTTPClient struct {
	client     *http.Client
	baseURL    string
	maxRetries int
	logger     *slog.Logger
}

// NewReviewsHTTPClient создаёт клиент сервиса отзывов.
// baseURL — адрес сервиса (например, "http://localhost:3002").
func NewReviewsHTTPClient(baseURL string, timeout time.Duration, maxRetries int, logger *slog.Logger) ReviewsClient {
	return &reviewsHTTPClient{
		client:     &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

func (c *reviewsHTTPClient) GetMoviesStatistics(ctx context.Context, movieIDs []string) StatsResult {
	stats := make([]domain.ReviewStatistic, 0)
	if err := c.getWithRetry(ctx, "/stats", movieIDs, &stats); err != nil {
		return StatsResult{Statistics: []domain.ReviewStatistic{}, Degraded: !errors.Is(err, errNotFound)}
	}
	return StatsResult{Statistics: stats}
}

func (c *reviewsHTTPClient) GetAllMoviesStatistics(ctx context.Context) StatsResult {
	stats := make([]domain.ReviewStatistic, 0)
	if err := c.getWithRetry(ctx, "/stats", nil, &stats); err != nil {
		return StatsResult{Statistics: []domain.ReviewStatistic{}, Degraded: !errors.Is(err, errNotFound)}
	}
	return StatsResult{Statistics: stats}
}

func (c *reviewsHTTPClient) GetMoviesReviews(ctx context.Context, movieIDs []string) ReviewsResult {
	reviews := make([]domain.Review, 0)
	if err := c.getWithRetry(ctx, "/reviews", movieIDs, &reviews); err != nil {
		return ReviewsResult{Reviews: []domain.Review{}, Degraded: !errors.Is(err, errNotFound)}
	}
	return ReviewsResult{Reviews: reviews}
}

// getWithRetry выполняет GET с ограниченным числом повторов.
// 404 не повторяется: это ответ "данных нет", а не сбой.
func (c *reviewsHTTPClient) getWithRetry(ctx context.Context, path string, movieIDs []string, out interface{}) error {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 100 * time.Millisecond
			time.Sleep(backoff)
			c.logger.InfoContext(ctx, "Retrying reviews service request",
				slog.String("path", path), slog.Int("attempt", attempt), slog.Int("max_retries", c.maxRetries))
		}

		err := c.doRequest(ctx, path, movieIDs, out)
		if err == nil {
			return nil
		}
		if errors.Is(err, errNotFound) {
			return err
		}
		if errors.Is(err, errMalformedPayload) {
			c.logger.WarnContext(ctx, "Reviews service returned malformed payload, degrading to empty result",
				slog.String("path", path), slog.String("error", err.Error()))
			return err
		}
		lastErr = err
	}

	c.logger.WarnContext(ctx, "Reviews service request failed, degrading to empty result",
		slog.String("path", path), slog.Int("attempts", c.maxRetries+1), slog.String("error", lastErr.Error()))
	return lastErr
}

func (c *reviewsHTTPClient) doRequest(ctx context.Context, path string, movieIDs []string, out interface{}) error {
	endpoint := c.baseURL + path
	if len(movieIDs) > 0 {
		// Идентификаторы сериализуются повторяющимся параметром movieId[],
		// а не строкой через запятую. Формат закреплён контрактными тестами.
		query := url.Values{}
		for _, id := range movieIDs {
			query.Add("movieId[]", id)
		}
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", errMalformedPayload, err)
	}
	return nil
}
