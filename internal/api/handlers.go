// movies-service/internal/api/handlers.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"movies-service/internal/aggregate"
	"movies-service/internal/domain"
	"movies-service/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// MovieHandler содержит зависимости для HTTP обработчиков.
type MovieHandler struct {
	store      store.MovieStore
	aggregator aggregate.MovieAggregator
	logger     *slog.Logger
	validator  *validator.Validate
}

// NewMovieHandler создает новый экземпляр MovieHandler.
func NewMovieHandler(s store.MovieStore, a aggregate.MovieAggregator, l *slog.Logger, v *validator.Validate) *MovieHandler {
	return &MovieHandler{
		store:      s,
		aggregator: a,
		logger:     l,
		validator:  v,
	}
}

// --- Вспомогательные функции ---

func (h *MovieHandler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to encode JSON response",
				slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *MovieHandler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"error": message})
}

// respondListError переводит ошибку операции листинга в статус ответа.
// Тело в обоих случаях пустое: 404 — фильтру никто не соответствует,
// 500 — внутренняя ошибка, детали наружу не утекают.
func (h *MovieHandler) respondListError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, aggregate.ErrNoMovies) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.logger.ErrorContext(r.Context(), "Movie listing failed",
		slog.String("path", r.URL.Path), slog.String("error", err.Error()))
	w.WriteHeader(http.StatusInternalServerError)
}

// --- Обработчики ---

// GetMovies возвращает каталог фильмов. Без параметра title — все записи,
// с ним — базовый набор по точному совпадению названия (404, если пусто).
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !r.URL.Query().Has("title") {
		movies := h.aggregator.ListAll(ctx)
		h.respondJSON(w, r, http.StatusOK, movies)
		return
	}

	movies, err := h.aggregator.ListByTitle(ctx, r.URL.Query().Get("title"))
	if err != nil {
		h.respondListError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, movies)
}

// GetMoviesWithStatistics возвращает фильмы, обогащённые статистикой отзывов.
// Недоступность сервиса отзывов не превращает листинг в ошибку:
// базовый набор возвращается без полей обогащения.
func (h *MovieHandler) GetMoviesWithStatistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		movies []domain.EnrichedMovie
		err    error
	)
	if r.URL.Query().Has("title") {
		movies, err = h.aggregator.ListWithStatistics(ctx, r.URL.Query().Get("title"))
	} else {
		movies, err = h.aggregator.ListAllWithStatistics(ctx)
	}
	if err != nil {
		h.respondListError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, movies)
}

// GetMoviesWithReviews возвращает фильмы, обогащённые текстами отзывов.
func (h *MovieHandler) GetMoviesWithReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	movies, err := h.aggregator.ListWithReviews(ctx, r.URL.Query().Get("title"))
	if err != nil {
		h.respondListError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, movies)
}

// CreateMovie обрабатывает запрос на добавление фильма в хранилище.
// Невалидное тело отклоняется на границе десериализации, до обращения к store.
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode movie creation request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Movie creation request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	movie := domain.Movie{
		ID:          req.ID,
		Title:       req.Title,
		ReleaseYear: req.ReleaseYear,
		Director:    req.Director,
		Genres:      req.Genres,
	}
	if movie.ID == "" {
		movie.ID = uuid.NewString()
	}

	if !h.store.Insert(&movie) {
		h.logger.ErrorContext(ctx, "Movie insert rejected by store", slog.String("movieID", movie.ID))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "Movie created", slog.String("movieID", movie.ID), slog.String("title", movie.Title))
	h.respondJSON(w, r, http.StatusCreated, movie)
}

// DeleteMovie удаляет фильм по первичному ключу.
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	movieID := mux.Vars(r)["movieId"]

	if !h.store.DeleteByID(movieID) {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	h.logger.InfoContext(ctx, "Movie deleted", slog.String("movieID", movieID))
	w.WriteHeader(http.StatusNoContent)
}
