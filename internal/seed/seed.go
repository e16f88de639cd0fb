// movies-service/internal/seed/seed.go
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"movies-service/internal/domain"
	"movies-service/internal/store"
)

//go:embed movies.json
var moviesJSON []byte

// Load наполняет хранилище встроенным набором фильмов, логируя каждое название.
// Возвращает число успешно добавленных записей.
func Load(s store.MovieStore, logger *slog.Logger) (int, error) {
	var movies []domain.Movie
	if err := json.Unmarshal(moviesJSON, &movies); err != nil {
		return 0, fmt.Errorf("failed to parse movies fixture: %w", err)
	}

	seeded := 0
	for i := range movies {
		movie := movies[i]
		if !s.Insert(&movie) {
			logger.Warn("Skipping fixture record without id", slog.String("title", movie.Title))
			continue
		}
		logger.Info("Seeded movie", slog.String("title", movie.Title))
		seeded++
	}
	return seeded, nil
}
