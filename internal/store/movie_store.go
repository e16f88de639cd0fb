// movies-service/internal/store/movie_store.go
package store

import (
	"sync"

	"movies-service/internal/domain"
)

// MovieStore определяет контракт хранилища фильмов.
type MovieStore interface {
	// Insert сохраняет фильм по его ID (upsert). Возвращает false,
	// если запись невалидна (nil или пустой ID) — без ошибки, молча.
	Insert(movie *domain.Movie) bool
	// FindAll возвращает все записи. Порядок не гарантируется,
	// вызывающие не должны на него полагаться.
	FindAll() []domain.Movie
	// FindBy возвращает записи, у которых именованное поле точно равно value.
	// Частичное совпадение и приведение типов не поддерживаются.
	// При отсутствии совпадений возвращается пустой срез, не ошибка.
	FindBy(field, value string) []domain.Movie
	// Delete удаляет записи с точным совпадением поля, возвращает их число.
	Delete(field, value string) int
	// DeleteByID удаляет запись по первичному ключу.
	DeleteByID(id string) bool
}

// InMemoryMovieStore хранит фильмы в карте под RWMutex.
// Создаётся один раз при старте процесса и передаётся зависимостям явно.
type InMemoryMovieStore struct {
	mu     sync.RWMutex
	movies map[string]domain.Movie
}

func NewInMemoryMovieStore() *InMemoryMovieStore {
	return &InMemoryMovieStore{
		movies: make(map[string]domain.Movie),
	}
}

func (s *InMemoryMovieStore) Insert(movie *domain.Movie) bool {
	if movie == nil || movie.ID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Сохраняем копию, чтобы запись нельзя было изменить извне через указатель.
	s.movies[movie.ID] = *movie
	return true
}

func (s *InMemoryMovieStore) FindAll() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]domain.Movie, 0, len(s.movies))
	for _, movie := range s.movies {
		results = append(results, movie)
	}
	return results
}

func (s *InMemoryMovieStore) FindBy(field, value string) []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]domain.Movie, 0)
	for _, movie := range s.movies {
		if fieldValue, ok := movieField(movie, field); ok && fieldValue == value {
			results = append(results, movie)
		}
	}
	return results
}

func (s *InMemoryMovieStore) Delete(field, value string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for id, movie := range s.movies {
		if fieldValue, ok := movieField(movie, field); ok && fieldValue == value {
			delete(s.movies, id)
			deleted++
		}
	}
	return deleted
}

func (s *InMemoryMovieStore) DeleteByID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.movies[id]; !ok {
		return false
	}
	delete(s.movies, id)
	return true
}

// movieField возвращает строковое значение именованного поля фильма.
// Неизвестное поле считается несовпадением для любой записи.
func movieField(movie domain.Movie, field string) (string, bool) {
	switch field {
	case "id":
		return movie.ID, true
	case "title":
		return movie.Title, true
	case "director":
		return movie.Director, true
	default:
		return "", false
	}
}
