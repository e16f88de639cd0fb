// movies-service/internal/api/router.go
package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(handler *MovieHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(handler.RequestLogger)

	// Эндпоинты для фильмов
	moviesRouter := router.PathPrefix("/movies").Subrouter()
	moviesRouter.HandleFunc("", handler.GetMovies).Methods(http.MethodGet)
	moviesRouter.HandleFunc("/stats", handler.GetMoviesWithStatistics).Methods(http.MethodGet)
	moviesRouter.HandleFunc("/reviews", handler.GetMoviesWithReviews).Methods(http.MethodGet)
	moviesRouter.HandleFunc("", handler.CreateMovie).Methods(http.MethodPost)
	moviesRouter.HandleFunc("/{movieId}", handler.DeleteMovie).Methods(http.MethodDelete)

	return router
}
