package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/nba-explorer/internal/http/handlers"
	"github.com/preston-bernstein/nba-explorer/internal/http/middleware"
	"github.com/preston-bernstein/nba-explorer/internal/metrics"
)

const unmatchedRoute = "unmatched"

// NewRouter registers the explorer routes and wraps them with request logging.
func NewRouter(h *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	router := mux.NewRouter()
	router.Use(middleware.Recover(logger))

	router.HandleFunc("/health", h.Health).Methods(nethttp.MethodGet)
	router.HandleFunc("/teams", h.Teams).Methods(nethttp.MethodGet)
	router.HandleFunc("/players", h.Players).Methods(nethttp.MethodGet)
	router.HandleFunc("/games", h.Games).Methods(nethttp.MethodGet)
	router.HandleFunc("/games.csv", h.GamesCSV).Methods(nethttp.MethodGet)
	router.HandleFunc("/analysis", h.Analysis).Methods(nethttp.MethodGet)
	router.HandleFunc("/analysis/rankings.csv", h.RankingsCSV).Methods(nethttp.MethodGet)

	router.NotFoundHandler = nethttp.HandlerFunc(h.NotFound)
	router.MethodNotAllowedHandler = nethttp.HandlerFunc(h.MethodNotAllowed)

	return middleware.Logging(logger, recorder, routeTemplate(router))(router)
}

// routeTemplate labels metrics with the registered path so unknown paths share one series.
func routeTemplate(router *mux.Router) middleware.RouteFunc {
	return func(r *nethttp.Request) string {
		var match mux.RouteMatch
		if !router.Match(r, &match) || match.Route == nil {
			return unmatchedRoute
		}
		tmpl, err := match.Route.GetPathTemplate()
		if err != nil {
			return unmatchedRoute
		}
		return tmpl
	}
}
