package handlers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/nba-explorer/internal/analysis"
	"github.com/preston-bernstein/nba-explorer/internal/domain/players"
	"github.com/preston-bernstein/nba-explorer/internal/domain/teams"
	"github.com/preston-bernstein/nba-explorer/internal/explorer"
	"github.com/preston-bernstein/nba-explorer/internal/logging"
	"github.com/preston-bernstein/nba-explorer/internal/processing"
	"github.com/preston-bernstein/nba-explorer/internal/timeutil"
)

// Export file names offered to browsers.
const (
	GamesCSVName    = "nba_games.csv"
	RankingsCSVName = "nba_rankings_filtered.csv"
)

// Explorer is the slice of the explorer service the handlers need.
type Explorer interface {
	Explore(ctx context.Context, sel explorer.Selection) (explorer.Result, error)
	Teams(ctx context.Context) ([]teams.Team, error)
	Players(ctx context.Context, search string) ([]players.Player, error)
}

type nowFunc func() time.Time

// Handler wires HTTP routes to the explorer service.
type Handler struct {
	svc       Explorer
	logger    *slog.Logger
	now       nowFunc
	rangeDays int
}

// NewHandler constructs a Handler. rangeDays is the window used when a request omits start.
func NewHandler(svc Explorer, logger *slog.Logger, rangeDays int) *Handler {
	if rangeDays <= 0 {
		rangeDays = defaultRangeDays
	}
	return &Handler{
		svc:       svc,
		logger:    logger,
		now:       time.Now,
		rangeDays: rangeDays,
	}
}

type criteriaView struct {
	Start     timeutil.Date `json:"start"`
	End       timeutil.Date `json:"end"`
	TeamIDs   []string      `json:"teamIds"`
	PlayerIDs []string      `json:"playerIds"`
	Policy    string        `json:"policy"`
}

type gamesResponse struct {
	Criteria criteriaView       `json:"criteria"`
	Rows     []processing.Row   `json:"rows"`
	Summary  processing.Summary `json:"summary"`
}

type analysisResponse struct {
	Criteria   criteriaView          `json:"criteria"`
	KPIs       analysis.KPIs         `json:"kpis"`
	Trend      []analysis.TrendPoint `json:"trend"`
	Rankings   []analysis.Ranking    `json:"rankings"`
	TeamTrends []analysis.TeamTrend  `json:"teamTrends"`
}

func newCriteriaView(c processing.Criteria) criteriaView {
	return criteriaView{
		Start:     c.Start,
		End:       c.End,
		TeamIDs:   orEmpty(c.TeamIDs.Sorted()),
		PlayerIDs: orEmpty(c.PlayerIDs.Sorted()),
		Policy:    string(c.PlayerPolicy),
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Teams lists the validated team catalogue.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Teams(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": orEmpty(items)}, h.logger)
}

// Players lists validated players matching the search parameter.
func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Players(r.Context(), r.URL.Query().Get(paramSearch))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"players": orEmpty(items)}, h.logger)
}

// Games returns the filtered game table and its summary.
func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	res, ok := h.explore(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, gamesResponse{
		Criteria: newCriteriaView(res.Criteria),
		Rows:     orEmpty(res.Rows),
		Summary:  res.Summary,
	}, h.logger)
}

// GamesCSV exports the filtered game table.
func (h *Handler) GamesCSV(w http.ResponseWriter, r *http.Request) {
	res, ok := h.explore(w, r)
	if !ok {
		return
	}
	writeCSV(w, r, GamesCSVName, func(buf *bytes.Buffer) error {
		return analysis.GameRowsCSV(buf, res.Rows)
	}, loggerFromContext(r, h.logger))
}

// Analysis returns KPIs, the daily trend, rankings and per-team trends.
func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	res, ok := h.explore(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analysisResponse{
		Criteria:   newCriteriaView(res.Criteria),
		KPIs:       res.Analysis.KPIs,
		Trend:      orEmpty(res.Analysis.Trend),
		Rankings:   orEmpty(res.Analysis.Rankings),
		TeamTrends: orEmpty(res.Analysis.TeamTrends),
	}, h.logger)
}

// RankingsCSV exports the filtered rankings table.
func (h *Handler) RankingsCSV(w http.ResponseWriter, r *http.Request) {
	res, ok := h.explore(w, r)
	if !ok {
		return
	}
	writeCSV(w, r, RankingsCSVName, func(buf *bytes.Buffer) error {
		return analysis.RankingsCSV(buf, res.Analysis.Rankings)
	}, loggerFromContext(r, h.logger))
}

// NotFound answers unknown routes with a JSON error.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
}

func (h *Handler) explore(w http.ResponseWriter, r *http.Request) (explorer.Result, bool) {
	sel, err := parseSelection(r.URL.Query(), h.now(), h.rangeDays)
	if err != nil {
		var pErr *paramError
		if errors.As(err, &pErr) {
			logging.Warn(loggerFromContext(r, h.logger), "rejected query", "param", pErr.Param)
		}
		writeTableError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return explorer.Result{}, false
	}
	res, err := h.svc.Explore(r.Context(), sel)
	if err != nil {
		h.writeServiceError(w, r, err)
		return explorer.Result{}, false
	}
	return res, true
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
