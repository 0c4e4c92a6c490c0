// Package explorer runs one filter-and-summarise pass over upstream data:
// fetch, validate, filter by the selection, then build the table, summary
// and analysis views.
package explorer

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/preston-bernstein/nba-explorer/internal/analysis"
	appgames "github.com/preston-bernstein/nba-explorer/internal/app/games"
	appplayers "github.com/preston-bernstein/nba-explorer/internal/app/players"
	appteams "github.com/preston-bernstein/nba-explorer/internal/app/teams"
	"github.com/preston-bernstein/nba-explorer/internal/domain/games"
	"github.com/preston-bernstein/nba-explorer/internal/domain/players"
	"github.com/preston-bernstein/nba-explorer/internal/domain/teams"
	"github.com/preston-bernstein/nba-explorer/internal/logging"
	"github.com/preston-bernstein/nba-explorer/internal/metrics"
	"github.com/preston-bernstein/nba-explorer/internal/processing"
	"github.com/preston-bernstein/nba-explorer/internal/providers"
	"github.com/preston-bernstein/nba-explorer/internal/timeutil"
)

const defaultTrendPeriods = 10

// Options configures a Service. Zero values pick defaults.
type Options struct {
	Logger        *slog.Logger
	Metrics       *metrics.Recorder
	DefaultPolicy processing.PlayerPolicy
	TrendPeriods  int
}

// Service coordinates the team, player and game services for explorations.
type Service struct {
	teams         *appteams.Service
	players       *appplayers.Service
	games         *appgames.Service
	logger        *slog.Logger
	metrics       *metrics.Recorder
	defaultPolicy processing.PlayerPolicy
	trendPeriods  int
	now           func() time.Time
}

// New builds a Service over provider.
func New(provider providers.DataProvider, opts Options) *Service {
	policy := opts.DefaultPolicy
	if policy == "" {
		policy = processing.PolicyRoster
	}
	periods := opts.TrendPeriods
	if periods <= 0 {
		periods = defaultTrendPeriods
	}
	return &Service{
		teams:         appteams.NewService(provider),
		players:       appplayers.NewService(provider),
		games:         appgames.NewService(provider),
		logger:        opts.Logger,
		metrics:       opts.Metrics,
		defaultPolicy: policy,
		trendPeriods:  periods,
		now:           time.Now,
	}
}

// Selection is everything one exploration depends on.
type Selection struct {
	Start     timeutil.Date
	End       timeutil.Date
	TeamIDs   []string
	PlayerIDs []string
	// PlayerSearch is the search the selected players came from; it
	// bounds the roster used by the roster policy.
	PlayerSearch string
	// Policy overrides the service default when set.
	Policy string
	// RankingTeamIDs and MinPPG narrow the rankings table only.
	RankingTeamIDs []string
	MinPPG         float64
}

// Result is the outcome of one exploration.
type Result struct {
	Criteria processing.Criteria
	Teams    []teams.Team
	Games    []games.Game
	Rows     []processing.Row
	Summary  processing.Summary
	Analysis Analysis
}

// Analysis holds the team-level views derived from the selected games.
type Analysis struct {
	KPIs       analysis.KPIs
	Trend      []analysis.TrendPoint
	Rankings   []analysis.Ranking
	TeamTrends []analysis.TeamTrend
}

// Explore validates the selection, fetches and validates upstream data, and
// builds every view. An invalid range or policy fails before any fetch.
func (s *Service) Explore(ctx context.Context, sel Selection) (Result, error) {
	start := s.now()
	logger := logging.FromContext(ctx, s.logger)

	crit, err := s.criteria(sel)
	if err != nil {
		s.finish(logger, crit.PlayerPolicy, start, 0, err)
		return Result{}, err
	}

	res, err := s.explore(ctx, sel, crit)
	s.finish(logger, crit.PlayerPolicy, start, len(res.Games), err)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func (s *Service) criteria(sel Selection) (processing.Criteria, error) {
	name := sel.Policy
	if name == "" {
		name = string(s.defaultPolicy)
	}
	policy, err := processing.ParsePlayerPolicy(name)
	crit := processing.Criteria{
		TeamIDs:      processing.NewIDSet(sel.TeamIDs...),
		PlayerIDs:    processing.NewIDSet(sel.PlayerIDs...),
		Start:        sel.Start,
		End:          sel.End,
		PlayerPolicy: policy,
	}
	if err != nil {
		return crit, err
	}
	return crit, crit.Validate()
}

func (s *Service) explore(ctx context.Context, sel Selection, crit processing.Criteria) (Result, error) {
	teamList, err := s.teams.Teams(ctx)
	if err != nil {
		return Result{}, err
	}

	items, err := s.games.Games(ctx, providers.GameQuery{
		Start:   crit.Start,
		End:     crit.End,
		TeamIDs: crit.TeamIDs.Sorted(),
	})
	if err != nil {
		return Result{}, err
	}

	// Player data is loaded even without a player filter so the summary can
	// count the players represented.
	var roster []players.Player
	participation := crit.PlayerPolicy == processing.PolicyParticipation
	if participation && len(crit.PlayerIDs) > 0 {
		items, err = s.attachAppearances(ctx, items, providers.AppearanceQuery{
			PlayerIDs: crit.PlayerIDs.Sorted(),
			Start:     crit.Start,
			End:       crit.End,
		})
		if err != nil {
			return Result{}, err
		}
	} else if !participation {
		roster, err = s.players.Search(ctx, sel.PlayerSearch)
		if err != nil {
			return Result{}, err
		}
	}

	selected, err := processing.Apply(items, crit, roster)
	if err != nil {
		return Result{}, err
	}
	if participation && len(crit.PlayerIDs) == 0 && len(selected) > 0 {
		selected, err = s.attachAppearances(ctx, selected, providers.AppearanceQuery{
			GameIDs: sortedGameIDs(selected),
			Start:   crit.Start,
			End:     crit.End,
		})
		if err != nil {
			return Result{}, err
		}
	}

	idx := teams.Index(teamList)
	return Result{
		Criteria: crit,
		Teams:    teamList,
		Games:    selected,
		Rows:     processing.Rows(selected, idx),
		Summary:  processing.Summarize(selected, roster),
		Analysis: s.analyse(selected, idx, crit.TeamIDs, sel),
	}, nil
}

func (s *Service) attachAppearances(ctx context.Context, items []games.Game, q providers.AppearanceQuery) ([]games.Game, error) {
	apps, err := s.games.Appearances(ctx, q)
	if err != nil {
		return nil, err
	}
	return processing.AttachAppearances(items, apps), nil
}

func sortedGameIDs(items []games.Game) []string {
	ids := make([]string, 0, len(items))
	for _, g := range items {
		ids = append(ids, g.ID)
	}
	sort.Strings(ids)
	return ids
}

func (s *Service) analyse(selected []games.Game, idx map[string]teams.Team, teamIDs processing.IDSet, sel Selection) Analysis {
	log := analysis.FilterLog(analysis.TeamGameLog(selected, idx), teamIDs)
	rankings := analysis.FilterRankings(analysis.Rankings(log), processing.NewIDSet(sel.RankingTeamIDs...), sel.MinPPG)
	return Analysis{
		KPIs:       analysis.ComputeKPIs(log),
		Trend:      analysis.Trend(log),
		Rankings:   rankings,
		TeamTrends: analysis.TeamTrends(log, s.trendPeriods),
	}
}

// Teams returns the validated team catalogue.
func (s *Service) Teams(ctx context.Context) ([]teams.Team, error) {
	items, err := s.teams.Teams(ctx)
	s.recordValidation(err)
	return items, err
}

// Players returns validated players matching search.
func (s *Service) Players(ctx context.Context, search string) ([]players.Player, error) {
	items, err := s.players.Search(ctx, search)
	s.recordValidation(err)
	return items, err
}

func (s *Service) finish(logger *slog.Logger, policy processing.PlayerPolicy, start time.Time, selected int, err error) {
	elapsed := s.now().Sub(start)
	outcome := Outcome(err)
	s.metrics.RecordExploration(string(policy), outcome, selected, elapsed)
	s.recordValidation(err)

	if err != nil {
		logging.Warn(logger, "exploration failed",
			logging.FieldPolicy, string(policy),
			"outcome", outcome,
			"error", err,
		)
		return
	}
	logging.Info(logger, "exploration complete",
		logging.FieldPolicy, string(policy),
		logging.FieldCount, selected,
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
}

func (s *Service) recordValidation(err error) {
	if vErr, ok := processing.AsValidationError(err); ok {
		s.metrics.RecordValidationFailure(string(vErr.Kind), vErr.Field)
	}
}

// Outcome classifies an exploration error for metrics and status mapping.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, processing.ErrValidation):
		return metrics.OutcomeValidation
	case errors.Is(err, processing.ErrInvalidRange), errors.Is(err, processing.ErrUnknownPolicy):
		return metrics.OutcomeCriteria
	default:
		return metrics.OutcomeUpstream
	}
}
