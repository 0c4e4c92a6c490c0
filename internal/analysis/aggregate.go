package analysis

import (
	"sort"

	"github.com/preston-bernstein/nba-explorer/internal/processing"
	"github.com/preston-bernstein/nba-explorer/internal/timeutil"
)

// KPIs are the headline means over a game log.
type KPIs struct {
	PPG            float64 `json:"ppg"`
	AstProxy       float64 `json:"astProxy"`
	RebProxy       float64 `json:"rebProxy"`
	NetRatingProxy float64 `json:"netRatingProxy"`
}

// TrendPoint is the mean of each KPI across all team lines on one date.
type TrendPoint struct {
	Date timeutil.Date `json:"date"`
	KPIs
}

// Ranking is one team's aggregate line.
type Ranking struct {
	Rank   int    `json:"rank"`
	TeamID string `json:"teamId"`
	Team   string `json:"team"`
	Games  int    `json:"games"`
	KPIs
}

type acc struct {
	n                  int
	pts, ast, reb, net float64
}

func (a *acc) add(e LogEntry) {
	a.n++
	a.pts += float64(e.Points)
	a.ast += e.AstProxy
	a.reb += e.RebProxy
	a.net += e.NetRatingProxy
}

func (a acc) means() KPIs {
	if a.n == 0 {
		return KPIs{}
	}
	n := float64(a.n)
	return KPIs{PPG: a.pts / n, AstProxy: a.ast / n, RebProxy: a.reb / n, NetRatingProxy: a.net / n}
}

// ComputeKPIs returns KPI means; an empty log yields zeros.
func ComputeKPIs(log []LogEntry) KPIs {
	var a acc
	for _, e := range log {
		a.add(e)
	}
	return a.means()
}

// Trend groups the log by date, ascending.
func Trend(log []LogEntry) []TrendPoint {
	byDate := map[timeutil.Date]*acc{}
	for _, e := range log {
		a, ok := byDate[e.Date]
		if !ok {
			a = &acc{}
			byDate[e.Date] = a
		}
		a.add(e)
	}
	out := make([]TrendPoint, 0, len(byDate))
	for d, a := range byDate {
		out = append(out, TrendPoint{Date: d, KPIs: a.means()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Rankings aggregates per team, ordered by points per game (highest first).
func Rankings(log []LogEntry) []Ranking {
	type teamAcc struct {
		name string
		acc
	}
	byTeam := map[string]*teamAcc{}
	for _, e := range log {
		t, ok := byTeam[e.TeamID]
		if !ok {
			t = &teamAcc{name: e.Team}
			byTeam[e.TeamID] = t
		}
		t.add(e)
	}
	out := make([]Ranking, 0, len(byTeam))
	for id, t := range byTeam {
		out = append(out, Ranking{TeamID: id, Team: t.name, Games: t.n, KPIs: t.means()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PPG != out[j].PPG {
			return out[i].PPG > out[j].PPG
		}
		return out[i].Team < out[j].Team
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// FilterRankings keeps selected teams (all when empty) at or above minPPG. Ranks are kept as computed.
func FilterRankings(rs []Ranking, teamIDs processing.IDSet, minPPG float64) []Ranking {
	out := make([]Ranking, 0, len(rs))
	for _, r := range rs {
		if len(teamIDs) > 0 && !teamIDs.Has(r.TeamID) {
			continue
		}
		if r.PPG < minPPG {
			continue
		}
		out = append(out, r)
	}
	return out
}
