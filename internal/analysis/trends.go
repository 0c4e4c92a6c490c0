package analysis

import "sort"

// TeamTrend compares a team's most recent games against the window before them.
// Deltas are nil when either window is empty.
type TeamTrend struct {
	TeamID        string   `json:"teamId"`
	Team          string   `json:"team"`
	RecentPPG     *float64 `json:"recentPpg"`
	PriorPPG      *float64 `json:"priorPpg"`
	OffenseDelta  *float64 `json:"offenseDelta"`
	DefenseDelta  *float64 `json:"defenseDelta"`
	NetDelta      *float64 `json:"netDelta"`
	SamplesRecent int      `json:"samplesRecent"`
	SamplesPrior  int      `json:"samplesPrior"`
}

// TeamTrends computes offensive (points scored) and defensive (points allowed) deltas
// between the last `periods` games and the `periods` games before them, per team.
func TeamTrends(log []LogEntry, periods int) []TeamTrend {
	if periods <= 0 {
		periods = 10
	}
	byTeam := map[string][]LogEntry{}
	var order []string
	for _, e := range log {
		if _, ok := byTeam[e.TeamID]; !ok {
			order = append(order, e.TeamID)
		}
		byTeam[e.TeamID] = append(byTeam[e.TeamID], e)
	}

	out := make([]TeamTrend, 0, len(byTeam))
	for _, id := range order {
		entries := byTeam[id]
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })

		n := len(entries)
		recent := entries[max(0, n-periods):]
		prior := entries[max(0, n-2*periods):max(0, n-periods)]

		t := TeamTrend{
			TeamID:        id,
			Team:          entries[0].Team,
			SamplesRecent: len(recent),
			SamplesPrior:  len(prior),
		}
		recentOff, okR := mean(recent, scored)
		priorOff, okP := mean(prior, scored)
		if okR {
			t.RecentPPG = &recentOff
		}
		if okP {
			t.PriorPPG = &priorOff
		}
		if okR && okP {
			recentDef, _ := mean(recent, allowed)
			priorDef, _ := mean(prior, allowed)
			off := recentOff - priorOff
			def := recentDef - priorDef
			net := off - def
			t.OffenseDelta, t.DefenseDelta, t.NetDelta = &off, &def, &net
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Team < out[j].Team })
	return out
}

func scored(e LogEntry) float64  { return float64(e.Points) }
func allowed(e LogEntry) float64 { return float64(e.OpponentPoints) }

func mean(entries []LogEntry, f func(LogEntry) float64) (float64, bool) {
	if len(entries) == 0 {
		return 0, false
	}
	var sum float64
	for _, e := range entries {
		sum += f(e)
	}
	return sum / float64(len(entries)), true
}
