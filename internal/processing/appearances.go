package processing

import (
	"slices"

	"github.com/preston-bernstein/nba-explorer/internal/domain/games"
)

// AttachAppearances returns copies of the games with participating player ids merged in.
func AttachAppearances(items []games.Game, apps []games.Appearance) []games.Game {
	byGame := make(map[string]IDSet)
	for _, a := range apps {
		set, ok := byGame[a.GameID]
		if !ok {
			set = IDSet{}
			byGame[a.GameID] = set
		}
		set[a.PlayerID] = struct{}{}
	}

	out := make([]games.Game, 0, len(items))
	for _, g := range items {
		set, ok := byGame[g.ID]
		if !ok {
			g.PlayerIDs = slices.Clone(g.PlayerIDs)
			out = append(out, g)
			continue
		}
		merged := NewIDSet(g.PlayerIDs...)
		for id := range set {
			merged[id] = struct{}{}
		}
		g.PlayerIDs = merged.Sorted()
		out = append(out, g)
	}
	return out
}
