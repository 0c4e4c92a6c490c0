package players

// Player is reference data for one rostered player.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TeamID   string `json:"teamId"`
	Position string `json:"position,omitempty"`
}

// TeamsOf returns the set of team ids the given players belong to.
func TeamsOf(items []Player, ids map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for _, p := range items {
		if _, ok := ids[p.ID]; ok {
			out[p.TeamID] = struct{}{}
		}
	}
	return out
}
