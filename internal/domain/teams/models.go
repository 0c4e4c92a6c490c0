package teams

// Team is reference data for one franchise, produced by validating a raw team record.
type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city,omitempty"`
	Conference   string `json:"conference,omitempty"`
	Division     string `json:"division,omitempty"`
}

// Index maps team id to team.
func Index(items []Team) map[string]Team {
	out := make(map[string]Team, len(items))
	for _, t := range items {
		out[t.ID] = t
	}
	return out
}
