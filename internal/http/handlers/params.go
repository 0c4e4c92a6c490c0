package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-explorer/internal/explorer"
	"github.com/preston-bernstein/nba-explorer/internal/timeutil"
)

const defaultRangeDays = 30

// Query parameter names accepted by the exploration endpoints.
const (
	paramStart       = "start"
	paramEnd         = "end"
	paramTeam        = "team"
	paramPlayer      = "player"
	paramSearch      = "search"
	paramPolicy      = "policy"
	paramRankingTeam = "rankTeam"
	paramMinPPG      = "minPpg"
)

// paramError is a malformed query parameter; it maps to 400.
type paramError struct {
	Param  string
	Reason string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// parseSelection reads the exploration selection from the query string.
// A missing end defaults to today and a missing start to rangeDays before end.
func parseSelection(q url.Values, now time.Time, rangeDays int) (explorer.Selection, error) {
	if rangeDays <= 0 {
		rangeDays = defaultRangeDays
	}

	end, err := dayParam(q, paramEnd)
	if err != nil {
		return explorer.Selection{}, err
	}
	if end.IsZero() {
		end = timeutil.DateOf(now)
	}
	start, err := dayParam(q, paramStart)
	if err != nil {
		return explorer.Selection{}, err
	}
	if start.IsZero() {
		start = end.AddDays(-rangeDays)
	}

	var minPPG float64
	if raw := strings.TrimSpace(q.Get(paramMinPPG)); raw != "" {
		minPPG, err = strconv.ParseFloat(raw, 64)
		if err != nil || minPPG < 0 {
			return explorer.Selection{}, &paramError{Param: paramMinPPG, Reason: "expected a non-negative number"}
		}
	}

	return explorer.Selection{
		Start:          start,
		End:            end,
		TeamIDs:        listParam(q, paramTeam),
		PlayerIDs:      listParam(q, paramPlayer),
		PlayerSearch:   strings.TrimSpace(q.Get(paramSearch)),
		Policy:         strings.TrimSpace(q.Get(paramPolicy)),
		RankingTeamIDs: listParam(q, paramRankingTeam),
		MinPPG:         minPPG,
	}, nil
}

func dayParam(q url.Values, name string) (timeutil.Date, error) {
	value := strings.TrimSpace(q.Get(name))
	if value == "" {
		return timeutil.Date{}, nil
	}
	d, err := timeutil.ParseDay(value)
	if err != nil {
		return timeutil.Date{}, &paramError{Param: name, Reason: "expected YYYY-MM-DD"}
	}
	return d, nil
}

// listParam accepts both repeated (?team=a&team=b) and comma separated (?team=a,b) values.
func listParam(q url.Values, name string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, value := range q[name] {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, dup := seen[part]; dup {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	return out
}
