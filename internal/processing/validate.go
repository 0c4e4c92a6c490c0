package processing

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-explorer/internal/domain/games"
	"github.com/preston-bernstein/nba-explorer/internal/domain/players"
	"github.com/preston-bernstein/nba-explorer/internal/domain/teams"
	"github.com/preston-bernstein/nba-explorer/internal/raw"
	"github.com/preston-bernstein/nba-explorer/internal/timeutil"
)

// Raw field names understood by the validators.
const (
	FieldID           = "id"
	FieldName         = "name"
	FieldAbbreviation = "abbreviation"
	FieldCity         = "city"
	FieldConference   = "conference"
	FieldDivision     = "division"
	FieldTeamID       = "team_id"
	FieldPosition     = "position"
	FieldGameID       = "game_id"
	FieldPlayerID     = "player_id"
	FieldDate         = "date"
	FieldHomeTeamID   = "home_team_id"
	FieldAwayTeamID   = "away_team_id"
	FieldHomeScore    = "home_score"
	FieldAwayScore    = "away_score"
	FieldHomeTeamName = "home_team_name"
	FieldAwayTeamName = "away_team_name"
	FieldSeason       = "season"
	FieldStatus       = "status"
	FieldPlayerIDs    = "player_ids"
)

const (
	reasonMissing     = "is required"
	reasonString      = "must be a non-empty string"
	reasonText        = "must be a string"
	reasonIdentifier  = "must be a non-empty string or integer id"
	reasonNonNegative = "must be a non-negative integer"
	reasonInteger     = "must be an integer"
	reasonDate        = "must be a date (YYYY-MM-DD)"
	reasonIDList      = "must be a list of ids"
	reasonSameTeam    = "must differ from home_team_id"
)

type decodeFunc func(r *reader) Record

var decoders = map[Kind]decodeFunc{
	KindTeam:       decodeTeam,
	KindPlayer:     decodePlayer,
	KindGame:       decodeGame,
	KindAppearance: decodeAppearance,
}

// ValidateRecords converts raw records of one kind into typed Records.
// The whole batch is rejected on the first invalid record.
func ValidateRecords(kind Kind, records []raw.Record) ([]Record, error) {
	decode, ok := decoders[kind]
	if !ok {
		return nil, fmt.Errorf("processing: unsupported record kind %q", kind)
	}
	out := make([]Record, 0, len(records))
	for i, rec := range records {
		r := &reader{rec: rec, kind: kind, index: i}
		decoded := decode(r)
		if r.err != nil {
			return nil, r.err
		}
		decoded.Kind = kind
		out = append(out, decoded)
	}
	return out, nil
}

// ValidateTeams validates raw team records.
func ValidateTeams(records []raw.Record) ([]teams.Team, error) {
	validated, err := ValidateRecords(KindTeam, records)
	if err != nil {
		return nil, err
	}
	out := make([]teams.Team, 0, len(validated))
	for _, r := range validated {
		out = append(out, r.Team)
	}
	return out, nil
}

// ValidatePlayers validates raw player records.
func ValidatePlayers(records []raw.Record) ([]players.Player, error) {
	validated, err := ValidateRecords(KindPlayer, records)
	if err != nil {
		return nil, err
	}
	out := make([]players.Player, 0, len(validated))
	for _, r := range validated {
		out = append(out, r.Player)
	}
	return out, nil
}

// ValidateGames validates raw game records.
func ValidateGames(records []raw.Record) ([]games.Game, error) {
	validated, err := ValidateRecords(KindGame, records)
	if err != nil {
		return nil, err
	}
	out := make([]games.Game, 0, len(validated))
	for _, r := range validated {
		out = append(out, r.Game)
	}
	return out, nil
}

// ValidateAppearances validates raw box-score participation records.
func ValidateAppearances(records []raw.Record) ([]games.Appearance, error) {
	validated, err := ValidateRecords(KindAppearance, records)
	if err != nil {
		return nil, err
	}
	out := make([]games.Appearance, 0, len(validated))
	for _, r := range validated {
		out = append(out, r.Appearance)
	}
	return out, nil
}

func decodeTeam(r *reader) Record {
	r.recordID(FieldID)
	return Record{Team: teams.Team{
		ID:           r.id(FieldID),
		Name:         r.str(FieldName),
		Abbreviation: r.str(FieldAbbreviation),
		City:         r.optionalStr(FieldCity),
		Conference:   r.optionalStr(FieldConference),
		Division:     r.optionalStr(FieldDivision),
	}}
}

func decodePlayer(r *reader) Record {
	r.recordID(FieldID)
	return Record{Player: players.Player{
		ID:       r.id(FieldID),
		Name:     r.str(FieldName),
		TeamID:   r.id(FieldTeamID),
		Position: r.optionalStr(FieldPosition),
	}}
}

func decodeGame(r *reader) Record {
	r.recordID(FieldGameID)
	g := games.Game{
		ID:           r.id(FieldGameID),
		Date:         r.date(FieldDate),
		HomeTeamID:   r.id(FieldHomeTeamID),
		AwayTeamID:   r.id(FieldAwayTeamID),
		HomeScore:    r.score(FieldHomeScore),
		AwayScore:    r.score(FieldAwayScore),
		HomeTeamName: r.optionalStr(FieldHomeTeamName),
		AwayTeamName: r.optionalStr(FieldAwayTeamName),
		Season:       r.optionalInt(FieldSeason),
		Status:       r.optionalStr(FieldStatus),
		PlayerIDs:    r.optionalIDs(FieldPlayerIDs),
	}
	if r.err == nil && g.HomeTeamID == g.AwayTeamID {
		r.fail(FieldAwayTeamID, reasonSameTeam)
	}
	return Record{Game: g}
}

func decodeAppearance(r *reader) Record {
	r.recordID(FieldGameID)
	return Record{Appearance: games.Appearance{
		GameID:   r.id(FieldGameID),
		PlayerID: r.id(FieldPlayerID),
	}}
}

// reader pulls typed fields out of a raw record, keeping only the first failure.
type reader struct {
	rec   raw.Record
	kind  Kind
	index int
	idRef string
	err   *ValidationError
}

func (r *reader) fail(field, reason string) {
	if r.err != nil {
		return
	}
	r.err = &ValidationError{
		Kind:     r.kind,
		Index:    r.index,
		RecordID: r.idRef,
		Field:    field,
		Reason:   reason,
	}
}

// recordID remembers a readable id for error messages, if there is one.
func (r *reader) recordID(field string) {
	if v, ok := r.rec[field]; ok && v != nil {
		if id, ok := identifier(v); ok {
			r.idRef = id
		}
	}
}

func (r *reader) value(field string) (any, bool) {
	if r.rec == nil {
		return nil, false
	}
	v, ok := r.rec[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r *reader) str(field string) string {
	v, ok := r.value(field)
	if !ok {
		r.fail(field, reasonMissing)
		return ""
	}
	s, isStr := v.(string)
	s = strings.TrimSpace(s)
	if !isStr || s == "" {
		r.fail(field, reasonString)
		return ""
	}
	return s
}

func (r *reader) optionalStr(field string) string {
	v, ok := r.value(field)
	if !ok {
		return ""
	}
	s, isStr := v.(string)
	if !isStr {
		r.fail(field, reasonText)
		return ""
	}
	return strings.TrimSpace(s)
}

func (r *reader) id(field string) string {
	v, ok := r.value(field)
	if !ok {
		r.fail(field, reasonMissing)
		return ""
	}
	id, ok := identifier(v)
	if !ok {
		r.fail(field, reasonIdentifier)
		return ""
	}
	return id
}

func (r *reader) optionalIDs(field string) []string {
	v, ok := r.value(field)
	if !ok {
		return nil
	}
	var items []any
	switch list := v.(type) {
	case []any:
		items = list
	case []string:
		for _, s := range list {
			items = append(items, s)
		}
	default:
		r.fail(field, reasonIDList)
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		id, ok := identifier(item)
		if !ok {
			r.fail(field, reasonIDList)
			return nil
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (r *reader) score(field string) int {
	v, ok := r.value(field)
	if !ok {
		r.fail(field, reasonMissing)
		return 0
	}
	n, ok := integer(v)
	if !ok || n < 0 {
		r.fail(field, reasonNonNegative)
		return 0
	}
	return int(n)
}

func (r *reader) optionalInt(field string) int {
	v, ok := r.value(field)
	if !ok {
		return 0
	}
	n, ok := integer(v)
	if !ok {
		r.fail(field, reasonInteger)
		return 0
	}
	return int(n)
}

func (r *reader) date(field string) timeutil.Date {
	v, ok := r.value(field)
	if !ok {
		r.fail(field, reasonMissing)
		return timeutil.Date{}
	}
	switch d := v.(type) {
	case string:
		parsed, err := timeutil.ParseDay(d)
		if err != nil {
			r.fail(field, reasonDate)
			return timeutil.Date{}
		}
		return parsed
	case time.Time:
		return timeutil.DateOf(d)
	case timeutil.Date:
		return d
	default:
		r.fail(field, reasonDate)
		return timeutil.Date{}
	}
}

// identifier accepts non-empty strings and integral numbers (JSON ids are often numeric).
func identifier(v any) (string, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		return s, s != ""
	}
	n, ok := integer(v)
	if !ok {
		return "", false
	}
	return strconv.FormatInt(n, 10), true
}

func integer(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}
