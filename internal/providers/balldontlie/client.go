package balldontlie

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-explorer/internal/providers"
	"github.com/preston-bernstein/nba-explorer/internal/raw"
	"github.com/preston-bernstein/nba-explorer/internal/timeutil"
)

// Config controls how the balldontlie client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
	MaxPages   int
}

// Client fetches teams, players, games and box-score rows from balldontlie
// and flattens them into raw records.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
	maxPages   int
}

var _ providers.DataProvider = (*Client)(nil)

// NewClient constructs a balldontlie client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
		maxPages:   resolveMaxPages(cfg.MaxPages),
	}
}

type envelope struct {
	Data []raw.Record `json:"data"`
	Meta struct {
		TotalPages int `json:"total_pages"`
		NextCursor int `json:"next_cursor"`
	} `json:"meta"`
}

// FetchTeams returns the full team catalogue.
func (c *Client) FetchTeams(ctx context.Context) ([]raw.Record, error) {
	env, err := c.get(ctx, "/teams", nil)
	if err != nil {
		return nil, err
	}
	out := make([]raw.Record, 0, len(env.Data))
	for _, t := range env.Data {
		out = append(out, mapTeam(t))
	}
	return out, nil
}

// FetchPlayers searches players by name. Players without a current team are skipped.
func (c *Client) FetchPlayers(ctx context.Context, search string) ([]raw.Record, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(playerSearchLimit))
	if s := strings.TrimSpace(search); s != "" {
		q.Set("search", s)
	}
	env, err := c.get(ctx, "/players", q)
	if err != nil {
		return nil, err
	}
	out := make([]raw.Record, 0, len(env.Data))
	for _, p := range env.Data {
		if !hasTeam(p) {
			continue
		}
		out = append(out, mapPlayer(p))
	}
	return out, nil
}

// FetchGames pages through games in the query window, up to the page cap.
func (c *Client) FetchGames(ctx context.Context, gq providers.GameQuery) ([]raw.Record, error) {
	q := url.Values{}
	setDateRange(q, gq.Start, gq.End)
	for _, id := range gq.TeamIDs {
		q.Add("team_ids[]", id)
	}
	return c.paginate(ctx, "/games", q, mapGame)
}

// FetchAppearances pages through box-score rows for the given players, or for
// the given games when no player is named. An empty query makes no request.
func (c *Client) FetchAppearances(ctx context.Context, aq providers.AppearanceQuery) ([]raw.Record, error) {
	q := url.Values{}
	setDateRange(q, aq.Start, aq.End)
	switch {
	case len(aq.PlayerIDs) > 0:
		for _, id := range aq.PlayerIDs {
			q.Add("player_ids[]", id)
		}
	case len(aq.GameIDs) > 0:
		for _, id := range aq.GameIDs {
			q.Add("game_ids[]", id)
		}
	default:
		return []raw.Record{}, nil
	}
	return c.paginate(ctx, "/stats", q, mapStat)
}

func (c *Client) paginate(ctx context.Context, path string, base url.Values, mapFn func(raw.Record) raw.Record) ([]raw.Record, error) {
	out := make([]raw.Record, 0)
	page := 1
	cursor := 0

	for {
		q := cloneValues(base)
		q.Set("per_page", strconv.Itoa(defaultPerPage))
		if cursor > 0 {
			q.Set("cursor", strconv.Itoa(cursor))
		} else {
			q.Set("page", strconv.Itoa(page))
		}

		env, err := c.get(ctx, path, q)
		if err != nil {
			return nil, err
		}
		for _, rec := range env.Data {
			out = append(out, mapFn(rec))
		}

		if page >= c.maxPages {
			break
		}
		if env.Meta.NextCursor > 0 {
			cursor = env.Meta.NextCursor
		} else if cursor > 0 {
			break
		} else if env.Meta.TotalPages > 0 {
			if page >= env.Meta.TotalPages {
				break
			}
		} else if len(env.Data) < defaultPerPage {
			break
		}
		page++
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if len(q) > 0 {
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", providerName, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    providerName + " rate limited",
		}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var env envelope
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%s %s: decode response: %w", providerName, path, err)
	}
	return &env, nil
}

func setDateRange(q url.Values, start, end timeutil.Date) {
	if !start.IsZero() {
		q.Set("start_date", start.String())
	}
	if !end.IsZero() {
		q.Set("end_date", end.String())
	}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
