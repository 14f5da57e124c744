package football

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/yukikurage/homebase/internal/services"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://v3.football.api-sports.io"
	defaultHost    = "v3.football.api-sports.io"
	defaultTimeout = 20 * time.Second
	maxBodyBytes   = 4 << 20
)

var (
	ErrLeagueNotFound   = crerr.New("football provider: league not found")
	ErrMalformedPayload = crerr.New("football provider: malformed payload")
	ErrProviderTimeout  = crerr.New("football provider: timeout")
	ErrProviderRejected = crerr.New("football provider: request rejected")
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Host       string
	APIKey     string
	Timeout    time.Duration
	Logger     *zap.Logger
}

// Client reads league standings from the api-sports v3 football API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	host       string
	apiKey     string
	logger     *zap.Logger
}

var _ services.StandingsProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = defaultHost
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		host:       host,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logger,
	}
}

// FetchStandings returns the overall table of leagueID for season.
func (c *Client) FetchStandings(ctx context.Context, leagueID, season int) ([]services.ExternalTeamStanding, error) {
	query := map[string]string{
		"league": strconv.Itoa(leagueID),
		"season": strconv.Itoa(season),
	}

	var envelope standingsEnvelope
	if err := c.doJSON(ctx, "/standings", query, &envelope); err != nil {
		return nil, crerr.Wrapf(err, "fetch standings league=%d season=%d", leagueID, season)
	}

	if msg := envelope.errorMessage(); msg != "" {
		return nil, crerr.Wrapf(ErrProviderRejected, "league=%d: %s", leagueID, msg)
	}
	if len(envelope.Response) == 0 || len(envelope.Response[0].League.Standings) == 0 ||
		len(envelope.Response[0].League.Standings[0]) == 0 {
		return nil, crerr.Wrapf(ErrLeagueNotFound, "league=%d season=%d", leagueID, season)
	}

	rows := envelope.Response[0].League.Standings[0]
	out := make([]services.ExternalTeamStanding, 0, len(rows))
	for i, row := range rows {
		standing, err := row.toExternal()
		if err != nil {
			return nil, crerr.Wrapf(err, "league=%d row=%d", leagueID, i)
		}
		out = append(out, standing)
	}

	c.logger.Debug("fetched standings",
		zap.Int("league_id", leagueID),
		zap.Int("season", season),
		zap.Int("teams", len(out)),
	)
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("x-rapidapi-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return crerr.Wrapf(ErrProviderTimeout, "send request: %v", err)
		}
		return crerr.Wrapf(ErrProviderRejected, "send request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if isTimeout(err) {
			return crerr.Wrapf(ErrProviderTimeout, "read response body: %v", err)
		}
		return crerr.Wrapf(ErrProviderRejected, "read response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return crerr.Wrapf(ErrProviderRejected, "provider status=%d body=%s", resp.StatusCode, abbreviate(raw))
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(ErrMalformedPayload, "decode provider payload: %v", err)
	}
	return nil
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}

func abbreviate(raw []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(raw))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}

type standingsEnvelope struct {
	// errors is an empty array on success and an object keyed by field on failure.
	Errors   json.RawMessage `json:"errors"`
	Response []struct {
		League struct {
			ID        int               `json:"id"`
			Name      string            `json:"name"`
			Standings [][]standingEntry `json:"standings"`
		} `json:"league"`
	} `json:"response"`
}

func (e standingsEnvelope) errorMessage() string {
	s := strings.TrimSpace(string(e.Errors))
	switch s {
	case "", "null", "[]", "{}":
		return ""
	}
	return s
}

type standingEntry struct {
	Rank        int     `json:"rank"`
	Points      int     `json:"points"`
	GoalsDiff   int     `json:"goalsDiff"`
	Form        *string `json:"form"`
	Description *string `json:"description"`
	Update      string  `json:"update"`
	Team        struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Logo string `json:"logo"`
	} `json:"team"`
	All struct {
		Played int `json:"played"`
		Win    int `json:"win"`
		Draw   int `json:"draw"`
		Lose   int `json:"lose"`
		Goals  struct {
			For     int `json:"for"`
			Against int `json:"against"`
		} `json:"goals"`
	} `json:"all"`
}

func (s standingEntry) toExternal() (services.ExternalTeamStanding, error) {
	if s.Team.ID <= 0 {
		return services.ExternalTeamStanding{}, crerr.Wrap(ErrMalformedPayload, "missing team id")
	}
	if strings.TrimSpace(s.Team.Name) == "" {
		return services.ExternalTeamStanding{}, crerr.Wrapf(ErrMalformedPayload, "team %d has no name", s.Team.ID)
	}

	var updated time.Time
	if s.Update != "" {
		parsed, err := time.Parse(time.RFC3339, s.Update)
		if err != nil {
			return services.ExternalTeamStanding{}, crerr.Wrapf(ErrMalformedPayload, "team %d update %q", s.Team.ID, s.Update)
		}
		updated = parsed
	}

	return services.ExternalTeamStanding{
		TeamID:       strconv.FormatInt(s.Team.ID, 10),
		TeamName:     s.Team.Name,
		TeamLogo:     s.Team.Logo,
		Rank:         s.Rank,
		Points:       s.Points,
		Played:       s.All.Played,
		Win:          s.All.Win,
		Draw:         s.All.Draw,
		Lose:         s.All.Lose,
		GoalsFor:     s.All.Goals.For,
		GoalsAgainst: s.All.Goals.Against,
		GoalsDiff:    s.GoalsDiff,
		Form:         s.Form,
		Description:  s.Description,
		UpdatedAt:    updated,
	}, nil
}
