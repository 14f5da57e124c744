package football

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standingsPayload = `{
  "get": "standings",
  "errors": [],
  "results": 1,
  "response": [{
    "league": {
      "id": 39,
      "name": "Premier League",
      "standings": [[
        {
          "rank": 1,
          "team": {"id": 40, "name": "Liverpool", "logo": "https://media.api-sports.io/football/teams/40.png"},
          "points": 25,
          "goalsDiff": 14,
          "form": "WWDWW",
          "description": "Promotion - Champions League (League phase: )",
          "all": {"played": 10, "win": 8, "draw": 1, "lose": 1, "goals": {"for": 22, "against": 8}},
          "update": "2025-10-19T00:00:00+00:00"
        },
        {
          "rank": 2,
          "team": {"id": 42, "name": "Arsenal", "logo": "https://media.api-sports.io/football/teams/42.png"},
          "points": 22,
          "goalsDiff": 9,
          "form": null,
          "description": null,
          "all": {"played": 10, "win": 7, "draw": 1, "lose": 2, "goals": {"for": 17, "against": 8}},
          "update": "2025-10-19T00:00:00+00:00"
        }
      ]]
    }
  }]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL: server.URL,
		Host:    "v3.football.api-sports.io",
		APIKey:  "test-key",
		Timeout: time.Second,
	})
}

func TestFetchStandings_DecodesTable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/standings", r.URL.Path)
		assert.Equal(t, "39", r.URL.Query().Get("league"))
		assert.Equal(t, "2025", r.URL.Query().Get("season"))
		assert.Equal(t, "test-key", r.Header.Get("x-rapidapi-key"))
		assert.Equal(t, "v3.football.api-sports.io", r.Header.Get("x-rapidapi-host"))
		_, _ = w.Write([]byte(standingsPayload))
	})

	rows, err := client.FetchStandings(context.Background(), 39, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "40", first.TeamID)
	assert.Equal(t, "Liverpool", first.TeamName)
	assert.Equal(t, 25, first.Points)
	assert.Equal(t, 10, first.Played)
	assert.Equal(t, 22, first.GoalsFor)
	assert.Equal(t, 8, first.GoalsAgainst)
	assert.Equal(t, 14, first.GoalsDiff)
	require.NotNil(t, first.Form)
	assert.Equal(t, "WWDWW", *first.Form)
	assert.Equal(t, time.Date(2025, time.October, 19, 0, 0, 0, 0, time.UTC), first.UpdatedAt.UTC())

	assert.Nil(t, rows[1].Form)
	assert.Nil(t, rows[1].Description)
}

func TestFetchStandings_EmptyResponseIsLeagueNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors": [], "results": 0, "response": []}`))
	})

	_, err := client.FetchStandings(context.Background(), 1, 2025)
	assert.True(t, errors.Is(err, ErrLeagueNotFound), "got %v", err)
}

func TestFetchStandings_ProviderErrorsAreRejections(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors": {"token": "Error/Missing application key."}, "response": []}`))
	})

	_, err := client.FetchStandings(context.Background(), 39, 2025)
	assert.True(t, errors.Is(err, ErrProviderRejected), "got %v", err)
}

func TestFetchStandings_Non2xxIsRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.FetchStandings(context.Background(), 39, 2025)
	assert.True(t, errors.Is(err, ErrProviderRejected), "got %v", err)
}

func TestFetchStandings_MalformedPayload(t *testing.T) {
	for name, body := range map[string]string{
		"not json":        `<html>oops</html>`,
		"missing team id": `{"errors": [], "response": [{"league": {"standings": [[{"rank": 1, "team": {"name": "X"}}]]}}]}`,
		"bad timestamp":   `{"errors": [], "response": [{"league": {"standings": [[{"rank": 1, "team": {"id": 1, "name": "X"}, "update": "yesterday"}]]}}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			_, err := client.FetchStandings(context.Background(), 39, 2025)
			assert.True(t, errors.Is(err, ErrMalformedPayload), "got %v", err)
		})
	}
}

func TestFetchStandings_Timeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FetchStandings(ctx, 39, 2025)
	assert.True(t, errors.Is(err, ErrProviderTimeout), "got %v", err)
}
