package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/homebase/internal/dto"
	"github.com/yukikurage/homebase/internal/football"
	"github.com/yukikurage/homebase/internal/middleware"
	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/services"
)

func TestLeagueHandler_CreateLeagueOnce(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "staff", true, false)
	c := env.client(t)
	c.login("staff")

	w := c.post("/league/league_create/39", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/league", w.Header().Get("Location"))
	assert.Equal(t, []string{"프리미어리그 데이터 생성 완료."}, messages(c.notices()))

	w = c.post("/league/league_create/39", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	notices := c.notices()
	require.Len(t, notices, 1)
	assert.Equal(t, middleware.NoticeError, notices[0].Level)
	assert.Equal(t, "프리미어리그 데이터 생성 불가(기존 데이터 삭제 후 생성 필요)", notices[0].Message)

	assert.Equal(t, []int{models.LeaguePremierLeague}, env.provider.calls)

	w = c.get("/league")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Leagues []dto.LeagueTableDTO `json:"leagues"`
		Players []dto.PlayerDTO      `json:"players"`
	}
	decode(t, w, &body)
	require.Len(t, body.Leagues, 4)
	assert.Len(t, body.Leagues[0].Teams, 2)
	assert.Empty(t, body.Leagues[1].Teams)
	assert.NotNil(t, body.Players)
	assert.Empty(t, body.Players)
}

func TestLeagueHandler_UnknownLeague(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "staff", true, false)
	c := env.client(t)
	c.login("staff")

	assert.Equal(t, http.StatusNotFound, c.post("/league/league_create/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, c.post("/league/league_update/abc", nil).Code)
	assert.Empty(t, env.provider.calls)
}

func TestLeagueHandler_SyncRequiresStaff(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "member", false, false)
	c := env.client(t)
	c.login("member")

	w := c.post("/league/league_create_all", nil, "Referer", "/league")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/league", w.Header().Get("Location"))
	assert.Equal(t, []string{middleware.MsgStaffOnly}, messages(c.notices()))
	assert.Empty(t, env.provider.calls)
}

func TestLeagueHandler_UpdateAllContinuesAfterFailure(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "staff", true, false)
	env.league.CreateAll(context.Background())

	env.provider.errs[models.LeagueLaLiga] = fmt.Errorf("league=140: %w", football.ErrProviderTimeout)
	c := env.client(t)
	c.login("staff")

	w := c.post("/league/league_update_all", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/league", w.Header().Get("Location"))
	// Successes are drained before errors.
	assert.Equal(t, []string{
		"프리미어리그 업데이트 완료.",
		"분데스리가 업데이트 완료.",
		"세리에A 업데이트 완료.",
		"라리가 데이터 요청 시간이 초과되었습니다.",
	}, messages(c.notices()))
}

func TestLeagueHandler_UpdateLeague(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "staff", true, false)
	_, err := env.league.CreateLeague(context.Background(), models.LeagueSerieA)
	require.NoError(t, err)

	env.provider.tables[models.LeagueSerieA] = []services.ExternalTeamStanding{
		standingRow("492", "Napoli", 1, 67),
	}
	c := env.client(t)
	c.login("staff")

	w := c.post("/league/league_update/135", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []string{"세리에A 업데이트 완료."}, messages(c.notices()))

	tables, err := env.league.Standings()
	require.NoError(t, err)
	for _, table := range tables {
		if table.League.ID == models.LeagueSerieA {
			require.Len(t, table.Rows, 1)
			assert.Equal(t, 67, table.Rows[0].Points)
		}
	}
}

func playerValues(name string, cupPoint int) url.Values {
	return url.Values{
		"name":      {name},
		"pl_team":   {"1"},
		"pl_pot":    {"1포트"},
		"ll_team":   {"1"},
		"ll_pot":    {"2포트"},
		"bl_team":   {"1"},
		"bl_pot":    {"3포트"},
		"sa_team":   {"1"},
		"sa_pot":    {"4포트"},
		"cup_point": {fmt.Sprint(cupPoint)},
	}
}

func TestLeagueHandler_PlayerLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "staff", true, false)
	env.createUser(t, "admin", false, true)
	env.league.CreateAll(context.Background())

	c := env.client(t)
	c.login("staff")

	w := c.get("/league/player/new")
	require.Equal(t, http.StatusOK, w.Code)

	w = c.post("/league/player/new", playerValues("민수", 3))
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/league/player", w.Header().Get("Location"))
	assert.Equal(t, []string{"새 참가자가 추가 되었습니다."}, messages(c.notices()))

	w = c.post("/league/player/update", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/league", w.Header().Get("Location"))
	assert.Equal(t, []string{"플레이어 현황 갱신 완료."}, messages(c.notices()))

	w = c.get("/league/player")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Players []dto.PlayerDTO `json:"players"`
	}
	decode(t, w, &body)
	require.Len(t, body.Players, 1)
	assert.Equal(t, 70+66+65+64+3, body.Players[0].TotalPoint)

	// The standings page carries the same board.
	w = c.get("/league")
	require.Equal(t, http.StatusOK, w.Code)
	var standings struct {
		Players []dto.PlayerDTO `json:"players"`
	}
	decode(t, w, &standings)
	require.Len(t, standings.Players, 1)
	assert.Equal(t, "민수", standings.Players[0].Name)

	// Only superusers may edit players.
	w = c.post("/league/player/edit/1", playerValues("민수", 5), "Referer", "/league/player")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/league/player", w.Header().Get("Location"))
	assert.Equal(t, []string{"수정권한이 없습니다."}, messages(c.notices()))

	admin := env.client(t)
	admin.login("admin")
	w = admin.post("/league/player/edit/1", playerValues("민수", 5))
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/league/player", w.Header().Get("Location"))

	player, err := env.league.GetPlayer(1)
	require.NoError(t, err)
	assert.Equal(t, 5, player.CupPoint)
}

func TestLeagueHandler_CreatePlayerUnknownTeam(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "member", false, false)
	c := env.client(t)
	c.login("member")

	w := c.post("/league/player/new", playerValues("민수", 0))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Details map[string][]string `json:"details"`
	}
	decode(t, w, &resp)
	assert.Contains(t, resp.Details, "pl_team")
}
