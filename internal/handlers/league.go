package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/homebase/internal/constants"
	"github.com/yukikurage/homebase/internal/dto"
	apierrors "github.com/yukikurage/homebase/internal/errors"
	"github.com/yukikurage/homebase/internal/forms"
	"github.com/yukikurage/homebase/internal/middleware"
	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/services"
	"go.uber.org/zap"
)

// LeagueHandler serves the standings tables and the player scoreboard.
type LeagueHandler struct {
	leagueService *services.LeagueService
	logger        *zap.Logger
}

func NewLeagueHandler(leagueService *services.LeagueService, logger *zap.Logger) *LeagueHandler {
	return &LeagueHandler{
		leagueService: leagueService,
		logger:        logger,
	}
}

// Index returns the stored standings of every league with the player board.
func (h *LeagueHandler) Index(c *gin.Context) {
	tables, err := h.leagueService.Standings()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	players, err := h.leagueService.ListPlayers()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"leagues": dto.ToLeagueTableDTOs(tables),
		"players": dto.ToPlayerDTOs(players),
	})
}

func parseLeagueID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("league_id"))
	if err != nil {
		apierrors.NotFound(c, "")
		return 0, false
	}
	if _, ok := models.LookupLeague(id); !ok {
		apierrors.NotFound(c, "")
		return 0, false
	}
	return id, true
}

// createNotice turns the outcome of one seed into a queued notice.
func createNotice(c *gin.Context, league models.League, err error) {
	switch {
	case err == nil:
		middleware.AddNotice(c, middleware.NoticeSuccess, league.Name+" 데이터 생성 완료.")
	case errors.Is(err, services.ErrLeagueAlreadySeeded):
		middleware.AddNotice(c, middleware.NoticeError, league.Name+" 데이터 생성 불가(기존 데이터 삭제 후 생성 필요)")
	default:
		middleware.AddNotice(c, middleware.NoticeError, providerNotice(league.Name, err))
	}
}

func updateNotice(c *gin.Context, league models.League, err error) {
	if err != nil {
		middleware.AddNotice(c, middleware.NoticeError, providerNotice(league.Name, err))
		return
	}
	middleware.AddNotice(c, middleware.NoticeSuccess, league.Name+" 업데이트 완료.")
}

// CreateLeague seeds one league table from the provider.
func (h *LeagueHandler) CreateLeague(c *gin.Context) {
	leagueID, ok := parseLeagueID(c)
	if !ok {
		return
	}

	league, err := h.leagueService.CreateLeague(c.Request.Context(), leagueID)
	if err != nil && !errors.Is(err, services.ErrLeagueAlreadySeeded) {
		h.logger.Warn("league seed failed", zap.Int("league_id", leagueID), zap.Error(err))
	}
	createNotice(c, league, err)
	middleware.Redirect(c, constants.LeaguePath)
}

func (h *LeagueHandler) UpdateLeague(c *gin.Context) {
	leagueID, ok := parseLeagueID(c)
	if !ok {
		return
	}

	league, _, err := h.leagueService.UpdateLeague(c.Request.Context(), leagueID)
	if err != nil {
		h.logger.Warn("league update failed", zap.Int("league_id", leagueID), zap.Error(err))
	}
	updateNotice(c, league, err)
	middleware.Redirect(c, constants.LeaguePath)
}

func (h *LeagueHandler) CreateAll(c *gin.Context) {
	for _, result := range h.leagueService.CreateAll(c.Request.Context()) {
		createNotice(c, result.League, result.Err)
	}
	middleware.Redirect(c, constants.LeaguePath)
}

func (h *LeagueHandler) UpdateAll(c *gin.Context) {
	for _, result := range h.leagueService.UpdateAll(c.Request.Context()) {
		updateNotice(c, result.League, result.Err)
	}
	middleware.Redirect(c, constants.LeaguePath)
}

// Players returns the scoreboard ordered by total points.
func (h *LeagueHandler) Players(c *gin.Context) {
	players, err := h.leagueService.ListPlayers()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": dto.ToPlayerDTOs(players)})
}

// RefreshPlayers recomputes every player's totals.
func (h *LeagueHandler) RefreshPlayers(c *gin.Context) {
	if _, err := h.leagueService.RefreshPlayers(); err != nil {
		respondError(c, h.logger, err)
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "플레이어 현황 갱신 완료.", constants.LeaguePath)
}

func (h *LeagueHandler) playerSpec(c *gin.Context, player *models.Player) {
	tables, err := h.leagueService.Standings()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	teams := make(map[int][]models.TeamStanding, len(tables))
	for _, table := range tables {
		teams[table.League.ID] = table.Rows
	}
	c.JSON(http.StatusOK, forms.PlayerSpec(player, teams))
}

func (h *LeagueHandler) NewPlayerForm(c *gin.Context) {
	h.playerSpec(c, nil)
}

func (h *LeagueHandler) CreatePlayer(c *gin.Context) {
	var form forms.PlayerForm
	if !bindForm(c, &form) {
		return
	}
	if _, err := h.leagueService.CreatePlayer(form.Input()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "새 참가자가 추가 되었습니다.", constants.PlayerListPath)
}

// loadEditablePlayer resolves :id for a superuser. Everyone else is sent
// back with notice.
func (h *LeagueHandler) loadEditablePlayer(c *gin.Context) (*models.User, *models.Player, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, nil, false
	}
	user, _ := middleware.GetUser(c)
	if user == nil || !user.IsSuperuser {
		middleware.RedirectWithNotice(c, middleware.NoticeError, msgEditDenied, middleware.RefererOr(c, constants.LeaguePath))
		return nil, nil, false
	}

	player, err := h.leagueService.GetPlayer(id)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, nil, false
	}
	return user, player, true
}

func (h *LeagueHandler) EditPlayerForm(c *gin.Context) {
	_, player, ok := h.loadEditablePlayer(c)
	if !ok {
		return
	}
	h.playerSpec(c, player)
}

func (h *LeagueHandler) UpdatePlayer(c *gin.Context) {
	user, player, ok := h.loadEditablePlayer(c)
	if !ok {
		return
	}

	var form forms.PlayerForm
	if !bindForm(c, &form) {
		return
	}
	err := h.leagueService.UpdatePlayer(user, player, form.Input())
	if !denyOrFail(c, h.logger, err, msgEditDenied, middleware.RefererOr(c, constants.LeaguePath)) {
		return
	}
	middleware.RedirectWithNotice(c, middleware.NoticeSuccess, "플레이어 정보 수정 완료.", constants.PlayerListPath)
}
