package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUnknownLeague       = errors.New("unknown league")
	ErrLeagueAlreadySeeded = errors.New("league already has standings")
)

// ExternalTeamStanding is one row of a standings table as reported by the
// football data provider.
type ExternalTeamStanding struct {
	TeamID       string
	TeamName     string
	TeamLogo     string
	Rank         int
	Points       int
	Played       int
	Win          int
	Draw         int
	Lose         int
	GoalsFor     int
	GoalsAgainst int
	GoalsDiff    int
	Form         *string
	Description  *string
	UpdatedAt    time.Time
}

func (e ExternalTeamStanding) toModel() models.TeamStanding {
	return models.TeamStanding{
		TeamName:          e.TeamName,
		TeamLogoServer:    e.TeamLogo,
		TeamID:            e.TeamID,
		Rank:              e.Rank,
		Played:            e.Played,
		Points:            e.Points,
		Win:               e.Win,
		Draw:              e.Draw,
		Lose:              e.Lose,
		GoalsFor:          e.GoalsFor,
		GoalsAgainst:      e.GoalsAgainst,
		GoalsDiff:         e.GoalsDiff,
		Recent:            e.Form,
		Uefa:              e.Description,
		UpdatedFromServer: e.UpdatedAt,
	}
}

// StandingsProvider fetches the current table of a league.
type StandingsProvider interface {
	FetchStandings(ctx context.Context, leagueID, season int) ([]ExternalTeamStanding, error)
}

// LeagueService synchronizes the standings tables and maintains the
// player scoreboard built on top of them.
type LeagueService struct {
	provider  StandingsProvider
	standings repository.StandingRepository
	players   repository.PlayerRepository
	season    int
	logger    *zap.Logger
}

// NewLeagueService creates a new LeagueService
func NewLeagueService(provider StandingsProvider, standings repository.StandingRepository, players repository.PlayerRepository, season int, logger *zap.Logger) *LeagueService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeagueService{
		provider:  provider,
		standings: standings,
		players:   players,
		season:    season,
		logger:    logger,
	}
}

type LeagueTable struct {
	League models.League
	Rows   []models.TeamStanding
}

// Standings returns the stored table of every tracked league.
func (s *LeagueService) Standings() ([]LeagueTable, error) {
	tables := make([]LeagueTable, 0, len(models.Leagues))
	for _, league := range models.Leagues {
		rows, err := s.standings.List(league)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s standings: %w", league.Table, err)
		}
		tables = append(tables, LeagueTable{League: league, Rows: rows})
	}
	return tables, nil
}

func lookupLeague(leagueID int) (models.League, error) {
	league, ok := models.LookupLeague(leagueID)
	if !ok {
		return models.League{}, fmt.Errorf("%w: %d", ErrUnknownLeague, leagueID)
	}
	return league, nil
}

// CreateLeague seeds an empty league table from the provider. A league
// that already has rows is left untouched.
func (s *LeagueService) CreateLeague(ctx context.Context, leagueID int) (models.League, error) {
	league, err := lookupLeague(leagueID)
	if err != nil {
		return models.League{}, err
	}

	count, err := s.standings.Count(league)
	if err != nil {
		return league, fmt.Errorf("failed to count %s rows: %w", league.Table, err)
	}
	if count > 0 {
		return league, ErrLeagueAlreadySeeded
	}

	external, err := s.provider.FetchStandings(ctx, league.ID, s.season)
	if err != nil {
		return league, err
	}

	rows := make([]models.TeamStanding, 0, len(external))
	for _, e := range external {
		rows = append(rows, e.toModel())
	}
	if err := s.standings.CreateAll(league, rows); err != nil {
		return league, fmt.Errorf("failed to insert %s rows: %w", league.Table, err)
	}

	s.logger.Info("league seeded", zap.Int("league_id", league.ID), zap.Int("teams", len(rows)))
	return league, nil
}

// UpdateLeague refreshes the rows of a seeded league matched by team id.
// Teams the table does not know yet are skipped.
func (s *LeagueService) UpdateLeague(ctx context.Context, leagueID int) (models.League, int64, error) {
	league, err := lookupLeague(leagueID)
	if err != nil {
		return models.League{}, 0, err
	}

	external, err := s.provider.FetchStandings(ctx, league.ID, s.season)
	if err != nil {
		return league, 0, err
	}

	var updated int64
	for _, e := range external {
		n, err := s.standings.UpdateByTeamID(league, e.toModel())
		if err != nil {
			return league, updated, fmt.Errorf("failed to update %s team %s: %w", league.Table, e.TeamID, err)
		}
		if n == 0 {
			s.logger.Debug("standing row not seeded, skipping", zap.Int("league_id", league.ID), zap.String("team_id", e.TeamID))
		}
		updated += n
	}

	s.logger.Info("league updated", zap.Int("league_id", league.ID), zap.Int64("rows", updated))
	return league, updated, nil
}

// SyncResult reports the outcome of one league inside a fan-out.
type SyncResult struct {
	League  models.League
	Updated int64
	Err     error
}

// CreateAll seeds every tracked league in order. A failing league does not
// stop the others.
func (s *LeagueService) CreateAll(ctx context.Context) []SyncResult {
	results := make([]SyncResult, 0, len(models.Leagues))
	for _, league := range models.Leagues {
		_, err := s.CreateLeague(ctx, league.ID)
		if err != nil && !errors.Is(err, ErrLeagueAlreadySeeded) {
			s.logger.Warn("league seed failed", zap.Int("league_id", league.ID), zap.Error(err))
		}
		results = append(results, SyncResult{League: league, Err: err})
	}
	return results
}

// UpdateAll updates every tracked league in order. A failing league does
// not stop the others.
func (s *LeagueService) UpdateAll(ctx context.Context) []SyncResult {
	results := make([]SyncResult, 0, len(models.Leagues))
	for _, league := range models.Leagues {
		_, updated, err := s.UpdateLeague(ctx, league.ID)
		if err != nil {
			s.logger.Warn("league update failed", zap.Int("league_id", league.ID), zap.Error(err))
		}
		results = append(results, SyncResult{League: league, Updated: updated, Err: err})
	}
	return results
}

// RefreshPlayers recomputes the totals of every player from the current
// standings and returns how many players were written.
func (s *LeagueService) RefreshPlayers() (int, error) {
	players, err := s.players.List()
	if err != nil {
		return 0, fmt.Errorf("failed to list players: %w", err)
	}

	for i := range players {
		totals := players[i].ComputeTotals()
		if err := s.players.UpdateTotals(players[i].ID, totals); err != nil {
			return i, fmt.Errorf("failed to update player %d: %w", players[i].ID, err)
		}
	}

	s.logger.Info("player totals refreshed", zap.Int("players", len(players)))
	return len(players), nil
}

func (s *LeagueService) ListPlayers() ([]models.Player, error) {
	players, err := s.players.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *LeagueService) GetPlayer(id uint64) (*models.Player, error) {
	player, err := s.players.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to find player: %w", err)
	}
	return player, nil
}

// PlayerInput carries the editable fields of a player. The team IDs are
// row IDs of the respective league tables.
type PlayerInput struct {
	Name     string
	PLTeamID uint64
	PLPot    string
	LLTeamID uint64
	LLPot    string
	BLTeamID uint64
	BLPot    string
	SATeamID uint64
	SAPot    string
	CupPoint int
}

func (s *LeagueService) validatePlayer(input *PlayerInput) error {
	input.Name = strings.TrimSpace(input.Name)
	verr := &ValidationError{}

	if input.Name == "" {
		verr.Add("name", "필수 항목입니다.")
	} else if utf8.RuneCountInString(input.Name) > 100 {
		verr.Add("name", "100자 이하로 입력해 주세요.")
	}

	teams := []struct {
		field  string
		league int
		teamID uint64
		pot    *string
		potKey string
	}{
		{"pl_team", models.LeaguePremierLeague, input.PLTeamID, &input.PLPot, "pl_pot"},
		{"ll_team", models.LeagueLaLiga, input.LLTeamID, &input.LLPot, "ll_pot"},
		{"bl_team", models.LeagueBundesLiga, input.BLTeamID, &input.BLPot, "bl_pot"},
		{"sa_team", models.LeagueSerieA, input.SATeamID, &input.SAPot, "sa_pot"},
	}
	for _, t := range teams {
		*t.pot = strings.TrimSpace(*t.pot)
		if *t.pot == "" {
			verr.Add(t.potKey, "필수 항목입니다.")
		} else if utf8.RuneCountInString(*t.pot) > 100 {
			verr.Add(t.potKey, "100자 이하로 입력해 주세요.")
		}

		if t.teamID == 0 {
			verr.Add(t.field, "필수 항목입니다.")
			continue
		}
		league, _ := models.LookupLeague(t.league)
		exists, err := s.standings.Exists(league, t.teamID)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", t.field, err)
		}
		if !exists {
			verr.Add(t.field, "올바르게 선택해 주세요. 선택하신 것이 선택가능항목이 아닙니다.")
		}
	}

	return verr.Err()
}

func (input PlayerInput) apply(player *models.Player) {
	player.Name = input.Name
	player.PLTeamID = input.PLTeamID
	player.PLPot = input.PLPot
	player.LLTeamID = input.LLTeamID
	player.LLPot = input.LLPot
	player.BLTeamID = input.BLTeamID
	player.BLPot = input.BLPot
	player.SATeamID = input.SATeamID
	player.SAPot = input.SAPot
	player.CupPoint = input.CupPoint
}

// CreatePlayer registers a new scoreboard participant. Totals stay zero
// until the next refresh.
func (s *LeagueService) CreatePlayer(input PlayerInput) (*models.Player, error) {
	if err := s.validatePlayer(&input); err != nil {
		return nil, err
	}
	player := &models.Player{}
	input.apply(player)
	if err := s.players.Create(player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

// UpdatePlayer edits a player. Only superusers may do so.
func (s *LeagueService) UpdatePlayer(actor *models.User, player *models.Player, input PlayerInput) error {
	if actor == nil || !actor.IsSuperuser {
		return ErrPermissionDenied
	}
	if err := s.validatePlayer(&input); err != nil {
		return err
	}
	input.apply(player)
	if err := s.players.Update(player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	return nil
}
