package repository

import (
	"time"

	"github.com/yukikurage/homebase/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStandingRepository is a GORM implementation of StandingRepository.
// The four league tables share one row shape, so every query names the
// table explicitly.
type GormStandingRepository struct {
	db *gorm.DB
}

// NewStandingRepository creates a new StandingRepository
func NewStandingRepository(db *gorm.DB) StandingRepository {
	return &GormStandingRepository{db: db}
}

func (r *GormStandingRepository) Count(league models.League) (int64, error) {
	var count int64
	err := r.db.Table(league.Table).Count(&count).Error
	return count, err
}

func (r *GormStandingRepository) CreateAll(league models.League, rows []models.TeamStanding) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Table(league.Table).Create(&rows).Error
}

// UpdateByTeamID overwrites the volatile columns of one team row
func (r *GormStandingRepository) UpdateByTeamID(league models.League, row models.TeamStanding) (int64, error) {
	result := r.db.Table(league.Table).
		Where("team_id = ?", row.TeamID).
		Updates(map[string]interface{}{
			"rank":                row.Rank,
			"points":              row.Points,
			"played":              row.Played,
			"win":                 row.Win,
			"draw":                row.Draw,
			"lose":                row.Lose,
			"goals_for":           row.GoalsFor,
			"goals_against":       row.GoalsAgainst,
			"goals_diff":          row.GoalsDiff,
			"recent":              row.Recent,
			"uefa":                row.Uefa,
			"updated_from_server": row.UpdatedFromServer,
			"updated_at":          time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *GormStandingRepository) List(league models.League) ([]models.TeamStanding, error) {
	var rows []models.TeamStanding
	// rank is reserved by MySQL 8 and has to be quoted.
	err := r.db.Table(league.Table).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "rank"}}).
		Order("id").
		Find(&rows).Error
	return rows, err
}

func (r *GormStandingRepository) Exists(league models.League, id uint64) (bool, error) {
	var count int64
	if err := r.db.Table(league.Table).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormPlayerRepository is a GORM implementation of PlayerRepository
type GormPlayerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &GormPlayerRepository{db: db}
}

func (r *GormPlayerRepository) withTeams() *gorm.DB {
	return r.db.Preload("PLTeam").Preload("LLTeam").Preload("BLTeam").Preload("SATeam")
}

func (r *GormPlayerRepository) Create(player *models.Player) error {
	return r.db.Omit("PLTeam", "LLTeam", "BLTeam", "SATeam").Create(player).Error
}

func (r *GormPlayerRepository) FindByID(id uint64) (*models.Player, error) {
	var player models.Player
	if err := r.withTeams().First(&player, id).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *GormPlayerRepository) List() ([]models.Player, error) {
	var players []models.Player
	err := r.withTeams().
		Order("total_point DESC, total_goal_diff DESC").
		Find(&players).Error
	return players, err
}

func (r *GormPlayerRepository) Update(player *models.Player) error {
	return r.db.Omit("PLTeam", "LLTeam", "BLTeam", "SATeam").Save(player).Error
}

func (r *GormPlayerRepository) UpdateTotals(id uint64, totals models.Totals) error {
	return r.db.Model(&models.Player{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_point":     totals.Point,
			"total_game":      totals.Game,
			"total_win":       totals.Win,
			"total_draw":      totals.Draw,
			"total_lose":      totals.Lose,
			"total_goal_diff": totals.GoalDiff,
		}).Error
}
