package dto

import (
	"time"

	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/services"
)

// StandingDTO represents one team row of a league table
type StandingDTO struct {
	ID                uint64    `json:"id"`
	TeamID            string    `json:"team_id"`
	TeamName          string    `json:"team_name"`
	TeamLogo          string    `json:"team_logo_server"`
	Rank              int       `json:"rank"`
	Played            int       `json:"played"`
	Points            int       `json:"points"`
	Win               int       `json:"win"`
	Draw              int       `json:"draw"`
	Lose              int       `json:"lose"`
	GoalsFor          int       `json:"goals_for"`
	GoalsAgainst      int       `json:"goals_against"`
	GoalsDiff         int       `json:"goals_diff"`
	Recent            *string   `json:"recent"`
	Uefa              *string   `json:"uefa"`
	UpdatedFromServer time.Time `json:"updated_from_server"`
}

type LeagueTableDTO struct {
	LeagueID int           `json:"league_id"`
	Name     string        `json:"name"`
	Teams    []StandingDTO `json:"teams"`
}

// TeamRefDTO is the short form of a team linked from a player
type TeamRefDTO struct {
	ID       uint64 `json:"id"`
	TeamName string `json:"team_name"`
	TeamLogo string `json:"team_logo_server,omitempty"`
}

type PlayerDTO struct {
	ID            uint64     `json:"id"`
	Name          string     `json:"name"`
	PLTeam        TeamRefDTO `json:"pl_team"`
	PLPot         string     `json:"pl_pot"`
	LLTeam        TeamRefDTO `json:"ll_team"`
	LLPot         string     `json:"ll_pot"`
	BLTeam        TeamRefDTO `json:"bl_team"`
	BLPot         string     `json:"bl_pot"`
	SATeam        TeamRefDTO `json:"sa_team"`
	SAPot         string     `json:"sa_pot"`
	CupPoint      int        `json:"cup_point"`
	TotalPoint    int        `json:"total_point"`
	TotalGame     int        `json:"total_game"`
	TotalWin      int        `json:"total_win"`
	TotalDraw     int        `json:"total_draw"`
	TotalLose     int        `json:"total_lose"`
	TotalGoalDiff int        `json:"total_goal_diff"`
}

func ToStandingDTO(row models.TeamStanding) StandingDTO {
	return StandingDTO{
		ID:                row.ID,
		TeamID:            row.TeamID,
		TeamName:          row.TeamName,
		TeamLogo:          row.TeamLogoServer,
		Rank:              row.Rank,
		Played:            row.Played,
		Points:            row.Points,
		Win:               row.Win,
		Draw:              row.Draw,
		Lose:              row.Lose,
		GoalsFor:          row.GoalsFor,
		GoalsAgainst:      row.GoalsAgainst,
		GoalsDiff:         row.GoalsDiff,
		Recent:            row.Recent,
		Uefa:              row.Uefa,
		UpdatedFromServer: row.UpdatedFromServer,
	}
}

// ToLeagueTableDTOs converts every stored league table
func ToLeagueTableDTOs(tables []services.LeagueTable) []LeagueTableDTO {
	dtos := make([]LeagueTableDTO, len(tables))
	for i, table := range tables {
		teams := make([]StandingDTO, len(table.Rows))
		for j, row := range table.Rows {
			teams[j] = ToStandingDTO(row)
		}
		dtos[i] = LeagueTableDTO{LeagueID: table.League.ID, Name: table.League.Name, Teams: teams}
	}
	return dtos
}

func toTeamRef(row models.TeamStanding) TeamRefDTO {
	return TeamRefDTO{ID: row.ID, TeamName: row.TeamName, TeamLogo: row.TeamLogoServer}
}

func ToPlayerDTO(player models.Player) PlayerDTO {
	return PlayerDTO{
		ID:            player.ID,
		Name:          player.Name,
		PLTeam:        toTeamRef(player.PLTeam.TeamStanding),
		PLPot:         player.PLPot,
		LLTeam:        toTeamRef(player.LLTeam.TeamStanding),
		LLPot:         player.LLPot,
		BLTeam:        toTeamRef(player.BLTeam.TeamStanding),
		BLPot:         player.BLPot,
		SATeam:        toTeamRef(player.SATeam.TeamStanding),
		SAPot:         player.SAPot,
		CupPoint:      player.CupPoint,
		TotalPoint:    player.TotalPoint,
		TotalGame:     player.TotalGame,
		TotalWin:      player.TotalWin,
		TotalDraw:     player.TotalDraw,
		TotalLose:     player.TotalLose,
		TotalGoalDiff: player.TotalGoalDiff,
	}
}

func ToPlayerDTOs(players []models.Player) []PlayerDTO {
	dtos := make([]PlayerDTO, len(players))
	for i, player := range players {
		dtos[i] = ToPlayerDTO(player)
	}
	return dtos
}
