package models

import "time"

// Player is a scoreboard participant holding one team per league. The
// Total* fields are a materialized aggregate refreshed on demand.
type Player struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	Name          string    `gorm:"type:varchar(100);not null" json:"name"`
	PLTeamID      uint64    `gorm:"column:pl_team_id;not null" json:"pl_team_id"`
	LLTeamID      uint64    `gorm:"column:ll_team_id;not null" json:"ll_team_id"`
	BLTeamID      uint64    `gorm:"column:bl_team_id;not null" json:"bl_team_id"`
	SATeamID      uint64    `gorm:"column:sa_team_id;not null" json:"sa_team_id"`
	PLPot         string    `gorm:"column:pl_pot;type:varchar(100);not null" json:"pl_pot"`
	LLPot         string    `gorm:"column:ll_pot;type:varchar(100);not null" json:"ll_pot"`
	BLPot         string    `gorm:"column:bl_pot;type:varchar(100);not null" json:"bl_pot"`
	SAPot         string    `gorm:"column:sa_pot;type:varchar(100);not null" json:"sa_pot"`
	CupPoint      int       `gorm:"not null;default:0" json:"cup_point"`
	TotalPoint    int       `gorm:"not null;default:0;index" json:"total_point"`
	TotalGame     int       `gorm:"not null;default:0" json:"total_game"`
	TotalWin      int       `gorm:"not null;default:0" json:"total_win"`
	TotalDraw     int       `gorm:"not null;default:0" json:"total_draw"`
	TotalLose     int       `gorm:"not null;default:0" json:"total_lose"`
	TotalGoalDiff int       `gorm:"not null;default:0" json:"total_goal_diff"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	PLTeam PremierLeagueTeam `gorm:"foreignKey:PLTeamID" json:"pl_team"`
	LLTeam LaLigaTeam        `gorm:"foreignKey:LLTeamID" json:"ll_team"`
	BLTeam BundesLigaTeam    `gorm:"foreignKey:BLTeamID" json:"bl_team"`
	SATeam SerieATeam        `gorm:"foreignKey:SATeamID" json:"sa_team"`
}

// Totals is the aggregate derived from the four linked team rows.
type Totals struct {
	Point    int
	Game     int
	Win      int
	Draw     int
	Lose     int
	GoalDiff int
}

// ComputeTotals sums the linked team rows plus the cup bonus. The relations
// must be loaded.
func (p *Player) ComputeTotals() Totals {
	t := Totals{Point: p.CupPoint}
	for _, row := range []TeamStanding{
		p.PLTeam.TeamStanding,
		p.LLTeam.TeamStanding,
		p.BLTeam.TeamStanding,
		p.SATeam.TeamStanding,
	} {
		t.Point += row.Points
		t.Game += row.Played
		t.Win += row.Win
		t.Draw += row.Draw
		t.Lose += row.Lose
		t.GoalDiff += row.GoalsDiff
	}
	return t
}
