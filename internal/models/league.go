package models

import "time"

// League identifiers used by the external standings provider.
const (
	LeaguePremierLeague = 39
	LeagueLaLiga        = 140
	LeagueBundesLiga    = 78
	LeagueSerieA        = 135
)

// League describes one tracked league and the table holding its snapshot.
type League struct {
	ID    int
	Name  string
	Table string
}

// Leagues lists the tracked leagues in synchronization order.
var Leagues = []League{
	{ID: LeaguePremierLeague, Name: "프리미어리그", Table: "premier_league_teams"},
	{ID: LeagueLaLiga, Name: "라리가", Table: "la_liga_teams"},
	{ID: LeagueBundesLiga, Name: "분데스리가", Table: "bundes_liga_teams"},
	{ID: LeagueSerieA, Name: "세리에A", Table: "serie_a_teams"},
}

// LookupLeague returns the league registered under id.
func LookupLeague(id int) (League, bool) {
	for _, l := range Leagues {
		if l.ID == id {
			return l, true
		}
	}
	return League{}, false
}

// TeamStanding is one team row of a standings snapshot. It is stored in one
// of the four league tables.
type TeamStanding struct {
	ID                uint64    `gorm:"primarykey" json:"id"`
	TeamName          string    `gorm:"type:varchar(120);not null" json:"team_name"`
	TeamLogoServer    string    `gorm:"type:varchar(200)" json:"team_logo_server"`
	TeamID            string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"team_id"`
	Rank              int       `gorm:"not null;index" json:"rank"`
	Played            int       `gorm:"not null" json:"played"`
	Points            int       `gorm:"not null" json:"points"`
	Win               int       `gorm:"not null" json:"win"`
	Draw              int       `gorm:"not null" json:"draw"`
	Lose              int       `gorm:"not null" json:"lose"`
	GoalsFor          int       `gorm:"not null" json:"goals_for"`
	GoalsAgainst      int       `gorm:"not null" json:"goals_against"`
	GoalsDiff         int       `gorm:"not null" json:"goals_diff"`
	Recent            *string   `gorm:"type:varchar(120)" json:"recent"`
	Uefa              *string   `gorm:"type:varchar(120)" json:"uefa"`
	UpdatedFromServer time.Time `json:"updated_from_server"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type PremierLeagueTeam struct{ TeamStanding }

func (PremierLeagueTeam) TableName() string { return "premier_league_teams" }

type LaLigaTeam struct{ TeamStanding }

func (LaLigaTeam) TableName() string { return "la_liga_teams" }

type BundesLigaTeam struct{ TeamStanding }

func (BundesLigaTeam) TableName() string { return "bundes_liga_teams" }

type SerieATeam struct{ TeamStanding }

func (SerieATeam) TableName() string { return "serie_a_teams" }
