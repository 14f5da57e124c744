package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayer_ComputeTotals(t *testing.T) {
	p := Player{
		CupPoint: 7,
		PLTeam:   PremierLeagueTeam{TeamStanding{Points: 20, Played: 9, Win: 6, Draw: 2, Lose: 1, GoalsDiff: 11}},
		LLTeam:   LaLigaTeam{TeamStanding{Points: 15, Played: 9, Win: 4, Draw: 3, Lose: 2, GoalsDiff: 4}},
		BLTeam:   BundesLigaTeam{TeamStanding{Points: 10, Played: 8, Win: 3, Draw: 1, Lose: 4, GoalsDiff: -2}},
		SATeam:   SerieATeam{TeamStanding{Points: 5, Played: 9, Win: 1, Draw: 2, Lose: 6, GoalsDiff: -9}},
	}

	got := p.ComputeTotals()

	assert.Equal(t, Totals{Point: 57, Game: 35, Win: 14, Draw: 8, Lose: 13, GoalDiff: 4}, got)
}

func TestLookupLeague(t *testing.T) {
	l, ok := LookupLeague(LeagueBundesLiga)
	assert.True(t, ok)
	assert.Equal(t, "bundes_liga_teams", l.Table)

	_, ok = LookupLeague(1)
	assert.False(t, ok)
}
