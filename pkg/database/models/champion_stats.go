package models

import "time"

// ChampionStats is the aggregate of every stored participation of a champion.
// Rebuilt by the scheduler, the ranked and normal columns are null without games.
type ChampionStats struct {
	ChampionKey          int `gorm:"primaryKey;autoIncrement:false"`
	ChampionId           string
	TotalMatches         int
	TotalWinRate         float64
	TotalAverageKills    float64
	TotalAverageDeaths   float64
	TotalAverageAssists  float64
	RankedMatches        int
	RankedWinRate        *float64
	RankedAverageKills   *float64
	RankedAverageDeaths  *float64
	RankedAverageAssists *float64
	RankedMostPlayedRole *string
	NormalMatches        int
	NormalWinRate        *float64
	NormalAverageKills   *float64
	NormalAverageDeaths  *float64
	NormalAverageAssists *float64
	UpdatedAt            time.Time
}
