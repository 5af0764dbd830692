package dto

import "time"

// QueueStats are the averages of a champion in a group of queues.
// Fields are null when the champion has no game in the group.
type QueueStats struct {
	MatchesNumber  int      `json:"matchesNumber"`
	AverageKills   *float64 `json:"averageKills"`
	AverageDeaths  *float64 `json:"averageDeaths"`
	AverageAssists *float64 `json:"averageAssists"`
	WinRate        *float64 `json:"winRate"`
}

// RankedStats adds the role breakdown to the ranked queues.
type RankedStats struct {
	QueueStats
	MostPlayedRole *string `json:"mostPlayedRole"`
}

// ChampionStatsGroups groups the stats by queue.
type ChampionStatsGroups struct {
	Total  QueueStats  `json:"total"`
	Normal QueueStats  `json:"normal"`
	Ranked RankedStats `json:"ranked"`
}

// ChampionStats is the aggregate of a champion.
type ChampionStats struct {
	ChampionKey  int                 `json:"championKey"`
	ChampionId   string              `json:"championId"`
	ChampionName string              `json:"championName"`
	Title        string              `json:"title"`
	Stats        ChampionStatsGroups `json:"stats"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}
