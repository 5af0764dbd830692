package models

import "lolstats/pkg/riot"

// Mastery is a champion mastery with the champion reference data resolved.
type Mastery struct {
	Key            int    `json:"key"`
	Id             string `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	ChampionLevel  int    `json:"championLevel"`
	ChampionPoints int    `json:"championPoints"`
	LastPlayTime   int64  `json:"lastPlayTime"`
}

// User is the denormalized snapshot of a player, keyed by puuid.
// The whole row is replaced on every sync.
type User struct {
	Puuid         string             `gorm:"primaryKey" json:"puuid"`
	GameName      string             `gorm:"not null" json:"gameName"`
	TagLine       string             `gorm:"not null" json:"tagLine"`
	AccountId     string             `json:"accountId"`
	SummonerId    string             `json:"id"`
	ProfileIconId int                `json:"profileIconId"`
	RevisionDate  int64              `json:"revisionDate"`
	SummonerLevel int64              `json:"summonerLevel"`
	Leagues       []riot.LeagueEntry `gorm:"type:jsonb;serializer:json;not null" json:"leagues"`
	Masteries     []Mastery          `gorm:"type:jsonb;serializer:json;not null" json:"masteries"`
	Matches       []string           `gorm:"type:jsonb;serializer:json;not null" json:"matches"`
}

// Normalize replaces nil lists with empty ones, the columns are not nullable.
func (u *User) Normalize() {
	if u.Leagues == nil {
		u.Leagues = []riot.LeagueEntry{}
	}
	if u.Masteries == nil {
		u.Masteries = []Mastery{}
	}
	if u.Matches == nil {
		u.Matches = []string{}
	}
}
