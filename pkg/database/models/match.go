package models

import (
	"time"

	"lolstats/pkg/riot"
)

// Match is a stored match. The content never changes once inserted.
type Match struct {
	MatchId      string             `gorm:"primaryKey" json:"-"`
	Metadata     riot.MatchMetadata `gorm:"type:jsonb;serializer:json;not null" json:"metadata"`
	Info         riot.MatchInfo     `gorm:"type:jsonb;serializer:json;not null" json:"info"`
	GameCreation int64              `json:"-"`
	CreatedAt    time.Time          `gorm:"autoCreateTime" json:"-"`
}

// NewMatch builds the stored record of an upstream match.
func NewMatch(m *riot.Match) *Match {
	metadata := m.Metadata
	if metadata.Participants == nil {
		metadata.Participants = []string{}
	}

	return &Match{
		MatchId:      metadata.MatchId,
		Metadata:     metadata,
		Info:         m.Info,
		GameCreation: m.Info.GameCreation,
	}
}

// Riot returns the upstream shape of the record.
func (m *Match) Riot() *riot.Match {
	return &riot.Match{Metadata: m.Metadata, Info: m.Info}
}
