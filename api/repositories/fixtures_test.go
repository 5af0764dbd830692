package repositories

import (
	"fmt"

	"lolstats/pkg/database/models"
	"lolstats/pkg/riot"
)

// newTestMatch builds a stored match with ten participants.
// The first participant is puuid, the others are generated.
func newTestMatch(matchId, puuid string, queueId int, gameCreation int64) *models.Match {
	participants := make([]riot.Participant, 10)
	puuids := make([]string, 10)
	for i := range participants {
		p := fmt.Sprintf("%s-player-%d", matchId, i)
		if i == 0 {
			p = puuid
		}
		puuids[i] = p
		participants[i] = riot.Participant{
			Puuid:        p,
			ChampionId:   17 + i,
			ChampionName: fmt.Sprintf("Champion%d", 17+i),
			Kills:        i,
			Deaths:       1,
			Assists:      2,
			TeamId:       100 + (i/5)*100,
			TeamPosition: "TOP",
			Win:          i < 5,
		}
	}

	return models.NewMatch(&riot.Match{
		Metadata: riot.MatchMetadata{DataVersion: "2", MatchId: matchId, Participants: puuids},
		Info: riot.MatchInfo{
			GameCreation: gameCreation,
			GameDuration: 1800,
			GameMode:     "CLASSIC",
			QueueId:      queueId,
			Participants: participants,
		},
	})
}

func newTestUser(puuid, gameName, tagLine string) *models.User {
	return &models.User{
		Puuid:         puuid,
		GameName:      gameName,
		TagLine:       tagLine,
		AccountId:     "account-" + puuid,
		SummonerId:    "summoner-" + puuid,
		ProfileIconId: 29,
		RevisionDate:  1700000000000,
		SummonerLevel: 312,
		Leagues: []riot.LeagueEntry{
			{QueueType: "RANKED_SOLO_5x5", Tier: "GOLD", Rank: "II", LeaguePoints: 54, Wins: 20, Losses: 18},
		},
		Masteries: []models.Mastery{
			{Key: 17, Id: "Teemo", Name: "Teemo", Title: "the Swift Scout", ChampionLevel: 7, ChampionPoints: 250000},
		},
		Matches: []string{"EUW1_3", "EUW1_2", "EUW1_1"},
	}
}
