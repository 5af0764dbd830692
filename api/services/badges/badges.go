// Package badgeservice rates a player against the other participants of a match.
package badgeservice

import (
	"context"
	"errors"

	"lolstats/pkg/database/models"
	"lolstats/pkg/riot"
)

// Games shorter than this don't get duration based badges.
const minGameDuration = 300

var (
	ErrMatchNotFound       = errors.New("match not found")
	ErrParticipantNotFound = errors.New("player didn't take part in the match")
)

// GoodBadges are the best-in-match achievements. Empty means not earned.
type GoodBadges struct {
	LargestMultiKill string `json:"largestMultiKill"`
	MostDamage       string `json:"mostDamage"`
	MostGold         string `json:"mostGold"`
	MostCs           string `json:"mostCs"`
	MostKills        string `json:"mostKills"`
	MostAssists      string `json:"mostAssists"`
	LeastDeaths      string `json:"leastDeaths"`
	NeverDied        string `json:"neverDied"`
	MostVision       string `json:"mostVision"`
}

// BadBadges are the worst-in-match achievements. Empty means not earned.
type BadBadges struct {
	MostDeaths   string `json:"mostDeaths"`
	LeastDamage  string `json:"leastDamage"`
	LeastGold    string `json:"leastGold"`
	LeastCs      string `json:"leastCs"`
	LeastKills   string `json:"leastKills"`
	LeastAssists string `json:"leastAssists"`
	LeastVision  string `json:"leastVision"`
}

// Badges of one participant.
type Badges struct {
	MatchId string     `json:"matchId"`
	Puuid   string     `json:"puuid"`
	Good    GoodBadges `json:"good"`
	Bad     BadBadges  `json:"bad"`
}

// every tells if cmp holds for every participant of the match.
func every(participants []riot.Participant, cmp func(p *riot.Participant) bool) bool {
	for i := range participants {
		if !cmp(&participants[i]) {
			return false
		}
	}
	return true
}

func multiKillName(largest int) string {
	switch largest {
	case 2:
		return "Double Kill"
	case 3:
		return "Triple Kill"
	case 4:
		return "Quadruple Kill"
	case 5:
		return "Pentakill"
	default:
		return ""
	}
}

// Good computes the good badges of player. Ties count as best.
func Good(info *riot.MatchInfo, player *riot.Participant) GoodBadges {
	ps := info.Participants
	long := info.GameDuration > minGameDuration

	badges := GoodBadges{LargestMultiKill: multiKillName(player.LargestMultiKill)}

	if every(ps, func(p *riot.Participant) bool { return p.TotalDamageDealtToChampions <= player.TotalDamageDealtToChampions }) &&
		player.TotalDamageDealtToChampions > 0 {
		badges.MostDamage = "Destroyer"
	}

	if every(ps, func(p *riot.Participant) bool { return p.GoldEarned <= player.GoldEarned }) && player.GoldEarned > 1000 {
		badges.MostGold = "Midas"
	}

	if every(ps, func(p *riot.Participant) bool { return p.CreepScore() <= player.CreepScore() }) && long {
		badges.MostCs = "Farmer"
	}

	if every(ps, func(p *riot.Participant) bool { return p.Kills <= player.Kills }) && player.Kills > 0 {
		badges.MostKills = "Killer"
	}

	if every(ps, func(p *riot.Participant) bool { return p.Assists <= player.Assists }) && player.Assists > 0 {
		badges.MostAssists = "Helper"
	}

	leastDeaths := every(ps, func(p *riot.Participant) bool { return p.Deaths >= player.Deaths })
	neverDied := player.Deaths == 0

	if leastDeaths && long {
		badges.LeastDeaths = "Survivor"
	}
	if neverDied && long {
		badges.NeverDied = "Immortal"
	}
	// Immortal already says it.
	if leastDeaths && neverDied {
		badges.LeastDeaths = ""
	}

	if player.VisionScore != 0 &&
		every(ps, func(p *riot.Participant) bool { return p.VisionScore <= player.VisionScore }) &&
		player.VisionScore > 1 {
		badges.MostVision = "Omnicient"
	}

	return badges
}

// Bad computes the bad badges of player. Ties count as worst.
func Bad(info *riot.MatchInfo, player *riot.Participant) BadBadges {
	ps := info.Participants
	badges := BadBadges{}

	if every(ps, func(p *riot.Participant) bool { return p.Deaths <= player.Deaths }) && player.Deaths > 0 {
		badges.MostDeaths = "Feeder"
	}

	if every(ps, func(p *riot.Participant) bool { return p.TotalDamageDealtToChampions >= player.TotalDamageDealtToChampions }) &&
		player.TotalDamageDealtToChampions > 0 {
		badges.LeastDamage = "Weakling"
	}

	if every(ps, func(p *riot.Participant) bool { return p.GoldEarned >= player.GoldEarned }) && player.GoldEarned > 1000 {
		badges.LeastGold = "Broke"
	}

	if every(ps, func(p *riot.Participant) bool { return p.CreepScore() >= player.CreepScore() }) &&
		info.GameDuration > minGameDuration && info.GameMode != "ARAM" {
		badges.LeastCs = "Lazy"
	}

	if every(ps, func(p *riot.Participant) bool { return p.Kills >= player.Kills }) && player.Kills > 0 {
		badges.LeastKills = "Coward"
	}

	if every(ps, func(p *riot.Participant) bool { return p.Assists >= player.Assists }) && player.Assists > 0 {
		badges.LeastAssists = "Selfish"
	}

	if player.VisionScore != 0 &&
		every(ps, func(p *riot.Participant) bool { return p.VisionScore >= player.VisionScore }) &&
		player.VisionScore > 1 {
		badges.LeastVision = "Blind"
	}

	return badges
}

// Compute returns every badge of a participant of the match.
func Compute(match *riot.Match, puuid string) (*Badges, error) {
	player, ok := match.Participant(puuid)
	if !ok {
		return nil, ErrParticipantNotFound
	}

	return &Badges{
		MatchId: match.Metadata.MatchId,
		Puuid:   puuid,
		Good:    Good(&match.Info, player),
		Bad:     Bad(&match.Info, player),
	}, nil
}

// MatchFinder reads stored matches.
type MatchFinder interface {
	FindByMatchId(ctx context.Context, matchId string) (*models.Match, error)
}

// BadgeService computes badges of stored matches.
type BadgeService struct {
	matches MatchFinder
}

// NewBadgeService creates the badge service.
func NewBadgeService(matches MatchFinder) *BadgeService {
	return &BadgeService{matches: matches}
}

// GetBadges computes the badges of a player in a stored match.
func (bs *BadgeService) GetBadges(ctx context.Context, matchId, puuid string) (*Badges, error) {
	stored, err := bs.matches.FindByMatchId(ctx, matchId)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, ErrMatchNotFound
	}

	return Compute(stored.Riot(), puuid)
}
