package riot

// Account returned by the account-v1 endpoints.
type Account struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Summoner returned by the summoner-v4 by-puuid endpoint.
type Summoner struct {
	Id            string `json:"id"`
	AccountId     string `json:"accountId"`
	Puuid         string `json:"puuid"`
	ProfileIconId int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int64  `json:"summonerLevel"`
}

// LeagueEntry is the ranked standing on one queue.
type LeagueEntry struct {
	LeagueId     string `json:"leagueId"`
	SummonerId   string `json:"summonerId"`
	Puuid        string `json:"puuid,omitempty"`
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Veteran      bool   `json:"veteran"`
	Inactive     bool   `json:"inactive"`
	FreshBlood   bool   `json:"freshBlood"`
	HotStreak    bool   `json:"hotStreak"`
}

// ChampionMastery is the mastery of a player on one champion.
type ChampionMastery struct {
	Puuid                        string `json:"puuid"`
	ChampionId                   int    `json:"championId"`
	ChampionLevel                int    `json:"championLevel"`
	ChampionPoints               int    `json:"championPoints"`
	LastPlayTime                 int64  `json:"lastPlayTime"`
	ChampionPointsSinceLastLevel int    `json:"championPointsSinceLastLevel"`
	ChampionPointsUntilNextLevel int    `json:"championPointsUntilNextLevel"`
	TokensEarned                 int    `json:"tokensEarned"`
}

// Match returned by the match-v5 endpoint.
type Match struct {
	Metadata MatchMetadata `json:"metadata" mapstructure:"metadata"`
	Info     MatchInfo     `json:"info" mapstructure:"info"`
}

// HasMetadata tells if the match carries its identifying metadata.
func (m *Match) HasMetadata() bool {
	return m != nil && m.Metadata.MatchId != ""
}

// Participant returns the participant entry of the given player.
func (m *Match) Participant(puuid string) (*Participant, bool) {
	for i := range m.Info.Participants {
		if m.Info.Participants[i].Puuid == puuid {
			return &m.Info.Participants[i], true
		}
	}
	return nil, false
}

// MatchMetadata identifies the match and its players.
type MatchMetadata struct {
	DataVersion  string   `json:"dataVersion" mapstructure:"dataVersion"`
	MatchId      string   `json:"matchId" mapstructure:"matchId"`
	Participants []string `json:"participants" mapstructure:"participants"`
}

// MatchInfo contains the match data itself.
type MatchInfo struct {
	EndOfGameResult    string        `json:"endOfGameResult" mapstructure:"endOfGameResult"`
	GameCreation       int64         `json:"gameCreation" mapstructure:"gameCreation"`
	GameDuration       int64         `json:"gameDuration" mapstructure:"gameDuration"`
	GameEndTimestamp   int64         `json:"gameEndTimestamp" mapstructure:"gameEndTimestamp"`
	GameId             int64         `json:"gameId" mapstructure:"gameId"`
	GameMode           string        `json:"gameMode" mapstructure:"gameMode"`
	GameName           string        `json:"gameName" mapstructure:"gameName"`
	GameStartTimestamp int64         `json:"gameStartTimestamp" mapstructure:"gameStartTimestamp"`
	GameType           string        `json:"gameType" mapstructure:"gameType"`
	GameVersion        string        `json:"gameVersion" mapstructure:"gameVersion"`
	MapId              int           `json:"mapId" mapstructure:"mapId"`
	Participants       []Participant `json:"participants" mapstructure:"participants"`
	PlatformId         string        `json:"platformId" mapstructure:"platformId"`
	QueueId            int           `json:"queueId" mapstructure:"queueId"`
	Teams              []Team        `json:"teams" mapstructure:"teams"`
	TournamentCode     string        `json:"tournamentCode,omitempty" mapstructure:"tournamentCode"`
}

// Participant contains the stats of a given player in a match.
type Participant struct {
	Assists                        int        `json:"assists" mapstructure:"assists"`
	BaronKills                     int        `json:"baronKills" mapstructure:"baronKills"`
	ChampLevel                     int        `json:"champLevel" mapstructure:"champLevel"`
	ChampionId                     int        `json:"championId" mapstructure:"championId"`
	ChampionName                   string     `json:"championName" mapstructure:"championName"`
	Challenges                     Challenges `json:"challenges" mapstructure:"challenges"`
	Deaths                         int        `json:"deaths" mapstructure:"deaths"`
	DoubleKills                    int        `json:"doubleKills" mapstructure:"doubleKills"`
	DragonKills                    int        `json:"dragonKills" mapstructure:"dragonKills"`
	GameEndedInEarlySurrender      bool       `json:"gameEndedInEarlySurrender" mapstructure:"gameEndedInEarlySurrender"`
	GameEndedInSurrender           bool       `json:"gameEndedInSurrender" mapstructure:"gameEndedInSurrender"`
	GoldEarned                     int        `json:"goldEarned" mapstructure:"goldEarned"`
	GoldSpent                      int        `json:"goldSpent" mapstructure:"goldSpent"`
	IndividualPosition             string     `json:"individualPosition" mapstructure:"individualPosition"`
	Item0                          int        `json:"item0" mapstructure:"item0"`
	Item1                          int        `json:"item1" mapstructure:"item1"`
	Item2                          int        `json:"item2" mapstructure:"item2"`
	Item3                          int        `json:"item3" mapstructure:"item3"`
	Item4                          int        `json:"item4" mapstructure:"item4"`
	Item5                          int        `json:"item5" mapstructure:"item5"`
	Item6                          int        `json:"item6" mapstructure:"item6"`
	Kills                          int        `json:"kills" mapstructure:"kills"`
	LargestMultiKill               int        `json:"largestMultiKill" mapstructure:"largestMultiKill"`
	LongestTimeSpentLiving         int        `json:"longestTimeSpentLiving" mapstructure:"longestTimeSpentLiving"`
	MagicDamageDealtToChampions    int        `json:"magicDamageDealtToChampions" mapstructure:"magicDamageDealtToChampions"`
	NeutralMinionsKilled           int        `json:"neutralMinionsKilled" mapstructure:"neutralMinionsKilled"`
	ParticipantId                  int        `json:"participantId" mapstructure:"participantId"`
	PentaKills                     int        `json:"pentaKills" mapstructure:"pentaKills"`
	PhysicalDamageDealtToChampions int        `json:"physicalDamageDealtToChampions" mapstructure:"physicalDamageDealtToChampions"`
	ProfileIcon                    int        `json:"profileIcon" mapstructure:"profileIcon"`
	Puuid                          string     `json:"puuid" mapstructure:"puuid"`
	QuadraKills                    int        `json:"quadraKills" mapstructure:"quadraKills"`
	RiotIdGameName                 string     `json:"riotIdGameName" mapstructure:"riotIdGameName"`
	RiotIdTagline                  string     `json:"riotIdTagline" mapstructure:"riotIdTagline"`
	Summoner1Id                    int        `json:"summoner1Id" mapstructure:"summoner1Id"`
	Summoner2Id                    int        `json:"summoner2Id" mapstructure:"summoner2Id"`
	SummonerId                     string     `json:"summonerId" mapstructure:"summonerId"`
	SummonerLevel                  int        `json:"summonerLevel" mapstructure:"summonerLevel"`
	SummonerName                   string     `json:"summonerName" mapstructure:"summonerName"`
	TeamId                         int        `json:"teamId" mapstructure:"teamId"`
	TeamPosition                   string     `json:"teamPosition" mapstructure:"teamPosition"`
	TimeCCingOthers                int        `json:"timeCCingOthers" mapstructure:"timeCCingOthers"`
	TotalDamageDealtToChampions    int        `json:"totalDamageDealtToChampions" mapstructure:"totalDamageDealtToChampions"`
	TotalDamageTaken               int        `json:"totalDamageTaken" mapstructure:"totalDamageTaken"`
	TotalMinionsKilled             int        `json:"totalMinionsKilled" mapstructure:"totalMinionsKilled"`
	TotalTimeSpentDead             int        `json:"totalTimeSpentDead" mapstructure:"totalTimeSpentDead"`
	TripleKills                    int        `json:"tripleKills" mapstructure:"tripleKills"`
	TrueDamageDealtToChampions     int        `json:"trueDamageDealtToChampions" mapstructure:"trueDamageDealtToChampions"`
	VisionScore                    int        `json:"visionScore" mapstructure:"visionScore"`
	WardsKilled                    int        `json:"wardsKilled" mapstructure:"wardsKilled"`
	WardsPlaced                    int        `json:"wardsPlaced" mapstructure:"wardsPlaced"`
	Win                            bool       `json:"win" mapstructure:"win"`
}

// CreepScore is the sum of lane minions and neutral monsters killed.
func (p *Participant) CreepScore() int {
	return p.TotalMinionsKilled + p.NeutralMinionsKilled
}

// Challenges of the player for this match.
// Only a subset is kept, the rest can be calculated from the stats.
type Challenges struct {
	AbilityUses        int     `json:"abilityUses" mapstructure:"abilityUses"`
	ControlWardsPlaced int     `json:"controlWardsPlaced" mapstructure:"controlWardsPlaced"`
	Kda                float64 `json:"kda" mapstructure:"kda"`
	KillParticipation  float64 `json:"killParticipation" mapstructure:"killParticipation"`
	SkillshotsDodged   int     `json:"skillshotsDodged" mapstructure:"skillshotsDodged"`
}

// Team information.
type Team struct {
	Bans       []Ban      `json:"bans" mapstructure:"bans"`
	Objectives Objectives `json:"objectives" mapstructure:"objectives"`
	TeamId     int        `json:"teamId" mapstructure:"teamId"`
	Win        bool       `json:"win" mapstructure:"win"`
}

// Ban information.
type Ban struct {
	ChampionId int `json:"championId" mapstructure:"championId"`
	PickTurn   int `json:"pickTurn" mapstructure:"pickTurn"`
}

// Objectives taken by a team.
type Objectives struct {
	Baron      Objective `json:"baron" mapstructure:"baron"`
	Champion   Objective `json:"champion" mapstructure:"champion"`
	Dragon     Objective `json:"dragon" mapstructure:"dragon"`
	Inhibitor  Objective `json:"inhibitor" mapstructure:"inhibitor"`
	RiftHerald Objective `json:"riftHerald" mapstructure:"riftHerald"`
	Tower      Objective `json:"tower" mapstructure:"tower"`
}

// Objective counter.
type Objective struct {
	First bool `json:"first" mapstructure:"first"`
	Kills int  `json:"kills" mapstructure:"kills"`
}
