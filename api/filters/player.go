package filters

// URI params for the endpoints keyed by Riot id.
type RiotIdURIParams struct {
	GameName string `uri:"gameName" binding:"required"`
	TagLine  string `uri:"tagLine" binding:"required"`
}

// URI params for the endpoints keyed by puuid.
type PuuidURIParams struct {
	Puuid string `uri:"puuid" binding:"required"`
}

// URI params for the league endpoint.
type SummonerURIParams struct {
	SummonerId string `uri:"summonerId" binding:"required"`
}
