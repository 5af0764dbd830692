package filters

import "errors"

// ErrInvalidPage is returned for pages below 1.
var ErrInvalidPage = errors.New("page must be a positive integer")

// URI params for the match endpoints using a generic id.
type IdURIParams struct {
	Id string `uri:"id" binding:"required"`
}

// URI params for the badge endpoint.
type BadgeURIParams struct {
	MatchId string `uri:"matchId" binding:"required"`
	Puuid   string `uri:"puuid" binding:"required"`
}

// URI params for the champion stats endpoint.
type ChampionKeyURIParams struct {
	Key int `uri:"key" binding:"required"`
}

// Query params for the match id list.
type MatchIdsQueryParams struct {
	Page *int `form:"page"`
}

// PageOrDefault returns the requested page, 1 when absent.
func (q *MatchIdsQueryParams) PageOrDefault() (int, error) {
	if q.Page == nil {
		return 1, nil
	}
	if *q.Page < 1 {
		return 0, ErrInvalidPage
	}
	return *q.Page, nil
}
