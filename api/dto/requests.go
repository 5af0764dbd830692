package dto

import "lolstats/pkg/database/models"

// UserUpdateRequest is the body of POST /user/update.
type UserUpdateRequest struct {
	UpdatedSummoner *models.User `json:"updatedSummoner" binding:"required"`
}

// MatchUpdateRequest is the body of POST /match/update.
// MatchDetails is either a single match or a list of matches.
type MatchUpdateRequest struct {
	MatchDetails any `json:"matchDetails" binding:"required"`
}

// MatchUpdateResponse tells how many matches were stored.
type MatchUpdateResponse struct {
	Updated int `json:"updated"`
}
