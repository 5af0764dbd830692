package converters

import (
	"errors"
	"fmt"

	"lolstats/pkg/database/models"
	"lolstats/pkg/riot"

	"github.com/mitchellh/mapstructure"
)

var (
	ErrNoMatches       = errors.New("no match details provided")
	ErrUnsupportedBody = errors.New("match details must be an object or a list of objects")
	ErrMissingMatchId  = errors.New("match details without metadata.matchId")
)

// MatchDetailsToRecords converts the matchDetails body field, a single match or a list of matches,
// into records ready to be stored.
func MatchDetailsToRecords(details any) ([]*models.Match, error) {
	var raw []any
	switch v := details.(type) {
	case map[string]any:
		raw = []any{v}
	case []any:
		raw = v
	default:
		return nil, ErrUnsupportedBody
	}

	if len(raw) == 0 {
		return nil, ErrNoMatches
	}

	records := make([]*models.Match, 0, len(raw))
	for i, item := range raw {
		match, err := decodeMatch(item)
		if err != nil {
			return nil, fmt.Errorf("failed to convert match %d: %w", i, err)
		}
		records = append(records, models.NewMatch(match))
	}

	return records, nil
}

// decodeMatch decodes one generic JSON object into the typed match.
func decodeMatch(item any) (*riot.Match, error) {
	if _, ok := item.(map[string]any); !ok {
		return nil, ErrUnsupportedBody
	}

	var match riot.Match
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &match,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(item); err != nil {
		return nil, err
	}

	if !match.HasMetadata() {
		return nil, ErrMissingMatchId
	}

	return &match, nil
}
