package syncservice

import (
	"context"
	"fmt"

	"lolstats/pkg/riot"

	"golang.org/x/sync/errgroup"
)

// ItemResult is the outcome of fetching a single item of a batch.
type ItemResult[T any] struct {
	Id    string
	Value T
	Err   error
}

// MatchFetcher fetches match details.
type MatchFetcher interface {
	GetMatch(ctx context.Context, matchId string) (*riot.Match, error)
}

// FetchMatches fetches every match concurrently.
// A failed item doesn't stop the others, results keep the order of ids.
func FetchMatches(ctx context.Context, client MatchFetcher, ids []string) []ItemResult[*riot.Match] {
	results := make([]ItemResult[*riot.Match], len(ids))

	var g errgroup.Group
	g.SetLimit(MaxNewMatches)

	for i, id := range ids {
		g.Go(func() error {
			match, err := client.GetMatch(ctx, id)
			if err == nil && !match.HasMetadata() {
				err = fmt.Errorf("match %s was returned without metadata", id)
			}
			results[i] = ItemResult[*riot.Match]{Id: id, Value: match, Err: err}
			return nil
		})
	}
	g.Wait()

	return results
}
