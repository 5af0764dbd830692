package syncservice

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidIdentity is returned when neither a puuid nor a full riot id is given.
var ErrInvalidIdentity = errors.New("either puuid or both gameName and tagLine must be provided")

// ErrSyncInProgress is matched by every InProgressError.
var ErrSyncInProgress = errors.New("sync already in progress")

// InProgressError rejects a sync of a player synced too recently.
type InProgressError struct {
	RetryAfter time.Duration
}

func (e *InProgressError) Error() string {
	return fmt.Sprintf("operation already in progress, try again in %d seconds", int(e.RetryAfter.Round(time.Second).Seconds()))
}

func (e *InProgressError) Is(target error) bool {
	return target == ErrSyncInProgress
}

// Identity is one of the two natural keys of a player.
type Identity struct {
	GameName string
	TagLine  string
	Puuid    string
}

// ByRiotId is the identity of a game name and tag line.
func ByRiotId(gameName, tagLine string) Identity {
	return Identity{GameName: strings.TrimSpace(gameName), TagLine: strings.TrimSpace(tagLine)}
}

// ByPuuid is the identity of a puuid.
func ByPuuid(puuid string) Identity {
	return Identity{Puuid: strings.TrimSpace(puuid)}
}

// Validate checks that the identity can be resolved.
func (i Identity) Validate() error {
	if i.Puuid == "" && (i.GameName == "" || i.TagLine == "") {
		return ErrInvalidIdentity
	}
	return nil
}

func (i Identity) String() string {
	if i.Puuid != "" {
		return "puuid " + i.Puuid
	}
	return i.GameName + "#" + i.TagLine
}
