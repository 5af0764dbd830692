package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilBusIsNoop(t *testing.T) {
	var bus *Bus

	assert.False(t, bus.Enabled())
	assert.NoError(t, bus.PublishSyncCompleted(SyncCompleted{Puuid: "p1", NewMatches: 2}))
	assert.NoError(t, bus.PublishSyncRequest(SyncRequest{Puuid: "p1"}))
	assert.NoError(t, bus.Flush())
	assert.NoError(t, bus.Ping())
	bus.Close()

	_, err := bus.SubscribeSyncRequests(func(SyncRequest) {})
	assert.Error(t, err)
}
