// Package events carries sync notifications and crawl requests over NATS.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

const (
	SubjectSyncCompleted = "lolstats.sync.completed"
	SubjectSyncRequest   = "lolstats.sync.request"

	syncWorkersQueue = "sync-workers"
)

// SyncCompleted is published after a sync cycle stored its records.
type SyncCompleted struct {
	Puuid      string    `json:"puuid"`
	NewMatches int       `json:"newMatches"`
	MatchIds   []string  `json:"matchIds"`
	SyncedAt   time.Time `json:"syncedAt"`
}

// SyncRequest asks any sync worker to sync one player.
type SyncRequest struct {
	Puuid string `json:"puuid"`
}

// Bus wraps the NATS connection.
// A nil *Bus is valid: publishing is a no-op and Enabled reports false.
type Bus struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

// Connect opens the NATS connection.
func Connect(url, name string, logger zerolog.Logger) (*Bus, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return &Bus{conn: conn, logger: logger}, nil
}

// Enabled tells if messages actually leave the process.
func (b *Bus) Enabled() bool {
	return b != nil && b.conn != nil
}

// Close drains the connection.
func (b *Bus) Close() {
	if !b.Enabled() {
		return
	}
	if err := b.conn.Drain(); err != nil {
		b.logger.Warn().Err(err).Msg("failed to drain the nats connection")
	}
}

func (b *Bus) publish(subject string, payload any) error {
	if !b.Enabled() {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return b.conn.Publish(subject, data)
}

// PublishSyncCompleted notifies listeners that a player was synced.
func (b *Bus) PublishSyncCompleted(event SyncCompleted) error {
	return b.publish(SubjectSyncCompleted, event)
}

// PublishSyncRequest queues a sync for a single player.
func (b *Bus) PublishSyncRequest(request SyncRequest) error {
	return b.publish(SubjectSyncRequest, request)
}

// Flush waits until the server processed every published message.
func (b *Bus) Flush() error {
	if !b.Enabled() {
		return nil
	}
	return b.conn.FlushTimeout(5 * time.Second)
}

// SubscribeSyncRequests starts a queue subscription for sync requests.
// Each request is delivered to exactly one worker of the queue group.
func (b *Bus) SubscribeSyncRequests(handle func(SyncRequest)) (*nats.Subscription, error) {
	if !b.Enabled() {
		return nil, fmt.Errorf("nats is not configured")
	}

	return b.conn.QueueSubscribe(SubjectSyncRequest, syncWorkersQueue, func(msg *nats.Msg) {
		var request SyncRequest
		if err := json.Unmarshal(msg.Data, &request); err != nil {
			b.logger.Error().Err(err).Msg("failed to parse the sync request")
			return
		}
		if request.Puuid == "" {
			b.logger.Warn().Msg("sync request without puuid")
			return
		}
		handle(request)
	})
}

// Ping reports the connection state.
func (b *Bus) Ping() error {
	if !b.Enabled() {
		return nil
	}
	if !b.conn.IsConnected() {
		return fmt.Errorf("nats connection is %s", b.conn.Status())
	}
	return nil
}
