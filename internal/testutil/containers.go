package testutil

import (
	"context"
	"net"
	"testing"
	"time"

	"lolstats/pkg/config"
	"lolstats/pkg/redis"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SkipWithoutDocker skips integration tests under -short or without a docker daemon.
func SkipWithoutDocker(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	tc.SkipIfProviderIsNotHealthy(t)
}

// StartContainer runs a container for the duration of the test.
// Returns the host and the mapped port of the first exposed port.
func StartContainer(t *testing.T, req tc.ContainerRequest) (string, string) {
	t.Helper()
	SkipWithoutDocker(t)

	ctx := context.Background()

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	tc.CleanupContainer(t, container)
	if err != nil {
		t.Fatalf("Failed to start %s container: %v", req.Image, err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get container endpoint: %v", err)
	}

	host, port, err := net.SplitHostPort(endpoint)
	if err != nil {
		t.Fatalf("Failed to parse container endpoint %s: %v", endpoint, err)
	}

	return host, port
}

// NewTestRedis starts a redis container and returns a connected client.
func NewTestRedis(t *testing.T) *redis.RedisClient {
	t.Helper()

	host, port := StartContainer(t, tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForLog("Ready to accept connections").
			WithStartupTimeout(60 * time.Second),
	})

	client, err := redis.NewClient(config.RedisConfiguration{Host: host, Port: port})
	if err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return client
}
