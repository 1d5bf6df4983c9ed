package suite

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	containerTTL = 120
	startTimeout = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// optionsPrefix mirrors the key layout of the option repository.
const optionsPrefix = "options:"

// Suite is a redis backed fixture for option-record tests.
type Suite struct {
	*testing.T

	Storage *redis.Client
}

// New starts a throwaway redis container for t. The test is skipped when no
// docker daemon is reachable.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	t.Cleanup(cancel)

	pool := dockerPool(t)
	client := startRedis(ctx, t, pool)

	return ctx, &Suite{
		T:       t,
		Storage: client,
	}
}

// PutRecord stores raw under key the way a foreign writer would, bypassing
// validation.
func (that *Suite) PutRecord(ctx context.Context, key, raw string) {
	that.Helper()

	if err := that.Storage.Set(ctx, optionsPrefix+key, raw, 0).Err(); err != nil {
		that.Fatalf("could not store record %q: %v", key, err)
	}
}

// HasRecord reports whether an option record exists under key.
func (that *Suite) HasRecord(ctx context.Context, key string) bool {
	that.Helper()

	n, err := that.Storage.Exists(ctx, optionsPrefix+key).Result()
	if err != nil {
		that.Fatalf("could not check record %q: %v", key, err)
	}

	return n == 1
}

func dockerPool(t *testing.T) *dockertest.Pool {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not reachable: %v", err)
	}

	pool.MaxWait = startTimeout

	return pool
}

func startRedis(ctx context.Context, t *testing.T, pool *dockertest.Pool) *redis.Client {
	t.Helper()

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis: %v", err)
	}

	// hard kill in case cleanup never runs
	_ = resource.Expire(containerTTL)

	client := redis.NewClient(&redis.Options{Addr: resource.GetHostPort(redisPort)})

	// the server inside the container may still be booting
	if err = pool.Retry(func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		_ = client.Close()
		_ = pool.Purge(resource)
		t.Fatalf("could not connect to redis: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis: %v", err)
		}
	})

	return client
}
