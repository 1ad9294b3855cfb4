package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/quirkauto/advisorcopilot/pkg/redis"
)

type mockPinger struct {
	mock.Mock
}

func (m *mockPinger) Ping(ctx context.Context) *goredis.StatusCmd {
	return m.Called(ctx).Get(0).(*goredis.StatusCmd)
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ok := new(mockPinger)
	ok.On("Ping", ctx).Return(goredis.NewStatusResult("PONG", nil))
	assert.NoError(t, redis.Healthcheck(ok)(ctx))

	down := new(mockPinger)
	down.On("Ping", ctx).Return(goredis.NewStatusResult("", errors.New("connection refused")))
	assert.ErrorIs(t, redis.Healthcheck(down)(ctx), redis.ErrHealthcheckFailed)
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: "mysql://localhost"})
		assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  "redis://127.0.0.1:1/0?dial_timeout=100ms",
			RetryAttempts:  2,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: 5 * time.Second,
		})
		assert.ErrorIs(t, err, redis.ErrRedisNotReady)
	})
}
