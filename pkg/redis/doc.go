// Package redis connects to Redis with go-redis and provides a readiness
// probe. Session history and the shared rate limiter use the returned client.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	store := history.NewRedisStore(client)
package redis
