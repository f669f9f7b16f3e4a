// Package redis provides Redis client initialization with retry logic plus
// the Redis-backed session store used by the admin back office.
//
// Connect validates the connection URL, dials with retries, and verifies
// connectivity with a ping before returning the client:
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL: "redis://localhost:6379/0",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	manager := session.NewManager(storeClient, redis.NewSessionStore(client))
//
// SessionStore implements core/session.Store: the serialized session record
// and its expiry timestamp are written and read together in one pipeline, so
// a resume never observes one entry without the other. Keys carry the
// session's TTL and disappear from Redis on their own after expiry.
//
// Healthcheck returns a ping-based probe function suitable for readiness
// endpoints. Configuration is environment-driven:
//
//	type Config struct {
//		ConnectionURL  string        `env:"REDIS_URL,required"`
//		RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
//		ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
//	}
//
// Errors are stable sentinels checkable with errors.Is.
package redis
