// Package cache is a read-through cache of per-user views over redis. Every
// failure is treated as a miss, so the store stays the source of truth.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/yukikurage/project-management-api/internal/cache"

type Cache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker
	logger  logrus.FieldLogger
	tracer  trace.Tracer
}

// New returns a cache over client. A nil client or a non-positive ttl disables
// caching: reads always miss and writes are dropped.
func New(client *redis.Client, ttl time.Duration, logger logrus.FieldLogger) *Cache {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	c := &Cache{
		client: client,
		ttl:    ttl,
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "redis-cache",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Cache circuit breaker changed state")
		},
	})
	return c
}

// Misses and caller cancellations are not backend faults.
func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, redis.Nil) ||
		errors.Is(err, context.Canceled)
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

func (c *Cache) TTL() time.Duration {
	if c == nil {
		return 0
	}
	return c.ttl
}

// Get decodes the value stored at key into T. It reports false on a miss, on any
// backend error and on an undecodable entry, which is also removed.
func Get[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var value T
	data, ok := c.load(ctx, key)
	if !ok {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Dropping undecodable cache entry")
		c.Remove(ctx, key)
		var zero T
		return zero, false
	}
	return value, true
}

func (c *Cache) load(ctx context.Context, key string) ([]byte, bool) {
	if !c.enabled() {
		return nil, false
	}

	ctx, span := c.tracer.Start(ctx, "cache.get", trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.client.Get(ctx, key).Bytes()
	})
	if err != nil {
		span.SetAttributes(attribute.Bool("cache.hit", false))
		if !errors.Is(err, redis.Nil) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.logger.WithError(err).WithField("key", key).Warn("Cache read failed, falling back to store")
		}
		return nil, false
	}

	span.SetAttributes(attribute.Bool("cache.hit", true))
	return result.([]byte), true
}

// Set stores value at key with the configured expiration, overwriting any entry.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	c.SetWithTTL(ctx, key, value, c.TTL())
}

// SetWithTTL stores value at key with an explicit expiration.
func (c *Cache) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !c.enabled() || ttl <= 0 {
		return
	}

	ctx, span := c.tracer.Start(ctx, "cache.set", trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	data, err := json.Marshal(value)
	if err != nil {
		span.RecordError(err)
		c.logger.WithError(err).WithField("key", key).Error("Failed to encode cache entry")
		return
	}

	_, err = c.breaker.Execute(func() (interface{}, error) {
		return nil, c.client.Set(ctx, key, data, ttl).Err()
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

// Ticket is the version of a key observed before a store read. Fill writes the
// value read under a ticket only if the key was not invalidated in between, so
// a read racing a write cannot put back a view the write just removed.
type Ticket struct {
	key     string
	version string
	valid   bool
}

// fillScript sets KEYS[1] only while its version in KEYS[2] still equals ARGV[1].
var fillScript = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

func versionKey(key string) string {
	return "Version_" + key
}

// Ticket reads the current version of key. Take it before reading the store.
func (c *Cache) Ticket(ctx context.Context, key string) Ticket {
	if !c.enabled() {
		return Ticket{key: key}
	}

	ctx, span := c.tracer.Start(ctx, "cache.ticket", trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.client.Get(ctx, versionKey(key)).Result()
	})
	switch {
	case errors.Is(err, redis.Nil):
		return Ticket{key: key, version: "0", valid: true}
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.WithError(err).WithField("key", key).Warn("Cache version read failed, skipping fill")
		return Ticket{key: key}
	}
	return Ticket{key: key, version: result.(string), valid: true}
}

// Fill stores value under the ticket's key with the configured expiration,
// unless the key was invalidated after the ticket was taken.
func (c *Cache) Fill(ctx context.Context, ticket Ticket, value interface{}) {
	if !c.enabled() || !ticket.valid {
		return
	}

	ctx, span := c.tracer.Start(ctx, "cache.fill", trace.WithAttributes(attribute.String("cache.key", ticket.key)))
	defer span.End()

	data, err := json.Marshal(value)
	if err != nil {
		span.RecordError(err)
		c.logger.WithError(err).WithField("key", ticket.key).Error("Failed to encode cache entry")
		return
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return fillScript.Run(ctx, c.client,
			[]string{ticket.key, versionKey(ticket.key)},
			ticket.version, data, c.ttl.Milliseconds(),
		).Int()
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.WithError(err).WithField("key", ticket.key).Warn("Cache write failed")
		return
	}
	if result.(int) == 0 {
		span.SetAttributes(attribute.Bool("cache.stale", true))
		c.logger.WithField("key", ticket.key).Debug("Skipping cache fill invalidated during read")
	}
}

// Remove deletes keys and bumps their versions so fills already in flight for
// them are dropped. Removing an absent key is not an error.
func (c *Cache) Remove(ctx context.Context, keys ...string) {
	if !c.enabled() || len(keys) == 0 {
		return
	}
	keys = unique(keys)

	ctx, span := c.tracer.Start(ctx, "cache.remove", trace.WithAttributes(attribute.StringSlice("cache.keys", keys)))
	defer span.End()

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, keys...)
			for _, key := range keys {
				pipe.Incr(ctx, versionKey(key))
				pipe.PExpire(ctx, versionKey(key), c.ttl)
			}
			return nil
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.WithError(err).WithField("keys", keys).Error("Cache invalidation failed, entries expire at TTL")
	}
}

func unique(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
