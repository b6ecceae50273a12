package lib

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"shareit/src/config"
	"shareit/src/types"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// GetRedisClient returns nil when REDIS_HOST is unset or unparsable.
func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := config.GetRedisURL()
	if redisHost == "" {
		return nil
	}
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

func PingRedis(ctx context.Context) error {
	rdb := GetRedisClient()
	if rdb == nil {
		return errors.New("redis is not configured")
	}
	return rdb.Ping(ctx).Err()
}

// UserCache keeps rendered users in redis. A nil *UserCache is a valid,
// always-missing cache.
type UserCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewUserCache(rdb *redis.Client, ttl time.Duration) *UserCache {
	if rdb == nil {
		return nil
	}
	return &UserCache{rdb: rdb, ttl: ttl}
}

func userKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (c *UserCache) Get(ctx context.Context, id uint) (*types.APIResponseUser, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.rdb.Get(ctx, userKey(id)).Result()
	if err == redis.Nil {
		return nil, false
	} else if err != nil {
		log.Printf("[cache] Error retrieving %s: %s\n", userKey(id), err.Error())
		return nil, false
	}
	var user types.APIResponseUser
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		log.Printf("[cache] Discarding malformed entry %s: %s\n", userKey(id), err.Error())
		return nil, false
	}
	return &user, true
}

func (c *UserCache) Set(ctx context.Context, user types.APIResponseUser) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, userKey(user.ID), string(payload), c.ttl).Err(); err != nil {
		log.Printf("[cache] Failed to set value for key %s: %s\n", userKey(user.ID), err.Error())
	}
}

func (c *UserCache) Invalidate(ctx context.Context, id uint) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, userKey(id)).Err(); err != nil {
		log.Printf("[cache] Failed to delete key %s: %s\n", userKey(id), err.Error())
	}
}
