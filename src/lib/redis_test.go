package lib

import (
	"context"
	"errors"
	"testing"
	"time"

	"shareit/src/types"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestUserCacheGet(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := NewUserCache(rdb, time.Minute)

	mock.ExpectGet("user:7").SetVal(`{"id":7,"name":"Ann","email":"ann@example.com"}`)
	user, ok := cache.Get(context.Background(), 7)
	assert.True(t, ok)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "ann@example.com", user.Email)

	mock.ExpectGet("user:8").RedisNil()
	_, ok = cache.Get(context.Background(), 8)
	assert.False(t, ok)

	mock.ExpectGet("user:9").SetErr(errors.New("connection refused"))
	_, ok = cache.Get(context.Background(), 9)
	assert.False(t, ok)

	mock.ExpectGet("user:10").SetVal("not json")
	_, ok = cache.Get(context.Background(), 10)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCacheSetAndInvalidate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := NewUserCache(rdb, time.Minute)

	mock.ExpectSet("user:3", `{"id":3,"name":"Bob","email":"bob@example.com"}`, time.Minute).SetVal("OK")
	cache.Set(context.Background(), types.APIResponseUser{ID: 3, Name: "Bob", Email: "bob@example.com"})

	mock.ExpectDel("user:3").SetVal(1)
	cache.Invalidate(context.Background(), 3)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNilUserCache(t *testing.T) {
	cache := NewUserCache(nil, time.Minute)
	assert.Nil(t, cache)

	_, ok := cache.Get(context.Background(), 1)
	assert.False(t, ok)
	cache.Set(context.Background(), types.APIResponseUser{ID: 1})
	cache.Invalidate(context.Background(), 1)
}

func TestNewRedisClientReplacesSingleton(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	assert.Same(t, rdb, NewRedisClient(rdb))
	assert.Same(t, rdb, GetRedisClient())

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, PingRedis(context.Background()))

	mock.ExpectPing().SetErr(errors.New("connection refused"))
	assert.Error(t, PingRedis(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}
