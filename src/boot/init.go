package boot

import (
	"context"
	"log"
	"time"

	"shareit/src/config"
	"shareit/src/db"
	"shareit/src/lib"
	"shareit/src/models"
	"shareit/src/services"
	"shareit/src/store"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(models.All()...)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitStore picks the persistence backend from STORE: "memory" or postgres.
func InitStore() store.Store {
	switch config.GetStoreKind() {
	case "memory":
		log.Println("Using in-memory store")
		return store.NewMemoryStore()
	default:
		return store.NewGormStore(InitDb())
	}
}

// InitCache returns nil when redis is not configured or unreachable.
func InitCache() *lib.UserCache {
	rdb := lib.GetRedisClient()
	if rdb == nil {
		log.Println("[cache] REDIS_HOST not set, user cache disabled")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := lib.PingRedis(ctx); err != nil {
		log.Printf("[cache] Redis unreachable, user cache disabled: %s\n", err.Error())
		return nil
	}
	return lib.NewUserCache(rdb, config.GetUserCacheTTL())
}

func InitServices() *services.Services {
	lib.RegisterMetrics()
	return services.New(InitStore(), InitCache(), time.Now)
}
