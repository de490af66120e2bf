// services/cache.go
package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// CacheService fronts the published learner catalog with Redis. Authoring
// writes invalidate per-language keys; the learner read path repopulates them.
type CacheService struct {
	appContext.DefaultService
	redis *redis.Client

	catalogTTL time.Duration
}

const CACHE_SVC = "cache_svc"

func (svc CacheService) Id() string {
	return CACHE_SVC
}

func (svc *CacheService) Configure(ctx *appContext.Context) error {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	svc.redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	})

	svc.catalogTTL = 15 * time.Minute
	if raw := os.Getenv("CATALOG_CACHE_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			svc.catalogTTL = parsed
		}
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *CacheService) Start() error {
	if _, err := svc.redis.Ping(context.Background()).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

func (svc *CacheService) Shutdown() {
	if svc.redis != nil {
		svc.redis.Close()
	}
}

func catalogKey(language string) string {
	return "catalog:" + language
}

func lessonKey(lessonID string) string {
	return "catalog:lesson:" + lessonID
}

// GetJSON returns false on a miss; cache failures degrade to a miss so the
// read path falls through to the database.
func (svc *CacheService) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	result, err := svc.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("Cache read failed")
		return false
	}
	if err := sonic.Unmarshal([]byte(result), dest); err != nil {
		log.WithError(err).WithField("key", key).Warn("Cache entry is corrupt")
		return false
	}
	return true
}

func (svc *CacheService) SetJSON(ctx context.Context, key string, value interface{}) {
	data, err := sonic.Marshal(value)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("Cache encode failed")
		return
	}
	if err := svc.redis.Set(ctx, key, data, svc.catalogTTL).Err(); err != nil {
		log.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

func (svc *CacheService) CatalogKey(language string) string {
	return catalogKey(language)
}

func (svc *CacheService) LessonKey(lessonID string) string {
	return lessonKey(lessonID)
}

// InvalidateCatalog drops the language's catalog key and every cached lesson
// detail under it.
func (svc *CacheService) InvalidateCatalog(language string) error {
	ctx := context.Background()
	if err := svc.redis.Del(ctx, catalogKey(language)).Err(); err != nil {
		return err
	}

	iter := svc.redis.Scan(ctx, 0, "catalog:lesson:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return svc.redis.Del(ctx, keys...).Err()
	}
	return nil
}
