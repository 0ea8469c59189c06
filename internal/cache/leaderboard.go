package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"game-service/internal/models"

	redis_v9 "github.com/redis/go-redis/v9"
)

// LeaderboardCache keeps rendered leaderboard pages in redis for a short
// TTL. Every redis failure is treated as a miss so the service keeps
// answering from mongo when redis is down.
type LeaderboardCache struct {
	client *redis_v9.Client
	ttl    time.Duration
}

func NewLeaderboardCache(addr, password string, db int, ttl time.Duration) *LeaderboardCache {
	client := redis_v9.NewClient(&redis_v9.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &LeaderboardCache{client: client, ttl: ttl}
}

func cacheKey(key string) string {
	return "leaderboard:" + key
}

func (c *LeaderboardCache) Get(ctx context.Context, key string) ([]models.LeaderboardEntry, bool) {
	raw, err := c.client.Get(ctx, cacheKey(key)).Bytes()
	if err != nil {
		if err != redis_v9.Nil {
			log.Printf("leaderboard cache get %s: %s", key, err)
		}
		return nil, false
	}
	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Printf("leaderboard cache decode %s: %s", key, err)
		return nil, false
	}
	return entries, true
}

func (c *LeaderboardCache) Set(ctx context.Context, key string, entries []models.LeaderboardEntry) {
	raw, err := json.Marshal(entries)
	if err != nil {
		log.Printf("leaderboard cache encode %s: %s", key, err)
		return
	}
	if err := c.client.Set(ctx, cacheKey(key), raw, c.ttl).Err(); err != nil {
		log.Printf("leaderboard cache set %s: %s", key, err)
	}
}

func (c *LeaderboardCache) Close() error {
	return c.client.Close()
}
