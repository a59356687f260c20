// Package reccache caches AI recommendations per user and profile snapshot in Redis.
package reccache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"schemesathi/internal/common/errors"
	"schemesathi/internal/models"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "recs:"

// Entry is what gets stored under a profile hash.
type Entry struct {
	ProfileHash     string                  `json:"profileHash"`
	Recommendations []models.Recommendation `json:"recommendations"`
	CreatedAt       time.Time               `json:"createdAt"`
}

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// ProfileHash is the SHA-256 of the profile's canonical JSON encoding.
func ProfileHash(p models.Profile) (string, error) {
	p.SchemaVersion = models.ProfileSchemaVersion
	buf, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:]), nil
}

func Key(userID, profileHash string) string {
	return keyPrefix + userID + ":" + profileHash
}

func indexKey(userID string) string {
	return keyPrefix + "index:" + userID
}

// Get returns nil, nil on a miss.
func (c *Cache) Get(ctx context.Context, userID string, p models.Profile) (*Entry, error) {
	hash, err := ProfileHash(p)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	val, err := c.client.Get(ctx, Key(userID, hash)).Result()
	if stderrors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewCacheError("get recommendations", err)
	}

	var entry Entry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		// A corrupt entry is a miss.
		return nil, nil
	}
	return &entry, nil
}

func (c *Cache) Put(ctx context.Context, userID string, p models.Profile, recs []models.Recommendation) error {
	hash, err := ProfileHash(p)
	if err != nil {
		return errors.NewInternalError(err)
	}

	data, err := json.Marshal(Entry{ProfileHash: hash, Recommendations: recs, CreatedAt: time.Now().UTC()})
	if err != nil {
		return errors.NewInternalError(fmt.Errorf("marshal cache entry: %w", err))
	}

	key := Key(userID, hash)
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return errors.NewCacheError("put recommendations", err)
	}
	if err := c.client.SAdd(ctx, indexKey(userID), key).Err(); err != nil {
		return errors.NewCacheError("index recommendations", err)
	}
	if err := c.client.Expire(ctx, indexKey(userID), c.ttl).Err(); err != nil {
		return errors.NewCacheError("expire index", err)
	}
	return nil
}

// Invalidate drops every cached entry of the user.
func (c *Cache) Invalidate(ctx context.Context, userID string) error {
	idx := indexKey(userID)
	keys, err := c.client.SMembers(ctx, idx).Result()
	if err != nil {
		return errors.NewCacheError("list cached recommendations", err)
	}

	keys = append(keys, idx)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return errors.NewCacheError("invalidate recommendations", err)
	}
	return nil
}
