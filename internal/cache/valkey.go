package cache

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// ValkeyClient caches basic-auth lookups so the hot request path does not
// hit Postgres for every authenticated call.
type ValkeyClient struct {
	client       *redis.Client
	usersHashKey string
}

func NewValkeyClient() (*ValkeyClient, error) {
	addr := os.Getenv("VALKEY_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	password := os.Getenv("VALKEY_PASSWORD")
	usersHashKey := os.Getenv("VALKEY_USERS_HASH_KEY")
	if usersHashKey == "" {
		usersHashKey = "users:auth"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeyClient{
		client:       rdb,
		usersHashKey: usersHashKey,
	}, nil
}

// GetUserIDByAuth returns the cached user id for an email/password-hash pair,
// or redis.Nil-wrapped error when the pair is not cached.
func (v *ValkeyClient) GetUserIDByAuth(ctx context.Context, email, passwordHash string) (string, error) {
	authString := fmt.Sprintf("%s:%s", email, passwordHash)
	cacheKey := base64.StdEncoding.EncodeToString([]byte(authString))

	userID, err := v.client.HGet(ctx, v.usersHashKey, cacheKey).Result()
	if err != nil {
		if err == redis.Nil {
			return "", fmt.Errorf("user not found in cache")
		}
		return "", fmt.Errorf("cache lookup error: %w", err)
	}

	return userID, nil
}

// SetUserIDByAuth populates the auth cache after a successful database lookup.
func (v *ValkeyClient) SetUserIDByAuth(ctx context.Context, email, passwordHash, userID string) error {
	authString := fmt.Sprintf("%s:%s", email, passwordHash)
	cacheKey := base64.StdEncoding.EncodeToString([]byte(authString))
	return v.client.HSet(ctx, v.usersHashKey, cacheKey, userID).Err()
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}
