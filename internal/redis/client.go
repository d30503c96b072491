package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"roti_pos/internal/catalog"

	"github.com/go-redis/redis/v8"
)

// ErrCartNotFound is returned when a cart session id is unknown or expired.
var ErrCartNotFound = errors.New("cart session not found")

type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func Initialize(redisURL string, cartTTL time.Duration) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: cartTTL}, nil
}

// Cart session management
func (c *Client) SaveCart(cartID string, cart *catalog.Cart) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart session: %w", err)
	}

	return c.rdb.Set(ctx, "cart:"+cartID, jsonData, c.ttl).Err()
}

func (c *Client) GetCart(cartID string) (*catalog.Cart, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "cart:"+cartID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart session: %w", err)
	}

	var cart catalog.Cart
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart session: %w", err)
	}

	return &cart, nil
}

func (c *Client) DeleteCart(cartID string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "cart:"+cartID).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
