package refdata

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	bankKeyPrefix        = "refdata:bank:"
	accountTypeKeyPrefix = "refdata:account_type:"
)

// Cache is a Redis read-through cache for reference lookups. A nil Cache
// or nil client degrades to loader-only behavior.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// fetchJSON loads key into dest, populating it from loader on a miss.
// Cache write failures are swallowed: the lookup result wins.
func (c *Cache) fetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		return remarshal(value, dest)
	}

	// A miss, a read failure and a corrupt entry all fall through to the
	// loader; the cache never blocks a lookup.
	if payload, err := c.client.Get(ctx, key).Bytes(); err == nil {
		if unmarshalErr := json.Unmarshal(payload, dest); unmarshalErr == nil {
			return nil
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}
	if raw, marshalErr := json.Marshal(value); marshalErr == nil {
		_ = c.client.Set(ctx, key, raw, c.ttl).Err()
	}
	return remarshal(value, dest)
}

// Invalidate drops cached entries after reference data mutations.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	_ = c.client.Del(ctx, keys...).Err()
}

// BankKey builds the cache key for a bank.
func BankKey(id string) string { return bankKeyPrefix + id }

// AccountTypeKey builds the cache key for a bank account type.
func AccountTypeKey(id string) string { return accountTypeKeyPrefix + id }

func remarshal(value, dest any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
