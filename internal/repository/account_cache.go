package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sharath2004-tech/odoo-sub001/internal/domain"
)

const accountCachePrefix = "auth:account:"

// AccountCache stores account snapshots for a bounded time. Get returns nil, nil on a miss.
type AccountCache interface {
	Get(ctx context.Context, id string) (*domain.Account, error)
	Set(ctx context.Context, account *domain.Account) error
}

// RedisAccountCache implements AccountCache on top of Redis.
type RedisAccountCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisAccountCache creates a cache whose entries expire after ttl.
func NewRedisAccountCache(client redis.UniversalClient, ttl time.Duration) *RedisAccountCache {
	return &RedisAccountCache{client: client, ttl: ttl}
}

func (c *RedisAccountCache) Get(ctx context.Context, id string) (*domain.Account, error) {
	raw, err := c.client.Get(ctx, accountCachePrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var account domain.Account
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, fmt.Errorf("decode cached account: %w", err)
	}
	return &account, nil
}

func (c *RedisAccountCache) Set(ctx context.Context, account *domain.Account) error {
	raw, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("encode account: %w", err)
	}
	if err := c.client.Set(ctx, accountCachePrefix+account.ID, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// CachedAccountRepository is a read-through cache in front of another AccountRepository.
//
// Deactivation becomes visible after at most the cache TTL. Only active accounts are
// cached, so removals and deactivations observed by the store are never masked by a
// cached negative. Cache failures fall through to the store.
type CachedAccountRepository struct {
	next          AccountRepository
	cache         AccountCache
	logger        *zap.Logger
	lookupTimeout time.Duration
	group         singleflight.Group
}

// NewCachedAccountRepository wraps next. lookupTimeout bounds a store lookup shared by
// concurrent callers, since it outlives any single caller's context.
func NewCachedAccountRepository(next AccountRepository, cache AccountCache, lookupTimeout time.Duration, logger *zap.Logger) *CachedAccountRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lookupTimeout <= 0 {
		lookupTimeout = 5 * time.Second
	}
	return &CachedAccountRepository{
		next:          next,
		cache:         cache,
		logger:        logger.Named("account_cache"),
		lookupTimeout: lookupTimeout,
	}
}

func (r *CachedAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	cached, err := r.cache.Get(ctx, id)
	if err != nil {
		r.logger.Warn("account cache read failed", zap.String("account_id", id), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	result := r.group.DoChan(id, func() (interface{}, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.lookupTimeout)
		defer cancel()

		account, err := r.next.GetByID(lookupCtx, id)
		if err != nil {
			return nil, err
		}
		if account.Active() {
			if err := r.cache.Set(lookupCtx, account); err != nil {
				r.logger.Warn("account cache write failed", zap.String("account_id", id), zap.Error(err))
			}
		}
		return account, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		account, _ := res.Val.(*domain.Account)
		if account == nil {
			return nil, ErrNotFound
		}
		shared := *account
		return &shared, nil
	}
}
