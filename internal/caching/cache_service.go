package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"dukaan/internal/models"
)

type CacheService interface {
	// Storefront snapshot caching, keyed by normalized host.
	GetShopByDomain(ctx context.Context, domain string) (*models.Shop, error)
	SetShopByDomain(ctx context.Context, domain string, shop *models.Shop, ttl time.Duration) error
	DeleteShopByDomain(ctx context.Context, domain string) error

	// Catalog caching
	GetCatalog(ctx context.Context, shopID uuid.UUID) (*models.CatalogData, error)
	SetCatalog(ctx context.Context, shopID uuid.UUID, catalog *models.CatalogData, ttl time.Duration) error
	DeleteCatalog(ctx context.Context, shopID uuid.UUID) error

	// Cache invalidation
	InvalidateShopCache(ctx context.Context, shopID uuid.UUID, domains []string) error
	InvalidateAllCache(ctx context.Context) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Generic string operations for verification state
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept both host:port and redis://host:port forms
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetShopByDomain(ctx context.Context, domain string) (*models.Shop, error) {
	key := fmt.Sprintf("dukaan:shop:domain:%s", domain)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var shop models.Shop
	if err := json.Unmarshal(data, &shop); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *redisCacheService) SetShopByDomain(ctx context.Context, domain string, shop *models.Shop, ttl time.Duration) error {
	key := fmt.Sprintf("dukaan:shop:domain:%s", domain)
	data, err := json.Marshal(shop)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteShopByDomain(ctx context.Context, domain string) error {
	key := fmt.Sprintf("dukaan:shop:domain:%s", domain)
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetCatalog(ctx context.Context, shopID uuid.UUID) (*models.CatalogData, error) {
	key := fmt.Sprintf("dukaan:catalog:%s", shopID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var catalog models.CatalogData
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (r *redisCacheService) SetCatalog(ctx context.Context, shopID uuid.UUID, catalog *models.CatalogData, ttl time.Duration) error {
	key := fmt.Sprintf("dukaan:catalog:%s", shopID.String())
	data, err := json.Marshal(catalog)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteCatalog(ctx context.Context, shopID uuid.UUID) error {
	key := fmt.Sprintf("dukaan:catalog:%s", shopID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) InvalidateShopCache(ctx context.Context, shopID uuid.UUID, domains []string) error {
	keys := []string{fmt.Sprintf("dukaan:catalog:%s", shopID.String())}
	for _, d := range domains {
		keys = append(keys, fmt.Sprintf("dukaan:shop:domain:%s", d))
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *redisCacheService) InvalidateAllCache(ctx context.Context) error {
	pattern := "dukaan:*"
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("dukaan:ratelimit:%s", key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return true, err
	}

	// Set expiry on first request
	if count == 1 {
		r.client.Expire(ctx, cacheKey, window)
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
