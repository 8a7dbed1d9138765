package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"cresocrm/internal/models"
)

// CacheService caches merged distributor records. A cache miss is
// (nil, nil); persistence is always the source of truth.
type CacheService interface {
	GetDistributor(ctx context.Context, id int64) (models.FlatRecord, error)
	SetDistributor(ctx context.Context, id int64, record models.FlatRecord, ttl time.Duration) error
	GetDistributorList(ctx context.Context) ([]models.FlatRecord, error)
	SetDistributorList(ctx context.Context, records []models.FlatRecord, ttl time.Duration) error
	InvalidateDistributor(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
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

const distributorListKey = "cresocrm:distributors:all"

func distributorKey(id int64) string {
	return fmt.Sprintf("cresocrm:distributor:%d", id)
}

func (r *redisCacheService) GetDistributor(ctx context.Context, id int64) (models.FlatRecord, error) {
	data, err := r.client.Get(ctx, distributorKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var record models.FlatRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *redisCacheService) SetDistributor(ctx context.Context, id int64, record models.FlatRecord, ttl time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, distributorKey(id), data, ttl).Err()
}

func (r *redisCacheService) GetDistributorList(ctx context.Context) ([]models.FlatRecord, error) {
	data, err := r.client.Get(ctx, distributorListKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var records []models.FlatRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *redisCacheService) SetDistributorList(ctx context.Context, records []models.FlatRecord, ttl time.Duration) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, distributorListKey, data, ttl).Err()
}

// InvalidateDistributor drops both the record's own entry and the list
// entry; called on every save and delete.
func (r *redisCacheService) InvalidateDistributor(ctx context.Context, id int64) error {
	return r.client.Del(ctx, distributorKey(id), distributorListKey).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
