package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Guard holds recently claimed registration keys so that a repeated request
// inside the TTL window is rejected before touching the database.
type Guard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewGuard(rdb *redis.Client, ttl time.Duration) *Guard {
	return &Guard{rdb: rdb, ttl: ttl}
}

// Claim reserves key for the guard TTL. It reports false when the key is
// already held.
func (g *Guard) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := g.rdb.SetNX(ctx, key, 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("guard claim %s: %w", key, err)
	}
	return ok, nil
}

func (g *Guard) Forget(ctx context.Context, key string) error {
	if err := g.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("guard forget %s: %w", key, err)
	}
	return nil
}

func MotoPlateKey(plate string) string {
	return namespaced("moto:plate", strings.ToUpper(plate))
}

func DeliveryPersonKey(cnpj string) string {
	return namespaced("deliveryperson:cnpj", cnpj)
}

func RentalKey(deliveryPersonID uuid.UUID) string {
	return namespaced("rental:deliveryperson", deliveryPersonID.String())
}

func namespaced(namespace, key string) string {
	return fmt.Sprintf("%s:%s", namespace, key)
}
