package service

import (
	"context"

	"github.com/rs/zerolog"
)

// DuplicateGuard rejects repeated registrations of the same business key
// within a short window.
type DuplicateGuard interface {
	Claim(ctx context.Context, key string) (bool, error)
	Forget(ctx context.Context, key string) error
}

// release drops a claimed key after the operation it protected failed.
func release(ctx context.Context, guard DuplicateGuard, log zerolog.Logger, key string) {
	if err := guard.Forget(context.WithoutCancel(ctx), key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to release guard key")
	}
}
