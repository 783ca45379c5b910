package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/moto-rental/internal/model"
)

type MotoStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Moto, error)
	Create(ctx context.Context, moto model.Moto) error
}

// Consumer persists motos announced on the registration queue.
type Consumer struct {
	motos        MotoStore
	acceptedYear int
	log          zerolog.Logger
}

func NewConsumer(motos MotoStore, acceptedYear int, log zerolog.Logger) *Consumer {
	return &Consumer{motos: motos, acceptedYear: acceptedYear, log: log}
}

func (c *Consumer) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskMotoRegistered, c.HandleMotoRegistered)
}

func (c *Consumer) HandleMotoRegistered(ctx context.Context, t *asynq.Task) error {
	var payload MotoRegisteredPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		c.log.Error().Err(err).Str("task_type", t.Type()).Msg("invalid moto registration payload")
		return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
	}

	log := c.log.With().
		Str("task_type", t.Type()).
		Str("moto_id", payload.ID.String()).
		Str("plate", payload.Plate).
		Int("year", payload.Year).
		Logger()

	if payload.Year != c.acceptedYear {
		log.Info().Int("accepted_year", c.acceptedYear).Msg("moto year not accepted, skipping")
		return nil
	}

	// Redelivered tasks must not fail on the primary key.
	_, err := c.motos.GetByID(ctx, payload.ID)
	switch {
	case err == nil:
		log.Info().Msg("moto already stored")
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("lookup moto %s: %w", payload.ID, err)
	}

	err = c.motos.Create(ctx, payload.toModel())
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		log.Warn().Err(err).Msg("plate already taken by an active moto, dropping task")
		return fmt.Errorf("store moto %s: %v: %w", payload.ID, err, asynq.SkipRetry)
	case err != nil:
		log.Error().Err(err).Msg("failed to store moto")
		return fmt.Errorf("store moto %s: %w", payload.ID, err)
	}
	log.Info().Msg("moto stored")
	return nil
}
