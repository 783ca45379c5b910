package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/nurpe/moto-rental/internal/model"
)

// Enqueuer is the part of *asynq.Client the producer needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Producer struct {
	client    Enqueuer
	queueName string
	log       zerolog.Logger
}

func NewProducer(client Enqueuer, queueName string, log zerolog.Logger) *Producer {
	return &Producer{client: client, queueName: queueName, log: log}
}

func (p *Producer) PublishMotoRegistered(ctx context.Context, moto model.Moto) error {
	task, err := NewMotoRegisteredTask(p.queueName, moto)
	if err != nil {
		return err
	}
	info, err := p.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TaskMotoRegistered, err)
	}
	p.log.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("moto_id", moto.ID.String()).
		Msg("moto registration enqueued")
	return nil
}
