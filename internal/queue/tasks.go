package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/nurpe/moto-rental/internal/model"
)

const TaskMotoRegistered = "moto:registered"

type MotoRegisteredPayload struct {
	ID        uuid.UUID `json:"id"`
	Year      int       `json:"year"`
	Model     string    `json:"model"`
	Plate     string    `json:"plate"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMotoRegisteredTask(queueName string, moto model.Moto) (*asynq.Task, error) {
	payload, err := json.Marshal(MotoRegisteredPayload{
		ID:        moto.ID,
		Year:      moto.Year,
		Model:     moto.Model,
		Plate:     moto.Plate,
		CreatedAt: moto.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", TaskMotoRegistered, err)
	}
	return asynq.NewTask(TaskMotoRegistered, payload,
		asynq.Queue(queueName),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	), nil
}

func (p MotoRegisteredPayload) toModel() model.Moto {
	return model.Moto{
		ID:        p.ID,
		Year:      p.Year,
		Model:     p.Model,
		Plate:     p.Plate,
		CreatedAt: p.CreatedAt,
	}
}
