package model

import (
	"time"

	"github.com/google/uuid"
)

type Moto struct {
	ID        uuid.UUID
	Year      int
	Model     string
	Plate     string
	Deleted   bool
	CreatedAt time.Time
}

type MotoPage struct {
	Items      []Moto
	TotalCount int64
	PageNumber int
	PageSize   int
}
