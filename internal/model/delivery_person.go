package model

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryPerson struct {
	ID          uuid.UUID
	Name        string
	CNPJ        CNPJ
	BirthDate   time.Time
	License     License
	CnhImageURL string
	CreatedAt   time.Time
}

// CanRideMotorcycle reports whether the person's license covers category A.
func (p DeliveryPerson) CanRideMotorcycle() bool {
	return p.License.PermitsMotorcycle()
}
