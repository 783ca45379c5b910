package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/moto-rental/internal/model"
)

type motoRow struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Year      int       `gorm:"not null"`
	Model     string    `gorm:"size:100;not null"`
	Plate     string    `gorm:"size:7;not null;uniqueIndex:uq_motos_plate_active,where:deleted = false"`
	Deleted   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (motoRow) TableName() string { return "motos" }

func (r motoRow) toModel() model.Moto {
	return model.Moto{
		ID:        r.ID,
		Year:      r.Year,
		Model:     r.Model,
		Plate:     r.Plate,
		Deleted:   r.Deleted,
		CreatedAt: r.CreatedAt,
	}
}

type deliveryPersonRow struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:100;not null"`
	CNPJ        string    `gorm:"column:cnpj;size:14;not null;uniqueIndex"`
	BirthDate   time.Time `gorm:"type:date;not null"`
	CnhNumber   string    `gorm:"size:11;not null;uniqueIndex"`
	CnhType     string    `gorm:"size:4;not null"`
	CnhImageURL string    `gorm:"not null;default:''"`
	CreatedAt   time.Time
}

func (deliveryPersonRow) TableName() string { return "delivery_persons" }

func (r deliveryPersonRow) toModel() (model.DeliveryPerson, error) {
	cnpj, err := model.NewCNPJ(r.CNPJ)
	if err != nil {
		return model.DeliveryPerson{}, fmt.Errorf("delivery person %s: %w", r.ID, err)
	}
	license, err := model.NewLicense(r.CnhNumber, r.CnhType)
	if err != nil {
		return model.DeliveryPerson{}, fmt.Errorf("delivery person %s: %w", r.ID, err)
	}
	return model.DeliveryPerson{
		ID:          r.ID,
		Name:        r.Name,
		CNPJ:        cnpj,
		BirthDate:   r.BirthDate,
		License:     license,
		CnhImageURL: r.CnhImageURL,
		CreatedAt:   r.CreatedAt,
	}, nil
}

func deliveryPersonRowFrom(p model.DeliveryPerson) deliveryPersonRow {
	return deliveryPersonRow{
		ID:          p.ID,
		Name:        p.Name,
		CNPJ:        p.CNPJ.String(),
		BirthDate:   p.BirthDate,
		CnhNumber:   p.License.Number(),
		CnhType:     p.License.Category().String(),
		CnhImageURL: p.CnhImageURL,
		CreatedAt:   p.CreatedAt,
	}
}

type rentalRow struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	MotoID           uuid.UUID `gorm:"type:uuid;not null;index"`
	DeliveryPersonID uuid.UUID `gorm:"type:uuid;not null;index"`
	StartDate        time.Time `gorm:"type:date;not null"`
	EndDate          time.Time `gorm:"type:date;not null"`
	PlanType         int       `gorm:"not null"`
	CreatedAt        time.Time
}

func (rentalRow) TableName() string { return "rentals" }

func (r rentalRow) toModel() model.Rental {
	return model.Rental{
		ID:               r.ID,
		MotoID:           r.MotoID,
		DeliveryPersonID: r.DeliveryPersonID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		PlanType:         model.RentalPlanType(r.PlanType),
		CreatedAt:        r.CreatedAt,
	}
}

// Models lists the row types backing the repositories, for schema setup in tests.
func Models() []any {
	return []any{&motoRow{}, &deliveryPersonRow{}, &rentalRow{}}
}
