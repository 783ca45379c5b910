package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/moto-rental/internal/model"
)

type RentalRepository struct {
	db *gorm.DB
}

func NewRentalRepository(db *gorm.DB) *RentalRepository {
	return &RentalRepository{db: db}
}

func (r *RentalRepository) Create(ctx context.Context, rental model.Rental) error {
	row := rentalRow{
		ID:               rental.ID,
		MotoID:           rental.MotoID,
		DeliveryPersonID: rental.DeliveryPersonID,
		StartDate:        rental.StartDate,
		EndDate:          rental.EndDate,
		PlanType:         int(rental.PlanType),
		CreatedAt:        rental.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *RentalRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Rental, error) {
	var row rentalRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	rental := row.toModel()
	return &rental, nil
}

func (r *RentalRepository) ExistsByMotoID(ctx context.Context, motoID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM rentals WHERE moto_id = ?
	`, motoID).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasOverlap reports whether the moto has a rental whose period intersects
// [start, end].
func (r *RentalRepository) HasOverlap(ctx context.Context, motoID uuid.UUID, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM rentals
		WHERE moto_id = ?
			AND start_date <= ?
			AND end_date >= ?
	`, motoID, end, start).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
