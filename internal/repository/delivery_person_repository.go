package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/moto-rental/internal/model"
)

type DeliveryPersonRepository struct {
	db *gorm.DB
}

func NewDeliveryPersonRepository(db *gorm.DB) *DeliveryPersonRepository {
	return &DeliveryPersonRepository{db: db}
}

func (r *DeliveryPersonRepository) Create(ctx context.Context, person model.DeliveryPerson) error {
	row := deliveryPersonRowFrom(person)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *DeliveryPersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DeliveryPerson, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *DeliveryPersonRepository) GetByCNPJ(ctx context.Context, cnpj string) (*model.DeliveryPerson, error) {
	return r.findOne(ctx, "cnpj = ?", cnpj)
}

func (r *DeliveryPersonRepository) GetByCnhNumber(ctx context.Context, number string) (*model.DeliveryPerson, error) {
	return r.findOne(ctx, "cnh_number = ?", number)
}

func (r *DeliveryPersonRepository) UpdateCnhImage(ctx context.Context, id uuid.UUID, url string) error {
	return r.db.WithContext(ctx).
		Model(&deliveryPersonRow{}).
		Where("id = ?", id).
		Update("cnh_image_url", url).Error
}

func (r *DeliveryPersonRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.DeliveryPerson, error) {
	var row deliveryPersonRow
	if err := r.db.WithContext(ctx).Where(query, args...).First(&row).Error; err != nil {
		return nil, err
	}
	person, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &person, nil
}
