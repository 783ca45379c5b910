package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/moto-rental/internal/model"
)

type MotoRepository struct {
	db *gorm.DB
}

func NewMotoRepository(db *gorm.DB) *MotoRepository {
	return &MotoRepository{db: db}
}

func (r *MotoRepository) Create(ctx context.Context, moto model.Moto) error {
	row := motoRow{
		ID:        moto.ID,
		Year:      moto.Year,
		Model:     moto.Model,
		Plate:     moto.Plate,
		CreatedAt: moto.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// GetByID returns gorm.ErrRecordNotFound for missing or deleted motos.
func (r *MotoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Moto, error) {
	var row motoRow
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, false).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	moto := row.toModel()
	return &moto, nil
}

func (r *MotoRepository) GetByPlate(ctx context.Context, plate string) (*model.Moto, error) {
	var row motoRow
	err := r.db.WithContext(ctx).
		Where("plate = ? AND deleted = ?", plate, false).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	moto := row.toModel()
	return &moto, nil
}

func (r *MotoRepository) List(ctx context.Context, plate string, page, pageSize int) (*model.MotoPage, error) {
	query := r.filtered(ctx, plate)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []motoRow
	err := query.
		Order("created_at ASC, id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]model.Moto, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toModel())
	}
	return &model.MotoPage{
		Items:      items,
		TotalCount: total,
		PageNumber: page,
		PageSize:   pageSize,
	}, nil
}

func (r *MotoRepository) ListAll(ctx context.Context, plate string) ([]model.Moto, error) {
	var rows []motoRow
	if err := r.filtered(ctx, plate).Order("plate ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	motos := make([]model.Moto, 0, len(rows))
	for _, row := range rows {
		motos = append(motos, row.toModel())
	}
	return motos, nil
}

func (r *MotoRepository) UpdatePlate(ctx context.Context, id uuid.UUID, plate string) error {
	return r.db.WithContext(ctx).
		Model(&motoRow{}).
		Where("id = ?", id).
		Update("plate", plate).Error
}

func (r *MotoRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&motoRow{}).
		Where("id = ?", id).
		Update("deleted", true).Error
}

func (r *MotoRepository) filtered(ctx context.Context, plate string) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&motoRow{}).Where("deleted = ?", false)
	if plate = strings.TrimSpace(plate); plate != "" {
		query = query.Where("plate LIKE ?", "%"+plate+"%")
	}
	return query
}
