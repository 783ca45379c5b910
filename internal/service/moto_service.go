package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/moto-rental/internal/cache"
	"github.com/nurpe/moto-rental/internal/model"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	maxModelLength  = 100
	minMotoYear     = 1900
)

var platePattern = regexp.MustCompile(`^[A-Z0-9]{7}$`)

type MotoRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Moto, error)
	GetByPlate(ctx context.Context, plate string) (*model.Moto, error)
	List(ctx context.Context, plate string, page, pageSize int) (*model.MotoPage, error)
	ListAll(ctx context.Context, plate string) ([]model.Moto, error)
	UpdatePlate(ctx context.Context, id uuid.UUID, plate string) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type MotoRentalChecker interface {
	ExistsByMotoID(ctx context.Context, motoID uuid.UUID) (bool, error)
}

type MotoPublisher interface {
	PublishMotoRegistered(ctx context.Context, moto model.Moto) error
}

type ExcelGenerator interface {
	Generate(report model.FleetReport) ([]byte, error)
}

type MotoService struct {
	motos     MotoRepository
	rentals   MotoRentalChecker
	publisher MotoPublisher
	guard     DuplicateGuard
	excel     ExcelGenerator
	log       zerolog.Logger
	now       func() time.Time
}

type RegisterMotoInput struct {
	Year  int
	Model string
	Plate string
}

type ListMotosInput struct {
	Plate    string
	Page     int
	PageSize int
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func NewMotoService(
	motos MotoRepository,
	rentals MotoRentalChecker,
	publisher MotoPublisher,
	guard DuplicateGuard,
	excel ExcelGenerator,
	log zerolog.Logger,
) *MotoService {
	return &MotoService{
		motos:     motos,
		rentals:   rentals,
		publisher: publisher,
		guard:     guard,
		excel:     excel,
		log:       log,
		now:       time.Now,
	}
}

// Register validates the moto and announces it on the registration queue.
// The record is persisted asynchronously by the queue consumer.
func (s *MotoService) Register(ctx context.Context, input RegisterMotoInput) (*model.Moto, error) {
	plate := normalizePlate(input.Plate)
	if err := validatePlate(plate); err != nil {
		return nil, err
	}
	modelName := strings.TrimSpace(input.Model)
	if modelName == "" || len(modelName) > maxModelLength {
		return nil, fmt.Errorf("%w: model must have 1 to %d characters", ErrInvalidInput, maxModelLength)
	}
	now := s.now().UTC()
	if input.Year < minMotoYear || input.Year > now.Year()+1 {
		return nil, fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, minMotoYear, now.Year()+1)
	}

	key := cache.MotoPlateKey(plate)
	if err := s.claimPlate(ctx, key, plate); err != nil {
		return nil, err
	}
	if err := s.ensurePlateFree(ctx, plate, uuid.Nil); err != nil {
		release(ctx, s.guard, s.log, key)
		return nil, err
	}

	moto := model.Moto{
		ID:        uuid.New(),
		Year:      input.Year,
		Model:     modelName,
		Plate:     plate,
		CreatedAt: now,
	}
	if err := s.publisher.PublishMotoRegistered(ctx, moto); err != nil {
		release(ctx, s.guard, s.log, key)
		return nil, err
	}

	s.log.Info().Str("moto_id", moto.ID.String()).Str("plate", plate).Msg("moto registration accepted")
	return &moto, nil
}

func (s *MotoService) Get(ctx context.Context, id uuid.UUID) (*model.Moto, error) {
	moto, err := s.motos.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "moto")
	}
	return moto, nil
}

// List returns one page of motos. An empty page is reported as ErrNotFound.
func (s *MotoService) List(ctx context.Context, input ListMotosInput) (*model.MotoPage, error) {
	page, pageSize := clampPage(input.Page, input.PageSize)
	result, err := s.motos.List(ctx, strings.TrimSpace(input.Plate), page, pageSize)
	if err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("%w: no motos on page %d", ErrNotFound, page)
	}
	return result, nil
}

func (s *MotoService) Export(ctx context.Context, plate string) (*ExportResult, error) {
	plate = strings.TrimSpace(plate)
	motos, err := s.motos.ListAll(ctx, plate)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	content, err := s.excel.Generate(model.FleetReport{
		PlateFilter: plate,
		GeneratedAt: now,
		Motos:       motos,
	})
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("motos-%s.xlsx", now.Format("20060102-150405")),
		Content:  content,
	}, nil
}

func (s *MotoService) UpdatePlate(ctx context.Context, id uuid.UUID, rawPlate string) (*model.Moto, error) {
	plate := normalizePlate(rawPlate)
	if err := validatePlate(plate); err != nil {
		return nil, err
	}

	moto, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if moto.Plate == plate {
		return moto, nil
	}

	// The plate may still be waiting on the registration queue.
	key := cache.MotoPlateKey(plate)
	if err := s.claimPlate(ctx, key, plate); err != nil {
		return nil, err
	}
	if err := s.ensurePlateFree(ctx, plate, id); err != nil {
		release(ctx, s.guard, s.log, key)
		return nil, err
	}
	if err := s.motos.UpdatePlate(ctx, id, plate); err != nil {
		release(ctx, s.guard, s.log, key)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: plate %s is already registered: %w", ErrAlreadyExists, plate, err)
		}
		return nil, err
	}

	s.log.Info().
		Str("moto_id", id.String()).
		Str("old_plate", moto.Plate).
		Str("plate", plate).
		Msg("moto plate updated")
	moto.Plate = plate
	return moto, nil
}

// Delete soft-deletes a moto that was never rented.
func (s *MotoService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	rented, err := s.rentals.ExistsByMotoID(ctx, id)
	if err != nil {
		return err
	}
	if rented {
		s.log.Warn().Str("moto_id", id.String()).Msg("delete refused, moto has rentals")
		return fmt.Errorf("%w: moto %s", ErrMotoHasRentals, id)
	}
	if err := s.motos.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("moto_id", id.String()).Msg("moto deleted")
	return nil
}

func (s *MotoService) ensurePlateFree(ctx context.Context, plate string, owner uuid.UUID) error {
	existing, err := s.motos.GetByPlate(ctx, plate)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID == owner:
		return nil
	default:
		return fmt.Errorf("%w: plate %s is already registered", ErrAlreadyExists, plate)
	}
}

func (s *MotoService) claimPlate(ctx context.Context, key, plate string) error {
	claimed, err := s.guard.Claim(ctx, key)
	if err != nil {
		return err
	}
	if !claimed {
		s.log.Warn().Str("plate", plate).Msg("duplicate moto plate rejected")
		return fmt.Errorf("%w: moto with plate %s was registered recently", ErrAlreadyExists, plate)
	}
	return nil
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func validatePlate(plate string) error {
	if !platePattern.MatchString(plate) {
		return fmt.Errorf("%w: plate must have 7 letters or digits", ErrInvalidInput)
	}
	return nil
}

func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func translateNotFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, entity)
	}
	return err
}
