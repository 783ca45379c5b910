package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/moto-rental/internal/cache"
	"github.com/nurpe/moto-rental/internal/model"
	"github.com/nurpe/moto-rental/internal/pricing"
)

const (
	maxNameLength = 100
	minRiderAge   = 18
)

var cnhNumberPattern = regexp.MustCompile(`^[0-9]{11}$`)

// Accepted CNH image formats keyed by sniffed content type.
var cnhImageExtensions = map[string]string{
	"image/png": ".png",
	"image/bmp": ".bmp",
}

type DeliveryPersonRepository interface {
	Create(ctx context.Context, person model.DeliveryPerson) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.DeliveryPerson, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*model.DeliveryPerson, error)
	GetByCnhNumber(ctx context.Context, number string) (*model.DeliveryPerson, error)
	UpdateCnhImage(ctx context.Context, id uuid.UUID, url string) error
}

type ImageStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

type DeliveryPersonService struct {
	people DeliveryPersonRepository
	images ImageStorage
	guard  DuplicateGuard
	log    zerolog.Logger
	now    func() time.Time
}

type RegisterDeliveryPersonInput struct {
	Name      string
	CNPJ      string
	BirthDate time.Time
	CnhNumber string
	CnhType   string
	CnhImage  []byte
}

func NewDeliveryPersonService(
	people DeliveryPersonRepository,
	images ImageStorage,
	guard DuplicateGuard,
	log zerolog.Logger,
) *DeliveryPersonService {
	return &DeliveryPersonService{
		people: people,
		images: images,
		guard:  guard,
		log:    log,
		now:    time.Now,
	}
}

func (s *DeliveryPersonService) Register(ctx context.Context, input RegisterDeliveryPersonInput) (*model.DeliveryPerson, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > maxNameLength {
		return nil, fmt.Errorf("%w: name must have 1 to %d characters", ErrInvalidInput, maxNameLength)
	}
	cnpj, err := model.NewCNPJ(input.CNPJ)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.BirthDate.IsZero() {
		return nil, fmt.Errorf("%w: birth_date is required", ErrInvalidInput)
	}
	birthDate := pricing.DateOnly(input.BirthDate)
	if birthDate.AddDate(minRiderAge, 0, 0).After(pricing.DateOnly(s.now())) {
		return nil, fmt.Errorf("%w: delivery person must be at least %d years old", ErrInvalidInput, minRiderAge)
	}
	number := strings.TrimSpace(input.CnhNumber)
	if !cnhNumberPattern.MatchString(number) {
		return nil, fmt.Errorf("%w: cnh_number must have 11 digits", ErrInvalidInput)
	}
	license, err := model.NewLicense(number, input.CnhType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	contentType, ext, err := sniffCnhImage(input.CnhImage)
	if err != nil {
		return nil, err
	}

	key := cache.DeliveryPersonKey(cnpj.String())
	claimed, err := s.guard.Claim(ctx, key)
	if err != nil {
		return nil, err
	}
	if !claimed {
		s.log.Warn().Str("cnpj", cnpj.String()).Msg("duplicate delivery person registration rejected")
		return nil, fmt.Errorf("%w: delivery person with cnpj %s was registered recently", ErrAlreadyExists, cnpj)
	}

	person := model.DeliveryPerson{
		ID:        uuid.New(),
		Name:      name,
		CNPJ:      cnpj,
		BirthDate: birthDate,
		License:   license,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store(ctx, &person, input.CnhImage, contentType, ext); err != nil {
		release(ctx, s.guard, s.log, key)
		return nil, err
	}

	s.log.Info().
		Str("delivery_person_id", person.ID.String()).
		Str("license", person.License.String()).
		Msg("delivery person registered")
	return &person, nil
}

// store checks uniqueness, uploads the CNH image and inserts the person. The
// uploaded object is removed again when the insert fails.
func (s *DeliveryPersonService) store(ctx context.Context, person *model.DeliveryPerson, image []byte, contentType, ext string) error {
	if err := ensureAbsent(s.people.GetByCNPJ(ctx, person.CNPJ.String())); err != nil {
		return fmt.Errorf("cnpj %s: %w", person.CNPJ, err)
	}
	number := person.License.Number()
	if err := ensureAbsent(s.people.GetByCnhNumber(ctx, number)); err != nil {
		return fmt.Errorf("cnh number %s: %w", number, err)
	}

	objectKey := cnhObjectKey(person.ID, ext)
	url, err := s.images.Upload(ctx, objectKey, image, contentType)
	if err != nil {
		return err
	}
	person.CnhImageURL = url

	if err := s.people.Create(ctx, *person); err != nil {
		if rmErr := s.images.Remove(context.WithoutCancel(ctx), objectKey); rmErr != nil {
			s.log.Warn().Err(rmErr).Str("object", objectKey).Msg("failed to remove orphaned cnh image")
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: cnpj %s or cnh number %s: %w", ErrAlreadyExists, person.CNPJ, number, err)
		}
		return err
	}
	return nil
}

func (s *DeliveryPersonService) Get(ctx context.Context, id uuid.UUID) (*model.DeliveryPerson, error) {
	person, err := s.people.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "delivery person")
	}
	return person, nil
}

// UploadCnhImage replaces the stored CNH image of a delivery person.
func (s *DeliveryPersonService) UploadCnhImage(ctx context.Context, id uuid.UUID, image []byte) (string, error) {
	contentType, ext, err := sniffCnhImage(image)
	if err != nil {
		return "", err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return "", err
	}

	url, err := s.images.Upload(ctx, cnhObjectKey(id, ext), image, contentType)
	if err != nil {
		return "", err
	}
	if err := s.people.UpdateCnhImage(ctx, id, url); err != nil {
		return "", err
	}
	s.log.Info().Str("delivery_person_id", id.String()).Msg("cnh image updated")
	return url, nil
}

func sniffCnhImage(data []byte) (string, string, error) {
	if len(data) == 0 {
		return "", "", fmt.Errorf("%w: cnh_image is required", ErrInvalidInput)
	}
	contentType := http.DetectContentType(data)
	ext, ok := cnhImageExtensions[contentType]
	if !ok {
		return "", "", fmt.Errorf("%w: cnh_image must be png or bmp, got %s", ErrInvalidInput, contentType)
	}
	return contentType, ext, nil
}

func cnhObjectKey(id uuid.UUID, ext string) string {
	return "cnh/" + id.String() + ext
}

// ensureAbsent turns a lookup result into ErrAlreadyExists when a record was found.
func ensureAbsent(_ *model.DeliveryPerson, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return err
	default:
		return ErrAlreadyExists
	}
}
