package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/moto-rental/internal/cache"
	"github.com/nurpe/moto-rental/internal/model"
	"github.com/nurpe/moto-rental/internal/pricing"
)

type RentalRepository interface {
	Create(ctx context.Context, rental model.Rental) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Rental, error)
	HasOverlap(ctx context.Context, motoID uuid.UUID, start, end time.Time) (bool, error)
}

type PersonLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.DeliveryPerson, error)
}

type MotoLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Moto, error)
}

type StatementGenerator interface {
	Generate(rental model.Rental, quote pricing.Quote) ([]byte, error)
}

type RentalService struct {
	rentals           RentalRepository
	people            PersonLookup
	motos             MotoLookup
	guard             DuplicateGuard
	statements        StatementGenerator
	checkAvailability bool
	log               zerolog.Logger
	now               func() time.Time
}

type CreateRentalInput struct {
	DeliveryPersonID uuid.UUID
	MotoID           uuid.UUID
	EndDate          time.Time
	// Plan, when set, must match the plan implied by the requested period.
	Plan *model.RentalPlanType
}

type CostResult struct {
	Rental model.Rental
	Quote  pricing.Quote
}

type StatementResult struct {
	FileName string
	Content  []byte
}

func NewRentalService(
	rentals RentalRepository,
	people PersonLookup,
	motos MotoLookup,
	guard DuplicateGuard,
	statements StatementGenerator,
	checkAvailability bool,
	log zerolog.Logger,
) *RentalService {
	return &RentalService{
		rentals:           rentals,
		people:            people,
		motos:             motos,
		guard:             guard,
		statements:        statements,
		checkAvailability: checkAvailability,
		log:               log,
		now:               time.Now,
	}
}

// Create books a rental starting tomorrow and ending on input.EndDate.
func (s *RentalService) Create(ctx context.Context, input CreateRentalInput) (*model.Rental, error) {
	if input.DeliveryPersonID == uuid.Nil || input.MotoID == uuid.Nil {
		return nil, fmt.Errorf("%w: delivery_person_id and moto_id are required", ErrInvalidInput)
	}
	if input.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: end_date is required", ErrInvalidInput)
	}

	start := pricing.AddDays(s.now().UTC(), 1)
	end := pricing.DateOnly(input.EndDate)
	plan, err := pricing.Classify(start, end)
	if err != nil {
		return nil, err
	}
	if input.Plan != nil && *input.Plan != plan {
		return nil, fmt.Errorf("%w: requested plan %s does not match the %s period", ErrInvalidInput, *input.Plan, plan)
	}

	key := cache.RentalKey(input.DeliveryPersonID)
	claimed, err := s.guard.Claim(ctx, key)
	if err != nil {
		return nil, err
	}
	if !claimed {
		s.log.Warn().Str("delivery_person_id", input.DeliveryPersonID.String()).Msg("duplicate rental rejected")
		return nil, fmt.Errorf("%w: delivery person %s booked a rental recently", ErrAlreadyExists, input.DeliveryPersonID)
	}

	rental, err := s.book(ctx, input, start, plan)
	if err != nil {
		release(ctx, s.guard, s.log, key)
		return nil, err
	}

	s.log.Info().
		Str("rental_id", rental.ID.String()).
		Str("moto_id", rental.MotoID.String()).
		Str("plan", plan.String()).
		Msg("rental created")
	return rental, nil
}

func (s *RentalService) book(ctx context.Context, input CreateRentalInput, start time.Time, plan model.RentalPlanType) (*model.Rental, error) {
	end, err := pricing.EndDateFor(start, plan)
	if err != nil {
		return nil, err
	}

	person, err := s.people.GetByID(ctx, input.DeliveryPersonID)
	if err != nil {
		return nil, translateNotFound(err, "delivery person")
	}
	if err := CheckEligibility(*person); err != nil {
		s.log.Warn().
			Str("delivery_person_id", person.ID.String()).
			Str("license", person.License.String()).
			Msg("rental refused, license not eligible")
		return nil, err
	}
	if _, err := s.motos.GetByID(ctx, input.MotoID); err != nil {
		return nil, translateNotFound(err, "moto")
	}

	if s.checkAvailability {
		busy, err := s.rentals.HasOverlap(ctx, input.MotoID, start, end)
		if err != nil {
			return nil, err
		}
		if busy {
			return nil, fmt.Errorf("%w: moto %s", ErrMotoUnavailable, input.MotoID)
		}
	}

	rental := model.Rental{
		ID:               uuid.New(),
		MotoID:           input.MotoID,
		DeliveryPersonID: input.DeliveryPersonID,
		StartDate:        start,
		EndDate:          end,
		PlanType:         plan,
		CreatedAt:        s.now().UTC(),
	}
	if err := s.rentals.Create(ctx, rental); err != nil {
		return nil, err
	}
	return &rental, nil
}

func (s *RentalService) Get(ctx context.Context, id uuid.UUID) (*model.Rental, error) {
	rental, err := s.rentals.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "rental")
	}
	return rental, nil
}

// CalculateCost prices returning the rental on returnDate.
func (s *RentalService) CalculateCost(ctx context.Context, id uuid.UUID, returnDate time.Time) (*CostResult, error) {
	if returnDate.IsZero() {
		return nil, fmt.Errorf("%w: return_date is required", ErrInvalidInput)
	}
	rental, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	quote, err := pricing.QuoteReturn(*rental, returnDate)
	if err != nil {
		return nil, err
	}
	return &CostResult{Rental: *rental, Quote: quote}, nil
}

func (s *RentalService) Statement(ctx context.Context, id uuid.UUID, returnDate time.Time) (*StatementResult, error) {
	cost, err := s.CalculateCost(ctx, id, returnDate)
	if err != nil {
		return nil, err
	}
	content, err := s.statements.Generate(cost.Rental, cost.Quote)
	if err != nil {
		return nil, err
	}
	return &StatementResult{
		FileName: fmt.Sprintf("rental-%s-%s.pdf", id, cost.Quote.ReturnDate.Format("20060102")),
		Content:  content,
	}, nil
}
