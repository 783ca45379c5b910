package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/moto-rental/internal/model"
	"github.com/nurpe/moto-rental/internal/pricing"
)

type fakeGuard struct {
	mu       sync.Mutex
	keys     map[string]bool
	claimErr error
	released []string
}

func newFakeGuard() *fakeGuard {
	return &fakeGuard{keys: map[string]bool{}}
}

func (g *fakeGuard) Claim(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.claimErr != nil {
		return false, g.claimErr
	}
	if g.keys[key] {
		return false, nil
	}
	g.keys[key] = true
	return true, nil
}

func (g *fakeGuard) Forget(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.keys, key)
	g.released = append(g.released, key)
	return nil
}

type fakeMotoRepo struct {
	motos      map[uuid.UUID]model.Moto
	listFn     func(ctx context.Context, plate string, page, pageSize int) (*model.MotoPage, error)
	updateErr  error
	softDelete []uuid.UUID
}

func newFakeMotoRepo(motos ...model.Moto) *fakeMotoRepo {
	repo := &fakeMotoRepo{motos: map[uuid.UUID]model.Moto{}}
	for _, moto := range motos {
		repo.motos[moto.ID] = moto
	}
	return repo
}

func (r *fakeMotoRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Moto, error) {
	moto, ok := r.motos[id]
	if !ok || moto.Deleted {
		return nil, gorm.ErrRecordNotFound
	}
	return &moto, nil
}

func (r *fakeMotoRepo) GetByPlate(_ context.Context, plate string) (*model.Moto, error) {
	for _, moto := range r.motos {
		if moto.Plate == plate && !moto.Deleted {
			return &moto, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMotoRepo) List(ctx context.Context, plate string, page, pageSize int) (*model.MotoPage, error) {
	if r.listFn != nil {
		return r.listFn(ctx, plate, page, pageSize)
	}
	return &model.MotoPage{PageNumber: page, PageSize: pageSize}, nil
}

func (r *fakeMotoRepo) ListAll(_ context.Context, _ string) ([]model.Moto, error) {
	motos := make([]model.Moto, 0, len(r.motos))
	for _, moto := range r.motos {
		motos = append(motos, moto)
	}
	return motos, nil
}

func (r *fakeMotoRepo) UpdatePlate(_ context.Context, id uuid.UUID, plate string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	moto := r.motos[id]
	moto.Plate = plate
	r.motos[id] = moto
	return nil
}

func (r *fakeMotoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.softDelete = append(r.softDelete, id)
	moto := r.motos[id]
	moto.Deleted = true
	r.motos[id] = moto
	return nil
}

type fakeRentalRepo struct {
	rentals    map[uuid.UUID]model.Rental
	overlapFn  func(motoID uuid.UUID, start, end time.Time) bool
	existsByID map[uuid.UUID]bool
}

func newFakeRentalRepo(rentals ...model.Rental) *fakeRentalRepo {
	repo := &fakeRentalRepo{rentals: map[uuid.UUID]model.Rental{}, existsByID: map[uuid.UUID]bool{}}
	for _, rental := range rentals {
		repo.rentals[rental.ID] = rental
		repo.existsByID[rental.MotoID] = true
	}
	return repo
}

func (r *fakeRentalRepo) Create(_ context.Context, rental model.Rental) error {
	r.rentals[rental.ID] = rental
	r.existsByID[rental.MotoID] = true
	return nil
}

func (r *fakeRentalRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Rental, error) {
	rental, ok := r.rentals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &rental, nil
}

func (r *fakeRentalRepo) ExistsByMotoID(_ context.Context, motoID uuid.UUID) (bool, error) {
	return r.existsByID[motoID], nil
}

func (r *fakeRentalRepo) HasOverlap(_ context.Context, motoID uuid.UUID, start, end time.Time) (bool, error) {
	if r.overlapFn != nil {
		return r.overlapFn(motoID, start, end), nil
	}
	return false, nil
}

type fakePeopleRepo struct {
	people    map[uuid.UUID]model.DeliveryPerson
	created   []model.DeliveryPerson
	images    map[uuid.UUID]string
	createErr error
}

func newFakePeopleRepo(people ...model.DeliveryPerson) *fakePeopleRepo {
	repo := &fakePeopleRepo{people: map[uuid.UUID]model.DeliveryPerson{}, images: map[uuid.UUID]string{}}
	for _, person := range people {
		repo.people[person.ID] = person
	}
	return repo
}

func (r *fakePeopleRepo) Create(_ context.Context, person model.DeliveryPerson) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.people[person.ID] = person
	r.created = append(r.created, person)
	return nil
}

func (r *fakePeopleRepo) GetByID(_ context.Context, id uuid.UUID) (*model.DeliveryPerson, error) {
	person, ok := r.people[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &person, nil
}

func (r *fakePeopleRepo) GetByCNPJ(_ context.Context, cnpj string) (*model.DeliveryPerson, error) {
	for _, person := range r.people {
		if person.CNPJ.String() == cnpj {
			return &person, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePeopleRepo) GetByCnhNumber(_ context.Context, number string) (*model.DeliveryPerson, error) {
	for _, person := range r.people {
		if person.License.Number() == number {
			return &person, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePeopleRepo) UpdateCnhImage(_ context.Context, id uuid.UUID, url string) error {
	r.images[id] = url
	return nil
}

type fakePublisher struct {
	published []model.Moto
	err       error
}

func (p *fakePublisher) PublishMotoRegistered(_ context.Context, moto model.Moto) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, moto)
	return nil
}

type fakeStorage struct {
	uploads map[string]string
	removed []string
}

func (s *fakeStorage) Upload(_ context.Context, key string, _ []byte, contentType string) (string, error) {
	if s.uploads == nil {
		s.uploads = map[string]string{}
	}
	s.uploads[key] = contentType
	return "http://minio.local/cnh-images/" + key, nil
}

func (s *fakeStorage) Remove(_ context.Context, key string) error {
	delete(s.uploads, key)
	s.removed = append(s.removed, key)
	return nil
}

type fakeExcel struct {
	report model.FleetReport
}

func (e *fakeExcel) Generate(report model.FleetReport) ([]byte, error) {
	e.report = report
	return []byte("xlsx"), nil
}

type fakeStatements struct {
	quote pricing.Quote
}

func (f *fakeStatements) Generate(_ model.Rental, quote pricing.Quote) ([]byte, error) {
	f.quote = quote
	return []byte("%PDF-1.3"), nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
