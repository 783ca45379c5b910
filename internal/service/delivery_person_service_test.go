package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nurpe/moto-rental/internal/cache"
	"github.com/nurpe/moto-rental/internal/model"
)

var (
	pngImage  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	bmpImage  = []byte("BM\x36\x00\x00\x00\x00\x00\x00\x00\x36\x00\x00\x00")
	jpegImage = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
)

type personFixture struct {
	svc     *DeliveryPersonService
	people  *fakePeopleRepo
	storage *fakeStorage
	guard   *fakeGuard
}

func newPersonFixture(people ...model.DeliveryPerson) *personFixture {
	f := &personFixture{
		people:  newFakePeopleRepo(people...),
		storage: &fakeStorage{},
		guard:   newFakeGuard(),
	}
	f.svc = NewDeliveryPersonService(f.people, f.storage, f.guard, zerolog.Nop())
	f.svc.now = fixedClock(time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC))
	return f
}

func validPersonInput() RegisterDeliveryPersonInput {
	return RegisterDeliveryPersonInput{
		Name:      "Joana Silva",
		CNPJ:      "11.222.333/0001-81",
		BirthDate: time.Date(1995, time.July, 10, 0, 0, 0, 0, time.UTC),
		CnhNumber: "12345678901",
		CnhType:   "a",
		CnhImage:  pngImage,
	}
}

func TestRegisterDeliveryPerson(t *testing.T) {
	f := newPersonFixture()

	person, err := f.svc.Register(context.Background(), validPersonInput())
	require.NoError(t, err)
	require.Equal(t, "11222333000181", person.CNPJ.String())
	require.Equal(t, model.LicenseA, person.License.Category())

	key := "cnh/" + person.ID.String() + ".png"
	require.Equal(t, "image/png", f.storage.uploads[key])
	require.Equal(t, "http://minio.local/cnh-images/"+key, person.CnhImageURL)
	require.Len(t, f.people.created, 1)
	require.True(t, f.guard.keys[cache.DeliveryPersonKey("11222333000181")])
}

func TestRegisterDeliveryPersonAcceptsBMP(t *testing.T) {
	f := newPersonFixture()
	input := validPersonInput()
	input.CnhImage = bmpImage

	person, err := f.svc.Register(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, "image/bmp", f.storage.uploads["cnh/"+person.ID.String()+".bmp"])
}

func TestRegisterDeliveryPersonValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterDeliveryPersonInput)
	}{
		{"empty name", func(in *RegisterDeliveryPersonInput) { in.Name = " " }},
		{"bad cnpj", func(in *RegisterDeliveryPersonInput) { in.CNPJ = "11.222.333/0001-82" }},
		{"missing birth date", func(in *RegisterDeliveryPersonInput) { in.BirthDate = time.Time{} }},
		{"under age", func(in *RegisterDeliveryPersonInput) {
			in.BirthDate = time.Date(2006, time.May, 2, 0, 0, 0, 0, time.UTC)
		}},
		{"short cnh", func(in *RegisterDeliveryPersonInput) { in.CnhNumber = "1234" }},
		{"unknown category", func(in *RegisterDeliveryPersonInput) { in.CnhType = "C" }},
		{"jpeg image", func(in *RegisterDeliveryPersonInput) { in.CnhImage = jpegImage }},
		{"missing image", func(in *RegisterDeliveryPersonInput) { in.CnhImage = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPersonFixture()
			input := validPersonInput()
			tt.mutate(&input)

			_, err := f.svc.Register(context.Background(), input)
			require.ErrorIs(t, err, ErrInvalidInput)
			require.Empty(t, f.people.created)
		})
	}
}

func TestRegisterDeliveryPersonTurningEighteenToday(t *testing.T) {
	f := newPersonFixture()
	input := validPersonInput()
	input.BirthDate = time.Date(2006, time.May, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.Register(context.Background(), input)
	require.NoError(t, err)
}

func TestRegisterDeliveryPersonDuplicates(t *testing.T) {
	existing, err := newPersonFixture().svc.Register(context.Background(), validPersonInput())
	require.NoError(t, err)

	t.Run("cnpj taken", func(t *testing.T) {
		f := newPersonFixture(*existing)
		input := validPersonInput()
		input.CnhNumber = "99999999999"

		_, err := f.svc.Register(context.Background(), input)
		require.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("cnh taken", func(t *testing.T) {
		f := newPersonFixture(*existing)
		input := validPersonInput()
		input.CNPJ = "11444777000161"

		_, err := f.svc.Register(context.Background(), input)
		require.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("recently registered", func(t *testing.T) {
		f := newPersonFixture()
		f.guard.keys[cache.DeliveryPersonKey("11222333000181")] = true

		_, err := f.svc.Register(context.Background(), validPersonInput())
		require.ErrorIs(t, err, ErrAlreadyExists)
	})
}

func TestRegisterDeliveryPersonInsertFailure(t *testing.T) {
	tests := []struct {
		name      string
		createErr error
		want      error
	}{
		{"unique index", gorm.ErrDuplicatedKey, ErrAlreadyExists},
		{"database down", errors.New("connection refused"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPersonFixture()
			f.people.createErr = tt.createErr

			_, err := f.svc.Register(context.Background(), validPersonInput())
			require.ErrorIs(t, err, tt.createErr)
			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
			}
			require.Empty(t, f.storage.uploads)
			require.Len(t, f.storage.removed, 1)
			require.Contains(t, f.storage.removed[0], "cnh/")
			require.False(t, f.guard.keys[cache.DeliveryPersonKey("11222333000181")])
		})
	}
}

func TestUploadCnhImage(t *testing.T) {
	person := personWithLicense(t, "A")
	person.ID = uuid.New()
	f := newPersonFixture(person)

	url, err := f.svc.UploadCnhImage(context.Background(), person.ID, bmpImage)
	require.NoError(t, err)
	require.Equal(t, url, f.people.images[person.ID])

	_, err = f.svc.UploadCnhImage(context.Background(), uuid.New(), pngImage)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.UploadCnhImage(context.Background(), person.ID, jpegImage)
	require.ErrorIs(t, err, ErrInvalidInput)
}
