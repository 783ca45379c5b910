package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/moto-rental/internal/model"
	"github.com/nurpe/moto-rental/internal/pricing"
)

const dateLayout = "2006-01-02"

type motoResponse struct {
	ID        uuid.UUID `json:"id"`
	Year      int       `json:"year"`
	Model     string    `json:"model"`
	Plate     string    `json:"plate"`
	CreatedAt time.Time `json:"created_at"`
}

func newMotoResponse(moto model.Moto) motoResponse {
	return motoResponse{
		ID:        moto.ID,
		Year:      moto.Year,
		Model:     moto.Model,
		Plate:     moto.Plate,
		CreatedAt: moto.CreatedAt,
	}
}

type motoPageResponse struct {
	Items      []motoResponse `json:"items"`
	TotalCount int64          `json:"total_count"`
	PageNumber int            `json:"page_number"`
	PageSize   int            `json:"page_size"`
}

type deliveryPersonResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	CNPJ        string    `json:"cnpj"`
	BirthDate   string    `json:"birth_date"`
	CnhNumber   string    `json:"cnh_number"`
	CnhType     string    `json:"cnh_type"`
	CnhImageURL string    `json:"cnh_image_url"`
}

func newDeliveryPersonResponse(person model.DeliveryPerson) deliveryPersonResponse {
	return deliveryPersonResponse{
		ID:          person.ID,
		Name:        person.Name,
		CNPJ:        person.CNPJ.String(),
		BirthDate:   person.BirthDate.Format(dateLayout),
		CnhNumber:   person.License.Number(),
		CnhType:     person.License.Category().String(),
		CnhImageURL: person.CnhImageURL,
	}
}

type rentalResponse struct {
	ID               uuid.UUID `json:"id"`
	MotoID           uuid.UUID `json:"moto_id"`
	DeliveryPersonID uuid.UUID `json:"delivery_person_id"`
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date"`
	Plan             string    `json:"plan"`
	PlanDays         int       `json:"plan_days"`
}

func newRentalResponse(rental model.Rental) rentalResponse {
	return rentalResponse{
		ID:               rental.ID,
		MotoID:           rental.MotoID,
		DeliveryPersonID: rental.DeliveryPersonID,
		StartDate:        rental.StartDate.Format(dateLayout),
		EndDate:          rental.EndDate.Format(dateLayout),
		Plan:             rental.PlanType.String(),
		PlanDays:         rental.PlanType.Days(),
	}
}

type costResponse struct {
	RentalID   uuid.UUID            `json:"rental_id"`
	Timing     pricing.ReturnTiming `json:"timing"`
	ReturnDate string               `json:"return_date"`
	RentedDays int                  `json:"rented_days"`
	EarlyDays  int                  `json:"early_days"`
	LateDays   int                  `json:"late_days"`
	DailyRate  decimal.Decimal      `json:"daily_rate"`
	Base       decimal.Decimal      `json:"base"`
	Surcharge  decimal.Decimal      `json:"surcharge"`
	Total      decimal.Decimal      `json:"total"`
}

func newCostResponse(rental model.Rental, quote pricing.Quote) costResponse {
	return costResponse{
		RentalID:   rental.ID,
		Timing:     quote.Timing,
		ReturnDate: quote.ReturnDate.Format(dateLayout),
		RentedDays: quote.RentedDays,
		EarlyDays:  quote.EarlyDays,
		LateDays:   quote.LateDays,
		DailyRate:  quote.DailyRate,
		Base:       quote.Base,
		Surcharge:  quote.Surcharge,
		Total:      quote.Total,
	}
}
