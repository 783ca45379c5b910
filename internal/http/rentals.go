package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/moto-rental/internal/model"
	"github.com/nurpe/moto-rental/internal/service"
)

type createRentalRequest struct {
	DeliveryPersonID string `json:"delivery_person_id" binding:"required"`
	MotoID           string `json:"moto_id" binding:"required"`
	EndDate          string `json:"end_date" binding:"required"`
	// Plan is the plan length in days.
	Plan *int `json:"plan"`
}

type calculateCostRequest struct {
	ReturnDate string `json:"return_date" binding:"required"`
}

func (h *Handler) createRental(c *gin.Context) {
	var req createRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	personID, err := uuid.Parse(strings.TrimSpace(req.DeliveryPersonID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid delivery_person_id"})
		return
	}
	motoID, err := uuid.Parse(strings.TrimSpace(req.MotoID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid moto_id"})
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}

	input := service.CreateRentalInput{
		DeliveryPersonID: personID,
		MotoID:           motoID,
		EndDate:          endDate,
	}
	if req.Plan != nil {
		plan := model.RentalPlanType(*req.Plan)
		if !plan.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan"})
			return
		}
		input.Plan = &plan
	}

	rental, err := h.rentals.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRentalResponse(*rental))
}

func (h *Handler) getRental(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rental, err := h.rentals.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRentalResponse(*rental))
}

func (h *Handler) calculateCost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req calculateCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	returnDate, err := parseDate(req.ReturnDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid return_date"})
		return
	}

	result, err := h.rentals.CalculateCost(c.Request.Context(), id, returnDate)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCostResponse(result.Rental, result.Quote))
}

func (h *Handler) rentalStatement(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	returnDate, err := parseDate(c.Query("return_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid return_date"})
		return
	}

	result, err := h.rentals.Statement(c.Request.Context(), id, returnDate)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}
