package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/moto-rental/internal/auth"
	"github.com/nurpe/moto-rental/internal/http/middleware"
	"github.com/nurpe/moto-rental/internal/model"
	"github.com/nurpe/moto-rental/internal/pricing"
	"github.com/nurpe/moto-rental/internal/service"
)

type MotoService interface {
	Register(ctx context.Context, input service.RegisterMotoInput) (*model.Moto, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Moto, error)
	List(ctx context.Context, input service.ListMotosInput) (*model.MotoPage, error)
	Export(ctx context.Context, plate string) (*service.ExportResult, error)
	UpdatePlate(ctx context.Context, id uuid.UUID, plate string) (*model.Moto, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DeliveryPersonService interface {
	Register(ctx context.Context, input service.RegisterDeliveryPersonInput) (*model.DeliveryPerson, error)
	UploadCnhImage(ctx context.Context, id uuid.UUID, image []byte) (string, error)
}

type RentalService interface {
	Create(ctx context.Context, input service.CreateRentalInput) (*model.Rental, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Rental, error)
	CalculateCost(ctx context.Context, id uuid.UUID, returnDate time.Time) (*service.CostResult, error)
	Statement(ctx context.Context, id uuid.UUID, returnDate time.Time) (*service.StatementResult, error)
}

type TokenIssuer interface {
	Issue(role string) (string, time.Time, error)
}

type Handler struct {
	motos   MotoService
	people  DeliveryPersonService
	rentals RentalService
	tokens  TokenIssuer
	log     zerolog.Logger
}

func NewHandler(
	motos MotoService,
	people DeliveryPersonService,
	rentals RentalService,
	tokens TokenIssuer,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		motos:   motos,
		people:  people,
		rentals: rentals,
		tokens:  tokens,
		log:     log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/token/:role", h.issueToken)

	admin := router.Group("/motos")
	admin.Use(authMiddleware, middleware.RequireRole(model.RoleAdmin))
	admin.POST("", h.registerMoto)
	admin.GET("", h.listMotos)
	admin.GET("/export", h.exportMotos)
	admin.GET("/:id", h.getMoto)
	admin.PUT("/:id", h.updateMotoPlate)
	admin.DELETE("/:id", h.deleteMoto)

	user := router.Group("/")
	user.Use(authMiddleware, middleware.RequireRole(model.RoleUser))
	user.POST("/delivery-persons", h.registerDeliveryPerson)
	user.POST("/delivery-persons/:id/cnh", h.uploadCnhImage)
	user.POST("/rentals", h.createRental)
	user.GET("/rentals/:id", h.getRental)
	user.POST("/rentals/:id/cost", h.calculateCost)
	user.GET("/rentals/:id/statement", h.rentalStatement)
}

func (h *Handler) issueToken(c *gin.Context) {
	token, expiresAt, err := h.tokens.Issue(c.Param("role"))
	if err != nil {
		if errors.Is(err, auth.ErrUnknownRole) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("issue token failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expiresAt.UTC(),
	})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, pricing.ErrInvalidPlanDuration),
		errors.Is(err, pricing.ErrEndDateBeforeStartDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrLicenseIneligible):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyExists),
		errors.Is(err, service.ErrMotoHasRentals),
		errors.Is(err, service.ErrMotoUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
