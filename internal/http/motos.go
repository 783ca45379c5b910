package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/moto-rental/internal/service"
)

type registerMotoRequest struct {
	Year  int    `json:"year" binding:"required"`
	Model string `json:"model" binding:"required"`
	Plate string `json:"plate" binding:"required"`
}

type updatePlateRequest struct {
	Plate string `json:"plate" binding:"required"`
}

func (h *Handler) registerMoto(c *gin.Context) {
	var req registerMotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	moto, err := h.motos.Register(c.Request.Context(), service.RegisterMotoInput{
		Year:  req.Year,
		Model: req.Model,
		Plate: req.Plate,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"id": moto.ID})
}

func (h *Handler) listMotos(c *gin.Context) {
	page, err := queryInt(c, "page")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}
	pageSize, err := queryInt(c, "page_size")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page_size"})
		return
	}

	result, err := h.motos.List(c.Request.Context(), service.ListMotosInput{
		Plate:    c.Query("plate"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	items := make([]motoResponse, 0, len(result.Items))
	for _, moto := range result.Items {
		items = append(items, newMotoResponse(moto))
	}
	c.JSON(http.StatusOK, motoPageResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		PageNumber: result.PageNumber,
		PageSize:   result.PageSize,
	})
}

func (h *Handler) exportMotos(c *gin.Context) {
	result, err := h.motos.Export(c.Request.Context(), c.Query("plate"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}

func (h *Handler) getMoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	moto, err := h.motos.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMotoResponse(*moto))
}

func (h *Handler) updateMotoPlate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updatePlateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	moto, err := h.motos.UpdatePlate(c.Request.Context(), id, req.Plate)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMotoResponse(*moto))
}

func (h *Handler) deleteMoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.motos.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// queryInt returns 0 for a missing parameter so that the service applies its default.
func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
