package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/moto-rental/internal/service"
)

const maxCnhImageSize = 5 << 20

func (h *Handler) registerDeliveryPerson(c *gin.Context) {
	birthDate, err := parseDate(c.PostForm("birth_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid birth_date"})
		return
	}
	image, err := readCnhImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	person, err := h.people.Register(c.Request.Context(), service.RegisterDeliveryPersonInput{
		Name:      c.PostForm("name"),
		CNPJ:      c.PostForm("cnpj"),
		BirthDate: birthDate,
		CnhNumber: c.PostForm("cnh_number"),
		CnhType:   c.PostForm("cnh_type"),
		CnhImage:  image,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newDeliveryPersonResponse(*person))
}

func (h *Handler) uploadCnhImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	image, err := readCnhImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.people.UploadCnhImage(c.Request.Context(), id, image); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func readCnhImage(c *gin.Context) ([]byte, error) {
	header, err := c.FormFile("cnh_image")
	if err != nil {
		return nil, fmt.Errorf("cnh_image is required")
	}
	if header.Size > maxCnhImageSize {
		return nil, fmt.Errorf("cnh_image exceeds %d bytes", maxCnhImageSize)
	}
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("read cnh_image: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxCnhImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read cnh_image: %w", err)
	}
	if len(data) > maxCnhImageSize {
		return nil, fmt.Errorf("cnh_image exceeds %d bytes", maxCnhImageSize)
	}
	return data, nil
}
