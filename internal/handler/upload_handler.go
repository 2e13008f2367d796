package handler

import (
	"lectoquiz/internal/domain"
	"lectoquiz/internal/dto"
	"lectoquiz/internal/service"
	"lectoquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler handles lecture document upload requests
type UploadHandler struct {
	service service.UploadService
}

// NewUploadHandler creates a new UploadHandler instance
func NewUploadHandler(service service.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// IssueUploadURL godoc
// @Summary Request a presigned upload URL
// @Description Issues an expiring upload URL for a lecture document and parks the generation parameters until text extraction completes
// @Tags uploads
// @Accept json
// @Produce json
// @Param request body dto.UploadRequest true "Upload parameters"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /uploads [post]
func (h *UploadHandler) IssueUploadURL(c *fiber.Ctx) error {
	var req dto.UploadRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	if errs := validation.ValidateUploadRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.IssueUploadURL(c.Context(), &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}
