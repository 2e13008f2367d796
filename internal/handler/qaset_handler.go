package handler

import (
	"strconv"

	"lectoquiz/internal/domain"
	"lectoquiz/internal/dto"
	"lectoquiz/internal/service"
	"lectoquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QASetHandler handles question set HTTP requests. Errors are returned to the
// centralized error middleware, which maps them to HTTP statuses.
type QASetHandler struct {
	service service.QASetService
}

// NewQASetHandler creates a new QASetHandler instance
func NewQASetHandler(service service.QASetService) *QASetHandler {
	return &QASetHandler{service: service}
}

// Generate godoc
// @Summary Generate a question set from lecture text
// @Description Runs LLM generation over the supplied lecture text and stores the resulting question set
// @Tags qasets
// @Accept json
// @Produce json
// @Param request body dto.GenerateRequest true "Generation parameters"
// @Success 201 {object} dto.QASetResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /generate [post]
func (h *QASetHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	if errs := validation.ValidateGenerateRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GenerateFromText(c.Context(), &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary List question sets
// @Description Lists stored question sets, optionally filtered by theme and lecture number
// @Tags qasets
// @Produce json
// @Param theme query string false "Theme filter"
// @Param lecture_number query int false "Lecture number filter (requires theme)"
// @Success 200 {array} dto.QASetSummary
// @Failure 400 {object} middleware.ErrorResponse
// @Router /qas [get]
func (h *QASetHandler) List(c *fiber.Ctx) error {
	theme := c.Query("theme")

	lectureNumber := 0
	if raw := c.Query("lecture_number"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return domain.NewInvalidInputError("lecture_number must be an integer")
		}
		lectureNumber = parsed
	}

	summaries, err := h.service.ListQASets(c.Context(), theme, lectureNumber)
	if err != nil {
		return err
	}

	return c.JSON(summaries)
}

// Get godoc
// @Summary Get a question set
// @Description Returns a question set with its submission history
// @Tags qasets
// @Produce json
// @Param id path string true "Question set ID"
// @Success 200 {object} dto.QASetResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /qas/{id} [get]
func (h *QASetHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	resp, err := h.service.GetQASet(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete a question set
// @Description Deletes a question set and its submission history
// @Tags qasets
// @Param id path string true "Question set ID"
// @Success 204 "No Content"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /qas/{id} [delete]
func (h *QASetHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.service.DeleteQASet(c.Context(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Submit godoc
// @Summary Submit answers for grading
// @Description Grades the submitted answers against the stored question set and appends the score report to its history
// @Tags qasets
// @Accept json
// @Produce json
// @Param id path string true "Question set ID"
// @Param request body dto.SubmitRequest true "Submitted answers"
// @Success 200 {object} dto.ScoreReportResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /qas/{id}/submit [post]
func (h *QASetHandler) Submit(c *fiber.Ctx) error {
	id := c.Params("id")

	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	if errs := validation.ValidateSubmitRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.SubmitAnswers(c.Context(), id, &req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
