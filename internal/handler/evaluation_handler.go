package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-writing-api/internal/dto"
	"github.com/noah-isme/gema-writing-api/internal/middleware"
	"github.com/noah-isme/gema-writing-api/internal/service"
	"github.com/noah-isme/gema-writing-api/internal/utils"
)

// EvaluationHandler exposes scoring and history endpoints.
type EvaluationHandler struct {
	service   service.EvaluationService
	validator *validator.Validate
	limiter   fiber.Handler
	logger    zerolog.Logger
}

// NewEvaluationHandler constructs the handler. limiter guards the scoring routes and may be nil.
func NewEvaluationHandler(service service.EvaluationService, validate *validator.Validate, limiter fiber.Handler, logger zerolog.Logger) *EvaluationHandler {
	if limiter == nil {
		limiter = func(c *fiber.Ctx) error { return c.Next() }
	}
	return &EvaluationHandler{
		service:   service,
		validator: validate,
		limiter:   limiter,
		logger:    logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register wires evaluation routes.
func (h *EvaluationHandler) Register(router fiber.Router) {
	signedIn := middleware.AuthOptions{RequireUser: true}

	router.Post("", h.limiter, middleware.WithAuth(h.create, signedIn))
	router.Post("/preview", h.limiter, middleware.WithAuth(h.preview, signedIn))
	router.Get("", middleware.WithAuth(h.list, signedIn))
	router.Get("/:id", middleware.WithAuth(h.get, signedIn))
}

func (h *EvaluationHandler) create(c *fiber.Ctx) error {
	payload, ok, err := h.parseRequest(c)
	if !ok {
		return err
	}

	studentID := userIDFromContext(c)
	result, err := h.service.Evaluate(c.UserContext(), studentID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	requestLogger(h.logger, c).Info().
		Uint("evaluation_id", result.ID).
		Uint("student_id", studentID).
		Int("total", result.Report.Total).
		Msg("evaluation created")

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "evaluation created", result)
}

func (h *EvaluationHandler) preview(c *fiber.Ctx) error {
	payload, ok, err := h.parseRequest(c)
	if !ok {
		return err
	}

	result, err := h.service.Preview(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	if c.Query("format") == "text" {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(result.Report.Text())
	}

	return utils.SendSuccess(c, "evaluation preview", result)
}

func (h *EvaluationHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.Get(c.UserContext(), id, userIDFromContext(c), userRoleFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "evaluation retrieved", result)
}

func (h *EvaluationHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	result, err := h.service.List(c.UserContext(), userIDFromContext(c), page, pageSize)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.OK(c, result.Items, "evaluations retrieved", fiber.Map{"pagination": result.Pagination})
}

// parseRequest reports ok=false once an error response has been written.
func (h *EvaluationHandler) parseRequest(c *fiber.Ctx) (dto.EvaluationRequest, bool, error) {
	var payload dto.EvaluationRequest
	if err := c.BodyParser(&payload); err != nil {
		return payload, false, utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if h.validator != nil {
		if err := h.validator.Struct(payload); err != nil {
			return payload, false, sendValidationError(c, err)
		}
	}
	return payload, true, nil
}

func (h *EvaluationHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTopicNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "topic not found")
	case errors.Is(err, service.ErrEvaluationNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "evaluation not found")
	case errors.Is(err, service.ErrTooManyWords):
		return utils.SendError(c, fiber.StatusBadRequest, "too many required words")
	case errors.Is(err, service.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "forbidden")
	case isValidationError(err):
		return sendValidationError(c, err)
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("evaluation request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
