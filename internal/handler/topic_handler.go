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

// TopicHandler exposes the vocabulary topic catalogue.
type TopicHandler struct {
	service   service.TopicService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTopicHandler constructs a topic handler.
func NewTopicHandler(service service.TopicService, validate *validator.Validate, logger zerolog.Logger) *TopicHandler {
	return &TopicHandler{
		service:   service,
		validator: validate,
		logger:    logger.With().Str("component", "topic_handler").Logger(),
	}
}

// Register wires topic routes. Writes are limited to teachers and admins.
func (h *TopicHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:slug", h.get)
	router.Post("", middleware.WithAuth(h.upsert, middleware.AuthOptions{Role: middleware.AuthRoleReviewer}))
}

func (h *TopicHandler) list(c *fiber.Ctx) error {
	topics, err := h.service.List(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "topics retrieved", topics)
}

func (h *TopicHandler) get(c *fiber.Ctx) error {
	topic, err := h.service.Get(c.UserContext(), c.Params("slug"))
	if err != nil {
		return h.handleError(c, err)
	}
	return utils.SendSuccess(c, "topic retrieved", topic)
}

func (h *TopicHandler) upsert(c *fiber.Ctx) error {
	var payload dto.TopicUpsertRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if h.validator != nil {
		if err := h.validator.Struct(payload); err != nil {
			return sendValidationError(c, err)
		}
	}

	topic, err := h.service.Upsert(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	requestLogger(h.logger, c).Info().Str("slug", topic.Slug).Msg("topic upserted")
	return utils.SendSuccess(c, "topic saved", topic)
}

func (h *TopicHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTopicNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "topic not found")
	case isValidationError(err):
		return sendValidationError(c, err)
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("topic request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
