package manifest

import (
	"errors"

	"manifest-validator/core/logger"
	"manifest-validator/core/strictjson"
	"manifest-validator/feature/manifest/schema"
	"manifest-validator/feature/manifest/sources"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for manifest validation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the manifest routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/manifest")
	group.Post("/validate", h.HandleValidate)
	group.Get("/schema", h.HandleSchema)
	group.Get("/stored", h.HandleListStored)
	group.Get("/stored/:name", h.HandleValidateStored)
	group.Get("/bucket", h.HandleListBucket)
	group.Get("/bucket/*", h.HandleValidateBucket)
}

func options(c *fiber.Ctx) Options {
	return Options{
		Offline: c.QueryBool("offline"),
		Schema:  c.QueryBool("schema"),
	}
}

// HandleValidate validates the manifest posted as the request body.
// Query flags: offline=true skips reachability, schema=true adds the schema lint.
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	// The body buffer is reused by fiber after the handler returns.
	body := append([]byte(nil), c.Body()...)

	report, err := h.service.Validate(c.Context(), body, options(c))
	if err != nil {
		return h.fail(c, l, err)
	}
	report.Source = "request"
	return c.JSON(report)
}

// HandleSchema serves the JSON Schema of install manifests.
func (h *Handler) HandleSchema(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/schema+json")
	return c.Send(schema.Document)
}

// HandleListStored lists the manifests published in the database.
func (h *Handler) HandleListStored(c *fiber.Ctx) error {
	names, err := h.service.ListStored(c.Context())
	if err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), err)
	}
	return c.JSON(fiber.Map{"manifests": names})
}

// HandleValidateStored validates a manifest published in the database.
func (h *Handler) HandleValidateStored(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	src, err := h.service.StoredSource(c.Params("name"))
	if err != nil {
		return h.fail(c, l, err)
	}
	report, err := h.service.ValidateSource(c.Context(), src, options(c))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(report)
}

// HandleListBucket lists the manifest objects in the bucket.
func (h *Handler) HandleListBucket(c *fiber.Ctx) error {
	names, err := h.service.ListBucket(c.Context())
	if err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), err)
	}
	return c.JSON(fiber.Map{"manifests": names})
}

// HandleValidateBucket validates a manifest object from the bucket.
func (h *Handler) HandleValidateBucket(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	object := c.Params("*")
	if object == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "object name is required"})
	}

	src, err := h.service.BucketSource(object)
	if err != nil {
		return h.fail(c, l, err)
	}
	report, err := h.service.ValidateSource(c.Context(), src, options(c))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(report)
}

// fail maps service errors onto status codes.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	var structural *strictjson.StructuralError
	switch {
	case errors.As(err, &structural):
		l.Warn("Manifest is structurally invalid", zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":      err.Error(),
			"structural": structural,
		})
	case errors.Is(err, sources.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrSourceUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Manifest validation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
