package prepare

import (
	"context"
	"errors"
	"net/http"
	"time"

	"collection-prep/core/lock"
	"collection-prep/core/logger"
	"collection-prep/core/storage"
	"collection-prep/feature/bgg"
	"collection-prep/feature/collection"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for prepare runs.
type Handler struct {
	service *Service
	timeout time.Duration
}

// NewHandler creates a new HTTP handler. timeout bounds a single run.
func NewHandler(service *Service, timeout time.Duration) *Handler {
	return &Handler{service: service, timeout: timeout}
}

// RegisterRoutes registers the collection routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/collection")
	group.Post("/prepare", h.HandlePrepare)
	group.Post("/:username/prepare", h.HandlePrepare)
	group.Post("/replay", h.HandleReplay)
	group.Get("/snapshot", h.HandleSnapshot)
	group.Get("/verify", h.HandleVerify)
	group.Post("/repair", h.HandleRepair)
}

// HandlePrepare runs a live prepare for a user.
// @Summary Prepare Collection
// @Description Fetches the user's collection from the catalog, normalizes it into games, entities and relationships and publishes the snapshot. Without a username the configured default owner is used.
// @Tags collection
// @Produce json
// @Param username path string false "Collection owner"
// @Success 200 {object} Report "Run Report"
// @Failure 400 {object} map[string]string "Missing username"
// @Failure 404 {object} map[string]string "Unknown user"
// @Failure 409 {object} map[string]string "Entity naming conflict"
// @Failure 423 {object} map[string]string "Another run in progress"
// @Failure 503 {object} map[string]string "Collection export queued"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/{username}/prepare [post]
func (h *Handler) HandlePrepare(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	username, err := h.service.Username(c.Params("username"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	l.Info("Triggering prepare run", zap.String("username", username))

	ctx, cancel := h.runContext(c)
	defer cancel()

	report, err := h.service.Prepare(ctx, username)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(report)
}

// HandleReplay re-normalizes the archived responses.
// @Summary Replay Collection
// @Description Normalizes the responses archived by the last live run without calling the catalog.
// @Tags collection
// @Produce json
// @Success 200 {object} Report "Run Report"
// @Failure 409 {object} map[string]string "Entity naming conflict"
// @Failure 423 {object} map[string]string "Another run in progress"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/replay [post]
func (h *Handler) HandleReplay(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering replay run")

	ctx, cancel := h.runContext(c)
	defer cancel()

	report, err := h.service.Replay(ctx, "")
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(report)
}

// HandleSnapshot streams the last published snapshot.
// @Summary Get Snapshot
// @Description Returns the snapshot document last uploaded to object storage.
// @Tags collection
// @Produce json
// @Success 200 {object} snapshot.Dataset "Snapshot"
// @Failure 404 {object} map[string]string "No snapshot published"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/snapshot [get]
func (h *Handler) HandleSnapshot(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	body, info, err := h.service.OpenSnapshot(c.UserContext())
	switch {
	case errors.Is(err, ErrNoSnapshotStore):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case storage.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no snapshot published"})
	case err != nil:
		l.Error("Failed to open snapshot", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if !info.LastModified.IsZero() {
		c.Set(fiber.HeaderLastModified, info.LastModified.UTC().Format(http.TimeFormat))
	}
	if info.ETag != "" {
		c.Set(fiber.HeaderETag, info.ETag)
	}
	size := int(info.Size)
	if size <= 0 {
		size = -1
	}
	// fiber closes body once the stream is written
	return c.SendStream(body, size)
}

// HandleVerify compares the published snapshots.
// @Summary Verify Snapshots
// @Description Compares the local snapshot file with every published sink (object storage, database) game by game.
// @Tags collection
// @Produce json
// @Success 200 {object} VerifyReport "Verification Plan"
// @Failure 423 {object} map[string]string "Another run in progress"
// @Failure 503 {object} map[string]string "No published sinks"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/verify [get]
func (h *Handler) HandleVerify(c *fiber.Ctx) error {
	return h.verify(c, false)
}

// HandleRepair republishes the local snapshot to out of date sinks.
// @Summary Repair Snapshots
// @Description Verifies the published snapshots and rewrites every sink that differs from the local snapshot file.
// @Tags collection
// @Produce json
// @Success 200 {object} VerifyReport "Verification Plan"
// @Failure 423 {object} map[string]string "Another run in progress"
// @Failure 503 {object} map[string]string "No published sinks"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /collection/repair [post]
func (h *Handler) HandleRepair(c *fiber.Ctx) error {
	return h.verify(c, true)
}

func (h *Handler) verify(c *fiber.Ctx, repair bool) error {
	l := logger.WithRayID(h.service.logger, c)

	ctx, cancel := h.runContext(c)
	defer cancel()

	report, err := h.service.Verify(ctx, repair)
	if errors.Is(err, ErrNothingToVerify) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(report)
}

func (h *Handler) runContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), h.timeout)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case collection.IsConflict(err):
		status = fiber.StatusConflict
	case errors.Is(err, bgg.ErrCollectionQueued):
		status = fiber.StatusServiceUnavailable
		c.Set(fiber.HeaderRetryAfter, "60")
	case errors.Is(err, lock.ErrLocked):
		status = fiber.StatusLocked
	case errors.Is(err, bgg.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		status = fiber.StatusGatewayTimeout
	}
	l.Error("Prepare request failed", zap.Int("status", status), zap.Error(err))
	return c.Status(status).JSON(fiber.Map{
		"error":  err.Error(),
		"status": StatusOf(err),
	})
}
