package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/goroti11/trutube-sub003/internal/middleware"
	"github.com/goroti11/trutube-sub003/internal/service"
)

type FeedHandler struct {
	svc *service.FeedQueryService
}

func NewFeedHandler(svc *service.FeedQueryService) *FeedHandler {
	return &FeedHandler{svc: svc}
}

// GetGlobal handles GET /api/feed?limit=N
func (h *FeedHandler) GetGlobal(c fiber.Ctx) error {
	limit, errMsg := middleware.ValidateLimit(fiber.Query[string](c, "limit"), service.DefaultFeedLimit)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_LIMIT", errMsg)
	}

	Metrics.FeedRequestsTotal.WithLabelValues("global").Inc()

	feed, err := h.svc.GlobalFeed(c.Context(), limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate feed")
	}
	return c.JSON(feed)
}

// GetPersonalized handles GET /api/feed/personalized/:userId?limit=N
func (h *FeedHandler) GetPersonalized(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateID("userId", c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_USER_ID", errMsg)
	}

	limit, errMsg := middleware.ValidateLimit(fiber.Query[string](c, "limit"), service.DefaultFeedLimit)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_LIMIT", errMsg)
	}

	Metrics.FeedRequestsTotal.WithLabelValues("personalized").Inc()

	feed, err := h.svc.PersonalizedFeed(c.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate feed")
	}
	return c.JSON(feed)
}

// GetUniverse handles GET /api/feed/universe/:universeId?subUniverseId=X&limit=N
func (h *FeedHandler) GetUniverse(c fiber.Ctx) error {
	universeID, errMsg := middleware.ValidateID("universeId", c.Params("universeId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_UNIVERSE_ID", errMsg)
	}

	var subUniverseID *string
	if raw := fiber.Query[string](c, "subUniverseId"); raw != "" {
		id, errMsg := middleware.ValidateID("subUniverseId", raw)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SUB_UNIVERSE_ID", errMsg)
		}
		subUniverseID = &id
	}

	limit, errMsg := middleware.ValidateLimit(fiber.Query[string](c, "limit"), service.DefaultFeedLimit)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_LIMIT", errMsg)
	}

	Metrics.FeedRequestsTotal.WithLabelValues("universe").Inc()

	feed, err := h.svc.UniverseFeed(c.Context(), universeID, subUniverseID, limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate feed")
	}
	return c.JSON(feed)
}

// GetPreferences handles GET /api/feed/preferences/:userId?limit=N
func (h *FeedHandler) GetPreferences(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateID("userId", c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_USER_ID", errMsg)
	}

	limit, errMsg := middleware.ValidateLimit(fiber.Query[string](c, "limit"), service.DefaultFeedLimit)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_LIMIT", errMsg)
	}

	Metrics.FeedRequestsTotal.WithLabelValues("preferences").Inc()

	feed, err := h.svc.PreferenceFeed(c.Context(), userID, limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate feed")
	}
	return c.JSON(feed)
}
