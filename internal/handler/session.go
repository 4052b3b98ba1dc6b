package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/goroti11/trutube-sub003/internal/middleware"
	"github.com/goroti11/trutube-sub003/internal/model"
	"github.com/goroti11/trutube-sub003/internal/service"
	"github.com/goroti11/trutube-sub003/pkg/hash"
)

type SessionHandler struct {
	svc        *service.PlaybackService
	ipHashSalt string
}

func NewSessionHandler(svc *service.PlaybackService, ipHashSalt string) *SessionHandler {
	return &SessionHandler{svc: svc, ipHashSalt: ipHashSalt}
}

// Start handles POST /api/sessions
func (h *SessionHandler) Start(c fiber.Ctx) error {
	var req model.StartSessionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}

	videoID, errMsg := middleware.ValidateID("videoId", req.VideoID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VIDEO_ID", errMsg)
	}

	var userID *string
	if req.UserID != nil {
		id, errMsg := middleware.ValidateID("userId", *req.UserID)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_USER_ID", errMsg)
		}
		userID = &id
	}

	fingerprint, errMsg := middleware.ValidateFingerprint(req.DeviceFingerprint)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FINGERPRINT", errMsg)
	}

	ipHash := hash.HashIP(c.IP(), h.ipHashSalt)

	Metrics.SessionsStartedTotal.Inc()

	session, err := h.svc.Start(c.Context(), videoID, userID, hash.FingerprintDigest(fingerprint), ipHash)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to start session")
	}

	return c.Status(fiber.StatusCreated).JSON(model.SessionResponse{
		SessionID:  session.ID,
		TrustScore: session.TrustScore,
	})
}

// Update handles PATCH /api/sessions/:sessionId
func (h *SessionHandler) Update(c fiber.Ctx) error {
	sessionID, errMsg := middleware.ValidateID("sessionId", c.Params("sessionId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SESSION_ID", errMsg)
	}

	var req model.UpdateSessionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if req.WatchTimeSeconds < 0 || req.InteractionsCount < 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_COUNTERS", "Counters must be non-negative")
	}

	if err := h.svc.UpdateProgress(c.Context(), sessionID, req.WatchTimeSeconds, req.InteractionsCount); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update session")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// End handles POST /api/sessions/:sessionId/end
func (h *SessionHandler) End(c fiber.Ctx) error {
	sessionID, errMsg := middleware.ValidateID("sessionId", c.Params("sessionId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SESSION_ID", errMsg)
	}

	var req model.EndSessionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Malformed request body")
	}
	if req.WatchTimeSeconds < 0 || req.InteractionsCount < 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_COUNTERS", "Counters must be non-negative")
	}

	trust, err := h.svc.End(c.Context(), sessionID, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Session not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to end session")
	}

	return c.JSON(model.SessionResponse{
		SessionID:  sessionID,
		TrustScore: trust,
	})
}
