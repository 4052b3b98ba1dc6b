package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/goroti11/trutube-sub003/internal/middleware"
	"github.com/goroti11/trutube-sub003/internal/model"
	"github.com/goroti11/trutube-sub003/internal/repository"
)

type TrustHandler struct {
	repo *repository.TrustRepo
}

func NewTrustHandler(repo *repository.TrustRepo) *TrustHandler {
	return &TrustHandler{repo: repo}
}

// GetByUserID handles GET /api/users/:userId/trust
func (h *TrustHandler) GetByUserID(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateID("userId", c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_USER_ID", errMsg)
	}

	t, err := h.repo.GetOrDefault(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup trust record")
	}

	return c.JSON(model.TrustResponse{
		UserID:                 t.UserID,
		OverallTrust:           t.OverallTrust,
		ViewAuthenticity:       t.ViewAuthenticity,
		ReportAccuracy:         t.ReportAccuracy,
		EngagementQuality:      t.EngagementQuality,
		AccountAgeDays:         t.AccountAgeDays,
		SuspiciousActionsCount: t.SuspiciousActionsCount,
		UpdatedAt:              t.UpdatedAt,
	})
}
