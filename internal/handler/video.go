package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/goroti11/trutube-sub003/internal/middleware"
	"github.com/goroti11/trutube-sub003/internal/model"
	"github.com/goroti11/trutube-sub003/internal/repository"
)

type VideoHandler struct {
	repo *repository.VideoRepo
}

func NewVideoHandler(repo *repository.VideoRepo) *VideoHandler {
	return &VideoHandler{repo: repo}
}

// GetScores handles GET /api/videos/:videoId/scores — the cached aggregate
// scores maintained by the validation worker.
func (h *VideoHandler) GetScores(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID("videoId", c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VIDEO_ID", errMsg)
	}

	video, err := h.repo.FindByID(c.Context(), videoID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Video not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup video")
	}

	return c.JSON(model.VideoScoresResponse{
		VideoID:           video.ID,
		QualityScore:      video.QualityScore,
		AuthenticityScore: video.AuthenticityScore,
		ViewCount:         video.ViewCount,
	})
}
