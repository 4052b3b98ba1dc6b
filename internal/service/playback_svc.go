package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goroti11/trutube-sub003/internal/model"
	"github.com/goroti11/trutube-sub003/internal/repository"
)

// PlaybackService owns the watch-session lifecycle: open at playback start,
// progress updates while the player reports, close with the client's trust
// signals. Validation happens later, asynchronously, in ValidationWorker.
type PlaybackService struct {
	sessions   *repository.SessionRepo
	sessionSvc *SessionService
}

func NewPlaybackService(sessions *repository.SessionRepo, sessionSvc *SessionService) *PlaybackService {
	return &PlaybackService{sessions: sessions, sessionSvc: sessionSvc}
}

// Start opens a new watch session. The fingerprint arrives pre-normalized
// from the handler; ipHash is the salted hash of the client address.
func (s *PlaybackService) Start(ctx context.Context, videoID string, userID *string, fingerprint, ipHash string) (*model.WatchSession, error) {
	session := &model.WatchSession{
		ID:                uuid.NewString(),
		VideoID:           videoID,
		UserID:            userID,
		SessionStart:      time.Now(),
		DeviceFingerprint: fingerprint,
		IPHash:            ipHash,
		TrustScore:        0.5,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateProgress records a periodic progress report.
func (s *PlaybackService) UpdateProgress(ctx context.Context, sessionID string, watchTimeSeconds float64, interactionsCount int) error {
	return s.sessions.UpdateProgress(ctx, sessionID, watchTimeSeconds, interactionsCount)
}

// End closes a session: the client's instantaneous signals become the
// session trust score, and the final counters are persisted. Returns the
// computed trust score.
func (s *PlaybackService) End(ctx context.Context, sessionID string, req model.EndSessionRequest) (float64, error) {
	trust := s.sessionSvc.TrustScore(req.Signals)

	err := s.sessions.Close(ctx, sessionID, req.WatchTimeSeconds, req.InteractionsCount, trust, time.Now())
	if err != nil {
		return 0, err
	}
	return trust, nil
}
