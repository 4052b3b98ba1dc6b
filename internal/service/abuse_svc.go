package service

import (
	"github.com/goroti11/trutube-sub003/internal/model"
)

const (
	// How many recent sessions the detector inspects.
	patternWindowSize = 10

	// Rapid-fire needs more than this many sessions in the window...
	rapidFireMinSessions = 5
	// ...with a mean gap between consecutive session starts under this.
	rapidFireMaxMeanGapMs = 60_000
)

// AbuseService inspects a user's recent watch sessions for bot-like
// signatures. Pure and stateless.
type AbuseService struct{}

func NewAbuseService() *AbuseService {
	return &AbuseService{}
}

// DetectSuspiciousPattern flags a session window as bot-like. Sessions must
// be ordered newest first. Fewer than 2 sessions is never suspicious; at
// most the 10 most recent are inspected.
//
// Flagged iff (same device AND same IP AND rapid-fire) OR (rapid-fire AND
// zero interactions throughout). Same device and IP alone is tolerated:
// legitimate repeat viewing from one household looks exactly like that.
func (s *AbuseService) DetectSuspiciousPattern(sessions []model.WatchSession) bool {
	if len(sessions) < 2 {
		return false
	}

	recent := sessions
	if len(recent) > patternWindowSize {
		recent = recent[:patternWindowSize]
	}

	sameDevice := true
	sameIP := true
	lowInteraction := true
	for _, sess := range recent {
		if sess.DeviceFingerprint != recent[0].DeviceFingerprint {
			sameDevice = false
		}
		if sess.IPHash != recent[0].IPHash {
			sameIP = false
		}
		if sess.InteractionsCount != 0 {
			lowInteraction = false
		}
	}

	rapidFire := len(recent) > rapidFireMinSessions && isRapidFire(recent)

	return (sameDevice && sameIP && rapidFire) || (rapidFire && lowInteraction)
}

// isRapidFire reports whether the mean gap between consecutive session
// starts is under the rapid-fire threshold. Sessions are newest first, so
// each gap is start[i-1] - start[i].
func isRapidFire(sessions []model.WatchSession) bool {
	var totalMs int64
	for i := 1; i < len(sessions); i++ {
		gap := sessions[i-1].SessionStart.Sub(sessions[i].SessionStart)
		totalMs += gap.Milliseconds()
	}

	meanMs := totalMs / int64(len(sessions)-1)
	return meanMs < rapidFireMaxMeanGapMs
}
