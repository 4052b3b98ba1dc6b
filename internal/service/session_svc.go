package service

import (
	"math"

	"github.com/goroti11/trutube-sub003/internal/model"
)

const (
	sessionTrustBase = 0.5

	mouseMovementBonus = 0.15
	keyboardInputBonus = 0.10
	focusBonus         = 0.15
	visibilityBonus    = 0.10
)

// Effective minimum watch time is capped at this fraction of the video's
// duration, so short videos require proportionally less than the fixed floor.
const minWatchDurationFraction = 0.3

// SessionService evaluates session-level trust and validates watch sessions.
// All methods are pure and stateless.
type SessionService struct{}

func NewSessionService() *SessionService {
	return &SessionService{}
}

// TrustScore converts the instantaneous client signals into a session-level
// trust score: 0.5 base, +0.15 for pointer movement, +0.10 for keyboard
// input, +0.15 for input focus, +0.10 for page visibility, clamped to [0,1].
// This is distinct from the long-lived user-level trust score.
func (s *SessionService) TrustScore(signals model.SessionSignals) float64 {
	score := sessionTrustBase

	if signals.HasMouseMovement {
		score += mouseMovementBonus
	}
	if signals.HasKeyboardInput {
		score += keyboardInputBonus
	}
	if signals.HasFocus {
		score += focusBonus
	}
	if signals.IsVisible {
		score += visibilityBonus
	}

	return clamp01(score)
}

// TrustScoreFromHistory seeds a session trust score from the user's
// long-lived trust record, then adjusts it with per-session evidence:
// sustained watching and interactions raise it, repeated views of the same
// video from the same account lower it. Anonymous users (nil record) start
// from the neutral base.
func (s *SessionService) TrustScoreFromHistory(userTrust *model.UserTrustScore, watchTimeSeconds float64, interactionsCount int, deviceKnown, isRepeatedView bool) float64 {
	score := sessionTrustBase
	if userTrust != nil {
		score = userTrust.OverallTrust
	}

	if watchTimeSeconds > 60 {
		score += 0.1
	}
	if interactionsCount > 3 {
		score += 0.1
	}
	if deviceKnown {
		score += 0.05
	}
	if isRepeatedView {
		score -= 0.2
	}

	return clamp01(score)
}

// Validate decides whether a watch session counts as a real view. The
// effective minimum watch time is min(rules floor, 30% of the video's
// duration); the session must also clear the interaction and trust
// thresholds. All three conditions are required.
func (s *SessionService) Validate(session *model.WatchSession, video *model.Video, rules model.ValidationRules) bool {
	minWatchTime := math.Min(rules.MinWatchTimeSeconds, video.Duration*minWatchDurationFraction)

	hasEnoughWatchTime := session.WatchTimeSeconds >= minWatchTime
	hasInteractions := session.InteractionsCount >= rules.MinInteractions
	isTrustedEnough := session.TrustScore >= rules.MinTrustScore

	return hasEnoughWatchTime && hasInteractions && isTrustedEnough
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
