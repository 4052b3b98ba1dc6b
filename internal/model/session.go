package model

import "time"

// WatchSession is one playback session for a video. Created when playback
// begins, updated periodically while the player reports progress, and
// validated asynchronously after it closes. Anonymous sessions have a nil
// UserID.
type WatchSession struct {
	ID                string     `json:"id"`
	VideoID           string     `json:"videoId"`
	UserID            *string    `json:"userId,omitempty"`
	SessionStart      time.Time  `json:"sessionStart"`
	SessionEnd        *time.Time `json:"sessionEnd,omitempty"`
	WatchTimeSeconds  float64    `json:"watchTimeSeconds"`
	InteractionsCount int        `json:"interactionsCount"`
	DeviceFingerprint string     `json:"-"`
	IPHash            string     `json:"-"`
	IsValidated       bool       `json:"isValidated"`
	TrustScore        float64    `json:"trustScore"`
}

// SessionSignals are the instantaneous client-side heuristics reported when
// a session closes. They feed the session-level trust score, which is
// distinct from the long-lived user-level trust score.
type SessionSignals struct {
	HasMouseMovement bool `json:"hasMouseMovement"`
	HasKeyboardInput bool `json:"hasKeyboardInput"`
	HasFocus         bool `json:"hasFocus"`
	IsVisible        bool `json:"isVisible"`
}

// ValidationRules are the thresholds a session must clear for its view to
// count.
type ValidationRules struct {
	MinWatchTimeSeconds float64
	MinInteractions     int
	MinTrustScore       float64
}

// DefaultValidationRules are the platform defaults. The effective minimum
// watch time is further reduced for short videos (30% of duration).
var DefaultValidationRules = ValidationRules{
	MinWatchTimeSeconds: 30,
	MinInteractions:     1,
	MinTrustScore:       0.3,
}

// StartSessionRequest is the API request body for opening a watch session.
type StartSessionRequest struct {
	VideoID           string  `json:"videoId"`
	UserID            *string `json:"userId,omitempty"`
	DeviceFingerprint string  `json:"deviceFingerprint"`
}

// UpdateSessionRequest is the API request body for periodic progress updates.
type UpdateSessionRequest struct {
	WatchTimeSeconds  float64 `json:"watchTimeSeconds"`
	InteractionsCount int     `json:"interactionsCount"`
}

// EndSessionRequest is the API request body for closing a session.
type EndSessionRequest struct {
	WatchTimeSeconds  float64        `json:"watchTimeSeconds"`
	InteractionsCount int            `json:"interactionsCount"`
	Signals           SessionSignals `json:"signals"`
}

// SessionResponse is the API response after a session mutation.
type SessionResponse struct {
	SessionID  string  `json:"sessionId"`
	TrustScore float64 `json:"trustScore"`
}
