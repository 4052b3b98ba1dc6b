package model

import "time"

// Video represents a published video with its engagement counters.
// The ranking engine treats it as read-only; counters are maintained by the
// playback pipeline and the cached quality/authenticity scores by the
// aggregate workers.
type Video struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	CreatorID         string    `json:"creatorId"`
	UniverseID        *string   `json:"universeId,omitempty"`
	SubUniverseID     *string   `json:"subUniverseId,omitempty"`
	Title             string    `json:"title"`
	Duration          float64   `json:"duration"`
	IsShort           bool      `json:"isShort"`
	IsPremium         bool      `json:"isPremium"`
	ViewCount         int       `json:"viewCount"`
	LikeCount         int       `json:"likeCount"`
	CommentCount      int       `json:"commentCount"`
	AvgWatchTime      float64   `json:"avgWatchTime"`
	QualityScore      *float64  `json:"qualityScore,omitempty"`
	AuthenticityScore *float64  `json:"authenticityScore,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// VideoScore holds the partial and final ranking scores for one video.
// It is ephemeral: rebuilt from scratch on every ranking pass, never diffed
// against a previous value.
type VideoScore struct {
	ID              string    `json:"id"`
	VideoID         string    `json:"videoId"`
	EngagementScore float64   `json:"engagementScore"`
	SupportScore    float64   `json:"supportScore"`
	FreshnessScore  float64   `json:"freshnessScore"`
	DiversityBoost  float64   `json:"diversityBoost"`
	FinalScore      float64   `json:"finalScore"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FeedEntry is one ranked video in a generated feed.
type FeedEntry struct {
	Video Video      `json:"video"`
	Score VideoScore `json:"score"`
}

// FeedResponse is the API response for feed endpoints.
type FeedResponse struct {
	Entries     []FeedEntry `json:"entries"`
	Count       int         `json:"count"`
	GeneratedAt time.Time   `json:"generatedAt"`
}

// VideoScoresResponse is the API response for cached aggregate score lookups.
type VideoScoresResponse struct {
	VideoID           string   `json:"videoId"`
	QualityScore      *float64 `json:"qualityScore,omitempty"`
	AuthenticityScore *float64 `json:"authenticityScore,omitempty"`
	ViewCount         int      `json:"viewCount"`
}
