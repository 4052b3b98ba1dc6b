package service

import (
	"math"

	"github.com/goroti11/trutube-sub003/internal/model"
)

const (
	// Neutral score for videos with no view data yet.
	neutralScore = 0.5

	// Each detected suspicious pattern costs this much authenticity,
	// capped at a total penalty of 0.5.
	suspicionPenaltyPerPattern = 0.1
	maxSuspicionPenalty        = 0.5

	// Quality blend weights.
	watchRatioWeight     = 0.4
	engagementRateWeight = 0.3
	completionWeight     = 0.3

	// A validated session counts as a completion at 80% of duration.
	completionThreshold = 0.8
)

// AggregateService computes population-level scores for a video from its
// validated sessions and view counters. Pure and stateless.
type AggregateService struct{}

func NewAggregateService() *AggregateService {
	return &AggregateService{}
}

// AuthenticityScore is the validated-to-total view ratio, penalized 0.1 per
// detected suspicious pattern (penalty capped at 0.5), clamped to [0,1].
// No views yet → neutral 0.5.
func (s *AggregateService) AuthenticityScore(totalViews, validatedViews, suspiciousPatternCount int) float64 {
	if totalViews == 0 {
		return neutralScore
	}

	validationRatio := float64(validatedViews) / float64(totalViews)
	penalty := math.Min(maxSuspicionPenalty, float64(suspiciousPatternCount)*suspicionPenaltyPerPattern)

	return clamp01(validationRatio - penalty)
}

// QualityScore blends watch-time ratio (40%), engagement rate (30%), and
// the fraction of validated sessions reaching 80% of the video's duration
// (30%), clamped to [0,1]. No views yet → neutral 0.5.
func (s *AggregateService) QualityScore(video *model.Video, validatedSessions []model.WatchSession) float64 {
	if video.ViewCount == 0 {
		return neutralScore
	}

	avgWatchRatio := video.AvgWatchTime / video.Duration

	engagementRate := float64(video.LikeCount+video.CommentCount) /
		math.Max(float64(video.ViewCount), 1)

	completed := 0
	for _, sess := range validatedSessions {
		if sess.WatchTimeSeconds/video.Duration >= completionThreshold {
			completed++
		}
	}
	completionRate := float64(completed) / math.Max(float64(len(validatedSessions)), 1)

	quality := avgWatchRatio*watchRatioWeight +
		engagementRate*engagementRateWeight +
		completionRate*completionWeight

	return clamp01(quality)
}
