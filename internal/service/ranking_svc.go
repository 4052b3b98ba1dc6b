package service

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/goroti11/trutube-sub003/internal/model"
)

// ScoringWeights are the blend weights for the four ranking signals.
// They must sum to 1.0.
type ScoringWeights struct {
	Engagement float64
	Support    float64
	Freshness  float64
	Diversity  float64
}

// DefaultWeights is the platform's 40/30/20/10 blend.
var DefaultWeights = ScoringWeights{
	Engagement: 0.4,
	Support:    0.3,
	Freshness:  0.2,
	Diversity:  0.1,
}

const (
	likeWeight    = 2.0
	commentWeight = 3.0

	// Freshness decays linearly and hits zero after this many hours.
	freshnessWindowHours = 100.0
)

// Diversity boost tiers by subscriber count, upper bound exclusive.
const (
	diversityTier1Max = 1_000
	diversityTier2Max = 10_000
	diversityTier3Max = 100_000
	diversityTier4Max = 500_000
	diversityTier5Max = 1_000_000
)

// RankingService computes per-video ranking scores. All methods are pure:
// no shared state, safe on arbitrary parallel workers.
type RankingService struct {
	weights ScoringWeights
}

func NewRankingService() *RankingService {
	return &RankingService{weights: DefaultWeights}
}

// NewRankingServiceWithWeights creates a service with a custom weight blend.
func NewRankingServiceWithWeights(w ScoringWeights) *RankingService {
	return &RankingService{weights: w}
}

// EngagementScore returns the per-view-normalized engagement signal:
//
//	(likes*2 + comments*3 + avgWatchTime) / max(views, 1)
//
// Comments count most, then likes; average watch seconds contribute
// additively with no normalization against duration. Zero views → 0.
func (s *RankingService) EngagementScore(video *model.Video) float64 {
	if video.ViewCount == 0 {
		return 0
	}

	likes := float64(video.LikeCount) * likeWeight
	comments := float64(video.CommentCount) * commentWeight

	return (likes + comments + video.AvgWatchTime) / math.Max(float64(video.ViewCount), 1)
}

// SupportScore returns the raw audience-size signal: subscriberCount * 0.5.
// Unbounded; scales linearly with no ceiling.
func (s *RankingService) SupportScore(creator *model.User) float64 {
	return float64(creator.SubscriberCount) * 0.5
}

// FreshnessScore returns max(0, 100 - hoursSinceCreation). A video created
// exactly at now scores 100; anything older than 100 hours scores 0.
func (s *RankingService) FreshnessScore(video *model.Video, now time.Time) float64 {
	hours := now.Sub(video.CreatedAt).Hours()
	return math.Max(0, freshnessWindowHours-hours)
}

// DiversityBoost returns the tiered adjustment favoring smaller creators.
// Boundaries are exclusive: exactly 1,000 subscribers lands in the +20 tier.
func (s *RankingService) DiversityBoost(creator *model.User) float64 {
	subs := creator.SubscriberCount

	switch {
	case subs < diversityTier1Max:
		return 30
	case subs < diversityTier2Max:
		return 20
	case subs < diversityTier3Max:
		return 10
	case subs < diversityTier4Max:
		return 0
	case subs < diversityTier5Max:
		return -10
	default:
		return -15
	}
}

// ComputeVideoScore blends the four signals into a final score:
//
//	final = engagement*0.4 + support*0.3 + freshness*0.2 + diversity*0.1
//
// clamped to >= 0. Deterministic given identical inputs and now; the
// generated score ID is not semantically meaningful.
func (s *RankingService) ComputeVideoScore(video *model.Video, creator *model.User, now time.Time) model.VideoScore {
	engagement := s.EngagementScore(video)
	support := s.SupportScore(creator)
	freshness := s.FreshnessScore(video, now)
	diversity := s.DiversityBoost(creator)

	final := engagement*s.weights.Engagement +
		support*s.weights.Support +
		freshness*s.weights.Freshness +
		diversity*s.weights.Diversity

	return model.VideoScore{
		ID:              uuid.NewString(),
		VideoID:         video.ID,
		EngagementScore: engagement,
		SupportScore:    support,
		FreshnessScore:  freshness,
		DiversityBoost:  diversity,
		FinalScore:      math.Max(0, final),
		UpdatedAt:       now,
	}
}
