package service

import (
	"math"
	"testing"
	"time"

	"github.com/goroti11/trutube-sub003/internal/model"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	sum := DefaultWeights.Engagement + DefaultWeights.Support +
		DefaultWeights.Freshness + DefaultWeights.Diversity
	if !almostEqual(sum, 1.0, 1e-9) {
		t.Errorf("default weights sum = %.4f, want 1.0", sum)
	}
}

func TestEngagementScore(t *testing.T) {
	svc := NewRankingService()

	tests := []struct {
		name  string
		video model.Video
		want  float64
	}{
		{
			name:  "zero views",
			video: model.Video{ViewCount: 0, LikeCount: 50, CommentCount: 20, AvgWatchTime: 120},
			want:  0,
		},
		{
			// (10*2 + 5*3 + 50) / 100 = 0.85
			name:  "typical counters",
			video: model.Video{ViewCount: 100, LikeCount: 10, CommentCount: 5, AvgWatchTime: 50},
			want:  0.85,
		},
		{
			// (0 + 0 + 30) / 1 = 30
			name:  "single view, watch time only",
			video: model.Video{ViewCount: 1, AvgWatchTime: 30},
			want:  30,
		},
		{
			// comments weigh more than likes: (1*2 + 0 + 0)/10 vs (0 + 1*3 + 0)/10
			name:  "one like per ten views",
			video: model.Video{ViewCount: 10, LikeCount: 1},
			want:  0.2,
		},
		{
			name:  "one comment per ten views",
			video: model.Video{ViewCount: 10, CommentCount: 1},
			want:  0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.EngagementScore(&tt.video)
			if !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("EngagementScore() = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestSupportScore(t *testing.T) {
	svc := NewRankingService()

	tests := []struct {
		name string
		subs int
		want float64
	}{
		{"no subscribers", 0, 0},
		{"small channel", 1_000, 500},
		{"large channel", 2_000_000, 1_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.SupportScore(&model.User{SubscriberCount: tt.subs})
			if got != tt.want {
				t.Errorf("SupportScore(%d subs) = %.1f, want %.1f", tt.subs, got, tt.want)
			}
		})
	}
}

func TestFreshnessScore(t *testing.T) {
	svc := NewRankingService()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		hoursAgo float64
		want     float64
	}{
		{"created right now", 0, 100},
		{"half window", 50, 50},
		{"exactly at window", 100, 0},
		{"well past window", 500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			video := model.Video{CreatedAt: now.Add(-time.Duration(tt.hoursAgo * float64(time.Hour)))}
			got := svc.FreshnessScore(&video, now)
			if !almostEqual(got, tt.want, 1e-6) {
				t.Errorf("FreshnessScore(%v hours ago) = %.4f, want %.4f", tt.hoursAgo, got, tt.want)
			}
		})
	}
}

func TestDiversityBoost(t *testing.T) {
	svc := NewRankingService()

	// Boundaries are exclusive: landing exactly on a threshold moves the
	// creator into the next tier up.
	tests := []struct {
		subs int
		want float64
	}{
		{0, 30},
		{999, 30},
		{1_000, 20},
		{9_999, 20},
		{10_000, 10},
		{99_999, 10},
		{100_000, 0},
		{499_999, 0},
		{500_000, -10},
		{999_999, -10},
		{1_000_000, -15},
		{5_000_000, -15},
	}

	for _, tt := range tests {
		got := svc.DiversityBoost(&model.User{SubscriberCount: tt.subs})
		if got != tt.want {
			t.Errorf("DiversityBoost(%d subs) = %.1f, want %.1f", tt.subs, got, tt.want)
		}
	}
}

func TestComputeVideoScore_Blend(t *testing.T) {
	svc := NewRankingService()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// engagement = (10*2 + 5*3 + 50)/100 = 0.85
	// support    = 500 * 0.5 = 250
	// freshness  = 100 - 50 = 50
	// diversity  = +30 (under 1k subs)
	// final = 0.85*0.4 + 250*0.3 + 50*0.2 + 30*0.1 = 88.34
	video := model.Video{
		ID:           "v1",
		ViewCount:    100,
		LikeCount:    10,
		CommentCount: 5,
		AvgWatchTime: 50,
		CreatedAt:    now.Add(-50 * time.Hour),
	}
	creator := model.User{ID: "c1", SubscriberCount: 500}

	score := svc.ComputeVideoScore(&video, &creator, now)

	if !almostEqual(score.EngagementScore, 0.85, 1e-9) {
		t.Errorf("engagement = %.4f, want 0.85", score.EngagementScore)
	}
	if score.SupportScore != 250 {
		t.Errorf("support = %.1f, want 250", score.SupportScore)
	}
	if !almostEqual(score.FreshnessScore, 50, 1e-6) {
		t.Errorf("freshness = %.4f, want 50", score.FreshnessScore)
	}
	if score.DiversityBoost != 30 {
		t.Errorf("diversity = %.1f, want 30", score.DiversityBoost)
	}
	if !almostEqual(score.FinalScore, 88.34, 1e-6) {
		t.Errorf("final = %.4f, want 88.34", score.FinalScore)
	}
	if score.VideoID != "v1" {
		t.Errorf("video id = %q, want v1", score.VideoID)
	}
}

func TestComputeVideoScore_Deterministic(t *testing.T) {
	svc := NewRankingService()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	video := model.Video{ID: "v1", ViewCount: 42, LikeCount: 7, AvgWatchTime: 33, CreatedAt: now.Add(-3 * time.Hour)}
	creator := model.User{ID: "c1", SubscriberCount: 12_000}

	a := svc.ComputeVideoScore(&video, &creator, now)
	b := svc.ComputeVideoScore(&video, &creator, now)

	if a.FinalScore != b.FinalScore {
		t.Errorf("repeated scoring diverged: %.6f vs %.6f", a.FinalScore, b.FinalScore)
	}
}

func TestComputeVideoScore_ClampedAtZero(t *testing.T) {
	// Diversity-only weighting makes a mega-channel's -15 the whole score.
	svc := NewRankingServiceWithWeights(ScoringWeights{Diversity: 1})
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	video := model.Video{ID: "v1", CreatedAt: now.Add(-500 * time.Hour)}
	creator := model.User{ID: "c1", SubscriberCount: 2_000_000}

	score := svc.ComputeVideoScore(&video, &creator, now)
	if score.FinalScore != 0 {
		t.Errorf("final = %.4f, want clamp to 0", score.FinalScore)
	}
	if score.DiversityBoost != -15 {
		t.Errorf("diversity = %.1f, want -15", score.DiversityBoost)
	}
}
