package service

import (
	"testing"
	"time"

	"github.com/goroti11/trutube-sub003/internal/model"
)

func newTestTrustService() *TrustService {
	svc := NewTrustService()
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestUpdateUserTrustScore_FreshUserAccurateReport(t *testing.T) {
	svc := newTestTrustService()

	current := model.UserTrustScore{UserID: "u1", AccountAgeDays: 400}
	updated := svc.UpdateUserTrustScore(current, model.TrustDeltas{AccurateReports: 1})

	if !almostEqual(updated.ReportAccuracy, 0.05, 1e-9) {
		t.Errorf("report accuracy = %.4f, want 0.05", updated.ReportAccuracy)
	}
	// 0.05*0.3 = 0.015, plus the one-year age bonus of 0.10
	if !almostEqual(updated.OverallTrust, 0.115, 1e-9) {
		t.Errorf("overall trust = %.4f, want 0.115", updated.OverallTrust)
	}
}

func TestUpdateUserTrustScore_ValidatedViews(t *testing.T) {
	svc := newTestTrustService()

	tests := []struct {
		name    string
		current float64
		views   int
		want    float64
	}{
		{"single view nudges by 0.01", 0.5, 1, 0.51},
		{"views accumulate", 0.5, 10, 0.6},
		{"caps at 1.0", 0.99, 200, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := model.UserTrustScore{ViewAuthenticity: tt.current}
			updated := svc.UpdateUserTrustScore(current, model.TrustDeltas{ValidatedViews: tt.views})
			if !almostEqual(updated.ViewAuthenticity, tt.want, 1e-9) {
				t.Errorf("view authenticity = %.4f, want %.4f", updated.ViewAuthenticity, tt.want)
			}
		})
	}
}

func TestUpdateUserTrustScore_SuspiciousActions(t *testing.T) {
	svc := newTestTrustService()

	current := model.UserTrustScore{ViewAuthenticity: 0.5}
	updated := svc.UpdateUserTrustScore(current, model.TrustDeltas{SuspiciousActions: 2})

	if !almostEqual(updated.ViewAuthenticity, 0.4, 1e-9) {
		t.Errorf("view authenticity = %.4f, want 0.40", updated.ViewAuthenticity)
	}
	if updated.SuspiciousActionsCount != 2 {
		t.Errorf("suspicious action count = %d, want 2", updated.SuspiciousActionsCount)
	}

	// floor at zero
	floored := svc.UpdateUserTrustScore(model.UserTrustScore{ViewAuthenticity: 0.05}, model.TrustDeltas{SuspiciousActions: 3})
	if floored.ViewAuthenticity != 0 {
		t.Errorf("view authenticity = %.4f, want floor 0", floored.ViewAuthenticity)
	}
}

func TestUpdateUserTrustScore_ReportAccuracy(t *testing.T) {
	svc := newTestTrustService()

	// inaccuracy costs twice what accuracy earns
	current := model.UserTrustScore{ReportAccuracy: 0.5}
	updated := svc.UpdateUserTrustScore(current, model.TrustDeltas{AccurateReports: 2, InaccurateReports: 1})

	// +2*0.05 = 0.60, then -1*0.10 = 0.50
	if !almostEqual(updated.ReportAccuracy, 0.5, 1e-9) {
		t.Errorf("report accuracy = %.4f, want 0.50", updated.ReportAccuracy)
	}

	floored := svc.UpdateUserTrustScore(model.UserTrustScore{ReportAccuracy: 0.05}, model.TrustDeltas{InaccurateReports: 1})
	if floored.ReportAccuracy != 0 {
		t.Errorf("report accuracy = %.4f, want floor 0", floored.ReportAccuracy)
	}
}

func TestUpdateUserTrustScore_OverallBlend(t *testing.T) {
	svc := newTestTrustService()

	// 0.8*0.4 + 0.6*0.3 + 0.5*0.3 = 0.65, no age bonus
	current := model.UserTrustScore{
		ViewAuthenticity:  0.79, // +1 validated view → 0.80
		ReportAccuracy:    0.6,
		EngagementQuality: 0.5,
		AccountAgeDays:    90,
	}
	updated := svc.UpdateUserTrustScore(current, model.TrustDeltas{ValidatedViews: 1})

	if !almostEqual(updated.OverallTrust, 0.65, 1e-9) {
		t.Errorf("overall trust = %.4f, want 0.65", updated.OverallTrust)
	}
}

func TestUpdateUserTrustScore_AgeBonus(t *testing.T) {
	svc := newTestTrustService()

	tests := []struct {
		name    string
		ageDays int
		want    float64
	}{
		{"young account gets nothing", 100, 0.30},
		{"exactly 180 days gets nothing", 180, 0.30},
		{"over six months", 181, 0.35},
		{"exactly a year gets six-month bonus", 365, 0.35},
		{"over a year", 366, 0.40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := model.UserTrustScore{
				ViewAuthenticity:  0.3,
				ReportAccuracy:    0.3,
				EngagementQuality: 0.3,
				AccountAgeDays:    tt.ageDays,
			}
			updated := svc.UpdateUserTrustScore(current, model.TrustDeltas{ValidatedViews: 1})
			// the validated-view nudge moves VA by 0.01 → +0.004 overall
			if !almostEqual(updated.OverallTrust, tt.want+0.004, 1e-9) {
				t.Errorf("overall trust (age %d) = %.4f, want %.4f", tt.ageDays, updated.OverallTrust, tt.want+0.004)
			}
		})
	}
}

func TestUpdateUserTrustScore_RepeatOffenderPenalty(t *testing.T) {
	svc := newTestTrustService()

	current := model.UserTrustScore{
		ViewAuthenticity:       0.5,
		ReportAccuracy:         0.5,
		EngagementQuality:      0.5,
		SuspiciousActionsCount: 5,
	}
	// crossing the lifetime limit costs a flat 0.2
	updated := svc.UpdateUserTrustScore(current, model.TrustDeltas{SuspiciousActions: 1})

	// view authenticity drops to 0.45, blend 0.48, minus 0.2 penalty
	if !almostEqual(updated.OverallTrust, 0.28, 1e-9) {
		t.Errorf("overall trust = %.4f, want 0.28", updated.OverallTrust)
	}

	// penalty floors at zero
	zeroed := svc.UpdateUserTrustScore(model.UserTrustScore{SuspiciousActionsCount: 10}, model.TrustDeltas{SuspiciousActions: 1})
	if zeroed.OverallTrust != 0 {
		t.Errorf("overall trust = %.4f, want floor 0", zeroed.OverallTrust)
	}
}

func TestUpdateUserTrustScore_ClampIdempotent(t *testing.T) {
	svc := newTestTrustService()

	current := model.UserTrustScore{
		ViewAuthenticity:  1.0,
		ReportAccuracy:    1.0,
		EngagementQuality: 1.0,
		AccountAgeDays:    400,
	}

	once := svc.UpdateUserTrustScore(current, model.TrustDeltas{ValidatedViews: 1})
	if once.OverallTrust != 1.0 {
		t.Errorf("overall trust = %.4f, want cap 1.0", once.OverallTrust)
	}

	twice := svc.UpdateUserTrustScore(once, model.TrustDeltas{ValidatedViews: 1})
	if twice.OverallTrust != 1.0 {
		t.Errorf("overall trust after second update = %.4f, want 1.0", twice.OverallTrust)
	}
}

func TestTrustDeltas_Merge(t *testing.T) {
	d := model.TrustDeltas{ValidatedViews: 1, AccurateReports: 1}
	d.Merge(model.TrustDeltas{ValidatedViews: 2, SuspiciousActions: 1, InaccurateReports: 3})

	want := model.TrustDeltas{ValidatedViews: 3, SuspiciousActions: 1, AccurateReports: 1, InaccurateReports: 3}
	if d != want {
		t.Errorf("merged deltas = %+v, want %+v", d, want)
	}

	if !(model.TrustDeltas{}).IsZero() {
		t.Error("zero-value deltas should report IsZero")
	}
	if d.IsZero() {
		t.Error("non-empty deltas should not report IsZero")
	}
}
