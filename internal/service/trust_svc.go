package service

import (
	"math"
	"time"

	"github.com/goroti11/trutube-sub003/internal/model"
)

const (
	// Per-event nudges to the incremental component fields.
	validatedViewBonus      = 0.01
	suspiciousActionPenalty = 0.05
	accurateReportBonus     = 0.05
	inaccurateReportPenalty = 0.10

	// Overall trust recombination weights.
	viewAuthenticityWeight  = 0.4
	reportAccuracyWeight    = 0.3
	engagementQualityWeight = 0.3

	// Account-age bonuses.
	ageBonusOneYear     = 0.10
	ageBonusSixMonths   = 0.05
	ageBonusOneYearDays = 365
	ageBonusSixMoDays   = 180

	// Lifetime suspicious actions beyond this trigger a flat overall penalty.
	suspiciousActionsLimit = 5
	repeatOffenderPenalty  = 0.2
)

// TrustService applies trust-record state transitions. UpdateUserTrustScore
// is a pure snapshot+delta function; serializing concurrent writers for the
// same user is the TrustWorker's job, not this service's.
type TrustService struct {
	now func() time.Time
}

func NewTrustService() *TrustService {
	return &TrustService{now: time.Now}
}

// UpdateUserTrustScore returns a new trust record with the deltas applied.
// The component fields move incrementally and independently:
//
//	viewAuthenticity += validatedViews*0.01, capped at 1
//	viewAuthenticity -= suspiciousActions*0.05, floored at 0
//	reportAccuracy   += accurateReports*0.05 - inaccurateReports*0.10
//
// (inaccuracy costs twice what accuracy earns). OverallTrust is then
// recomputed from scratch as a 0.4/0.3/0.3 blend of the three components,
// plus an account-age bonus, minus a flat 0.2 once the lifetime suspicious
// action count exceeds 5.
func (s *TrustService) UpdateUserTrustScore(current model.UserTrustScore, deltas model.TrustDeltas) model.UserTrustScore {
	updated := current

	if deltas.ValidatedViews > 0 {
		updated.ViewAuthenticity = math.Min(1,
			updated.ViewAuthenticity+float64(deltas.ValidatedViews)*validatedViewBonus)
	}

	if deltas.SuspiciousActions > 0 {
		updated.ViewAuthenticity = math.Max(0,
			updated.ViewAuthenticity-float64(deltas.SuspiciousActions)*suspiciousActionPenalty)
		updated.SuspiciousActionsCount += deltas.SuspiciousActions
	}

	if deltas.AccurateReports > 0 {
		updated.ReportAccuracy = math.Min(1,
			updated.ReportAccuracy+float64(deltas.AccurateReports)*accurateReportBonus)
	}

	if deltas.InaccurateReports > 0 {
		updated.ReportAccuracy = math.Max(0,
			updated.ReportAccuracy-float64(deltas.InaccurateReports)*inaccurateReportPenalty)
	}

	updated.OverallTrust = updated.ViewAuthenticity*viewAuthenticityWeight +
		updated.ReportAccuracy*reportAccuracyWeight +
		updated.EngagementQuality*engagementQualityWeight

	if updated.AccountAgeDays > ageBonusOneYearDays {
		updated.OverallTrust = math.Min(1.0, updated.OverallTrust+ageBonusOneYear)
	} else if updated.AccountAgeDays > ageBonusSixMoDays {
		updated.OverallTrust = math.Min(1.0, updated.OverallTrust+ageBonusSixMonths)
	}

	if updated.SuspiciousActionsCount > suspiciousActionsLimit {
		updated.OverallTrust = math.Max(0.0, updated.OverallTrust-repeatOffenderPenalty)
	}

	updated.UpdatedAt = s.now()

	return updated
}
