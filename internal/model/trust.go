package model

import "time"

// UserTrustScore is the long-lived reputation record for one user. The
// component fields (ViewAuthenticity, ReportAccuracy, EngagementQuality) are
// adjusted incrementally; OverallTrust is always recomputed from them.
// Version is the optimistic-concurrency counter used by the trust repository.
type UserTrustScore struct {
	UserID                 string    `json:"userId"`
	OverallTrust           float64   `json:"overallTrust"`
	ViewAuthenticity       float64   `json:"viewAuthenticity"`
	ReportAccuracy         float64   `json:"reportAccuracy"`
	EngagementQuality      float64   `json:"engagementQuality"`
	AccountAgeDays         int       `json:"accountAgeDays"`
	VerifiedActionsCount   int       `json:"verifiedActionsCount"`
	SuspiciousActionsCount int       `json:"suspiciousActionsCount"`
	UpdatedAt              time.Time `json:"updatedAt"`
	Version                int64     `json:"-"`
}

// TrustDeltas are the pending adjustments for one user. Each counter is the
// number of events of that kind since the last write; they merge by addition
// so concurrent events for the same user collapse into one record update.
type TrustDeltas struct {
	ValidatedViews    int
	SuspiciousActions int
	AccurateReports   int
	InaccurateReports int
}

// Merge folds another delta set into this one.
func (d *TrustDeltas) Merge(other TrustDeltas) {
	d.ValidatedViews += other.ValidatedViews
	d.SuspiciousActions += other.SuspiciousActions
	d.AccurateReports += other.AccurateReports
	d.InaccurateReports += other.InaccurateReports
}

// IsZero reports whether the delta set carries no adjustments.
func (d TrustDeltas) IsZero() bool {
	return d.ValidatedViews == 0 && d.SuspiciousActions == 0 &&
		d.AccurateReports == 0 && d.InaccurateReports == 0
}

// TrustResponse is the API response for trust record lookups.
type TrustResponse struct {
	UserID                 string    `json:"userId"`
	OverallTrust           float64   `json:"overallTrust"`
	ViewAuthenticity       float64   `json:"viewAuthenticity"`
	ReportAccuracy         float64   `json:"reportAccuracy"`
	EngagementQuality      float64   `json:"engagementQuality"`
	AccountAgeDays         int       `json:"accountAgeDays"`
	SuspiciousActionsCount int       `json:"suspiciousActionsCount"`
	UpdatedAt              time.Time `json:"updatedAt"`
}
