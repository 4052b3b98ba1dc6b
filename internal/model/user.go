package model

import "time"

// UserStatus is the account tier of a TruTube user.
type UserStatus string

const (
	StatusViewer    UserStatus = "viewer"
	StatusSupporter UserStatus = "supporter"
	StatusCreator   UserStatus = "creator"
	StatusPro       UserStatus = "pro"
	StatusElite     UserStatus = "elite"
)

// User represents a platform account. Creators are users with published
// videos; the ranking engine only reads SubscriberCount and UserStatus.
type User struct {
	ID              string     `json:"id"`
	Username        string     `json:"username,omitempty"`
	DisplayName     string     `json:"displayName"`
	UserStatus      UserStatus `json:"userStatus"`
	SubscriberCount int        `json:"subscriberCount"`
	IsVerified      bool       `json:"isVerified,omitempty"`
	TrustScore      *float64   `json:"trustScore,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// UserPreferences holds a viewer's subscribed universes and sub-universes.
// Read-only input to the preference-scoped feed.
type UserPreferences struct {
	UserID         string    `json:"userId"`
	UniverseIDs    []string  `json:"universeIds"`
	SubUniverseIDs []string  `json:"subUniverseIds"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
