package service

import (
	"sort"
	"time"

	"github.com/goroti11/trutube-sub003/internal/model"
)

// DefaultFeedLimit is the page size used when callers pass limit <= 0.
const DefaultFeedLimit = 50

// FeedService builds ranked feeds over in-memory candidate sets. Every call
// reconstructs the full ranking; callers wanting cheaper reads should cache
// per ranking epoch (see CacheService) rather than re-deriving
// freshness-dependent scores on each request.
type FeedService struct {
	ranking *RankingService
	now     func() time.Time
}

func NewFeedService(ranking *RankingService) *FeedService {
	return &FeedService{ranking: ranking, now: time.Now}
}

// GenerateFeed scores every candidate video, sorts descending by final
// score, and truncates to limit. Creator lookup tries CreatorID first and
// falls back to the legacy UserID field; videos whose creator cannot be
// resolved are dropped from the output, not surfaced as errors. Equal
// scores keep their input order.
func (s *FeedService) GenerateFeed(videos []model.Video, creators map[string]model.User, limit int) []model.FeedEntry {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	now := s.now()

	entries := make([]model.FeedEntry, 0, len(videos))
	for _, v := range videos {
		creator, ok := creators[v.CreatorID]
		if !ok {
			creator, ok = creators[v.UserID]
		}
		if !ok {
			continue
		}

		score := s.ranking.ComputeVideoScore(&v, &creator, now)
		entries = append(entries, model.FeedEntry{Video: v, Score: score})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score.FinalScore > entries[j].Score.FinalScore
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// GeneratePersonalizedFeed filters candidates by the viewer's account tier
// before ranking. Viewers get discovery mode (shorts or free videos);
// supporters and creators additionally see premium videos from creators
// they subscribe to. Pro and elite tiers see everything.
func (s *FeedService) GeneratePersonalizedFeed(videos []model.Video, creators map[string]model.User, viewer *model.User, subscriptions []string, limit int) []model.FeedEntry {
	var filtered []model.Video

	switch viewer.UserStatus {
	case model.StatusViewer:
		for _, v := range videos {
			if v.IsShort || !v.IsPremium {
				filtered = append(filtered, v)
			}
		}
	case model.StatusSupporter, model.StatusCreator:
		subscribed := toSet(subscriptions)
		for _, v := range videos {
			if !v.IsPremium || subscribed[v.CreatorID] {
				filtered = append(filtered, v)
			}
		}
	default:
		filtered = videos
	}

	return s.GenerateFeed(filtered, creators, limit)
}

// GenerateUniverseFeed restricts candidates to one universe, and optionally
// to one of its sub-universes, before ranking.
func (s *FeedService) GenerateUniverseFeed(videos []model.Video, creators map[string]model.User, universeID string, subUniverseID *string, limit int) []model.FeedEntry {
	var filtered []model.Video
	for _, v := range videos {
		if v.UniverseID == nil || *v.UniverseID != universeID {
			continue
		}
		if subUniverseID != nil && (v.SubUniverseID == nil || *v.SubUniverseID != *subUniverseID) {
			continue
		}
		filtered = append(filtered, v)
	}

	return s.GenerateFeed(filtered, creators, limit)
}

// GeneratePreferenceFeed restricts candidates to the viewer's preferred
// universes and sub-universes. Each filter only applies when the matching
// preference set is non-empty. Premium videos are gated on subscription to
// the creator, same as the supporter tier.
func (s *FeedService) GeneratePreferenceFeed(videos []model.Video, creators map[string]model.User, prefs *model.UserPreferences, subscriptions []string, limit int) []model.FeedEntry {
	filtered := videos

	if len(prefs.UniverseIDs) > 0 {
		wanted := toSet(prefs.UniverseIDs)
		var next []model.Video
		for _, v := range filtered {
			if v.UniverseID != nil && wanted[*v.UniverseID] {
				next = append(next, v)
			}
		}
		filtered = next
	}

	if len(prefs.SubUniverseIDs) > 0 {
		wanted := toSet(prefs.SubUniverseIDs)
		var next []model.Video
		for _, v := range filtered {
			if v.SubUniverseID != nil && wanted[*v.SubUniverseID] {
				next = append(next, v)
			}
		}
		filtered = next
	}

	subscribed := toSet(subscriptions)
	var next []model.Video
	for _, v := range filtered {
		if !v.IsPremium || subscribed[v.CreatorID] {
			next = append(next, v)
		}
	}
	filtered = next

	return s.GenerateFeed(filtered, creators, limit)
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
