package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/goroti11/trutube-sub003/internal/model"
	"github.com/goroti11/trutube-sub003/internal/repository"
)

// How many videos a ranking pass considers. The freshness signal zeroes out
// after ~4 days, so a recency-ordered slice this size covers everything that
// can still rank on freshness plus a tail competing on engagement alone.
const candidatePoolSize = 500

// FeedQueryService assembles ranked feeds from stored records: it loads the
// candidate pool and creators, delegates ranking to FeedService, and caches
// results per ranking epoch.
type FeedQueryService struct {
	videos *repository.VideoRepo
	users  *repository.UserRepo
	feed   *FeedService
	cache  *CacheService
}

func NewFeedQueryService(videos *repository.VideoRepo, users *repository.UserRepo, feed *FeedService, cache *CacheService) *FeedQueryService {
	return &FeedQueryService{videos: videos, users: users, feed: feed, cache: cache}
}

// GlobalFeed returns the unpersonalized ranked feed.
func (s *FeedQueryService) GlobalFeed(ctx context.Context, limit int) (*model.FeedResponse, error) {
	key := fmt.Sprintf("global:%d", limit)
	if resp := s.cached(ctx, key); resp != nil {
		return resp, nil
	}

	videos, creators, err := s.loadCandidates(ctx)
	if err != nil {
		return nil, err
	}

	entries := s.feed.GenerateFeed(videos, creators, limit)
	return s.finish(ctx, key, entries), nil
}

// PersonalizedFeed returns the ranked feed filtered by the viewer's tier.
func (s *FeedQueryService) PersonalizedFeed(ctx context.Context, userID string, limit int) (*model.FeedResponse, error) {
	key := fmt.Sprintf("personal:%s:%d", userID, limit)
	if resp := s.cached(ctx, key); resp != nil {
		return resp, nil
	}

	viewer, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	subscriptions, err := s.users.GetSubscriptions(ctx, userID)
	if err != nil {
		return nil, err
	}

	videos, creators, err := s.loadCandidates(ctx)
	if err != nil {
		return nil, err
	}

	entries := s.feed.GeneratePersonalizedFeed(videos, creators, viewer, subscriptions, limit)
	return s.finish(ctx, key, entries), nil
}

// UniverseFeed returns the ranked feed scoped to one universe.
func (s *FeedQueryService) UniverseFeed(ctx context.Context, universeID string, subUniverseID *string, limit int) (*model.FeedResponse, error) {
	key := fmt.Sprintf("universe:%s:%d", universeID, limit)
	if subUniverseID != nil {
		key = fmt.Sprintf("universe:%s:%s:%d", universeID, *subUniverseID, limit)
	}
	if resp := s.cached(ctx, key); resp != nil {
		return resp, nil
	}

	videos, creators, err := s.loadCandidates(ctx)
	if err != nil {
		return nil, err
	}

	entries := s.feed.GenerateUniverseFeed(videos, creators, universeID, subUniverseID, limit)
	return s.finish(ctx, key, entries), nil
}

// PreferenceFeed returns the ranked feed scoped to the viewer's preferred
// universes. Users with no stored preferences get the premium gate only.
func (s *FeedQueryService) PreferenceFeed(ctx context.Context, userID string, limit int) (*model.FeedResponse, error) {
	key := fmt.Sprintf("prefs:%s:%d", userID, limit)
	if resp := s.cached(ctx, key); resp != nil {
		return resp, nil
	}

	prefs, err := s.users.GetPreferences(ctx, userID)
	if err != nil {
		prefs = &model.UserPreferences{UserID: userID}
	}

	subscriptions, err := s.users.GetSubscriptions(ctx, userID)
	if err != nil {
		return nil, err
	}

	videos, creators, err := s.loadCandidates(ctx)
	if err != nil {
		return nil, err
	}

	entries := s.feed.GeneratePreferenceFeed(videos, creators, prefs, subscriptions, limit)
	return s.finish(ctx, key, entries), nil
}

// loadCandidates fetches the candidate pool and every creator it references.
func (s *FeedQueryService) loadCandidates(ctx context.Context) ([]model.Video, map[string]model.User, error) {
	videos, err := s.videos.ListCandidates(ctx, candidatePoolSize)
	if err != nil {
		return nil, nil, err
	}

	idSet := make(map[string]struct{}, len(videos))
	for _, v := range videos {
		idSet[v.CreatorID] = struct{}{}
		if v.UserID != "" {
			idSet[v.UserID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	creators, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return videos, creators, nil
}

func (s *FeedQueryService) cached(ctx context.Context, key string) *model.FeedResponse {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.GetFeed(ctx, key)
	if err != nil {
		log.Printf("cache: feed get error: %v", err)
		return nil
	}
	if data == nil {
		return nil
	}
	var resp model.FeedResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *FeedQueryService) finish(ctx context.Context, key string, entries []model.FeedEntry) *model.FeedResponse {
	if entries == nil {
		entries = []model.FeedEntry{}
	}
	resp := &model.FeedResponse{
		Entries:     entries,
		Count:       len(entries),
		GeneratedAt: time.Now(),
	}
	if s.cache != nil {
		if err := s.cache.SetFeed(ctx, key, resp); err != nil {
			log.Printf("cache: feed set error: %v", err)
		}
	}
	return resp
}
