package service

import (
	"context"
	"fmt"
	"time"

	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/catalog"
	"github.com/unhuconlon-afk/NERDTECHSHOPPING/internal/state"
)

// RecentlyViewedService keeps each session's recently viewed product ids,
// most recent first.
type RecentlyViewedService interface {
	IDs(ctx context.Context, sessionID string) ([]int64, error)
	Record(ctx context.Context, sessionID string, productID int64) error
}

type recentlyViewedService struct {
	store state.Store
	keys  state.Keys
	ttl   time.Duration
}

// NewRecentlyViewedService creates a RecentlyViewedService. Lists expire
// ttl after the last view; zero keeps them forever.
func NewRecentlyViewedService(store state.Store, keys state.Keys, ttl time.Duration) RecentlyViewedService {
	return &recentlyViewedService{store: store, keys: keys, ttl: ttl}
}

func (s *recentlyViewedService) key(sessionID string) string {
	return s.keys.Key("recent", sessionID)
}

func (s *recentlyViewedService) IDs(ctx context.Context, sessionID string) ([]int64, error) {
	ids, _, err := state.GetJSON[[]int64](ctx, s.store, s.key(sessionID))
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func (s *recentlyViewedService) Record(ctx context.Context, sessionID string, productID int64) error {
	ids, err := s.IDs(ctx, sessionID)
	if err != nil {
		return err
	}
	ids = catalog.PushRecent(ids, productID, catalog.RecentLimit)
	if err := state.SetJSON(ctx, s.store, s.key(sessionID), ids, s.ttl); err != nil {
		return fmt.Errorf("failed to save recently viewed: %w", err)
	}
	return nil
}
