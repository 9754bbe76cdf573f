package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fittrack/internal/auth"
	"fittrack/internal/store"
	"fittrack/internal/strava"
)

// ErrFetchFailed is returned when the activity listing call fails after
// a valid token was obtained.
var ErrFetchFailed = errors.New("fetching activities failed")

// SyncService imports recent Strava activities as workouts.
type SyncService struct {
	store   *store.Store
	manager *auth.Manager
	baseURL string
	now     func() time.Time
}

// NewSyncService creates a sync service.
func NewSyncService(s *store.Store, m *auth.Manager) *SyncService {
	return &SyncService{
		store:   s,
		manager: m,
		baseURL: strava.BaseURL,
		now:     time.Now,
	}
}

// SyncResult reports what a sync accomplished.
type SyncResult struct {
	Fetched  int // activities returned by Strava
	Imported int // new workouts stored
	Skipped  int // already imported on a previous sync
}

// SyncActivities fetches up to maxCount recent activities in one page
// and stores each as a workout, in the order Strava returns them
// (most recent first). Activities imported on an earlier sync are
// skipped. Any persistence failure aborts the remainder; whatever was
// stored before the failure stays stored.
func (s *SyncService) SyncActivities(ctx context.Context, userID string, maxCount int) (*SyncResult, error) {
	// Surfaces ErrNotConnected / ErrRefreshFailed before any API call.
	if _, err := s.manager.ValidAccessToken(ctx, userID); err != nil {
		return nil, err
	}

	client := strava.NewClientWithBaseURL(s.manager.HTTPClient(ctx, userID), s.baseURL)
	activities, err := client.ListActivities(ctx, maxCount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	result := &SyncResult{Fetched: len(activities)}
	now := s.now()

	for _, a := range activities {
		workout := MapActivity(a, userID, now)
		err := s.store.InsertWorkout(workout)
		if errors.Is(err, store.ErrDuplicateWorkout) {
			result.Skipped++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("storing activity %d: %w", a.ID, err)
		}
		result.Imported++
	}

	if err := s.store.UpdateLastSync(userID, now); err != nil {
		return result, fmt.Errorf("recording sync time: %w", err)
	}

	return result, nil
}

// MaxSyncActivities is the default page size for a sync.
const MaxSyncActivities = 30
