package app

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pevans/newscards/scraper"
)

// Session is a State shared between concurrent callers. Every operation
// holds the lock for its whole duration, so at most one fetch runs at a time.
type Session struct {
	mu      sync.Mutex
	fetcher Fetcher
	state   State
}

// NewSession creates a session for cfg. The feed stays empty until the
// first Reload.
func NewSession(f Fetcher, cfg scraper.SourceConfig) *Session {
	return &Session{
		fetcher: f,
		state:   NewState(cfg),
	}
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Reload refreshes the feed and returns the new state.
func (s *Session) Reload(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reload(ctx, s.fetcher, s.state)
	return s.state
}

// ApplySettings updates the configuration and reloads.
func (s *Session) ApplySettings(ctx context.Context, sub scraper.Submission) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reload(ctx, s.fetcher, ApplySettings(s.state, sub))
	return s.state
}

// OpenDetail opens item index of the feed identified by generation;
// uuid.Nil means the current feed. The lookup and the fetch happen under one
// lock, so a lookup error (newsfeed.ErrStaleGeneration,
// newsfeed.ErrIndexOutOfRange) is returned instead of a placeholder detail.
func (s *Session) OpenDetail(ctx context.Context, generation uuid.UUID, index int) (Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation == uuid.Nil {
		generation = s.state.Feed.Generation
	}
	if _, err := s.state.Feed.Get(generation, index); err != nil {
		return Detail{}, err
	}

	return OpenDetail(ctx, s.fetcher, s.state.Feed, generation, index), nil
}
