// Package notification is the in-process NotificationSink collaborator: an
// append-only per-user event feed. The withdrawal engine only emits into it;
// retention and delivery are this package's concern alone.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is one message attached to a user.
type Event struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"time"`
}

// Service stores emitted events per user.
type Service struct {
	mu     sync.RWMutex
	feeds  map[uint][]Event
	logger *zap.Logger
}

// NewService creates an empty notification service.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		feeds:  make(map[uint][]Event),
		logger: logger,
	}
}

// Emit appends an event to the user's feed.
func (s *Service) Emit(_ context.Context, userID uint, text string) {
	event := Event{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.feeds[userID] = append(s.feeds[userID], event)
	s.mu.Unlock()

	s.logger.Info("notification emitted",
		zap.Uint("user_id", userID),
		zap.String("text", text),
	)
}

// List returns the user's events in emission order.
func (s *Service) List(_ context.Context, userID uint) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event(nil), s.feeds[userID]...)
}
