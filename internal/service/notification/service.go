package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

// Config holds notification service configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 1000
}

type service struct {
	hub    *sse.Hub
	config Config

	queue    chan notification.Event
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once

	// mu guards stopped; Publish holds it for reading while it enqueues.
	mu      sync.RWMutex
	stopped bool
}

// NewNotificationService starts the delivery workers.
func NewNotificationService(hub *sse.Hub, cfg Config) notification.Service {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		hub:    hub,
		config: cfg,
		queue:  make(chan notification.Event, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)

	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case e := <-s.queue:
			s.deliver(e)
		case <-s.stopCh:
			// Drain what is already queued.
			for {
				select {
				case e := <-s.queue:
					s.deliver(e)
				default:
					slog.Debug("notification worker stopped", "worker", id)
					return
				}
			}
		}
	}
}

func (s *service) deliver(e notification.Event) {
	s.hub.Publish(sse.Event{
		UserID: e.RecipientID,
		Name:   string(e.Type),
		Data:   toResponse(e),
	})
}

// Publish implements notification.Service.
func (s *service) Publish(ctx context.Context, req notification.PublishRequest) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stopped {
		return notification.ErrServiceStopped
	}

	now := time.Now()
	seen := make(map[string]bool, len(req.RecipientIDs))
	for _, recipient := range req.RecipientIDs {
		if recipient == "" || seen[recipient] {
			continue
		}
		seen[recipient] = true

		e := notification.Event{
			ID:          uuid.NewString(),
			CompanyID:   req.CompanyID,
			RecipientID: recipient,
			ActorID:     req.ActorID,
			Type:        req.Type,
			HolidayID:   req.HolidayID,
			Message:     req.Message,
			CreatedAt:   now,
		}

		select {
		case s.queue <- e:
		case <-ctx.Done():
			return ctx.Err()
		default:
			// Queue full, deliver inline
			s.deliver(e)
		}
	}
	return nil
}

// Subscribe creates an SSE subscription for a user
func (s *service) Subscribe(ctx context.Context, userID string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(userID)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				resp, ok := event.Data.(notification.EventResponse)
				if !ok {
					continue
				}
				select {
				case out <- notification.SSEEvent{Event: event.Name, Data: resp}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop drains the queue and waits for the workers.
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		close(s.stopCh)
		s.mu.Unlock()

		s.wg.Wait()
		slog.Info("notification service stopped")
	})
}

func toResponse(e notification.Event) notification.EventResponse {
	return notification.EventResponse{
		ID:        e.ID,
		Type:      e.Type,
		HolidayID: e.HolidayID,
		ActorID:   e.ActorID,
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
}
