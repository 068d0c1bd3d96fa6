package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan notification.SSEEvent) notification.SSEEvent {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return notification.SSEEvent{}
	}
}

func TestService_PublishAndSubscribe(t *testing.T) {
	hub := sse.NewHub()
	svc := NewNotificationService(hub, Config{WorkerCount: 1, QueueSize: 4})
	defer svc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, cleanup := svc.Subscribe(ctx, "employer")
	defer cleanup()

	err := svc.Publish(context.Background(), notification.PublishRequest{
		CompanyID:    "c1",
		RecipientIDs: []string{"employer", "employer", ""},
		ActorID:      "employee",
		Type:         notification.TypeHolidayRequested,
		HolidayID:    "h1",
		Message:      "Ada requested a holiday",
	})
	require.NoError(t, err)

	e := receive(t, stream)
	assert.Equal(t, "holiday_requested", e.Event)
	assert.Equal(t, "h1", e.Data.HolidayID)
	assert.Equal(t, "employee", e.Data.ActorID)
	assert.NotEmpty(t, e.Data.ID)

	select {
	case dup := <-stream:
		t.Fatalf("duplicate recipient delivered twice: %+v", dup)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestService_PublishAfterStop(t *testing.T) {
	svc := NewNotificationService(sse.NewHub(), Config{})
	svc.Stop()
	svc.Stop()

	err := svc.Publish(context.Background(), notification.PublishRequest{RecipientIDs: []string{"a"}})
	assert.ErrorIs(t, err, notification.ErrServiceStopped)
}

func TestService_StopWhilePublishingLeavesNothingQueued(t *testing.T) {
	for round := 0; round < 20; round++ {
		svc := NewNotificationService(sse.NewHub(), Config{WorkerCount: 1, QueueSize: 64}).(*service)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					err := svc.Publish(context.Background(), notification.PublishRequest{
						RecipientIDs: []string{"a", "b"},
						Type:         notification.TypeHolidayRequested,
					})
					if errors.Is(err, notification.ErrServiceStopped) {
						return
					}
					if !assert.NoError(t, err) {
						return
					}
				}
			}()
		}

		time.Sleep(time.Millisecond)
		svc.Stop()
		wg.Wait()

		assert.Zero(t, len(svc.queue), "round %d: events queued after stop", round)
	}
}

func TestService_SubscribeEndsWithContext(t *testing.T) {
	svc := NewNotificationService(sse.NewHub(), Config{})
	defer svc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	stream, cleanup := svc.Subscribe(ctx, "a")
	defer cleanup()

	cancel()
	select {
	case _, ok := <-stream:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("stream not closed after cancel")
	}
}
