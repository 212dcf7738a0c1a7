package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/tenderdesk/procurement-service/internal/config"
	"github.com/tenderdesk/procurement-service/internal/events"
	"github.com/tenderdesk/procurement-service/internal/service"
)

type recordingDispatcher struct {
	subscribed map[events.EventType]int
}

func (d *recordingDispatcher) Publish(context.Context, events.Event) error { return nil }

func (d *recordingDispatcher) Subscribe(t events.EventType, _ events.EventHandler) {
	d.subscribed[t]++
}

func TestStartNotificationWorker(t *testing.T) {
	d := &recordingDispatcher{subscribed: map[events.EventType]int{}}
	notifications := service.NewNotificationService(d, zap.NewNop(), config.NotificationConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartNotificationWorker(ctx, d, notifications, events.NewRedisPublisher(nil, "procurement.items", nil))

	assert.Equal(t, 2, d.subscribed[events.EventItemSubmitted])
	assert.Equal(t, 2, d.subscribed[events.EventItemStatusChanged])
}

func TestStartNotificationWorker_NilSubscribers(t *testing.T) {
	d := &recordingDispatcher{subscribed: map[events.EventType]int{}}
	StartNotificationWorker(context.Background(), d, nil, nil)
	assert.Empty(t, d.subscribed)
}
