package worker

import (
	"context"

	"github.com/tenderdesk/procurement-service/internal/events"
	"github.com/tenderdesk/procurement-service/internal/service"
)

// StartNotificationWorker registers event subscribers on the dispatcher and
// starts draining the redis queue until ctx is cancelled.
func StartNotificationWorker(ctx context.Context, dispatcher events.Dispatcher, notificationService *service.NotificationService, publisher *events.RedisPublisher) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if dispatcher != nil && publisher != nil {
		publisher.Register(dispatcher)
		go publisher.Run(ctx)
	}
}
