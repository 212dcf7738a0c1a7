package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/tenderdesk/procurement-service/internal/config"
	"github.com/tenderdesk/procurement-service/internal/events"
)

// NotificationService handles emitting notifications for item events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventItemSubmitted, n.handleItemSubmitted)
	n.dispatcher.Subscribe(events.EventItemStatusChanged, n.handleItemStatusChanged)
}

// New submissions go to the admins' inbox.
func (n *NotificationService) handleItemSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("ItemSubmitted", zap.Int64("item_id", event.ItemID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleItemStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ItemStatusChanged", zap.Int64("item_id", event.ItemID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("item_id", event.ItemID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("item_id", event.ItemID),
		zap.String("event_type", string(event.Type)))
}
