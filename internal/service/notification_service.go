package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/hustle-village/internal/config"
	"github.com/spec-kit/hustle-village/internal/events"
)

// NotificationService handles emitting notifications for domain events.
// Delivery is stubbed: real email/webhook delivery is out of scope.
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
	n.dispatcher.Subscribe(events.EventSignupCodeIssued, n.handleSignupCodeIssued)
	n.dispatcher.Subscribe(events.EventDeletionRequested, n.handleDeletionRequested)
	n.dispatcher.Subscribe(events.EventDeletionResolved, n.handleDeletionResolved)
	n.dispatcher.Subscribe(events.EventServiceCreated, n.handleServiceCreated)
}

func (n *NotificationService) handleSignupCodeIssued(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SignupCodeIssuedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("SignupCodeIssued", zap.String("email", payload.Email))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleDeletionRequested(ctx context.Context, event events.Event) error {
	// Admins would be alerted here once delivery exists.
	n.logger.Info("DeletionRequested", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleDeletionResolved(ctx context.Context, event events.Event) error {
	// The seller would be told the outcome here once delivery exists.
	n.logger.Info("DeletionResolved", zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleServiceCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ServiceCreated", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
