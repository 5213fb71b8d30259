package webhook_handlers

import (
	"context"

	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/ports"

	"github.com/rs/zerolog"
)

// UninstallHandler handles app/uninstalled events by disconnecting the
// store's connection. The project and environment come from the request
// context set by the webhook endpoint.
type UninstallHandler struct {
	connRepo ports.ConnectionRepository
	logger   zerolog.Logger
}

// NewUninstallHandler creates a new uninstall webhook handler
func NewUninstallHandler(connRepo ports.ConnectionRepository, logger zerolog.Logger) *UninstallHandler {
	return &UninstallHandler{
		connRepo: connRepo,
		logger:   logger,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *UninstallHandler) CanHandle(topic string) bool {
	return topic == domain.TopicAppUninstalled
}

// Handle processes an app uninstall webhook event
func (h *UninstallHandler) Handle(ctx context.Context, event *domain.CanonicalWebhookEvent) error {
	projectID := domain.GetProjectIDFromContext(ctx)
	environment := domain.GetEnvironmentFromContext(ctx)
	if environment == "" {
		environment = domain.DefaultEnvironment
	}

	if projectID == "" {
		h.logger.Warn().
			Str("platform", string(event.Platform)).
			Str("shop", event.Shop).
			Msg("Uninstall event without project context, nothing to disconnect")
		return nil
	}

	conn, err := h.connRepo.Get(ctx, projectID, environment, event.Platform)
	if err != nil {
		return err
	}
	if conn == nil {
		h.logger.Info().
			Str("projectId", projectID).
			Str("platform", string(event.Platform)).
			Msg("Uninstall event for unknown connection")
		return nil
	}

	if err := conn.Transition(domain.ConnectionDisconnected); err != nil {
		// Already disconnected; uninstall events may be redelivered.
		h.logger.Debug().Err(err).Str("projectId", projectID).Msg("Connection not in a disconnectable state")
		return nil
	}
	if err := h.connRepo.Save(ctx, conn); err != nil {
		return err
	}

	h.logger.Info().
		Str("projectId", projectID).
		Str("platform", string(event.Platform)).
		Str("shop", event.Shop).
		Msg("Connection disconnected after app uninstall")
	return nil
}
