package application

import (
	"context"
	"fmt"
	"time"

	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AdapterProvider builds a platform adapter for one tenant's stored
// credentials. Satisfied by CredentialsService.
type AdapterProvider interface {
	AdapterFor(ctx context.Context, projectID, environment string, platform domain.Platform) (ports.Adapter, error)
}

// ConnectionService drives the connection lifecycle: a connection starts
// pending, becomes connected when TestConnection succeeds, drops to error
// when the platform rejects us, and can recover from error by re-testing.
type ConnectionService struct {
	connRepo ports.ConnectionRepository
	adapters AdapterProvider
	logger   zerolog.Logger
}

// NewConnectionService creates a new connection service
func NewConnectionService(
	connRepo ports.ConnectionRepository,
	adapters AdapterProvider,
	logger zerolog.Logger,
) *ConnectionService {
	return &ConnectionService{
		connRepo: connRepo,
		adapters: adapters,
		logger:   logger,
	}
}

// Connect creates (or revives) a connection and verifies it against the
// platform. The connection is persisted in whichever state the test left it.
func (s *ConnectionService) Connect(ctx context.Context, projectID, environment string, platform domain.Platform, shopDomain string) (*domain.Connection, error) {
	if environment == "" {
		environment = domain.DefaultEnvironment
	}

	conn, err := s.connRepo.Get(ctx, projectID, environment, platform)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		conn = &domain.Connection{
			ID:          uuid.NewString(),
			ProjectID:   projectID,
			Environment: environment,
			Platform:    platform,
			ShopDomain:  shopDomain,
			Status:      domain.ConnectionPending,
			CreatedAt:   time.Now(),
		}
	}
	if shopDomain != "" {
		conn.ShopDomain = shopDomain
	}

	s.test(ctx, conn)

	if err := s.connRepo.Save(ctx, conn); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("projectId", projectID).
		Str("platform", string(platform)).
		Str("status", string(conn.Status)).
		Msg("Connection established")
	return conn, nil
}

// Test re-runs the platform connectivity check and applies the resulting
// state transition. An errored connection recovers to connected on success.
func (s *ConnectionService) Test(ctx context.Context, projectID, environment string, platform domain.Platform) (*domain.Connection, error) {
	if environment == "" {
		environment = domain.DefaultEnvironment
	}

	conn, err := s.connRepo.Get(ctx, projectID, environment, platform)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return nil, fmt.Errorf("no %s connection for project %s and environment %s", platform, projectID, environment)
	}

	s.test(ctx, conn)

	if err := s.connRepo.Save(ctx, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Disconnect moves a connection to its terminal state.
func (s *ConnectionService) Disconnect(ctx context.Context, projectID, environment string, platform domain.Platform) error {
	if environment == "" {
		environment = domain.DefaultEnvironment
	}

	conn, err := s.connRepo.Get(ctx, projectID, environment, platform)
	if err != nil {
		return err
	}
	if conn == nil {
		return fmt.Errorf("no %s connection for project %s and environment %s", platform, projectID, environment)
	}

	if err := conn.Transition(domain.ConnectionDisconnected); err != nil {
		return err
	}
	if err := s.connRepo.Save(ctx, conn); err != nil {
		return err
	}

	s.logger.Info().
		Str("projectId", projectID).
		Str("platform", string(platform)).
		Msg("Connection disconnected")
	return nil
}

// Get retrieves one connection, or nil when absent.
func (s *ConnectionService) Get(ctx context.Context, projectID, environment string, platform domain.Platform) (*domain.Connection, error) {
	if environment == "" {
		environment = domain.DefaultEnvironment
	}
	return s.connRepo.Get(ctx, projectID, environment, platform)
}

// List retrieves all connections for a project and environment.
func (s *ConnectionService) List(ctx context.Context, projectID, environment string) ([]*domain.Connection, error) {
	if environment == "" {
		environment = domain.DefaultEnvironment
	}
	return s.connRepo.List(ctx, projectID, environment)
}

func (s *ConnectionService) test(ctx context.Context, conn *domain.Connection) {
	adapter, err := s.adapters.AdapterFor(ctx, conn.ProjectID, conn.Environment, conn.Platform)
	if err == nil {
		err = adapter.TestConnection(ctx)
	}

	if err != nil {
		if terr := conn.Transition(domain.ConnectionError); terr == nil {
			conn.LastError = err.Error()
		}
		s.logger.Warn().
			Err(err).
			Str("projectId", conn.ProjectID).
			Str("platform", string(conn.Platform)).
			Msg("Connection test failed")
		return
	}

	_ = conn.Transition(domain.ConnectionConnected)
}
