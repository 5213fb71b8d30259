package application

import (
	"context"
	"fmt"

	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CredentialsService manages platform API credentials. Secret fields are
// encrypted before they reach the repository and decrypted on the way out;
// nothing below this service ever sees plaintext secrets at rest.
type CredentialsService struct {
	credsRepo     ports.CredentialsRepository
	encryptionSvc ports.EncryptionService
	registry      *Registry
	logger        zerolog.Logger
}

// NewCredentialsService creates a new credentials service
func NewCredentialsService(
	credsRepo ports.CredentialsRepository,
	encryptionSvc ports.EncryptionService,
	registry *Registry,
	logger zerolog.Logger,
) *CredentialsService {
	return &CredentialsService{
		credsRepo:     credsRepo,
		encryptionSvc: encryptionSvc,
		registry:      registry,
		logger:        logger,
	}
}

// Save encrypts and stores credentials. The input holds plaintext secrets
// and is not modified.
func (s *CredentialsService) Save(ctx context.Context, creds *domain.Credentials) error {
	stored := *creds
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.Environment == "" {
		stored.Environment = domain.DefaultEnvironment
	}

	var err error
	for _, field := range []struct {
		name  string
		value *string
	}{
		{"client secret", &stored.ClientSecret},
		{"access token", &stored.AccessToken},
		{"refresh token", &stored.RefreshToken},
		{"webhook secret", &stored.WebhookSecret},
	} {
		*field.value, err = s.encryptionSvc.Encrypt(*field.value)
		if err != nil {
			return fmt.Errorf("failed to encrypt %s: %w", field.name, err)
		}
	}

	if err := s.credsRepo.Save(ctx, &stored); err != nil {
		return err
	}

	s.logger.Info().
		Str("projectId", stored.ProjectID).
		Str("environment", stored.Environment).
		Str("platform", string(stored.Platform)).
		Msg("Credentials saved")
	return nil
}

// Get retrieves credentials with secret fields decrypted. Returns nil when
// no credentials exist.
func (s *CredentialsService) Get(ctx context.Context, projectID, environment string, platform domain.Platform) (*domain.Credentials, error) {
	if environment == "" {
		environment = domain.DefaultEnvironment
	}

	creds, err := s.credsRepo.Get(ctx, projectID, environment, platform)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, nil
	}

	for _, field := range []struct {
		name  string
		value *string
	}{
		{"client secret", &creds.ClientSecret},
		{"access token", &creds.AccessToken},
		{"refresh token", &creds.RefreshToken},
		{"webhook secret", &creds.WebhookSecret},
	} {
		*field.value, err = s.encryptionSvc.Decrypt(*field.value)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt %s: %w", field.name, err)
		}
	}

	return creds, nil
}

// Delete removes stored credentials
func (s *CredentialsService) Delete(ctx context.Context, projectID, environment string, platform domain.Platform) error {
	if environment == "" {
		environment = domain.DefaultEnvironment
	}
	if err := s.credsRepo.Delete(ctx, projectID, environment, platform); err != nil {
		return err
	}

	s.logger.Info().
		Str("projectId", projectID).
		Str("environment", environment).
		Str("platform", string(platform)).
		Msg("Credentials deleted")
	return nil
}

// AdapterFor builds a platform adapter from stored credentials.
func (s *CredentialsService) AdapterFor(ctx context.Context, projectID, environment string, platform domain.Platform) (ports.Adapter, error) {
	creds, err := s.Get(ctx, projectID, environment, platform)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, fmt.Errorf("%s not configured for project %s and environment %s", platform, projectID, environment)
	}
	return s.registry.Build(creds)
}
