package domain

import "context"

// DefaultEnvironment is used when a request does not specify one.
const DefaultEnvironment = "master"

type contextKey string

const (
	projectIDKey   contextKey = "project_id"
	environmentKey contextKey = "environment"
)

// WithProjectID returns a context carrying the project ID.
func WithProjectID(ctx context.Context, projectID string) context.Context {
	return context.WithValue(ctx, projectIDKey, projectID)
}

// GetProjectIDFromContext extracts the project ID, or "" when absent.
func GetProjectIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(projectIDKey).(string); ok {
		return v
	}
	return ""
}

// WithEnvironment returns a context carrying the environment.
func WithEnvironment(ctx context.Context, environment string) context.Context {
	return context.WithValue(ctx, environmentKey, environment)
}

// GetEnvironmentFromContext extracts the environment, or "" when absent.
func GetEnvironmentFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(environmentKey).(string); ok {
		return v
	}
	return ""
}
