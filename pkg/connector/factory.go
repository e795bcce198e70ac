// pkg/connector/factory.go
package connector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dataset-tools/insights/pkg/config"
)

// SourceFactory creates database table sources from environment config
type SourceFactory struct {
	logger *zap.Logger
}

// NewSourceFactory creates a new source factory
func NewSourceFactory(logger *zap.Logger) *SourceFactory {
	return &SourceFactory{logger: logger}
}

// CreatePostgresSource loads Postgres config and opens a source
func (f *SourceFactory) CreatePostgresSource(ctx context.Context) (*PostgresSource, error) {
	f.logger.Info("Creating PostgreSQL source")

	cfg, err := config.LoadPostgresConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load PostgreSQL configuration: %w", err)
	}

	source, err := NewPostgresSource(ctx, cfg, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL source: %w", err)
	}

	return source, nil
}

// CreateSnowflakeSource loads Snowflake config and opens a source
func (f *SourceFactory) CreateSnowflakeSource(ctx context.Context) (*SnowflakeSource, error) {
	f.logger.Info("Creating Snowflake source")

	cfg, err := config.LoadSnowflakeConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load Snowflake configuration: %w", err)
	}

	source, err := NewSnowflakeSource(ctx, cfg, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Snowflake source: %w", err)
	}

	return source, nil
}
