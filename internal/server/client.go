package server

import (
	"time"

	"github.com/vzahanych/brightsky/internal/config"
	"github.com/vzahanych/brightsky/pkg/client"
	"github.com/vzahanych/brightsky/pkg/telemetry"
	"go.uber.org/zap"
)

// NewClient builds an API client from the api section of the configuration.
func NewClient(cfg config.APIConfig, logger *zap.Logger, tele *telemetry.Telemetry) *client.Client {
	opts := []client.Option{
		client.WithLogger(logger),
		client.WithTelemetry(tele),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, client.WithTimeout(time.Duration(cfg.Timeout)*time.Second))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, client.WithBaseURL(cfg.BaseURL))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, client.WithUserAgent(cfg.UserAgent))
	}
	return client.New(opts...)
}
