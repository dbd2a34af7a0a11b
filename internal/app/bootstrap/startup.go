// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// CollabHub has no shared resources to warm; it just records the
// effective configuration for operators.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("collabhub starting",
		zap.String("database", appCfg.MongoDatabase),
		zap.String("base_url", appCfg.BaseURL),
		zap.Duration("reset_token_expiry", appCfg.ResetTokenExpiry))
	return nil
}
