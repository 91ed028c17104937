// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	// Shared page chrome (layout, nav, notices) registers its template
	// set on import so the engine boot in BuildHandler picks it up.
	_ "github.com/nursehub/nursehub/internal/app/features/shared/views"
)

// Startup runs one-time application initialization after the backend
// gateway is constructed, but before the HTTP handler is built. It is
// the place to warm caches or perform any app-wide setup that depends
// on config and backends.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps APIDeps, logger *zap.Logger) error {
	logger.Info("nursehub starting",
		zap.String("env", coreCfg.Env),
		zap.String("backend", appCfg.APIBaseURL))
	return nil
}
