// internal/app/bootstrap/apideps.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/nursehub/nursehub/internal/app/gateway"
	"github.com/nursehub/nursehub/internal/app/system/timeouts"
)

// APIDeps holds the backend dependencies for the app. NurseHub owns no
// database; its only backend is the REST API reached through the
// gateway client.
type APIDeps struct {
	Gateway *gateway.Client
}

// ConnectDB fills WAFFLE's connect slot. There is no database to dial;
// the gateway client is constructed here so it exists before handlers
// are built, with the circuit breaker in its initial closed state.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (APIDeps, error) {
	client := gateway.New(appCfg.APIBaseURL, timeouts.Long(), logger)
	return APIDeps{Gateway: client}, nil
}

// EnsureSchema is a no-op: schema belongs to the backend service.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps APIDeps, logger *zap.Logger) error {
	return nil
}

// Shutdown tears down backend resources. The gateway client holds no
// persistent connections beyond the HTTP pool.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps APIDeps, logger *zap.Logger) error {
	if deps.Gateway != nil {
		logger.Info("closing gateway HTTP connections")
		deps.Gateway.CloseIdleConnections()
	}
	return nil
}
