// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminfeature "github.com/nursehub/nursehub/internal/app/features/admin"
	assistantfeature "github.com/nursehub/nursehub/internal/app/features/assistant"
	blogsfeature "github.com/nursehub/nursehub/internal/app/features/blogs"
	errorsfeature "github.com/nursehub/nursehub/internal/app/features/errors"
	feedfeature "github.com/nursehub/nursehub/internal/app/features/feed"
	healthfeature "github.com/nursehub/nursehub/internal/app/features/health"
	homefeature "github.com/nursehub/nursehub/internal/app/features/home"
	invitationsfeature "github.com/nursehub/nursehub/internal/app/features/invitations"
	loginfeature "github.com/nursehub/nursehub/internal/app/features/login"
	logoutfeature "github.com/nursehub/nursehub/internal/app/features/logout"
	profilefeature "github.com/nursehub/nursehub/internal/app/features/profile"
	resourcesfeature "github.com/nursehub/nursehub/internal/app/features/resources"
	signupfeature "github.com/nursehub/nursehub/internal/app/features/signup"
	"github.com/nursehub/nursehub/internal/app/system/auth"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend client construction, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: the backend API gateway bundled in APIDeps
//   - logger: the fully configured zap.Logger for this app
//
// NurseHub initializes the template engine, applies session and CSRF
// middleware, and mounts feature routers for all application areas:
// home, login, signup, feed, resources, blogs, invitations, profile,
// admin, and the assistant.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps APIDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers. Expired backend authorization
	// anywhere in the app routes through the session manager's forced
	// sign-out.
	errLog := errorsfeature.NewErrorLogger(logger, sessionMgr)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Every state-changing form in the app carries the CSRF token.
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrf.Secure(secure), csrf.Path("/")))

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.Gateway, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Gateway request metrics.
	r.Handle("/metrics", promhttp.Handler())

	// Static assets with pre-compressed file support (gzip/brotli).
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages.
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication.
	loginHandler := loginfeature.NewHandler(deps.Gateway, sessionMgr, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	signupHandler := signupfeature.NewHandler(deps.Gateway, errLog, logger)
	r.Mount("/signup", signupfeature.Routes(signupHandler))

	// Error pages.
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)

	// The community feed.
	feedHandler := feedfeature.NewHandler(deps.Gateway, errLog, logger)
	r.Mount("/feed", feedfeature.Routes(feedHandler))

	// Shared resource library.
	resourcesHandler := resourcesfeature.NewHandler(deps.Gateway, errLog, logger)
	r.Mount("/resources", resourcesfeature.Routes(resourcesHandler))

	// Long-form blogs.
	blogsHandler := blogsfeature.NewHandler(deps.Gateway, errLog, logger)
	r.Mount("/blogs", blogsfeature.Routes(blogsHandler))

	// Colleague invitations.
	invitationsHandler := invitationsfeature.NewHandler(deps.Gateway, errLog, logger)
	r.Mount("/invitations", invitationsfeature.Routes(invitationsHandler))

	// Account profile.
	profileHandler := profilefeature.NewHandler(deps.Gateway, sessionMgr, errLog, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler))

	// Admin approval dashboard.
	adminHandler := adminfeature.NewHandler(deps.Gateway, errLog, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler))

	// AI assistant chat.
	assistantHandler := assistantfeature.NewHandler(deps.Gateway, errLog, logger)
	r.Mount("/assistant", assistantfeature.Routes(assistantHandler))

	r.NotFound(errorsHandler.NotFound)

	return r, nil
}
