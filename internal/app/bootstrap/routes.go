// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	collaborationsfeature "github.com/dalemusser/collabhub/internal/app/features/collaborations"
	healthfeature "github.com/dalemusser/collabhub/internal/app/features/health"
	loginfeature "github.com/dalemusser/collabhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/collabhub/internal/app/features/logout"
	passwordfeature "github.com/dalemusser/collabhub/internal/app/features/password"
	projectsfeature "github.com/dalemusser/collabhub/internal/app/features/projects"
	registerfeature "github.com/dalemusser/collabhub/internal/app/features/register"
	skillsfeature "github.com/dalemusser/collabhub/internal/app/features/skills"
	statsfeature "github.com/dalemusser/collabhub/internal/app/features/stats"
	"github.com/dalemusser/collabhub/internal/app/store/passwordreset"
	tokenstore "github.com/dalemusser/collabhub/internal/app/store/tokens"
	userstore "github.com/dalemusser/collabhub/internal/app/store/users"
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/dalemusser/collabhub/internal/app/system/mailer"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed. CollabHub is a JSON API, so the
// routing here is flat: identity endpoints (register, login, logout,
// password change and reset), project and skill registries, the
// collaboration lifecycle, and the per-user statistics read.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.CollabHubMongoDatabase

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fresh user data is fetched on each request, so password changes
	// and deleted accounts take effect immediately. Token auth is wired
	// alongside cookie auth; an Authorization header wins when present.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))
	sessionMgr.SetTokenFetcher(tokenstore.NewFetcher(db))

	mail := mailer.New(
		appCfg.MailSMTPHost, appCfg.MailSMTPPort,
		appCfg.MailSMTPUser, appCfg.MailSMTPPass,
		appCfg.MailFrom, appCfg.MailFromName,
		logger,
	)
	resets := passwordreset.New(db, appCfg.ResetTokenExpiry)

	r := chi.NewRouter()

	// Global auth middleware: resolves the caller from a bearer token or
	// session cookie and puts the principal in the request context.
	r.Use(sessionMgr.LoadPrincipal)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.CollabHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Identity
	registerHandler := registerfeature.NewHandler(db, logger)
	r.Mount("/register", registerfeature.Routes(registerHandler))

	loginHandler := loginfeature.NewHandler(db, sessionMgr, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(db, sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	passwordHandler := passwordfeature.NewHandler(db, resets, mail, appCfg.BaseURL, logger)
	r.Mount("/change_password", passwordfeature.ChangeRoutes(passwordHandler, sessionMgr))
	r.Mount("/password_reset", passwordfeature.ResetRoutes(passwordHandler))

	// Projects, skills, collaborations, statistics
	projectsfeature.Mount(r, projectsfeature.NewHandler(db, logger), sessionMgr)
	skillsfeature.Mount(r, skillsfeature.NewHandler(db, logger), sessionMgr)
	collaborationsfeature.Mount(r, collaborationsfeature.NewHandler(db, logger), sessionMgr)
	statsfeature.Mount(r, statsfeature.NewHandler(db, logger), sessionMgr)

	return r, nil
}
