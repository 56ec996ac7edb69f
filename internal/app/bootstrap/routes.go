// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/orghub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/orghub/internal/app/features/health"
	loginfeature "github.com/dalemusser/orghub/internal/app/features/login"
	organizationsfeature "github.com/dalemusser/orghub/internal/app/features/organizations"
	auditstore "github.com/dalemusser/orghub/internal/app/store/audit"
	"github.com/dalemusser/orghub/internal/app/system/auditlog"
	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/dalemusser/orghub/internal/app/system/passwords"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It builds the shared pieces (token
// issuer, password hasher, audit logger, error logger) and mounts the
// feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.OrgHubMongoDatabase

	issuer := auth.NewTokenIssuer([]byte(appCfg.JWTSecret), appCfg.JWTIssuer, appCfg.TokenTTL)
	hasher := passwords.NewHasher(appCfg.BcryptCost)

	auditLog := auditlog.New(auditstore.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	// Error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.OrgHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Admin authentication
	loginHandler := loginfeature.NewHandler(db, hasher, issuer, errLog, auditLog, logger)
	r.Mount("/admin", loginfeature.Routes(loginHandler))

	// Organization management
	orgHandler := organizationsfeature.NewHandler(db, hasher, errLog, auditLog, logger)
	r.Mount("/org", organizationsfeature.Routes(orgHandler, issuer, logger))

	return r, nil
}
