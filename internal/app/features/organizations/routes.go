// internal/app/features/organizations/routes.go
package organizations

import (
	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Routes mounts all organization routes under the base path
// (typically "/org" from bootstrap).
func Routes(h *Handler, issuer *auth.TokenIssuer, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Public: creation and lookup take no credential.
	r.Post("/create", h.HandleCreate)
	r.Get("/get", h.HandleGet)

	// Mutations require a bearer token whose org claim matches the target
	// organization (checked in the handlers).
	r.Group(func(pr chi.Router) {
		pr.Use(issuer.RequireToken(logger))
		pr.Put("/update", h.HandleUpdate)
		pr.Delete("/delete", h.HandleDelete)
	})

	return r
}
