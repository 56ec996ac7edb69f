// internal/app/features/organizations/get.go
package organizations

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/orghub/internal/app/features/errors"
	organizationstore "github.com/dalemusser/orghub/internal/app/store/organizations"
	"github.com/dalemusser/orghub/internal/app/system/timeouts"
)

// HandleGet processes GET /org/get?organization_name=<name>.
// Lookup is case-insensitive; soft-deleted organizations are not found.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("organization_name"))
	if name == "" {
		uierrors.WriteError(w, http.StatusBadRequest, "organization_name query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := organizationstore.New(h.DB).GetActiveByName(ctx, name)
	if err != nil {
		if err == organizationstore.ErrNotFound {
			uierrors.WriteError(w, http.StatusNotFound, "organization not found")
			return
		}
		h.ErrLog.ServerError(w, r, "get org: lookup failed", err)
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, getResponse{
		OrganizationID:   org.ID.Hex(),
		OrganizationName: org.Name,
		CollectionName:   org.CollectionName,
	})
}
