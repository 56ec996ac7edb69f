// internal/app/features/organizations/delete.go
package organizations

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/orghub/internal/app/features/errors"
	"github.com/dalemusser/orghub/internal/app/store/audit"
	organizationstore "github.com/dalemusser/orghub/internal/app/store/organizations"
	"github.com/dalemusser/orghub/internal/app/store/tenantdata"
	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/dalemusser/orghub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDelete processes DELETE /org/delete: marks the organization deleted
// in the directory, then drops its tenant collection.
//
// The directory update comes first; once it succeeds the organization is
// logically gone. A failure dropping the collection leaves orphaned storage
// and is surfaced as a warning, not an error, since the logical delete has
// already taken effect. A second delete of the same organization returns
// 404 (the record is no longer active).
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.CurrentClaims(r)
	if !ok {
		uierrors.WriteError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "delete org: decode body failed", err, "invalid request body")
		return
	}

	orgID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.OrganizationID))
	if err != nil {
		uierrors.WriteError(w, http.StatusBadRequest, "organization_id is not a valid id")
		return
	}

	if claims.OrgID != orgID.Hex() {
		uierrors.WriteError(w, http.StatusForbidden, "not authorized to delete this organization")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	orgStore := organizationstore.New(h.DB)

	org, err := orgStore.GetActiveByID(ctx, orgID)
	if err != nil {
		if err == organizationstore.ErrNotFound {
			uierrors.WriteError(w, http.StatusNotFound, "organization not found")
			return
		}
		h.ErrLog.ServerError(w, r, "delete org: lookup failed", err)
		return
	}

	if err := orgStore.SoftDelete(ctx, org.ID); err != nil {
		if err == organizationstore.ErrNotFound {
			uierrors.WriteError(w, http.StatusNotFound, "organization not found")
			return
		}
		h.ErrLog.ServerError(w, r, "delete org: soft delete failed", err)
		return
	}

	actorID, _ := primitive.ObjectIDFromHex(claims.AdminID)

	if err := tenantdata.New(h.DB).Drop(ctx, org.CollectionName); err != nil {
		h.Log.Warn("delete org: dropping tenant collection failed, storage orphaned",
			zap.String("org_id", org.ID.Hex()),
			zap.String("collection", org.CollectionName),
			zap.Error(err))
		h.AuditLog.OrgEvent(ctx, r, audit.EventCollectionDropFail, actorID, org.ID, map[string]string{
			"collection": org.CollectionName,
		})
	}

	h.AuditLog.OrgEvent(ctx, r, audit.EventOrgDeleted, actorID, org.ID, map[string]string{
		"name":       org.Name,
		"collection": org.CollectionName,
	})

	uierrors.WriteJSON(w, http.StatusOK, deleteResponse{
		OrganizationID: org.ID.Hex(),
		Active:         false,
	})
}
