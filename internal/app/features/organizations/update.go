// internal/app/features/organizations/update.go
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
	"github.com/dalemusser/orghub/internal/app/system/tenantcol"
	"github.com/dalemusser/orghub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleUpdate processes PUT /org/update: renames an organization and
// migrates its tenant collection to the newly derived name.
//
// Sequencing: the data migration runs first; the directory record is updated
// only after every document has been copied and the old collection dropped.
// If migration fails, the directory is untouched and the rename fails as a
// whole, though a partially written destination collection may remain (no
// cross-collection transaction; documented limitation).
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.CurrentClaims(r)
	if !ok {
		uierrors.WriteError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "update org: decode body failed", err, "invalid request body")
		return
	}

	newName := strings.TrimSpace(req.NewOrganizationName)
	if len(newName) < 2 {
		uierrors.WriteError(w, http.StatusBadRequest, "new_organization_name must be at least 2 characters")
		return
	}

	orgID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.OrganizationID))
	if err != nil {
		uierrors.WriteError(w, http.StatusBadRequest, "organization_id is not a valid id")
		return
	}

	// The token's org claim must match the organization being renamed.
	if claims.OrgID != orgID.Hex() {
		uierrors.WriteError(w, http.StatusForbidden, "not authorized to modify this organization")
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
		h.ErrLog.ServerError(w, r, "update org: lookup failed", err)
		return
	}

	taken, err := orgStore.ActiveNameExistsForOther(ctx, newName, org.ID)
	if err != nil {
		h.ErrLog.ServerError(w, r, "update org: name conflict check failed", err)
		return
	}
	if taken {
		uierrors.WriteError(w, http.StatusConflict, "an organization with this name already exists")
		return
	}

	newCollection, err := h.resolveRenameCollection(ctx, orgStore, org.CollectionName, newName)
	if err != nil {
		if err == errCollectionTaken {
			uierrors.WriteError(w, http.StatusConflict, "an organization with this name already exists")
			return
		}
		if err == errEmptyCollection {
			uierrors.WriteError(w, http.StatusBadRequest, "new_organization_name must contain letters or digits")
			return
		}
		h.ErrLog.ServerError(w, r, "update org: collection name probe failed", err)
		return
	}

	var moved int64
	if newCollection != org.CollectionName {
		moved, err = tenantdata.New(h.DB).Migrate(ctx, org.CollectionName, newCollection)
		if err != nil {
			// Directory untouched; the destination may hold a partial copy.
			h.Log.Error("update org: migration failed, directory not updated",
				zap.String("org_id", org.ID.Hex()),
				zap.String("old_collection", org.CollectionName),
				zap.String("new_collection", newCollection),
				zap.Error(err))
			uierrors.WriteError(w, http.StatusInternalServerError, "organization rename failed")
			return
		}
	}

	if err := orgStore.CommitRename(ctx, org.ID, newName, newCollection); err != nil {
		// The data has already moved; a failure here leaves the directory
		// pointing at the old collection name. Surface loudly.
		h.Log.Error("update org: rename commit failed after migration",
			zap.String("org_id", org.ID.Hex()),
			zap.String("new_collection", newCollection),
			zap.Error(err))
		if err == organizationstore.ErrDuplicateOrganization {
			uierrors.WriteError(w, http.StatusConflict, "an organization with this name already exists")
			return
		}
		h.ErrLog.ServerError(w, r, "update org: rename commit failed", err)
		return
	}

	actorID, _ := primitive.ObjectIDFromHex(claims.AdminID)
	h.AuditLog.OrgEvent(ctx, r, audit.EventOrgRenamed, actorID, org.ID, map[string]string{
		"old_name":       org.Name,
		"new_name":       newName,
		"old_collection": org.CollectionName,
		"new_collection": newCollection,
	})

	uierrors.WriteJSON(w, http.StatusOK, updateResponse{
		OrganizationID:   org.ID.Hex(),
		OrganizationName: newName,
		CollectionName:   newCollection,
		DocumentsMoved:   moved,
	})
}

// resolveRenameCollection derives the destination collection for a rename.
// When the new name sanitizes to the organization's current collection
// (a case-only rename), the current collection is kept and no migration
// runs.
func (h *Handler) resolveRenameCollection(ctx context.Context, orgStore *organizationstore.Store, current, newName string) (string, error) {
	base := tenantcol.ForName(newName)
	if base == tenantcol.Prefix {
		return "", errEmptyCollection
	}
	if base == current {
		return current, nil
	}

	inUse, err := orgStore.CollectionInUse(ctx, base)
	if err != nil {
		return "", err
	}
	if !inUse {
		return base, nil
	}

	suffixed := tenantcol.WithSuffix(newName)
	if suffixed == current {
		return current, nil
	}
	inUse, err = orgStore.CollectionInUse(ctx, suffixed)
	if err != nil {
		return "", err
	}
	if inUse {
		return "", errCollectionTaken
	}
	return suffixed, nil
}
