// internal/app/features/organizations/create.go
package organizations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/orghub/internal/app/features/errors"
	adminstore "github.com/dalemusser/orghub/internal/app/store/admins"
	"github.com/dalemusser/orghub/internal/app/store/audit"
	organizationstore "github.com/dalemusser/orghub/internal/app/store/organizations"
	"github.com/dalemusser/orghub/internal/app/store/tenantdata"
	"github.com/dalemusser/orghub/internal/app/system/tenantcol"
	"github.com/dalemusser/orghub/internal/app/system/timeouts"
	"github.com/dalemusser/orghub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/validate"
	"go.uber.org/zap"
)

// HandleCreate processes POST /org/create.
//
// It provisions the organization's first admin alongside the directory
// record and seeds the tenant data collection. If the directory insert loses
// a duplicate-name race, the provisioned admin is rolled back.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "create org: decode body failed", err, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.OrganizationName)
	email := strings.TrimSpace(req.Email)

	if len(name) < 2 {
		uierrors.WriteError(w, http.StatusBadRequest, "organization_name must be at least 2 characters")
		return
	}
	if email == "" || !validate.SimpleEmailValid(email) {
		uierrors.WriteError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < 6 {
		uierrors.WriteError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	orgStore := organizationstore.New(h.DB)

	collectionName, err := h.resolveCollectionName(ctx, orgStore, name)
	if err != nil {
		if err == errCollectionTaken {
			uierrors.WriteError(w, http.StatusConflict, "an organization with this name already exists")
			return
		}
		if err == errEmptyCollection {
			uierrors.WriteError(w, http.StatusBadRequest, "organization_name must contain letters or digits")
			return
		}
		h.ErrLog.ServerError(w, r, "create org: collection name probe failed", err)
		return
	}

	hash, err := h.Hasher.Hash(req.Password)
	if err != nil {
		h.ErrLog.ServerError(w, r, "create org: password hash failed", err)
		return
	}

	adminStore := adminstore.New(h.DB)
	admin, err := adminStore.Create(ctx, models.Admin{
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if err == adminstore.ErrDuplicateEmail {
			uierrors.WriteError(w, http.StatusConflict, "an admin with this email already exists")
			return
		}
		h.ErrLog.ServerError(w, r, "create org: admin insert failed", err)
		return
	}

	org, err := orgStore.Create(ctx, models.Organization{
		Name:           name,
		CollectionName: collectionName,
		AdminUserID:    admin.ID,
	})
	if err != nil {
		// Roll back the provisioned admin so a failed create leaves no
		// orphaned credential record.
		if delErr := adminStore.Delete(ctx, admin.ID); delErr != nil {
			h.Log.Error("create org: admin rollback failed",
				zap.String("admin_id", admin.ID.Hex()), zap.Error(delErr))
		}
		if err == organizationstore.ErrDuplicateOrganization {
			uierrors.WriteError(w, http.StatusConflict, "an organization with this name already exists")
			return
		}
		h.ErrLog.ServerError(w, r, "create org: directory insert failed", err)
		return
	}

	if err := adminStore.SetOrganization(ctx, admin.ID, org.ID); err != nil {
		h.Log.Warn("create org: linking admin to org failed",
			zap.String("admin_id", admin.ID.Hex()),
			zap.String("org_id", org.ID.Hex()),
			zap.Error(err))
	}

	// Seed the tenant collection so it exists in storage immediately.
	// A seed failure leaves the org usable, so it is a warning, not fatal.
	if err := tenantdata.New(h.DB).Seed(ctx, collectionName); err != nil {
		h.Log.Warn("create org: seeding tenant collection failed",
			zap.String("collection", collectionName), zap.Error(err))
	}

	h.AuditLog.OrgEvent(ctx, r, audit.EventOrgCreated, admin.ID, org.ID, map[string]string{
		"name":       org.Name,
		"collection": org.CollectionName,
	})

	uierrors.WriteJSON(w, http.StatusCreated, createResponse{
		OrganizationID:   org.ID.Hex(),
		OrganizationName: org.Name,
		CollectionName:   org.CollectionName,
		AdminEmail:       admin.Email,
	})
}

var (
	errCollectionTaken = organizationstore.ErrDuplicateOrganization
	errEmptyCollection = errors.New("organization name sanitizes to nothing")
)

// resolveCollectionName applies the naming policy: the sanitized base name,
// or the suffixed fallback when another active organization already uses the
// base (distinct display names can share a sanitized form).
func (h *Handler) resolveCollectionName(ctx context.Context, orgStore *organizationstore.Store, name string) (string, error) {
	base := tenantcol.ForName(name)
	if base == tenantcol.Prefix {
		return "", errEmptyCollection
	}

	inUse, err := orgStore.CollectionInUse(ctx, base)
	if err != nil {
		return "", err
	}
	if !inUse {
		return base, nil
	}

	suffixed := tenantcol.WithSuffix(name)
	inUse, err = orgStore.CollectionInUse(ctx, suffixed)
	if err != nil {
		return "", err
	}
	if inUse {
		return "", errCollectionTaken
	}
	return suffixed, nil
}
