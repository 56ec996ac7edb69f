// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	adminstore "github.com/dalemusser/orghub/internal/app/store/admins"
	organizationstore "github.com/dalemusser/orghub/internal/app/store/organizations"
	"github.com/dalemusser/orghub/internal/app/store/tenantdata"
	"github.com/dalemusser/orghub/internal/app/system/passwords"
	"github.com/dalemusser/orghub/internal/app/system/tenantcol"
	"github.com/dalemusser/orghub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. orghub
// uses it to provision the configured seed organization and admin, if any.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SeedOrgName == "" || appCfg.SeedAdminEmail == "" || appCfg.SeedAdminPassword == "" {
		return nil
	}
	return ensureSeedOrg(ctx, deps, appCfg, logger)
}

// ensureSeedOrg provisions an organization and its admin at startup when
// none with the configured name exists. Idempotent: a second startup with
// the same config is a no-op.
func ensureSeedOrg(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	orgStore := organizationstore.New(deps.OrgHubMongoDatabase)

	_, err := orgStore.GetActiveByName(ctx, appCfg.SeedOrgName)
	if err == nil {
		logger.Info("seed organization already exists",
			zap.String("name", appCfg.SeedOrgName))
		return nil
	}
	if !errors.Is(err, organizationstore.ErrNotFound) {
		return err
	}

	hasher := passwords.NewHasher(appCfg.BcryptCost)
	hash, err := hasher.Hash(appCfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	adminStore := adminstore.New(deps.OrgHubMongoDatabase)
	admin, err := adminStore.Create(ctx, models.Admin{
		Email:        appCfg.SeedAdminEmail,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}

	collectionName := tenantcol.ForName(appCfg.SeedOrgName)
	org, err := orgStore.Create(ctx, models.Organization{
		Name:           appCfg.SeedOrgName,
		CollectionName: collectionName,
		AdminUserID:    admin.ID,
	})
	if err != nil {
		return err
	}

	if err := adminStore.SetOrganization(ctx, admin.ID, org.ID); err != nil {
		return err
	}
	if err := tenantdata.New(deps.OrgHubMongoDatabase).Seed(ctx, collectionName); err != nil {
		logger.Warn("seeding tenant collection failed",
			zap.String("collection", collectionName), zap.Error(err))
	}

	logger.Info("seed organization provisioned",
		zap.String("name", org.Name),
		zap.String("org_id", org.ID.Hex()),
		zap.String("admin_email", admin.Email))
	return nil
}
