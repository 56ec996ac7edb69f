// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/orghub/internal/app/store/audit"
	"github.com/dalemusser/orghub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureOrganizations(ctx, db); err != nil {
		problems = append(problems, "organizations: "+err.Error())
	}
	if err := ensureAdmins(ctx, db); err != nil {
		problems = append(problems, "admins: "+err.Error())
	}
	if err := audit.New(db).EnsureIndexes(ctx); err != nil {
		problems = append(problems, "audit_events: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureOrganizations creates a partial unique index on name_ci restricted
// to active organizations. Uniqueness holds only among active records, so a
// soft-deleted organization's name can be reused; the index also backs the
// Conflict guarantee when two creates race past the store's pre-check.
func ensureOrganizations(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("organizations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().
				SetName("uniq_active_name_ci").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": models.StatusActive}),
		},
		{
			Keys:    bson.D{{Key: "admin_user_id", Value: 1}},
			Options: options.Index().SetName("by_admin_user_id"),
		},
		{
			Keys:    bson.D{{Key: "collection_name", Value: 1}},
			Options: options.Index().SetName("by_collection_name"),
		},
	})
	return err
}

func ensureAdmins(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("admins").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().
				SetName("uniq_email_ci").
				SetUnique(true),
		},
	})
	return err
}
