// internal/app/store/organizations/organizationstore.go
package organizationstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/orghub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrDuplicateOrganization = errors.New("an organization with this name already exists")
	ErrNotFound              = errors.New("organization not found")
)

// Store is the organization directory: it owns the organizations metadata
// collection. It never touches tenant data collections; the tenantdata mover
// does, and callers sequence the two (see the organizations feature).
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("organizations")}
}

// Create persists a new active organization. The caller supplies Name,
// CollectionName, and AdminUserID; ID, folded name, status, and timestamps
// are filled in here. Returns ErrDuplicateOrganization when an active
// organization already holds the folded name (pre-check plus the partial
// unique index for races).
func (s *Store) Create(ctx context.Context, org models.Organization) (models.Organization, error) {
	nameCI := text.Fold(org.Name)

	exists, err := s.activeNameExists(ctx, nameCI, nil)
	if err != nil {
		return models.Organization{}, err
	}
	if exists {
		return models.Organization{}, ErrDuplicateOrganization
	}

	now := time.Now().UTC()
	org.ID = primitive.NewObjectID()
	org.NameCI = nameCI
	org.Status = models.StatusActive
	org.CreatedAt = now
	org.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, org); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Organization{}, ErrDuplicateOrganization
		}
		return models.Organization{}, err
	}
	return org, nil
}

// GetActiveByID returns the active organization with the given id, or
// ErrNotFound when it is missing or soft-deleted.
func (s *Store) GetActiveByID(ctx context.Context, id primitive.ObjectID) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, bson.M{"_id": id, "status": models.StatusActive}).Decode(&org)
	if err == mongo.ErrNoDocuments {
		return models.Organization{}, ErrNotFound
	}
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// GetActiveByName looks an active organization up by case-insensitive name.
func (s *Store) GetActiveByName(ctx context.Context, name string) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, bson.M{
		"name_ci": text.Fold(name),
		"status":  models.StatusActive,
	}).Decode(&org)
	if err == mongo.ErrNoDocuments {
		return models.Organization{}, ErrNotFound
	}
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// GetActiveByAdmin returns the active organization administered by adminID.
func (s *Store) GetActiveByAdmin(ctx context.Context, adminID primitive.ObjectID) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, bson.M{
		"admin_user_id": adminID,
		"status":        models.StatusActive,
	}).Decode(&org)
	if err == mongo.ErrNoDocuments {
		return models.Organization{}, ErrNotFound
	}
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// ActiveNameExistsForOther reports whether another active organization
// (excluding excludeID) already holds the given display name. Used by the
// rename flow's conflict check.
func (s *Store) ActiveNameExistsForOther(ctx context.Context, name string, excludeID primitive.ObjectID) (bool, error) {
	return s.activeNameExists(ctx, text.Fold(name), &excludeID)
}

func (s *Store) activeNameExists(ctx context.Context, nameCI string, excludeID *primitive.ObjectID) (bool, error) {
	filter := bson.M{"name_ci": nameCI, "status": models.StatusActive}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}
	err := s.c.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CollectionInUse reports whether any active organization is associated with
// the given tenant collection name. The naming policy probes this before
// falling back to a suffixed collection name.
func (s *Store) CollectionInUse(ctx context.Context, collectionName string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"collection_name": collectionName,
		"status":          models.StatusActive,
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CommitRename updates the directory record's name and collection fields.
// Callers invoke this only after the tenant data migration has fully
// succeeded, so the directory never points at a collection that was not
// completely populated. Returns ErrNotFound when the organization is missing
// or no longer active.
func (s *Store) CommitRename(ctx context.Context, id primitive.ObjectID, newName, newCollection string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.StatusActive},
		bson.M{"$set": bson.M{
			"name":            newName,
			"name_ci":         text.Fold(newName),
			"collection_name": newCollection,
			"updated_at":      time.Now().UTC(),
		}},
	)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateOrganization
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks an active organization deleted. The directory record is
// retained; dropping the tenant collection is the caller's separate,
// sequenced step. Returns ErrNotFound when the organization is missing or
// already deleted (the matched-count check makes a second delete fail).
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.StatusActive},
		bson.M{"$set": bson.M{
			"status":     models.StatusDeleted,
			"deleted_at": now,
			"updated_at": now,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns the organization regardless of status. Soft-deleted
// records stay readable for audit.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&org)
	if err == mongo.ErrNoDocuments {
		return models.Organization{}, ErrNotFound
	}
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}
