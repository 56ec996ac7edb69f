// internal/app/store/admins/adminstore.go
package adminstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/orghub/internal/app/system/passwords"
	"github.com/dalemusser/orghub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrDuplicateEmail = errors.New("an admin with this email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Store owns the admins metadata collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admins")}
}

// Create persists a new admin record. The caller supplies Email and
// PasswordHash (already hashed; plaintext never reaches this layer).
func (s *Store) Create(ctx context.Context, admin models.Admin) (models.Admin, error) {
	now := time.Now().UTC()
	admin.ID = primitive.NewObjectID()
	admin.EmailCI = text.Fold(admin.Email)
	admin.CreatedAt = now
	admin.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, admin); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Admin{}, ErrDuplicateEmail
		}
		return models.Admin{}, err
	}
	return admin, nil
}

// GetByEmail looks an admin up by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.Admin, error) {
	var admin models.Admin
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&admin)
	if err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}

// SetOrganization points an admin at its organization. Used during org
// creation, where the admin record is provisioned before the org record
// exists.
func (s *Store) SetOrganization(ctx context.Context, id, orgID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"organization_id": orgID,
		"updated_at":      time.Now().UTC(),
	}})
	return err
}

// Delete removes an admin record. Used to roll back a provisioned admin when
// the organization insert loses a create race.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Authenticator verifies admin credentials against stored hashes.
type Authenticator struct {
	store  *Store
	hasher *passwords.Hasher
}

// NewAuthenticator binds a credential store to a password hasher.
func NewAuthenticator(store *Store, hasher *passwords.Hasher) *Authenticator {
	return &Authenticator{store: store, hasher: hasher}
}

// Verify looks the admin up by email and compares the supplied password
// against the stored hash. Unknown email and wrong password both return
// ErrInvalidCredentials; the unknown-email path still performs one bcrypt
// compare (against a fixed dummy hash) so the two are not separable by
// timing. Database failures other than a missing document propagate as-is.
func (a *Authenticator) Verify(ctx context.Context, email, password string) (models.Admin, error) {
	admin, err := a.store.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		_ = a.hasher.Compare(passwords.DummyHash, password)
		return models.Admin{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Admin{}, err
	}
	if err := a.hasher.Compare(admin.PasswordHash, password); err != nil {
		return models.Admin{}, ErrInvalidCredentials
	}
	return admin, nil
}
