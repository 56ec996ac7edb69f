package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/orghub/internal/app/system/passwords"
	"github.com/dalemusser/orghub/internal/app/system/tenantcol"
	"github.com/dalemusser/orghub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// Hasher returns a low-cost hasher so fixture creation stays fast.
func (f *Fixtures) Hasher() *passwords.Hasher {
	return passwords.NewHasher(bcrypt.MinCost)
}

// CreateOrganization creates an active test organization with the given
// name, with its collection name derived the same way the service derives
// it. Returns the created record.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:             primitive.NewObjectID(),
		Name:           name,
		NameCI:         text.Fold(name),
		CollectionName: tenantcol.ForName(name),
		AdminUserID:    primitive.NewObjectID(),
		Status:         models.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("organizations").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// CreateAdmin creates a test admin with a bcrypt-hashed password, bound to
// the given organization.
func (f *Fixtures) CreateAdmin(ctx context.Context, email, password string, orgID primitive.ObjectID) models.Admin {
	f.t.Helper()

	hash, err := f.Hasher().Hash(password)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	admin := models.Admin{
		ID:             primitive.NewObjectID(),
		Email:          email,
		EmailCI:        text.Fold(email),
		PasswordHash:   hash,
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("admins").InsertOne(ctx, admin); err != nil {
		f.t.Fatalf("failed to create test admin: %v", err)
	}
	return admin
}

// SeedTenantDocs inserts n documents into the named tenant collection and
// returns their _id values in insertion order.
func (f *Fixtures) SeedTenantDocs(ctx context.Context, collection string, n int) []primitive.ObjectID {
	f.t.Helper()

	ids := make([]primitive.ObjectID, 0, n)
	docs := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		id := primitive.NewObjectID()
		ids = append(ids, id)
		docs = append(docs, bson.M{"_id": id, "seq": i, "payload": "doc"})
	}
	if _, err := f.db.Collection(collection).InsertMany(ctx, docs); err != nil {
		f.t.Fatalf("failed to seed tenant docs: %v", err)
	}
	return ids
}
