// internal/app/store/tenantdata/mover.go
package tenantdata

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrSameCollection is returned when a migration names the same collection
// as both source and destination.
var ErrSameCollection = errors.New("source and destination collections are the same")

// Mover moves tenant data collections around inside the shared database.
// It knows nothing about the organization directory; callers sequence
// directory updates against Migrate and Drop.
type Mover struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Mover {
	return &Mover{db: db}
}

// Migrate copies every document from oldName into newName, preserving _id
// and field content exactly, then drops oldName. Returns the number of
// documents moved.
//
// Ordering contract: the copy must complete in full before the source is
// dropped. If the copy fails partway, the source is left untouched and the
// partially written destination is not cleaned up; there is no
// cross-collection transaction, so this is a best-effort, non-atomic
// operation with a known failure window.
func (m *Mover) Migrate(ctx context.Context, oldName, newName string) (int64, error) {
	if oldName == newName {
		return 0, ErrSameCollection
	}

	src := m.db.Collection(oldName)
	dst := m.db.Collection(newName)

	cur, err := src.Find(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("read source collection %q: %w", oldName, err)
	}
	defer cur.Close(ctx)

	var docs []interface{}
	for cur.Next(ctx) {
		// Copy out the raw document; cursor buffers are reused between
		// Next calls.
		doc := make(bson.Raw, len(cur.Current))
		copy(doc, cur.Current)
		docs = append(docs, doc)
	}
	if err := cur.Err(); err != nil {
		return 0, fmt.Errorf("read source collection %q: %w", oldName, err)
	}

	if len(docs) > 0 {
		// Ordered insert: stops at the first failure so a partial write is
		// detectable by the returned error.
		if _, err := dst.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
			return 0, fmt.Errorf("copy into collection %q: %w", newName, err)
		}
	}

	if err := src.Drop(ctx); err != nil {
		return 0, fmt.Errorf("drop source collection %q: %w", oldName, err)
	}
	return int64(len(docs)), nil
}

// Drop removes a tenant collection. Soft delete calls this after the
// directory record is marked inactive; a failure here leaves orphaned
// storage but does not undo the logical delete.
func (m *Mover) Drop(ctx context.Context, name string) error {
	return m.db.Collection(name).Drop(ctx)
}

// Seed inserts the initial marker document into a newly provisioned tenant
// collection so the collection exists in storage immediately.
func (m *Mover) Seed(ctx context.Context, name string) error {
	_, err := m.db.Collection(name).InsertOne(ctx, bson.M{"_init": true})
	return err
}

// Count returns the number of documents in a tenant collection.
func (m *Mover) Count(ctx context.Context, name string) (int64, error) {
	return m.db.Collection(name).CountDocuments(ctx, bson.M{})
}

// Exists reports whether the named collection currently exists in storage.
func (m *Mover) Exists(ctx context.Context, name string) (bool, error) {
	names, err := m.db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}
