// internal/domain/models/organization.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization status values. An organization is never physically removed;
// soft delete moves it to StatusDeleted and the record is kept for audit.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Organization is the directory record for one tenant. CollectionName is the
// dynamically named Mongo collection holding the tenant's data; while the
// organization is active, exactly one live collection is associated with it.
type Organization struct {
	ID             primitive.ObjectID `bson:"_id"`
	Name           string             `bson:"name"`
	NameCI         string             `bson:"name_ci"` // ← always stored
	CollectionName string             `bson:"collection_name"`
	AdminUserID    primitive.ObjectID `bson:"admin_user_id"`
	Status         string             `bson:"status"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
	DeletedAt      *time.Time         `bson:"deleted_at,omitempty"`
}

// Active reports whether the organization has not been soft-deleted.
func (o Organization) Active() bool {
	return o.Status == StatusActive
}
