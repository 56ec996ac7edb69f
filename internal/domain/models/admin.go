// internal/domain/models/admin.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is an organization administrator. Only the bcrypt password hash is
// ever persisted; the hash string embeds its own cost parameter so older
// hashes stay verifiable if the configured cost changes later.
type Admin struct {
	ID             primitive.ObjectID `bson:"_id"`
	Email          string             `bson:"email"`
	EmailCI        string             `bson:"email_ci"` // ← always stored
	PasswordHash   string             `bson:"password_hash"`
	OrganizationID primitive.ObjectID `bson:"organization_id"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}
