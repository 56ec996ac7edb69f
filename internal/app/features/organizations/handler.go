// internal/app/features/organizations/handler.go
package organizations

import (
	uierrors "github.com/dalemusser/orghub/internal/app/features/errors"
	"github.com/dalemusser/orghub/internal/app/system/auditlog"
	"github.com/dalemusser/orghub/internal/app/system/passwords"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the organization endpoints: create, get, rename (update),
// and soft delete.
//
// It is constructed once at startup in bootstrap, using the shared Mongo
// database handle, the password hasher, and the loggers.
type Handler struct {
	DB       *mongo.Database
	Hasher   *passwords.Hasher
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
}

// NewHandler constructs an organizations Handler.
func NewHandler(db *mongo.Database, hasher *passwords.Hasher, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Hasher:   hasher,
		Log:      logger,
		ErrLog:   errLog,
		AuditLog: audit,
	}
}
