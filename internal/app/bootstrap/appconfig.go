// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, logging
// level, request limits). AppConfig is everything specific to orghub: the
// MongoDB connection, token signing, password hashing cost, audit logging,
// and optional startup seeding.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name holding the organizations/admins metadata and tenant collections
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session token configuration
	JWTSecret string        // HS256 signing secret (must be strong in production)
	JWTIssuer string        // Issuer claim stamped on and required of every token
	TokenTTL  time.Duration // Lifetime of issued tokens

	// Password hashing
	BcryptCost int // bcrypt cost for new password hashes

	// Audit logging destinations: "all" (db+log), "db", "log", or "off"
	AuditLogAuth  string
	AuditLogAdmin string

	// Optional startup seeding: when all three are set and no active
	// organization with that name exists, an organization and its admin are
	// provisioned at startup.
	SeedOrgName       string
	SeedAdminEmail    string
	SeedAdminPassword string
}
