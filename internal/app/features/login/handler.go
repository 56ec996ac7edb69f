// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	uierrors "github.com/dalemusser/orghub/internal/app/features/errors"
	adminstore "github.com/dalemusser/orghub/internal/app/store/admins"
	organizationstore "github.com/dalemusser/orghub/internal/app/store/organizations"
	"github.com/dalemusser/orghub/internal/app/system/auditlog"
	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/dalemusser/orghub/internal/app/system/passwords"
	"github.com/dalemusser/orghub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/validate"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves POST /admin/login.
type Handler struct {
	DB       *mongo.Database
	Hasher   *passwords.Hasher
	Issuer   *auth.TokenIssuer
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
}

// NewHandler constructs a login Handler.
func NewHandler(db *mongo.Database, hasher *passwords.Hasher, issuer *auth.TokenIssuer, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Hasher:   hasher,
		Issuer:   issuer,
		Log:      logger,
		ErrLog:   errLog,
		AuditLog: audit,
	}
}

// loginRequest is the body of POST /admin/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is returned with 200 on successful authentication.
type loginResponse struct {
	AccessToken    string    `json:"access_token"`
	TokenType      string    `json:"token_type"`
	OrganizationID string    `json:"organization_id"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// HandleLogin verifies admin credentials and issues a session token.
//
// Unknown email and wrong password produce the same 401 body; nothing in
// the response (or its timing) reveals which check failed.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.BadRequest(w, r, "login: decode body failed", err, "invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !validate.SimpleEmailValid(email) {
		uierrors.WriteError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if req.Password == "" {
		uierrors.WriteError(w, http.StatusBadRequest, "password is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	authn := adminstore.NewAuthenticator(adminstore.New(h.DB), h.Hasher)
	admin, err := authn.Verify(ctx, email, req.Password)
	if err != nil {
		if err == adminstore.ErrInvalidCredentials {
			h.AuditLog.LoginFailed(ctx, r, "invalid credentials")
			uierrors.WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.ErrLog.ServerError(w, r, "login: credential check failed", err)
		return
	}

	// The admin's active organization becomes the token's org claim. An
	// admin whose organization has been soft-deleted still authenticates
	// but the claim is empty, so mutations are refused downstream.
	orgID := ""
	org, err := organizationstore.New(h.DB).GetActiveByAdmin(ctx, admin.ID)
	switch err {
	case nil:
		orgID = org.ID.Hex()
	case organizationstore.ErrNotFound:
		// no active org; leave the claim empty
	default:
		h.ErrLog.ServerError(w, r, "login: org lookup failed", err)
		return
	}

	token, expiresAt, err := h.Issuer.Issue(admin.ID.Hex(), orgID, admin.Email)
	if err != nil {
		h.ErrLog.ServerError(w, r, "login: token signing failed", err)
		return
	}

	h.AuditLog.LoginSuccess(ctx, r, admin.ID, admin.OrganizationID)

	uierrors.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken:    token,
		TokenType:      "bearer",
		OrganizationID: orgID,
		ExpiresAt:      expiresAt,
	})
}
