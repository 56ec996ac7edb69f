package login_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	uierrors "github.com/dalemusser/orghub/internal/app/features/errors"
	"github.com/dalemusser/orghub/internal/app/features/login"
	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/dalemusser/orghub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*login.Handler, *auth.TokenIssuer, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	issuer := auth.NewTokenIssuer([]byte("test-secret-test-secret-test-sec"), "orghub-test", time.Hour)
	hasher := testutil.NewFixtures(t, db).Hasher()
	return login.NewHandler(db, hasher, issuer, errLog, nil, logger), issuer, db
}

func TestHandleLogin(t *testing.T) {
	h, issuer, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	org := fixtures.CreateOrganization(ctx, "Acme")
	admin := fixtures.CreateAdmin(ctx, "admin@acme.com", "secret123", org.ID)

	// Bind the org's directory record to this admin so the org claim
	// resolves.
	if _, err := db.Collection("organizations").UpdateByID(ctx, org.ID,
		map[string]any{"$set": map[string]any{"admin_user_id": admin.ID}}); err != nil {
		t.Fatalf("failed to bind admin to org: %v", err)
	}

	req := testutil.NewJSONRequest(t, "POST", "/admin/login", map[string]string{
		"email":    "admin@acme.com",
		"password": "secret123",
	})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		AccessToken    string    `json:"access_token"`
		TokenType      string    `json:"token_type"`
		OrganizationID string    `json:"organization_id"`
		ExpiresAt      time.Time `json:"expires_at"`
	}
	testutil.DecodeJSON(t, rec, &resp)

	if resp.TokenType != "bearer" {
		t.Errorf("token_type: got %q, want %q", resp.TokenType, "bearer")
	}
	if resp.OrganizationID != org.ID.Hex() {
		t.Errorf("organization_id: got %s, want %s", resp.OrganizationID, org.ID.Hex())
	}
	if !resp.ExpiresAt.After(time.Now()) {
		t.Errorf("expires_at should be in the future, got %v", resp.ExpiresAt)
	}

	// The issued token verifies and carries the expected claims.
	claims, err := issuer.Verify(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if claims.AdminID != admin.ID.Hex() {
		t.Errorf("claims admin_id: got %s, want %s", claims.AdminID, admin.ID.Hex())
	}
	if claims.OrgID != org.ID.Hex() {
		t.Errorf("claims org_id: got %s, want %s", claims.OrgID, org.ID.Hex())
	}
	if claims.Email != "admin@acme.com" {
		t.Errorf("claims email: got %q, want %q", claims.Email, "admin@acme.com")
	}
}

func TestHandleLogin_EmailCaseInsensitive(t *testing.T) {
	h, _, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	org := fixtures.CreateOrganization(ctx, "Acme")
	fixtures.CreateAdmin(ctx, "admin@acme.com", "secret123", org.ID)

	req := testutil.NewJSONRequest(t, "POST", "/admin/login", map[string]string{
		"email":    "ADMIN@Acme.COM",
		"password": "secret123",
	})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestHandleLogin_FailuresIndistinguishable(t *testing.T) {
	h, _, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	org := fixtures.CreateOrganization(ctx, "Acme")
	fixtures.CreateAdmin(ctx, "admin@acme.com", "secret123", org.ID)

	wrongPassword := testutil.NewJSONRequest(t, "POST", "/admin/login", map[string]string{
		"email":    "admin@acme.com",
		"password": "wrong-password",
	})
	recWrong := httptest.NewRecorder()
	h.HandleLogin(recWrong, wrongPassword)

	unknownEmail := testutil.NewJSONRequest(t, "POST", "/admin/login", map[string]string{
		"email":    "ghost@acme.com",
		"password": "secret123",
	})
	recUnknown := httptest.NewRecorder()
	h.HandleLogin(recUnknown, unknownEmail)

	if recWrong.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status: got %d, want %d", recWrong.Code, http.StatusUnauthorized)
	}
	if recUnknown.Code != http.StatusUnauthorized {
		t.Errorf("unknown email status: got %d, want %d", recUnknown.Code, http.StatusUnauthorized)
	}

	// Identical bodies for both failure modes.
	if recWrong.Body.String() != recUnknown.Body.String() {
		t.Errorf("failure bodies differ: %q vs %q", recWrong.Body.String(), recUnknown.Body.String())
	}
}

func TestHandleLogin_Validation(t *testing.T) {
	h, _, _ := newTestHandler(t)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"missing email", map[string]string{"email": "", "password": "secret123"}},
		{"bad email", map[string]string{"email": "not-an-email", "password": "secret123"}},
		{"missing password", map[string]string{"email": "admin@acme.com", "password": ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, "POST", "/admin/login", tc.body)
			rec := httptest.NewRecorder()
			h.HandleLogin(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestHandleLogin_DeletedOrganizationYieldsEmptyOrgClaim(t *testing.T) {
	h, issuer, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	org := fixtures.CreateOrganization(ctx, "Doomed")
	admin := fixtures.CreateAdmin(ctx, "admin@doomed.com", "secret123", org.ID)
	if _, err := db.Collection("organizations").UpdateByID(ctx, org.ID,
		map[string]any{"$set": map[string]any{"admin_user_id": admin.ID, "status": "deleted"}}); err != nil {
		t.Fatalf("failed to mark org deleted: %v", err)
	}

	req := testutil.NewJSONRequest(t, "POST", "/admin/login", map[string]string{
		"email":    "admin@doomed.com",
		"password": "secret123",
	})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	// Authentication still succeeds; the org claim is simply empty.
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		AccessToken    string `json:"access_token"`
		OrganizationID string `json:"organization_id"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.OrganizationID != "" {
		t.Errorf("organization_id: got %q, want empty", resp.OrganizationID)
	}

	claims, err := issuer.Verify(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if claims.OrgID != "" {
		t.Errorf("claims org_id: got %q, want empty", claims.OrgID)
	}
}
