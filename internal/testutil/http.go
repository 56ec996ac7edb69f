package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/orghub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewJSONRequest creates an HTTP request with a JSON-encoded body.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithClaims injects verified token claims into the request context,
// bypassing the bearer middleware. For handler tests.
func WithClaims(r *http.Request, adminID, orgID primitive.ObjectID, email string) *http.Request {
	return auth.WithTestClaims(r, &auth.Claims{
		AdminID: adminID.Hex(),
		OrgID:   orgID.Hex(),
		Email:   email,
	})
}

// DecodeJSON decodes a response body into v, failing the test on error.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response %q: %v", rec.Body.String(), err)
	}
}
