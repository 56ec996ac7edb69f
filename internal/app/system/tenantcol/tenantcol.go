// Package tenantcol derives tenant collection names from organization
// display names.
//
// Derivation is pure and deterministic: the same display name always maps to
// the same collection name. When two different display names sanitize to the
// same base (e.g. "Acme Inc" and "Acme-Inc"), the caller falls back to
// WithSuffix, which appends a short FNV fragment of the case-folded display
// name so the two tenants get distinct collections.
package tenantcol

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Prefix marks every tenant data collection, keeping them visually separate
// from the metadata collections (organizations, admins, audit_events).
const Prefix = "org_"

var (
	whitespace = regexp.MustCompile(`\s+`)
	disallowed = regexp.MustCompile(`[^a-z0-9_\-]`)
)

// Sanitize lowercases name, collapses runs of whitespace to underscores, and
// strips every character outside [a-z0-9_-].
func Sanitize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespace.ReplaceAllString(s, "_")
	return disallowed.ReplaceAllString(s, "")
}

// ForName returns the base collection name for an organization display name.
func ForName(name string) string {
	return Prefix + Sanitize(name)
}

// WithSuffix returns the collision-fallback collection name: the base name
// plus an 8-hex FNV-1a fragment of the case-folded display name. Distinct
// display names that share a sanitized base get distinct suffixed names.
func WithSuffix(name string) string {
	h := fnv.New32a()
	h.Write([]byte(text.Fold(name)))
	return fmt.Sprintf("%s_%08x", ForName(name), h.Sum32())
}
