package organizationstore_test

import (
	"testing"

	organizationstore "github.com/dalemusser/orghub/internal/app/store/organizations"
	"github.com/dalemusser/orghub/internal/app/system/tenantcol"
	"github.com/dalemusser/orghub/internal/domain/models"
	"github.com/dalemusser/orghub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := models.Organization{
		Name:           "Acme",
		CollectionName: tenantcol.ForName("Acme"),
		AdminUserID:    primitive.NewObjectID(),
	}

	created, err := store.Create(ctx, org)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.NameCI != "acme" {
		t.Errorf("NameCI: got %q, want %q", created.NameCI, "acme")
	}
	if created.Status != models.StatusActive {
		t.Errorf("Status: got %q, want %q", created.Status, models.StatusActive)
	}
	if created.CollectionName != "org_acme" {
		t.Errorf("CollectionName: got %q, want %q", created.CollectionName, "org_acme")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_DuplicateNameCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first := models.Organization{
		Name:           "Acme",
		CollectionName: tenantcol.ForName("Acme"),
		AdminUserID:    primitive.NewObjectID(),
	}
	if _, err := store.Create(ctx, first); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	second := models.Organization{
		Name:           "ACME",
		CollectionName: tenantcol.ForName("ACME"),
		AdminUserID:    primitive.NewObjectID(),
	}
	if _, err := store.Create(ctx, second); err != organizationstore.ErrDuplicateOrganization {
		t.Errorf("expected ErrDuplicateOrganization for case-variant, got %v", err)
	}
}

func TestStore_Create_ReusesNameOfDeletedOrganization(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first := models.Organization{
		Name:           "Phoenix",
		CollectionName: tenantcol.ForName("Phoenix"),
		AdminUserID:    primitive.NewObjectID(),
	}
	created, err := store.Create(ctx, first)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SoftDelete(ctx, created.ID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	// Only active organizations hold their name; a deleted one frees it.
	second := models.Organization{
		Name:           "Phoenix",
		CollectionName: tenantcol.ForName("Phoenix"),
		AdminUserID:    primitive.NewObjectID(),
	}
	if _, err := store.Create(ctx, second); err != nil {
		t.Errorf("Create after soft delete should succeed: %v", err)
	}
}

func TestStore_GetActiveByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Globex Corporation")

	found, err := store.GetActiveByName(ctx, "globex CORPORATION")
	if err != nil {
		t.Fatalf("GetActiveByName failed: %v", err)
	}
	if found.ID != org.ID {
		t.Errorf("ID: got %v, want %v", found.ID, org.ID)
	}
	if found.Name != "Globex Corporation" {
		t.Errorf("Name: got %q, want %q", found.Name, "Globex Corporation")
	}
}

func TestStore_GetActiveByName_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetActiveByName(ctx, "No Such Org"); err != organizationstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_GetActiveByID_ExcludesDeleted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Ephemeral")

	if _, err := store.GetActiveByID(ctx, org.ID); err != nil {
		t.Fatalf("GetActiveByID before delete failed: %v", err)
	}

	if err := store.SoftDelete(ctx, org.ID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	if _, err := store.GetActiveByID(ctx, org.ID); err != organizationstore.ErrNotFound {
		t.Errorf("expected ErrNotFound after soft delete, got %v", err)
	}

	// The record itself survives for audit.
	kept, err := store.GetByID(ctx, org.ID)
	if err != nil {
		t.Fatalf("GetByID after soft delete failed: %v", err)
	}
	if kept.Status != models.StatusDeleted {
		t.Errorf("Status: got %q, want %q", kept.Status, models.StatusDeleted)
	}
	if kept.DeletedAt == nil {
		t.Error("expected DeletedAt to be set")
	}
}

func TestStore_GetActiveByAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Initech")

	found, err := store.GetActiveByAdmin(ctx, org.AdminUserID)
	if err != nil {
		t.Fatalf("GetActiveByAdmin failed: %v", err)
	}
	if found.ID != org.ID {
		t.Errorf("ID: got %v, want %v", found.ID, org.ID)
	}

	if _, err := store.GetActiveByAdmin(ctx, primitive.NewObjectID()); err != organizationstore.ErrNotFound {
		t.Errorf("expected ErrNotFound for unknown admin, got %v", err)
	}
}

func TestStore_ActiveNameExistsForOther(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	acme := fixtures.CreateOrganization(ctx, "Acme")
	fixtures.CreateOrganization(ctx, "Globex")

	// An organization's own name does not conflict with itself.
	exists, err := store.ActiveNameExistsForOther(ctx, "acme", acme.ID)
	if err != nil {
		t.Fatalf("ActiveNameExistsForOther failed: %v", err)
	}
	if exists {
		t.Error("own name should not count as taken")
	}

	exists, err = store.ActiveNameExistsForOther(ctx, "GLOBEX", acme.ID)
	if err != nil {
		t.Fatalf("ActiveNameExistsForOther failed: %v", err)
	}
	if !exists {
		t.Error("expected other organization's name to count as taken")
	}
}

func TestStore_CommitRename(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")

	newCollection := tenantcol.ForName("Acme Corp")
	if err := store.CommitRename(ctx, org.ID, "Acme Corp", newCollection); err != nil {
		t.Fatalf("CommitRename failed: %v", err)
	}

	renamed, err := store.GetActiveByID(ctx, org.ID)
	if err != nil {
		t.Fatalf("GetActiveByID failed: %v", err)
	}
	if renamed.Name != "Acme Corp" {
		t.Errorf("Name: got %q, want %q", renamed.Name, "Acme Corp")
	}
	if renamed.NameCI != "acme corp" {
		t.Errorf("NameCI: got %q, want %q", renamed.NameCI, "acme corp")
	}
	if renamed.CollectionName != "org_acme_corp" {
		t.Errorf("CollectionName: got %q, want %q", renamed.CollectionName, "org_acme_corp")
	}
	if !renamed.UpdatedAt.After(org.UpdatedAt) {
		t.Error("expected UpdatedAt to advance")
	}
}

func TestStore_CommitRename_DeletedOrganization(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Gone")
	if err := store.SoftDelete(ctx, org.ID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	err := store.CommitRename(ctx, org.ID, "Gone Again", tenantcol.ForName("Gone Again"))
	if err != organizationstore.ErrNotFound {
		t.Errorf("expected ErrNotFound for deleted organization, got %v", err)
	}
}

func TestStore_SoftDelete_SecondDeleteFails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Once Only")

	if err := store.SoftDelete(ctx, org.ID); err != nil {
		t.Fatalf("first SoftDelete failed: %v", err)
	}
	if err := store.SoftDelete(ctx, org.ID); err != organizationstore.ErrNotFound {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStore_CollectionInUse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Acme")

	inUse, err := store.CollectionInUse(ctx, org.CollectionName)
	if err != nil {
		t.Fatalf("CollectionInUse failed: %v", err)
	}
	if !inUse {
		t.Error("expected collection to be in use")
	}

	inUse, err = store.CollectionInUse(ctx, "org_nobody")
	if err != nil {
		t.Fatalf("CollectionInUse failed: %v", err)
	}
	if inUse {
		t.Error("expected unused collection name to be free")
	}

	// A soft-deleted organization releases its collection name.
	if err := store.SoftDelete(ctx, org.ID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	inUse, err = store.CollectionInUse(ctx, org.CollectionName)
	if err != nil {
		t.Fatalf("CollectionInUse failed: %v", err)
	}
	if inUse {
		t.Error("expected collection to be free after soft delete")
	}
}
