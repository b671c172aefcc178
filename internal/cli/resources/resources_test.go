package resources

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/benchbook/internal/cli"
	"github.com/julianstephens/benchbook/internal/clock"
	apperr "github.com/julianstephens/benchbook/internal/errors"
	"github.com/julianstephens/benchbook/internal/models"
	"github.com/julianstephens/benchbook/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		t.Fatalf("failed to load zone: %v", err)
	}
	ctx := &cli.Context{
		Store: store,
		Clock: clock.NewFixed(time.Date(2026, 3, 10, 14, 20, 0, 0, loc)),
	}
	if err := ctx.Setup(""); err != nil {
		t.Fatalf("failed to set up context: %v", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func strPtr(s string) *string { return &s }

func TestResourceAddCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &ResourceAddCmd{
		Name: " LAB_01 ",
		ResourceFlags: ResourceFlags{
			Host:          strPtr("10.0.0.5"),
			RemoteAccount: strPtr("tester"),
			IPKVM:         strPtr("10.0.0.105"),
		},
	}
	if err := cmd.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("resource add failed: %v", err)
	}

	r, err := ctx.Store.GetResourceByName("LAB_01")
	if err != nil {
		t.Fatalf("machine not stored: %v", err)
	}
	if r.HostName != "10.0.0.5" || r.RemoteAccount != "tester" || r.IPKVM != "10.0.0.105" {
		t.Errorf("stored machine = %+v", r)
	}

	err = cmd.Run(ctx)
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("duplicate add error = %v, want ErrAlreadyExists", err)
	}
}

func TestResourceAddCmd_ValidateEmptyName(t *testing.T) {
	if err := (&ResourceAddCmd{Name: "   "}).Validate(); err == nil {
		t.Error("expected empty name to be rejected")
	}
}

func TestResourceEditCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if _, err := ctx.Store.AddResource(models.Resource{Name: "LAB_01", Note: "old", State: "ready"}); err != nil {
		t.Fatalf("failed to add machine: %v", err)
	}

	cmd := &ResourceEditCmd{
		Name:          "LAB_01",
		ResourceFlags: ResourceFlags{Note: strPtr(""), State: strPtr("broken")},
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("resource edit failed: %v", err)
	}

	r, _ := ctx.Store.GetResourceByName("LAB_01")
	if r.Note != "" || r.State != "broken" {
		t.Errorf("edited machine = %+v, want empty note and broken state", r)
	}

	err := (&ResourceEditCmd{Name: "NOPE_1"}).Run(ctx)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("edit of missing machine error = %v, want ErrNotFound", err)
	}
}

func TestResourceListAndShow(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&ResourceListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list on empty inventory failed: %v", err)
	}

	var lab models.Resource
	for _, name := range []string{"RACK_2", "LAB_01", "standalone"} {
		r, err := ctx.Store.AddResource(models.Resource{Name: name})
		if err != nil {
			t.Fatalf("failed to add machine: %v", err)
		}
		if name == "LAB_01" {
			lab = r
		}
	}

	// LAB_01 is held for the current hour (14:00)
	err := ctx.Store.AddReservation(models.Reservation{
		ID:          uuid.New().String(),
		ResourceID:  lab.ID,
		Date:        "2026-03-10",
		Slot:        14,
		DisplayName: "Alice",
		RequesterID: "11111111",
	})
	if err != nil {
		t.Fatalf("failed to add reservation: %v", err)
	}

	if err := (&ResourceListCmd{ShowIDs: true}).Run(ctx); err != nil {
		t.Errorf("resource list failed: %v", err)
	}
	if err := (&ResourceShowCmd{Name: "LAB_01"}).Run(ctx); err != nil {
		t.Errorf("resource show failed: %v", err)
	}
	if err := (&ResourceShowCmd{Name: "LAB_99"}).Run(ctx); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("show of missing machine error = %v, want ErrNotFound", err)
	}
}
