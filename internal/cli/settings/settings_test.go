package settings

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/benchbook/internal/cli"
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

	ctx := &cli.Context{Store: store}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestSettingsCmd_List(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{List: true}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Errorf("settings without flags failed: %v", err)
	}
	got, _ := ctx.Store.GetSettings()
	if got != models.DefaultSettings() {
		t.Errorf("settings changed without flags: %+v", got)
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{
		Timezone:       strPtr("Europe/Berlin"),
		HorizonDays:    intPtr(7),
		CancelPolicy:   strPtr("owner"),
		ViewerTemplate: strPtr("/opt/vnc/base.vnc"),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get updated settings: %v", err)
	}
	want := models.Settings{
		Timezone:       "Europe/Berlin",
		HorizonDays:    7,
		CancelPolicy:   "owner",
		ViewerTemplate: "/opt/vnc/base.vnc",
	}
	if got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
}

func TestSettingsCmd_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{"bad timezone", SettingsCmd{Timezone: strPtr("Atlantis/Capital")}},
		{"negative horizon", SettingsCmd{HorizonDays: intPtr(-2)}},
		{"unknown policy", SettingsCmd{CancelPolicy: strPtr("admins")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cleanup := setupTestDB(t)
			defer cleanup()

			if err := tt.cmd.Run(ctx); err == nil {
				t.Fatal("expected validation error")
			}
			got, _ := ctx.Store.GetSettings()
			if got != models.DefaultSettings() {
				t.Errorf("invalid update was saved: %+v", got)
			}
		})
	}
}
