package backups

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/benchbook/internal/backup"
	"github.com/julianstephens/benchbook/internal/cli"
	"github.com/julianstephens/benchbook/internal/models"
	"github.com/julianstephens/benchbook/internal/storage/postgres"
	"github.com/julianstephens/benchbook/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "benchbook.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if _, err := store.AddResource(models.Resource{Name: "LAB_01"}); err != nil {
		t.Fatalf("failed to add machine: %v", err)
	}
	return &cli.Context{Store: store}, dbPath
}

func machineNames(t *testing.T, dbPath string) []string {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	defer store.Close()

	resources, err := store.GetAllResources()
	if err != nil {
		t.Fatalf("failed to list machines: %v", err)
	}
	var names []string
	for _, r := range resources {
		names = append(names, r.Name)
	}
	return names
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, dbPath := setupTestDB(t)

	if err := (&BackupCreateCmd{Keep: 14}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	snaps, err := backup.NewManager(dbPath, 0).List()
	if err != nil || len(snaps) != 1 {
		t.Fatalf("expected one backup, got %v, %v", snaps, err)
	}
}

func TestBackupRestore(t *testing.T) {
	tests := []struct {
		name    string
		cmd     BackupRestoreCmd
		restore bool
	}{
		{"confirmed by flag", BackupRestoreCmd{Yes: true}, true},
		{"confirmed by prompt", BackupRestoreCmd{in: strings.NewReader("yes\n")}, true},
		{"declined", BackupRestoreCmd{in: strings.NewReader("n\n")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, dbPath := setupTestDB(t)
			snap, err := backup.NewManager(dbPath, 0).Create()
			if err != nil {
				t.Fatalf("failed to create backup: %v", err)
			}
			if _, err := ctx.Store.AddResource(models.Resource{Name: "LAB_02"}); err != nil {
				t.Fatalf("failed to add machine: %v", err)
			}

			cmd := tt.cmd
			cmd.File = snap.Name()
			if err := cmd.Run(ctx); err != nil {
				t.Fatalf("restore failed: %v", err)
			}

			want := 2
			if tt.restore {
				want = 1
			}
			if got := machineNames(t, dbPath); len(got) != want {
				t.Errorf("expected %d machines, got %v", want, got)
			}
		})
	}
}

func TestBackup_RejectsServerBackends(t *testing.T) {
	ctx := &cli.Context{Store: postgres.New("postgres://db.example.com/benchbook")}
	err := (&BackupCreateCmd{}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "only supported for SQLite") {
		t.Errorf("expected SQLite-only error, got %v", err)
	}
}
