package backups

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/benchbook/internal/backup"
	"github.com/julianstephens/benchbook/internal/cli"
	"github.com/julianstephens/benchbook/internal/storage"
)

// manager returns the backup manager for the context's store. Only SQLite
// files can be snapshotted from here.
func manager(ctx *cli.Context, keep int) (*backup.Manager, error) {
	path := ctx.Store.GetConfigPath()
	if !storage.IsSQLite(ctx.Store) {
		return nil, fmt.Errorf("backups are only supported for SQLite databases, use the server's own tools for %s", path)
	}
	return backup.NewManager(path, keep), nil
}

type BackupCreateCmd struct {
	Keep int `help:"Number of backups to keep." default:"14"`
}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx, c.Keep)
	if err != nil {
		return err
	}
	snap, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	fmt.Printf("✓ Backup created: %s\n", snap.Name())
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx, 0)
	if err != nil {
		return err
	}
	snaps, err := mgr.List()
	if err != nil {
		return err
	}

	if len(snaps) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	fmt.Printf("Available backups (%d):\n\n", len(snaps))
	for _, s := range snaps {
		fmt.Printf("  %s  %s  (%.1f KB)\n", s.Taken.Format("2006-01-02 15:04:05"), s.Name(), float64(s.Size)/1024.0)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	File string `arg:"" help:"Path or file name of the backup to restore."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`

	in io.Reader
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx, 0)
	if err != nil {
		return err
	}
	path, err := mgr.Resolve(c.File)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Println("⚠️  WARNING: This replaces the booking database, including every reservation made since the backup.")
		fmt.Println("⚠️  Close every benchbook TUI using this database first.")
		fmt.Printf("\nRestore from: %s\n", path)
		fmt.Print("Continue? [y/N]: ")

		in := c.in
		if in == nil {
			in = os.Stdin
		}
		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && answer == "" {
			return err
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}

	safety, err := mgr.Restore(path)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if safety.Path != "" {
		fmt.Printf("Previous database saved as: %s\n", safety.Name())
	}
	fmt.Printf("✓ Restored %s from %s\n", mgr.DBPath(), filepath.Base(path))
	return nil
}
