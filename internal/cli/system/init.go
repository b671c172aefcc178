package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/benchbook/internal/backup"
	"github.com/julianstephens/benchbook/internal/cli"
	apperr "github.com/julianstephens/benchbook/internal/errors"
	"github.com/julianstephens/benchbook/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting an existing SQLite database before initialization."`
	Source string `help:"Source database path or connection string to copy settings and machines from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized benchbook storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx, c.Source); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		fmt.Println("Copy completed successfully!")
	}

	return nil
}

// reset removes the SQLite file so Init starts from an empty schema. Server
// backends are never dropped from here.
func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if !storage.IsSQLite(ctx.Store) {
		return fmt.Errorf("--force only resets SQLite databases, drop the %s database manually", dbPath)
	}

	if c.Source != "" {
		absDbPath, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDbPath
		}
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if snap, err := backup.NewManager(dbPath, 0).Create(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not back up %s before reset: %v\n", dbPath, err)
		} else {
			fmt.Printf("Backed up existing database to: %s\n", snap.Path)
		}
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// copyData brings settings and the machine inventory over from another store.
// Reservations are not copied: they are short-lived and keyed by machine id,
// which the destination assigns afresh.
func (c *InitCmd) copyData(ctx *cli.Context, source string) error {
	if storage.HasEmbeddedCredentials(source) {
		return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
	}

	src := storage.New(source)
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	fmt.Println("  Copying settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Copying machines...")
	resources, err := src.GetAllResources()
	if err != nil {
		return fmt.Errorf("failed to get machines from source: %w", err)
	}
	copied := 0
	for _, r := range resources {
		r.ID = 0
		if _, err := ctx.Store.AddResource(r); err != nil {
			if errors.Is(err, apperr.ErrAlreadyExists) {
				fmt.Printf("    Skipped %s (already present)\n", r.Name)
				continue
			}
			return fmt.Errorf("failed to add machine %s: %w", r.Name, err)
		}
		copied++
	}
	fmt.Printf("    Copied %d machines\n", copied)

	return nil
}
