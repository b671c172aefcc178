package postgres

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	apperr "github.com/julianstephens/benchbook/internal/errors"
	"github.com/julianstephens/benchbook/internal/models"
)

// TestStore_Integration runs against a real server.
// Example: POSTGRES_TEST_URL="postgres://benchbook@localhost:5432/benchbook_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	machine, err := store.AddResource(models.Resource{
		Name:     fmt.Sprintf("IT_%d", time.Now().UnixNano()),
		HostName: "10.0.0.9",
	})
	if err != nil {
		t.Fatalf("AddResource failed: %v", err)
	}
	date := "2030-01-15"

	t.Run("Settings", func(t *testing.T) {
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if err := store.SaveSettings(settings); err != nil {
			t.Fatalf("SaveSettings failed: %v", err)
		}
	})

	t.Run("Resources", func(t *testing.T) {
		got, err := store.GetResourceByName(machine.Name)
		if err != nil {
			t.Fatalf("GetResourceByName failed: %v", err)
		}
		if got.ID != machine.ID {
			t.Errorf("ID = %d, want %d", got.ID, machine.ID)
		}
		if _, err := store.AddResource(models.Resource{Name: machine.Name}); !errors.Is(err, apperr.ErrAlreadyExists) {
			t.Errorf("duplicate AddResource error = %v, want ErrAlreadyExists", err)
		}
	})

	t.Run("ConcurrentInsert", func(t *testing.T) {
		var wg sync.WaitGroup
		var mu sync.Mutex
		wins := 0
		for i := 0; i < 6; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := store.AddReservation(models.Reservation{
					ID:          uuid.New().String(),
					ResourceID:  machine.ID,
					Date:        date,
					Slot:        10,
					DisplayName: "lab",
					RequesterID: fmt.Sprintf("%08d", i),
				})
				if err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				} else if !errors.Is(err, apperr.ErrSlotTaken) {
					t.Errorf("unexpected error: %v", err)
				}
			}(i)
		}
		wg.Wait()
		if wins != 1 {
			t.Errorf("wins = %d, want 1", wins)
		}
	})

	t.Run("ReadAndDelete", func(t *testing.T) {
		got, err := store.GetReservations(machine.ID, date)
		if err != nil {
			t.Fatalf("GetReservations failed: %v", err)
		}
		if len(got) != 1 || got[0].Date != date || got[0].Slot != 10 {
			t.Fatalf("GetReservations = %+v", got)
		}

		n, err := store.DeleteReservations(machine.ID, date, []int{10, 11}, "")
		if err != nil {
			t.Fatalf("DeleteReservations failed: %v", err)
		}
		if n != 1 {
			t.Errorf("removed = %d, want 1", n)
		}
		if _, err := store.GetReservation(machine.ID, date, 10); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("GetReservation after delete error = %v, want ErrNotFound", err)
		}
	})
}
