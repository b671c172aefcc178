package models

import (
	"errors"
	"strings"
	"testing"

	apperr "github.com/julianstephens/benchbook/internal/errors"
)

func TestResourceSection(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"LAB_01", "LAB"},
		{"RACK_A_07", "RACK"},
		{"  EDGE_3  ", "EDGE"},
		{"standalone", "OTHER"},
		{"", "OTHER"},
		{"_leading", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resource{Name: tt.name}
			if got := r.Section(); got != tt.want {
				t.Errorf("Section() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewIdentity(t *testing.T) {
	tests := []struct {
		name    string
		display string
		id      string
		wantErr bool
	}{
		{"valid", "Alice", "12345678", false},
		{"trimmed", "  Bob ", " 87654321 ", false},
		{"empty name", "", "12345678", true},
		{"name with digits", "Alice2", "12345678", true},
		{"name with space", "Mary Ann", "12345678", true},
		{"name too long", strings.Repeat("a", 51), "12345678", true},
		{"name at limit", strings.Repeat("a", 50), "12345678", false},
		{"id too short", "Alice", "1234567", true},
		{"id too long", "Alice", "123456789", true},
		{"id with letters", "Alice", "1234567a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident, err := NewIdentity(tt.display, tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewIdentity() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, apperr.ErrInvalidIdentity) {
				t.Errorf("NewIdentity() error = %v, want ErrInvalidIdentity", err)
			}
			if err == nil && (ident.DisplayName == "" || len(ident.NumericID) != 8) {
				t.Errorf("NewIdentity() = %+v, want trimmed values", ident)
			}
		})
	}
}

func TestIdentityMatches(t *testing.T) {
	a := Identity{DisplayName: "Alice", NumericID: "12345678"}
	b := Identity{DisplayName: "Someone", NumericID: " 12345678"}
	c := Identity{DisplayName: "Alice", NumericID: "00000000"}

	if !a.Matches(b) {
		t.Error("identities with the same id should match regardless of name")
	}
	if a.Matches(c) {
		t.Error("identities with different ids should not match")
	}
}

func TestReservationValidate(t *testing.T) {
	valid := Reservation{ID: "r1", ResourceID: 1, Date: "2026-10-15", Slot: 23}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid reservation failed: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Reservation)
	}{
		{"missing id", func(r *Reservation) { r.ID = "" }},
		{"zero resource", func(r *Reservation) { r.ResourceID = 0 }},
		{"bad date", func(r *Reservation) { r.Date = "2026/10/15" }},
		{"negative slot", func(r *Reservation) { r.Slot = -1 }},
		{"slot 24", func(r *Reservation) { r.Slot = 24 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings should be valid: %v", err)
	}

	s := DefaultSettings()
	s.CancelPolicy = "admins"
	if err := s.Validate(); err == nil {
		t.Error("unknown cancel policy should be rejected")
	}

	s = DefaultSettings()
	s.Timezone = "Nowhere/Special"
	if err := s.Validate(); err == nil {
		t.Error("invalid timezone should be rejected")
	}

	s = DefaultSettings()
	s.HorizonDays = -1
	if err := s.Validate(); err == nil {
		t.Error("negative horizon should be rejected")
	}
}
