package booking

import (
	"errors"
	"testing"
	"time"

	apperr "github.com/julianstephens/benchbook/internal/errors"
	"github.com/julianstephens/benchbook/internal/models"
)

func TestClassifyElapsedSlotsAreBlocked(t *testing.T) {
	store := newMemStore()
	store.put(t, 1, today, 2, alice)
	store.put(t, 1, today, 14, alice)
	store.put(t, 1, today, 15, bob)
	e := New(store, fixedAt(t, 14, 30, 0), CancelAnyone)

	sel := NewSelection(1, today).With(5, 13, 16)
	views, err := e.Classify(1, today, sel)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if len(views) != 24 {
		t.Fatalf("len(views) = %d, want 24", len(views))
	}

	for i, v := range views {
		if v.Index != i {
			t.Errorf("views[%d].Index = %d", i, v.Index)
		}
		if i < 14 && v.State != Blocked {
			t.Errorf("slot %d = %s, want blocked", i, v.State)
		}
		if i >= 14 && v.State == Blocked {
			t.Errorf("slot %d blocked before its hour ended", i)
		}
	}

	want := map[int]SlotState{14: Booked, 15: Booked, 16: Selected, 17: Free, 23: Free}
	got := states(views)
	for i, s := range want {
		if got[i] != s {
			t.Errorf("slot %d = %s, want %s", i, got[i], s)
		}
	}
	if views[2].Holder != nil || views[5].InSelection {
		t.Error("blocked slots should carry neither holder nor selection")
	}
	if views[15].Holder == nil || views[15].Holder.NumericID != bob.NumericID {
		t.Errorf("slot 15 holder = %v, want bob", views[15].Holder)
	}
}

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		booked   bool
		selected bool
		want     SlotState
	}{
		{"free", tomorrow, false, false, Free},
		{"selected", tomorrow, false, true, Selected},
		{"booked", tomorrow, true, false, Booked},
		{"booked wins over selected", tomorrow, true, true, Booked},
		{"blocked wins over booked and selected", today, true, true, Blocked},
		{"blocked when free", today, false, false, Blocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			if tt.booked {
				store.put(t, 1, tt.date, 8, alice)
			}
			sel := NewSelection(1, tt.date)
			if tt.selected {
				sel = sel.With(8)
			}
			e := New(store, fixedAt(t, 10, 0, 0), CancelAnyone)

			views, err := e.Classify(1, tt.date, sel)
			if err != nil {
				t.Fatalf("Classify failed: %v", err)
			}
			if views[8].State != tt.want {
				t.Errorf("slot 8 = %s, want %s", views[8].State, tt.want)
			}
		})
	}
}

func TestClassifyOtherDatesNeverBlocked(t *testing.T) {
	e := New(newMemStore(), fixedAt(t, 23, 59, 59), CancelAnyone)

	for _, date := range []string{tomorrow, "2026-03-09", "2027-01-01"} {
		views, err := e.Classify(1, date, NewSelection(1, date))
		if err != nil {
			t.Fatalf("Classify(%s) failed: %v", date, err)
		}
		for _, v := range views {
			if v.State != Free {
				t.Errorf("%s slot %d = %s, want free", date, v.Index, v.State)
			}
		}
	}
}

func TestClassifyLastSlotOfToday(t *testing.T) {
	e := New(newMemStore(), fixedAt(t, 23, 59, 59), CancelAnyone)
	views, err := e.Classify(1, today, NewSelection(1, today))
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if views[22].State != Blocked || views[23].State != Free {
		t.Errorf("slots 22/23 = %s/%s, want blocked/free", views[22].State, views[23].State)
	}
}

func TestClassifyIgnoresSelectionForOtherBinding(t *testing.T) {
	e := New(newMemStore(), fixedAt(t, 0, 0, 0), CancelAnyone)
	sel := NewSelection(2, tomorrow).With(4)

	views, err := e.Classify(1, tomorrow, sel)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if views[4].State != Free {
		t.Errorf("slot 4 = %s, want free for a selection bound elsewhere", views[4].State)
	}
}

func TestClassifyHourRollOver(t *testing.T) {
	store := newMemStore()
	store.put(t, 1, today, 15, bob)
	clk := fixedAt(t, 14, 59, 59)
	e := New(store, clk, CancelAnyone)
	sel := NewSelection(1, today).With(14)

	before, err := e.Classify(1, today, sel)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if before[14].State != Selected {
		t.Fatalf("slot 14 before roll-over = %s, want selected", before[14].State)
	}

	clk.Advance(time.Second)
	after, err := e.Classify(1, today, sel)
	if err != nil {
		t.Fatalf("Classify after roll-over failed: %v", err)
	}
	if after[14].State != Blocked {
		t.Errorf("slot 14 after roll-over = %s, want blocked", after[14].State)
	}
	if after[15].State != Booked {
		t.Errorf("slot 15 after roll-over = %s, want booked", after[15].State)
	}
	if !sel.Has(14) {
		t.Error("classification must not modify the caller's selection")
	}

	// Crossing midnight makes the old date fully past and not "today" any more.
	clk.Set(time.Date(2026, 3, 11, 0, 0, 0, 0, taipei(t)))
	next, err := e.Classify(1, today, sel)
	if err != nil {
		t.Fatalf("Classify after midnight failed: %v", err)
	}
	if next[14].State != Selected {
		t.Errorf("yesterday's slot 14 = %s, want selected (past dates are not range-checked)", next[14].State)
	}
}

func TestClassifyStoreUnavailable(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("dial tcp: connection refused")
	e := New(store, fixedAt(t, 9, 0, 0), CancelAnyone)

	views, err := e.Classify(1, today, NewSelection(1, today))
	if !errors.Is(err, apperr.ErrStoreUnavailable) {
		t.Errorf("Classify error = %v, want ErrStoreUnavailable", err)
	}
	if views != nil {
		t.Errorf("Classify returned %d views on failure, want none", len(views))
	}
}

func TestSlotViewLabel(t *testing.T) {
	long := models.Identity{DisplayName: "Bartholomew", NumericID: "33333333"}
	tests := []struct {
		name string
		view SlotView
		want string
	}{
		{"free", SlotView{Index: 7, State: Free}, "7"},
		{"blocked", SlotView{Index: 3, State: Blocked}, "3"},
		{"booked", SlotView{Index: 9, State: Booked, Holder: &alice}, "9 : Alice"},
		{"booked truncated", SlotView{Index: 12, State: Booked, Holder: &long}, "12 : Bartholome"},
		{"selected ignores holder", SlotView{Index: 4, State: Selected, Holder: &alice}, "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.view.Label()
			if got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
			if len(got) > 15 {
				t.Errorf("Label() length %d exceeds 15", len(got))
			}
		})
	}
}

func TestSlotStateString(t *testing.T) {
	for s, want := range map[SlotState]string{Free: "free", Selected: "selected", Booked: "booked", Blocked: "blocked", 9: "SlotState(9)"} {
		if s.String() != want {
			t.Errorf("SlotState(%d).String() = %q, want %q", int(s), s.String(), want)
		}
	}
}
