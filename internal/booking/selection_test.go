package booking

import (
	"fmt"
	"testing"
)

func TestSelectionIsAValue(t *testing.T) {
	a := NewSelection(1, tomorrow)
	b := a.Toggle(3)
	c := b.With(5, 7, 99).Without(7)

	if a.Len() != 0 {
		t.Errorf("original selection changed: %v", a.Slots())
	}
	if fmt.Sprint(b.Slots()) != "[3]" {
		t.Errorf("b = %v, want [3]", b.Slots())
	}
	if fmt.Sprint(c.Slots()) != "[3 5]" {
		t.Errorf("c = %v, want [3 5]", c.Slots())
	}
	if c.Toggle(3).Has(3) {
		t.Error("Toggle should unselect a selected slot")
	}
	if c.Has(-1) || c.Has(24) {
		t.Error("out-of-range slots are never selected")
	}
	if !c.Clear().IsEmpty() || c.Clear().ResourceID() != 1 {
		t.Error("Clear should keep the binding and drop the slots")
	}
}

func TestSelectionForClearsOnChange(t *testing.T) {
	sel := NewSelection(1, tomorrow).With(4)

	if got := sel.For(1, tomorrow); !got.Has(4) {
		t.Error("same binding should keep the slots")
	}
	for _, next := range []Selection{sel.For(2, tomorrow), sel.For(1, today)} {
		if !next.IsEmpty() {
			t.Errorf("rebinding to %d/%s kept %v", next.ResourceID(), next.Date(), next.Slots())
		}
	}
}

func TestAvailableActions(t *testing.T) {
	views := []SlotView{
		{Index: 0, State: Blocked},
		{Index: 1, State: Free},
		{Index: 2, State: Selected},
		{Index: 3, State: Booked},
	}
	tests := []struct {
		name  string
		slots []int
		want  Actions
	}{
		{"nothing selected", nil, Actions{}},
		{"blocked only", []int{0}, Actions{}},
		{"free selected", []int{2}, Actions{CanCommit: true}},
		{"booked selected", []int{3}, Actions{CanCancel: true}},
		{"mixed", []int{2, 3}, Actions{CanCommit: true, CanCancel: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AvailableActions(views, NewSelection(1, tomorrow).With(tt.slots...))
			if got != tt.want {
				t.Errorf("AvailableActions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHalves(t *testing.T) {
	views := classify(nil, tomorrow, today, 0, NewSelection(1, tomorrow))

	am, pm := Half(views, false), Half(views, true)
	if len(am) != 12 || am[0].Index != 0 || am[11].Index != 11 {
		t.Errorf("AM half = %v", am)
	}
	if len(pm) != 12 || pm[0].Index != 12 || pm[11].Index != 23 {
		t.Errorf("PM half = %v", pm)
	}
	if Half(views[:5], true) != nil {
		t.Error("Half of a short slice should be nil")
	}
	if IsPM(11) || !IsPM(12) {
		t.Error("IsPM boundary wrong")
	}
}
