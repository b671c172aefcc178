package booking

import "testing"

func TestHorizonBounds(t *testing.T) {
	h := Horizon{Days: 14}
	first, last, err := h.Bounds("2026-12-25")
	if err != nil {
		t.Fatalf("Bounds failed: %v", err)
	}
	if first != "2026-12-25" || last != "2027-01-08" {
		t.Errorf("Bounds() = %s..%s, want 2026-12-25..2027-01-08", first, last)
	}
	if _, _, err := h.Bounds("not-a-date"); err == nil {
		t.Error("Bounds() should fail for a bad date")
	}
}

func TestHorizonContainsAndClamp(t *testing.T) {
	h := Horizon{Days: 14}
	tests := []struct {
		date     string
		contains bool
		clamped  string
	}{
		{"2026-03-10", true, "2026-03-10"},
		{"2026-03-24", true, "2026-03-24"},
		{"2026-03-25", false, "2026-03-24"},
		{"2026-03-09", false, "2026-03-10"},
		{"garbage", false, "2026-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			if got := h.Contains(today, tt.date); got != tt.contains {
				t.Errorf("Contains(%s) = %v, want %v", tt.date, got, tt.contains)
			}
			if got := h.Clamp(today, tt.date); got != tt.clamped {
				t.Errorf("Clamp(%s) = %s, want %s", tt.date, got, tt.clamped)
			}
		})
	}
}

func TestHorizonShiftAndNav(t *testing.T) {
	h := Horizon{Days: 2}

	if got := h.Shift(today, today, -1); got != today {
		t.Errorf("Shift back from today = %s, want %s", got, today)
	}
	if got := h.Shift(today, today, 1); got != tomorrow {
		t.Errorf("Shift forward = %s, want %s", got, tomorrow)
	}
	if got := h.Shift(today, tomorrow, 5); got != "2026-03-12" {
		t.Errorf("Shift past the end = %s, want 2026-03-12", got)
	}

	if h.CanPrev(today, today) {
		t.Error("CanPrev(today) should be false")
	}
	if !h.CanPrev(today, tomorrow) || !h.CanNext(today, tomorrow) {
		t.Error("tomorrow should allow both directions")
	}
	if h.CanNext(today, "2026-03-12") {
		t.Error("CanNext at the last day should be false")
	}

	zero := Horizon{}
	if zero.CanNext(today, today) || zero.Shift(today, today, 3) != today {
		t.Error("a zero-day horizon only allows today")
	}
}
