package timeslot

import (
	"testing"
	"time"
)

func mustClock(t *testing.T, value string) Clock {
	t.Helper()
	clock, err := ParseClock(value)
	if err != nil {
		t.Fatalf("ParseClock(%q) failed: %v", value, err)
	}
	return clock
}

func TestSlots(t *testing.T) {
	t.Parallel()

	t.Run("steps through the window at the requested granularity", func(t *testing.T) {
		t.Parallel()

		got := Slots(mustClock(t, "09:00"), mustClock(t, "10:00"), 30)
		want := []string{"09:00", "09:30"}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	})

	t.Run("returns nothing for a degenerate window", func(t *testing.T) {
		t.Parallel()

		if got := Slots(mustClock(t, "09:00"), mustClock(t, "09:00"), 30); got != nil {
			t.Fatalf("expected no slots, got %v", got)
		}
		if got := Slots(mustClock(t, "10:00"), mustClock(t, "09:00"), 30); got != nil {
			t.Fatalf("expected no slots for inverted window, got %v", got)
		}
	})

	t.Run("ignores non-positive steps", func(t *testing.T) {
		t.Parallel()

		if got := Slots(mustClock(t, "09:00"), mustClock(t, "17:00"), 0); got != nil {
			t.Fatalf("expected no slots for zero step, got %v", got)
		}
	})

	t.Run("excludes a partial trailing slot", func(t *testing.T) {
		t.Parallel()

		got := Slots(mustClock(t, "09:00"), mustClock(t, "10:15"), 30)
		want := []string{"09:00", "09:30", "10:00"}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("carries minutes into hours", func(t *testing.T) {
		t.Parallel()

		got := Slots(mustClock(t, "09:45"), mustClock(t, "11:00"), 45)
		want := []string{"09:45", "10:30"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	})

	t.Run("produces a strictly increasing sequence bounded by the window", func(t *testing.T) {
		t.Parallel()

		windows := []struct {
			start, end string
			step       int
		}{
			{"00:00", "23:59", 30},
			{"08:15", "18:45", 25},
			{"09:00", "17:00", 60},
			{"22:00", "23:00", 7},
		}

		for _, window := range windows {
			start := mustClock(t, window.start)
			end := mustClock(t, window.end)
			slots := Slots(start, end, window.step)

			if len(slots) == 0 {
				t.Fatalf("expected slots for window %s-%s", window.start, window.end)
			}
			if slots[0] != start.String() {
				t.Fatalf("expected first slot %s, got %s", start, slots[0])
			}

			previous := -1
			for _, slot := range slots {
				clock := mustClock(t, slot)
				if clock.Minutes() <= previous {
					t.Fatalf("slots not strictly increasing: %v", slots)
				}
				if clock.Minutes() >= end.Minutes() {
					t.Fatalf("slot %s reaches past window end %s", slot, window.end)
				}
				previous = clock.Minutes()
			}
		}
	})
}

func TestContains(t *testing.T) {
	t.Parallel()

	start := mustClock(t, "09:00")
	end := mustClock(t, "17:00")

	cases := []struct {
		value string
		want  bool
	}{
		{"09:00", true},  // lower bound inclusive
		{"16:59", true},
		{"17:00", false}, // upper bound exclusive
		{"08:59", false},
		{"12:30", true},
	}
	for _, tc := range cases {
		if got := Contains(start, end, mustClock(t, tc.value)); got != tc.want {
			t.Fatalf("Contains(%s) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestWeekdays(t *testing.T) {
	t.Parallel()

	t.Run("parses canonical names case-insensitively", func(t *testing.T) {
		t.Parallel()

		day, err := ParseWeekday("wednesday")
		if err != nil {
			t.Fatalf("ParseWeekday failed: %v", err)
		}
		if day != time.Wednesday {
			t.Fatalf("expected Wednesday, got %v", day)
		}

		if _, err := ParseWeekday("Funday"); err == nil {
			t.Fatal("expected error for unknown weekday")
		}
	})

	t.Run("derives names without locale dependence", func(t *testing.T) {
		t.Parallel()

		// 2025-06-02 is a Monday.
		date := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
		if got := WeekdayName(date); got != "Monday" {
			t.Fatalf("expected Monday, got %s", got)
		}
	})

	t.Run("normalizes duplicates and spellings", func(t *testing.T) {
		t.Parallel()

		got, err := NormalizeWeekdays([]string{"monday", "Tuesday", "MONDAY"})
		if err != nil {
			t.Fatalf("NormalizeWeekdays failed: %v", err)
		}
		if len(got) != 2 || got[0] != "Monday" || got[1] != "Tuesday" {
			t.Fatalf("unexpected normalized set: %v", got)
		}

		if _, err := NormalizeWeekdays([]string{"Monday", "Smonday"}); err == nil {
			t.Fatal("expected error for invalid weekday in set")
		}
	})
}
