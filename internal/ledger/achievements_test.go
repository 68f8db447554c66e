package ledger

import "testing"

func testDefs() []Definition {
	return []Definition{
		{
			ID:       "one_done",
			Title:    "One Done",
			XPReward: 50,
			Unlocked: func(l Ledger, _ int) bool { return l.CompletedCount() >= 1 },
		},
		{
			ID:       "week_two",
			Title:    "Week Two",
			XPReward: 100,
			Unlocked: func(_ Ledger, week int) bool { return week >= 2 },
		},
		{
			ID:       "rich",
			Title:    "Rich",
			XPReward: 25,
			Unlocked: func(l Ledger, _ int) bool { return l.Points >= 1000 },
		},
	}
}

func TestEvaluateUnlocksOnceAndGrantsXP(t *testing.T) {
	defs := testDefs()
	l := New()
	l, _ = Complete(l, dailyInstance(t, 0, 0), "2026-01-10")
	base := l.Points

	next, unlocked := Evaluate(defs, l, 1, "2026-01-10")
	if len(unlocked) != 1 || unlocked[0].ID != "one_done" {
		t.Fatalf("unlocked=%v", unlocked)
	}
	if next.Points != base+50 {
		t.Fatalf("points=%d, want %d", next.Points, base+50)
	}
	if !next.HasBadge("one_done") {
		t.Fatalf("badge missing")
	}

	// Second pass over the settled snapshot: nothing further.
	again, unlocked2 := Evaluate(defs, next, 1, "2026-01-10")
	if len(unlocked2) != 0 {
		t.Fatalf("re-evaluation unlocked %v", unlocked2)
	}
	if again.Points != next.Points {
		t.Fatalf("re-evaluation changed points")
	}
}

func TestEvaluateBadgeDedupe(t *testing.T) {
	defs := testDefs()
	l := New()
	l, _ = Complete(l, dailyInstance(t, 0, 0), "2026-01-10")

	for i := 0; i < 5; i++ {
		l, _ = Evaluate(defs, l, 1, "2026-01-10")
	}
	seen := 0
	for _, b := range l.Badges {
		if b.ID == "one_done" {
			seen++
		}
	}
	if seen != 1 {
		t.Fatalf("badge recorded %d times, want 1", seen)
	}
}

func TestEvaluatePredicatesSeeInputSnapshot(t *testing.T) {
	// XP granted in a pass must not trip point predicates within the same
	// pass; they fire on the next evaluation.
	defs := []Definition{
		{ID: "a", XPReward: 1000, Unlocked: func(l Ledger, _ int) bool { return true }},
		{ID: "b", XPReward: 10, Unlocked: func(l Ledger, _ int) bool { return l.Points >= 1000 }},
	}
	l := New()

	next, unlocked := Evaluate(defs, l, 1, "2026-01-10")
	if len(unlocked) != 1 || unlocked[0].ID != "a" {
		t.Fatalf("first pass unlocked %v", unlocked)
	}
	next2, unlocked2 := Evaluate(defs, next, 1, "2026-01-10")
	if len(unlocked2) != 1 || unlocked2[0].ID != "b" {
		t.Fatalf("second pass unlocked %v", unlocked2)
	}
	if next2.Points != 1010 {
		t.Fatalf("points=%d, want 1010", next2.Points)
	}
}

func TestEvaluateStableOrder(t *testing.T) {
	defs := []Definition{
		{ID: "z", XPReward: 1, Unlocked: func(Ledger, int) bool { return true }},
		{ID: "a", XPReward: 1, Unlocked: func(Ledger, int) bool { return true }},
		{ID: "m", XPReward: 1, Unlocked: func(Ledger, int) bool { return true }},
	}
	_, unlocked := Evaluate(defs, New(), 1, "2026-01-10")
	if len(unlocked) != 3 || unlocked[0].ID != "z" || unlocked[1].ID != "a" || unlocked[2].ID != "m" {
		t.Fatalf("definition order not preserved: %v", unlocked)
	}
}

func TestBuiltinAchievementIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range Achievements {
		if seen[def.ID] {
			t.Fatalf("duplicate achievement id %q", def.ID)
		}
		seen[def.ID] = true
		if def.Unlocked == nil {
			t.Fatalf("achievement %q has no predicate", def.ID)
		}
	}
}

func TestBuiltinStreakAchievements(t *testing.T) {
	l := New()
	l.Streak = 3
	next, unlocked := Evaluate(Achievements, l, 1, "2026-01-10")
	if !next.HasBadge("heart_of_iron") {
		t.Fatalf("streak-3 badge not unlocked")
	}
	for _, def := range unlocked {
		if def.ID == "iron_man" {
			t.Fatalf("streak-7 badge unlocked at streak 3")
		}
	}
}
