package ledger

// Definition is one achievement: content plus a pure predicate over a
// ledger snapshot. Predicates take only the snapshot and the derived week
// number, never outside state, so evaluation order and idempotency hold by
// construction.
type Definition struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Rarity      string
	XPReward    int
	Unlocked    func(l Ledger, week int) bool
}

// Evaluate scans the definitions in order against a single snapshot.
// Already-held badges are skipped; new unlocks are recorded once and their
// XP applied in one batch. Calling it again on the result unlocks nothing
// further for the same snapshot.
//
// XP granted here can itself push the ledger over point-based predicates;
// those fire on the next evaluation, against the settled snapshot.
func Evaluate(defs []Definition, l Ledger, week int, date string) (Ledger, []Definition) {
	var unlocked []Definition
	xp := 0

	for _, def := range defs {
		if l.HasBadge(def.ID) {
			continue
		}
		if def.Unlocked == nil || !def.Unlocked(l, week) {
			continue
		}
		unlocked = append(unlocked, def)
		xp += def.XPReward
	}

	if len(unlocked) == 0 {
		return l, nil
	}

	next := l.clone()
	for _, def := range unlocked {
		next.Badges = append(next.Badges, Badge{ID: def.ID, UnlockedDate: date})
	}
	next.Points += xp
	return next, unlocked
}

// Achievements is the built-in ordered definition list.
var Achievements = []Definition{
	{
		ID:          "first_blood",
		Title:       "First Blood",
		Description: "Completed the very first mission. Welcome to the program.",
		Icon:        "🎖️",
		Rarity:      "common",
		XPReward:    50,
		Unlocked:    func(l Ledger, _ int) bool { return l.CompletedCount() >= 1 },
	},
	{
		ID:          "greenhorn",
		Title:       "Greenhorn",
		Description: "Five missions down. Starting to find your feet.",
		Icon:        "🌱",
		Rarity:      "common",
		XPReward:    100,
		Unlocked:    func(l Ledger, _ int) bool { return l.CompletedCount() >= 5 },
	},
	{
		ID:          "workhorse",
		Title:       "Workhorse",
		Description: "Twenty-five missions completed. Reliability noted in the file.",
		Icon:        "🏅",
		Rarity:      "rare",
		XPReward:    250,
		Unlocked:    func(l Ledger, _ int) bool { return l.CompletedCount() >= 25 },
	},
	{
		ID:          "heart_of_iron",
		Title:       "Heart of Iron",
		Description: "Three-day streak. Discipline is the foundation.",
		Icon:        "🔥",
		Rarity:      "rare",
		XPReward:    150,
		Unlocked:    func(l Ledger, _ int) bool { return l.Streak >= 3 },
	},
	{
		ID:          "iron_man",
		Title:       "Iron Man",
		Description: "A full week-long streak. Nothing stops you.",
		Icon:        "🤖",
		Rarity:      "epic",
		XPReward:    500,
		Unlocked:    func(l Ledger, _ int) bool { return l.Streak >= 7 },
	},
	{
		ID:          "officer",
		Title:       "Officer",
		Description: "Reached tier 5. No longer a foot soldier.",
		Icon:        "⭐",
		Rarity:      "rare",
		XPReward:    300,
		Unlocked:    func(l Ledger, _ int) bool { return Resolve(l.Points).Level >= 5 },
	},
	{
		ID:          "general",
		Title:       "General",
		Description: "Reached the top tier. A legend of the program.",
		Icon:        "👑",
		Rarity:      "legendary",
		XPReward:    1000,
		Unlocked:    func(l Ledger, _ int) bool { return Resolve(l.Points).Level >= 10 },
	},
	{
		ID:          "quartermaster",
		Title:       "Quartermaster",
		Description: "Ten supply or logistics missions completed.",
		Icon:        "📦",
		Rarity:      "rare",
		XPReward:    200,
		Unlocked: func(l Ledger, _ int) bool {
			n := 0
			for _, in := range l.History {
				if in.State != StateCompleted {
					continue
				}
				if in.Category == "supplies" || in.Category == "logistics" {
					n++
				}
			}
			return n >= 10
		},
	},
	{
		ID:          "big_day",
		Title:       "Big Day",
		Description: "Completed a major milestone mission.",
		Icon:        "🏆",
		Rarity:      "epic",
		XPReward:    250,
		Unlocked: func(l Ledger, _ int) bool {
			for _, in := range l.History {
				if in.State == StateCompleted && in.BigMilestone {
					return true
				}
			}
			return false
		},
	},
	{
		ID:          "self_starter",
		Title:       "Self-Starter",
		Description: "Completed a mission you wrote yourself.",
		Icon:        "✍️",
		Rarity:      "common",
		XPReward:    100,
		Unlocked: func(l Ledger, _ int) bool {
			for _, in := range l.History {
				if in.State == StateCompleted && in.IsCustom() {
					return true
				}
			}
			return false
		},
	},
	{
		ID:          "halfway_there",
		Title:       "Halfway There",
		Description: "Week 20 reached. The second half begins.",
		Icon:        "⏳",
		Rarity:      "rare",
		XPReward:    200,
		Unlocked:    func(_ Ledger, week int) bool { return week >= 20 },
	},
	{
		ID:          "deep_pockets",
		Title:       "Deep Pockets",
		Description: "Banked 2000 points.",
		Icon:        "💰",
		Rarity:      "epic",
		XPReward:    300,
		Unlocked:    func(l Ledger, _ int) bool { return l.Points >= 2000 },
	},
}
