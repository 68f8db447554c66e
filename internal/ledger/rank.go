package ledger

// Tier is one rung of the rank table.
type Tier struct {
	Level     int
	MinPoints int
	Name      string
	Icon      string
}

// Tiers is the rank table, ascending by MinPoints. The first entry is the
// below-tier-1 sentinel; points never go negative, so it is unreachable in
// practice but keeps the table total.
var Tiers = []Tier{
	{Level: 0, MinPoints: -1, Name: "Deserter", Icon: "🕳️"},
	{Level: 1, MinPoints: 0, Name: "Civilian Contact", Icon: "👶"},
	{Level: 2, MinPoints: 150, Name: "Recruit", Icon: "🎖️"},
	{Level: 3, MinPoints: 450, Name: "Recon Operator", Icon: "🔭"},
	{Level: 4, MinPoints: 900, Name: "Logistics Specialist", Icon: "📦"},
	{Level: 5, MinPoints: 1500, Name: "Configuration Analyst", Icon: "⚙️"},
	{Level: 6, MinPoints: 2300, Name: "Tactical Advisor", Icon: "🧠"},
	{Level: 7, MinPoints: 3300, Name: "Drop Team Leader", Icon: "🚁"},
	{Level: 8, MinPoints: 4500, Name: "Sector Warden", Icon: "🛡️"},
	{Level: 9, MinPoints: 6000, Name: "Elite Veteran", Icon: "🌟"},
	{Level: 10, MinPoints: 8000, Name: "Commanding General", Icon: "👑"},
}

// Resolve returns the highest tier whose MinPoints does not exceed points.
// Rank is always derived from points, never stored, so it cannot drift.
func Resolve(points int) Tier {
	return ResolveIn(Tiers, points)
}

// ResolveIn resolves against an arbitrary ascending tier table.
func ResolveIn(tiers []Tier, points int) Tier {
	best := tiers[0]
	for _, t := range tiers {
		if t.MinPoints <= points {
			best = t
		}
	}
	return best
}
