// Package catalog is the scripted mission content: a pure, deterministic
// lookup from day index to that day's mission templates. The engine treats
// it as read-only data.
package catalog

import "fmt"

// Template is immutable mission content. Lifecycle state lives on
// ledger.Instance, never here.
type Template struct {
	ID          string
	Title       string
	Description string
	Category    string
	Points      int
	BigMilestone bool
}

// DefaultCustomPoints is the point value assigned to user-authored missions.
const DefaultCustomPoints = 50

// overdueStart is the first day index served from the overdue rotation
// instead of the scripted table.
const overdueStart = 295

type entry struct {
	Title        string
	Description  string
	Category     string
	Points       int
	BigMilestone bool
}

// ForDay returns the mission templates for a day index. Scripted days come
// from the table; days past the program end rotate through overdue support
// missions; any other gap falls back to a deterministic pair of generic
// missions so no day is ever empty.
func ForDay(day int) []Template {
	if day < 0 {
		return nil
	}

	var source []entry
	switch {
	case day >= overdueStart:
		source = []entry{overdueMissions[(day-overdueStart)%len(overdueMissions)]}
	default:
		source = scripted[day]
		if len(source) == 0 {
			source = []entry{
				genericMissions[day%len(genericMissions)],
				genericMissions[(day+3)%len(genericMissions)],
			}
		}
	}

	out := make([]Template, len(source))
	for i, e := range source {
		out[i] = Template{
			ID:           fmt.Sprintf("daily_%d_%d", day, i),
			Title:        e.Title,
			Description:  e.Description,
			Category:     e.Category,
			Points:       e.Points,
			BigMilestone: e.BigMilestone,
		}
	}
	return out
}

// scripted holds the hand-written day table. Content here is a working
// subset; unscripted days are covered by the generic fallback.
var scripted = map[int][]entry{
	0: {
		{Title: "Open the operation file", Description: "Write down the target date and what the next 280 days are for. Day zero is for orientation, not heroics.", Category: "strategy", Points: 45},
		{Title: "Stock the supply line", Description: "Lay in water and decent snacks at base. Remove the worst junk from easy reach.", Category: "supplies", Points: 35},
	},
	1: {
		{Title: "Calibrate the instruments", Description: "Check that every tracker, timer and thermometer you plan to rely on actually works.", Category: "hardware", Points: 40},
		{Title: "Morale delivery", Description: "Bring home one small unprompted treat. Crew morale compounds like interest.", Category: "service", Points: 35},
	},
	2: {
		{Title: "Deep-clean the base", Description: "One room, properly. A clean perimeter lowers everyone's stress floor.", Category: "upkeep", Points: 40},
		{Title: "Scout the specialists", Description: "Find and save contact details for the clinic you would call first.", Category: "recon", Points: 35},
	},
	3: {
		{Title: "Open the war chest", Description: "Create a separate fund for the operation and set up an automatic transfer, however small.", Category: "treasury", Points: 45},
		{Title: "Hazard sweep", Description: "Audit household chemicals and anything aggressive. Quarantine what fails inspection.", Category: "perimeter", Points: 40},
	},
	4: {
		{Title: "Clear the calendar", Description: "Strike the avoidable stress events from the next two weeks. Protect the quiet hours.", Category: "logistics", Points: 40},
		{Title: "Vehicle readiness", Description: "Fluids, tires, fuel. The transport must be mission-capable on no notice.", Category: "transport", Points: 35},
	},
	5: {
		{Title: "First journal entry", Description: "Record how the crew is doing and what changed this week. Future you will want the log.", Category: "briefing", Points: 45},
		{Title: "Comfort zone build-out", Description: "Tune the bedroom for real rest: temperature, light, noise. Sleep is strategic materiel.", Category: "build", Points: 40},
	},
	6: {
		{Title: "Weekly debrief", Description: "Sit down together and compare notes on week one. Adjust the plan, not the goal.", Category: "briefing", Points: 45},
	},
	7: {
		{Title: "Raise readiness level", Description: "Week two begins. Review the checklist and flag anything slipping before it becomes a problem.", Category: "strategy", Points: 45},
		{Title: "Supplement check", Description: "Confirm the daily vitamins are actually being taken, not just bought.", Category: "medic", Points: 15},
	},
	8: {
		{Title: "Data review", Description: "Go over whatever you are tracking and look for trends. Gut feel is not telemetry.", Category: "recon", Points: 35},
		{Title: "Fifteen-minute massage", Description: "Shoulders and neck, no phone in hand. Cortisol is the enemy of every mission.", Category: "service", Points: 40},
	},
	13: {
		{Title: "Two-week milestone", Description: "Fourteen days of discipline. Mark it: cook the good dinner, log the win.", Category: "big_mission", Points: 100, BigMilestone: true},
	},
	279: {
		{Title: "Final inspection", Description: "Walk the full readiness checklist end to end. Anything missing gets fixed today.", Category: "briefing", Points: 50},
	},
	280: {
		{Title: "Target date reached", Description: "The countdown is done. Stay calm, stay reachable, run the plan you rehearsed.", Category: "big_mission", Points: 150, BigMilestone: true},
	},
}

// overdueMissions rotate one per day once the scripted program is exhausted.
var overdueMissions = []entry{
	{Title: "Comfort logistics", Description: "Bring whatever makes the waiting easier: the good pillow, the favorite drink, a book.", Category: "logistics", Points: 45},
	{Title: "Emotional anchor", Description: "Be available for venting and say little. Overtime is hard on everyone.", Category: "medic", Points: 40},
	{Title: "Communication filter", Description: "Field the are-we-there-yet messages from family so nobody else has to.", Category: "briefing", Points: 45},
	{Title: "Base in ready state", Description: "Fresh sheets, empty bins, stocked fridge. The return must land on a prepared base.", Category: "upkeep", Points: 40},
	{Title: "Courier run", Description: "Check for anything missing from the go-bag and deliver it same day.", Category: "transport", Points: 45},
	{Title: "Morale maintenance", Description: "Acknowledge the endurance out loud. You are in this until the end, together.", Category: "medic", Points: 40},
}

// genericMissions back-fill unscripted days, two per day.
var genericMissions = []entry{
	{Title: "Hydration check", Description: "Keep the water within arm's reach all day.", Category: "service", Points: 10},
	{Title: "Neck massage", Description: "Offer ten minutes of shoulder and neck work.", Category: "medic", Points: 15},
	{Title: "Vitamin run", Description: "Prepare or restock the daily supplements.", Category: "supplies", Points: 10},
	{Title: "Evening walk", Description: "Propose a short walk in fresh air.", Category: "recon", Points: 35},
	{Title: "Kitchen detail", Description: "Take the kitchen without being asked.", Category: "upkeep", Points: 40},
	{Title: "Log entry", Description: "Write down how today went for the crew.", Category: "briefing", Points: 15},
	{Title: "Pantry audit", Description: "Check fridge and pantry levels. Is anything important running out?", Category: "supplies", Points: 15},
}
