// Package impact converts a points balance into environmental metrics and
// achievements.
package impact

import "math"

// Metric is a derived quantity with the goal it is measured against.
type Metric struct {
	Name   string
	Unit   string
	Value  int
	Target int
}

// Progress is Value/Target as a percentage, capped at 100.
func (m Metric) Progress() int {
	if m.Target <= 0 {
		return 0
	}
	p := m.Value * 100 / m.Target
	return min(p, 100)
}

type Metrics struct {
	Trees Metric
	Water Metric
	CO2   Metric
	Waste Metric
}

// All returns the metrics in display order.
func (m Metrics) All() []Metric {
	return []Metric{m.Trees, m.Water, m.CO2, m.Waste}
}

func Compute(points int) Metrics {
	p := float64(max(points, 0))
	return Metrics{
		Trees: Metric{Name: "Trees Saved", Unit: "trees", Value: int(math.Floor(p / 50)), Target: 100},
		Water: Metric{Name: "Water Saved", Unit: "litres", Value: int(math.Floor(p * 2.5)), Target: 5000},
		CO2:   Metric{Name: "CO2 Reduced", Unit: "kg", Value: int(math.Floor(p * 1.8)), Target: 1000},
		Waste: Metric{Name: "Waste Recycled", Unit: "kg", Value: int(math.Floor(p * 0.8)), Target: 500},
	}
}

type Achievement struct {
	Title       string
	Description string
	Unlocked    bool
}

// Achievements lists every achievement with its unlocked state for points.
func Achievements(points int) []Achievement {
	m := Compute(points)
	return []Achievement{
		{Title: "First Pickup", Description: "Complete your first waste pickup", Unlocked: points > 0},
		{Title: "Eco Warrior", Description: "Earn more than 500 points", Unlocked: points > 500},
		{Title: "Tree Saver", Description: "Save 10 trees", Unlocked: m.Trees.Value >= 10},
		{Title: "Water Guardian", Description: "Save 1000 litres of water", Unlocked: m.Water.Value >= 1000},
		{Title: "Carbon Fighter", Description: "Reduce 100 kg of CO2", Unlocked: m.CO2.Value >= 100},
		{Title: "Sustainability Champion", Description: "Earn 2000 points", Unlocked: points >= 2000},
	}
}
