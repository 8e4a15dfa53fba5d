// internal/models/meal.go
package models

import (
	"strings"
	"time"
)

// Group is one of the six food groups a meal is scored against.
type Group string

const (
	GroupFruits     Group = "fruits"
	GroupVegetables Group = "vegetables"
	GroupGrains     Group = "grains"
	GroupProtein    Group = "protein"
	GroupDairy      Group = "dairy"
	GroupOils       Group = "oils"
)

// Groups returns all food groups in display order. Reports always emit
// the groups in this order.
func Groups() []Group {
	return []Group{
		GroupFruits,
		GroupVegetables,
		GroupGrains,
		GroupProtein,
		GroupDairy,
		GroupOils,
	}
}

// DisplayName returns the capitalized label used in user-facing text.
func (g Group) DisplayName() string {
	s := string(g)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Classification holds a meal's contribution toward each group's weekly
// goal. Each value is a fraction in [0, 1]; the groups are independent
// goals, so the values do not need to sum to 1.
type Classification struct {
	Fruits     float64 `json:"fruits"`
	Vegetables float64 `json:"vegetables"`
	Grains     float64 `json:"grains"`
	Protein    float64 `json:"protein"`
	Dairy      float64 `json:"dairy"`
	Oils       float64 `json:"oils"`
}

// Get returns the fraction for the given group.
func (c Classification) Get(g Group) float64 {
	switch g {
	case GroupFruits:
		return c.Fruits
	case GroupVegetables:
		return c.Vegetables
	case GroupGrains:
		return c.Grains
	case GroupProtein:
		return c.Protein
	case GroupDairy:
		return c.Dairy
	case GroupOils:
		return c.Oils
	}
	return 0
}

// Set assigns the fraction for the given group. Unknown groups are ignored.
func (c *Classification) Set(g Group, v float64) {
	switch g {
	case GroupFruits:
		c.Fruits = v
	case GroupVegetables:
		c.Vegetables = v
	case GroupGrains:
		c.Grains = v
	case GroupProtein:
		c.Protein = v
	case GroupDairy:
		c.Dairy = v
	case GroupOils:
		c.Oils = v
	}
}

// Add accumulates another classification into this one, group by group.
func (c *Classification) Add(o Classification) {
	for _, g := range Groups() {
		c.Set(g, c.Get(g)+o.Get(g))
	}
}

// Clamped returns a copy with every value forced into [0, 1]. Model output
// is untrusted and may carry negative or out-of-range numbers.
func (c Classification) Clamped() Classification {
	var out Classification
	for _, g := range Groups() {
		out.Set(g, clamp01(c.Get(g)))
	}
	return out
}

// Underfilled returns the groups whose total is below the weekly goal
// (fraction < 1.0), in display order.
func (c Classification) Underfilled() []Group {
	var below []Group
	for _, g := range Groups() {
		if c.Get(g) < 1.0 {
			below = append(below, g)
		}
	}
	return below
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// MealLog is one logged meal. Records are append-only: once written they
// are never updated or deleted.
type MealLog struct {
	ID             int64          `json:"id"`
	UserID         string         `json:"user_id"`
	Timestamp      time.Time      `json:"timestamp"`
	ImageURL       string         `json:"image_url,omitempty"`
	Description    string         `json:"description,omitempty"`
	Classification Classification `json:"classification"`
}
