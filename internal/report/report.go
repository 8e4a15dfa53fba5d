// internal/report/report.go

// Package report renders classifications and weekly totals as the text
// blocks the bot sends to Discord. Rendering is pure: no I/O, no model
// calls.
package report

import (
	"fmt"
	"math"
	"strings"

	"nutribot/internal/models"
)

const barWidth = 10

// WeeklyProgress renders one progress line per food group, in fixed order,
// with the totals capped at 100% of the weekly goal. Labels are padded to
// a common width so the bars line up.
func WeeklyProgress(totals models.Classification) string {
	width := maxLabelWidth()

	lines := []string{"**📊 Weekly Food Intake Progress:**"}
	for _, g := range models.Groups() {
		frac := math.Min(totals.Get(g), 1.0)
		percent := int(math.Round(frac * 100))

		filled := int(math.Round(float64(percent) / 10))
		if filled < 0 {
			filled = 0
		}
		if filled > barWidth {
			filled = barWidth
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

		lines = append(lines, fmt.Sprintf("- **%-*s**: [%s] %d%% of weekly goal",
			width, g.DisplayName(), bar, percent))
	}

	return strings.Join(lines, "\n")
}

// MealBreakdown renders a single meal's fractions, one line per group.
func MealBreakdown(cls models.Classification) string {
	width := maxLabelWidth()

	lines := []string{"**📝 Current Meal Breakdown (fractions of weekly goals):**"}
	for _, g := range models.Groups() {
		lines = append(lines, fmt.Sprintf("- **%-*s**: %.2f", width, g.DisplayName(), cls.Get(g)))
	}

	return strings.Join(lines, "\n")
}

// Suggestions renders the recommendation list as bullets under a header.
func Suggestions(items []string) string {
	lines := []string{"**💡 Suggestions to Complete Weekly Targets:**"}
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

func maxLabelWidth() int {
	width := 0
	for _, g := range models.Groups() {
		if n := len(g.DisplayName()); n > width {
			width = n
		}
	}
	return width
}
