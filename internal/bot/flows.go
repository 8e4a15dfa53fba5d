// internal/bot/flows.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nutribot/internal/models"
	"nutribot/internal/report"
)

const (
	msgClassifyFailed = "😔 **Error:** Unable to classify your meal at the moment. Please try again later."
	msgSaveFailed     = "😔 Sorry, I couldn't save your meal right now. Please try again later."
	msgTotalsFailed   = "😔 Sorry, I couldn't read your meal history right now. Please try again later."
	msgAllGoalsMet    = "🎉 All your weekly food group goals are met. Keep up the great work!"
	msgNoSuggestions  = "I couldn't come up with specific recommendations right now. Try eating a balanced meal!"

	fallbackFoodName = "your meal"
)

// Flow failures, wrapped so the dispatcher can pick the right user-facing
// message with errors.Is.
var (
	errClassify = errors.New("classification failed")
	errSave     = errors.New("meal not saved")
	errHistory  = errors.New("meal history unavailable")
)

// LogMeal runs the classify-tip-store sequence for one submitted meal and
// returns the reply text. A classification or storage failure aborts the
// flow; a tip failure only drops the tip section.
func (b *Bot) LogMeal(ctx context.Context, userID, description, imageURL string) (string, error) {
	cls, err := b.advisor.ClassifyMeal(ctx, description, imageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errClassify, err)
	}

	foodName := description
	if foodName == "" {
		foodName = fallbackFoodName
		if imageURL != "" {
			if name, err := b.advisor.InferFoodName(ctx, imageURL); err == nil {
				foodName = name
			} else {
				b.log.Warn("food name inference failed", "user_id", userID, "error", err)
			}
		}
	}

	// The tip is cosmetic; logging the meal must not depend on it.
	tip, err := b.advisor.MealTip(ctx, cls, foodName)
	if err != nil {
		b.log.Warn("tip generation failed", "user_id", userID, "error", err)
		tip = ""
	}

	now := b.now().UTC()
	meal := &models.MealLog{
		UserID:         userID,
		Timestamp:      now,
		ImageURL:       imageURL,
		Description:    description,
		Classification: cls,
	}
	id, err := b.store.SaveMeal(ctx, meal)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errSave, err)
	}
	b.log.Info("meal logged", "user_id", userID, "meal_id", id)

	sections := []string{report.MealBreakdown(cls)}
	if tip != "" {
		sections = append(sections, "💡 **Meal Tip:** "+tip)
	}

	// Weekly progress is supplementary here; the meal is already saved, so
	// a read failure only drops the section.
	if totals, err := b.store.WeeklyTotals(ctx, userID, now); err == nil {
		sections = append(sections, report.WeeklyProgress(totals))
	} else {
		b.log.Warn("weekly totals unavailable", "user_id", userID, "error", err)
	}

	return strings.Join(sections, "\n\n"), nil
}

// WeeklyReport renders the trailing 7-day progress for the user.
func (b *Bot) WeeklyReport(ctx context.Context, userID string) (string, error) {
	totals, err := b.store.WeeklyTotals(ctx, userID, b.now().UTC())
	if err != nil {
		return "", fmt.Errorf("%w: %v", errHistory, err)
	}
	return report.WeeklyProgress(totals), nil
}

// Recommend suggests foods for the groups still below their weekly goal.
// When every goal is met, the model is not called at all. A malformed
// model reply degrades to a generic fallback rather than an error.
func (b *Bot) Recommend(ctx context.Context, userID string) (string, error) {
	totals, err := b.store.WeeklyTotals(ctx, userID, b.now().UTC())
	if err != nil {
		return "", fmt.Errorf("%w: %v", errHistory, err)
	}

	below := totals.Underfilled()
	if len(below) == 0 {
		return msgAllGoalsMet, nil
	}

	suggestions, err := b.advisor.SuggestFoods(ctx, totals, below)
	if err != nil {
		b.log.Warn("suggestions unavailable", "user_id", userID, "error", err)
		return msgNoSuggestions, nil
	}
	return report.Suggestions(suggestions), nil
}

// userMessage maps an internal failure to the short text shown to the
// user. Only the dispatcher calls this; errors never crash the process.
func userMessage(err error) string {
	switch {
	case errors.Is(err, errClassify):
		return msgClassifyFailed
	case errors.Is(err, errSave):
		return msgSaveFailed
	default:
		return msgTotalsFailed
	}
}
