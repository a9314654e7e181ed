package models

import (
	"fmt"
	"strings"
)

// FeedbackRating is the subjective effort reported for an exercise.
type FeedbackRating string

const (
	FeedbackNone     FeedbackRating = ""
	FeedbackVeryEasy FeedbackRating = "very_easy"
	FeedbackEasy     FeedbackRating = "easy"
	FeedbackModerate FeedbackRating = "moderate"
	FeedbackHard     FeedbackRating = "hard"
	FeedbackVeryHard FeedbackRating = "very_hard"
)

var feedbackOrder = []FeedbackRating{
	FeedbackVeryEasy,
	FeedbackEasy,
	FeedbackModerate,
	FeedbackHard,
	FeedbackVeryHard,
}

var feedbackGlyphs = map[FeedbackRating]string{
	FeedbackVeryEasy: "😴",
	FeedbackEasy:     "🙂",
	FeedbackModerate: "😐",
	FeedbackHard:     "😓",
	FeedbackVeryHard: "🥵",
}

var feedbackLabels = map[FeedbackRating]string{
	FeedbackVeryEasy: "Very easy",
	FeedbackEasy:     "Easy",
	FeedbackModerate: "Moderate",
	FeedbackHard:     "Hard",
	FeedbackVeryHard: "Very hard",
}

// AllFeedbackRatings returns the ratings from easiest to hardest.
func AllFeedbackRatings() []FeedbackRating {
	out := make([]FeedbackRating, len(feedbackOrder))
	copy(out, feedbackOrder)
	return out
}

func (f FeedbackRating) Valid() bool {
	_, ok := feedbackGlyphs[f]
	return ok
}

func (f FeedbackRating) Glyph() string {
	return feedbackGlyphs[f]
}

func (f FeedbackRating) Label() string {
	return feedbackLabels[f]
}

// Level returns the 1-based difficulty level, or 0 for no rating.
func (f FeedbackRating) Level() int {
	for i, r := range feedbackOrder {
		if r == f {
			return i + 1
		}
	}
	return 0
}

// ParseFeedbackRating accepts the stored name, dashes instead of
// underscores, or a level 1-5.
func ParseFeedbackRating(s string) (FeedbackRating, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if normalized == "" || normalized == "none" {
		return FeedbackNone, nil
	}
	if r := FeedbackRating(normalized); r.Valid() {
		return r, nil
	}
	if len(normalized) == 1 && normalized[0] >= '1' && normalized[0] <= '5' {
		return feedbackOrder[normalized[0]-'1'], nil
	}
	return FeedbackNone, fmt.Errorf("invalid rating: %s (use very_easy, easy, moderate, hard, very_hard or 1-5)", s)
}
