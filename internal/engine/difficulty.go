package engine

import (
	"strings"
)

// Rating is the optional coarse difficulty judgment a user attaches to a
// task.
type Rating string

const (
	RatingNone   Rating = ""
	RatingEasy   Rating = "easy"
	RatingMedium Rating = "medium"
	RatingHard   Rating = "hard"
)

func (r Rating) IsValid() bool {
	switch r {
	case RatingEasy, RatingMedium, RatingHard:
		return true
	default:
		return false
	}
}

const (
	timeComponentCap    = 40
	keywordComponentCap = 20
)

// difficultyKeywords add +3 each; complexKeywords add +5 each. Matching
// is substring-based over the lowercased name and notes.
var difficultyKeywords = []string{
	"difficult", "tricky", "challenging", "tedious", "unfamiliar", "debug", "legacy",
}

var complexKeywords = []string{
	"architecture", "authentication", "migration", "refactor", "algorithm",
	"integration", "database", "security", "concurrency", "infrastructure",
}

var researchKeywords = []string{"research", "investigate", "explore"}

// EstimateDifficulty derives a 0-100 difficulty from task text, the time
// estimate and an optional coarse rating. Used once, at creation or first
// completion; later manual re-rating goes through RateDifficulty instead.
func EstimateDifficulty(name, notes string, estimateMinutes int, rating Rating) int {
	timeComponent := estimateMinutes / 3
	if timeComponent > timeComponentCap {
		timeComponent = timeComponentCap
	}

	text := strings.ToLower(name + " " + notes)
	keywordComponent := 0
	for _, kw := range difficultyKeywords {
		if strings.Contains(text, kw) {
			keywordComponent += 3
		}
	}
	for _, kw := range complexKeywords {
		if strings.Contains(text, kw) {
			keywordComponent += 5
		}
	}
	if strings.Contains(text, "rewrite") || strings.Contains(text, "from scratch") {
		keywordComponent += 8
	}
	if strings.Contains(text, "urgent") || strings.Contains(text, "asap") {
		keywordComponent += 5
	}
	for _, kw := range researchKeywords {
		if strings.Contains(text, kw) {
			keywordComponent += 4
			break
		}
	}
	if keywordComponent > keywordComponentCap {
		keywordComponent = keywordComponentCap
	}

	ratingComponent := 20
	switch rating {
	case RatingEasy:
		ratingComponent = 10
	case RatingHard:
		ratingComponent = 40
	}

	total := timeComponent + keywordComponent + ratingComponent
	if total > 100 {
		total = 100
	}
	return total
}

// RateDifficulty is the post-hoc manual rating path. It deliberately
// ignores time and keywords: the user already knows how hard the task
// was, so the coarse rating maps to a flat score.
func RateDifficulty(rating Rating) int {
	switch rating {
	case RatingEasy:
		return 40
	case RatingHard:
		return 60
	default:
		return 50
	}
}
