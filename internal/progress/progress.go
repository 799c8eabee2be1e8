package progress

import (
	"math"
	"time"

	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
)

// DateLayout is the calendar-day format stored in LastCompleted.
// Day boundaries are evaluated on the UTC calendar so a user's streak does
// not depend on which timezone the server happens to run in.
const DateLayout = "2006-01-02"

// Apply merges one finished study session into a cumulative progress record
// and returns the updated record. The zero-value record represents a
// first-time user.
//
// Streak rule, by whole calendar days between LastCompleted and now:
// first session ever gives 1; a repeat on the same day leaves the streak
// unchanged; exactly the next day increments it; a gap of two or more days
// resets it to 1.
func Apply(rec models.ProgressRecord, sessionCorrect, sessionTotal int, now time.Time) models.ProgressRecord {
	correct := clampCount(sessionCorrect)
	total := clampCount(sessionTotal)

	today := now.UTC()

	rec.TotalCorrectAnswers += correct
	rec.TotalQuestionsAnswered += total
	rec.Accuracy = accuracy(rec.TotalCorrectAnswers, rec.TotalQuestionsAnswered)
	rec.Streak = nextStreak(rec.Streak, rec.LastCompleted, today)
	rec.Completed++
	rec.LastCompleted = today.Format(DateLayout)
	return rec
}

// NormalizeCount coerces a client-supplied count into a usable integer.
// Negative, NaN and infinite values are clamped to zero instead of being
// rejected; fractional values are truncated.
func NormalizeCount(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return int(v)
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// accuracy returns the rounded percentage of correct answers, 0 when nothing
// has been answered yet.
func accuracy(correct, answered int) int {
	if answered == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(answered) * 100))
}

func nextStreak(current int, lastCompleted string, today time.Time) int {
	if lastCompleted == "" {
		return 1
	}
	last, err := time.ParseInLocation(DateLayout, lastCompleted, time.UTC)
	if err != nil {
		// An unreadable date is treated like a first session rather than
		// poisoning every future update.
		return 1
	}

	switch diff := DaysBetween(last, today); {
	case diff <= 0:
		// Same day: repeats do not inflate the streak. A stored streak
		// below 1 can only come from a record written before any
		// session existed; bump it so the invariant holds.
		if current < 1 {
			return 1
		}
		return current
	case diff == 1:
		return current + 1
	default:
		return 1
	}
}

// DaysBetween returns the number of whole calendar days from a to b,
// ignoring time of day. Computing on midnights rather than on a raw elapsed
// ratio keeps a 23:59 session followed by a 00:01 session one day apart.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	am0 := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bm0 := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(math.Floor(bm0.Sub(am0).Hours() / 24))
}
