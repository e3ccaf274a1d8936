package services

import (
	"fmt"
	"time"
)

// XP amounts per awardable event
const (
	// XPPerMinute is awarded for every full minute of audio listened
	XPPerMinute = 10
	// XPCompletion is awarded once per podcast on its first completion
	XPCompletion = 50
	// XPDailyStreak is awarded once per calendar day on the first qualifying listen
	XPDailyStreak = 200
	// XPPerCorrectAnswer is awarded for every correct quiz answer
	XPPerCorrectAnswer = 20
)

// CompletionThreshold is the fraction of an episode's duration past which it
// counts as fully consumed
const CompletionThreshold = 0.95

// minListeningSeconds filters out accidental taps: chunks shorter than this
// award nothing and are not recorded
const minListeningSeconds = 10

// IsPositionCompleted reports whether the playback position crosses the
// completion threshold. Episodes with a non-positive duration can never
// complete.
func IsPositionCompleted(positionSeconds float64, durationSeconds int) bool {
	if durationSeconds <= 0 {
		return false
	}
	return positionSeconds >= CompletionThreshold*float64(durationSeconds)
}

// ListeningXP converts a listened chunk into an XP amount. Fractional minutes
// are truncated and chunks under the minimum are ignored entirely.
func ListeningXP(listenedSeconds int) int {
	if listenedSeconds < minListeningSeconds {
		return 0
	}
	return listenedSeconds / 60 * XPPerMinute
}

// Event keys below make each logical award unique per (user, event type, key),
// so recording the same event twice is a no-op at the database level.

// CompletionEventKey builds the idempotency key for a podcast's first completion
func CompletionEventKey(podcastID int) string {
	return fmt.Sprintf("%d", podcastID)
}

// ListeningEventKey builds the idempotency key for a listened chunk. The chunk
// is keyed by podcast and reported position so the same report resent by a
// retrying client does not double-count.
func ListeningEventKey(podcastID int, positionSeconds float64) string {
	return fmt.Sprintf("%d:%.0f", podcastID, positionSeconds)
}

// StreakEventKey builds the idempotency key for a daily streak award
func StreakEventKey(day time.Time) string {
	return day.UTC().Format("2006-01-02")
}
