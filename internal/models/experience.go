package models

import "time"

// UserExperience represents a user's cumulative XP totals.
// One row per user; totals only ever increase except for the weekly reset.
type UserExperience struct {
	UserID    int       `json:"userId"`
	TotalXP   int       `json:"totalXp"`
	WeeklyXP  int       `json:"weeklyXp"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// XPEventType identifies the kind of awardable event
type XPEventType string

const (
	XPEventListening  XPEventType = "listening"
	XPEventCompletion XPEventType = "completion"
	XPEventStreak     XPEventType = "daily_streak"
	XPEventQuiz       XPEventType = "quiz"
)

// XPEvent records a single XP grant. The unique key (user, type, key) makes
// grants idempotent: a duplicate event is rejected before any XP is added.
type XPEvent struct {
	ID        int         `json:"id"`
	UserID    int         `json:"userId"`
	EventType XPEventType `json:"eventType"`
	EventKey  string      `json:"eventKey"`
	Amount    int         `json:"amount"`
	CreatedAt time.Time   `json:"createdAt"`
}

// LeaderboardEntry represents one row of the XP leaderboard
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   int    `json:"userId"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
	TotalXP  int    `json:"totalXp"`
	WeeklyXP int    `json:"weeklyXp"`
}

// LeaderboardResponse wraps leaderboard rows with the caller's own rank
type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
	MyRank  int                `json:"myRank,omitempty"`
}
