package models

import "time"

// StreakDay records one qualifying listening day for a user.
// The unique key (user, day) makes the daily bonus once-per-day.
type StreakDay struct {
	ID     int       `json:"id"`
	UserID int       `json:"userId"`
	Day    time.Time `json:"day"`
}

// StreakInfo summarizes a user's streak state
type StreakInfo struct {
	CurrentStreak int  `json:"currentStreak"`
	LongestStreak int  `json:"longestStreak"`
	TodayRecorded bool `json:"todayRecorded"`
}
