package models

import "time"

// UserProgress represents a user's playback progress for a single podcast.
// There is at most one row per (user, podcast) pair, enforced by a unique key.
type UserProgress struct {
	ID              int       `json:"id"`
	UserID          int       `json:"userId"`
	PodcastID       int       `json:"podcastId"`
	CourseID        int       `json:"courseId"`
	PositionSeconds float64   `json:"positionSeconds"`
	Completed       bool      `json:"completed"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SaveProgressRequest represents a periodic position save from the player
type SaveProgressRequest struct {
	PositionSeconds float64 `json:"positionSeconds"`
	// ListenedSeconds is the wall-clock listening time accumulated since the
	// previous save, used for listening-time XP.
	ListenedSeconds int `json:"listenedSeconds,omitempty"`
}

// SaveProgressResponse reports what a progress save resulted in
type SaveProgressResponse struct {
	Completed      bool `json:"completed"`
	CompletionXP   int  `json:"completionXp,omitempty"`
	ListeningXP    int  `json:"listeningXp,omitempty"`
	StreakXP       int  `json:"streakXp,omitempty"`
	StreakRecorded bool `json:"streakRecorded"`
}

// PlayerState represents what a user is playing right now, shared across devices.
// One row per user, last writer wins.
type PlayerState struct {
	UserID          int       `json:"userId"`
	PodcastID       int       `json:"podcastId"`
	PositionSeconds float64   `json:"positionSeconds"`
	Volume          int       `json:"volume"` // 0-100
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SavePlayerStateRequest updates the active player state
type SavePlayerStateRequest struct {
	PodcastID       int     `json:"podcastId"`
	PositionSeconds float64 `json:"positionSeconds"`
	Volume          int     `json:"volume"`
}
