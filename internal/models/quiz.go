package models

import "time"

// QuizQuestion represents a multiple-choice question attached to a podcast
type QuizQuestion struct {
	ID           int      `json:"id"`
	PodcastID    int      `json:"podcastId"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"-"` // never sent to the client with the question
}

// QuizAttempt records a user's attempt at a podcast quiz
type QuizAttempt struct {
	ID             int       `json:"id"`
	UserID         int       `json:"userId"`
	PodcastID      int       `json:"podcastId"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SubmitQuizRequest represents answers submitted for a podcast quiz
type SubmitQuizRequest struct {
	Answers []int `json:"answers"` // selected option index per question, in question order
}

// SubmitQuizResponse reports the result of a quiz attempt
type SubmitQuizResponse struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"totalQuestions"`
	XPAwarded      int `json:"xpAwarded"`
}
