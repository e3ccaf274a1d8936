package models

// Podcast represents a single audio episode within a course
type Podcast struct {
	ID              int    `json:"id"`
	CourseID        int    `json:"courseId"`
	Title           string `json:"title"`
	AudioURL        string `json:"audioUrl"`
	ImageURL        string `json:"imageUrl,omitempty"`
	DurationSeconds int    `json:"durationSeconds"`
	Description     string `json:"description,omitempty"`
}

// PodcastListItem represents an episode in course listings with the user's progress overlay
type PodcastListItem struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	AudioURL        string  `json:"audioUrl"`
	ImageURL        string  `json:"imageUrl,omitempty"`
	DurationSeconds int     `json:"durationSeconds"`
	Description     string  `json:"description,omitempty"`
	PositionSeconds float64 `json:"positionSeconds"`
	Completed       bool    `json:"completed"`
}

// CreatePodcastRequest represents a request to create a podcast episode
type CreatePodcastRequest struct {
	CourseID        int    `json:"courseId"`
	Title           string `json:"title"`
	AudioURL        string `json:"audioUrl"`
	ImageURL        string `json:"imageUrl,omitempty"`
	DurationSeconds int    `json:"durationSeconds"`
	Description     string `json:"description,omitempty"`
}

// UpdatePodcastRequest represents a request to update a podcast episode (partial update)
type UpdatePodcastRequest struct {
	Title           string `json:"title,omitempty"`
	AudioURL        string `json:"audioUrl,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
	DurationSeconds int    `json:"durationSeconds,omitempty"`
	Description     string `json:"description,omitempty"`
}
