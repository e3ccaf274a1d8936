package models

// Subject represents the subject category of a course
type Subject string

const (
	SubjectMath      Subject = "math"
	SubjectEnglish   Subject = "english"
	SubjectScience   Subject = "science"
	SubjectHistory   Subject = "history"
	SubjectGeography Subject = "geography"
	SubjectLanguages Subject = "languages"
)

// Course represents a podcast course
type Course struct {
	ID          int     `json:"id"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Subject     Subject `json:"subject"`
	ExamBoard   string  `json:"examBoard,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// CourseDetailResponse represents a course with per-user listening stats
type CourseDetailResponse struct {
	ID                int     `json:"id,omitempty"`
	Slug              string  `json:"slug"`
	Title             string  `json:"title"`
	Subject           Subject `json:"subject"`
	ExamBoard         string  `json:"examBoard,omitempty"`
	Description       string  `json:"description,omitempty"`
	ImageURL          string  `json:"imageUrl,omitempty"`
	TotalEpisodes     int     `json:"totalEpisodes"`
	CompletedEpisodes int     `json:"completedEpisodes"`
}

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Subject     Subject `json:"subject"`
	ExamBoard   string  `json:"examBoard,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// UpdateCourseRequest represents a request to update a course (partial update)
type UpdateCourseRequest struct {
	Slug        string  `json:"slug,omitempty"`
	Title       string  `json:"title,omitempty"`
	Subject     Subject `json:"subject,omitempty"`
	ExamBoard   string  `json:"examBoard,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}
