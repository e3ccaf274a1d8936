package models

// Metadata represents file metadata in the database
type Metadata struct {
	ID          string    `json:"id"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	Type        MediaType `json:"type"`
	Title       string    `json:"title,omitempty"`
	Artist      string    `json:"artist,omitempty"`
}

// MediaType represents valid media types
type MediaType string

const (
	MediaTypeCourseImage  MediaType = "course_image"
	MediaTypeEpisodeAudio MediaType = "episode_audio"
	MediaTypeEpisodeImage MediaType = "episode_image"
	MediaTypeAvatar       MediaType = "avatar"
)

// ValidMediaType reports whether t is one of the known media types
func ValidMediaType(t string) bool {
	switch MediaType(t) {
	case MediaTypeCourseImage, MediaTypeEpisodeAudio, MediaTypeEpisodeImage, MediaTypeAvatar:
		return true
	}
	return false
}
