package request_models

import "time"

type CreateMoodRequest struct {
	Mood       string   `json:"mood" binding:"required"`
	Intensity  *int     `json:"intensity" binding:"required"`
	Note       string   `json:"note"`
	Activities []string `json:"activities"`
	Tags       []string `json:"tags"`
}

// UpdateMoodRequest is a patch: nil fields are left untouched.
type UpdateMoodRequest struct {
	Mood       *string   `json:"mood"`
	Intensity  *int      `json:"intensity"`
	Note       *string   `json:"note"`
	Activities *[]string `json:"activities"`
	Tags       *[]string `json:"tags"`
}

type MoodFilter struct {
	Mood     string
	Tag      string
	Activity string
	From     time.Time
	To       time.Time
}

type PageRequest struct {
	Page  int
	Limit int
}
