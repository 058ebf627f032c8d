package models

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// JournalQuery holds the raw query string of GET /api/journals.
type JournalQuery struct {
	Page      string `json:"page"`
	Limit     string `json:"limit"`
	Mood      string `json:"mood" validate:"omitempty,mood"`
	Sentiment string `json:"sentiment" validate:"omitempty,sentiment"`
	Search    string `json:"search"`
	StartDate string `json:"startDate" validate:"timestamp"`
	EndDate   string `json:"endDate" validate:"timestamp"`
}

// MoodQuery holds the raw query string of GET /api/moods.
type MoodQuery struct {
	Page      string `json:"page"`
	Limit     string `json:"limit"`
	StartDate string `json:"startDate" validate:"timestamp"`
	EndDate   string `json:"endDate" validate:"timestamp"`
}

// GoalQuery holds the raw query string of GET /api/goals.
type GoalQuery struct {
	Status   string `json:"status" validate:"omitempty,oneof=active completed paused cancelled"`
	Category string `json:"category" validate:"omitempty,oneof=health career personal education"`
}
