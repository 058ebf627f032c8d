package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Journal is a transcribed voice-journal entry owned by a single user.
type Journal struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"user_id" json:"userId"`
	Title         string             `bson:"title" json:"title"`
	Transcription string             `bson:"transcription" json:"transcription"`
	AudioURL      string             `bson:"audio_url,omitempty" json:"audioUrl,omitempty"`
	Date          time.Time          `bson:"date" json:"date"`
	Mood          MoodType           `bson:"mood,omitempty" json:"mood,omitempty"`
	Tags          []string           `bson:"tags" json:"tags"`
	Sentiment     Sentiment          `bson:"sentiment,omitempty" json:"sentiment,omitempty"`
	WordCount     int                `bson:"word_count" json:"wordCount"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// WordCount counts the whitespace-delimited tokens in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// CreateJournalInput is the body of POST /api/journals. WordCount is never accepted from clients.
type CreateJournalInput struct {
	Title         string   `json:"title" validate:"required,notblank,max=200"`
	Transcription string   `json:"transcription" validate:"required"`
	AudioURL      string   `json:"audioUrl"`
	Date          *string  `json:"date" validate:"omitnil,timestamp"`
	Mood          string   `json:"mood" validate:"omitempty,mood"`
	Tags          []string `json:"tags"`
	Sentiment     string   `json:"sentiment" validate:"omitempty,sentiment"`
}

// UpdateJournalInput is the body of PUT /api/journals/:id. Nil fields are left untouched.
type UpdateJournalInput struct {
	Title         *string   `json:"title" validate:"omitnil,notblank,max=200"`
	Transcription *string   `json:"transcription" validate:"omitnil,min=1"`
	AudioURL      *string   `json:"audioUrl"`
	Date          *string   `json:"date" validate:"omitnil,timestamp"`
	Mood          *string   `json:"mood" validate:"omitnil,mood"`
	Tags          *[]string `json:"tags"`
	Sentiment     *string   `json:"sentiment" validate:"omitnil,sentiment"`
}

// JournalPatch is a validated partial update ready for persistence.
type JournalPatch struct {
	Title         *string
	Transcription *string
	WordCount     *int
	AudioURL      *string
	Date          *time.Time
	Mood          *MoodType
	Tags          *[]string
	Sentiment     *Sentiment
}

// JournalFilter narrows a journal listing.
type JournalFilter struct {
	Mood      string
	Sentiment string
	Search    string
	From      *time.Time
	To        *time.Time
}

type JournalStats struct {
	TotalJournals    int64            `json:"totalJournals"`
	JournalsThisWeek int64            `json:"journalsThisWeek"`
	MoodBreakdown    map[string]int64 `json:"moodBreakdown"`
}
