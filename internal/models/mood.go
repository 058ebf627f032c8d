package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MoodType is one of the seven moods a user can log or attach to a journal entry.
type MoodType string

const (
	MoodHappy    MoodType = "happy"
	MoodCalm     MoodType = "calm"
	MoodExcited  MoodType = "excited"
	MoodSad      MoodType = "sad"
	MoodAngry    MoodType = "angry"
	MoodAnxious  MoodType = "anxious"
	MoodGrateful MoodType = "grateful"
)

// MoodTypes lists every valid mood, in display order.
var MoodTypes = []MoodType{MoodHappy, MoodCalm, MoodExcited, MoodSad, MoodAngry, MoodAnxious, MoodGrateful}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

var positiveMoods = map[MoodType]bool{
	MoodHappy:    true,
	MoodCalm:     true,
	MoodExcited:  true,
	MoodGrateful: true,
}

var negativeMoods = map[MoodType]bool{
	MoodSad:     true,
	MoodAngry:   true,
	MoodAnxious: true,
}

// SentimentFor derives a sentiment from a mood value.
func SentimentFor(mood MoodType) Sentiment {
	switch {
	case positiveMoods[mood]:
		return SentimentPositive
	case negativeMoods[mood]:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Mood is an append-only mood log entry.
type Mood struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"userId"`
	Mood      MoodType           `bson:"mood" json:"mood"`
	Intensity int                `bson:"intensity" json:"intensity"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Date      time.Time          `bson:"date" json:"date"`
	Sentiment Sentiment          `bson:"sentiment,omitempty" json:"sentiment,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CreateMoodInput is the body of POST /api/moods.
type CreateMoodInput struct {
	Mood      string  `json:"mood" validate:"required,mood"`
	Intensity *int    `json:"intensity" validate:"required,min=1,max=10"`
	Notes     string  `json:"notes" validate:"max=500"`
	Date      *string `json:"date" validate:"omitnil,timestamp"`
	Sentiment string  `json:"sentiment" validate:"omitempty,sentiment"`
}

// MoodFilter narrows a mood listing.
type MoodFilter struct {
	From *time.Time
	To   *time.Time
}

// MoodStats summarises a user's trailing mood window.
type MoodStats struct {
	TotalEntries       int              `json:"totalEntries"`
	PositivePercentage int              `json:"positivePercentage"`
	AverageIntensity   float64          `json:"averageIntensity"`
	Streak             int              `json:"streak"`
	MostCommonMood     *MoodType        `json:"mostCommonMood"`
	MoodBreakdown      map[string]int64 `json:"moodBreakdown"`
}
