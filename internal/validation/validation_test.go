package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/voxa-backend/internal/apperr"
	"github.com/AnshRaj112/voxa-backend/internal/models"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestStruct_Mood(t *testing.T) {
	tests := []struct {
		name    string
		input   models.CreateMoodInput
		wantErr string
	}{
		{"valid", models.CreateMoodInput{Mood: "sad", Intensity: intPtr(5)}, ""},
		{"missing mood", models.CreateMoodInput{Intensity: intPtr(5)}, "mood is required"},
		{"missing intensity", models.CreateMoodInput{Mood: "calm"}, "intensity is required"},
		{"intensity zero", models.CreateMoodInput{Mood: "calm", Intensity: intPtr(0)}, "intensity must be between 1 and 10"},
		{"intensity eleven", models.CreateMoodInput{Mood: "calm", Intensity: intPtr(11)}, "intensity must be between 1 and 10"},
		{"unknown mood", models.CreateMoodInput{Mood: "bored", Intensity: intPtr(3)}, "mood must be one of"},
		{"bad sentiment", models.CreateMoodInput{Mood: "happy", Intensity: intPtr(3), Sentiment: "meh"}, "sentiment must be one of"},
		{"long notes", models.CreateMoodInput{Mood: "happy", Intensity: intPtr(3), Notes: strings.Repeat("x", 501)}, "notes must be at most 500 characters"},
		{"bad date", models.CreateMoodInput{Mood: "happy", Intensity: intPtr(3), Date: strPtr("yesterday")}, "date must be an ISO 8601"},
		{"date only", models.CreateMoodInput{Mood: "happy", Intensity: intPtr(3), Date: strPtr("2024-03-01")}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Contains(t, apperr.Message(err), tt.wantErr)
		})
	}
}

func TestStruct_JournalUpdateKeepsAbsentFields(t *testing.T) {
	assert.NoError(t, Struct(models.UpdateJournalInput{}))
	assert.NoError(t, Struct(models.UpdateJournalInput{Mood: strPtr("grateful")}))

	err := Struct(models.UpdateJournalInput{Title: strPtr("")})
	require.Error(t, err)
	assert.Equal(t, "title cannot be empty", apperr.Message(err))

	err = Struct(models.UpdateJournalInput{Title: strPtr(strings.Repeat("a", 201))})
	require.Error(t, err)
	assert.Equal(t, "title must be at most 200 characters", apperr.Message(err))
}

func TestStruct_BlankTitles(t *testing.T) {
	inputs := map[string]any{
		"journal create": models.CreateJournalInput{Title: "   ", Transcription: "words"},
		"journal update": models.UpdateJournalInput{Title: strPtr("\t \n")},
		"goal create":    models.CreateGoalInput{Title: "  ", Category: "health"},
		"goal update":    models.UpdateGoalInput{Title: strPtr(" ")},
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			err := Struct(in)
			require.Error(t, err)
			assert.Equal(t, "title cannot be empty", apperr.Message(err))
		})
	}

	err := Struct(models.CreateGoalInput{Title: "Run", Category: "health", Milestones: []models.MilestoneInput{{Title: " "}}})
	require.Error(t, err)
	assert.Equal(t, "milestones[0].title cannot be empty", apperr.Message(err))
}

func TestStruct_GoalMilestones(t *testing.T) {
	input := models.CreateGoalInput{
		Title:      "Read",
		Category:   "personal",
		Milestones: []models.MilestoneInput{{Title: "Chapter 1"}, {Title: ""}},
	}
	err := Struct(input)
	require.Error(t, err)
	assert.Equal(t, "milestones[1].title is required", apperr.Message(err))

	input.Milestones[1].Title = "Chapter 2"
	assert.NoError(t, Struct(input))

	input.Category = "finance"
	err = Struct(input)
	require.Error(t, err)
	assert.Equal(t, "category must be one of: health, career, personal, education", apperr.Message(err))
}

func TestStruct_Progress(t *testing.T) {
	assert.Error(t, Struct(models.ProgressInput{}))
	assert.Error(t, Struct(models.ProgressInput{Progress: intPtr(-1)}))
	assert.NoError(t, Struct(models.ProgressInput{Progress: intPtr(0)}))
}
