package services

import (
	"context"
	"errors"

	"github.com/AnshRaj112/voxa-backend/internal/models"
	"github.com/AnshRaj112/voxa-backend/internal/repository"
	"github.com/AnshRaj112/voxa-backend/internal/stats"
	"github.com/AnshRaj112/voxa-backend/internal/validation"
)

const (
	defaultMoodLimit = 30
	moodStatsDays    = 30
	moodNotFound     = "Mood entry not found"
)

type MoodService struct {
	repo repository.MoodRepository
	now  Clock
}

func NewMoodService(repo repository.MoodRepository, now Clock) *MoodService {
	return &MoodService{repo: repo, now: orNow(now)}
}

func (s *MoodService) List(ctx context.Context, userID string, q models.MoodQuery) ([]models.Mood, models.Pagination, error) {
	if err := validation.Struct(q); err != nil {
		return nil, models.Pagination{}, err
	}
	from, to, err := dateFilter(q.StartDate, q.EndDate)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	page, limit, window := paging(q.Page, q.Limit, defaultMoodLimit)

	moods, total, err := s.repo.List(ctx, userID, models.MoodFilter{From: from, To: to}, window)
	if err != nil {
		return nil, models.Pagination{}, storeErr(err, moodNotFound)
	}
	if moods == nil {
		moods = []models.Mood{}
	}
	return moods, pagination(page, limit, total), nil
}

// Today returns the latest entry logged during the server's current calendar day,
// or nil if there is none.
func (s *MoodService) Today(ctx context.Context, userID string) (*models.Mood, error) {
	now := s.now()
	m, err := s.repo.Latest(ctx, userID, models.StartOfDay(now), models.EndOfDay(now))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err, moodNotFound)
	}
	return m, nil
}

func (s *MoodService) Create(ctx context.Context, userID string, in models.CreateMoodInput) (*models.Mood, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	now := s.now()
	mood := models.MoodType(in.Mood)
	sentiment := models.Sentiment(in.Sentiment)
	if sentiment == "" {
		sentiment = models.SentimentFor(mood)
	}
	m := &models.Mood{
		UserID:    userID,
		Mood:      mood,
		Intensity: *in.Intensity,
		Notes:     in.Notes,
		Date:      dateOr(in.Date, now),
		Sentiment: sentiment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, storeErr(err, moodNotFound)
	}
	return m, nil
}

func (s *MoodService) Delete(ctx context.Context, userID, id string) error {
	return storeErr(s.repo.Delete(ctx, userID, id), moodNotFound)
}

// Stats summarises the trailing 30 days. The streak looks at every entry the user has
// logged, walking back from today.
func (s *MoodService) Stats(ctx context.Context, userID string) (*models.MoodStats, error) {
	now := s.now()
	moods, err := s.repo.Since(ctx, userID, now.AddDate(0, 0, -moodStatsDays))
	if err != nil {
		return nil, storeErr(err, moodNotFound)
	}
	dates, err := s.repo.Dates(ctx, userID)
	if err != nil {
		return nil, storeErr(err, moodNotFound)
	}

	out := &models.MoodStats{
		TotalEntries:  len(moods),
		Streak:        stats.Streak(dates, now),
		MoodBreakdown: map[string]int64{},
	}

	var positive, withSentiment int64
	intensity := 0
	for _, m := range moods {
		out.MoodBreakdown[string(m.Mood)]++
		intensity += m.Intensity
		if m.Sentiment != "" {
			withSentiment++
			if m.Sentiment == models.SentimentPositive {
				positive++
			}
		}
	}
	out.PositivePercentage = stats.Percentage(positive, withSentiment)
	if len(moods) > 0 {
		out.AverageIntensity = stats.Round(float64(intensity)/float64(len(moods)), 1)
	}
	if top, ok := stats.MostCommon(out.MoodBreakdown); ok {
		mt := models.MoodType(top)
		out.MostCommonMood = &mt
	}
	return out, nil
}
