package services

import (
	"context"
	"strings"

	"github.com/AnshRaj112/voxa-backend/internal/models"
	"github.com/AnshRaj112/voxa-backend/internal/repository"
	"github.com/AnshRaj112/voxa-backend/internal/validation"
)

const (
	defaultJournalLimit = 20
	journalNotFound     = "Journal not found"
)

type JournalService struct {
	repo repository.JournalRepository
	now  Clock
}

func NewJournalService(repo repository.JournalRepository, now Clock) *JournalService {
	return &JournalService{repo: repo, now: orNow(now)}
}

func (s *JournalService) List(ctx context.Context, userID string, q models.JournalQuery) ([]models.Journal, models.Pagination, error) {
	if err := validation.Struct(q); err != nil {
		return nil, models.Pagination{}, err
	}
	from, to, err := dateFilter(q.StartDate, q.EndDate)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	page, limit, window := paging(q.Page, q.Limit, defaultJournalLimit)

	filter := models.JournalFilter{
		Mood:      q.Mood,
		Sentiment: q.Sentiment,
		Search:    strings.TrimSpace(q.Search),
		From:      from,
		To:        to,
	}
	journals, total, err := s.repo.List(ctx, userID, filter, window)
	if err != nil {
		return nil, models.Pagination{}, storeErr(err, journalNotFound)
	}
	if journals == nil {
		journals = []models.Journal{}
	}
	for i := range journals {
		normalizeJournal(&journals[i])
	}
	return journals, pagination(page, limit, total), nil
}

func (s *JournalService) Get(ctx context.Context, userID, id string) (*models.Journal, error) {
	j, err := s.repo.ByID(ctx, userID, id)
	if err != nil {
		return nil, storeErr(err, journalNotFound)
	}
	normalizeJournal(j)
	return j, nil
}

func (s *JournalService) Create(ctx context.Context, userID string, in models.CreateJournalInput) (*models.Journal, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	now := s.now()
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	j := &models.Journal{
		UserID:        userID,
		Title:         strings.TrimSpace(in.Title),
		Transcription: in.Transcription,
		AudioURL:      in.AudioURL,
		Date:          dateOr(in.Date, now),
		Mood:          models.MoodType(in.Mood),
		Tags:          tags,
		Sentiment:     models.Sentiment(in.Sentiment),
		WordCount:     models.WordCount(in.Transcription),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, j); err != nil {
		return nil, storeErr(err, journalNotFound)
	}
	return j, nil
}

func (s *JournalService) Update(ctx context.Context, userID, id string, in models.UpdateJournalInput) (*models.Journal, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	patch := models.JournalPatch{
		Title:         trimmed(in.Title),
		Transcription: in.Transcription,
		AudioURL:      in.AudioURL,
		Tags:          in.Tags,
	}
	if in.Transcription != nil {
		wc := models.WordCount(*in.Transcription)
		patch.WordCount = &wc
	}
	if in.Date != nil && *in.Date != "" {
		d := dateOr(in.Date, s.now())
		patch.Date = &d
	}
	if in.Mood != nil {
		m := models.MoodType(*in.Mood)
		patch.Mood = &m
	}
	if in.Sentiment != nil {
		st := models.Sentiment(*in.Sentiment)
		patch.Sentiment = &st
	}

	j, err := s.repo.Update(ctx, userID, id, patch, s.now())
	if err != nil {
		return nil, storeErr(err, journalNotFound)
	}
	normalizeJournal(j)
	return j, nil
}

func (s *JournalService) Delete(ctx context.Context, userID, id string) error {
	return storeErr(s.repo.Delete(ctx, userID, id), journalNotFound)
}

// Stats summarises the user's journals: all-time total, trailing-7-day count and a
// breakdown by mood (entries without a mood are left out).
func (s *JournalService) Stats(ctx context.Context, userID string) (*models.JournalStats, error) {
	total, err := s.repo.Count(ctx, userID, nil)
	if err != nil {
		return nil, storeErr(err, journalNotFound)
	}
	weekAgo := s.now().AddDate(0, 0, -7)
	thisWeek, err := s.repo.Count(ctx, userID, &weekAgo)
	if err != nil {
		return nil, storeErr(err, journalNotFound)
	}
	breakdown, err := s.repo.CountByMood(ctx, userID)
	if err != nil {
		return nil, storeErr(err, journalNotFound)
	}
	return &models.JournalStats{
		TotalJournals:    total,
		JournalsThisWeek: thisWeek,
		MoodBreakdown:    breakdown,
	}, nil
}

func normalizeJournal(j *models.Journal) {
	if j.Tags == nil {
		j.Tags = []string{}
	}
}
