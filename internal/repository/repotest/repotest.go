// Package repotest provides in-memory repositories for service and handler tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AnshRaj112/voxa-backend/internal/models"
	"github.com/AnshRaj112/voxa-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func within(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func paginate[T any](items []T, p repository.Page) []T {
	if p.Skip >= int64(len(items)) {
		return []T{}
	}
	end := int64(len(items))
	if p.Limit > 0 && p.Skip+p.Limit < end {
		end = p.Skip + p.Limit
	}
	return items[p.Skip:end]
}

func lookup(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

// Journals is an in-memory repository.JournalRepository.
type Journals struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.Journal
	// Err, when set, is returned by every call.
	Err error
}

func NewJournals() *Journals {
	return &Journals{docs: map[primitive.ObjectID]models.Journal{}}
}

var _ repository.JournalRepository = (*Journals)(nil)

func (r *Journals) Create(_ context.Context, j *models.Journal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if j.ID.IsZero() {
		j.ID = primitive.NewObjectID()
	}
	r.docs[j.ID] = *j
	return nil
}

func (r *Journals) List(_ context.Context, userID string, f models.JournalFilter, p repository.Page) ([]models.Journal, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}

	var out []models.Journal
	for _, j := range r.docs {
		if j.UserID != userID || !within(j.Date, f.From, f.To) {
			continue
		}
		if f.Mood != "" && string(j.Mood) != f.Mood {
			continue
		}
		if f.Sentiment != "" && string(j.Sentiment) != f.Sentiment {
			continue
		}
		if f.Search != "" && !matchesSearch(j, f.Search) {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Date.After(out[b].Date) })
	return paginate(out, p), int64(len(out)), nil
}

func matchesSearch(j models.Journal, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(j.Title), q) || strings.Contains(strings.ToLower(j.Transcription), q) {
		return true
	}
	for _, tag := range j.Tags {
		if strings.ToLower(tag) == q {
			return true
		}
	}
	return false
}

func (r *Journals) ByID(_ context.Context, userID, id string) (*models.Journal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	oid, ok := lookup(id)
	j, found := r.docs[oid]
	if !ok || !found || j.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &j, nil
}

func (r *Journals) Update(_ context.Context, userID, id string, p models.JournalPatch, now time.Time) (*models.Journal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	oid, ok := lookup(id)
	j, found := r.docs[oid]
	if !ok || !found || j.UserID != userID {
		return nil, repository.ErrNotFound
	}

	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Transcription != nil {
		j.Transcription = *p.Transcription
	}
	if p.WordCount != nil {
		j.WordCount = *p.WordCount
	}
	if p.AudioURL != nil {
		j.AudioURL = *p.AudioURL
	}
	if p.Date != nil {
		j.Date = *p.Date
	}
	if p.Mood != nil {
		j.Mood = *p.Mood
	}
	if p.Tags != nil {
		j.Tags = *p.Tags
	}
	if p.Sentiment != nil {
		j.Sentiment = *p.Sentiment
	}
	j.UpdatedAt = now
	r.docs[oid] = j
	return &j, nil
}

func (r *Journals) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	oid, ok := lookup(id)
	j, found := r.docs[oid]
	if !ok || !found || j.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.docs, oid)
	return nil
}

func (r *Journals) Count(_ context.Context, userID string, since *time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var n int64
	for _, j := range r.docs {
		if j.UserID == userID && within(j.Date, since, nil) {
			n++
		}
	}
	return n, nil
}

func (r *Journals) CountByMood(_ context.Context, userID string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := map[string]int64{}
	for _, j := range r.docs {
		if j.UserID == userID && j.Mood != "" {
			out[string(j.Mood)]++
		}
	}
	return out, nil
}

// Len reports how many journals are stored across all users.
func (r *Journals) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}
