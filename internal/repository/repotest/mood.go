package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/AnshRaj112/voxa-backend/internal/models"
	"github.com/AnshRaj112/voxa-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Moods is an in-memory repository.MoodRepository.
type Moods struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.Mood
	Err  error
}

func NewMoods() *Moods {
	return &Moods{docs: map[primitive.ObjectID]models.Mood{}}
}

var _ repository.MoodRepository = (*Moods)(nil)

func (r *Moods) Create(_ context.Context, m *models.Mood) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	r.docs[m.ID] = *m
	return nil
}

// owned returns the user's moods matching keep, newest first. Callers hold mu.
func (r *Moods) owned(userID string, keep func(models.Mood) bool) []models.Mood {
	var out []models.Mood
	for _, m := range r.docs {
		if m.UserID == userID && keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Date.After(out[b].Date) })
	return out
}

func (r *Moods) List(_ context.Context, userID string, f models.MoodFilter, p repository.Page) ([]models.Mood, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}
	out := r.owned(userID, func(m models.Mood) bool { return within(m.Date, f.From, f.To) })
	return paginate(out, p), int64(len(out)), nil
}

func (r *Moods) Latest(_ context.Context, userID string, from, to time.Time) (*models.Mood, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := r.owned(userID, func(m models.Mood) bool { return within(m.Date, &from, &to) })
	if len(out) == 0 {
		return nil, repository.ErrNotFound
	}
	return &out[0], nil
}

func (r *Moods) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	oid, ok := lookup(id)
	m, found := r.docs[oid]
	if !ok || !found || m.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.docs, oid)
	return nil
}

func (r *Moods) Since(_ context.Context, userID string, since time.Time) ([]models.Mood, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return r.owned(userID, func(m models.Mood) bool { return within(m.Date, &since, nil) }), nil
}

func (r *Moods) Dates(_ context.Context, userID string) ([]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var dates []time.Time
	for _, m := range r.owned(userID, func(models.Mood) bool { return true }) {
		dates = append(dates, m.Date)
	}
	return dates, nil
}

func (r *Moods) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}
