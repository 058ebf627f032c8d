package repotest

import (
	"context"
	"sort"
	"sync"

	"github.com/AnshRaj112/voxa-backend/internal/models"
	"github.com/AnshRaj112/voxa-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goals is an in-memory repository.GoalRepository with the same version check as Mongo.
type Goals struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.Goal
	Err  error
	// Interfere runs before each Replace, with the lock held, and may mutate the stored goal
	// to simulate a concurrent writer.
	Interfere func(stored *models.Goal)
}

func NewGoals() *Goals {
	return &Goals{docs: map[primitive.ObjectID]models.Goal{}}
}

var _ repository.GoalRepository = (*Goals)(nil)

func (r *Goals) Create(_ context.Context, g *models.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	r.docs[g.ID] = clone(*g)
	return nil
}

func (r *Goals) List(_ context.Context, userID string, f models.GoalFilter) ([]models.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []models.Goal{}
	for _, g := range r.docs {
		if g.UserID != userID {
			continue
		}
		if f.Status != "" && string(g.Status) != f.Status {
			continue
		}
		if f.Category != "" && string(g.Category) != f.Category {
			continue
		}
		out = append(out, clone(g))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (r *Goals) ByID(_ context.Context, userID, id string) (*models.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	oid, ok := lookup(id)
	g, found := r.docs[oid]
	if !ok || !found || g.UserID != userID {
		return nil, repository.ErrNotFound
	}
	g = clone(g)
	return &g, nil
}

func (r *Goals) Replace(_ context.Context, g *models.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	stored, found := r.docs[g.ID]
	if found && r.Interfere != nil {
		r.Interfere(&stored)
		r.docs[g.ID] = stored
	}
	if !found || stored.UserID != g.UserID || stored.Version != g.Version {
		return repository.ErrVersionConflict
	}
	g.Version++
	r.docs[g.ID] = clone(*g)
	return nil
}

func (r *Goals) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	oid, ok := lookup(id)
	g, found := r.docs[oid]
	if !ok || !found || g.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.docs, oid)
	return nil
}

func (r *Goals) countBy(userID string, key func(models.Goal) string) map[string]int64 {
	out := map[string]int64{}
	for _, g := range r.docs {
		if g.UserID == userID {
			out[key(g)]++
		}
	}
	return out
}

func (r *Goals) CountByStatus(_ context.Context, userID string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return r.countBy(userID, func(g models.Goal) string { return string(g.Status) }), nil
}

func (r *Goals) CountByCategory(_ context.Context, userID string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return r.countBy(userID, func(g models.Goal) string { return string(g.Category) }), nil
}

func (r *Goals) AverageProgress(_ context.Context, userID string, status models.GoalStatus) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var sum, n int
	for _, g := range r.docs {
		if g.UserID == userID && g.Status == status {
			sum += g.Progress
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func clone(g models.Goal) models.Goal {
	if g.Milestones != nil {
		g.Milestones = append([]models.Milestone(nil), g.Milestones...)
	}
	return g
}
