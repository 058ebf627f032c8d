package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/AnshRaj112/voxa-backend/internal/apperr"
	"github.com/AnshRaj112/voxa-backend/internal/metrics"
	"github.com/AnshRaj112/voxa-backend/internal/models"
	"github.com/AnshRaj112/voxa-backend/internal/repository"
	"github.com/AnshRaj112/voxa-backend/internal/stats"
	"github.com/AnshRaj112/voxa-backend/internal/validation"
)

const (
	goalNotFound = "Goal not found"
	// maxGoalWriteAttempts bounds the read-modify-write loop on version conflicts.
	maxGoalWriteAttempts = 3
)

type GoalService struct {
	repo repository.GoalRepository
	now  Clock
}

func NewGoalService(repo repository.GoalRepository, now Clock) *GoalService {
	return &GoalService{repo: repo, now: orNow(now)}
}

func (s *GoalService) List(ctx context.Context, userID string, q models.GoalQuery) ([]models.Goal, error) {
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	goals, err := s.repo.List(ctx, userID, models.GoalFilter{Status: q.Status, Category: q.Category})
	if err != nil {
		return nil, storeErr(err, goalNotFound)
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	for i := range goals {
		normalizeGoal(&goals[i])
	}
	return goals, nil
}

func (s *GoalService) Get(ctx context.Context, userID, id string) (*models.Goal, error) {
	g, err := s.repo.ByID(ctx, userID, id)
	if err != nil {
		return nil, storeErr(err, goalNotFound)
	}
	normalizeGoal(g)
	return g, nil
}

func (s *GoalService) Create(ctx context.Context, userID string, in models.CreateGoalInput) (*models.Goal, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	now := s.now()
	target := models.DefaultGoalTarget
	if in.Target != nil {
		target = *in.Target
	}
	g := &models.Goal{
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    models.GoalCategory(in.Category),
		Target:      target,
		Status:      models.GoalStatusActive,
		Milestones:  models.StampMilestones(milestones(in.Milestones, now), now),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Deadline != nil && *in.Deadline != "" {
		d := dateOr(in.Deadline, now)
		g.Deadline = &d
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, storeErr(err, goalNotFound)
	}
	normalizeGoal(g)
	return g, nil
}

// Update applies a partial update. Status changes must follow the goal state machine;
// completion is only reachable through UpdateProgress.
func (s *GoalService) Update(ctx context.Context, userID, id string, in models.UpdateGoalInput) (*models.Goal, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.mutate(ctx, userID, id, func(g *models.Goal) error {
		now := s.now()
		if in.Status != nil {
			to := models.GoalStatus(*in.Status)
			if !models.CanTransition(g.Status, to) {
				return apperr.Validation("cannot change goal status from %s to %s", g.Status, to)
			}
			g.Status = to
		}
		if in.Title != nil {
			g.Title = strings.TrimSpace(*in.Title)
		}
		if in.Description != nil {
			g.Description = *in.Description
		}
		if in.Category != nil {
			g.Category = models.GoalCategory(*in.Category)
		}
		if in.Target != nil {
			g.Target = *in.Target
		}
		if in.Progress != nil {
			g.Progress = *in.Progress
		}
		if in.Deadline != nil {
			if *in.Deadline == "" {
				g.Deadline = nil
			} else {
				d := dateOr(in.Deadline, now)
				g.Deadline = &d
			}
		}
		if in.Milestones != nil {
			g.Milestones = models.StampMilestones(milestones(*in.Milestones, now), now)
		}
		return nil
	})
}

// UpdateProgress sets progress and completes an active goal that reaches its target.
func (s *GoalService) UpdateProgress(ctx context.Context, userID, id string, in models.ProgressInput) (*models.Goal, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.mutate(ctx, userID, id, func(g *models.Goal) error {
		g.ApplyProgress(*in.Progress)
		return nil
	})
}

func (s *GoalService) Delete(ctx context.Context, userID, id string) error {
	return storeErr(s.repo.Delete(ctx, userID, id), goalNotFound)
}

// Stats counts goals per status and category. The progress average covers active goals only.
func (s *GoalService) Stats(ctx context.Context, userID string) (*models.GoalStats, error) {
	byStatus, err := s.repo.CountByStatus(ctx, userID)
	if err != nil {
		return nil, storeErr(err, goalNotFound)
	}
	byCategory, err := s.repo.CountByCategory(ctx, userID)
	if err != nil {
		return nil, storeErr(err, goalNotFound)
	}
	avg, err := s.repo.AverageProgress(ctx, userID, models.GoalStatusActive)
	if err != nil {
		return nil, storeErr(err, goalNotFound)
	}

	return &models.GoalStats{
		Total:             stats.Sum(byStatus),
		Active:            byStatus[string(models.GoalStatusActive)],
		Completed:         byStatus[string(models.GoalStatusCompleted)],
		Paused:            byStatus[string(models.GoalStatusPaused)],
		Cancelled:         byStatus[string(models.GoalStatusCancelled)],
		AverageProgress:   int(stats.Round(avg, 0)),
		CategoryBreakdown: byCategory,
	}, nil
}

// mutate reads the goal, applies fn and writes it back guarded by the goal's version.
// A lost race re-reads and re-applies fn.
func (s *GoalService) mutate(ctx context.Context, userID, id string, fn func(*models.Goal) error) (*models.Goal, error) {
	for attempt := 1; attempt <= maxGoalWriteAttempts; attempt++ {
		g, err := s.repo.ByID(ctx, userID, id)
		if err != nil {
			return nil, storeErr(err, goalNotFound)
		}
		if err := fn(g); err != nil {
			return nil, err
		}
		g.UpdatedAt = s.now()

		err = s.repo.Replace(ctx, g)
		if err == nil {
			normalizeGoal(g)
			return g, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, storeErr(err, goalNotFound)
		}
		metrics.GoalWriteConflict()
		slog.DebugContext(ctx, "goal write conflict", "goal_id", id, "attempt", attempt)
	}
	return nil, apperr.Conflict("Goal was modified concurrently, please retry")
}

func milestones(in []models.MilestoneInput, now time.Time) []models.Milestone {
	out := make([]models.Milestone, len(in))
	for i, m := range in {
		out[i] = models.Milestone{Title: strings.TrimSpace(m.Title), Completed: m.Completed}
		if m.Completed && m.CompletedAt != nil && *m.CompletedAt != "" {
			t := dateOr(m.CompletedAt, now)
			out[i].CompletedAt = &t
		}
	}
	return out
}

func normalizeGoal(g *models.Goal) {
	if g.Milestones == nil {
		g.Milestones = []models.Milestone{}
	}
	g.Derive()
}
