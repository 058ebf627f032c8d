package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCancelled GoalStatus = "cancelled"
)

// GoalStatuses lists every status, in the order stats report them.
var GoalStatuses = []GoalStatus{GoalStatusActive, GoalStatusCompleted, GoalStatusPaused, GoalStatusCancelled}

type GoalCategory string

const (
	GoalCategoryHealth    GoalCategory = "health"
	GoalCategoryCareer    GoalCategory = "career"
	GoalCategoryPersonal  GoalCategory = "personal"
	GoalCategoryEducation GoalCategory = "education"
)

const DefaultGoalTarget = 100

// explicitTransitions are the status changes a client may request through a general update.
// active -> completed only happens as a side effect of a progress update.
var explicitTransitions = map[GoalStatus][]GoalStatus{
	GoalStatusActive: {GoalStatusPaused, GoalStatusCancelled},
	GoalStatusPaused: {GoalStatusActive, GoalStatusCancelled},
}

// CanTransition reports whether a client may move a goal from one status to another.
// Writing the current status again is always allowed.
func CanTransition(from, to GoalStatus) bool {
	if from == to {
		return true
	}
	for _, s := range explicitTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Milestone struct {
	Title       string     `bson:"title" json:"title"`
	Completed   bool       `bson:"completed" json:"completed"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
}

// Goal is a user goal with numeric progress towards a target.
type Goal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    GoalCategory       `bson:"category" json:"category"`
	Progress    int                `bson:"progress" json:"progress"`
	Target      int                `bson:"target" json:"target"`
	Deadline    *time.Time         `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Status      GoalStatus         `bson:"status" json:"status"`
	Milestones  []Milestone        `bson:"milestones" json:"milestones"`
	Version     int64              `bson:"version" json:"-"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`

	ProgressPercentage int `bson:"-" json:"progressPercentage"`
}

// ApplyProgress sets progress and completes an active goal whose progress reaches its target.
// A goal in any other status keeps it.
func (g *Goal) ApplyProgress(progress int) {
	g.Progress = progress
	if g.Status == GoalStatusActive && g.Progress >= g.Target {
		g.Status = GoalStatusCompleted
	}
}

// Derive fills fields computed from stored ones.
func (g *Goal) Derive() {
	if g.Target <= 0 {
		g.ProgressPercentage = 0
		return
	}
	g.ProgressPercentage = int(math.Round(float64(g.Progress) / float64(g.Target) * 100))
}

// StampMilestones records completion time on milestones marked completed without one.
func StampMilestones(ms []Milestone, now time.Time) []Milestone {
	out := make([]Milestone, len(ms))
	for i, m := range ms {
		if m.Completed && m.CompletedAt == nil {
			t := now
			m.CompletedAt = &t
		}
		if !m.Completed {
			m.CompletedAt = nil
		}
		out[i] = m
	}
	return out
}

type MilestoneInput struct {
	Title       string  `json:"title" validate:"required,notblank,max=200"`
	Completed   bool    `json:"completed"`
	CompletedAt *string `json:"completedAt" validate:"omitnil,timestamp"`
}

// CreateGoalInput is the body of POST /api/goals.
type CreateGoalInput struct {
	Title       string           `json:"title" validate:"required,notblank,max=200"`
	Description string           `json:"description" validate:"max=1000"`
	Category    string           `json:"category" validate:"required,oneof=health career personal education"`
	Target      *int             `json:"target" validate:"omitnil,min=1"`
	Deadline    *string          `json:"deadline" validate:"omitnil,timestamp"`
	Milestones  []MilestoneInput `json:"milestones" validate:"dive"`
}

// UpdateGoalInput is the body of PUT /api/goals/:id. Nil fields are left untouched;
// an empty deadline string clears the deadline.
type UpdateGoalInput struct {
	Title       *string           `json:"title" validate:"omitnil,notblank,max=200"`
	Description *string           `json:"description" validate:"omitnil,max=1000"`
	Category    *string           `json:"category" validate:"omitnil,oneof=health career personal education"`
	Progress    *int              `json:"progress" validate:"omitnil,min=0"`
	Target      *int              `json:"target" validate:"omitnil,min=1"`
	Deadline    *string           `json:"deadline" validate:"omitnil,timestamp"`
	Status      *string           `json:"status" validate:"omitnil,oneof=active completed paused cancelled"`
	Milestones  *[]MilestoneInput `json:"milestones" validate:"omitnil,dive"`
}

// ProgressInput is the body of PATCH /api/goals/:id/progress.
type ProgressInput struct {
	Progress *int `json:"progress" validate:"required,min=0"`
}

// GoalFilter narrows a goal listing.
type GoalFilter struct {
	Status   string
	Category string
}

type GoalStats struct {
	Total             int64            `json:"total"`
	Active            int64            `json:"active"`
	Completed         int64            `json:"completed"`
	Paused            int64            `json:"paused"`
	Cancelled         int64            `json:"cancelled"`
	AverageProgress   int              `json:"averageProgress"`
	CategoryBreakdown map[string]int64 `json:"categoryBreakdown"`
}
